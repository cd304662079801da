// Package rex is the thin top-level entry point: it turns a pattern
// string into a ready-to-use Regex exposing each of the core's
// matching strategies, and implements the unanchored "search anywhere
// in the haystack" contract that a find-anywhere user-facing API needs
// but the bare byte-level core does not itself provide (anchors are a
// documented non-goal, decided deliberately rather than overlooked).
package rex

import (
	"fmt"

	"github.com/mpetrov/bytergx/ast"
	"github.com/mpetrov/bytergx/backtrack"
	"github.com/mpetrov/bytergx/bytecode"
	"github.com/mpetrov/bytergx/dfa"
	"github.com/mpetrov/bytergx/dfa/lazy"
	"github.com/mpetrov/bytergx/fsm"
	"github.com/mpetrov/bytergx/literal"
	"github.com/mpetrov/bytergx/nfa"
	"github.com/mpetrov/bytergx/prefilter"
	"github.com/mpetrov/bytergx/syntax"
)

// CompileError wraps a Compile failure with the pattern that caused it,
// following coregx-coregex/nfa/error.go's CompileError shape.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rex: compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Regex is a compiled pattern, holding every matching-strategy
// representation side by side so callers (and tests) can pick or
// compare any of them.
type Regex struct {
	nfaAutomaton *fsm.Automaton
	dfaAutomaton *fsm.Automaton
	program      *bytecode.Program
	lazyMatcher  *lazy.Matcher
	pf           *prefilter.Prefilter
}

// Compile parses pattern, builds the NFA, determinizes it and compiles
// the bytecode program, all up front. The pattern is implicitly
// unanchored: Match reports whether pattern occurs anywhere in the
// haystack, not only at its start.
func Compile(pattern string) (*Regex, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	lits := literal.Extract(tree)
	pf, err := prefilter.Build(lits)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	wrapped := unanchor(tree)
	n, err := nfa.Build(wrapped)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	d := dfa.Determinize(n)

	return &Regex{
		nfaAutomaton: n,
		dfaAutomaton: d,
		program:      bytecode.Compile(d),
		lazyMatcher:  lazy.NewMatcher(n),
		pf:           pf,
	}, nil
}

// unanchor wraps tree as `.*(tree).*`, so that whole-string acceptance
// of the wrapped automaton is equivalent to tree matching some
// substring of the input. `.*` is always available as an extension
// point here because anchors (`^`/`$`) can never appear in tree: the
// parser rejects them outright (ast.ErrUnimplemented), so this prefix/
// suffix wrapping is always correct and never needs to be skipped.
func unanchor(tree *ast.Pattern) *ast.Pattern {
	dotStarPrefix := &ast.Quantified{Item: &ast.MatchAny{}, Quantifier: ast.Quantifier{Kind: ast.QuantStar}}
	dotStarSuffix := &ast.Quantified{Item: &ast.MatchAny{}, Quantifier: ast.Quantifier{Kind: ast.QuantStar}}
	body := &ast.Expression{Items: []ast.Node{
		dotStarPrefix,
		&ast.Group{Alternatives: tree.Alternatives},
		dotStarSuffix,
	}}
	return &ast.Pattern{Alternatives: []ast.Node{body}}
}

// Match reports whether the pattern occurs anywhere in haystack, using
// the deterministic DFA-stepping strategy behind a literal prefilter.
func (r *Regex) Match(haystack []byte) bool {
	if !r.pf.CouldMatch(haystack) {
		return false
	}
	return dfa.Match(r.dfaAutomaton, haystack)
}

// MatchBacktrack runs the backtracking NFA strategy.
func (r *Regex) MatchBacktrack(haystack []byte) bool {
	return backtrack.Match(r.nfaAutomaton, haystack)
}

// MatchLazy runs the lazy/on-the-fly subset construction strategy.
func (r *Regex) MatchLazy(haystack []byte) bool {
	return r.lazyMatcher.Match(haystack)
}

// MatchBytecode runs the compiled bytecode interpreter.
func (r *Regex) MatchBytecode(haystack []byte) bool {
	return bytecode.Run(r.program, haystack)
}
