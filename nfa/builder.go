// Package nfa implements the Thompson construction: it lowers an
// ast.Node tree into an fsm.Automaton whose transitions operate on
// UTF-8 bytes rather than codepoints, with Epsilon transitions wired so
// that transition-list order alone encodes greedy-vs-fallback
// quantifier priority.
//
// Grounded on coregx-coregex/nfa/builder.go's AddByteRange/AddSplit/
// AddEpsilon append-only builder API and nfa/compile.go's
// compileStar/compilePlus/compileQuest/compileRepeat* quantifier
// lowering, stripped of capture, look-around and reverse-search states,
// and restructured from fragment-returning recursion into the
// explicit-work-list obligation model the construction itself demands:
// a pattern nested deeply enough must not exhaust the Go call stack.
package nfa

import (
	"fmt"

	"github.com/mpetrov/bytergx/ast"
	"github.com/mpetrov/bytergx/charclass"
	"github.com/mpetrov/bytergx/fsm"
	"github.com/mpetrov/bytergx/ucd"
	"github.com/mpetrov/bytergx/utf8range"
)

// job is one outstanding construction obligation: "compile node so that
// it accepts exactly between entry and exit." Fulfilling a job never
// returns a value to a caller; it only emits edges/states directly and
// pushes further jobs, so the builder needs no call-stack recursion
// regardless of pattern nesting depth.
type job struct {
	node        ast.Node
	entry, exit fsm.StateID
}

// Build lowers pat into a complete automaton: a fresh fsm.Automaton
// whose Initial state is the pattern's entry and whose single accept
// state is reachable along every alternative.
func Build(pat *ast.Pattern) (*fsm.Automaton, error) {
	a := fsm.New()
	entry := a.NewState()
	exit := a.NewState()
	a.Initial = entry
	a.SetAccept(exit)

	b := &builder{a: a}
	b.push(pat, entry, exit)
	if err := b.run(); err != nil {
		return nil, err
	}
	return a, nil
}

type builder struct {
	a     *fsm.Automaton
	stack []job
}

func (b *builder) push(node ast.Node, entry, exit fsm.StateID) {
	b.stack = append(b.stack, job{node: node, entry: entry, exit: exit})
}

func (b *builder) epsilon(from, to fsm.StateID) {
	b.a.AddEdge(from, fsm.Transition{Kind: fsm.Epsilon}, to)
}

// run drains the work list until every obligation is fulfilled or one
// reports an error (unimplemented construct, unknown Unicode property).
func (b *builder) run() error {
	for len(b.stack) > 0 {
		j := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if err := b.step(j); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) step(j job) error {
	switch v := j.node.(type) {
	case *ast.Pattern:
		b.pushAlternation(v.Alternatives, j.entry, j.exit)
	case *ast.Group:
		b.pushAlternation(v.Alternatives, j.entry, j.exit)
	case *ast.Expression:
		b.pushConcat(v.Items, j.entry, j.exit)
	case *ast.MatchAny:
		utf8range.ConnectAny(b.a, j.entry, j.exit)
	case *ast.MatchCharacter:
		utf8range.ConnectValue(b.a, j.entry, j.exit, v.Codepoint)
	case *ast.MatchRange:
		utf8range.ConnectRange(b.a, j.entry, j.exit, v.From, v.To)
	case *ast.MatchSet:
		if v.Inverted {
			return ast.ErrUnimplemented
		}
		b.pushAlternation(v.Items, j.entry, j.exit)
	case *ast.MatchClass:
		ranges, err := charclass.Class(v.Class)
		if err != nil {
			return err
		}
		b.connectRanges(ranges, j.entry, j.exit)
	case *ast.MatchProperty:
		ranges, err := ucd.Query(v.Name)
		if err != nil {
			return err
		}
		b.connectRanges(ranges, j.entry, j.exit)
	case *ast.POSIXClass:
		ranges, err := charclass.POSIX(v.Name)
		if err != nil {
			return err
		}
		b.connectRanges(ranges, j.entry, j.exit)
	case *ast.Quantified:
		return b.stepQuantified(v, j.entry, j.exit)
	default:
		return fmt.Errorf("nfa: unknown node type %T", j.node)
	}
	return nil
}

// pushAlternation enqueues every alternative to compile directly
// between the same entry and exit, per §4.2: "All alternatives share
// entry and exit." An empty alternative list accepts the empty string.
func (b *builder) pushAlternation(alts []ast.Node, entry, exit fsm.StateID) {
	if len(alts) == 0 {
		b.epsilon(entry, exit)
		return
	}
	for _, alt := range alts {
		b.push(alt, entry, exit)
	}
}

// pushConcat allocates len(items)-1 fresh intermediate states and
// enqueues each item between consecutive states in the chain.
func (b *builder) pushConcat(items []ast.Node, entry, exit fsm.StateID) {
	if len(items) == 0 {
		b.epsilon(entry, exit)
		return
	}
	states := make([]fsm.StateID, len(items)+1)
	states[0] = entry
	for i := 1; i < len(items); i++ {
		states[i] = b.a.NewState()
	}
	states[len(items)] = exit
	for i, item := range items {
		b.push(item, states[i], states[i+1])
	}
}

// connectRanges connects entry->exit once per range via the UTF-8
// encoder; used for class/property/POSIX expansions, which are always
// terminal (never enqueue further obligations).
func (b *builder) connectRanges(ranges []ucd.Range, entry, exit fsm.StateID) {
	for _, r := range ranges {
		utf8range.ConnectRange(b.a, entry, exit, r.Lo, r.Hi)
	}
}

func (b *builder) stepQuantified(q *ast.Quantified, entry, exit fsm.StateID) error {
	switch q.Quantifier.Kind {
	case ast.QuantOptional:
		b.stepOptional(q.Item, entry, exit)
	case ast.QuantStar:
		b.stepStar(q.Item, entry, exit)
	case ast.QuantPlus:
		b.stepPlus(q.Item, entry, exit)
	case ast.QuantRange:
		b.stepRepeat(q.Item, q.Quantifier.Min, q.Quantifier.Max, q.Quantifier.HasMax, entry, exit)
	default:
		return fmt.Errorf("nfa: unknown quantifier kind %d", q.Quantifier.Kind)
	}
	return nil
}

// stepOptional implements `item?`: enqueue item directly between entry
// and exit (greedy attempt), then append the epsilon fallback that
// skips it.
func (b *builder) stepOptional(item ast.Node, entry, exit fsm.StateID) {
	b.push(item, entry, exit)
	b.epsilon(entry, exit)
}

// stepStar implements `item*`: item loops from entry back to entry,
// with an appended epsilon escape straight to exit. Because the item's
// own terminal edges are always installed via PrependEdge (see
// utf8range.emit), looping is preferred over bailing regardless of
// work-list processing order.
func (b *builder) stepStar(item ast.Node, entry, exit fsm.StateID) {
	b.push(item, entry, entry)
	b.epsilon(entry, exit)
}

// stepPlus implements `item+`: one mandatory pass from entry to exit,
// then an appended epsilon back to entry for the repeatable tail.
func (b *builder) stepPlus(item ast.Node, entry, exit fsm.StateID) {
	b.push(item, entry, exit)
	b.epsilon(exit, entry)
}

// stepRepeat implements `item{min,max}` and `item{min,}` per §4.2.
func (b *builder) stepRepeat(item ast.Node, min, max int, hasMax bool, entry, exit fsm.StateID) {
	if !hasMax {
		b.stepRepeatUnbounded(item, min, entry, exit)
		return
	}
	b.stepRepeatBounded(item, min, max, entry, exit)
}

// stepRepeatUnbounded implements `item{min,}`: min==0 degenerates to
// Star; otherwise chain min mandatory copies entry->...->exit, then
// append an epsilon from exit back to the chain's last junction
// (exit.prev), making the final copy repeatable without bound.
func (b *builder) stepRepeatUnbounded(item ast.Node, min int, entry, exit fsm.StateID) {
	if min <= 0 {
		b.stepStar(item, entry, exit)
		return
	}
	states := make([]fsm.StateID, min+1)
	states[0] = entry
	for i := 1; i < min; i++ {
		states[i] = b.a.NewState()
	}
	states[min] = exit
	for i := 0; i < min; i++ {
		b.push(item, states[i], states[i+1])
	}
	b.epsilon(exit, states[min-1])
}

// stepRepeatBounded implements `item{min,max}`: chain max mandatory
// copies entry->...->exit, then append an optional-tail epsilon from
// every junction at position min..max-1 straight to exit, allowing
// early bailout once at least min copies have matched.
func (b *builder) stepRepeatBounded(item ast.Node, min, max int, entry, exit fsm.StateID) {
	if max <= 0 {
		b.epsilon(entry, exit)
		return
	}
	states := make([]fsm.StateID, max+1)
	states[0] = entry
	for i := 1; i < max; i++ {
		states[i] = b.a.NewState()
	}
	states[max] = exit
	for i := 0; i < max; i++ {
		b.push(item, states[i], states[i+1])
	}
	for i := min; i < max; i++ {
		b.epsilon(states[i], exit)
	}
}
