// Package literal extracts required literal substrings from a parsed
// pattern: byte sequences that must appear in any matching input,
// usable to skip non-matching input before running a full matching
// strategy. Trimmed from coregx-coregex's Literal/Seq machinery down to
// longest-exact-run extraction (suffix search and longest-common-
// subsequence merging are out of scope for this engine).
//
// Grounded on coregx-coregex/literal/seq.go's Literal/Seq types.
package literal

import (
	"unicode/utf8"

	"github.com/mpetrov/bytergx/ast"
)

// Extract returns the set of literal byte strings of which at least one
// must occur in any input n matches, or nil if no such guarantee can be
// derived (e.g. n can match the empty string, or contains a branch with
// no literal content).
func Extract(n ast.Node) []string {
	switch v := n.(type) {
	case *ast.Pattern:
		return unionAlternatives(v.Alternatives)
	case *ast.Group:
		return unionAlternatives(v.Alternatives)
	case *ast.Expression:
		if run := longestLiteralRun(v.Items); run != "" {
			return []string{run}
		}
		return nil
	case *ast.MatchCharacter:
		return []string{encodeRune(v.Codepoint)}
	default:
		return nil
	}
}

// unionAlternatives requires every branch to contribute a literal; one
// literal-free branch means the alternation as a whole gives no
// guarantee.
func unionAlternatives(alts []ast.Node) []string {
	var all []string
	for _, alt := range alts {
		lits := Extract(alt)
		if len(lits) == 0 {
			return nil
		}
		all = append(all, lits...)
	}
	return all
}

// longestLiteralRun returns the longest contiguous run of
// ast.MatchCharacter items in items, UTF-8 encoded.
func longestLiteralRun(items []ast.Node) string {
	var best, cur []byte
	flush := func() {
		if len(cur) > len(best) {
			best = append(best[:0:0], cur...)
		}
	}
	for _, it := range items {
		if mc, ok := it.(*ast.MatchCharacter); ok {
			cur = append(cur, []byte(encodeRune(mc.Codepoint))...)
			continue
		}
		flush()
		cur = nil
	}
	flush()
	return string(best)
}

func encodeRune(r rune) string {
	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)
	return string(buf)
}
