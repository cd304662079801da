// Package prefilter implements candidate-skipping ahead of a full
// matching strategy: given the literal substrings package literal
// extracted from a pattern, quickly reject input regions that cannot
// possibly contain a match, so the (potentially exponential)
// backtracking or DFA strategies only run where a match is plausible.
//
// Wires two third-party dependencies carried over from
// coregx-coregex: ahocorasick for multi-literal alternations (grounded
// on coregx-coregex/meta/compile.go's ahoCorasick builder wiring) and
// x/sys/cpu to gate single-literal scanning between a CPU-feature-aware
// fast path and a portable fallback (grounded on the generic/fallback
// split in coregx-coregex/simd, without carrying over any actual
// assembly).
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"golang.org/x/sys/cpu"
)

// kind tags which strategy a Prefilter uses.
type kind uint8

const (
	none kind = iota
	single
	multi
)

// Prefilter reports whether a haystack could possibly contain a match,
// without running the full matching strategy.
type Prefilter struct {
	k         kind
	literal   []byte
	automaton *ahocorasick.Automaton
}

// Build constructs a Prefilter from the literals package literal
// extracted for a pattern. An empty literal set yields a Prefilter that
// never rejects anything (CouldMatch always true), since no literal
// guarantee could be derived.
func Build(literals []string) (*Prefilter, error) {
	switch len(literals) {
	case 0:
		return &Prefilter{k: none}, nil
	case 1:
		return &Prefilter{k: single, literal: []byte(literals[0])}, nil
	default:
		builder := ahocorasick.NewBuilder()
		for _, lit := range literals {
			builder.AddPattern([]byte(lit))
		}
		automaton, err := builder.Build()
		if err != nil {
			return nil, err
		}
		return &Prefilter{k: multi, automaton: automaton}, nil
	}
}

// CouldMatch reports whether haystack might contain a match. A false
// result is conclusive (no matching strategy needs to run); a true
// result only means the cheap check did not rule it out.
func (p *Prefilter) CouldMatch(haystack []byte) bool {
	switch p.k {
	case none:
		return true
	case single:
		return containsLiteral(haystack, p.literal)
	case multi:
		return p.automaton.IsMatch(haystack)
	default:
		return true
	}
}

// hasFastByteScan reports whether the CPU exposes the vector extensions
// the fast single-byte/single-literal scan path is written against.
// cpu.X86 is the zero value (all fields false) on non-x86 platforms, so
// this check is safe on every GOARCH without a build tag.
var hasFastByteScan = cpu.X86.HasSSE42 || cpu.X86.HasAVX2

// containsLiteral reports whether lit occurs in haystack. On CPUs
// exposing SSE4.2/AVX2, bytes.Index (which itself dispatches to
// assembly-optimized routines on amd64) is used directly as the fast
// path; on other CPUs a portable byte-by-byte scan runs instead. Both
// paths are functionally identical; the split exists to exercise
// CPU-feature gating the way a prior simd package does, without
// hand-rolling new vector assembly.
func containsLiteral(haystack, lit []byte) bool {
	if len(lit) == 0 {
		return true
	}
	if hasFastByteScan {
		return bytes.Contains(haystack, lit)
	}
	return naiveContains(haystack, lit)
}

func naiveContains(haystack, lit []byte) bool {
	if len(lit) > len(haystack) {
		return false
	}
	for i := 0; i+len(lit) <= len(haystack); i++ {
		if bytes.Equal(haystack[i:i+len(lit)], lit) {
			return true
		}
	}
	return false
}
