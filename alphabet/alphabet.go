// Package alphabet implements byte-alphabet partitioning: during subset
// construction, for each NFA state-set, the 256 possible input bytes
// are partitioned into contiguous classes such that every outgoing
// transition's matched-byte set is a union of whole classes.
// Determinization then steps one representative byte per class instead
// of all 256, without changing which states are reachable.
//
// Grounded on coregx-coregex's ByteClassSet boundary-bitset technique
// (nfa/builder.go), generalized from a single global byte-class table
// into a reusable Set algebra over arbitrary transition collections.
package alphabet

import (
	"sort"

	"github.com/mpetrov/bytergx/ast"
)

// Kind tags the variant carried by a Set.
type Kind uint8

const (
	// None matches no byte.
	None Kind = iota
	// AnyByte matches every byte 0-255.
	AnyByte
	// Value matches exactly one byte.
	Value
	// Rng matches a contiguous inclusive byte range.
	Rng
	// Multiple matches the union of its member sets.
	Multiple
)

// Set is the tagged variant of alphabet algebra.
type Set struct {
	Kind    Kind
	Byte    byte // Value
	Lo, Hi  byte // Rng
	Members []Set
}

// Matches reports whether b belongs to the set.
func (s Set) Matches(b byte) bool {
	switch s.Kind {
	case AnyByte:
		return true
	case Value:
		return b == s.Byte
	case Rng:
		return b >= s.Lo && b <= s.Hi
	case Multiple:
		for _, m := range s.Members {
			if m.Matches(b) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Complement is a documented, unimplemented extension point: negated
// character classes (`[^...]`) are out of scope for this engine.
func (s Set) Complement() (Set, error) {
	return Set{}, ast.ErrUnimplemented
}

// Overlay returns the union of a and b, collapsing into a single Rng
// when the result happens to be contiguous and otherwise folding into
// a Multiple.
func Overlay(a, b Set) Set {
	if a.Kind == None {
		return b
	}
	if b.Kind == None {
		return a
	}
	if a.Kind == AnyByte || b.Kind == AnyByte {
		return Set{Kind: AnyByte}
	}
	if merged, ok := tryMergeContiguous(a, b); ok {
		return merged
	}
	members := append(append([]Set{}, flatten(a)...), flatten(b)...)
	return Set{Kind: Multiple, Members: members}
}

func flatten(s Set) []Set {
	if s.Kind == Multiple {
		return s.Members
	}
	return []Set{s}
}

func tryMergeContiguous(a, b Set) (Set, bool) {
	ar, aok := asRange(a)
	br, bok := asRange(b)
	if !aok || !bok {
		return Set{}, false
	}
	if int(ar.lo) > int(br.hi)+1 || int(br.lo) > int(ar.hi)+1 {
		return Set{}, false
	}
	lo := ar.lo
	if br.lo < lo {
		lo = br.lo
	}
	hi := ar.hi
	if br.hi > hi {
		hi = br.hi
	}
	return rangeSet(lo, hi), true
}

type byteRange struct{ lo, hi byte }

func asRange(s Set) (byteRange, bool) {
	switch s.Kind {
	case Value:
		return byteRange{s.Byte, s.Byte}, true
	case Rng:
		return byteRange{s.Lo, s.Hi}, true
	default:
		return byteRange{}, false
	}
}

func rangeSet(lo, hi byte) Set {
	if lo == hi {
		return Set{Kind: Value, Byte: lo}
	}
	return Set{Kind: Rng, Lo: lo, Hi: hi}
}

// Atom is one cell of a byte-alphabet partition: a maximal contiguous
// byte range over which every input Set is either fully contained or
// fully disjoint.
type Atom struct {
	Lo, Hi byte
}

// Partition computes the coarsest partition of [0,255] compatible with
// every set in sets, via the standard boundary/cut-point algorithm:
// every set's lower and upper+1 bound is a candidate cut, and atoms are
// the intervals between consecutive sorted cuts.
func Partition(sets []Set) []Atom {
	cuts := map[int]bool{0: true, 256: true}
	for _, s := range sets {
		addCuts(cuts, s)
	}

	sorted := make([]int, 0, len(cuts))
	for c := range cuts {
		sorted = append(sorted, c)
	}
	sort.Ints(sorted)

	var atoms []Atom
	for i := 0; i+1 < len(sorted); i++ {
		lo, hi := sorted[i], sorted[i+1]-1
		if lo > hi {
			continue
		}
		atoms = append(atoms, Atom{Lo: byte(lo), Hi: byte(hi)})
	}
	return atoms
}

func addCuts(cuts map[int]bool, s Set) {
	switch s.Kind {
	case AnyByte:
		cuts[0] = true
		cuts[256] = true
	case Value:
		cuts[int(s.Byte)] = true
		cuts[int(s.Byte)+1] = true
	case Rng:
		cuts[int(s.Lo)] = true
		cuts[int(s.Hi)+1] = true
	case Multiple:
		for _, m := range s.Members {
			addCuts(cuts, m)
		}
	}
}

// Representative returns one byte chosen from the atom, used to probe
// which NFA transitions fire for every byte in the atom (they all
// agree, by construction of Partition).
func (a Atom) Representative() byte {
	return a.Lo
}
