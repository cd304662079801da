package fsm

import (
	"sort"

	"github.com/mpetrov/bytergx/internal/conv"
	"github.com/mpetrov/bytergx/internal/sparse"
)

// StateSet is a mutable, O(1)-membership set of StateID values used
// during epsilon-closure computation. It wraps coregx-coregex's
// internal/sparse.SparseSet directly rather than reimplementing the
// same dense/sparse array technique, adding only the StateID typing and
// the canonical sorted form subset construction needs for its
// state-set-to-label map.
type StateSet struct {
	inner *sparse.SparseSet
}

// NewStateSet creates a set capable of holding values in [0, capacity).
func NewStateSet(capacity int) *StateSet {
	return &StateSet{inner: sparse.NewSparseSet(conv.IntToUint32(capacity))}
}

// Add inserts id into the set. No-op if already present.
func (s *StateSet) Add(id StateID) {
	s.inner.Insert(uint32(id))
}

// Contains reports whether id is in the set.
func (s *StateSet) Contains(id StateID) bool {
	return s.inner.Contains(uint32(id))
}

// Len returns the number of elements.
func (s *StateSet) Len() int { return s.inner.Size() }

// Reset empties the set in O(1) without releasing capacity.
func (s *StateSet) Reset() {
	s.inner.Clear()
}

// Values returns the elements in unspecified order. Valid until the next
// mutation.
func (s *StateSet) Values() []StateID {
	raw := s.inner.Values()
	out := make([]StateID, len(raw))
	for i, v := range raw {
		out[i] = StateID(v)
	}
	return out
}

// Canonical returns a sorted copy of the set's elements, suitable as a
// map key (via CanonicalKey) identifying this exact NFA-state-set.
func (s *StateSet) Canonical() []StateID {
	out := s.Values()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanonicalKey converts a sorted state-set (as returned by Canonical)
// into a comparable string key, making the set→label map used during
// subset construction a true function of the NFA-state-set.
func CanonicalKey(sorted []StateID) string {
	buf := make([]byte, 0, len(sorted)*4)
	for _, id := range sorted {
		buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(buf)
}
