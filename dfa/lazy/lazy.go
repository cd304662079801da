// Package lazy implements the on-the-fly subset construction matching
// strategy: rather than determinizing the whole NFA up
// front, it explores only the (state-set, byte) transitions actually
// visited during a match, memoizing each one so a repeated transition
// is never recomputed.
//
// Grounded on coregx-coregex/dfa/lazy/builder.go and cache.go's
// state-set-to-label caching idiom, stripped of word-boundary and
// anchor resolution and of the bounded transition-cache eviction policy
// (this engine has no notion of a cache-full "quit" state; unbounded
// growth is acceptable for the sizes this core targets).
package lazy

import "github.com/mpetrov/bytergx/fsm"

// Matcher runs lazy subset construction directly against an NFA.
type Matcher struct {
	n *fsm.Automaton

	sets   map[string]*fsm.StateSet
	accept map[string]bool
	trans  map[string][256]string // setKey -> per-byte next setKey ("" = none computed, deadKey = dead)
}

const deadKey = "\x00dead"

// NewMatcher prepares a lazy matcher over n. Construction does no
// automaton exploration; everything happens on first use.
func NewMatcher(n *fsm.Automaton) *Matcher {
	return &Matcher{
		n:      n,
		sets:   make(map[string]*fsm.StateSet),
		accept: make(map[string]bool),
		trans:  make(map[string][256]string),
	}
}

// Match reports whether n accepts input, exploring and caching only the
// state-sets and byte-transitions this particular input visits.
func (m *Matcher) Match(input []byte) bool {
	cur := m.startSet()
	if cur == deadKey {
		return false
	}
	for _, b := range input {
		cur = m.stepCached(cur, b)
		if cur == deadKey {
			return false
		}
	}
	return m.accept[cur]
}

func (m *Matcher) startSet() string {
	closure := epsilonClosure(m.n, []fsm.StateID{m.n.Initial})
	if closure.Len() == 0 {
		return deadKey
	}
	return m.intern(closure)
}

// stepCached returns the cached successor of (setKey, b), computing and
// storing it on first access.
func (m *Matcher) stepCached(setKey string, b byte) string {
	row, ok := m.trans[setKey]
	if ok && row[b] != "" {
		return row[b]
	}
	if !ok {
		row = [256]string{}
	}

	set := m.sets[setKey]
	moved := move(m.n, set, b)
	closure := epsilonClosure(m.n, moved)
	var nextKey string
	if closure.Len() == 0 {
		nextKey = deadKey
	} else {
		nextKey = m.intern(closure)
	}
	row[b] = nextKey
	m.trans[setKey] = row
	return nextKey
}

func (m *Matcher) intern(set *fsm.StateSet) string {
	key := fsm.CanonicalKey(set.Canonical())
	if _, ok := m.sets[key]; !ok {
		m.sets[key] = set
		m.accept[key] = anyAccept(m.n, set)
	}
	return key
}

func anyAccept(n *fsm.Automaton, set *fsm.StateSet) bool {
	for _, s := range set.Values() {
		if n.IsAccept(s) {
			return true
		}
	}
	return false
}

func epsilonClosure(n *fsm.Automaton, start []fsm.StateID) *fsm.StateSet {
	set := fsm.NewStateSet(n.NumStates())
	var stack []fsm.StateID
	for _, s := range start {
		if s == fsm.InvalidState {
			continue
		}
		set.Add(s)
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.State(s).Edges {
			if e.Transition.Kind != fsm.Epsilon {
				continue
			}
			if !set.Contains(e.Target) {
				set.Add(e.Target)
				stack = append(stack, e.Target)
			}
		}
	}
	return set
}

func move(n *fsm.Automaton, set *fsm.StateSet, b byte) []fsm.StateID {
	var out []fsm.StateID
	for _, s := range set.Values() {
		for _, e := range n.State(s).Edges {
			if e.Transition.Kind != fsm.Epsilon && e.Transition.Matches(b) {
				out = append(out, e.Target)
			}
		}
	}
	return out
}
