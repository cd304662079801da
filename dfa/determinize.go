// Package dfa implements subset construction: it
// determinizes an NFA built by package nfa into an equivalent DFA,
// partitioning the byte alphabet first so each DFA transition spans a
// maximal byte range, and specializing certain ranges into cheaper Mask
// transitions.
//
// Grounded on coregx-coregex/dfa/lazy/builder.go's epsilonClosure/move
// pair, stripped of word-boundary and anchor resolution (non-goals; see
// design notes) and made eager (the whole DFA is built up front, rather
// than lazily as states are visited during matching — see subpackage
// lazy for the on-the-fly variant).
package dfa

import (
	"github.com/mpetrov/bytergx/alphabet"
	"github.com/mpetrov/bytergx/fsm"
)

// Determinize builds a deterministic automaton equivalent to n: for
// every reachable NFA-state-set and every atom of the partitioned
// alphabet, at most one transition leads to exactly one successor
// state-set (atoms whose successor set is empty get no transition),
// canonicalized so that the same state-set is always the same DFA state.
func Determinize(n *fsm.Automaton) *fsm.Automaton {
	d := fsm.New()
	byKey := make(map[string]fsm.StateID)

	closure := epsilonClosure(n, []fsm.StateID{n.Initial})
	startKey := fsm.CanonicalKey(closure.Canonical())
	start := d.NewState()
	byKey[startKey] = start
	d.Initial = start
	setAcceptIfAny(d, start, n, closure)

	type pending struct {
		id  fsm.StateID
		set *fsm.StateSet
	}
	queue := []pending{{id: start, set: closure}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		atoms := alphabet.Partition(alphabetFor(n, cur.set))

		targets := make([]fsm.StateID, len(atoms))
		for i, atom := range atoms {
			moved := move(n, cur.set, atom.Representative())
			next := epsilonClosure(n, moved)
			if next.Len() == 0 {
				targets[i] = fsm.InvalidState
				continue
			}
			key := fsm.CanonicalKey(next.Canonical())
			id, ok := byKey[key]
			if !ok {
				id = d.NewState()
				byKey[key] = id
				setAcceptIfAny(d, id, n, next)
				queue = append(queue, pending{id: id, set: next})
			}
			targets[i] = id
		}

		emitEdges(d, cur.id, atoms, targets)
	}

	return d
}

// alphabetFor computes alphabet_for(S) per §4.3: the matched-byte set of
// every non-epsilon outgoing transition, local to the particular NFA
// state-set S rather than the automaton as a whole. Each DFA state
// therefore gets its own partition, computed from only the transitions
// its own state-set can actually take. The sets are returned one per
// transition rather than folded through alphabet.Overlay, because
// Overlay merges adjacent sets (e.g. 'c' and 'd' into [c-d]) and the
// partition must keep every transition's boundaries.
func alphabetFor(n *fsm.Automaton, set *fsm.StateSet) []alphabet.Set {
	var sets []alphabet.Set
	for _, s := range set.Values() {
		for _, e := range n.State(s).Edges {
			ts, ok := transitionSet(e.Transition)
			if !ok {
				continue
			}
			sets = append(sets, ts)
		}
	}
	return sets
}

func transitionSet(t fsm.Transition) (alphabet.Set, bool) {
	switch t.Kind {
	case fsm.Any:
		return alphabet.Set{Kind: alphabet.AnyByte}, true
	case fsm.Character:
		return alphabet.Set{Kind: alphabet.Value, Byte: t.Lo}, true
	case fsm.Range:
		return alphabet.Set{Kind: alphabet.Rng, Lo: t.Lo, Hi: t.Hi}, true
	default:
		return alphabet.Set{}, false
	}
}

// epsilonClosure returns the set of states reachable from start via
// zero or more Epsilon transitions.
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

// move returns every state directly reachable from set by a transition
// matching byte b (no closure applied).
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

func setAcceptIfAny(d *fsm.Automaton, id fsm.StateID, n *fsm.Automaton, set *fsm.StateSet) {
	for _, s := range set.Values() {
		if n.IsAccept(s) {
			d.SetAccept(id)
			return
		}
	}
}

// emitEdges merges consecutive atoms sharing the same target into one
// transition, specializing into Mask where the merged range satisfies
// bit-pattern rule ((lo-1)|lo)==hi. Atoms are visited in
// ascending byte order, so the resulting edge list is deterministic.
func emitEdges(d *fsm.Automaton, from fsm.StateID, atoms []alphabet.Atom, targets []fsm.StateID) {
	i := 0
	for i < len(atoms) {
		if targets[i] == fsm.InvalidState {
			i++
			continue
		}
		lo := atoms[i].Lo
		hi := atoms[i].Hi
		j := i + 1
		for j < len(atoms) && targets[j] == targets[i] && int(atoms[j].Lo) == int(hi)+1 {
			hi = atoms[j].Hi
			j++
		}
		d.AddEdge(from, rangeTransition(lo, hi), targets[i])
		i = j
	}
}

func rangeTransition(lo, hi byte) fsm.Transition {
	if lo == hi {
		return fsm.Transition{Kind: fsm.Character, Lo: lo, Hi: lo}
	}
	if int(lo)-1 >= 0 && (byte(int(lo)-1)|lo) == hi {
		return fsm.Transition{Kind: fsm.Mask, M: lo}
	}
	return fsm.Transition{Kind: fsm.Range, Lo: lo, Hi: hi}
}
