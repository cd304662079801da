// Package backtrack implements backtracking NFA simulation: a
// depth-first walk of the NFA that tries each state's transitions in
// list order, so transition order alone encodes which alternative or
// quantifier branch is preferred. Exponential in the worst case; used
// as the baseline strategy against which the DFA-based strategies are
// checked for equivalence.
//
// Grounded on coregx-coregex's BoundedBacktracker (backtrack.go), with
// the bounded-input-size DFA-fallback gate removed: this package's
// backtracker is the engine's unconditional baseline, not a
// size-limited fast path in front of a DFA.
package backtrack

import "github.com/mpetrov/bytergx/fsm"

// Match reports whether the NFA n accepts input, by exhaustive
// depth-first search in transition-list priority order. It returns
// true on the first successful path found (first-match-wins among
// ordered alternatives), matching the deterministic strategies'
// externally observable result for any well-formed automaton.
func Match(n *fsm.Automaton, input []byte) bool {
	visited := make(map[uint64]bool)
	return search(n, n.Initial, input, 0, visited)
}

// search explores state at input position pos. visited prevents
// revisiting the same (state, pos) pair within a single backtracking
// walk, which would otherwise loop forever across Epsilon cycles (e.g.
// a Star whose body can match empty).
func search(n *fsm.Automaton, state fsm.StateID, input []byte, pos int, visited map[uint64]bool) bool {
	key := uint64(state)<<32 | uint64(uint32(pos))
	if visited[key] {
		return false
	}
	visited[key] = true

	if pos == len(input) && n.IsAccept(state) {
		return true
	}

	for _, e := range n.State(state).Edges {
		switch e.Transition.Kind {
		case fsm.Epsilon:
			if search(n, e.Target, input, pos, visited) {
				return true
			}
		default:
			if pos < len(input) && e.Transition.Matches(input[pos]) {
				if search(n, e.Target, input, pos+1, visited) {
					return true
				}
			}
		}
	}
	return false
}
