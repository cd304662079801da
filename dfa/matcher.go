package dfa

import "github.com/mpetrov/bytergx/fsm"

// Match runs the deterministic matching strategy:
// step through d one input byte at a time, following the single
// transition that matches (d is deterministic by construction), and
// report whether the final state accepts. Linear in len(input).
func Match(d *fsm.Automaton, input []byte) bool {
	state := d.Initial
	for _, b := range input {
		state = step(d, state, b)
		if state == fsm.InvalidState {
			return false
		}
	}
	return d.IsAccept(state)
}

func step(d *fsm.Automaton, state fsm.StateID, b byte) fsm.StateID {
	for _, e := range d.State(state).Edges {
		if e.Transition.Matches(b) {
			return e.Target
		}
	}
	return fsm.InvalidState
}
