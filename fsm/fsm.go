// Package fsm implements a generic automaton data structure: a labeled
// directed multigraph of states connected by ordered, byte-level
// transitions. Both the Thompson NFA (package nfa) and the determinized
// DFA (package dfa) are fsm.Automaton values; determinism is a property
// of the transition table, not a separate type.
package fsm

import (
	"errors"
	"fmt"

	"github.com/mpetrov/bytergx/internal/conv"
)

// ErrInvariant marks a panic raised for a documented impossible
// condition — one the construction algorithms guarantee can't occur
// rather than a recoverable input error. Callers are not expected to
// recover from it; it exists so the panic value is identifiable by
// errors.Is when it does propagate through a deferred recover in tests.
var ErrInvariant = errors.New("fsm: invariant violated")

// StateID identifies a state within one Automaton's arena.
type StateID uint32

// InvalidState marks an unset or absent target.
const InvalidState StateID = 1<<32 - 1

// TransitionKind tags the variant carried by a Transition.
type TransitionKind uint8

const (
	// Epsilon consumes no input. Valid only in NFAs.
	Epsilon TransitionKind = iota
	// Any matches any single byte.
	Any
	// Character matches exactly one byte value.
	Character
	// Range matches a byte in [Lo, Hi] inclusive.
	Range
	// Mask matches byte b iff b&M == M. Emitted only by determinization
	// as a specialization of certain Range transitions.
	Mask
)

// Transition is the tagged union over five transition
// kinds. Only the fields relevant to Kind are meaningful.
type Transition struct {
	Kind   TransitionKind
	Lo, Hi byte // Character: Lo==Hi==value. Range: [Lo,Hi].
	M      byte // Mask: bitmask.
}

// Matches reports whether the transition accepts byte b. Epsilon never
// matches any byte (it is consumed during closure computation, not
// during byte stepping).
func (t Transition) Matches(b byte) bool {
	switch t.Kind {
	case Any:
		return true
	case Character:
		return b == t.Lo
	case Range:
		return b >= t.Lo && b <= t.Hi
	case Mask:
		return b&t.M == t.M
	default:
		return false
	}
}

func (t Transition) String() string {
	switch t.Kind {
	case Epsilon:
		return "ε"
	case Any:
		return "."
	case Character:
		return fmt.Sprintf("%#02x", t.Lo)
	case Range:
		return fmt.Sprintf("[%#02x-%#02x]", t.Lo, t.Hi)
	case Mask:
		return fmt.Sprintf("mask(%#02x)", t.M)
	default:
		return "?"
	}
}

// Edge is one (transition, target) pair in a state's ordered transition
// list. Order is significant: earlier edges are tried first, both by the
// backtracking matcher and by the bytecode emitter.
type Edge struct {
	Transition Transition
	Target     StateID
}

// State is one node of the automaton: an ordered list of outgoing edges,
// plus whether it accepts.
type State struct {
	Edges  []Edge
	Accept bool
}

// Automaton owns an arena of states. Construction is monotonic: states
// and edges are added via the mutation methods below but never removed,
// matching ownership/lifecycle invariant. The zero value is
// an automaton with no states; call New or NewState to begin building.
type Automaton struct {
	states  []State
	Initial StateID
}

// New creates an empty automaton.
func New() *Automaton {
	return &Automaton{Initial: InvalidState}
}

// NewState allocates a fresh state and returns its ID.
func (a *Automaton) NewState() StateID {
	id := StateID(conv.IntToUint32(len(a.states)))
	if id == InvalidState {
		panic(fmt.Errorf("%w: state arena collided with InvalidState sentinel", ErrInvariant))
	}
	a.states = append(a.states, State{})
	return id
}

// AddEdge appends (transition, target) to the end of from's edge list
// (fall-back priority: tried after everything already present).
func (a *Automaton) AddEdge(from StateID, t Transition, target StateID) {
	a.states[from].Edges = append(a.states[from].Edges, Edge{Transition: t, Target: target})
}

// PrependEdge inserts (transition, target) at the front of from's edge
// list (eager/greedy priority: tried before everything already present).
// This is how quantifier lowering encodes greedy
// preference purely through transition-list order.
func (a *Automaton) PrependEdge(from StateID, t Transition, target StateID) {
	a.states[from].Edges = append([]Edge{{Transition: t, Target: target}}, a.states[from].Edges...)
}

// SetAccept marks id as an accepting state.
func (a *Automaton) SetAccept(id StateID) {
	a.states[id].Accept = true
}

// State returns a pointer into the arena for direct inspection. The
// returned pointer is invalidated by any subsequent NewState call.
func (a *Automaton) State(id StateID) *State {
	return &a.states[id]
}

// NumStates returns the number of states in the arena.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// IsAccept reports whether id is an accepting state.
func (a *Automaton) IsAccept(id StateID) bool {
	return a.states[id].Accept
}

// IsDeterministic reports whether, for every state and every possible
// input byte, at most one transition matches — definition
// of a DFA as a property rather than a distinct type. It also requires
// the automaton to contain no Epsilon transitions.
func (a *Automaton) IsDeterministic() bool {
	for _, s := range a.states {
		for _, e := range s.Edges {
			if e.Transition.Kind == Epsilon {
				return false
			}
		}
		for b := 0; b < 256; b++ {
			matches := 0
			for _, e := range s.Edges {
				if e.Transition.Matches(byte(b)) {
					matches++
				}
			}
			if matches > 1 {
				return false
			}
		}
	}
	return true
}
