// Package bytecode implements the optional DFA-to-bytecode lowering:
// each DFA state becomes a straight-line block of instructions,
// resolved with a two-pass label scheme (first assign every state's
// entry address, then emit jumps against the final table), and a small
// linear interpreter runs the resulting program against an input
// buffer.
//
// No package in coregx-coregex lowers a DFA directly to a linear
// instruction array (its analogous machinery instead emits Go source);
// this package's state-to-branch lowering idiom is adapted from that
// source-generation approach into an interpreted instruction stream.
package bytecode

import "github.com/mpetrov/bytergx/fsm"

// Op tags the variant carried by an Instruction.
type Op uint8

const (
	// Failure unconditionally rejects the input.
	Failure Op = iota
	// FailLength rejects only if input is exhausted (emitted first in
	// the block of every non-accepting state).
	FailLength
	// Success accepts; only valid when input is exhausted.
	Success
	// Jump consumes one byte of any value, if input remains, then jumps
	// to Addr (the lowering of an Any edge).
	Jump
	// JumpByte consumes one byte if it equals Byte, then jumps to Addr.
	JumpByte
	// JumpMask consumes one byte if b&Mask==Mask, then jumps to Addr.
	JumpMask
	// JumpRange consumes one byte if Lo<=b<=Hi, then jumps to Addr.
	JumpRange
)

// Instruction is one entry of a compiled program.
type Instruction struct {
	Op         Op
	Byte       byte
	Lo, Hi     byte
	Mask       byte
	Addr       int
}

// Program is a compiled, linear instruction stream plus the entry
// address of the automaton's initial state.
type Program struct {
	Instructions []Instruction
	Entry        int
}

// Compile lowers a deterministic automaton d (as produced by package
// dfa's Determinize) into a Program. Two passes: first, walk d's states
// in ID order and record where each one's block will begin; second,
// emit each state's block as [FailLength-or-Success, edges...,
// Failure], resolving Jump/JumpByte/JumpMask/JumpRange targets against
// that address table.
func Compile(d *fsm.Automaton) *Program {
	n := d.NumStates()
	blockAddr := make([]int, n)

	addr := 0
	for i := 0; i < n; i++ {
		blockAddr[i] = addr
		addr += len(d.State(fsm.StateID(i)).Edges) + 2 // leading marker + trailing Failure
	}

	prog := &Program{Instructions: make([]Instruction, 0, addr), Entry: blockAddr[int(d.Initial)]}
	for i := 0; i < n; i++ {
		state := d.State(fsm.StateID(i))
		if state.Accept {
			prog.Instructions = append(prog.Instructions, Instruction{Op: Success})
		} else {
			prog.Instructions = append(prog.Instructions, Instruction{Op: FailLength})
		}
		for _, e := range state.Edges {
			target := blockAddr[int(e.Target)]
			switch e.Transition.Kind {
			case fsm.Character:
				prog.Instructions = append(prog.Instructions, Instruction{Op: JumpByte, Byte: e.Transition.Lo, Addr: target})
			case fsm.Range:
				prog.Instructions = append(prog.Instructions, Instruction{Op: JumpRange, Lo: e.Transition.Lo, Hi: e.Transition.Hi, Addr: target})
			case fsm.Mask:
				prog.Instructions = append(prog.Instructions, Instruction{Op: JumpMask, Mask: e.Transition.M, Addr: target})
			case fsm.Any:
				prog.Instructions = append(prog.Instructions, Instruction{Op: Jump, Addr: target})
			}
		}
		prog.Instructions = append(prog.Instructions, Instruction{Op: Failure})
	}
	return prog
}

// Run interprets prog against input, returning whether it accepts. Each
// state's block leads with a FailLength/Success marker consulted only
// when input is exhausted, falls through to try its edges
// instruction-by-instruction in order (mirroring the DFA edge-list
// priority) otherwise, and ends with an unconditional Failure reached
// once none of the edges matched the current byte.
func Run(prog *Program, input []byte) bool {
	pc := prog.Entry
	pos := 0
	for {
		ins := prog.Instructions[pc]
		switch ins.Op {
		case Failure:
			return false
		case FailLength:
			if pos == len(input) {
				return false
			}
			pc++
		case Success:
			if pos == len(input) {
				return true
			}
			pc++
		case Jump:
			// Any: consumes unconditionally if input remains.
			if pos < len(input) {
				pos++
				pc = ins.Addr
				continue
			}
			pc++
		case JumpByte:
			if pos < len(input) && input[pos] == ins.Byte {
				pos++
				pc = ins.Addr
				continue
			}
			pc++
		case JumpMask:
			if pos < len(input) && input[pos]&ins.Mask == ins.Mask {
				pos++
				pc = ins.Addr
				continue
			}
			pc++
		case JumpRange:
			if pos < len(input) && input[pos] >= ins.Lo && input[pos] <= ins.Hi {
				pos++
				pc = ins.Addr
				continue
			}
			pc++
		}
	}
}
