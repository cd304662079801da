package dfa

import (
	"testing"

	"github.com/mpetrov/bytergx/ast"
	"github.com/mpetrov/bytergx/backtrack"
	"github.com/mpetrov/bytergx/fsm"
	"github.com/mpetrov/bytergx/nfa"
)

func build(t *testing.T, alts []ast.Node) *fsm.Automaton {
	t.Helper()
	a, err := nfa.Build(&ast.Pattern{Alternatives: alts})
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	return a
}

func TestDeterminizeIsDeterministic(t *testing.T) {
	n := build(t, []ast.Node{
		&ast.Expression{Items: []ast.Node{
			&ast.Quantified{Item: &ast.MatchCharacter{Codepoint: 'a'}, Quantifier: ast.Quantifier{Kind: ast.QuantStar}},
			&ast.MatchCharacter{Codepoint: 'b'},
		}},
	})
	d := Determinize(n)
	if !d.IsDeterministic() {
		t.Fatal("Determinize output must be deterministic")
	}
}

func TestDeterminizeAgreesWithBacktracking(t *testing.T) {
	cases := []struct {
		name    string
		pattern []ast.Node
		inputs  map[string]bool
	}{
		{
			name: "alternation",
			pattern: []ast.Node{
				&ast.Expression{Items: []ast.Node{&ast.MatchCharacter{Codepoint: 'c'}, &ast.MatchCharacter{Codepoint: 'a'}, &ast.MatchCharacter{Codepoint: 't'}}},
				&ast.Expression{Items: []ast.Node{&ast.MatchCharacter{Codepoint: 'd'}, &ast.MatchCharacter{Codepoint: 'o'}, &ast.MatchCharacter{Codepoint: 'g'}}},
			},
			inputs: map[string]bool{"cat": true, "dog": true, "cow": false, "do": false},
		},
		{
			name: "star then literal",
			pattern: []ast.Node{
				&ast.Expression{Items: []ast.Node{
					&ast.Quantified{Item: &ast.MatchCharacter{Codepoint: 'a'}, Quantifier: ast.Quantifier{Kind: ast.QuantStar}},
					&ast.MatchCharacter{Codepoint: 'b'},
				}},
			},
			inputs: map[string]bool{"b": true, "ab": true, "aaab": true, "aaa": false, "": false},
		},
		{
			name: "digit range",
			pattern: []ast.Node{
				&ast.Expression{Items: []ast.Node{&ast.MatchRange{From: '0', To: '9'}}},
			},
			inputs: map[string]bool{"5": true, "0": true, "9": true, "a": false, "": false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := build(t, tc.pattern)
			d := Determinize(n)
			for in, want := range tc.inputs {
				gotNFA := backtrack.Match(n, []byte(in))
				gotDFA := Match(d, []byte(in))
				if gotNFA != want {
					t.Errorf("backtrack.Match(%q) = %v, want %v", in, gotNFA, want)
				}
				if gotDFA != want {
					t.Errorf("dfa.Match(%q) = %v, want %v", in, gotDFA, want)
				}
			}
		})
	}
}

func TestMaskSpecializationOnHighBitByteRange(t *testing.T) {
	// Any byte with the high bit set: [0x80,0xFF]. (0x80-1)|0x80 == 0xFF,
	// so determinization should specialize this into a Mask transition.
	// Built directly as a raw byte-range fragment (bypassing the codepoint
	// encoder) so the test probes exactly this byte range.
	raw := fsm.New()
	s := raw.NewState()
	e := raw.NewState()
	raw.Initial = s
	raw.SetAccept(e)
	raw.AddEdge(s, fsm.Transition{Kind: fsm.Range, Lo: 0x80, Hi: 0xFF}, e)

	d := Determinize(raw)
	found := false
	for _, edge := range d.State(d.Initial).Edges {
		if edge.Transition.Kind == fsm.Mask && edge.Transition.M == 0x80 {
			found = true
		}
	}
	if !found {
		t.Error("expected determinization to specialize [0x80,0xFF] into Mask(0x80)")
	}
}
