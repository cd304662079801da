package syntax

import (
	"testing"

	"github.com/mpetrov/bytergx/ast"
)

func TestParseLiteral(t *testing.T) {
	p, err := Parse("abc")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Alternatives) != 1 {
		t.Fatalf("expected one alternative, got %d", len(p.Alternatives))
	}
	expr, ok := p.Alternatives[0].(*ast.Expression)
	if !ok {
		t.Fatalf("expected *ast.Expression, got %T", p.Alternatives[0])
	}
	if len(expr.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(expr.Items))
	}
}

func TestParseAlternationAndGroup(t *testing.T) {
	p, err := Parse("(cat|dog)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	if len(expr.Items) != 1 {
		t.Fatalf("expected one group item, got %d", len(expr.Items))
	}
	group, ok := expr.Items[0].(*ast.Group)
	if !ok {
		t.Fatalf("expected *ast.Group, got %T", expr.Items[0])
	}
	if len(group.Alternatives) != 2 {
		t.Fatalf("expected 2 alternatives in group, got %d", len(group.Alternatives))
	}
}

func TestParseQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ast.QuantifierKind
	}{
		{"a?", ast.QuantOptional},
		{"a*", ast.QuantStar},
		{"a+", ast.QuantPlus},
	}
	for _, tt := range tests {
		p, err := Parse(tt.pattern)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.pattern, err)
		}
		expr := p.Alternatives[0].(*ast.Expression)
		q, ok := expr.Items[0].(*ast.Quantified)
		if !ok {
			t.Fatalf("Parse(%q): expected *ast.Quantified, got %T", tt.pattern, expr.Items[0])
		}
		if q.Quantifier.Kind != tt.kind {
			t.Errorf("Parse(%q): kind = %v, want %v", tt.pattern, q.Quantifier.Kind, tt.kind)
		}
	}
}

func TestParseBoundedRepeat(t *testing.T) {
	p, err := Parse("a{2,5}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	q := expr.Items[0].(*ast.Quantified)
	if q.Quantifier.Kind != ast.QuantRange || q.Quantifier.Min != 2 || q.Quantifier.Max != 5 || !q.Quantifier.HasMax {
		t.Errorf("Parse(\"a{2,5}\") quantifier = %+v", q.Quantifier)
	}
}

func TestParseUnboundedRepeat(t *testing.T) {
	p, err := Parse("a{2,}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	q := expr.Items[0].(*ast.Quantified)
	if q.Quantifier.Kind != ast.QuantRange || q.Quantifier.Min != 2 || q.Quantifier.HasMax {
		t.Errorf("Parse(\"a{2,}\") quantifier = %+v", q.Quantifier)
	}
}

func TestParseCharacterClass(t *testing.T) {
	p, err := Parse("[a-z0-9]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	set, ok := expr.Items[0].(*ast.MatchSet)
	if !ok {
		t.Fatalf("expected *ast.MatchSet, got %T", expr.Items[0])
	}
	if len(set.Items) != 2 {
		t.Fatalf("expected 2 set items, got %d", len(set.Items))
	}
	if set.Inverted {
		t.Error("set should not be inverted")
	}
}

func TestParseInvertedSetRejected(t *testing.T) {
	if _, err := Parse("[^abc]"); err != ast.ErrUnimplemented {
		t.Fatalf("Parse(\"[^abc]\") err = %v, want ast.ErrUnimplemented", err)
	}
}

func TestParseAnchorsRejected(t *testing.T) {
	for _, pat := range []string{"^abc", "abc$"} {
		if _, err := Parse(pat); err != ast.ErrUnimplemented {
			t.Errorf("Parse(%q) err = %v, want ast.ErrUnimplemented", pat, err)
		}
	}
}

func TestParseShorthandClasses(t *testing.T) {
	p, err := Parse(`\d\w\s\h`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	want := []ast.ClassName{ast.ClassDigit, ast.ClassWord, ast.ClassSpace, ast.ClassHex}
	if len(expr.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(expr.Items))
	}
	for i, w := range want {
		mc := expr.Items[i].(*ast.MatchClass)
		if mc.Class != w {
			t.Errorf("item %d class = %v, want %v", i, mc.Class, w)
		}
	}
}

func TestParseUnicodeProperty(t *testing.T) {
	p, err := Parse(`\p{Greek}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	mp, ok := expr.Items[0].(*ast.MatchProperty)
	if !ok {
		t.Fatalf("expected *ast.MatchProperty, got %T", expr.Items[0])
	}
	if mp.Name != "Greek" {
		t.Errorf("property name = %q, want \"Greek\"", mp.Name)
	}
}

func TestParsePOSIXClass(t *testing.T) {
	p, err := Parse("[[:alpha:]]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expr := p.Alternatives[0].(*ast.Expression)
	set := expr.Items[0].(*ast.MatchSet)
	posix, ok := set.Items[0].(*ast.POSIXClass)
	if !ok {
		t.Fatalf("expected *ast.POSIXClass, got %T", set.Items[0])
	}
	if posix.Name != ast.POSIXAlpha {
		t.Errorf("POSIX class = %v, want POSIXAlpha", posix.Name)
	}
}
