package literal

import (
	"reflect"
	"sort"
	"testing"

	"github.com/mpetrov/bytergx/ast"
)

func chars(s string) []ast.Node {
	items := make([]ast.Node, 0, len(s))
	for _, c := range s {
		items = append(items, &ast.MatchCharacter{Codepoint: c})
	}
	return items
}

func TestExtractSimpleLiteral(t *testing.T) {
	n := &ast.Expression{Items: chars("hello")}
	got := Extract(n)
	if !reflect.DeepEqual(got, []string{"hello"}) {
		t.Errorf("Extract(\"hello\") = %v, want [\"hello\"]", got)
	}
}

func TestExtractLongestRun(t *testing.T) {
	items := append(chars("ab"), &ast.MatchAny{})
	items = append(items, chars("wxyz")...)
	n := &ast.Expression{Items: items}
	got := Extract(n)
	if !reflect.DeepEqual(got, []string{"wxyz"}) {
		t.Errorf("Extract(longest run) = %v, want [\"wxyz\"]", got)
	}
}

func TestExtractNoLiteralForPureWildcard(t *testing.T) {
	n := &ast.Expression{Items: []ast.Node{&ast.MatchAny{}, &ast.MatchAny{}}}
	if got := Extract(n); got != nil {
		t.Errorf("Extract(wildcard-only) = %v, want nil", got)
	}
}

func TestExtractAlternationUnion(t *testing.T) {
	pat := &ast.Pattern{Alternatives: []ast.Node{
		&ast.Expression{Items: chars("cat")},
		&ast.Expression{Items: chars("dog")},
	}}
	got := Extract(pat)
	sort.Strings(got)
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract(alternation) = %v, want %v", got, want)
	}
}

func TestExtractAlternationWithOneLiteralFreeBranchYieldsNothing(t *testing.T) {
	pat := &ast.Pattern{Alternatives: []ast.Node{
		&ast.Expression{Items: chars("cat")},
		&ast.Expression{Items: []ast.Node{&ast.MatchAny{}}},
	}}
	if got := Extract(pat); got != nil {
		t.Errorf("Extract(mixed alternation) = %v, want nil", got)
	}
}
