// Package charclass expands the predefined character-class shorthands
// and POSIX bracket-expression classes into codepoint
// ranges, querying package ucd for the Unicode-backed categories.
package charclass

import (
	"fmt"

	"github.com/mpetrov/bytergx/ast"
	"github.com/mpetrov/bytergx/ucd"
)

// Range is an inclusive codepoint range, re-exported from ucd for
// callers that only need character-class expansion.
type Range = ucd.Range

// literalRanges are shorthands defined directly in terms of codepoints
// rather than a Unicode property query.
var (
	hexRanges = []Range{
		{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'F'}, {Lo: 'a', Hi: 'f'},
	}
	spaceLiteralRanges = []Range{
		{Lo: '\t', Hi: '\r'}, {Lo: ' ', Hi: ' '},
	}
	wordLiteralRanges = []Range{
		{Lo: '0', Hi: '9'}, {Lo: '_', Hi: '_'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'},
	}
)

// Class expands one of the \d \h \s \w shorthands.
func Class(c ast.ClassName) ([]Range, error) {
	switch c {
	case ast.ClassDigit:
		return ucd.Query("general_category=decimal_number")
	case ast.ClassHex:
		return hexRanges, nil
	case ast.ClassSpace:
		return spaceLiteralRanges, nil
	case ast.ClassWord:
		return wordLiteralRanges, nil
	default:
		return nil, fmt.Errorf("charclass: unknown class %d", c)
	}
}

// punctExtra are bare codepoints this engine adds to [:punct:] beyond
// the Unicode punctuation subcategories.
var punctExtra = []Range{
	{Lo: '$', Hi: '$'}, {Lo: '+', Hi: '+'}, {Lo: '<', Hi: '<'},
	{Lo: '=', Hi: '='}, {Lo: '>', Hi: '>'}, {Lo: '^', Hi: '^'},
	{Lo: '`', Hi: '`'}, {Lo: '|', Hi: '|'}, {Lo: '~', Hi: '~'},
}

// POSIX expands one of the [:name:] bracket-expression classes.
// [:graph:] and [:print:] are intentionally unimplemented
// and return ast.ErrUnimplemented.
func POSIX(name ast.POSIXName) ([]Range, error) {
	switch name {
	case ast.POSIXAlnum:
		return unionQueries("general_category=letter", "general_category=mark", "general_category=decimal_number")
	case ast.POSIXAlpha:
		return unionQueries("general_category=letter", "general_category=mark")
	case ast.POSIXASCII:
		return ucd.Query("ascii")
	case ast.POSIXBlank:
		r, err := ucd.Query("general_category=space_separator")
		if err != nil {
			return nil, err
		}
		return append(append([]Range{}, r...), Range{Lo: '\t', Hi: '\t'}), nil
	case ast.POSIXCntrl:
		return unionQueries(
			"general_category=control",
			"general_category=format",
			"general_category=unassigned",
			"general_category=private_use",
			"general_category=surrogate",
		)
	case ast.POSIXDigit:
		return ucd.Query("general_category=decimal_number")
	case ast.POSIXGraph, ast.POSIXPrint:
		return nil, ast.ErrUnimplemented
	case ast.POSIXLower:
		return ucd.Query("general_category=lowercase_letter")
	case ast.POSIXUpper:
		return ucd.Query("general_category=uppercase_letter")
	case ast.POSIXPunct:
		r, err := unionQueries(
			"general_category=connector_punctuation",
			"general_category=dash_punctuation",
			"general_category=open_punctuation",
			"general_category=close_punctuation",
			"general_category=initial_punctuation",
			"general_category=final_punctuation",
			"general_category=other_punctuation",
		)
		if err != nil {
			return nil, err
		}
		return append(r, punctExtra...), nil
	case ast.POSIXSpace:
		r, err := unionQueries(
			"general_category=space_separator",
			"general_category=line_separator",
			"general_category=paragraph_separator",
		)
		if err != nil {
			return nil, err
		}
		r = append(r, spaceLiteralRanges...)
		r = append(r, Range{Lo: 0x0085, Hi: 0x0085})
		return r, nil
	case ast.POSIXWord:
		return unionQueries(
			"general_category=letter", "general_category=mark",
			"general_category=decimal_number", "general_category=connector_punctuation",
		)
	case ast.POSIXXDigit:
		return hexRanges, nil
	default:
		return nil, fmt.Errorf("charclass: unknown posix class %d", name)
	}
}

func unionQueries(names ...string) ([]Range, error) {
	var out []Range
	for _, n := range names {
		r, err := ucd.Query(n)
		if err != nil {
			return nil, err
		}
		out = append(out, r...)
	}
	return out, nil
}
