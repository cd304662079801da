// Package utf8range implements a byte-level UTF-8 encoder: it lowers a
// codepoint or a codepoint range into one or more fsm fragments that
// accept exactly the UTF-8 encodings of those codepoints, decomposed
// into single-byte Character/Range transitions.
//
// Grounded on coregx-coregex/nfa/compile.go's compileUTF8Range family
// (compileUTF81ByteRange..compileUTF84ByteRange,
// buildUTF8NonASCIIBranches), generalized from regexp/syntax-specific
// helpers into a standalone encoder over the fsm package.
package utf8range

import "github.com/mpetrov/bytergx/fsm"

const maxRune = 0x10FFFF

// fragment is a pair of same-length byte sequences: the minimum and
// maximum encodings accepted along this path. Per byte position i,
// min[i] == max[i] means an exact byte; otherwise the path accepts the
// inclusive range [min[i], max[i]].
type fragment struct {
	min, max []byte
}

// ConnectValue builds a single fragment accepting exactly the UTF-8
// encoding of cp, between from and to.
func ConnectValue(a *fsm.Automaton, from, to fsm.StateID, cp rune) {
	b := encode(cp)
	emit(a, from, to, fragment{min: b, max: b})
}

// ConnectRange builds fragments accepting exactly the UTF-8 encodings of
// every codepoint in [lo, hi], excluding the surrogate gap
// (0xD800-0xDFFF, which is never valid UTF-8).
func ConnectRange(a *fsm.Automaton, from, to fsm.StateID, lo, hi rune) {
	for _, f := range rangeFragments(lo, hi) {
		emit(a, from, to, f)
	}
}

// ConnectAny builds fragments accepting any valid UTF-8 scalar value, by
// delegating to ConnectRange over [0, 0x10FFFF]. The result is not four
// per-width straight paths: ConnectRange splits the 3- and 4-byte
// buckets into many fragments and leaves out the surrogate gap.
func ConnectAny(a *fsm.Automaton, from, to fsm.StateID) {
	ConnectRange(a, from, to, 0, maxRune)
}

// rangeFragments decomposes [lo, hi] into per-width-bucket fragments,
// splitting at the four encoding-length boundaries and excluding surrogates from the 3-byte bucket.
func rangeFragments(lo, hi rune) []fragment {
	if lo > hi {
		return nil
	}
	var out []fragment

	clampEmit := func(bucketLo, bucketHi rune, encode func(lo, hi rune) []fragment) {
		l, h := lo, hi
		if l < bucketLo {
			l = bucketLo
		}
		if h > bucketHi {
			h = bucketHi
		}
		if l > h {
			return
		}
		out = append(out, encode(l, h)...)
	}

	clampEmit(0x0000, 0x007F, width1Fragments)
	clampEmit(0x0080, 0x07FF, width2Fragments)
	// Width 3 covers U+0800-U+FFFF, minus the surrogate gap.
	clampEmit(0x0800, 0xD7FF, width3Fragments)
	clampEmit(0xE000, 0xFFFF, width3Fragments)
	clampEmit(0x10000, maxRune, width4Fragments)

	return out
}

// emit materializes one fragment: allocates len(f.min)-1 fresh
// intermediate states and connects from -> ... -> to with one
// Character or Range transition per byte position. Edges are
// prepended (greedy/eager priority).
func emit(a *fsm.Automaton, from, to fsm.StateID, f fragment) {
	w := len(f.min)
	cur := from
	for i := 0; i < w; i++ {
		next := to
		if i < w-1 {
			next = a.NewState()
		}
		a.PrependEdge(cur, byteTransition(f.min[i], f.max[i]), next)
		cur = next
	}
}

func byteTransition(lo, hi byte) fsm.Transition {
	if lo == hi {
		return fsm.Transition{Kind: fsm.Character, Lo: lo, Hi: lo}
	}
	return fsm.Transition{Kind: fsm.Range, Lo: lo, Hi: hi}
}

// encode returns the standard UTF-8 encoding of cp (1-4 bytes).
func encode(cp rune) []byte {
	switch {
	case cp <= 0x7F:
		return []byte{byte(cp)}
	case cp <= 0x7FF:
		return []byte{
			0xC0 | byte(cp>>6),
			0x80 | byte(cp&0x3F),
		}
	case cp <= 0xFFFF:
		return []byte{
			0xE0 | byte(cp>>12),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}
	default:
		return []byte{
			0xF0 | byte(cp>>18),
			0x80 | byte((cp>>12)&0x3F),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}
	}
}

func width1Fragments(lo, hi rune) []fragment {
	return []fragment{{min: []byte{byte(lo)}, max: []byte{byte(hi)}}}
}

// width2Fragments splits a 2-byte-bucket range (U+0080-U+07FF) at the
// lead-byte boundary, grounded on compileUTF82ByteRange.
func width2Fragments(lo, hi rune) []fragment {
	loB, hiB := encode(lo), encode(hi)
	loLead, loCont := loB[0], loB[1]
	hiLead, hiCont := hiB[0], hiB[1]

	if loLead == hiLead {
		return []fragment{{min: []byte{loLead, loCont}, max: []byte{hiLead, hiCont}}}
	}

	var out []fragment
	out = append(out, fragment{min: []byte{loLead, loCont}, max: []byte{loLead, 0xBF}})
	if hiLead > loLead+1 {
		out = append(out, fragment{min: []byte{loLead + 1, 0x80}, max: []byte{hiLead - 1, 0xBF}})
	}
	out = append(out, fragment{min: []byte{hiLead, 0x80}, max: []byte{hiLead, hiCont}})
	return out
}

// width3Fragments splits a 3-byte-bucket range (caller has already
// excluded the surrogate gap), grounded on compileUTF83ByteRangeSimple.
func width3Fragments(lo, hi rune) []fragment {
	loB, hiB := encode(lo), encode(hi)
	loLead, loC1, loC2 := loB[0], loB[1], loB[2]
	hiLead, hiC1, hiC2 := hiB[0], hiB[1], hiB[2]

	switch {
	case loLead == hiLead && loC1 == hiC1:
		return []fragment{{min: []byte{loLead, loC1, loC2}, max: []byte{hiLead, hiC1, hiC2}}}

	case loLead == hiLead:
		var out []fragment
		for c1 := loC1; c1 <= hiC1; c1++ {
			c2Lo, c2Hi := byte(0x80), byte(0xBF)
			if c1 == loC1 {
				c2Lo = loC2
			}
			if c1 == hiC1 {
				c2Hi = hiC2
			}
			out = append(out, fragment{min: []byte{loLead, c1, c2Lo}, max: []byte{loLead, c1, c2Hi}})
			if c1 == 0xFF { // unreachable (c1 is a 7-bit continuation byte), guards overflow
				break
			}
		}
		return out

	default:
		var out []fragment
		for lead := loLead; lead <= hiLead; lead++ {
			c1Lo, c1Hi := byte(0x80), byte(0xBF)
			if lead == loLead {
				c1Lo = loC1
			}
			if lead == hiLead {
				c1Hi = hiC1
			}
			for c1 := c1Lo; c1 <= c1Hi; c1++ {
				c2Lo, c2Hi := byte(0x80), byte(0xBF)
				if lead == loLead && c1 == loC1 {
					c2Lo = loC2
				}
				if lead == hiLead && c1 == hiC1 {
					c2Hi = hiC2
				}
				out = append(out, fragment{min: []byte{lead, c1, c2Lo}, max: []byte{lead, c1, c2Hi}})
				if c1 == 0xBF {
					break
				}
			}
			if lead == 0xFF {
				break
			}
		}
		return out
	}
}

// width4Fragments splits a 4-byte-bucket range (U+10000-U+10FFFF),
// grounded on compileUTF84ByteRange, generalized to vary all three
// continuation bytes rather than conservatively spanning the full
// 0x80-0xBF range for cont2/cont3.
func width4Fragments(lo, hi rune) []fragment {
	loB, hiB := encode(lo), encode(hi)
	loLead, loC1, loC2, loC3 := loB[0], loB[1], loB[2], loB[3]
	hiLead, hiC1, hiC2, hiC3 := hiB[0], hiB[1], hiB[2], hiB[3]

	var out []fragment
	for lead := loLead; lead <= hiLead; lead++ {
		c1Lo, c1Hi := byte(0x80), byte(0xBF)
		if lead == loLead {
			c1Lo = loC1
		}
		if lead == hiLead {
			c1Hi = hiC1
		}
		for c1 := c1Lo; c1 <= c1Hi; c1++ {
			c2Lo, c2Hi := byte(0x80), byte(0xBF)
			if lead == loLead && c1 == loC1 {
				c2Lo = loC2
			}
			if lead == hiLead && c1 == hiC1 {
				c2Hi = hiC2
			}
			for c2 := c2Lo; c2 <= c2Hi; c2++ {
				c3Lo, c3Hi := byte(0x80), byte(0xBF)
				if lead == loLead && c1 == loC1 && c2 == loC2 {
					c3Lo = loC3
				}
				if lead == hiLead && c1 == hiC1 && c2 == hiC2 {
					c3Hi = hiC3
				}
				out = append(out, fragment{min: []byte{lead, c1, c2, c3Lo}, max: []byte{lead, c1, c2, c3Hi}})
				if c2 == 0xBF {
					break
				}
			}
			if c1 == 0xBF {
				break
			}
		}
		if lead == 0xFF {
			break
		}
	}
	return out
}
