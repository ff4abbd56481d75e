package syntax

import (
	"strings"
	"unicode/utf8"
)

// InsertConcat makes implicit concatenation explicit by inserting ConcatOp
// between adjacent sub-expressions, e.g. "a(bc|d*)" becomes "a.(b.c|d*)".
//
// Malformed input is passed through untouched; Shunt and the NFA compiler
// report it.
func InsertConcat(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) * 2)

	var prev rune
	first := true
	for _, c := range pattern {
		if !first && needsConcat(prev, c) {
			b.WriteRune(ConcatOp)
		}
		b.WriteRune(c)
		prev = c
		first = false
	}
	return b.String()
}

// needsConcat reports whether c starts a new operand directly after prev.
func needsConcat(prev, c rune) bool {
	switch c {
	case StarOp, PlusOp, AlternateOp, CloseParen, ConcatOp:
		return false
	}
	// c is a literal or an opening parenthesis.
	return endsOperand(prev)
}

// endsOperand reports whether an operand can end at prev: a literal, a
// closing parenthesis, or a postfix operator.
func endsOperand(prev rune) bool {
	switch prev {
	case OpenParen, AlternateOp, ConcatOp:
		return false
	}
	return true
}

// SourceOffset maps a byte offset into InsertConcat(pattern) back to the
// offset of the corresponding character of pattern. An inserted operator
// maps to the character that follows it.
func SourceOffset(pattern string, infixPos int) int {
	off := 0
	var prev rune
	first := true
	for i, c := range pattern {
		if !first && needsConcat(prev, c) {
			off++
		}
		if off >= infixPos {
			return i
		}
		off += utf8.RuneLen(c)
		prev = c
		first = false
	}
	return len(pattern)
}
