// Package syntax turns infix patterns into postfix token streams.
//
// A pattern is read in two passes: InsertConcat makes every implicit
// concatenation explicit, then Shunt reorders the result into postfix form
// using operator precedence. Parse offers a stricter grammar check on top.
package syntax

import "strings"

// Reserved operator symbols. None of them can be used as a literal.
const (
	StarOp      = '*'
	PlusOp      = '+'
	ConcatOp    = '.'
	AlternateOp = '|'
	OpenParen   = '('
	CloseParen  = ')'
)

// Kind identifies a postfix token.
type Kind uint8

const (
	Literal Kind = iota
	Concat
	Alternate
	Star
	Plus
)

var kindNames = [...]string{
	Literal:   "literal",
	Concat:    "concat",
	Alternate: "alternate",
	Star:      "star",
	Plus:      "plus",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a single postfix element. Char is only meaningful for literals.
type Token struct {
	Kind Kind
	Char rune
}

// Arity returns the number of operands the token consumes.
func (t Token) Arity() int {
	switch t.Kind {
	case Concat, Alternate:
		return 2
	case Star, Plus:
		return 1
	default:
		return 0
	}
}

// Symbol returns the character the token is written as.
func (t Token) Symbol() rune {
	switch t.Kind {
	case Concat:
		return ConcatOp
	case Alternate:
		return AlternateOp
	case Star:
		return StarOp
	case Plus:
		return PlusOp
	default:
		return t.Char
	}
}

func (t Token) String() string {
	return string(t.Symbol())
}

// Postfix is a token sequence in reverse Polish order.
type Postfix []Token

// String renders the sequence in the conventional postfix notation,
// e.g. "ab|c*.".
func (p Postfix) String() string {
	var b strings.Builder
	for _, t := range p {
		b.WriteRune(t.Symbol())
	}
	return b.String()
}

// operatorToken maps a binary or postfix operator symbol to its token.
func operatorToken(r rune) Token {
	switch r {
	case StarOp:
		return Token{Kind: Star}
	case PlusOp:
		return Token{Kind: Plus}
	case ConcatOp:
		return Token{Kind: Concat}
	case AlternateOp:
		return Token{Kind: Alternate}
	}
	return Token{Kind: Literal, Char: r}
}
