package nfa

import (
	"unicode/utf8"

	"github.com/thompson-nfa/thompson/internal/syntax"
)

// Compile applies Thompson's construction to a postfix token stream. Each
// token pops its operands from a fragment stack and pushes one fragment;
// the single fragment left at the end is the automaton.
//
// An empty stream compiles to one state that is both start and accept.
// Error positions are byte offsets into postfix.String().
func Compile(postfix syntax.Postfix) (*NFA, error) {
	b := &builder{states: make([]State, 0, 2*len(postfix))}
	stack := make([]Fragment, 0, len(postfix))

	off := 0
	for _, tok := range postfix {
		if len(stack) < tok.Arity() {
			return nil, &syntax.Error{Err: syntax.ErrStackUnderflow, Expr: postfix.String(), Pos: off}
		}
		off += utf8.RuneLen(tok.Symbol())

		switch tok.Kind {
		case syntax.Literal:
			accept := b.add(Epsilon)
			start := b.add(tok.Char, accept)
			stack = append(stack, Fragment{Start: start, Accept: accept})

		case syntax.Concat:
			frag1, frag2 := stack[len(stack)-1], stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			b.link(frag2.Accept, frag1.Start)
			stack = append(stack, Fragment{Start: frag2.Start, Accept: frag1.Accept})

		case syntax.Alternate:
			frag1, frag2 := stack[len(stack)-1], stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			accept := b.add(Epsilon)
			start := b.add(Epsilon, frag2.Start, frag1.Start)
			b.link(frag1.Accept, accept)
			b.link(frag2.Accept, accept)
			stack = append(stack, Fragment{Start: start, Accept: accept})

		case syntax.Star:
			frag := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			accept := b.add(Epsilon)
			start := b.add(Epsilon, frag.Start, accept)
			b.relink(frag.Accept, frag.Start, accept)
			stack = append(stack, Fragment{Start: start, Accept: accept})

		case syntax.Plus:
			frag := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			accept := b.add(Epsilon)
			b.relink(frag.Accept, frag.Start, accept)
			stack = append(stack, Fragment{Start: frag.Start, Accept: accept})
		}
	}

	switch len(stack) {
	case 0:
		s := b.add(Epsilon)
		return &NFA{States: b.states, Start: s, Accept: s}, nil
	case 1:
		return &NFA{States: b.states, Start: stack[0].Start, Accept: stack[0].Accept}, nil
	default:
		return nil, &syntax.Error{Err: syntax.ErrDanglingOperand, Expr: postfix.String(), Pos: -1}
	}
}
