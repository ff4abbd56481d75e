package syntax

// precedence orders the operators. Parentheses are listed so that an
// opening parenthesis on the stack is never popped by an operator.
var precedence = map[rune]int{
	StarOp:      100,
	PlusOp:      90,
	ConcatOp:    80,
	AlternateOp: 60,
	CloseParen:  40,
	OpenParen:   20,
}

type stackedOp struct {
	op  rune
	pos int
	out int // len(postfix) when an opening parenthesis was pushed
}

// Shunt converts a concatenation-explicit infix expression into postfix
// tokens with the shunting-yard algorithm. An operator only pops operators
// of strictly higher precedence, so "a.b.c" becomes "abc..".
//
// A group with nothing inside, such as "()", has no operand to offer and is
// rejected with ErrStackUnderflow at the opening parenthesis.
func Shunt(infix string) (Postfix, error) {
	var (
		ops     []stackedOp
		postfix = make(Postfix, 0, len(infix))
	)

	for pos, c := range infix {
		switch c {
		case OpenParen:
			ops = append(ops, stackedOp{op: c, pos: pos, out: len(postfix)})
		case CloseParen:
			for {
				if len(ops) == 0 {
					return nil, &Error{Err: ErrUnbalancedParen, Expr: infix, Pos: pos}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.op == OpenParen {
					if len(postfix) == top.out {
						return nil, &Error{Err: ErrStackUnderflow, Expr: infix, Pos: top.pos}
					}
					break
				}
				postfix = append(postfix, operatorToken(top.op))
			}
		case StarOp, PlusOp, ConcatOp, AlternateOp:
			for len(ops) > 0 && precedence[ops[len(ops)-1].op] > precedence[c] {
				postfix = append(postfix, operatorToken(ops[len(ops)-1].op))
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, stackedOp{op: c, pos: pos})
		default:
			postfix = append(postfix, Token{Kind: Literal, Char: c})
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.op == OpenParen {
			return nil, &Error{Err: ErrUnbalancedParen, Expr: infix, Pos: top.pos}
		}
		postfix = append(postfix, operatorToken(top.op))
	}

	return postfix, nil
}
