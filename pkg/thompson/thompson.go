// Package thompson matches strings against regular expressions compiled to
// Thompson NFAs.
//
// Patterns are built from literal characters and five operators:
// juxtaposition for concatenation, '|' for alternation, '*' for zero or
// more, '+' for one or more, and parentheses for grouping. '.' may be used
// as an explicit concatenation operator. Matching is always against the
// whole input and never backtracks.
package thompson

import (
	"errors"
	"fmt"
	"io"

	"github.com/thompson-nfa/thompson/internal/nfa"
	"github.com/thompson-nfa/thompson/internal/syntax"
)

// Pattern rejection causes, for use with errors.Is.
var (
	ErrUnbalancedParen = syntax.ErrUnbalancedParen
	ErrStackUnderflow  = syntax.ErrStackUnderflow
	ErrDanglingOperand = syntax.ErrDanglingOperand
	ErrInvalidSyntax   = syntax.ErrInvalidSyntax
)

// Error describes a rejected pattern.
type Error = syntax.Error

// Regexp is a compiled pattern. It is safe for concurrent use.
type Regexp struct {
	expr    string
	infix   string
	postfix syntax.Postfix
	prog    *nfa.NFA
}

// Compile parses a pattern and returns a Regexp that can be matched
// against text.
func Compile(pattern string) (*Regexp, error) {
	return compile(pattern, false)
}

// CompileStrict is like Compile but also checks the pattern against the
// full grammar, rejecting operators that lack an operand (e.g. "*a" or
// "a||b") with ErrInvalidSyntax. Unbalanced parentheses and empty groups
// are reported exactly as Compile reports them.
func CompileStrict(pattern string) (*Regexp, error) {
	return compile(pattern, true)
}

func compile(pattern string, strict bool) (*Regexp, error) {
	infix := syntax.InsertConcat(pattern)

	postfix, err := syntax.Shunt(infix)
	if err != nil {
		return nil, sourceError(pattern, err, func(pos int) int {
			return syntax.SourceOffset(pattern, pos)
		})
	}

	if strict {
		if _, err := syntax.Parse(pattern); err != nil {
			return nil, err
		}
	}

	prog, err := nfa.Compile(postfix)
	if err != nil {
		return nil, sourceError(pattern, err, nil)
	}

	return &Regexp{
		expr:    pattern,
		infix:   infix,
		postfix: postfix,
		prog:    prog,
	}, nil
}

// sourceError rewrites an error about the normalized or postfix form of
// pattern so that it refers to pattern itself. A nil locate drops the
// position.
func sourceError(pattern string, err error, locate func(int) int) error {
	var serr *syntax.Error
	if !errors.As(err, &serr) {
		return err
	}
	pos := -1
	if locate != nil && serr.Pos >= 0 {
		pos = locate(serr.Pos)
	}
	return &Error{Err: serr.Err, Expr: pattern, Pos: pos}
}

// MustCompile is like Compile but panics if the pattern is rejected.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("thompson: Compile(%q): %v", pattern, err))
	}
	return re
}

// Match reports whether text is entirely matched by pattern. A non-nil
// error means the pattern was rejected; a non-match is (false, nil).
func Match(pattern, text string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(text), nil
}

// MatchString reports whether s is entirely matched by re.
func (re *Regexp) MatchString(s string) bool {
	return re.prog.Match(s)
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.expr
}

// Infix returns the pattern with explicit concatenation operators.
func (re *Regexp) Infix() string {
	return re.infix
}

// Postfix returns the pattern in postfix notation, e.g. "ab|c*.".
func (re *Regexp) Postfix() string {
	return re.postfix.String()
}

// NumStates returns the number of states in the compiled automaton.
func (re *Regexp) NumStates() int {
	return re.prog.Len()
}

// WriteDot writes a Graphviz rendering of the compiled automaton to w.
func (re *Regexp) WriteDot(w io.Writer) error {
	return re.prog.WriteDot(w)
}
