package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Tree is a parsed pattern: one or more alternative branches.
type Tree struct {
	Branches []*Branch `parser:"@@ ( '|' @@ )*"`
}

// Branch is a concatenation of factors, optionally joined by ConcatOp.
type Branch struct {
	Factors []*Factor `parser:"@@ ( '.'? @@ )*"`
}

// Factor is an atom followed by any number of postfix operators.
type Factor struct {
	Atom    *Atom    `parser:"@@"`
	Repeats []string `parser:"@( '*' | '+' )*"`
}

// Atom is either a single literal character or a parenthesised tree.
type Atom struct {
	Char  *string `parser:"  @Char"`
	Group *Tree   `parser:"| '(' @@ ')'"`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `[*+|().]`},
	{Name: "Char", Pattern: `[^*+|().]`},
})

var treeParser = participle.MustBuild[Tree](
	participle.Lexer(patternLexer),
)

// Parse checks pattern against the full grammar and returns its tree.
// Unlike Shunt it rejects operators without operands, e.g. "*a", "a|" or
// "()". The empty pattern yields an empty tree.
func Parse(pattern string) (*Tree, error) {
	if pattern == "" {
		return &Tree{}, nil
	}

	tree, err := treeParser.ParseString("", pattern)
	if err != nil {
		pos := -1
		var perr participle.Error
		if errors.As(err, &perr) {
			pos = perr.Position().Offset
		}
		return nil, &Error{Err: fmt.Errorf("%w: %s", ErrInvalidSyntax, errorMessage(err)), Expr: pattern, Pos: pos}
	}
	return tree, nil
}

func errorMessage(err error) string {
	var perr participle.Error
	if errors.As(err, &perr) {
		return perr.Message()
	}
	return err.Error()
}

// String renders the tree back into pattern syntax without explicit
// concatenation operators.
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	for i, br := range t.Branches {
		if i > 0 {
			b.WriteRune(AlternateOp)
		}
		for _, f := range br.Factors {
			f.Atom.write(b)
			for _, r := range f.Repeats {
				b.WriteString(r)
			}
		}
	}
}

func (a *Atom) write(b *strings.Builder) {
	if a.Char != nil {
		b.WriteString(*a.Char)
		return
	}
	b.WriteRune(OpenParen)
	a.Group.write(b)
	b.WriteRune(CloseParen)
}

// Dump renders the tree structure one node per line.
func (t *Tree) Dump() string {
	var b strings.Builder
	t.dump(&b, 0)
	return b.String()
}

func (t *Tree) dump(b *strings.Builder, depth int) {
	indent := func(d int) {
		b.WriteString(strings.Repeat("  ", d))
	}

	if len(t.Branches) == 0 {
		indent(depth)
		b.WriteString("empty\n")
		return
	}
	if len(t.Branches) > 1 {
		indent(depth)
		b.WriteString("alternate\n")
		depth++
	}
	for _, br := range t.Branches {
		d := depth
		if len(br.Factors) > 1 {
			indent(d)
			b.WriteString("concat\n")
			d++
		}
		for _, f := range br.Factors {
			fd := d
			for i := len(f.Repeats) - 1; i >= 0; i-- {
				indent(fd)
				if f.Repeats[i] == string(StarOp) {
					b.WriteString("star\n")
				} else {
					b.WriteString("plus\n")
				}
				fd++
			}
			if f.Atom.Char != nil {
				indent(fd)
				fmt.Fprintf(b, "literal %q\n", *f.Atom.Char)
				continue
			}
			indent(fd)
			b.WriteString("group\n")
			f.Atom.Group.dump(b, fd+1)
		}
	}
}
