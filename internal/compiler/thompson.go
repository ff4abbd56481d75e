package compiler

import (
	"github.com/dave/jennifer/jen"
	"github.com/thompson-nfa/thompson/internal/codegen"
	"github.com/thompson-nfa/thompson/internal/nfa"
)

// bitsetGenerator generates Thompson NFA simulation code over a uint64
// state set. Every state is one bit; epsilon closures are resolved at
// generation time so each input rune costs one guarded OR per labelled
// state.
type bitsetGenerator struct {
	compiler     *Compiler
	nfa          *nfa.NFA
	closures     []uint64 // Precomputed epsilon closures
	startClosure uint64   // Epsilon closure of start state
	acceptMask   uint64   // Bit of the accepting state
	charStates   []int    // States that consume characters
}

func newBitsetGenerator(c *Compiler) *bitsetGenerator {
	n := c.config.NFA
	g := &bitsetGenerator{
		compiler:   c,
		nfa:        n,
		closures:   computeEpsilonClosures(n),
		acceptMask: uint64(1) << n.Accept,
		charStates: n.LabelledStates(),
	}
	g.startClosure = g.closures[n.Start]
	return g
}

// computeEpsilonClosures returns, for every state, the bitset of states
// reachable from it without consuming input.
func computeEpsilonClosures(n *nfa.NFA) []uint64 {
	closures := make([]uint64, n.Len())
	for id := range n.States {
		for _, s := range n.Closure(id) {
			closures[id] |= uint64(1) << s
		}
	}
	return closures
}

// The bitset engine keeps everything in locals.
func (g *bitsetGenerator) declare(*jen.File) {}

func (g *bitsetGenerator) matchBody(isBytes bool) []jen.Code {
	if len(g.charStates) == 0 {
		// Nothing consumes input, only the empty string can be accepted.
		if g.startClosure&g.acceptMask != 0 {
			return []jen.Code{jen.Return(jen.Len(jen.Id(codegen.InputName)).Op("==").Lit(0))}
		}
		return []jen.Code{jen.Return(jen.False())}
	}

	return []jen.Code{
		jen.Comment("Thompson NFA state set (bitset representation)"),
		jen.Id(codegen.CurrentName).Op(":=").Lit(g.startClosure),
		jen.Line(),
		inputLoop(isBytes, g.transitionBlock()...),
		jen.Line(),
		jen.Return(jen.Id(codegen.CurrentName).Op("&").Lit(g.acceptMask).Op("!=").Lit(0)),
	}
}

// transitionBlock advances the state set over one rune.
func (g *bitsetGenerator) transitionBlock() []jen.Code {
	block := []jen.Code{
		jen.Var().Id(codegen.NextName).Uint64(),
	}

	for _, id := range g.charStates {
		s := g.nfa.States[id]
		block = append(block,
			jen.Comment(codegen.StateComment(id, s.Label)),
			jen.If(
				jen.Id(codegen.CurrentName).Op("&").Lit(uint64(1)<<id).Op("!=").Lit(0).
					Op("&&").Id(codegen.CharName).Op("==").LitRune(s.Label),
			).Block(
				jen.Id(codegen.NextName).Op("|=").Lit(g.closures[s.Out[0]]),
			),
		)
	}

	return append(block,
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.NextName),
		jen.If(jen.Id(codegen.CurrentName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
	)
}
