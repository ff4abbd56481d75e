package compiler

import (
	"github.com/dave/jennifer/jen"
	"github.com/thompson-nfa/thompson/internal/codegen"
	"github.com/thompson-nfa/thompson/internal/nfa"
)

// tableGenerator generates a table-driven simulation for automata too large
// for a uint64 bitset. Labels and post-transition closures are emitted as
// package-level tables; state sets are []bool pairs.
type tableGenerator struct {
	compiler     *Compiler
	nfa          *nfa.NFA
	labelsName   string
	closuresName string
	startName    string
	acceptName   string
	poolName     string
	stepName     string
}

func newTableGenerator(c *Compiler) *tableGenerator {
	name := c.config.Name
	return &tableGenerator{
		compiler:     c,
		nfa:          c.config.NFA,
		labelsName:   codegen.TableName(name, codegen.LabelsTable),
		closuresName: codegen.TableName(name, codegen.ClosuresTable),
		startName:    codegen.TableName(name, codegen.StartTable),
		acceptName:   codegen.TableName(name, codegen.AcceptConst),
		poolName:     codegen.TableName(name, codegen.SetPool),
		stepName:     codegen.TableName(name, codegen.StepFunc),
	}
}

func (g *tableGenerator) declare(file *jen.File) {
	n := g.nfa

	labels := make([]jen.Code, n.Len())
	closures := make([]jen.Code, n.Len())
	for id, s := range n.States {
		if s.IsEpsilon() {
			labels[id] = jen.Lit(int(nfa.Epsilon))
			closures[id] = jen.Nil()
			continue
		}
		labels[id] = jen.LitRune(s.Label)
		closures[id] = jen.Values(intLits(n.Closure(s.Out[0]))...)
	}

	file.Comment("Label of every state, -1 for epsilon states")
	file.Var().Id(g.labelsName).Op("=").Index(jen.Lit(n.Len())).Rune().Values(labels...)
	file.Line()

	file.Comment("States entered after a labelled state consumes its rune")
	file.Var().Id(g.closuresName).Op("=").Index(jen.Lit(n.Len())).Index().Int().Values(closures...)
	file.Line()

	file.Var().Id(g.startName).Op("=").Index().Int().Values(intLits(n.Closure(n.Start))...)
	file.Line()

	file.Const().Id(g.acceptName).Op("=").Lit(n.Accept)
	file.Line()

	if g.compiler.config.UsePool {
		g.generateSetPool(file)
	}

	g.generateStep(file)
}

// generateStep emits the helper that moves current to next over one rune
// and reports whether any state survived.
func (g *tableGenerator) generateStep(file *jen.File) {
	file.Func().Id(g.stepName).
		Params(
			jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Index().Bool(),
			jen.Id(codegen.CharName).Rune(),
		).
		Params(jen.Bool()).
		Block(
			jen.Id("clear").Call(jen.Id(codegen.NextName)),
			jen.Id("alive").Op(":=").False(),
			jen.For(jen.List(jen.Id("s"), jen.Id("on")).Op(":=").Range().Id(codegen.CurrentName)).Block(
				jen.If(jen.Id("on").Op("&&").Id(g.labelsName).Index(jen.Id("s")).Op("==").Id(codegen.CharName)).Block(
					jen.For(jen.List(jen.Id("_"), jen.Id("t")).Op(":=").Range().Id(g.closuresName).Index(jen.Id("s"))).Block(
						jen.Id(codegen.NextName).Index(jen.Id("t")).Op("=").True(),
					),
					jen.Id("alive").Op("=").True(),
				),
			),
			jen.Return(jen.Id("alive")),
		)
	file.Line()
}

func (g *tableGenerator) matchBody(isBytes bool) []jen.Code {
	var code []jen.Code
	if g.compiler.config.UsePool {
		code = g.generatePooledSetInit()
	} else {
		code = []jen.Code{
			jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Op(":=").List(
				jen.Make(jen.Index().Bool(), jen.Lit(g.nfa.Len())),
				jen.Make(jen.Index().Bool(), jen.Lit(g.nfa.Len())),
			),
		}
	}

	return append(code,
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id(g.startName)).Block(
			jen.Id(codegen.CurrentName).Index(jen.Id("s")).Op("=").True(),
		),
		jen.Line(),
		inputLoop(isBytes,
			jen.If(jen.Op("!").Id(g.stepName).Call(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName), jen.Id(codegen.CharName))).Block(
				jen.Return(jen.False()),
			),
			jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Op("=").List(jen.Id(codegen.NextName), jen.Id(codegen.CurrentName)),
		),
		jen.Line(),
		jen.Return(jen.Id(codegen.CurrentName).Index(jen.Id(g.acceptName))),
	)
}

func intLits(ids []int) []jen.Code {
	lits := make([]jen.Code, len(ids))
	for i, id := range ids {
		lits[i] = jen.Lit(id)
	}
	return lits
}
