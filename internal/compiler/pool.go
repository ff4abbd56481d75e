package compiler

import (
	"github.com/dave/jennifer/jen"
	"github.com/thompson-nfa/thompson/internal/codegen"
)

// generateSetPool generates a sync.Pool of state-set pairs for the table engine.
func (g *tableGenerator) generateSetPool(file *jen.File) {
	file.Var().Id(g.poolName).Op("=").Qual("sync", "Pool").Values(jen.Dict{
		jen.Id("New"): jen.Func().Params().Interface().Block(
			jen.Id(codegen.SetsName).Op(":=").Index(jen.Lit(2)).Index().Bool().Values(
				jen.Make(jen.Index().Bool(), jen.Lit(g.nfa.Len())),
				jen.Make(jen.Index().Bool(), jen.Lit(g.nfa.Len())),
			),
			jen.Return(jen.Op("&").Id(codegen.SetsName)),
		),
	})
	file.Line()
}

// generatePooledSetInit generates code to get a state-set pair from the pool.
func (g *tableGenerator) generatePooledSetInit() []jen.Code {
	return []jen.Code{
		// Get sets from pool
		jen.Id(codegen.SetsName).Op(":=").Id(g.poolName).Dot("Get").Call().Assert(jen.Op("*").Index(jen.Lit(2)).Index().Bool()),
		// Defer return to pool
		jen.Defer().Id(g.poolName).Dot("Put").Call(jen.Id(codegen.SetsName)),
		jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Op(":=").List(
			jen.Id(codegen.SetsName).Index(jen.Lit(0)),
			jen.Id(codegen.SetsName).Index(jen.Lit(1)),
		),
		// Pooled sets still hold the previous caller's states
		jen.Id("clear").Call(jen.Id(codegen.CurrentName)),
	}
}
