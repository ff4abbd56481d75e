package compiler

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/thompson-nfa/thompson/internal/codegen"
)

// generateTestFile writes a table test and a benchmark for the generated
// matcher. Expected results come from simulating the automaton in process.
func (c *Compiler) generateTestFile() error {
	file := c.buildTestFile()
	path := TestFilePath(c.config.OutputFile)
	if err := file.Save(path); err != nil {
		return err
	}
	c.logger.Log("Wrote %s with %d inputs", path, len(c.config.TestFileInputs))
	return nil
}

func (c *Compiler) buildTestFile() *jen.File {
	name := codegen.UpperFirst(c.config.Name)
	compiled := fmt.Sprintf("Compiled%s", c.config.Name)

	file := jen.NewFile(c.config.Package)
	file.HeaderComment(fmt.Sprintf("Code generated by thompson for pattern %q. DO NOT EDIT.", c.config.Pattern))

	entries := make([]jen.Code, 0, len(c.config.TestFileInputs))
	inputs := make([]jen.Code, 0, len(c.config.TestFileInputs))
	for _, in := range c.config.TestFileInputs {
		entries = append(entries, jen.Values(jen.Lit(in), jen.Lit(c.config.NFA.Match(in))))
		inputs = append(inputs, jen.Lit(in))
	}

	tt := func(field string) *jen.Statement {
		return jen.Id("tt").Dot(field)
	}

	file.Func().Id(fmt.Sprintf("Test%sMatch", name)).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("input").String(),
			jen.Id("want").Bool(),
		).Values(entries...),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.If(
				jen.Id("got").Op(":=").Id(compiled).Dot("MatchString").Call(tt("input")),
				jen.Id("got").Op("!=").Add(tt("want")),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchString(%q) = %v, want %v"), tt("input"), jen.Id("got"), tt("want")),
			),
			jen.If(
				jen.Id("got").Op(":=").Id(compiled).Dot("MatchBytes").Call(jen.Index().Byte().Parens(tt("input"))),
				jen.Id("got").Op("!=").Add(tt("want")),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchBytes(%q) = %v, want %v"), tt("input"), jen.Id("got"), tt("want")),
			),
		),
	)
	file.Line()

	file.Func().Id(fmt.Sprintf("Benchmark%sMatchString", name)).Params(jen.Id("b").Op("*").Qual("testing", "B")).Block(
		jen.Id("inputs").Op(":=").Index().String().Values(inputs...),
		jen.Id("b").Dot("ReportAllocs").Call(),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
			jen.For(jen.List(jen.Id("_"), jen.Id("in")).Op(":=").Range().Id("inputs")).Block(
				jen.Id(compiled).Dot("MatchString").Call(jen.Id("in")),
			),
		),
	)

	return file
}
