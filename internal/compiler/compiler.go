// Package compiler generates Go matchers from compiled Thompson NFAs.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/thompson-nfa/thompson/internal/codegen"
	"github.com/thompson-nfa/thompson/internal/nfa"
)

// MaxBitsetStates is the largest automaton the bitset engine can hold.
const MaxBitsetStates = 64

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Name             string
	OutputFile       string
	Package          string
	NFA              *nfa.NFA
	UsePool          bool      // Enable sync.Pool for state-set reuse in the table engine
	ForceTable       bool      // Use the table engine even when the bitset engine fits
	GenerateTestFile bool      // Generate test file with tests and benchmarks
	TestFileInputs   []string  // Test inputs for generated test file
	Verbose          bool      // Enable verbose logging of analysis decisions
	LogOutput        io.Writer // Destination of verbose output, stderr when nil
}

// Compiler generates Go code for one compiled pattern.
type Compiler struct {
	config    Config
	logger    *Logger
	useBitset bool // True if the automaton fits a uint64 state set
}

// matchGenerator emits the body of the Match methods for one engine.
type matchGenerator interface {
	declare(file *jen.File)
	matchBody(isBytes bool) []jen.Code
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	c := &Compiler{
		config: config,
		logger: NewLogger(config.Verbose),
	}
	if config.LogOutput != nil {
		c.logger.SetOutput(config.LogOutput)
	}

	c.analyzeAndLog()

	return c
}

// analyzeAndLog picks the match engine and logs the decision if verbose
// mode is enabled.
func (c *Compiler) analyzeAndLog() {
	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %s", c.config.Pattern)

	n := c.config.NFA
	if n == nil {
		return
	}
	c.logger.Log("NFA states: %d", n.Len())
	if c.logger.Enabled() {
		c.logger.Log("Labelled states: %d", len(n.LabelledStates()))
	}

	c.logger.Section("Engine Selection")
	switch {
	case c.config.ForceTable:
		c.logger.Log("Match engine: state table (forced by user)")
	case n.Len() <= MaxBitsetStates:
		c.useBitset = true
		c.logger.Log("Match engine: bitset (%d states fit in a uint64)", n.Len())
	default:
		c.logger.Log("Match engine: state table (%d states exceed the bitset limit of %d)", n.Len(), MaxBitsetStates)
	}
	if !c.useBitset {
		c.logger.Log("State set pool: %v", c.config.UsePool)
	}
}

// UsesBitset reports whether the bitset engine was selected.
func (c *Compiler) UsesBitset() bool {
	return c.useBitset
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(file *jen.File, name string) *jen.Statement {
	return file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// build assembles the generated file.
func (c *Compiler) build() (*jen.File, error) {
	if c.config.NFA == nil {
		return nil, errors.New("no automaton to generate from")
	}

	file := jen.NewFile(c.config.Package)
	file.HeaderComment(fmt.Sprintf("Code generated by thompson for pattern %q. DO NOT EDIT.", c.config.Pattern))

	// Generate the main struct type
	file.Type().Id(c.config.Name).Struct()
	file.Line()

	// Generate convenience variable for direct usage
	file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	file.Line()

	var gen matchGenerator
	if c.useBitset {
		c.logger.Log("Using bitset engine for MatchString/MatchBytes")
		gen = newBitsetGenerator(c)
	} else {
		c.logger.Log("Using state table engine for MatchString/MatchBytes")
		gen = newTableGenerator(c)
	}
	gen.declare(file)

	file.Comment(fmt.Sprintf("MatchString reports whether input is fully matched by %q.", c.config.Pattern))
	c.method(file, "MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(gen.matchBody(false)...)
	file.Line()

	file.Comment(fmt.Sprintf("MatchBytes reports whether input is fully matched by %q.", c.config.Pattern))
	c.method(file, "MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(gen.matchBody(true)...)

	return file, nil
}

// Render writes the generated matcher to w without touching the filesystem.
func (c *Compiler) Render(w io.Writer) error {
	file, err := c.build()
	if err != nil {
		return err
	}
	return file.Render(w)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}

	file, err := c.build()
	if err != nil {
		return err
	}

	// Save formats the source before writing it
	if err := file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)

	// Generate test file if requested
	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// TestFilePath returns the path of the test file generated next to output.
func TestFilePath(output string) string {
	return strings.TrimSuffix(output, ".go") + "_test.go"
}

// inputLoop wraps body in a loop that binds each rune of the input to c.
// Both variants decode invalid UTF-8 to utf8.RuneError one byte at a time.
func inputLoop(isBytes bool, body ...jen.Code) *jen.Statement {
	if !isBytes {
		return jen.For(
			jen.List(jen.Id("_"), jen.Id(codegen.CharName)).Op(":=").Range().Id(codegen.InputName),
		).Block(body...)
	}

	decode := []jen.Code{
		jen.List(jen.Id(codegen.CharName), jen.Id(codegen.SizeName)).Op(":=").
			Qual("unicode/utf8", "DecodeRune").Call(jen.Id(codegen.InputName)),
		jen.Id(codegen.InputName).Op("=").Id(codegen.InputName).Index(jen.Id(codegen.SizeName), jen.Empty()),
	}
	return jen.For(jen.Len(jen.Id(codegen.InputName)).Op(">").Lit(0)).Block(append(decode, body...)...)
}
