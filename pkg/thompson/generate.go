package thompson

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/thompson-nfa/thompson/internal/codegen"
	"github.com/thompson-nfa/thompson/internal/compiler"
)

// Options configures matcher code generation.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the generated type name (e.g., "Email" generates type Email and CompiledEmail)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// NoPool disables sync.Pool for state-set reuse in the table engine
	NoPool bool

	// Table forces the table engine even for automata that fit a uint64 bitset
	Table bool

	// Strict rejects patterns with missing operands before compiling
	Strict bool

	// GenerateTestFile generates a test file checking the generated matcher against the simulator
	GenerateTestFile bool

	// TestFileInputs is a list of test inputs for the generated test file. If empty and GenerateTestFile is true, defaults to []string{"example"}
	TestFileInputs []string

	// Verbose logs analysis and engine selection to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Name == "" {
		return errors.New("name cannot be empty")
	}
	if !token.IsIdentifier(o.Name) {
		return fmt.Errorf("name %q is not a Go identifier", o.Name)
	}
	if codegen.IsReserved(o.Name) {
		return fmt.Errorf("name %q collides with an identifier of the generated code", o.Name)
	}
	if o.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}
	if o.Package == "" {
		return errors.New("package cannot be empty")
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not a Go identifier", o.Package)
	}
	return nil
}

// Generate writes a Go matcher for opts.Pattern to opts.OutputFile.
// It returns an error if the options or the pattern are invalid or code
// generation fails.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	compile := Compile
	if opts.Strict {
		compile = CompileStrict
	}
	re, err := compile(opts.Pattern)
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}

	// Set default for GenerateTestFile
	generateTestFile := opts.GenerateTestFile || len(opts.TestFileInputs) > 0
	testInputs := opts.TestFileInputs
	if generateTestFile && len(testInputs) == 0 {
		testInputs = []string{"example"}
	}

	c := compiler.New(compiler.Config{
		Pattern:          opts.Pattern,
		Name:             opts.Name,
		OutputFile:       opts.OutputFile,
		Package:          opts.Package,
		NFA:              re.prog,
		UsePool:          !opts.NoPool, // Invert: NoPool flag disables pool
		ForceTable:       opts.Table,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   testInputs,
		Verbose:          opts.Verbose,
	})

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
