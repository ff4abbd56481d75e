// Command thompson matches inputs against a pattern, explains how the
// pattern compiles, exports its automaton, or generates a Go matcher.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thompson-nfa/thompson/internal/casefile"
	"github.com/thompson-nfa/thompson/internal/compiler"
	"github.com/thompson-nfa/thompson/internal/syntax"
	"github.com/thompson-nfa/thompson/pkg/thompson"
)

// Exit codes follow grep.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// arrayFlags collects a flag that may be given more than once.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	pattern    string
	inputs     arrayFlags
	strict     bool
	verbose    bool
	explain    bool
	dot        string
	generate   bool
	output     string
	name       string
	pkg        string
	noPool     bool
	table      bool
	testInputs arrayFlags
	cases      string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("thompson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pattern, "pattern", "", "regular expression to compile")
	fs.Var(&opts.inputs, "input", "input to match (repeatable)")
	fs.BoolVar(&opts.strict, "strict", false, "also check patterns against the full grammar")
	fs.BoolVar(&opts.verbose, "verbose", false, "log compilation stages to stderr")
	fs.BoolVar(&opts.explain, "explain", false, "print the normalized infix, postfix and parse tree")
	fs.StringVar(&opts.dot, "dot", "", "write the automaton in Graphviz format to `file` (- for stdout)")
	fs.BoolVar(&opts.generate, "generate", false, "generate a Go matcher")
	fs.StringVar(&opts.output, "output", "", "generated file path")
	fs.StringVar(&opts.name, "name", "", "generated type name")
	fs.StringVar(&opts.pkg, "package", "main", "generated package name")
	fs.BoolVar(&opts.noPool, "no-pool", false, "disable sync.Pool in generated table matchers")
	fs.BoolVar(&opts.table, "table", false, "force the table engine in generated code")
	fs.Var(&opts.testInputs, "test-input", "input for the generated test file (repeatable)")
	fs.StringVar(&opts.cases, "cases", "", "run a YAML case `file`")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: thompson -pattern P [-input S ...] [-strict] [-explain] [-dot file] [-verbose]")
		fmt.Fprintln(stderr, "       thompson -pattern P -generate -output F -name N [-package P] [-no-pool] [-table] [-test-input S ...]")
		fmt.Fprintln(stderr, "       thompson -cases file")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitMatch
		}
		return exitError
	}

	logger := compiler.NewLogger(opts.verbose)
	logger.SetOutput(stderr)

	if opts.cases != "" {
		return runCases(opts.cases, stdout, stderr, opts.strict, logger)
	}

	if opts.pattern == "" && !isFlagSet(fs, "pattern") {
		fs.Usage()
		return exitError
	}

	if opts.generate {
		err := thompson.Generate(thompson.Options{
			Pattern:          opts.pattern,
			Name:             opts.name,
			OutputFile:       opts.output,
			Package:          opts.pkg,
			NoPool:           opts.noPool,
			Table:            opts.table,
			Strict:           opts.strict,
			GenerateTestFile: len(opts.testInputs) > 0,
			TestFileInputs:   opts.testInputs,
			Verbose:          opts.verbose,
		})
		if err != nil {
			fmt.Fprintf(stderr, "thompson: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "generated %s\n", opts.output)
		return exitMatch
	}

	re, err := compile(opts.pattern, opts.strict)
	if err != nil {
		fmt.Fprintf(stderr, "thompson: %v\n", err)
		return exitError
	}

	logger.Section("Compilation")
	logger.Log("Pattern: %s", re)
	logger.Log("Infix: %s", re.Infix())
	logger.Log("Postfix: %s", re.Postfix())
	logger.Log("NFA states: %d", re.NumStates())

	if opts.explain {
		if err := explain(stdout, re); err != nil {
			fmt.Fprintf(stderr, "thompson: %v\n", err)
			return exitError
		}
	}

	if opts.dot != "" {
		if err := writeDot(opts.dot, stdout, re); err != nil {
			fmt.Fprintf(stderr, "thompson: %v\n", err)
			return exitError
		}
	}

	code := exitMatch
	for _, in := range opts.inputs {
		matched := re.MatchString(in)
		fmt.Fprintf(stdout, "%s\t%v\n", in, matched)
		if !matched {
			code = exitNoMatch
		}
	}
	return code
}

func compile(pattern string, strict bool) (*thompson.Regexp, error) {
	if strict {
		return thompson.CompileStrict(pattern)
	}
	return thompson.Compile(pattern)
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func explain(w io.Writer, re *thompson.Regexp) error {
	tree, err := syntax.Parse(re.String())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pattern:  %s\n", re)
	fmt.Fprintf(w, "infix:    %s\n", re.Infix())
	fmt.Fprintf(w, "postfix:  %s\n", re.Postfix())
	fmt.Fprintf(w, "states:   %d\n", re.NumStates())
	fmt.Fprintln(w, "tree:")
	for _, line := range strings.Split(strings.TrimSuffix(tree.Dump(), "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}

func writeDot(path string, stdout io.Writer, re *thompson.Regexp) error {
	if path == "-" {
		return re.WriteDot(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := re.WriteDot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runCases(path string, stdout, stderr io.Writer, strict bool, logger *compiler.Logger) int {
	cases, err := casefile.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "thompson: %v\n", err)
		return exitError
	}
	logger.Log("Loaded %d cases from %s", len(cases), path)

	failed := 0
	for _, tc := range cases {
		re, err := compile(tc.Pattern, strict)
		if tc.Invalid {
			if err == nil {
				fmt.Fprintf(stdout, "FAIL\t%s\tpattern %q compiled, want error\n", tc.Name, tc.Pattern)
				failed++
			} else {
				fmt.Fprintf(stdout, "PASS\t%s\trejected: %v\n", tc.Name, err)
			}
			continue
		}
		if err != nil {
			fmt.Fprintf(stdout, "FAIL\t%s\t%v\n", tc.Name, err)
			failed++
			continue
		}

		caseFailed := false
		check := func(in string, want bool) {
			if got := re.MatchString(in); got != want {
				fmt.Fprintf(stdout, "FAIL\t%s\tMatch(%q, %q) = %v, want %v\n", tc.Name, tc.Pattern, in, got, want)
				caseFailed = true
			}
		}
		for _, in := range tc.Match {
			check(in, true)
		}
		for _, in := range tc.NoMatch {
			check(in, false)
		}

		if caseFailed {
			failed++
			continue
		}
		fmt.Fprintf(stdout, "PASS\t%s\t%d inputs\n", tc.Name, len(tc.Inputs()))
	}

	fmt.Fprintf(stdout, "%d/%d cases passed\n", len(cases)-failed, len(cases))
	if failed > 0 {
		return exitNoMatch
	}
	return exitMatch
}
