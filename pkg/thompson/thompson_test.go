package thompson

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/thompson-nfa/thompson/internal/casefile"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"abc", "", false},
		{"a*", "", true},
		{"a*", "aaaaaaaaaaa", true},
		{"a*", "b", false},
		{"a+", "", false},
		{"a+", "a", true},
		{"a+", "aaaaaaa", true},
		{"a|b", "a", true},
		{"a|b", "ab", false},
		{"a(bc*|d+)", "abcccccc", true},
		{"a(bc*|d+)", "adddddddddd", true},
		{"a(bc*|d+)", "bc", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.input)
			if err != nil {
				t.Fatalf("Match(%q, %q) returned error: %v", tt.pattern, tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchRejectsPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"(a", ErrUnbalancedParen},
		{"a)", ErrUnbalancedParen},
		{"a(b|c", ErrUnbalancedParen},
		{"a|", ErrStackUnderflow},
		{"|a", ErrStackUnderflow},
		{"*", ErrStackUnderflow},
		{"*a", ErrStackUnderflow},
		{"()", ErrStackUnderflow},
		{"a()", ErrStackUnderflow},
		{"()b", ErrStackUnderflow},
		{"a()b", ErrStackUnderflow},
		{"(())|a", ErrStackUnderflow},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			matched, err := Match(tt.pattern, "a")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Match(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
			if matched {
				t.Error("a rejected pattern must not report a match")
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Errorf("error %T is not *Error", err)
			}
		})
	}
}

func TestCompileStrict(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"a(bc*|d+)", nil},
		{"", nil},
		{"*a", ErrInvalidSyntax},
		{"a||b", ErrInvalidSyntax},
		{"(a", ErrUnbalancedParen},
		{"a)", ErrUnbalancedParen},
		{"a(b|c", ErrUnbalancedParen},
		{"()", ErrStackUnderflow},
		{"a()b", ErrStackUnderflow},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := CompileStrict(tt.pattern)
			if tt.want == nil && err != nil {
				t.Fatalf("CompileStrict(%q) returned error: %v", tt.pattern, err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("CompileStrict(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
		})
	}

	// Both paths reject the same patterns with the same cause.
	for _, tt := range tests {
		if tt.want == nil || errors.Is(tt.want, ErrInvalidSyntax) {
			continue
		}
		_, strictErr := CompileStrict(tt.pattern)
		_, lenientErr := Compile(tt.pattern)
		if strictErr.Error() != lenientErr.Error() {
			t.Errorf("%q: strict error %q differs from %q", tt.pattern, strictErr, lenientErr)
		}
	}
}

func TestCompileErrorLocation(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
		msg     string
	}{
		{"ab)", 2, `unbalanced parenthesis at offset 2 in "ab)"`},
		{"x(ab", 1, `unbalanced parenthesis at offset 1 in "x(ab"`},
		{"a()b", 1, `missing operand at offset 1 in "a()b"`},
		{"é)", 2, `unbalanced parenthesis at offset 2 in "é)"`},
		{"a|", -1, `missing operand in "a|"`},
		{"*a", -1, `missing operand in "*a"`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Compile(%q) error = %v, want *Error", tt.pattern, err)
			}
			if perr.Expr != tt.pattern {
				t.Errorf("Expr = %q, want %q", perr.Expr, tt.pattern)
			}
			if perr.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", perr.Pos, tt.pos)
			}
			if got := err.Error(); got != tt.msg {
				t.Errorf("Error() = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestRegexpAccessors(t *testing.T) {
	re := MustCompile("a(bc|d*)")

	if got := re.String(); got != "a(bc|d*)" {
		t.Errorf("String() = %q", got)
	}
	if got := re.Infix(); got != "a.(b.c|d*)" {
		t.Errorf("Infix() = %q, want %q", got, "a.(b.c|d*)")
	}
	if got := re.Postfix(); got != "abc.d*|." {
		t.Errorf("Postfix() = %q, want %q", got, "abc.d*|.")
	}
	if got := re.NumStates(); got != 12 {
		t.Errorf("NumStates() = %d, want 12", got)
	}

	var buf bytes.Buffer
	if err := re.WriteDot(&buf); err != nil {
		t.Fatalf("WriteDot failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "digraph NFA {") {
		t.Errorf("unexpected DOT output:\n%s", buf.String())
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile did not panic on an unbalanced pattern")
		}
	}()
	MustCompile("(a")
}

func TestMatchIsDeterministic(t *testing.T) {
	patterns := []string{"a(bc*|d+)", "(a|b)*abb", "(a*)*", "x+y*z"}
	inputs := []string{"", "a", "abccc", "adddd", "babaabb", "xxyyz", "xz", "yz"}

	for _, p := range patterns {
		for _, in := range inputs {
			first, err := Match(p, in)
			if err != nil {
				t.Fatalf("Match(%q, %q) returned error: %v", p, in, err)
			}
			for i := 0; i < 3; i++ {
				if again, _ := Match(p, in); again != first {
					t.Fatalf("Match(%q, %q) changed from %v to %v", p, in, first, again)
				}
			}
		}
	}
}

func TestConcurrentMatch(t *testing.T) {
	re := MustCompile("a(bc*|d+)")
	inputs := map[string]bool{"ab": true, "abccc": true, "addd": true, "bc": false, "": false}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(inputs))
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				for in, want := range inputs {
					if got := re.MatchString(in); got != want {
						errs <- in
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for in := range errs {
		t.Errorf("concurrent MatchString(%q) returned the wrong result", in)
	}
}

// TestPostfixEquivalence checks that compiling a hand-normalized infix
// string and its user-facing form accept the same inputs.
func TestPostfixEquivalence(t *testing.T) {
	pairs := []struct {
		user       string
		normalized string
	}{
		{"abc", "a.b.c"},
		{"abc|(a+bc)", "a.b.c|(a+.b.c)"},
		{"(ab)+", "(a.b)+"},
		{"a(bc|d*)", "a.(b.c|d*)"},
	}
	inputs := []string{"", "abc", "abbc", "aabc", "ab", "abab", "abc", "a", "ad", "addd", "abcd"}

	for _, p := range pairs {
		user := MustCompile(p.user)
		normalized := MustCompile(p.normalized)
		if user.Postfix() != normalized.Postfix() {
			t.Errorf("postfix of %q = %q, of %q = %q", p.user, user.Postfix(), p.normalized, normalized.Postfix())
		}
		for _, in := range inputs {
			if user.MatchString(in) != normalized.MatchString(in) {
				t.Errorf("%q and %q disagree on %q", p.user, p.normalized, in)
			}
		}
	}
}

func TestCaseFile(t *testing.T) {
	cases, err := casefile.Load("testdata/cases.yaml")
	if err != nil {
		t.Fatalf("failed to load cases: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			re, err := Compile(tc.Pattern)
			if tc.Invalid {
				if err == nil {
					t.Fatalf("Compile(%q) succeeded, want error", tc.Pattern)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile(%q) returned error: %v", tc.Pattern, err)
			}
			for _, in := range tc.Match {
				if !re.MatchString(in) {
					t.Errorf("%q should match %q", tc.Pattern, in)
				}
			}
			for _, in := range tc.NoMatch {
				if re.MatchString(in) {
					t.Errorf("%q should not match %q", tc.Pattern, in)
				}
			}
		})
	}
}
