package syntax

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
	}{
		{"a", "a"},
		{"abc", "abc"},
		{"a.b.c", "abc"},
		{"a|b", "a|b"},
		{"a(bc*|d+)", "a(bc*|d+)"},
		{"((a))", "((a))"},
		{"a*+", "a*+"},
		{"x y", "x y"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.pattern, err)
			}
			if got := tree.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	tree, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Branches) != 0 {
		t.Errorf("got %d branches, want 0", len(tree.Branches))
	}
	if got := tree.Dump(); got != "empty\n" {
		t.Errorf("Dump() = %q, want %q", got, "empty\n")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []string{
		"*a",
		"a|",
		"|a",
		"()",
		"(a",
		"a)",
		"a||b",
		"a.",
		".a",
		"a.|b",
	}

	for _, pattern := range tests {
		t.Run(pattern, func(t *testing.T) {
			_, err := Parse(pattern)
			if !errors.Is(err, ErrInvalidSyntax) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidSyntax", pattern, err)
			}
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if serr.Expr != pattern {
				t.Errorf("Expr = %q, want %q", serr.Expr, pattern)
			}
		})
	}
}

func TestParseDump(t *testing.T) {
	tree, err := Parse("a(b|c)*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "concat\n" +
		"  literal \"a\"\n" +
		"  star\n" +
		"    group\n" +
		"      alternate\n" +
		"        literal \"b\"\n" +
		"        literal \"c\"\n"
	if got := tree.Dump(); got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}
