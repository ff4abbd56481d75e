package benchmarks_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/thompson-nfa/thompson/pkg/thompson"
	"github.com/wasilibs/go-re2"
)

// anchored rewrites a pattern into an equivalent fully anchored RE2
// expression. The explicit concatenation operator has no RE2 spelling and
// is dropped; every other non-operator rune is quoted.
func anchored(pattern string) string {
	var b strings.Builder
	b.WriteString("^(?:")
	for _, r := range pattern {
		switch r {
		case '.':
		case '*', '+', '|', '(', ')':
			b.WriteRune(r)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(")$")
	return b.String()
}

var patterns = []string{
	"abc",
	"a*",
	"a+b+",
	"a|b|c",
	"a(bc*|d+)",
	"(a|b)*abb",
	"(cat|dog)s?",
	"d.a.r*.e.n",
	"((a|b)(c|d))+",
	"x(y|z*)+w",
	"héllo|wörld",
	"",
}

var inputs = []string{
	"", "a", "b", "c", "ab", "abc", "abcc", "ad", "abb", "babaabb",
	"cats?", "dogs", "darrren", "daen", "acbd", "xw", "xyzzw", "xyyw",
	"héllo", "wörld", "aaaaaaaa", "aabb",
}

// TestAgreesWithRegexp checks full-match results against the standard
// library and RE2 on the shared operator subset.
func TestAgreesWithRegexp(t *testing.T) {
	for _, p := range patterns {
		re := thompson.MustCompile(p)
		std := regexp.MustCompile(anchored(p))
		wasm := re2.MustCompile(anchored(p))

		for _, in := range inputs {
			got := re.MatchString(in)
			if want := std.MatchString(in); got != want {
				t.Errorf("Match(%q, %q) = %v, regexp %s says %v", p, in, got, std, want)
			}
			if want := wasm.MatchString(in); got != want {
				t.Errorf("Match(%q, %q) = %v, re2 %s says %v", p, in, got, wasm, want)
			}
		}
	}
}

func BenchmarkMatch(b *testing.B) {
	benchmarks := []struct {
		name    string
		pattern string
		input   string
	}{
		{"literal", "hello", "hello"},
		{"suffix", "(a|b)*abb", strings.Repeat("ab", 32) + "b"},
		{"nested", "(a*)*b", strings.Repeat("a", 64)},
		{"alternation", "(cat|dog|bird)+", strings.Repeat("dogcat", 16)},
	}

	for _, bm := range benchmarks {
		re := thompson.MustCompile(bm.pattern)
		std := regexp.MustCompile(anchored(bm.pattern))
		wasm := re2.MustCompile(anchored(bm.pattern))

		b.Run(bm.name+"/thompson", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				re.MatchString(bm.input)
			}
		})

		b.Run(bm.name+"/regexp", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				std.MatchString(bm.input)
			}
		})

		b.Run(bm.name+"/re2", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				wasm.MatchString(bm.input)
			}
		})
	}
}

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := thompson.Compile("a(bc*|d+)(e|f)*g"); err != nil {
			b.Fatal(err)
		}
	}
}
