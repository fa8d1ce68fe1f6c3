package scanner

import (
	"fmt"
	"strings"
	"testing"
)

// generateJSSource builds a synthetic JavaScript source of 5*lines lines
// (one five-line function per unit), mixing the constructs exercised elsewhere in this package: functions,
// template literals, regexes, and numeric/string literals.
func generateJSSource(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&b, "function f%d(a, b) {\n", i)
		fmt.Fprintf(&b, "  const name = `item-${a}-%d`;\n", i)
		fmt.Fprintf(&b, "  if (/^item-\\d+/.test(name)) { return a / b; }\n")
		fmt.Fprintf(&b, "  return a + b * %d - 0x%x;\n", i, i)
		b.WriteString("}\n")
	}
	return b.String()
}

// BenchmarkTokenize1000LOC benchmarks tokenizing roughly 1000 lines.
func BenchmarkTokenize1000LOC(b *testing.B) {
	source := generateJSSource(200)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = Tokenize(source)
	}
}

// BenchmarkTokenize10000LOC benchmarks tokenizing roughly 10000 lines.
func BenchmarkTokenize10000LOC(b *testing.B) {
	source := generateJSSource(2000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = Tokenize(source)
	}
}

// BenchmarkKeywordLookup benchmarks keyword lookup performance.
func BenchmarkKeywordLookup(b *testing.B) {
	keywords := []string{
		"function", "if", "else", "return", "const", "let", "var",
		"typeof", "instanceof", "new", "class", "while",
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, kw := range keywords {
			_ = lookupKeyword(kw)
		}
	}
}

// BenchmarkIdentifiers benchmarks identifier scanning in isolation.
func BenchmarkIdentifiers(b *testing.B) {
	identifiers := []string{
		"userName", "emailAddress", "createdAt", "userId", "postTitle",
		"authorName", "categorySlug", "publishedAt", "updatedAt",
	}
	source := strings.Join(identifiers, " ")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = Tokenize(source)
	}
}

// BenchmarkRegexDisambiguation benchmarks the history-based regex/division
// check on a source with many candidate '/' positions.
func BenchmarkRegexDisambiguation(b *testing.B) {
	source := strings.Repeat(`if (x) { y = /a/.test(x); z = a / b; } `, 50)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = Tokenize(source)
	}
}
