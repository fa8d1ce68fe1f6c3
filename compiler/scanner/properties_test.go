package scanner

import (
	"testing"
)

// TestScenarios exercises the six concrete end-to-end examples.
func TestScenarios(t *testing.T) {
	t.Run("use strict function", func(t *testing.T) {
		items, err := Tokenize("'use strict';\nfunction f(){let x=0;}")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{
			KindString, KindPunct, KindKeyword, KindIdent, KindPunct, KindPunct,
			KindPunct, KindKeyword, KindIdent, KindPunct, KindNumber, KindPunct,
			KindPunct, KindEoF,
		}
		assertKinds(t, items, want)
	})

	t.Run("template with two substitutions", func(t *testing.T) {
		items, err := Tokenize("`a${x}b${y}c`")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{KindTemplate, KindIdent, KindTemplate, KindIdent, KindTemplate, KindEoF}
		assertKinds(t, items, want)

		if items[0].Token.TemplatePart != Head || items[0].Token.Text != "a" {
			t.Errorf("items[0] = %v, want Template(Head,a)", items[0].Token)
		}
		if items[2].Token.TemplatePart != Middle || items[2].Token.Text != "b" {
			t.Errorf("items[2] = %v, want Template(Middle,b)", items[2].Token)
		}
		if items[4].Token.TemplatePart != Tail || items[4].Token.Text != "c" {
			t.Errorf("items[4] = %v, want Template(Tail,c)", items[4].Token)
		}
	})

	t.Run("regex after if condition", func(t *testing.T) {
		items, err := Tokenize("if (1) /a/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{KindKeyword, KindPunct, KindNumber, KindPunct, KindRegex, KindEoF}
		assertKinds(t, items, want)
		if items[4].Token.Text != "a" || items[4].Token.RegexFlags != "" {
			t.Errorf("items[4] = %v, want RegEx(a,)", items[4].Token)
		}
	})

	t.Run("division after call", func(t *testing.T) {
		items, err := Tokenize("a(1)/2/g")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{
			KindIdent, KindPunct, KindNumber, KindPunct, KindPunct, KindNumber,
			KindPunct, KindIdent, KindEoF,
		}
		assertKinds(t, items, want)
		if !items[4].Token.MatchesPunct(PSlash) || !items[6].Token.MatchesPunct(PSlash) {
			t.Errorf("expected plain division slashes at positions 4 and 6")
		}
	})

	t.Run("double dot number then member access", func(t *testing.T) {
		items, err := Tokenize("20..toString()")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{KindNumber, KindPunct, KindIdent, KindPunct, KindPunct, KindEoF}
		assertKinds(t, items, want)
		if items[0].Token.Text != "20." {
			t.Errorf("items[0].Text = %q, want \"20.\"", items[0].Token.Text)
		}
	})

	t.Run("regex after bare block", func(t *testing.T) {
		items, err := Tokenize(`{}/\d/g;`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{KindPunct, KindPunct, KindRegex, KindPunct, KindEoF}
		assertKinds(t, items, want)
		if items[2].Token.Text != `\d` || items[2].Token.RegexFlags != "g" {
			t.Errorf("items[2] = %v, want RegEx(\\d,g)", items[2].Token)
		}
	})
}

func assertKinds(t *testing.T, items []Item, want []Kind) {
	t.Helper()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d\nitems: %v", len(items), len(want), items)
	}
	for i, k := range want {
		if items[i].Token.Kind != k {
			t.Fatalf("items[%d] = %v, want kind %v", i, items[i].Token, k)
		}
	}
}

// TestSpanCoverage checks invariant 1: spans are non-overlapping,
// monotonically increasing, and their union with inter-token whitespace
// covers the whole input.
func TestSpanCoverage(t *testing.T) {
	sources := []string{
		"let x = 1 + 2;",
		"  const y =\t`a${1+1}b`  ;\n",
		"/* c */ if (x) /re/g.test(x); else y--;",
	}

	for _, src := range sources {
		items, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", src, err)
		}
		prevEnd := 0
		for _, it := range items {
			if it.Span.Start < prevEnd {
				t.Fatalf("%q: span %v overlaps previous end %d", src, it.Span, prevEnd)
			}
			if it.Span.End < it.Span.Start {
				t.Fatalf("%q: span %v has end before start", src, it.Span)
			}
			prevEnd = it.Span.End
		}
		if prevEnd != len(src) {
			t.Fatalf("%q: last span ends at %d, want %d", src, prevEnd, len(src))
		}
	}
}

// TestTermination checks invariant 3: a finite input always yields a finite
// sequence ending in exactly one EoF.
func TestTermination(t *testing.T) {
	sources := []string{"", "   ", "x", "`a`", "if (x) {}"}
	for _, src := range sources {
		items, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", src, err)
		}
		if len(items) == 0 || !items[len(items)-1].Token.IsEoF() {
			t.Fatalf("Tokenize(%q) did not end in exactly one EoF: %v", src, items)
		}
		for _, it := range items[:len(items)-1] {
			if it.Token.IsEoF() {
				t.Fatalf("Tokenize(%q) emitted EoF before the end: %v", src, items)
			}
		}
	}
}

// TestWhitespaceNeutrality checks invariant 4: inserting or removing
// whitespace between tokens never changes the token sequence.
func TestWhitespaceNeutrality(t *testing.T) {
	tight := "let x=1+2;"
	spaced := "  let   x  =  1  +  2  ;  "

	a, err := Tokenize(tight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Tokenize(spaced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Token.Kind != b[i].Token.Kind {
			t.Fatalf("token %d kind differs: %v vs %v", i, a[i].Token, b[i].Token)
		}
		if !a[i].Token.Equal(b[i].Token) {
			t.Fatalf("token %d differs: %v vs %v", i, a[i].Token, b[i].Token)
		}
	}
}

// TestKeywordIdentPartition checks invariant 5: no Ident token's text
// equals a keyword spelling.
func TestKeywordIdentPartition(t *testing.T) {
	items, err := Tokenize("if while for function let yield implements")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, it := range items {
		if it.Token.Kind == KindIdent && lookupKeyword(it.Token.Text) {
			t.Fatalf("Ident token has keyword text %q", it.Token.Text)
		}
	}
}

// TestLexemeFidelity checks invariant 2: re-scanning the substring at a
// token's span in isolation reproduces the same token, for the token kinds
// that make sense to re-scan standalone (template Middle/Tail parts and
// regex flags depend on scanner state, so they are exercised via the
// dedicated template and regex tests instead).
func TestLexemeFidelity(t *testing.T) {
	src := `let x = "hello" + 42 + foo + /bar/i;`
	items, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, it := range items {
		if it.Token.IsEoF() {
			continue
		}
		lexeme := it.Span.Text(src)
		reItems, err := Tokenize(lexeme)
		if err != nil {
			t.Fatalf("re-tokenizing lexeme %q: %v", lexeme, err)
		}
		if len(reItems) < 2 {
			t.Fatalf("re-tokenizing %q produced no token", lexeme)
		}
		if reItems[0].Token.Kind != it.Token.Kind {
			t.Errorf("re-tokenizing %q gave kind %v, want %v", lexeme, reItems[0].Token.Kind, it.Token.Kind)
		}
	}
}
