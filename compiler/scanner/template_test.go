package scanner

import "testing"

func TestTemplateNoSub(t *testing.T) {
	items, err := Tokenize("`hello world`")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok := items[0].Token
	if tok.Kind != KindTemplate || tok.TemplatePart != NoSub || tok.Text != "hello world" {
		t.Fatalf("got %v, want Template(NoSub,\"hello world\")", tok)
	}
}

func TestTemplateSingleSubstitution(t *testing.T) {
	items, err := Tokenize("`a${x}b`")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{KindTemplate, KindIdent, KindTemplate, KindEoF}
	assertKinds(t, items, want)
	if items[0].Token.TemplatePart != Head {
		t.Errorf("items[0] part = %v, want Head", items[0].Token.TemplatePart)
	}
	if items[2].Token.TemplatePart != Tail {
		t.Errorf("items[2] part = %v, want Tail", items[2].Token.TemplatePart)
	}
}

func TestTemplateObjectLiteralInSubstitution(t *testing.T) {
	// The '{' and '}' of the object literal must not be mistaken for the
	// one that closes the substitution.
	items, err := Tokenize("`a${ {x: 1} }b`")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var templateParts []TemplatePart
	for _, it := range items {
		if it.Token.Kind == KindTemplate {
			templateParts = append(templateParts, it.Token.TemplatePart)
		}
	}
	if len(templateParts) != 2 || templateParts[0] != Head || templateParts[1] != Tail {
		t.Fatalf("got template parts %v, want [Head Tail]", templateParts)
	}
}

func TestNestedTemplateInSubstitution(t *testing.T) {
	items, err := Tokenize("`a${`b${c}d`}e`")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var templates []Token
	for _, it := range items {
		if it.Token.Kind == KindTemplate {
			templates = append(templates, it.Token)
		}
	}

	want := []struct {
		part TemplatePart
		text string
	}{
		{Head, "a"},
		{Head, "b"},
		{Tail, "d"},
		{Tail, "e"},
	}
	if len(templates) != len(want) {
		t.Fatalf("got %d template parts, want %d: %v", len(templates), len(want), templates)
	}
	for i, w := range want {
		if templates[i].TemplatePart != w.part || templates[i].Text != w.text {
			t.Errorf("templates[%d] = %v, want Template(%v,%q)", i, templates[i], w.part, w.text)
		}
	}
}

func TestUnterminatedTemplate(t *testing.T) {
	if _, err := Tokenize("`no closing backtick"); err == nil {
		t.Fatalf("expected an error, got none")
	}
}

func TestTemplateSubstitutionRunsToEoFWithoutScannerError(t *testing.T) {
	// An unclosed '${' expression is a parser-level concern (an unexpected
	// EoF where '}' was expected), not a lexical one: the scanner has
	// nothing left to recognize but ordinary tokens, so it terminates
	// normally.
	items, err := Tokenize("`a${x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{KindTemplate, KindIdent, KindEoF}
	assertKinds(t, items, want)
}
