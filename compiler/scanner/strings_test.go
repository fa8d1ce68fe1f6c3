package scanner

import "testing"

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		src   string
		quote Quote
		body  string
	}{
		{`"hello"`, DoubleQuote, "hello"},
		{`'hello'`, SingleQuote, "hello"},
		{`""`, DoubleQuote, ""},
		{`"line1\nline2"`, DoubleQuote, `line1\nline2`},
		{`"quote: \""`, DoubleQuote, `quote: \"`},
		{`'it\'s'`, SingleQuote, `it\'s`},
		{`"\x41"`, DoubleQuote, `\x41`},
		{`"A"`, DoubleQuote, `A`},
		{`"\u{1F600}"`, DoubleQuote, `\u{1F600}`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			items, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.src, err)
			}
			tok := items[0].Token
			if tok.Kind != KindString {
				t.Fatalf("Tokenize(%q) kind = %v, want String", tt.src, tok.Kind)
			}
			if tok.Quote != tt.quote {
				t.Errorf("Tokenize(%q) quote = %c, want %c", tt.src, tok.Quote, tt.quote)
			}
			if tok.Text != tt.body {
				t.Errorf("Tokenize(%q) text = %q, want %q", tt.src, tok.Text, tt.body)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	tests := []string{`"no closing quote`, "'no closing quote", "\"newline\nbreaks\""}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if _, err := Tokenize(src); err == nil {
				t.Fatalf("Tokenize(%q) expected an error, got none", src)
			}
		})
	}
}

func TestStringLineContinuation(t *testing.T) {
	src := "\"foo\\\nbar\""
	items, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Token.Kind != KindString {
		t.Fatalf("got %v, want String", items[0].Token)
	}
}
