package scanner

// keywords is the full enumerated keyword set from spec.md §6: reserved,
// future-reserved, strict-mode-reserved, and contextual/restricted words.
// "true", "false", and "null" are deliberately absent — they lex as the
// Boolean and Null variants, not Keyword (see §3's token model).
var keywords = map[string]bool{
	// Reserved
	"break": true, "case": true, "catch": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "finally": true, "for": true, "function": true,
	"if": true, "in": true, "instanceof": true, "new": true,
	"return": true, "switch": true, "this": true, "throw": true,
	"try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,

	// Future-reserved
	"enum": true, "export": true, "import": true, "super": true,

	// Strict-mode reserved
	"implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	"yield": true,

	// Contextual/restricted
	"eval": true, "arguments": true,
}

// lookupKeyword reports whether text is one of the enumerated keywords.
func lookupKeyword(text string) bool {
	return keywords[text]
}
