package errors

import "strings"

// suggestFix generates an auto-fix suggestion based on error code.
func suggestFix(err CompilerError) *FixSuggestion {
	switch err.Code {
	case ErrUnterminatedString:
		return suggestCloseString(err)
	case ErrInvalidEscape:
		return suggestValidEscape(err)
	case ErrUnterminatedComment:
		return suggestCloseComment(err)
	case ErrUnterminatedTemplate:
		return suggestCloseTemplate(err)
	case ErrUnterminatedRegex:
		return suggestCloseRegex(err)
	case ErrInvalidUnicodeEscape:
		return suggestValidUnicodeEscape(err)
	case ErrInvalidNumber:
		return suggestValidNumber(err)
	default:
		return nil
	}
}

// suggestCloseString suggests closing an unterminated string literal.
func suggestCloseString(err CompilerError) *FixSuggestion {
	if len(err.Context.SourceLines) == 0 {
		return nil
	}

	errorLine := err.Context.SourceLines[err.Context.Highlight.Line]

	return &FixSuggestion{
		Description: "Add the closing quote",
		OldCode:     strings.TrimSpace(errorLine),
		NewCode:     strings.TrimSpace(errorLine) + `"`,
		Confidence:  0.85,
	}
}

// suggestValidEscape suggests valid escape sequences.
func suggestValidEscape(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Use a recognized escape sequence: \\n, \\t, \\r, \\\\, \\\", \\', \\0, \\xHH, \\uHHHH, \\u{H...}",
		OldCode:     "Invalid escape",
		NewCode:     "Use a standard escape sequence",
		Confidence:  0.80,
	}
}

// suggestCloseComment suggests closing an unterminated block comment.
func suggestCloseComment(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Add the closing '*/'",
		OldCode:     "/* ...",
		NewCode:     "/* ... */",
		Confidence:  0.90,
	}
}

// suggestCloseTemplate suggests closing an unterminated template literal.
func suggestCloseTemplate(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Add the closing backtick, or close the '${' substitution with '}'",
		OldCode:     "`...",
		NewCode:     "`...`",
		Confidence:  0.75,
	}
}

// suggestCloseRegex suggests closing an unterminated regular expression literal.
func suggestCloseRegex(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Add the closing '/' and any flags",
		OldCode:     "/pattern",
		NewCode:     "/pattern/flags",
		Confidence:  0.75,
	}
}

// suggestValidUnicodeEscape suggests fixing a malformed \u escape.
func suggestValidUnicodeEscape(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Unicode escapes need exactly 4 hex digits (\\uHHHH) or a braced code point (\\u{H...})",
		OldCode:     `\u`,
		NewCode:     `\uHHHH`,
		Confidence:  0.80,
	}
}

// suggestValidNumber suggests fixing a malformed numeric literal.
func suggestValidNumber(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check the numeric literal's digits match its base (0x/0o/0b prefix, or decimal with a single '.')",
		OldCode:     "",
		NewCode:     "",
		Confidence:  0.60,
	}
}
