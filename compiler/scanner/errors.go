package scanner

import (
	"fmt"

	cerrors "github.com/conduit-lang/jsscan/compiler/errors"
)

// newError builds a compiler/errors.CompilerError for a scanner failure.
// Its location records the file name and the 1-based line and column
// tracked by the scanner as it advances; offset is not stored in it.
func (s *Scanner) newError(code string, offset, line, column int, format string, args ...interface{}) error {
	loc := cerrors.SourceLocation{
		File:   s.file,
		Line:   line,
		Column: column,
		Length: 1,
	}
	msg := fmt.Sprintf(format, args...)
	ce := cerrors.NewCompilerError("scanner", code, msg, loc, cerrors.Error)
	ce = cerrors.EnrichError(ce, s.source)
	return ce
}

func (s *Scanner) errUnterminatedString(offset, line, column int, quote byte) error {
	return s.newError(cerrors.ErrUnterminatedString, offset, line, column,
		"unterminated string literal starting with %c", quote)
}

func (s *Scanner) errUnterminatedComment(offset, line, column int) error {
	return s.newError(cerrors.ErrUnterminatedComment, offset, line, column,
		"unterminated block comment")
}

func (s *Scanner) errUnterminatedTemplate(offset, line, column int) error {
	return s.newError(cerrors.ErrUnterminatedTemplate, offset, line, column,
		"unterminated template literal")
}

func (s *Scanner) errUnterminatedRegex(offset, line, column int) error {
	return s.newError(cerrors.ErrUnterminatedRegex, offset, line, column,
		"unterminated regular expression literal")
}

func (s *Scanner) errInvalidEscape(offset, line, column int, r rune) error {
	return s.newError(cerrors.ErrInvalidEscape, offset, line, column,
		"invalid escape sequence %q", r)
}

func (s *Scanner) errInvalidUnicodeEscape(offset, line, column int) error {
	return s.newError(cerrors.ErrInvalidUnicodeEscape, offset, line, column,
		"invalid unicode escape sequence")
}

func (s *Scanner) errInvalidNumber(offset, line, column int) error {
	return s.newError(cerrors.ErrInvalidNumber, offset, line, column,
		"invalid numeric literal")
}

func (s *Scanner) errUnrecognizedInput(offset, line, column int, r rune) error {
	return s.newError(cerrors.ErrUnrecognizedInput, offset, line, column,
		"unrecognized input %q", r)
}
