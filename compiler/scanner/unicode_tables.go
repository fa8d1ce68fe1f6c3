package scanner

import "unicode"

// Identifier character classes are derived from the standard library's
// `unicode` package range tables, which track the Unicode Character Database
// version bundled with the running Go toolchain (per spec.md §9's ruling
// that the source-character bound should be the full Unicode scalar value
// range, not a historical artifact like U+0FFF).

// identStartCategories are the Unicode general categories that may begin an
// identifier: uppercase/lowercase/titlecase/modifier/other letters, and
// letter numbers.
var identStartCategories = []*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl,
}

// identPartCategories extends identStartCategories with the categories legal
// only in continuation position: nonspacing/spacing-combining marks, decimal
// digit numbers, and connector punctuation.
var identPartCategories = []*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl,
	unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
}

const (
	zeroWidthNonJoiner = '‌'
	zeroWidthJoiner    = '‍'
)

// isIdentStart reports whether r may begin an identifier: '$', '_', or a
// Unicode letter/letter-number.
func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsOneOf(identStartCategories, r)
}

// isIdentPart reports whether r may continue an identifier: the start set
// plus combining marks, decimal digits, connector punctuation, and the
// zero-width joiner/non-joiner.
func isIdentPart(r rune) bool {
	if r == zeroWidthJoiner || r == zeroWidthNonJoiner {
		return true
	}
	return r == '$' || r == '_' || unicode.IsOneOf(identPartCategories, r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}

func isOctDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

// isLineTerminator reports whether r is one of the four ECMAScript line
// terminators.
func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == ' ' || r == ' '
}

// isWhitespace reports whether r is ECMAScript whitespace, including the
// line terminators (spec.md §4.1 step 2 treats both as skippable).
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', ' ', '\U0000FEFF':
		return true
	default:
		return isLineTerminator(r)
	}
}
