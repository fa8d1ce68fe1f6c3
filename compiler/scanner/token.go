// Package scanner implements a lexical scanner for JavaScript (ECMAScript)
// source text. It consumes a UTF-8 string and produces a sequence of
// (Token, Span) items suitable for a downstream parser, editor, linter, or
// minifier. The scanner does not build a parse tree, validate regex pattern
// correctness, decode escape sequences, or perform automatic semicolon
// insertion.
package scanner

import "fmt"

// Kind is the tag of a Token's closed sum type.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindNull
	KindKeyword
	KindIdent
	KindNumber
	KindString
	KindTemplate
	KindRegex
	KindPunct
	KindComment
	KindEoF
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindNull:
		return "Null"
	case KindKeyword:
		return "Keyword"
	case KindIdent:
		return "Ident"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindTemplate:
		return "Template"
	case KindRegex:
		return "RegEx"
	case KindPunct:
		return "Punct"
	case KindComment:
		return "Comment"
	case KindEoF:
		return "EoF"
	default:
		return "Unknown"
	}
}

// Quote is the delimiter a string literal was written with.
type Quote byte

const (
	SingleQuote Quote = '\''
	DoubleQuote Quote = '"'
)

// TemplatePart distinguishes the four shapes a template literal fragment
// can take.
type TemplatePart uint8

const (
	NoSub TemplatePart = iota
	Head
	Middle
	Tail
)

func (p TemplatePart) String() string {
	switch p {
	case NoSub:
		return "NoSub"
	case Head:
		return "Head"
	case Middle:
		return "Middle"
	case Tail:
		return "Tail"
	default:
		return "Unknown"
	}
}

// CommentKind distinguishes line (`//`) from block (`/* */`) comments.
type CommentKind uint8

const (
	LineComment CommentKind = iota
	BlockComment
)

// Token is a tagged variant over the lexical categories of spec.md §3. Only
// the fields relevant to Kind are meaningful; the rest are zero values. This
// mirrors a closed sum type rather than an object hierarchy, per the "tagged
// variants" design note: a single struct with a discriminant field, not one
// type per token category.
type Token struct {
	Kind Kind

	// Text carries the primary payload: the identifier/keyword spelling for
	// KindIdent/KindKeyword, the literal-as-written for KindNumber, the body
	// text for KindString/KindTemplate/KindRegex/KindComment.
	Text string

	Bool         bool         // KindBoolean
	Quote        Quote        // KindString
	TemplatePart TemplatePart // KindTemplate
	CommentKind  CommentKind  // KindComment
	Punct        Punct        // KindPunct
	RegexFlags   string       // KindRegex (empty means no flags)
}

// IsKeyword reports whether the token is a Keyword variant.
func (t Token) IsKeyword() bool { return t.Kind == KindKeyword }

// IsPunct reports whether the token is a Punct variant.
func (t Token) IsPunct() bool { return t.Kind == KindPunct }

// IsIdent reports whether the token is an Ident variant.
func (t Token) IsIdent() bool { return t.Kind == KindIdent }

// IsEoF reports whether the token is the terminal EoF variant.
func (t Token) IsEoF() bool { return t.Kind == KindEoF }

// MatchesPunct reports whether the token is the given punctuator.
func (t Token) MatchesPunct(p Punct) bool {
	return t.Kind == KindPunct && t.Punct == p
}

// MatchesKeyword reports whether the token is the given keyword spelling.
func (t Token) MatchesKeyword(kw string) bool {
	return t.Kind == KindKeyword && t.Text == kw
}

// IsTemplateHead reports whether the token opens a substitution (Head part).
func (t Token) IsTemplateHead() bool {
	return t.Kind == KindTemplate && t.TemplatePart == Head
}

// IsTemplateTail reports whether the token closes a template (Tail or NoSub).
func (t Token) IsTemplateTail() bool {
	return t.Kind == KindTemplate && (t.TemplatePart == Tail || t.TemplatePart == NoSub)
}

// Equal reports structural equality between two tokens.
func (t Token) Equal(o Token) bool {
	return t == o
}

// String renders a debug representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case KindBoolean:
		return fmt.Sprintf("Boolean(%v)", t.Bool)
	case KindNull:
		return "Null"
	case KindKeyword:
		return fmt.Sprintf("Keyword(%s)", t.Text)
	case KindIdent:
		return fmt.Sprintf("Ident(%s)", t.Text)
	case KindNumber:
		return fmt.Sprintf("Number(%s)", t.Text)
	case KindString:
		return fmt.Sprintf("String(%c%s%c)", t.Quote, t.Text, t.Quote)
	case KindTemplate:
		return fmt.Sprintf("Template(%s,%q)", t.TemplatePart, t.Text)
	case KindRegex:
		if t.RegexFlags == "" {
			return fmt.Sprintf("RegEx(%s)", t.Text)
		}
		return fmt.Sprintf("RegEx(%s,%s)", t.Text, t.RegexFlags)
	case KindPunct:
		return fmt.Sprintf("Punct(%s)", t.Punct)
	case KindComment:
		kind := "Line"
		if t.CommentKind == BlockComment {
			kind = "Block"
		}
		return fmt.Sprintf("Comment(%s,%q)", kind, t.Text)
	case KindEoF:
		return "EoF"
	default:
		return "Unknown"
	}
}

// Span is a half-open byte-offset range into the source text: [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Text returns the substring of source covered by the span.
func (s Span) Text(source string) string { return source[s.Start:s.End] }

// Item pairs a recognized Token with the Span of source it was lexed from.
type Item struct {
	Token Token
	Span  Span
}
