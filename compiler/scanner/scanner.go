package scanner

import "unicode/utf8"

// Scanner pulls (Token, Span) items out of a UTF-8 source string one at a
// time. It holds no parse tree and performs no lookahead beyond what a
// single recognizer needs, per spec.md §5: single-threaded, no background
// goroutines, zero-copy over the source string.
type Scanner struct {
	source string
	file   string

	start, current int // byte offsets
	line, column   int // current position, 1-based
	startLine      int // position where the in-progress token began
	startColumn    int

	// openParens holds, for every '(' seen so far that has not yet been
	// closed, the index into history of that '(' token. It is pushed on
	// '(' and popped on ')'.
	openParens []int

	// lastClosedParen is the history index of the '(' that matched the most
	// recently closed ')', or -1 if no paren pair has closed yet. Unlike the
	// scalar "last open paren" bookkeeping in the reference implementation
	// this is snapshotted at pop time, so it still points at the right
	// token once nested parens have closed (see regex.go).
	lastClosedParen int

	// templateDepths is a stack with one entry per currently-open template
	// substitution, holding that substitution's brace nesting depth. Pushed
	// on a Head part, popped on the Tail that closes it; this is what lets
	// nested template literals resume the outer template's brace tracking
	// correctly once the inner one closes.
	templateDepths []int

	history []Item
	eof     bool
}

// New constructs a Scanner over source. The scanner does not copy source;
// all Spans and token text are byte-offset views into it.
func New(source string) *Scanner {
	return &Scanner{
		source:          source,
		line:            1,
		column:          1,
		lastClosedParen: -1,
	}
}

// NewFile is like New but records a file name used in error locations.
func NewFile(source, file string) *Scanner {
	s := New(source)
	s.file = file
	return s
}

// Tokenize drains a Scanner over source into a slice, stopping at the first
// error.
func Tokenize(source string) ([]Item, error) {
	s := New(source)
	var items []Item
	for {
		item, ok, err := s.Next()
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
		if item.Token.IsEoF() {
			return items, nil
		}
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// peek returns the rune at the current offset without consuming it. It
// returns 0 at end of input.
func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return r
}

// peekAt looks ahead n runes past the current offset, decoding one rune at a
// time (not a byte offset) since identifier and regex lookahead only ever
// needs a small fixed number of characters.
func (s *Scanner) peekAt(n int) rune {
	pos := s.current
	for i := 0; i < n; i++ {
		if pos >= len(s.source) {
			return 0
		}
		_, w := utf8.DecodeRuneInString(s.source[pos:])
		pos += w
	}
	if pos >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[pos:])
	return r
}

// peekNext is peekAt(1): the rune after the current one.
func (s *Scanner) peekNext() rune { return s.peekAt(1) }

// advance consumes and returns the current rune, updating line/column.
func (s *Scanner) advance() rune {
	r, w := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += w
	if isLineTerminator(r) {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}

// match consumes the current rune and returns true if it equals want,
// otherwise leaves the cursor untouched and returns false.
func (s *Scanner) match(want rune) bool {
	if s.peek() != want {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) skipWhitespace() {
	for !s.isAtEnd() && isWhitespace(s.peek()) {
		s.advance()
	}
}

func (s *Scanner) inReplacement() bool { return len(s.templateDepths) > 0 }

func (s *Scanner) topTemplateDepth() int {
	if len(s.templateDepths) == 0 {
		return 0
	}
	return s.templateDepths[len(s.templateDepths)-1]
}

func (s *Scanner) bumpTemplateDepth(delta int) {
	n := len(s.templateDepths)
	if n == 0 {
		return
	}
	s.templateDepths[n-1] += delta
}

// Next scans and returns the next lexical item. ok is false once the
// terminal EoF item has already been returned by a previous call, and on
// the call that returns an error. err is non-nil when no recognizer accepts
// the input or a literal, comment, or escape is malformed; an error ends the
// iteration, so every later call returns (Item{}, false, nil). The
// scanner does not attempt recovery, matching spec.md §7's fail-fast
// scanner phase (the driver above it, compiler/errors.ErrorRecovery, is
// where multi-error collection happens).
func (s *Scanner) Next() (Item, bool, error) {
	if s.eof {
		return Item{}, false, nil
	}

	s.skipWhitespace()
	s.start = s.current
	s.startLine, s.startColumn = s.line, s.column

	if s.isAtEnd() {
		s.eof = true
		item := Item{Token: Token{Kind: KindEoF}, Span: Span{Start: s.start, End: s.current}}
		s.history = append(s.history, item)
		return item, true, nil
	}

	tok, err := s.scanGeneral()
	if err != nil {
		s.eof = true
		return Item{}, false, err
	}

	item := Item{Token: tok, Span: Span{Start: s.start, End: s.current}}
	if err := s.postProcess(&item); err != nil {
		s.eof = true
		return Item{}, false, err
	}
	s.history = append(s.history, item)
	return item, true, nil
}

// scanGeneral dispatches on the current character to the right recognizer.
// It assumes skipWhitespace has already run and the cursor is not at EoF.
func (s *Scanner) scanGeneral() (Token, error) {
	r := s.peek()

	switch {
	case r == '/' && s.peekNext() == '/':
		return s.scanLineComment(), nil
	case r == '/' && s.peekNext() == '*':
		return s.scanBlockComment()
	case r == '`':
		return s.scanTemplateHead()
	case r == '}' && s.inReplacement() && s.topTemplateDepth() == 0:
		return s.scanTemplatePart()
	case r == '"' || r == '\'':
		return s.scanString(byte(r))
	case r == '\\' && s.peekNext() == 'u':
		return s.scanIdentifierOrKeyword()
	case isIdentStart(r):
		return s.scanIdentifierOrKeyword()
	case isDigit(r):
		return s.scanNumber()
	case r == '.' && isDigit(s.peekNext()):
		return s.scanNumber()
	default:
		return s.scanPunct()
	}
}

// postProcess runs the bookkeeping spec.md §4.1 describes as happening
// after a token is produced: regex rescanning, open-paren tracking, and
// template brace-depth tracking. It may replace item.Token and widen
// item.Span when a '/' is rescanned as a regex literal.
func (s *Scanner) postProcess(item *Item) error {
	tok := item.Token

	switch {
	case tok.IsPunct() && (tok.Punct == PSlash || tok.Punct == PSlashAssign) && s.isRegexStart():
		s.current = s.start
		s.line, s.column = s.startLine, s.startColumn
		regexTok, err := s.scanRegexFromSlash()
		if err != nil {
			return err
		}
		item.Token = regexTok
		item.Span.End = s.current
		return nil

	case tok.MatchesPunct(PLParen):
		s.openParens = append(s.openParens, len(s.history))

	case tok.MatchesPunct(PRParen):
		if n := len(s.openParens); n > 0 {
			s.lastClosedParen = s.openParens[n-1]
			s.openParens = s.openParens[:n-1]
		}

	case tok.MatchesPunct(PLBrace) && s.inReplacement():
		s.bumpTemplateDepth(1)

	case tok.MatchesPunct(PRBrace) && s.inReplacement():
		// topTemplateDepth() > 0 here: the depth-0 case was already routed
		// to scanTemplatePart in scanGeneral and never reaches this switch
		// as a plain PRBrace.
		s.bumpTemplateDepth(-1)
	}

	return nil
}

// lastNonCommentIndex returns the history index of the most recently
// emitted non-comment token, or -1 if none exists yet.
func (s *Scanner) lastNonCommentIndex() int {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Token.Kind != KindComment {
			return i
		}
	}
	return -1
}

func (s *Scanner) tokenAt(idx int) (Token, bool) {
	if idx < 0 || idx >= len(s.history) {
		return Token{}, false
	}
	return s.history[idx].Token, true
}
