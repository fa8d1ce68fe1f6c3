package scanner

// isRegexStart decides whether a '/' encountered at the current position
// opens a regular expression literal rather than a division or
// divide-assign operator. The rule is history-based: it looks at the last
// emitted non-comment token and, for some punctuators, at the tokens
// immediately surrounding the matching open paren of the most recently
// closed parenthesized group. Grounded on original_source/src/lib.rs's
// is_regex_start/check_for_conditional/check_for_func.
func (s *Scanner) isRegexStart() bool {
	idx := s.lastNonCommentIndex()
	if idx < 0 {
		// Nothing has been lexed yet: a file that opens with '/' opens a
		// regex, not a division (there is nothing to divide).
		return true
	}

	last := s.history[idx].Token

	if !last.IsKeyword() && !last.IsPunct() {
		// Previous token is an identifier or literal: division. (Number,
		// string, template, ident, regex, boolean, null.) A ']' is a
		// punctuator and falls through to the regex case below.
		return false
	}

	if last.MatchesKeyword("this") {
		return false
	}

	if last.MatchesPunct(PRParen) {
		return s.checkForConditional()
	}

	if last.MatchesPunct(PRBrace) {
		return s.checkForFunc()
	}

	// Any other keyword or punctuator (return, typeof, =, &&, (, ...)
	// precedes an expression: regex.
	return true
}

// checkForConditional handles "previous token is ')'": the '/' opens a
// regex only when the parenthesized group belonged to if/for/while/with,
// e.g. `if (x) /foo/.test(x)`. A bare call `f(x) /2` is division.
func (s *Scanner) checkForConditional() bool {
	before, ok := s.nthBeforeLastClosedParen(1)
	if !ok {
		return true
	}
	return before.MatchesKeyword("if") || before.MatchesKeyword("for") ||
		before.MatchesKeyword("while") || before.MatchesKeyword("with")
}

// checkForFunc handles "previous token is '}'": the '/' follows a function
// body or a block statement. A named function declaration or a function
// expression used where an expression is expected opens a regex; an
// ordinary block statement does not.
func (s *Scanner) checkForFunc() bool {
	before1, ok := s.nthBeforeLastClosedParen(1)
	if !ok {
		return true
	}

	switch {
	case before1.IsIdent():
		before3, ok := s.nthBeforeLastClosedParen(3)
		if !ok {
			return true
		}
		return isExpressionContextToken(before3)

	case before1.MatchesKeyword("function"):
		before2, ok := s.nthBeforeLastClosedParen(2)
		if !ok {
			return false
		}
		return isExpressionContextToken(before2)

	default:
		return true
	}
}

// nthBeforeLastClosedParen returns the token n positions before the '('
// that matched the most recently closed ')', or ok=false if there is no
// such paren yet or the index falls off the start of history.
func (s *Scanner) nthBeforeLastClosedParen(n int) (Token, bool) {
	if s.lastClosedParen < 0 {
		return Token{}, false
	}
	return s.tokenAt(s.lastClosedParen - n)
}

// isExpressionContextToken reports whether t sits in a position where an
// expression, rather than a statement, is expected. In this tagged token
// model a token is never simultaneously a Punct and a Keyword, so the
// exclusion list (assignment/binary/relational operators, comma, ?:,
// increment/decrement, and the unary keywords in/typeof/instanceof/new/
// return/case/delete/throw/void) only ever rules out non-'(' tokens; the
// predicate reduces to "t is an open paren".
func isExpressionContextToken(t Token) bool {
	if t.IsKeyword() {
		switch t.Text {
		case "in", "typeof", "instanceof", "new", "return", "case", "delete", "throw", "void":
			return false
		}
	}
	if !t.IsPunct() {
		return false
	}
	if t.Punct == PLBrace || t.Punct == PLBracket {
		return false
	}
	if isAssignmentOrBinaryOperator(t.Punct) {
		return false
	}
	return t.Punct == PLParen
}

// scanRegexFromSlash re-lexes a regular expression literal starting at the
// current cursor, which must be positioned exactly on the opening '/'. It
// consumes the body, the closing '/', and any trailing identifier-part
// flag characters.
func (s *Scanner) scanRegexFromSlash() (Token, error) {
	s.advance() // consume the opening '/'
	bodyStart := s.current

	for {
		if s.isAtEnd() {
			return Token{}, s.errUnterminatedRegex(s.start, s.startLine, s.startColumn)
		}
		r := s.peek()
		if isLineTerminator(r) {
			return Token{}, s.errUnterminatedRegex(s.start, s.startLine, s.startColumn)
		}

		switch r {
		case '\\':
			s.advance()
			if s.isAtEnd() || isLineTerminator(s.peek()) {
				return Token{}, s.errUnterminatedRegex(s.start, s.startLine, s.startColumn)
			}
			s.advance()

		case '[':
			s.advance()
			if err := s.scanRegexCharClass(); err != nil {
				return Token{}, err
			}

		case '/':
			s.advance()
			body := s.source[bodyStart : s.current-1]
			flagsStart := s.current
			for !s.isAtEnd() && isIdentPart(s.peek()) {
				s.advance()
			}
			return Token{
				Kind:       KindRegex,
				Text:       body,
				RegexFlags: s.source[flagsStart:s.current],
			}, nil

		default:
			s.advance()
		}
	}
}

// scanRegexCharClass consumes a `[...]` character class within a regex
// body, honoring backslash escapes and refusing to let an unescaped ']'
// inside the class be mistaken for the class terminator's absence.
func (s *Scanner) scanRegexCharClass() error {
	for {
		if s.isAtEnd() {
			return s.errUnterminatedRegex(s.start, s.startLine, s.startColumn)
		}
		r := s.peek()
		if isLineTerminator(r) {
			return s.errUnterminatedRegex(s.start, s.startLine, s.startColumn)
		}
		switch r {
		case '\\':
			s.advance()
			if s.isAtEnd() || isLineTerminator(s.peek()) {
				return s.errUnterminatedRegex(s.start, s.startLine, s.startColumn)
			}
			s.advance()
		case ']':
			s.advance()
			return nil
		default:
			s.advance()
		}
	}
}
