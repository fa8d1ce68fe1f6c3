package scanner

// scanLineComment is called with the cursor on the first '/' of "//". It
// consumes through end of line (exclusive) or end of input. Line comments
// can never be unterminated: the line terminator or EoF itself ends them.
func (s *Scanner) scanLineComment() Token {
	s.advance() // '/'
	s.advance() // '/'
	bodyStart := s.current

	for !s.isAtEnd() && !isLineTerminator(s.peek()) {
		s.advance()
	}

	return Token{
		Kind:        KindComment,
		Text:        s.source[bodyStart:s.current],
		CommentKind: LineComment,
	}
}

// scanBlockComment is called with the cursor on the first '/' of "/*". It
// consumes through the matching "*/", which is not nesting-aware: the
// first "*/" encountered closes the comment, matching ECMAScript comment
// grammar.
func (s *Scanner) scanBlockComment() (Token, error) {
	s.advance() // '/'
	s.advance() // '*'
	bodyStart := s.current

	for {
		if s.isAtEnd() {
			return Token{}, s.errUnterminatedComment(s.start, s.startLine, s.startColumn)
		}
		if s.peek() == '*' && s.peekNext() == '/' {
			body := s.source[bodyStart:s.current]
			s.advance()
			s.advance()
			return Token{Kind: KindComment, Text: body, CommentKind: BlockComment}, nil
		}
		s.advance()
	}
}
