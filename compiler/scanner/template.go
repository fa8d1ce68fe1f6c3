package scanner

// Template literals are lexed with an inline rescan: the part of the
// template text following a '${...}' substitution is recognized eagerly,
// in the same Next() call that produced the '}' closing the substitution,
// rather than deferred to a later call. This mirrors
// original_source/src/lib.rs's Iterator::next, which rescans from the '}'
// position as soon as it sees one while in_replacement is set.
//
// Nesting is tracked with Scanner.templateDepths, a stack with one entry
// per template whose substitution is currently open: pushed by
// scanTemplateHead when it produces a Head part, popped by scanTemplatePart
// when it produces a Tail. A '{' or '}' that appears inside the
// substitution expression itself (an object literal, a block in an arrow
// function, ...) only changes the top entry's depth; only the '}' seen at
// depth 0 is the one that closes the substitution.

// scanTemplateHead is called with the cursor on the opening backtick. It
// scans up to either the closing backtick (producing a NoSub part, the
// template has no substitutions) or an unescaped "${" (producing a Head
// part and opening a new nesting level).
func (s *Scanner) scanTemplateHead() (Token, error) {
	s.advance() // consume '`'
	return s.scanTemplateChars(NoSub, Head, true)
}

// scanTemplatePart is called with the cursor on the '}' that closes a
// substitution at brace depth 0. It consumes that '}' and scans up to
// either the closing backtick (Tail) or the next "${" (Middle). A Middle
// part re-enters the same nesting level the Head opened, so it does not
// push a new templateDepths entry; only a Tail pops the level.
func (s *Scanner) scanTemplatePart() (Token, error) {
	s.advance() // consume '}'
	tok, err := s.scanTemplateChars(Tail, Middle, false)
	if err != nil {
		return Token{}, err
	}
	if tok.TemplatePart == Tail {
		n := len(s.templateDepths)
		if n > 0 {
			s.templateDepths = s.templateDepths[:n-1]
		}
	}
	return tok, nil
}

// scanTemplateChars consumes template text up to a closing backtick or a
// "${", tagging the resulting token closeTag or openTag respectively.
// Escapes (`\` followed by any character) and line terminators are passed
// through as ordinary template content; only an unescaped backtick or "${"
// ends the run. pushOnOpen controls whether hitting "${" opens a brand new
// nesting level (true, from a Head) or reactivates the level already on
// the stack (false, from a Middle continuing the same template).
func (s *Scanner) scanTemplateChars(closeTag, openTag TemplatePart, pushOnOpen bool) (Token, error) {
	textStart := s.current

	for {
		if s.isAtEnd() {
			return Token{}, s.errUnterminatedTemplate(s.start, s.startLine, s.startColumn)
		}

		r := s.peek()
		switch {
		case r == '`':
			text := s.source[textStart:s.current]
			s.advance()
			return Token{Kind: KindTemplate, Text: text, TemplatePart: closeTag}, nil

		case r == '$' && s.peekNext() == '{':
			text := s.source[textStart:s.current]
			s.advance() // '$'
			s.advance() // '{'
			if pushOnOpen {
				s.templateDepths = append(s.templateDepths, 0)
			}
			return Token{Kind: KindTemplate, Text: text, TemplatePart: openTag}, nil

		case r == '\\':
			s.advance()
			if s.isAtEnd() {
				return Token{}, s.errUnterminatedTemplate(s.start, s.startLine, s.startColumn)
			}
			s.advance()

		default:
			s.advance()
		}
	}
}
