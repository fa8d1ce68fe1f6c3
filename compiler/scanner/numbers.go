package scanner

// scanNumber is called with the cursor on a digit, or on '.' followed by a
// digit. Per the resolved design note in SPEC_FULL.md, sign is never part
// of a number token: `-1` lexes as Punct('-') followed by Number("1").
func (s *Scanner) scanNumber() (Token, error) {
	if s.peek() == '0' && (s.peekNext() == 'x' || s.peekNext() == 'X') {
		return s.scanRadixNumber(isHexDigit)
	}
	if s.peek() == '0' && (s.peekNext() == 'o' || s.peekNext() == 'O') {
		return s.scanRadixNumber(isOctDigit)
	}
	if s.peek() == '0' && (s.peekNext() == 'b' || s.peekNext() == 'B') {
		return s.scanRadixNumber(isBinDigit)
	}
	return s.scanDecimalNumber()
}

// scanRadixNumber consumes "0x"/"0o"/"0b" followed by one or more digits
// valid for that radix (optionally separated by numeric-literal '_'
// separators), and an optional trailing BigInt 'n' suffix.
func (s *Scanner) scanRadixNumber(valid func(rune) bool) (Token, error) {
	s.advance() // '0'
	s.advance() // x/o/b

	digits := 0
	for !s.isAtEnd() && (valid(s.peek()) || s.peek() == '_') {
		if s.peek() != '_' {
			digits++
		}
		s.advance()
	}
	if digits == 0 {
		return Token{}, s.errInvalidNumber(s.start, s.startLine, s.startColumn)
	}
	if !s.isAtEnd() && s.peek() == 'n' {
		s.advance()
	}
	if !s.isAtEnd() && (isIdentStart(s.peek()) || isDigit(s.peek())) {
		return Token{}, s.errInvalidNumber(s.start, s.startLine, s.startColumn)
	}
	return Token{Kind: KindNumber, Text: s.source[s.start:s.current]}, nil
}

// scanDecimalNumber consumes an integer or floating-point decimal literal:
// digits, an optional fractional part, and an optional exponent. A BigInt
// 'n' suffix is only legal on an integer (no '.' or exponent).
func (s *Scanner) scanDecimalNumber() (Token, error) {
	sawDot := false
	sawExponent := false

	s.consumeDigitRun()

	if s.peek() == '.' {
		sawDot = true
		s.advance()
		s.consumeDigitRun()
	}

	if s.peek() == 'e' || s.peek() == 'E' {
		save := s.current
		s.advance()
		if s.peek() == '+' || s.peek() == '-' {
			s.advance()
		}
		if !isDigit(s.peek()) {
			s.current = save
		} else {
			sawExponent = true
			s.consumeDigitRun()
		}
	}

	if !sawDot && !sawExponent && !s.isAtEnd() && s.peek() == 'n' {
		s.advance()
	}

	if !s.isAtEnd() && (isIdentStart(s.peek()) || isDigit(s.peek())) {
		return Token{}, s.errInvalidNumber(s.start, s.startLine, s.startColumn)
	}

	return Token{Kind: KindNumber, Text: s.source[s.start:s.current]}, nil
}

func (s *Scanner) consumeDigitRun() {
	for !s.isAtEnd() && (isDigit(s.peek()) || s.peek() == '_') {
		s.advance()
	}
}
