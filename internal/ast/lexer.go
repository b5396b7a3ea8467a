package ast

import "unicode"

// scanner is a minimal rune cursor over a slice of runes. Unlike a classic
// token-stream lexer, Kleenexp's grammar is block-structured (brackets,
// quotes, pipes) rather than character-class driven, so the parser drives
// the scanner directly instead of consuming a pre-tokenized stream.
type scanner struct {
	src []rune
	pos int
}

func newScanner(src []rune) *scanner {
	return &scanner{src: src}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() rune {
	return s.peekAt(0)
}

func (s *scanner) peekAt(offset int) rune {
	i := s.pos + offset
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *scanner) advance() rune {
	r := s.src[s.pos]
	s.pos++
	return r
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.pos++
	}
}

// tokenPunct lists the non-alphanumeric characters a bare token (an
// operator name, a multiplicity, or a macro name) may contain.
const tokenPunct = "!$%&()*+,./;<>?@^_`{}~-"

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isTokenChar(r rune) bool {
	if isAlnum(r) {
		return true
	}
	for _, p := range tokenPunct {
		if r == p {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// scanToken consumes the maximal run of token characters at the cursor and
// returns it. It returns an error if no token characters are present.
func scanToken(s *scanner, ctx []string) (string, error) {
	start := s.pos
	for !s.eof() && isTokenChar(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return "", errf(ctx, "expected a token at position %d", start)
	}
	return string(s.src[start:s.pos]), nil
}

func trimSpaceRunes(rs []rune) []rune {
	start, end := 0, len(rs)
	for start < end && unicode.IsSpace(rs[start]) {
		start++
	}
	for end > start && unicode.IsSpace(rs[end-1]) {
		end--
	}
	return rs[start:end]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}
