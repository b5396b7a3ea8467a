package ast

import (
	"strings"

	"github.com/SonOfLilit/kleenexp/internal/conv"
)

// Parse turns Kleenexp surface syntax into an AST, or returns a *ParseError
// describing the first grammar violation encountered.
func Parse(src string) (Node, error) {
	s := newScanner([]rune(src))
	node, err := parseOuter(s, nil)
	if err != nil {
		return nil, err
	}
	if !s.eof() {
		return nil, errf(nil, "unbalanced brackets: unexpected %q", s.peek())
	}
	return node, nil
}

// parseOuter parses a run of top-level literal text and bracket groups. It
// stops (without consuming) at an unmatched ']', letting the caller decide
// whether that is the end of a nested group or a top-level error.
func parseOuter(s *scanner, ctx []string) (Node, error) {
	var parts []Node
	for !s.eof() && s.peek() != ']' {
		if s.peek() == '[' {
			group, err := parseBracketGroup(s, ctx)
			if err != nil {
				return nil, err
			}
			parts = append(parts, group)
			continue
		}
		parts = append(parts, &Literal{Value: scanOuterLiteral(s)})
	}
	return wrapConcat(parts), nil
}

func scanOuterLiteral(s *scanner) string {
	var sb strings.Builder
	for !s.eof() && s.peek() != '[' && s.peek() != ']' {
		sb.WriteRune(s.advance())
	}
	return sb.String()
}

// wrapConcat applies the "a lone atom is not wrapped in Concat" surface
// simplification, except when that lone atom is a macro definition: a
// DefMacro is only meaningful as a direct child of a Concat, so a pattern
// consisting of nothing but `#name=[...]` still needs the wrapper.
func wrapConcat(nodes []Node) Node {
	switch len(nodes) {
	case 0:
		return &Concat{}
	case 1:
		if _, isDef := nodes[0].(*DefMacro); isDef {
			return &Concat{Children: nodes}
		}
		return nodes[0]
	default:
		return &Concat{Children: nodes}
	}
}

// parseBracketGroup parses a single `[ ... ]` group. The cursor must be
// positioned at the opening '['.
func parseBracketGroup(s *scanner, ctx []string) (Node, error) {
	s.advance() // consume '['
	content, err := extractBalanced(s)
	if err != nil {
		return nil, err
	}
	return parseBracketContent(content, append(append([]string(nil), ctx...), "bracket"))
}

// extractBalanced consumes up to and including the matching ']' (the
// cursor must be just past the opening '['), tracking nested brackets and
// quoted-literal state so that brackets and pipes inside quotes, and
// brackets inside nested groups, do not confuse the boundary search.
func extractBalanced(s *scanner) ([]rune, error) {
	depth := 1
	var content []rune
	var inQuote rune
	for {
		if s.eof() {
			return nil, errf(nil, "unbalanced brackets: missing ']'")
		}
		r := s.advance()
		if inQuote != 0 {
			content = append(content, r)
			if r == inQuote {
				inQuote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			inQuote = r
			content = append(content, r)
		case '[':
			depth++
			content = append(content, r)
		case ']':
			depth--
			if depth == 0 {
				return content, nil
			}
			content = append(content, r)
		default:
			content = append(content, r)
		}
	}
}

// splitTopLevelAlternation splits content on '|' characters that are not
// inside a quoted literal or a nested bracket group. The bool result
// reports whether any such '|' was found.
func splitTopLevelAlternation(content []rune) ([][]rune, bool) {
	var parts [][]rune
	depth := 0
	var inQuote rune
	start := 0
	found := false
	for i, r := range content {
		if inQuote != 0 {
			if r == inQuote {
				inQuote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			inQuote = r
		case '[':
			depth++
		case ']':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, content[start:i])
				start = i + 1
				found = true
			}
		}
	}
	parts = append(parts, content[start:])
	return parts, found
}

// parseBracketContent parses the interior of a bracket group: empty,
// alternation, or operator-head-then-matches. Operators and alternation at
// the same level are mutually exclusive by construction: an alternation is
// recognized first whenever a top-level '|' is present, and each of its
// members is then parsed as a bare match body (no operator head).
func parseBracketContent(content []rune, ctx []string) (Node, error) {
	cs := newScanner(content)
	cs.skipSpace()
	if cs.eof() {
		return &Concat{}, nil
	}

	if parts, isAlt := splitTopLevelAlternation(content); isAlt {
		if len(parts) < 2 {
			return nil, errf(ctx, "malformed alternation")
		}
		children := make([]Node, 0, len(parts))
		for _, part := range parts {
			trimmed := trimSpaceRunes(part)
			body, err := parseMatchBody(newScanner(trimmed), ctx)
			if err != nil {
				return nil, err
			}
			children = append(children, body)
		}
		return &Either{Children: children}, nil
	}

	return parseHeadAndBody(cs, ctx)
}

type headToken struct {
	text string
	tag  string
}

// parseHeadAndBody consumes the operator head (zero or more whitespace
// separated operator/multiplicity tokens) and then the match body,
// wrapping the body right-to-left: `op1 op2 body` becomes op1(op2(body)).
func parseHeadAndBody(cs *scanner, ctx []string) (Node, error) {
	var heads []headToken
	for {
		cs.skipSpace()
		if cs.eof() {
			break
		}
		switch cs.peek() {
		case '#', '\'', '"', '[':
			goto body
		}
		tok, err := scanToken(cs, ctx)
		if err != nil {
			return nil, err
		}
		var tag string
		if cs.peek() == ':' {
			cs.advance()
			tag, err = scanToken(cs, ctx)
			if err != nil {
				return nil, errf(ctx, "expected tag name after ':'")
			}
		}
		heads = append(heads, headToken{text: tok, tag: tag})
	}
body:
	body, err := parseMatchBody(cs, ctx)
	if err != nil {
		return nil, err
	}

	result := body
	for i := len(heads) - 1; i >= 0; i-- {
		result, err = wrapHead(heads[i], result, ctx)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func wrapHead(h headToken, body Node, ctx []string) (Node, error) {
	if isDigit(rune(h.text[0])) {
		min, max, err := parseMultiplicity(h.text, ctx)
		if err != nil {
			return nil, err
		}
		if h.tag != "" {
			return nil, errf(ctx, "multiplicity %q cannot carry a tag", h.text)
		}
		return &Multiple{Min: min, Max: max, Body: body}, nil
	}
	return &Operator{Op: h.text, Tag: h.tag, Body: body}, nil
}

// parseMultiplicity parses one of the forms `N`, `N-M`, `N+`.
func parseMultiplicity(tok string, ctx []string) (min int, max *int, err error) {
	if allDigits(tok) {
		n, err := conv.ParseCount(tok)
		if err != nil {
			return 0, nil, errf(ctx, "%v", err)
		}
		m := n
		return n, &m, nil
	}
	if strings.HasSuffix(tok, "+") {
		prefix := strings.TrimSuffix(tok, "+")
		if allDigits(prefix) {
			n, err := conv.ParseCount(prefix)
			if err != nil {
				return 0, nil, errf(ctx, "%v", err)
			}
			return n, nil, nil
		}
	}
	if i := strings.IndexByte(tok, '-'); i > 0 && i < len(tok)-1 {
		lo, hi := tok[:i], tok[i+1:]
		if allDigits(lo) && allDigits(hi) {
			n, err := conv.ParseCount(lo)
			if err != nil {
				return 0, nil, errf(ctx, "%v", err)
			}
			m, err := conv.ParseCount(hi)
			if err != nil {
				return 0, nil, errf(ctx, "%v", err)
			}
			return n, &m, nil
		}
	}
	return 0, nil, errf(ctx, "malformed multiplicity %q", tok)
}

// parseMatchBody parses a whitespace-separated sequence of atoms.
func parseMatchBody(cs *scanner, ctx []string) (Node, error) {
	var atoms []Node
	for {
		cs.skipSpace()
		if cs.eof() {
			break
		}
		atom, err := parseAtom(cs, ctx)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return wrapConcat(atoms), nil
}

func parseAtom(cs *scanner, ctx []string) (Node, error) {
	switch cs.peek() {
	case '\'', '"':
		return parseQuotedLiteral(cs, ctx)
	case '#':
		return parseHashAtom(cs, ctx)
	case '[':
		return parseBracketGroup(cs, ctx)
	default:
		return nil, errf(ctx, "unexpected character %q in match body", cs.peek())
	}
}

func parseQuotedLiteral(cs *scanner, ctx []string) (Node, error) {
	quote := cs.advance()
	var sb strings.Builder
	for {
		if cs.eof() {
			return nil, errf(ctx, "unterminated quoted literal")
		}
		r := cs.advance()
		if r == quote {
			break
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return nil, errf(ctx, "empty quoted literal")
	}
	return &Literal{Value: sb.String()}, nil
}

// parseHashAtom parses the three `#`-prefixed atom forms: a range
// (`#c..d`), a macro definition (`#name=[body]`), and a plain macro
// reference (`#name`). The range form is tried first since its shape
// (single alphanumeric, "..", single alphanumeric) cannot otherwise be
// produced by token scanning; the definition form is then tried before
// falling back to a bare reference, per the surface grammar's tie-break.
func parseHashAtom(cs *scanner, ctx []string) (Node, error) {
	cs.advance() // consume '#'

	if isAlnum(cs.peekAt(0)) && cs.peekAt(1) == '.' && cs.peekAt(2) == '.' && isAlnum(cs.peekAt(3)) {
		start := cs.advance()
		cs.advance()
		cs.advance()
		end := cs.advance()
		return &Range{Start: start, End: end}, nil
	}

	name, err := scanToken(cs, ctx)
	if err != nil {
		return nil, errf(ctx, "expected macro name after '#'")
	}

	if cs.peek() == '=' {
		save := cs.pos
		cs.advance()
		if cs.peek() == '[' {
			body, err := parseBracketGroup(cs, ctx)
			if err != nil {
				return nil, err
			}
			return &DefMacro{Name: name, Body: body}, nil
		}
		cs.pos = save
	}

	return &Macro{Name: name}, nil
}
