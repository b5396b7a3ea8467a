// Package render turns compiled IR back into flavor-specific regex text.
// Every function here is pure and allocation-light: rendering walks the
// IR tree once, building the output with a strings.Builder.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/SonOfLilit/kleenexp/internal/ir"
)

// Flavor selects the regex dialect a pattern is rendered for. The four
// flavors share almost all of the IR-to-text mapping; they differ only in
// capture-group header syntax and in whether lookaround is available.
type Flavor int

const (
	Python Flavor = iota
	JavaScript
	Rust
	RustFancy
)

func (f Flavor) String() string {
	switch f {
	case Python:
		return "python"
	case JavaScript:
		return "javascript"
	case Rust:
		return "rust"
	case RustFancy:
		return "rust-fancy"
	default:
		return "unknown"
	}
}

// ParseFlavor maps a CLI/API flavor name to a Flavor value.
func ParseFlavor(name string) (Flavor, error) {
	switch name {
	case "python":
		return Python, nil
	case "javascript", "js":
		return JavaScript, nil
	case "rust":
		return Rust, nil
	case "rust-fancy", "rustfancy":
		return RustFancy, nil
	default:
		return 0, fmt.Errorf("unknown regex flavor %q", name)
	}
}

// SupportsLookaround reports whether flavor's underlying regex engine
// implements lookahead/lookbehind assertions. The plain "rust" flavor
// targets the regex crate, which does not; rust-fancy targets fancy-regex,
// which does.
func SupportsLookaround(f Flavor) bool {
	return f != Rust
}

// Render converts compiled IR into flavor-specific regex text. wrap
// requests that the result be safe to concatenate with adjacent text
// without a non-capturing group changing its meaning; Render adds one
// only where the node's grammar actually requires it.
func Render(n ir.Node, f Flavor, wrap bool) (string, error) {
	var sb strings.Builder
	if err := render(&sb, n, f, wrap); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func render(sb *strings.Builder, n ir.Node, f Flavor, wrap bool) error {
	switch v := n.(type) {
	case ir.Literal:
		return renderLiteral(sb, string(v), wrap)
	case ir.Concat:
		return renderConcat(sb, v, f)
	case ir.Either:
		return renderEither(sb, v, f, wrap)
	case *ir.Multiple:
		return renderMultiple(sb, v, f, wrap)
	case *ir.CharClass:
		return renderCharClass(sb, v)
	case *ir.Boundary:
		sb.WriteString(v.Token)
		return nil
	case *ir.Capture:
		return renderCapture(sb, v, f)
	case *ir.ParensOp:
		return renderParensOp(sb, v, f)
	default:
		return fmt.Errorf("render: unknown IR node %T", n)
	}
}

var literalEscapes = map[rune]string{
	'\\': `\\`, '.': `\.`, '^': `\^`, '$': `\$`, '*': `\*`, '+': `\+`,
	'?': `\?`, '(': `\(`, ')': `\)`, '[': `\[`, ']': `\]`, '{': `\{`,
	'}': `\}`, '|': `\|`, '\n': `\n`, '\r': `\r`, '\t': `\t`, '\v': `\v`,
	'\f': `\f`,
}

// renderLiteral writes s with regex metacharacters escaped. wrap is
// accepted for symmetry with the other render* functions but a bare
// Literal is never the kind of node that needs defensive wrapping (it has
// no internal '|' to leak); callers that need a wrapped multi-character
// literal inside a larger expression go through renderChild instead.
func renderLiteral(sb *strings.Builder, s string, wrap bool) error {
	for _, r := range s {
		if esc, ok := literalEscapes[r]; ok {
			sb.WriteString(esc)
		} else {
			sb.WriteRune(r)
		}
	}
	return nil
}

func renderConcat(sb *strings.Builder, c ir.Concat, f Flavor) error {
	for _, child := range c {
		needsWrap := false
		if e, ok := child.(ir.Either); ok && len(e) > 1 {
			needsWrap = true
		}
		if err := renderChild(sb, child, f, needsWrap); err != nil {
			return err
		}
	}
	return nil
}

func renderChild(sb *strings.Builder, n ir.Node, f Flavor, wrap bool) error {
	if lit, ok := n.(ir.Literal); ok {
		rs := []rune(string(lit))
		var inner strings.Builder
		for _, r := range rs {
			if esc, ok := literalEscapes[r]; ok {
				inner.WriteString(esc)
			} else {
				inner.WriteRune(r)
			}
		}
		if wrap && len(rs) > 1 {
			sb.WriteString("(?:")
			sb.WriteString(inner.String())
			sb.WriteString(")")
			return nil
		}
		sb.WriteString(inner.String())
		return nil
	}
	if wrap {
		sb.WriteString("(?:")
		if err := render(sb, n, f, false); err != nil {
			return err
		}
		sb.WriteString(")")
		return nil
	}
	return render(sb, n, f, false)
}

func renderEither(sb *strings.Builder, e ir.Either, f Flavor, wrap bool) error {
	if wrap {
		sb.WriteString("(?:")
	}
	for i, child := range e {
		if i > 0 {
			sb.WriteString("|")
		}
		if err := render(sb, child, f, false); err != nil {
			return err
		}
	}
	if wrap {
		sb.WriteString(")")
	}
	return nil
}

func renderMultiple(sb *strings.Builder, m *ir.Multiple, f Flavor, wrap bool) error {
	if wrap {
		sb.WriteString("(?:")
	}
	needsWrap := multiNeedsWrap(m.Sub)
	if err := renderChild(sb, m.Sub, f, needsWrap); err != nil {
		return err
	}
	sb.WriteString(quantifierText(m))
	if wrap {
		sb.WriteString(")")
	}
	return nil
}

func multiNeedsWrap(n ir.Node) bool {
	switch v := n.(type) {
	case ir.Literal:
		return len([]rune(string(v))) > 1
	case ir.Concat:
		if len(v) != 1 {
			return true
		}
		// renderConcat already parenthesizes a multi-alternative Either.
		if e, ok := v[0].(ir.Either); ok && len(e) > 1 {
			return false
		}
		return multiNeedsWrap(v[0])
	case ir.Either:
		return true
	case *ir.Multiple:
		return true
	case *ir.CharClass, *ir.Boundary:
		return false
	default:
		return true
	}
}

func quantifierText(m *ir.Multiple) string {
	switch {
	case m.Max == nil:
		if m.Min == 0 {
			return "*"
		}
		if m.Min == 1 {
			return "+"
		}
		return fmt.Sprintf("{%d,}", m.Min)
	case m.Min == *m.Max:
		if m.Min == 1 {
			return ""
		}
		return fmt.Sprintf("{%d}", m.Min)
	case m.Min == 0 && *m.Max == 1:
		return "?"
	default:
		return fmt.Sprintf("{%d,%d}", m.Min, *m.Max)
	}
}

func renderCharClass(sb *strings.Builder, c *ir.CharClass) error {
	if len(c.Items) == 0 {
		if c.Inverted {
			sb.WriteString(".")
		} else {
			sb.WriteString("(?!).")
		}
		return nil
	}
	if len(c.Items) == 1 && !c.Inverted {
		return renderBareItem(sb, c.Items[0])
	}
	if len(c.Items) == 1 && c.Inverted && c.Items[0].Kind == ir.ClassSpecial {
		if up, ok := uppercaseSpecial[c.Items[0].Special]; ok {
			sb.WriteString(up)
			return nil
		}
	}
	texts := make([]string, len(c.Items))
	for i, it := range c.Items {
		texts[i] = classItemText(it, c.Inverted)
	}
	sort.Strings(texts)
	sb.WriteString("[")
	if c.Inverted {
		sb.WriteString("^")
	}
	for _, t := range texts {
		sb.WriteString(t)
	}
	sb.WriteString("]")
	return nil
}

func renderBareItem(sb *strings.Builder, it ir.ClassItem) error {
	switch it.Kind {
	case ir.ClassSingle:
		return renderLiteral(sb, string(it.Rune), false)
	case ir.ClassSpecial:
		sb.WriteString(it.Special)
		return nil
	case ir.ClassRange:
		sb.WriteString("[")
		sb.WriteString(classItemText(it, false))
		sb.WriteString("]")
		return nil
	default:
		return fmt.Errorf("render: unknown class item kind %d", it.Kind)
	}
}

// uppercaseSpecial flips the case-sensitive shorthand classes so that a
// CharClass containing exactly an inverted \d/\s/\w can render as \D/\S/\W
// instead of a bracketed negation.
var uppercaseSpecial = map[string]string{`\d`: `\D`, `\s`: `\S`, `\w`: `\W`}

func classItemText(it ir.ClassItem, inverted bool) string {
	switch it.Kind {
	case ir.ClassSingle:
		return classCharText(it.Rune)
	case ir.ClassRange:
		return classCharText(it.Lo) + "-" + classCharText(it.Hi)
	case ir.ClassSpecial:
		if inverted {
			if up, ok := uppercaseSpecial[it.Special]; ok {
				return up
			}
		}
		return it.Special
	default:
		return ""
	}
}

var classCharEscapes = map[rune]string{
	'\\': `\\`, ']': `\]`, '^': `\^`, '-': `\-`,
	'\n': `\n`, '\r': `\r`, '\t': `\t`, '\v': `\v`, '\f': `\f`,
}

func classCharText(r rune) string {
	if esc, ok := classCharEscapes[r]; ok {
		return esc
	}
	return string(r)
}

func renderCapture(sb *strings.Builder, c *ir.Capture, f Flavor) error {
	if c.Name == "" {
		sb.WriteString("(")
	} else if f == JavaScript {
		sb.WriteString("(?<" + c.Name + ">")
	} else {
		sb.WriteString("(?P<" + c.Name + ">")
	}
	if err := render(sb, c.Sub, f, false); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}

func renderParensOp(sb *strings.Builder, p *ir.ParensOp, f Flavor) error {
	if !SupportsLookaround(f) {
		return fmt.Errorf("render: flavor %s does not support lookaround assertions", f)
	}
	switch p.Kind {
	case ir.Lookahead:
		sb.WriteString("(?=")
	case ir.NegLookahead:
		sb.WriteString("(?!")
	case ir.Lookbehind:
		sb.WriteString("(?<=")
	case ir.NegLookbehind:
		sb.WriteString("(?<!")
	default:
		return fmt.Errorf("render: unknown lookaround kind %d", p.Kind)
	}
	if err := render(sb, p.Sub, f, false); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}

// ValidateRegex compiles the rendered text against Go's own regexp engine
// as a best-effort sanity check; it is skipped for flavors whose syntax Go
// cannot parse (named captures and lookaround differ across dialects), so
// a nil error here is reassuring but not a guarantee of validity elsewhere.
func ValidateRegex(pattern string, f Flavor) error {
	if f != JavaScript {
		return nil
	}
	_, err := regexp.Compile(pattern)
	return err
}
