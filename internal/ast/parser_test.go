package ast

import "testing"

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	n, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %v", src, err)
	}
	return n
}

func TestParseLiteralOnly(t *testing.T) {
	n := mustParse(t, "hello")
	lit, ok := n.(*Literal)
	if !ok {
		t.Fatalf("got %T, want *Literal", n)
	}
	if lit.Value != "hello" {
		t.Errorf("got %q, want %q", lit.Value, "hello")
	}
}

func TestParseQuotedLiteral(t *testing.T) {
	n := mustParse(t, "['[']")
	lit, ok := n.(*Literal)
	if !ok {
		t.Fatalf("got %T, want *Literal", n)
	}
	if lit.Value != "[" {
		t.Errorf("got %q, want %q", lit.Value, "[")
	}
}

func TestParseMacroReference(t *testing.T) {
	n := mustParse(t, "[#digit]")
	m, ok := n.(*Macro)
	if !ok {
		t.Fatalf("got %T, want *Macro", n)
	}
	if m.Name != "digit" {
		t.Errorf("got %q, want %q", m.Name, "digit")
	}
}

func TestParseRange(t *testing.T) {
	n := mustParse(t, "[#a..f]")
	r, ok := n.(*Range)
	if !ok {
		t.Fatalf("got %T, want *Range", n)
	}
	if r.Start != 'a' || r.End != 'f' {
		t.Errorf("got %c..%c, want a..f", r.Start, r.End)
	}
}

func TestParseDefMacroAlone(t *testing.T) {
	n := mustParse(t, "[#x=['a']]")
	c, ok := n.(*Concat)
	if !ok {
		t.Fatalf("got %T, want *Concat wrapping a lone DefMacro", n)
	}
	if len(c.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(c.Children))
	}
	if _, ok := c.Children[0].(*DefMacro); !ok {
		t.Fatalf("got %T, want *DefMacro", c.Children[0])
	}
}

func TestParseDefMacroThenUse(t *testing.T) {
	n := mustParse(t, "[#x=['a']#x]")
	c, ok := n.(*Concat)
	if !ok {
		t.Fatalf("got %T, want *Concat", n)
	}
	if len(c.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(c.Children))
	}
	if _, ok := c.Children[0].(*DefMacro); !ok {
		t.Errorf("child 0: got %T, want *DefMacro", c.Children[0])
	}
	if _, ok := c.Children[1].(*Macro); !ok {
		t.Errorf("child 1: got %T, want *Macro", c.Children[1])
	}
}

func TestParseAlternation(t *testing.T) {
	n := mustParse(t, "['a'|'b'|'c']")
	e, ok := n.(*Either)
	if !ok {
		t.Fatalf("got %T, want *Either", n)
	}
	if len(e.Children) != 3 {
		t.Fatalf("got %d alternatives, want 3", len(e.Children))
	}
}

func TestParseOperatorCapture(t *testing.T) {
	n := mustParse(t, "[capture:name 'x']")
	op, ok := n.(*Operator)
	if !ok {
		t.Fatalf("got %T, want *Operator", n)
	}
	if op.Op != "capture" || op.Tag != "name" {
		t.Errorf("got op=%q tag=%q, want capture/name", op.Op, op.Tag)
	}
}

func TestParseNestedOperators(t *testing.T) {
	n := mustParse(t, "[capture not 'x']")
	outer, ok := n.(*Operator)
	if !ok || outer.Op != "capture" {
		t.Fatalf("got %#v, want outer capture operator", n)
	}
	inner, ok := outer.Body.(*Operator)
	if !ok || inner.Op != "not" {
		t.Fatalf("got %#v, want inner not operator", outer.Body)
	}
}

func TestParseMultiplicityForms(t *testing.T) {
	cases := []struct {
		src      string
		min      int
		max      *int
		unbounded bool
	}{
		{"[3 'x']", 3, intp(3), false},
		{"[2-5 'x']", 2, intp(5), false},
		{"[1+ 'x']", 1, nil, true},
		{"[0+ 'x']", 0, nil, true},
	}
	for _, c := range cases {
		n := mustParse(t, c.src)
		m, ok := n.(*Multiple)
		if !ok {
			t.Fatalf("%s: got %T, want *Multiple", c.src, n)
		}
		if m.Min != c.min {
			t.Errorf("%s: min=%d, want %d", c.src, m.Min, c.min)
		}
		if c.unbounded {
			if m.Max != nil {
				t.Errorf("%s: max=%v, want nil", c.src, *m.Max)
			}
			continue
		}
		if m.Max == nil || *m.Max != *c.max {
			t.Errorf("%s: max=%v, want %d", c.src, m.Max, *c.max)
		}
	}
}

func intp(n int) *int { return &n }

func TestParseErrors(t *testing.T) {
	cases := []string{
		"[",
		"]",
		"['unterminated]",
		"['']",
		"[1-]",
		"a]",
	}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q): want error, got none", src)
		}
	}
}

func TestParseConcatOfGroups(t *testing.T) {
	n := mustParse(t, "[#letter]['x']")
	c, ok := n.(*Concat)
	if !ok {
		t.Fatalf("got %T, want *Concat", n)
	}
	if len(c.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(c.Children))
	}
}
