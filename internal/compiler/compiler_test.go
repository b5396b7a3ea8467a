package compiler

import (
	"testing"

	"github.com/SonOfLilit/kleenexp/internal/ast"
	"github.com/SonOfLilit/kleenexp/internal/ir"
	"github.com/SonOfLilit/kleenexp/internal/macro"
)

func compileSrc(t *testing.T, src string, env *macro.Env) ir.Node {
	t.Helper()
	node, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("ast.Parse(%q): %v", src, err)
	}
	compiled, err := Compile(node, env)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return compiled
}

func TestBuiltinsConstructWithoutPanicking(t *testing.T) {
	env := Builtins()
	for _, name := range []string{"digit", "d", "letter", "int", "integer", "float", "hex_number", "hexn", "token", "c0", "c1"} {
		if _, ok := env.Get(name); !ok {
			t.Errorf("built-in %q not bound", name)
		}
	}
}

func TestCompileFuseCharClass(t *testing.T) {
	n := compileSrc(t, "['a'|'b'|'c']", Builtins())
	cc, ok := n.(*ir.CharClass)
	if !ok {
		t.Fatalf("got %T, want *ir.CharClass", n)
	}
	if len(cc.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(cc.Items))
	}
}

func TestCompileNoFuseAcrossMultiCharLiteral(t *testing.T) {
	n := compileSrc(t, "['a'|'bc']", Builtins())
	e, ok := n.(ir.Either)
	if !ok {
		t.Fatalf("got %T, want ir.Either (no fuse across a 2-char literal)", n)
	}
	if len(e) != 2 {
		t.Fatalf("got %d alternatives, want 2", len(e))
	}
}

func TestCompileMacroNotDefined(t *testing.T) {
	node, err := ast.Parse("[#nope]")
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := Compile(node, Builtins()); err == nil {
		t.Fatalf("want error for undefined macro")
	}
}

func TestCompileDuplicateDefInSameScope(t *testing.T) {
	node, err := ast.Parse("[#x=['a']#x=['b']#x]")
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := Compile(node, Builtins()); err == nil {
		t.Fatalf("want error for duplicate macro definition")
	}
}

func TestCompileShadowing(t *testing.T) {
	n := compileSrc(t, "[#x=['a'][#x=['b']#x]]", Builtins())
	c, ok := n.(ir.Concat)
	if !ok || len(c) != 1 {
		t.Fatalf("got %#v, want single-element Concat", n)
	}
	inner, ok := c[0].(ir.Concat)
	if !ok || len(inner) != 1 {
		t.Fatalf("got %#v, want single-element Concat", c[0])
	}
	lit, ok := inner[0].(ir.Literal)
	if !ok || string(lit) != "b" {
		t.Fatalf("got %#v, want Literal(\"b\") from the shadowing definition", inner[0])
	}
}

func TestCompileEmptyBodyRejected(t *testing.T) {
	cases := []string{"[1+ [comment 'x']]", "[capture [comment 'x']]"}
	for _, src := range cases {
		node, err := ast.Parse(src)
		if err != nil {
			t.Fatalf("%s: ast.Parse: %v", src, err)
		}
		if _, err := Compile(node, Builtins()); err == nil {
			t.Errorf("%s: want error for empty body", src)
		}
	}
}

func TestInvertLiteral(t *testing.T) {
	n := compileSrc(t, "[not 'a']", Builtins())
	cc, ok := n.(*ir.CharClass)
	if !ok {
		t.Fatalf("got %T, want *ir.CharClass", n)
	}
	if !cc.Inverted || len(cc.Items) != 1 || cc.Items[0].Rune != 'a' {
		t.Errorf("got %+v, want inverted class over 'a'", cc)
	}
}

func TestInvertCharClass(t *testing.T) {
	n := compileSrc(t, "[not #digit]", Builtins())
	cc, ok := n.(*ir.CharClass)
	if !ok || !cc.Inverted {
		t.Fatalf("got %#v, want inverted CharClass", n)
	}
}

func TestInvertDoubleIsIdentity(t *testing.T) {
	n := compileSrc(t, "[not not #digit]", Builtins())
	cc, ok := n.(*ir.CharClass)
	if !ok || cc.Inverted {
		t.Fatalf("got %#v, want non-inverted CharClass", n)
	}
}

func TestInvertMultiCharLiteralFails(t *testing.T) {
	node, err := ast.Parse("[not 'ab']")
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := Compile(node, Builtins()); err == nil {
		t.Fatalf("want error inverting a multi-character literal")
	}
}

func TestInvertBoundary(t *testing.T) {
	n := compileSrc(t, "[not #word_boundary]", Builtins())
	b, ok := n.(*ir.Boundary)
	if !ok || b.Token != `\B` {
		t.Fatalf("got %#v, want \\B boundary", n)
	}
}

func TestInvertBoundaryWithoutInverseFails(t *testing.T) {
	node, err := ast.Parse("[not #start_string]")
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := Compile(node, Builtins()); err == nil {
		t.Fatalf("want error inverting a boundary with no inverse")
	}
}

func TestCompileRangeValidation(t *testing.T) {
	cases := []struct {
		src   string
		valid bool
	}{
		{"[#a..f]", true},
		{"[#0..9]", true},
		{"[#f..a]", false},
		{"[#a..9]", false},
	}
	for _, c := range cases {
		node, err := ast.Parse(c.src)
		if err != nil {
			t.Fatalf("%s: ast.Parse: %v", c.src, err)
		}
		_, err = Compile(node, Builtins())
		if c.valid && err != nil {
			t.Errorf("%s: unexpected error: %v", c.src, err)
		}
		if !c.valid && err == nil {
			t.Errorf("%s: want error", c.src)
		}
	}
}

func TestCompileMultipleDegenerateZero(t *testing.T) {
	n := compileSrc(t, "[0-0 #digit]", Builtins())
	lit, ok := n.(ir.Literal)
	if !ok || string(lit) != "" {
		t.Fatalf("got %#v, want empty Literal", n)
	}
}

func TestCompileCommentIsEmpty(t *testing.T) {
	n := compileSrc(t, "[comment 'whatever this is']", Builtins())
	lit, ok := n.(ir.Literal)
	if !ok || string(lit) != "" {
		t.Fatalf("got %#v, want empty Literal", n)
	}
}

func TestCompileInvalidCaptureName(t *testing.T) {
	node, err := ast.Parse("[capture:9bad 'x']")
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := Compile(node, Builtins()); err == nil {
		t.Fatalf("want error for capture name starting with a digit")
	}
}
