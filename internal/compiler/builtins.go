package compiler

import (
	"sync"

	"github.com/SonOfLilit/kleenexp/internal/ast"
	"github.com/SonOfLilit/kleenexp/internal/ir"
	"github.com/SonOfLilit/kleenexp/internal/macro"
)

var (
	builtinsOnce sync.Once
	builtinsEnv  *macro.Env
)

// Builtins returns the process-wide built-in macro table, building it on
// first use behind a sync.Once so concurrent first-callers share one
// result instead of racing to construct it. The returned Env is frozen:
// nothing in this package mutates it after construction, only Pushes
// further scopes on top.
func Builtins() *macro.Env {
	builtinsOnce.Do(func() {
		builtinsEnv = buildBuiltins()
	})
	return builtinsEnv
}

type atomicEntry struct {
	canonical string
	short     string
	node      ir.Node
}

func single(r rune) *ir.CharClass {
	return &ir.CharClass{Items: []ir.ClassItem{{Kind: ir.ClassSingle, Rune: r}}}
}

func specialClass(tok string) *ir.CharClass {
	return &ir.CharClass{Items: []ir.ClassItem{{Kind: ir.ClassSpecial, Special: tok}}}
}

// buildBuiltins hand-authors the atomic and composite entries of the
// built-in table directly as IR (there is no simpler surface-syntax
// source for ".", "^", or an opaque \u2028 token), then compiles the
// "Derived" row of the table from the exact Kleenexp source given in its
// own definition, against the environment built so far.
func buildBuiltins() *macro.Env {
	var env *macro.Env

	newlineChar := single('\n')
	newlineClass := &ir.CharClass{Items: []ir.ClassItem{
		{Kind: ir.ClassSingle, Rune: '\n'},
		{Kind: ir.ClassSingle, Rune: '\r'},
		{Kind: ir.ClassSpecial, Special: "\\u2028"},
		{Kind: ir.ClassSpecial, Special: "\\u2029"},
	}}
	windowsNewline := ir.Literal("\r\n")
	// newline fuses to [\n\r\u2028\u2029]|\r\n rather than a flat 5-way
	// alternation: the crlf sequence is two characters and so can never
	// join the fused class, but the four single-character forms do.
	newlineComposite := ir.Either{newlineClass, windowsNewline}
	anyClass := &ir.CharClass{Inverted: true}
	anyAtAll := ir.Either{anyClass, newlineComposite}

	atomic := []atomicEntry{
		{"any", "", anyClass},
		{"newline_character", "nc", newlineChar},
		{"linefeed", "lf", single('\n')},
		{"carriage_return", "cr", single('\r')},
		{"tab", "t", single('\t')},
		{"digit", "d", specialClass(`\d`)},
		{"letter", "l", &ir.CharClass{Items: []ir.ClassItem{
			{Kind: ir.ClassRange, Lo: 'A', Hi: 'Z'},
			{Kind: ir.ClassRange, Lo: 'a', Hi: 'z'},
		}}},
		{"lowercase", "lc", &ir.CharClass{Items: []ir.ClassItem{{Kind: ir.ClassRange, Lo: 'a', Hi: 'z'}}}},
		{"uppercase", "uc", &ir.CharClass{Items: []ir.ClassItem{{Kind: ir.ClassRange, Lo: 'A', Hi: 'Z'}}}},
		{"space", "s", specialClass(`\s`)},
		{"token_character", "tc", specialClass(`\w`)},

		{"newline", "n", newlineComposite},
		{"not_newline", "", &ir.CharClass{Items: newlineChar.Items, Inverted: true}},
		{"any_at_all", "aaa", anyAtAll},

		{"start_line", "sl", &ir.Boundary{Token: "^"}},
		{"end_line", "el", &ir.Boundary{Token: "$"}},
		{"start_string", "ss", &ir.Boundary{Token: `\A`}},
		{"end_string", "es", &ir.Boundary{Token: `\Z`}},
		{"word_boundary", "wb", &ir.Boundary{Token: `\b`, InverseToken: `\B`}},

		{"windows_newline", "crlf", windowsNewline},
		{"quote", "q", ir.Literal("'")},
		{"double_quote", "dq", ir.Literal(`"`)},
		{"left_brace", "lb", ir.Literal("{")},
		{"right_brace", "rb", ir.Literal("}")},
		{"vertical_tab", "", ir.Literal("\v")},
		{"formfeed", "", ir.Literal("\f")},
		{"bell", "", ir.Literal("\a")},
		{"backspace", "", ir.Literal("\b")},
	}

	bindings := make(map[string]ir.Node, len(atomic)*2)
	for _, e := range atomic {
		bindings[e.canonical] = e.node
		if e.short != "" {
			bindings[e.short] = e.node
		}
	}
	env = env.Push(bindings)

	// The derived macros are compiled, not hand-written: each is run
	// through the real parser and compiler against the environment built
	// so far, exactly as a user-defined macro would be.
	derived := []struct {
		canonical, short, source string
	}{
		{"integer", "int", `[[0-1 '-'] [1+ #digit]]`},
		{"digits", "ds", `[1+ #digit]`},
		{"decimal", "", `[#int [0-1 '.' #digits]]`},
		{"float", "", `[[0-1 '-'] [[#digits '.' [0-1 #digits] | '.' #digits] [0-1 #exponent] | #int #exponent] #exponent=[['e' | 'E'] [0-1 ['+' | '-']] #digits]]`},
		{"hex_digit", "hexd", `[#digit | #a..f | #A..F]`},
		{"hex_number", "hexn", `[1+ #hex_digit]`},
		{"letters", "", `[1+ #letter]`},
		{"token", "", `[#letter | '_'][0+ #token_character]`},
		{"capture_0+_any", "c0", `[capture 0+ #any]`},
		{"capture_1+_any", "c1", `[capture 1+ #any]`},
	}

	for _, d := range derived {
		node, err := ast.Parse(d.source)
		if err != nil {
			panic("compiler: built-in macro " + d.canonical + " failed to parse: " + err.Error())
		}
		compiled, err := Compile(node, env)
		if err != nil {
			panic("compiler: built-in macro " + d.canonical + " failed to compile: " + err.Error())
		}
		b := map[string]ir.Node{d.canonical: compiled}
		if d.short != "" {
			b[d.short] = compiled
		}
		env = env.Push(b)
	}

	return env
}
