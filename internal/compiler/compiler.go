// Package compiler lowers a Kleenexp AST into the intermediate regex
// algebra (package ir), resolving macro references against a macro.Env and
// enforcing the semantic invariants the parser does not: non-empty
// operator/quantifier bodies, the closed operator set, capture tag shape,
// range well-formedness, and the rules for inverting an already-compiled
// expression.
package compiler

import (
	"fmt"
	"unicode"

	"github.com/SonOfLilit/kleenexp/internal/ast"
	"github.com/SonOfLilit/kleenexp/internal/ir"
	"github.com/SonOfLilit/kleenexp/internal/macro"
)

// Compile lowers an AST produced by ast.Parse into IR, resolving macros
// against env (typically compiler.Builtins(), possibly wrapped in more
// scopes by the caller).
func Compile(n ast.Node, env *macro.Env) (ir.Node, error) {
	return compile(n, env)
}

func compile(n ast.Node, env *macro.Env) (ir.Node, error) {
	switch v := n.(type) {
	case *ast.Concat:
		return compileConcat(v, env)
	case *ast.Either:
		return compileEither(v, env)
	case *ast.Operator:
		return compileOperator(v, env)
	case *ast.Multiple:
		return compileMultiple(v, env)
	case *ast.Macro:
		return compileMacro(v, env)
	case *ast.Range:
		return compileRange(v)
	case *ast.Literal:
		return ir.Literal(v.Value), nil
	case *ast.DefMacro:
		// A DefMacro is only ever legal as a direct child of a Concat;
		// compileConcat strips it out before recursing. Reaching here
		// means the AST violated that invariant.
		panic("compiler: DefMacro node reached outside of Concat")
	default:
		return nil, fmt.Errorf("compiler: unknown AST node %T", n)
	}
}

func compileConcat(c *ast.Concat, env *macro.Env) (ir.Node, error) {
	var defs []*ast.DefMacro
	var nonDefs []ast.Node
	for _, child := range c.Children {
		if d, ok := child.(*ast.DefMacro); ok {
			defs = append(defs, d)
		} else {
			nonDefs = append(nonDefs, child)
		}
	}

	seen := make(map[string]bool, len(defs))
	scopeEnv := env
	for _, d := range defs {
		if seen[d.Name] {
			return nil, fmt.Errorf("macro %q redefined in the same scope", d.Name)
		}
		seen[d.Name] = true
		body, err := compile(d.Body, scopeEnv)
		if err != nil {
			return nil, err
		}
		scopeEnv = scopeEnv.Push(map[string]ir.Node{d.Name: body})
	}

	children := make([]ir.Node, 0, len(nonDefs))
	for _, n := range nonDefs {
		compiled, err := compile(n, scopeEnv)
		if err != nil {
			return nil, err
		}
		children = append(children, compiled)
	}
	return ir.Concat(children), nil
}

func compileEither(e *ast.Either, env *macro.Env) (ir.Node, error) {
	compiled := make([]ir.Node, len(e.Children))
	for i, c := range e.Children {
		n, err := compile(c, env)
		if err != nil {
			return nil, err
		}
		compiled[i] = n
	}
	if items, ok := fuseCharClass(compiled); ok {
		return &ir.CharClass{Items: items}, nil
	}
	return ir.Either(compiled), nil
}

// fuseCharClass implements the one non-local rewrite the compiler
// performs: an alternation of single-character literals and/or
// non-inverted character classes collapses into a single character class.
func fuseCharClass(alts []ir.Node) ([]ir.ClassItem, bool) {
	var items []ir.ClassItem
	for _, n := range alts {
		switch v := n.(type) {
		case ir.Literal:
			rs := []rune(string(v))
			if len(rs) != 1 {
				return nil, false
			}
			items = append(items, ir.ClassItem{Kind: ir.ClassSingle, Rune: rs[0]})
		case *ir.CharClass:
			if v.Inverted {
				return nil, false
			}
			items = append(items, v.Items...)
		default:
			return nil, false
		}
	}
	return items, true
}

func isEmptyIR(n ir.Node) bool {
	switch v := n.(type) {
	case ir.Literal:
		return string(v) == ""
	case ir.Concat:
		return len(v) == 0
	default:
		return false
	}
}

func compileMultiple(m *ast.Multiple, env *macro.Env) (ir.Node, error) {
	body, err := compile(m.Body, env)
	if err != nil {
		return nil, err
	}
	if isEmptyIR(body) {
		return nil, fmt.Errorf("quantifier requires a non-empty body")
	}
	if m.Min == 0 && m.Max != nil && *m.Max == 0 {
		return ir.Literal(""), nil
	}
	var max *int
	if m.Max != nil {
		v := *m.Max
		max = &v
	}
	return &ir.Multiple{Min: m.Min, Max: max, Greedy: false, Sub: body}, nil
}

var operatorAliases = map[string]string{
	"capture":    "capture",
	"c":          "capture",
	"not":        "not",
	"n":          "not",
	"lookahead":  "lookahead",
	"la":         "lookahead",
	"lookbehind": "lookbehind",
	"lb":         "lookbehind",
	"comment":    "comment",
}

func compileOperator(o *ast.Operator, env *macro.Env) (ir.Node, error) {
	canonical, known := operatorAliases[o.Op]
	if !known {
		return nil, fmt.Errorf("unknown operator %q", o.Op)
	}

	if canonical == "comment" {
		return ir.Literal(""), nil
	}

	if canonical != "capture" && o.Tag != "" {
		return nil, fmt.Errorf("operator %q does not accept a tag", o.Op)
	}

	body, err := compile(o.Body, env)
	if err != nil {
		return nil, err
	}
	if isEmptyIR(body) {
		return nil, fmt.Errorf("operator %q requires a non-empty body", o.Op)
	}

	switch canonical {
	case "capture":
		if !validTagName(o.Tag) {
			return nil, fmt.Errorf("invalid capture name %q", o.Tag)
		}
		return &ir.Capture{Name: o.Tag, Sub: body}, nil
	case "not":
		return invert(body)
	case "lookahead":
		return &ir.ParensOp{Kind: ir.Lookahead, Sub: body}, nil
	case "lookbehind":
		return &ir.ParensOp{Kind: ir.Lookbehind, Sub: body}, nil
	default:
		return nil, fmt.Errorf("unknown operator %q", o.Op)
	}
}

// validTagName matches ^[a-z_]\w*$; an empty tag (anonymous capture) is
// always valid.
func validTagName(s string) bool {
	if s == "" {
		return true
	}
	first := rune(s[0])
	if !(first == '_' || (first >= 'a' && first <= 'z')) {
		return false
	}
	for _, r := range s[1:] {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// invert implements the AST-to-IR compiler's inversion rules; it is how
// the `not`/`n` operator is realized.
func invert(n ir.Node) (ir.Node, error) {
	switch v := n.(type) {
	case ir.Literal:
		rs := []rune(string(v))
		if len(rs) != 1 {
			return nil, fmt.Errorf("cannot invert multi-character literal %q; maybe try [not lookahead ...]", string(v))
		}
		return &ir.CharClass{Items: []ir.ClassItem{{Kind: ir.ClassSingle, Rune: rs[0]}}, Inverted: true}, nil
	case *ir.CharClass:
		return &ir.CharClass{Items: v.Items, Inverted: !v.Inverted}, nil
	case *ir.Boundary:
		if v.InverseToken == "" {
			return nil, fmt.Errorf("boundary %q has no inverse; maybe try [not lookahead ...]", v.Token)
		}
		return &ir.Boundary{Token: v.InverseToken, InverseToken: v.Token}, nil
	case *ir.ParensOp:
		return &ir.ParensOp{Kind: v.Kind.Invert(), Sub: v.Sub}, nil
	default:
		return nil, fmt.Errorf("cannot invert this expression; maybe try [not lookahead ...]")
	}
}

func compileMacro(m *ast.Macro, env *macro.Env) (ir.Node, error) {
	n, ok := env.Get(m.Name)
	if !ok {
		return nil, fmt.Errorf("Macro not defined: %s", m.Name)
	}
	return n, nil
}

func compileRange(r *ast.Range) (ir.Node, error) {
	if err := validateAtomRange(r.Start, r.End); err != nil {
		return nil, err
	}
	return &ir.CharClass{Items: []ir.ClassItem{{Kind: ir.ClassRange, Lo: r.Start, Hi: r.End}}}, nil
}

func validateAtomRange(a, b rune) error {
	if !isAlnum(a) || !isAlnum(b) {
		return fmt.Errorf("invalid range %c..%c: endpoints must be alphanumeric", a, b)
	}
	if a > b {
		return fmt.Errorf("invalid range %c..%c: start must not be after end", a, b)
	}
	if unicode.IsLetter(a) != unicode.IsLetter(b) {
		return fmt.Errorf("invalid range %c..%c: endpoints must both be letters or both be digits", a, b)
	}
	return nil
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
