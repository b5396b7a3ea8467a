// Package kleenexp transpiles Kleenexp surface syntax into regular
// expressions for Python, JavaScript, Rust (regex crate), and Rust with
// fancy-regex's lookaround support.
//
// Example:
//
//	re, err := kleenexp.Transpile("[#start_string][1+ #digit][0-1 '.' [1+ #digit]][#end_string]", kleenexp.Python)
//	// re == `\A\d+(?:\.\d+)?\Z`, err == nil
package kleenexp

import (
	"fmt"

	"github.com/SonOfLilit/kleenexp/internal/ast"
	"github.com/SonOfLilit/kleenexp/internal/compiler"
	"github.com/SonOfLilit/kleenexp/internal/render"
)

// Transpile compiles a Kleenexp pattern into a regex string for the given
// flavor. A pattern using lookahead or lookbehind against Rust (which
// lacks lookaround support) fails with a *CompileError; use RustFancy for
// that.
func Transpile(pattern string, flavor Flavor) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CompileError{Pattern: pattern, err: fmt.Errorf("%v", r)}
		}
	}()

	node, perr := ast.Parse(pattern)
	if perr != nil {
		return "", &ParseError{Pattern: pattern, err: perr}
	}

	ir, cerr := compiler.Compile(node, compiler.Builtins())
	if cerr != nil {
		return "", &CompileError{Pattern: pattern, err: cerr}
	}

	out, rerr := render.Render(ir, flavor, false)
	if rerr != nil {
		return "", &CompileError{Pattern: pattern, err: rerr}
	}
	return out, nil
}
