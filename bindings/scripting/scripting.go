// Package scripting adapts kleenexp.Transpile for embedding inside a
// host scripting runtime: it collapses the two internal error shapes into
// one exported hierarchy a host can type-switch on, and optionally hands
// back a compiled *regexp.Regexp for flavors whose syntax Go's RE2 engine
// can actually run.
//
// There is no scripting VM wired in here: embedding one (goja, otlo,
// gopher-lua) is out of scope for a library that only transpiles and
// never executes a match, and none of the retrieved reference material
// uses such a runtime. A host that wants to expose kleenexp to, say, a
// Lua VM imports this package and registers Transpile under whatever name
// its VM binding convention expects.
package scripting

import (
	"errors"
	"regexp"

	"github.com/SonOfLilit/kleenexp"
)

// Re is a transpiled pattern: its regex text, the flavor it was rendered
// for, and, where possible, a ready-to-run Go regexp.
type Re struct {
	Source string
	Flavor kleenexp.Flavor
	Go     *regexp.Regexp // nil unless Flavor's syntax is RE2-compatible
}

// ParseError reports that the host supplied a malformed Kleenexp pattern.
type ParseError struct{ err error }

func (e *ParseError) Error() string { return e.err.Error() }
func (e *ParseError) Unwrap() error { return e.err }

// CompileError reports that a syntactically valid pattern could not be
// lowered to a regex (undefined macro, unsupported inversion, lookaround
// requested against a flavor that lacks it).
type CompileError struct{ err error }

func (e *CompileError) Error() string { return e.err.Error() }
func (e *CompileError) Unwrap() error { return e.err }

// Compile transpiles pattern and wraps the result for a scripting host.
// The returned error, if non-nil, is always a *ParseError or
// *CompileError; use errors.As to recover the distinction.
func Compile(pattern string, flavor kleenexp.Flavor) (*Re, error) {
	out, err := kleenexp.Transpile(pattern, flavor)
	if err != nil {
		var pe *kleenexp.ParseError
		if errors.As(err, &pe) {
			return nil, &ParseError{err: err}
		}
		return nil, &CompileError{err: err}
	}

	re := &Re{Source: out, Flavor: flavor}
	if flavor == kleenexp.JavaScript {
		if compiled, err := regexp.Compile(out); err == nil {
			re.Go = compiled
		}
	}
	return re, nil
}
