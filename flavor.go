package kleenexp

import "github.com/SonOfLilit/kleenexp/internal/render"

// Flavor selects which regex dialect Transpile renders for. The compiled
// IR is identical across flavors; only Render's named-capture header and
// lookaround support change.
type Flavor = render.Flavor

const (
	Python     = render.Python
	JavaScript = render.JavaScript
	Rust       = render.Rust
	RustFancy  = render.RustFancy
)

// ParseFlavor maps a flavor name ("python", "javascript", "rust",
// "rust-fancy") to a Flavor value, for callers that take the flavor as a
// string (the CLI, the wasm binding).
func ParseFlavor(name string) (Flavor, error) {
	return render.ParseFlavor(name)
}

// SupportsLookaround reports whether f's target engine implements
// lookahead/lookbehind assertions.
func SupportsLookaround(f Flavor) bool {
	return render.SupportsLookaround(f)
}
