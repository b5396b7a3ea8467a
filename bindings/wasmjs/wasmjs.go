//go:build js && wasm

// Package wasmjs exposes Transpile to a JavaScript host running this
// module compiled with GOOS=js GOARCH=wasm, mirroring the `transpile`
// export of the original wasm-bindgen binding.
package wasmjs

import (
	"syscall/js"

	"github.com/SonOfLilit/kleenexp"
)

// Register installs the "kleenexpTranspile" global function on the JS
// global object (globalThis in a browser or worker). Call it once from
// main's init path before blocking forever, the usual syscall/js pattern.
func Register() {
	js.Global().Set("kleenexpTranspile", js.FuncOf(transpile))
}

// transpile(pattern: string, flavor?: string) -> string | {error: string}
//
// flavor defaults to "javascript", matching the original binding's
// RegexFlavor::Javascript default: a wasm binding is overwhelmingly used
// from a JS regex literal.
func transpile(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return errorResult("transpile requires a pattern string argument")
	}
	pattern := args[0].String()

	flavorName := "javascript"
	if len(args) >= 2 && args[1].Type() == js.TypeString {
		flavorName = args[1].String()
	}

	flavor, err := kleenexp.ParseFlavor(flavorName)
	if err != nil {
		return errorResult(err.Error())
	}

	out, err := kleenexp.Transpile(pattern, flavor)
	if err != nil {
		return errorResult(err.Error())
	}
	return out
}

func errorResult(msg string) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("error", msg)
	return obj
}
