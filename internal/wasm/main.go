//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/eljojo/riscpad/internal/asm"
	"github.com/eljojo/riscpad/internal/editor"
)

func main() {
	// Scripting entry point
	scripting := asm.New()
	js.Global().Set("riscpadAssemble", js.FuncOf(func(this js.Value, args []js.Value) any {
		return assembleJS(scripting, args)
	}))

	bindEditor(asm.New())

	// Signal that WASM is ready
	js.Global().Set("riscpadReady", true)

	// Keep the Go program running
	select {}
}

// assembleJS assembles the text in args[0] without touching the page.
// Returns: { output: string, ok: bool, error: string|null }
func assembleJS(a editor.Assembler, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("missing source argument")
	}
	if args[0].Type() != js.TypeString {
		return errorResult("source must be a string")
	}

	st := editor.State{Input: args[0].String()}
	ok := editor.Assemble(&st, a)

	return js.ValueOf(map[string]any{
		"output": st.Output,
		"ok":     ok,
		"error":  nil,
	})
}

func errorResult(msg string) any {
	return js.ValueOf(map[string]any{
		"error": msg,
	})
}
