package html

import (
	_ "embed"
)

// Embedded assets for the editor page.
// editor.wasm and wasm_exec.js are produced by `make wasm`.

//go:embed assets/editor.html
var editorHTMLTemplate string

//go:embed assets/app.js
var appJS string

//go:embed assets/styles.css
var stylesCSS string

//go:embed assets/wasm_exec.js
var wasmExecJS string

//go:embed assets/editor.wasm
var editorWASM []byte

// GetEditorWASMBytes returns the embedded editor WASM binary.
func GetEditorWASMBytes() []byte {
	return editorWASM
}
