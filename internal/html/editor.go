package html

import (
	"bytes"
	"compress/gzip"
	"crypto/rand"
	"encoding/base64"
	stdhtml "html"
	"strings"

	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/translations"
)

// PageOptions customises the generated editor page.
type PageOptions struct {
	Version   string
	GitHubURL string
	Language  string // default UI language; "en" when empty
	Source    string // initial input text; editor.DefaultSource when empty
}

// GenerateEditorHTML creates the complete editor.html with all assets embedded.
// wasmBytes should be the compiled editor.wasm binary.
func GenerateEditorHTML(wasmBytes []byte, opts PageOptions) string {
	html := editorHTMLTemplate

	lang := opts.Language
	if !translations.Valid(lang) {
		lang = "en"
	}
	source := opts.Source
	if source == "" {
		source = editor.DefaultSource
	}

	// Embed translations
	html = strings.Replace(html, "{{TRANSLATIONS}}", translations.GetTranslationsJS("editor"), 1)

	// Embed styles
	html = strings.Replace(html, "{{STYLES}}", stylesCSS, 1)

	// Embed wasm_exec.js
	html = strings.Replace(html, "{{WASM_EXEC}}", wasmExecJS, 1)

	html = strings.Replace(html, "{{APP_JS}}", appJS, 1)

	// Embed WASM as gzip-compressed base64
	html = strings.Replace(html, "{{WASM_BASE64}}", compressAndEncode(wasmBytes), 1)

	html = strings.ReplaceAll(html, "{{LANG}}", lang)
	html = strings.ReplaceAll(html, "{{VERSION}}", escapeText(opts.Version))
	html = strings.ReplaceAll(html, "{{GITHUB_URL}}", escapeText(opts.GitHubURL))

	// One nonce per page, shared by every script tag and the CSP header.
	html = strings.ReplaceAll(html, "{{CSP_NONCE}}", newNonce())

	// User text goes in last so it is never scanned for placeholders.
	html = strings.Replace(html, "{{INITIAL_SOURCE}}", escapeText(source), 1)

	return html
}

func escapeText(s string) string {
	return stdhtml.EscapeString(s)
}

func newNonce() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return base64.StdEncoding.EncodeToString(b[:])
}

// compressAndEncode gzip-compresses data and returns base64-encoded result.
func compressAndEncode(data []byte) string {
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		panic("gzip.NewWriterLevel: " + err.Error())
	}
	if _, err := gz.Write(data); err != nil {
		panic("gzip.Write: " + err.Error())
	}
	if err := gz.Close(); err != nil {
		panic("gzip.Close: " + err.Error())
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
