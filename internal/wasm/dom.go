//go:build js && wasm

package main

import (
	"context"
	"errors"
	"strings"
	"syscall/js"

	"github.com/eljojo/riscpad/internal/editor"
)

// page holds the bound DOM elements.
type page struct {
	doc      js.Value
	input    js.Value
	output   js.Value
	status   js.Value
	fileIn   js.Value
	ctrl     *editor.Controller
	handlers []js.Func
}

func bindEditor(a editor.Assembler) {
	doc := js.Global().Get("document")
	p := &page{
		doc:    doc,
		input:  doc.Call("getElementById", "input-area"),
		output: doc.Call("getElementById", "output-area"),
		status: doc.Call("getElementById", "status"),
		fileIn: doc.Call("getElementById", "file-input"),
	}

	initial := editor.DefaultSource
	if v := p.input.Get("value").String(); strings.TrimSpace(v) != "" {
		initial = v
	}
	p.ctrl = editor.NewController(a,
		editor.WithInput(initial),
		editor.WithOnChange(p.loaded),
	)
	p.input.Set("value", initial)

	p.on("assemble-btn", "click", p.assemble)
	p.on("load-btn", "click", func(js.Value) { p.fileIn.Call("click") })
	p.on("save-btn", "click", p.save)
	p.on("file-input", "change", p.load)

	for _, id := range []string{"assemble-btn", "load-btn", "save-btn"} {
		doc.Call("getElementById", id).Set("disabled", false)
	}
}

func (p *page) on(id, event string, fn func(js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	p.handlers = append(p.handlers, f)
	p.doc.Call("getElementById", id).Call("addEventListener", event, f)
}

// syncInput copies the textarea into the controller before an action reads it.
func (p *page) syncInput() {
	p.ctrl.SetInput(p.input.Get("value").String())
}

func (p *page) assemble(js.Value) {
	p.syncInput()
	ok := p.ctrl.Assemble()
	st := p.ctrl.Snapshot()
	p.render(st)
	if ok {
		p.setStatus(t("assembled", strings.Count(st.Output, "\n")), false)
	} else {
		p.setStatus(t("failed"), true)
	}
}

func (p *page) save(js.Value) {
	p.syncInput()
	exp := p.ctrl.Save()
	download(exp)
	p.setStatus(t("saved", exp.Name), false)
}

func (p *page) load(js.Value) {
	files := p.fileIn.Get("files")
	if files.IsUndefined() || files.IsNull() || files.Length() == 0 {
		return
	}
	f := jsFile{v: files.Index(0)}
	// Allow picking the same file again.
	p.fileIn.Set("value", "")

	// The user may have typed since the last action.
	p.syncInput()
	busy := p.ctrl.InFlight()
	task, err := p.ctrl.Load(context.Background(), f)
	if errors.Is(err, editor.ErrLoadInFlight) {
		p.setStatus(t("load_busy", busy), true)
		return
	}
	if task == nil {
		return
	}
	p.setStatus(t("loading", task.Name()), false)

	go func() {
		if err := task.Wait(); err == nil {
			p.setStatus(t("loaded", task.Name()), false)
		}
	}()
}

// render mirrors the output surface and any error status into the page.
func (p *page) render(st editor.State) {
	p.output.Set("value", st.Output)
	isErr := strings.HasPrefix(st.Output, editor.AssemblyErrorPrefix)
	p.output.Get("classList").Call("toggle", "error", isErr)
	if st.Status != "" {
		p.setStatus(st.Status, true)
	}
}

// loaded applies a committed load. The textarea is only written when the
// file text replaced it, so a failed read keeps whatever was typed since.
func (p *page) loaded(ch editor.Change) {
	if ch.Loaded {
		p.input.Set("value", ch.State.Input)
	}
	if ch.State.Status != "" {
		p.setStatus(ch.State.Status, true)
	}
}

func (p *page) setStatus(msg string, isErr bool) {
	p.status.Set("textContent", msg)
	p.status.Get("classList").Call("toggle", "error", isErr)
}

// download offers exp to the user as a file.
func download(exp editor.Export) {
	global := js.Global()
	data := global.Get("Uint8Array").New(len(exp.Data))
	js.CopyBytesToJS(data, exp.Data)

	blob := global.Get("Blob").New(
		[]any{data},
		map[string]any{"type": exp.MIMEType},
	)
	url := global.Get("URL").Call("createObjectURL", blob)

	a := global.Get("document").Call("createElement", "a")
	a.Set("href", url)
	a.Set("download", exp.Name)
	a.Call("click")
	global.Get("URL").Call("revokeObjectURL", url)
}

// t translates via the page's translation table.
func t(key string, args ...any) string {
	fn := js.Global().Get("riscpadT")
	if fn.Type() != js.TypeFunction {
		return key
	}
	return fn.Invoke(append([]any{key}, args...)...).String()
}

// jsFile adapts a browser File object to editor.File.
type jsFile struct {
	v js.Value
}

func (f jsFile) Name() string { return f.v.Get("name").String() }

// ReadText awaits File.text().
func (f jsFile) ReadText(ctx context.Context) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	var onOK, onErr js.Func
	release := func() {
		onOK.Release()
		onErr.Release()
	}
	onOK = js.FuncOf(func(this js.Value, args []js.Value) any {
		ch <- result{text: args[0].String()}
		release()
		return nil
	})
	onErr = js.FuncOf(func(this js.Value, args []js.Value) any {
		msg := "read failed"
		if len(args) > 0 && !args[0].IsUndefined() {
			msg = args[0].Call("toString").String()
		}
		ch <- result{err: errors.New(msg)}
		release()
		return nil
	})

	f.v.Call("text").Call("then", onOK, onErr)

	select {
	case r := <-ch:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
