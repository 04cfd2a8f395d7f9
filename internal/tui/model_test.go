package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eljojo/riscpad/internal/asm"
	"github.com/eljojo/riscpad/internal/editor"
)

func newTestModel(t *testing.T, source string) Model {
	t.Helper()
	return New(Config{
		Assembler: asm.New(),
		Source:    source,
		Dir:       t.TempDir(),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm, cmd
}

// runLoad drives a load command to completion and feeds the result back.
func runLoad(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		m, _ = update(t, m, msg)
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("load did not finish")
		return m
	}
}

func TestNewSeedsDefaultSource(t *testing.T) {
	m := newTestModel(t, "")
	if got := m.input.Value(); got != editor.DefaultSource {
		t.Errorf("input: got %q, want DefaultSource", got)
	}
	if got := m.Snapshot(); got.Input != editor.DefaultSource || got.Output != "" {
		t.Errorf("state: got %+v", got)
	}
	if m.status != "Ready" {
		t.Errorf("status: got %q", m.status)
	}
}

func TestAssembleKey(t *testing.T) {
	m := newTestModel(t, "mov r1, #10\nmov r2, #20\nadd r3, r1, r2")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	want := "Addr 00: 01001100001000000000000000001010  (0x4C20000A)\n" +
		"Addr 01: 01001100010000000000000000010100  (0x4C400014)\n" +
		"Addr 02: 00000000011000010001000000000000  (0x00611000)\n"
	if got := m.Snapshot().Output; got != want {
		t.Errorf("output:\ngot  %q\nwant %q", got, want)
	}
	if m.status != "Assembled 3 words" || m.statusErr {
		t.Errorf("status: got %q (err=%v)", m.status, m.statusErr)
	}
}

func TestAssembleKeyError(t *testing.T) {
	m := newTestModel(t, "frobnicate r1")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	out := m.Snapshot().Output
	if !strings.HasPrefix(out, editor.AssemblyErrorPrefix) {
		t.Errorf("output: got %q, want Assembly Error prefix", out)
	}
	if strings.Contains(out, "Addr ") {
		t.Error("error output should not contain listing lines")
	}
	if !m.statusErr {
		t.Error("status should be flagged as an error")
	}
}

func TestTypingThenAssemble(t *testing.T) {
	m := newTestModel(t, "nop")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ret")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	if got := m.Snapshot().Input; got != "nop\nret" {
		t.Fatalf("input: got %q", got)
	}
	if got := strings.Count(m.Snapshot().Output, "\n"); got != 2 {
		t.Errorf("expected 2 listing lines, got %d", got)
	}
}

func TestSaveKey(t *testing.T) {
	var saved []editor.Export
	m := New(Config{
		Assembler: asm.New(),
		Source:    "nop",
		Save: func(exp editor.Export) (string, error) {
			saved = append(saved, exp)
			return "/tmp/" + exp.Name, nil
		},
	})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(saved) != 1 {
		t.Fatalf("saves: got %d, want 1", len(saved))
	}
	exp := saved[0]
	if exp.Name != "assembly_code.asm" || exp.MIMEType != "text/plain" || string(exp.Data) != "nop" {
		t.Errorf("export: got %+v", exp)
	}
	if m.status != "Saved /tmp/assembly_code.asm" {
		t.Errorf("status: got %q", m.status)
	}
	if m.Snapshot().Output != "" {
		t.Error("save should not touch the output surface")
	}
}

func TestSaveKeyError(t *testing.T) {
	m := New(Config{
		Assembler: asm.New(),
		Save: func(editor.Export) (string, error) {
			return "", errors.New("disk full")
		},
	})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "disk full" || !m.statusErr {
		t.Errorf("status: got %q (err=%v)", m.status, m.statusErr)
	}
}

func TestLoadReplacesInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	if err := os.WriteFile(path, []byte("ret\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, "nop")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	before := m.Snapshot().Output

	cmd := m.startLoad(editor.OSFile(path))
	if !strings.HasPrefix(m.status, "Loading prog.asm") {
		t.Errorf("status while loading: got %q", m.status)
	}
	m = runLoad(t, m, cmd)

	if got := m.input.Value(); got != "ret\n" {
		t.Errorf("input: got %q", got)
	}
	if got := m.Snapshot().Output; got != before {
		t.Errorf("load changed output: got %q, want %q", got, before)
	}
	if m.status != "Loaded prog.asm" {
		t.Errorf("status: got %q", m.status)
	}
}

func TestLoadFailureKeepsInput(t *testing.T) {
	m := newTestModel(t, "nop")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	typed := m.input.Value()

	m = runLoad(t, m, m.startLoad(editor.OSFile(filepath.Join(t.TempDir(), "missing.asm"))))

	if got := m.input.Value(); got != typed {
		t.Errorf("input: got %q, want %q", got, typed)
	}
	if !strings.HasPrefix(m.status, editor.LoadErrorPrefix) || !m.statusErr {
		t.Errorf("status: got %q (err=%v)", m.status, m.statusErr)
	}
	if m.Snapshot().Output != "" {
		t.Error("failed load should not touch output")
	}
}

func TestLoadRejectedWhileInFlight(t *testing.T) {
	m := New(Config{Assembler: asm.New(), Policy: editor.RejectWhileInFlight})

	f := &slowFile{name: "slow.asm", release: make(chan struct{})}
	cmd := m.startLoad(f)
	if cmd == nil {
		t.Fatal("expected first load to start")
	}

	if again := m.startLoad(editor.TextFile{FileName: "other.asm", Text: "ret"}); again != nil {
		t.Error("second load should be rejected")
	}
	if !strings.Contains(m.status, "slow.asm") || !m.statusErr {
		t.Errorf("status: got %q (err=%v)", m.status, m.statusErr)
	}

	close(f.release)
	m = runLoad(t, m, cmd)
	if got := m.input.Value(); got != "nop" {
		t.Errorf("input: got %q", got)
	}
}

func TestOpenAndCancelPicker(t *testing.T) {
	m := newTestModel(t, "nop")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.picking {
		t.Fatal("ctrl+o should open the picker")
	}
	if cmd == nil {
		t.Error("opening the picker should read the directory")
	}

	// Keys go to the picker, not the input surface.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	if got := m.input.Value(); got != "nop" {
		t.Errorf("input changed while picking: %q", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.picking {
		t.Error("esc should close the picker")
	}
	if got := m.Snapshot().Input; got != "nop" {
		t.Errorf("cancelled load changed input: %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlQ, tea.KeyCtrlC} {
		m := newTestModel(t, "")
		_, cmd := update(t, m, tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", k)
		}
	}
}

func TestViewShowsLabels(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	v := m.View()
	for _, want := range []string{"SimpleRISC Assembler", "Assembly code", "Machine code", "ctrl+r"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLanguage(t *testing.T) {
	m := New(Config{Assembler: asm.New(), Language: "de"})
	if m.lang != "de" {
		t.Errorf("lang: got %q", m.lang)
	}
	m = New(Config{Assembler: asm.New(), Language: "xx"})
	if m.lang != "en" {
		t.Errorf("unknown language should fall back to en, got %q", m.lang)
	}
}

type slowFile struct {
	name    string
	release chan struct{}
}

func (f *slowFile) Name() string { return f.name }

func (f *slowFile) ReadText(ctx context.Context) (string, error) {
	select {
	case <-f.release:
		return "nop", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
