// Package tui is the terminal front-end of the editor: a textarea input
// surface, a read-only output viewport, and a file picker for Load.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/translations"
)

// SaveFunc persists an export and returns where it was written.
type SaveFunc func(editor.Export) (string, error)

// Config configures a new Model.
type Config struct {
	Assembler editor.Assembler
	// Source seeds the input surface. editor.DefaultSource when empty.
	Source   string
	Policy   editor.LoadPolicy
	Dir      string // where the file picker starts; "." when empty
	Save     SaveFunc
	Language string
}

type loadDoneMsg struct {
	task *editor.LoadTask
	err  error
}

// Model is the bubbletea model of the editor.
type Model struct {
	ctrl    *editor.Controller
	input   textarea.Model
	output  viewport.Model
	picker  filepicker.Model
	picking bool

	status    string
	statusErr bool

	keys keyMap
	save SaveFunc
	lang string

	width, height int
}

// New returns a Model ready to be run by tea.NewProgram.
func New(cfg Config) Model {
	source := cfg.Source
	if source == "" {
		source = editor.DefaultSource
	}
	lang := cfg.Language
	if !translations.Valid(lang) {
		lang = "en"
	}

	ta := textarea.New()
	ta.CharLimit = 0
	// Line numbers are laid out for up to three digits.
	ta.MaxHeight = 999
	ta.ShowLineNumbers = true
	ta.SetValue(source)
	ta.Focus()

	fp := filepicker.New()
	fp.CurrentDirectory = cfg.Dir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory = "."
	}
	fp.AllowedTypes = []string{".asm", ".s", ".txt"}
	fp.AutoHeight = false

	m := Model{
		ctrl: editor.NewController(cfg.Assembler,
			editor.WithLoadPolicy(cfg.Policy),
			editor.WithInput(source),
		),
		input:  ta,
		output: viewport.New(40, 20),
		picker: fp,
		keys:   defaultKeyMap(),
		save:   cfg.Save,
		lang:   lang,
	}
	m.status = m.t("ready")
	m.resize(80, 24)
	return m
}

func (m Model) t(k string, args ...any) string {
	return translations.T("editor", m.lang, k, args...)
}

// Snapshot returns the editor state behind the surfaces.
func (m Model) Snapshot() editor.State {
	return m.ctrl.Snapshot()
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case loadDoneMsg:
		m.finishLoad(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Assemble):
			m.assemble()
			return m, nil
		case key.Matches(msg, m.keys.Save):
			m.saveInput()
			return m, nil
		case key.Matches(msg, m.keys.Open):
			m.picking = true
			m.status = m.t("picker_title")
			m.statusErr = false
			return m, m.picker.Init()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	// Directory listings arrive as plain messages. Keys only reach the
	// picker while it is open.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.picking {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, ok := msg.(tea.MouseMsg); ok {
		m.output, cmd = m.output.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.picking = false
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return m, tea.Batch(cmd, m.startLoad(editor.OSFile(path)))
	}
	return m, cmd
}

func (m *Model) assemble() {
	m.ctrl.SetInput(m.input.Value())
	ok := m.ctrl.Assemble()
	st := m.ctrl.Snapshot()
	m.output.SetContent(st.Output)
	m.output.GotoTop()
	if ok {
		m.setStatus(m.t("assembled", strings.Count(st.Output, "\n")), false)
	} else {
		m.setStatus(m.t("failed"), true)
	}
}

func (m *Model) saveInput() {
	m.ctrl.SetInput(m.input.Value())
	exp := m.ctrl.Save()
	if m.save == nil {
		return
	}
	path, err := m.save(exp)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(m.t("saved", path), false)
}

// startLoad hands f to the controller and returns a command that waits for
// the read to finish.
func (m *Model) startLoad(f editor.File) tea.Cmd {
	// Keep whatever the user typed if the load fails.
	m.ctrl.SetInput(m.input.Value())

	busy := m.ctrl.InFlight()
	task, err := m.ctrl.Load(context.Background(), f)
	if errors.Is(err, editor.ErrLoadInFlight) {
		m.setStatus(m.t("load_busy", busy), true)
		return nil
	}
	if task == nil {
		return nil
	}
	m.setStatus(m.t("loading", task.Name()), false)
	return func() tea.Msg {
		return loadDoneMsg{task: task, err: task.Wait()}
	}
}

func (m *Model) finishLoad(msg loadDoneMsg) {
	var lerr *editor.LoadError
	switch {
	case msg.err == nil:
		m.input.SetValue(m.ctrl.Snapshot().Input)
		m.input.CursorStart()
		m.setStatus(m.t("loaded", msg.task.Name()), false)
	case errors.As(msg.err, &lerr):
		m.setStatus(m.ctrl.Snapshot().Status, true)
	}
	// Superseded and cancelled loads leave the surfaces alone.
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h

	// borders, labels, title, status and help lines
	paneH := h - 7
	if paneH < 3 {
		paneH = 3
	}
	paneW := w/2 - 2
	if paneW < 10 {
		paneW = 10
	}

	m.input.SetWidth(paneW)
	m.input.SetHeight(paneH)
	m.output.Width = paneW
	m.output.Height = paneH
	m.picker.Height = paneH
}

func (m Model) View() string {
	var left string
	if m.picking {
		left = lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(m.t("load")),
			paneStyle.Render(m.picker.View()),
		)
	} else {
		left = lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(m.t("input_label")),
			paneStyle.Render(m.input.View()),
		)
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(m.t("output_label")),
		paneStyle.Render(m.output.View()),
	)

	status := statusStyle.Render(m.status)
	if m.statusErr {
		status = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.t("title")),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		status,
		helpStyle.Render(m.t("help")),
	)
}
