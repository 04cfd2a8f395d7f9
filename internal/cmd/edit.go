package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eljojo/riscpad/internal/asm"
	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/project"
	"github.com/eljojo/riscpad/internal/tui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open the terminal editor",
	Long: `Open a two-pane terminal editor: assembly source on the left, machine
code on the right.

Keys:
  ctrl+r  assemble
  ctrl+o  load a file (esc cancels)
  ctrl+s  save the source as assembly_code.asm
  ctrl+q  quit

Without a file argument the workspace's source file is opened, or the
example program when there is no workspace.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

var editLanguage string

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editLanguage, "language", "", "UI language (en, es, de, fr, sl)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := checkLanguage(editLanguage); err != nil {
		return err
	}

	p, err := findProject()
	if err != nil {
		return err
	}

	cfg, err := editorConfig(cmd.Context(), p, args)
	if err != nil {
		return err
	}
	cfg.Language = resolveLanguage(editLanguage, p)

	prog := tea.NewProgram(tui.New(cfg), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// editorConfig builds the terminal editor configuration for a workspace
// (which may be nil) and the command's optional file argument.
func editorConfig(ctx context.Context, p *project.Project, args []string) (tui.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return tui.Config{}, fmt.Errorf("getting current directory: %w", err)
	}

	cfg := tui.Config{
		Assembler: asm.New(),
		Dir:       cwd,
	}

	var path string
	switch {
	case len(args) > 0:
		path = args[0]
	case p != nil:
		if _, err := os.Stat(p.SourcePath()); err == nil {
			path = p.SourcePath()
		}
	}
	if path != "" {
		text, err := loadSource(ctx, path)
		if err != nil {
			return tui.Config{}, fmt.Errorf("opening %s: %w", path, err)
		}
		cfg.Source = text
		cfg.Dir = filepath.Dir(path)
	}

	if p != nil {
		cfg.Policy = p.Policy()
		cfg.Save = p.WriteExport
	} else {
		saveTo := filepath.Join(cwd, editor.SaveFileName)
		cfg.Save = func(exp editor.Export) (string, error) {
			if err := os.WriteFile(saveTo, exp.Data, 0644); err != nil {
				return "", fmt.Errorf("writing %s: %w", exp.Name, err)
			}
			return saveTo, nil
		}
	}

	return cfg, nil
}

// loadSource reads path through the editor loader, honouring ctx.
func loadSource(ctx context.Context, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return editor.OSFile(path).ReadText(ctx)
}
