package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/eljojo/riscpad/internal/project"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace status and summary",
	Long:  `Displays the current workspace: its source file, settings, and the files written by Save.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	printStatus(cmd.OutOrStdout(), p, time.Now())
	return nil
}

func printStatus(w io.Writer, p *project.Project, now time.Time) {
	fmt.Fprintf(w, "Workspace: %s\n", p.Name)
	fmt.Fprintf(w, "Path: %s\n\n", p.Path)

	if info, err := os.Stat(p.SourcePath()); err == nil {
		fmt.Fprintf(w, "Source: %s (%s)\n", p.SourcePath(), formatSize(info.Size()))
	} else {
		fmt.Fprintf(w, "Source: %s %s\n", p.SourcePath(), yellow("(missing)"))
	}

	lang := p.Language
	if lang == "" {
		lang = "en"
	}
	fmt.Fprintf(w, "Language: %s\n", lang)
	fmt.Fprintf(w, "Load policy: %s\n", p.Policy())

	fmt.Fprintln(w)
	if len(p.Saved) == 0 {
		fmt.Fprintf(w, "Saved: %s\n", yellow("Nothing saved yet"))
		fmt.Fprintln(w, "  Press ctrl+s in 'riscpad edit' to save the source")
		return
	}

	fmt.Fprintln(w, "Saved:")
	for _, s := range p.Saved {
		fmt.Fprintf(w, "  %s %s  %s  (%s ago)\n", green("✓"), s.File, s.Short(), formatDuration(now.Sub(s.At)))
	}
}
