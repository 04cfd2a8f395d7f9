package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/project"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new riscpad workspace",
	Long: `Create a new workspace with a configuration file and a starter program.

The workspace will contain:
  - riscpad.yml: Configuration (name, language, load policy, saved files)
  - main.asm: A small example program

Example:
  riscpad init my-program
  riscpad init lab3 --language de --load-policy reject-while-in-flight`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initName       string
	initLanguage   string
	initLoadPolicy string
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initName, "name", "", "Workspace name (defaults to directory name)")
	initCmd.Flags().StringVar(&initLanguage, "language", "", "UI language (en, es, de, fr, sl)")
	initCmd.Flags().StringVar(&initLoadPolicy, "load-policy", "", "What Load does while a read is in flight (cancel-previous, reject-while-in-flight)")
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := checkLanguage(initLanguage); err != nil {
		return err
	}
	if _, err := editor.ParseLoadPolicy(initLoadPolicy); err != nil {
		return err
	}

	dirName := "riscpad"
	if len(args) > 0 {
		dirName = args[0]
	}

	dir, err := filepath.Abs(dirName)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	name := initName
	if name == "" {
		name = filepath.Base(dir)
	}

	if _, err := os.Stat(filepath.Join(dir, project.ProjectFileName)); err == nil {
		return fmt.Errorf("workspace already exists: %s", dir)
	}

	p, err := project.New(dir, name)
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}

	if initLanguage != "" || initLoadPolicy != "" {
		p.Language = initLanguage
		p.LoadPolicy = initLoadPolicy
		if err := p.Save(); err != nil {
			return fmt.Errorf("saving workspace settings: %w", err)
		}
	}

	data := project.TemplateData{ProjectName: name, Created: p.Created}
	if err := project.WriteSource(p.SourcePath(), data); err != nil {
		return fmt.Errorf("creating %s: %w", p.Source, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s/\n", dirName)
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", project.ProjectFileName)
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s (starter program)\n", p.Source)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Next: cd %s && riscpad assemble\n", dirName)

	return nil
}
