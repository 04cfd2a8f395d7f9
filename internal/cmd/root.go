package cmd

import (
	"github.com/spf13/cobra"
)

// version is set by Execute.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "riscpad",
	Short: "Write, assemble and save SimpleRISC assembly",
	Long: `riscpad assembles SimpleRISC assembly into 32-bit machine words and
keeps a small workspace of source files.

Create a workspace:  riscpad init my-program
Assemble a file:     riscpad assemble main.asm
Edit interactively:  riscpad edit
Browser editor:      riscpad html -o editor.html`,
}

func Execute(v string) error {
	version = v
	rootCmd.Version = v
	return rootCmd.Execute()
}
