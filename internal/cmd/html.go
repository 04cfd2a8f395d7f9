package cmd

import (
	"fmt"
	"os"

	"github.com/eljojo/riscpad/internal/html"
	"github.com/spf13/cobra"
)

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Generate the standalone browser editor",
	Long: `Generate editor.html, a single self-contained page with the assembler
compiled to WebAssembly. It works fully offline.

Examples:
  riscpad html > editor.html
  riscpad html -o editor.html --language fr
  riscpad html -o lab.html --source lab.asm`,
	Args: cobra.NoArgs,
	RunE: runHTML,
}

var (
	htmlOutputFile string
	htmlLanguage   string
	htmlSource     string
)

func init() {
	htmlCmd.Flags().StringVarP(&htmlOutputFile, "output", "o", "", "Output file path (default: stdout)")
	htmlCmd.Flags().StringVar(&htmlLanguage, "language", "", "Default UI language (en, es, de, fr, sl)")
	htmlCmd.Flags().StringVar(&htmlSource, "source", "", "Seed the input area with this file instead of the example program")
	rootCmd.AddCommand(htmlCmd)
}

func runHTML(cmd *cobra.Command, args []string) error {
	if err := checkLanguage(htmlLanguage); err != nil {
		return err
	}

	wasm := html.GetEditorWASMBytes()
	if len(wasm) == 0 {
		return fmt.Errorf("editor.wasm not embedded - rebuild with 'make build'")
	}

	p, err := findProject()
	if err != nil {
		return err
	}

	opts := html.PageOptions{
		Version:   version,
		GitHubURL: fmt.Sprintf("https://github.com/eljojo/riscpad/releases/tag/%s", version),
		Language:  resolveLanguage(htmlLanguage, p),
	}
	if htmlSource != "" {
		text, err := loadSource(cmd.Context(), htmlSource)
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		opts.Source = text
	}

	content := html.GenerateEditorHTML(wasm, opts)

	// Output to file or stdout
	if htmlOutputFile != "" {
		if err := os.WriteFile(htmlOutputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Generated %s (%s)\n", htmlOutputFile, formatSize(int64(len(content))))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), content)
	}

	return nil
}
