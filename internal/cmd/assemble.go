package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eljojo/riscpad/internal/asm"
	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/pdf"
	"github.com/eljojo/riscpad/internal/project"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [file]",
	Short: "Assemble a source file and print the listing",
	Long: `Load a SimpleRISC source file and assemble it. The listing has one line
per word:

  Addr 00: 01001100001000000000000000001010  (0x4C20000A)

Without a file argument the workspace's source file is used.

Examples:
  riscpad assemble
  riscpad assemble boot.asm -o listing.txt
  riscpad assemble boot.asm --pdf listing.pdf`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runAssemble,
}

var (
	assembleOutput   string
	assemblePDF      string
	assembleLanguage string
)

func init() {
	assembleCmd.Long += "\n\nInstructions:\n  " + strings.Join(asm.Mnemonics(), " ")
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringVarP(&assembleOutput, "output", "o", "", "Write the listing to a file (default: stdout)")
	assembleCmd.Flags().StringVar(&assemblePDF, "pdf", "", "Also write a printable listing PDF")
	assembleCmd.Flags().StringVar(&assembleLanguage, "language", "", "Language of the PDF listing (en, es, de, fr, sl)")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	if err := checkLanguage(assembleLanguage); err != nil {
		return err
	}

	p, err := findProject()
	if err != nil {
		return err
	}

	var path string
	switch {
	case len(args) > 0:
		path = args[0]
	case p != nil:
		path = p.SourcePath()
	default:
		return fmt.Errorf("no file given and no riscpad workspace found")
	}

	policy := editor.CancelPrevious
	if p != nil {
		policy = p.Policy()
	}

	// Keep the words for the PDF.
	var words []uint32
	a := asm.New()
	capture := editor.AssemblerFunc(func(src string) ([]uint32, error) {
		w, err := a.Assemble(src)
		words = w
		return w, err
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl := editor.NewController(capture, editor.WithLoadPolicy(policy))
	task, err := ctrl.Load(ctx, editor.OSFile(path))
	if err != nil {
		return err
	}
	if err := task.Wait(); err != nil {
		var lerr *editor.LoadError
		if errors.As(err, &lerr) {
			return errors.New(ctrl.Snapshot().Status)
		}
		return err
	}

	ok := ctrl.Assemble()
	st := ctrl.Snapshot()
	if !ok {
		fmt.Fprint(cmd.ErrOrStderr(), st.Output+"\n")
		return fmt.Errorf("assembly of %s failed", filepath.Base(path))
	}

	if assembleOutput != "" {
		if err := os.WriteFile(assembleOutput, []byte(st.Output), 0644); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d words to %s\n", len(words), assembleOutput)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), st.Output)
	}

	if assemblePDF != "" {
		data := pdf.ListingData{
			SourceName: filepath.Base(path),
			Source:     st.Input,
			Words:      words,
			Checksum:   project.Checksum([]byte(st.Input)),
			Version:    version,
			Created:    time.Now().UTC(),
			Language:   resolveLanguage(assembleLanguage, p),
		}
		pdfBytes, err := pdf.GenerateListing(data)
		if err != nil {
			return fmt.Errorf("generating PDF: %w", err)
		}
		if err := os.WriteFile(assemblePDF, pdfBytes, 0644); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated %s (%s)\n", assemblePDF, formatSize(int64(len(pdfBytes))))
	}

	return nil
}
