package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/eljojo/riscpad/internal/project"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of saved files",
	Long: `Verify checks that every file written by Save still matches the
checksum stored in riscpad.yml.

This helps detect if saved sources have been edited outside riscpad.`,
	SilenceUsage: true,
	RunE:         runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}

	if len(p.Saved) == 0 {
		return fmt.Errorf("nothing has been saved yet")
	}

	if !verifySaved(cmd.OutOrStdout(), p) {
		return fmt.Errorf("verification failed")
	}
	return nil
}

// verifySaved checks each recorded file and reports whether all matched.
func verifySaved(w io.Writer, p *project.Project) bool {
	allOK := true

	for _, s := range p.Saved {
		fmt.Fprintf(w, "Checking %s... ", s.File)

		sum, err := p.CheckSaved(s)
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(w, red("MISSING"))
			allOK = false
			continue
		}
		if err != nil {
			fmt.Fprintf(w, "ERROR: %v\n", err)
			allOK = false
			continue
		}

		if sum != s.Checksum {
			fmt.Fprintln(w, red("CHECKSUM MISMATCH"))
			fmt.Fprintf(w, "  Expected: %s\n", s.Checksum)
			fmt.Fprintf(w, "  Got:      %s\n", sum)
			allOK = false
		} else {
			fmt.Fprintln(w, green("OK"))
		}
	}

	fmt.Fprintln(w)
	if allOK {
		fmt.Fprintln(w, "All files verified.")
	}
	return allOK
}
