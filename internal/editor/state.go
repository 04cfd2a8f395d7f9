// Package editor holds the editor controller: the input and output text
// surfaces and the Assemble, Load and Save operations that act on them.
// Front-ends (browser, terminal, CLI) only render a State and forward user
// actions to it.
package editor

import (
	"fmt"
)

const (
	// DefaultSource is placed in the input surface when the editor starts.
	DefaultSource = "; Enter your assembly code here\n\n; Example:\n; Simple addition\nmov r1, #10\nmov r2, #20\nadd r3, r1, r2"

	// SaveFileName is the name given to every exported source file.
	SaveFileName = "assembly_code.asm"

	// SaveMIMEType is the content type of exported source files.
	SaveMIMEType = "text/plain"
)

// State is the editor's application state. Input is the editable source,
// Output holds the listing or error text of the latest Assemble, and Status
// is a one-line indicator for load failures.
type State struct {
	Input  string
	Output string
	Status string
}

// NewState returns the initial editor state with the example program loaded.
func NewState() *State {
	return &State{Input: DefaultSource}
}

// Assembler converts assembly source into 32-bit machine words.
type Assembler interface {
	Assemble(src string) ([]uint32, error)
}

// AssemblerFunc adapts a plain function to the Assembler interface.
type AssemblerFunc func(src string) ([]uint32, error)

// Assemble calls f(src).
func (f AssemblerFunc) Assemble(src string) ([]uint32, error) {
	return f(src)
}

// Assemble runs a on the input surface and rewrites the output surface with
// the listing, or with "Assembly Error: <msg>" if a fails. The input surface
// is never modified. It reports whether assembly succeeded.
func Assemble(st *State, a Assembler) bool {
	st.Output = ""

	words, err := runAssembler(a, st.Input)
	if err != nil {
		st.Output = err.Error()
		return false
	}

	st.Output = FormatListing(words)
	return true
}

// runAssembler converts any failure of the collaborator, panics included,
// into an *AssemblyError.
func runAssembler(a Assembler, src string) (words []uint32, err error) {
	defer func() {
		if r := recover(); r != nil {
			words = nil
			err = &AssemblyError{Msg: fmt.Sprint(r)}
		}
	}()

	words, err = a.Assemble(src)
	if err != nil {
		return nil, newAssemblyError(err)
	}
	return words, nil
}

// Export is a file produced by Save.
type Export struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Save packages the input surface verbatim as a plain-text download.
func Save(st State) Export {
	return Export{
		Name:     SaveFileName,
		MIMEType: SaveMIMEType,
		Data:     []byte(st.Input),
	}
}
