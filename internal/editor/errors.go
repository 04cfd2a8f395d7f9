package editor

import (
	"github.com/pkg/errors"
)

const (
	// AssemblyErrorPrefix starts the output surface text of a failed Assemble.
	AssemblyErrorPrefix = "Assembly Error: "

	// LoadErrorPrefix starts the status text of a failed Load.
	LoadErrorPrefix = "Load Error: "
)

// ErrLoadInFlight is returned by Load under RejectWhileInFlight while an
// earlier read has not completed.
var ErrLoadInFlight = errors.New("a file is already being loaded")

// AssemblyError is a failure reported by the Assembler. Msg is shown to the
// user verbatim.
type AssemblyError struct {
	Msg string
	Err error
}

// newAssemblyError keeps err's full text, so context wrapped around an inner
// AssemblyError still reaches the user.
func newAssemblyError(err error) *AssemblyError {
	if ae, ok := err.(*AssemblyError); ok {
		return ae
	}
	return &AssemblyError{Msg: err.Error(), Err: err}
}

func (e *AssemblyError) Error() string { return AssemblyErrorPrefix + e.Msg }

func (e *AssemblyError) Unwrap() error { return e.Err }

// LoadError is a failure to read a selected file. The input surface is left
// as it was.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return e.Name + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Cause returns the underlying read error.
func (e *LoadError) Cause() error { return errors.Cause(e.Err) }
