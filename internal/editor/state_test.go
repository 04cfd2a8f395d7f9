package editor

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func stubAssembler(words []uint32, err error) Assembler {
	return AssemblerFunc(func(string) ([]uint32, error) {
		return words, err
	})
}

func TestNewState(t *testing.T) {
	st := NewState()
	if st.Input != DefaultSource {
		t.Errorf("initial input: got %q, want %q", st.Input, DefaultSource)
	}
	if st.Output != "" || st.Status != "" {
		t.Errorf("initial output/status should be empty, got %q / %q", st.Output, st.Status)
	}
	if !strings.Contains(st.Input, "mov r1, #10") {
		t.Error("initial input should contain the example program")
	}
}

func TestFormatWord(t *testing.T) {
	tests := []struct {
		addr     int
		word     uint32
		expected string
	}{
		{0, 0x00000001, "Addr 00: 00000000000000000000000000000001  (0x00000001)\n"},
		{7, 0x4C20000A, "Addr 07: 01001100001000000000000000001010  (0x4C20000A)\n"},
		{42, 0xFFFFFFFF, "Addr 42: 11111111111111111111111111111111  (0xFFFFFFFF)\n"},
		{123, 0, "Addr 123: 00000000000000000000000000000000  (0x00000000)\n"},
	}

	for _, tt := range tests {
		result := FormatWord(tt.addr, tt.word)
		if result != tt.expected {
			t.Errorf("FormatWord(%d, 0x%X) = %q, want %q", tt.addr, tt.word, result, tt.expected)
		}
	}
}

func TestAssembleListing(t *testing.T) {
	st := &State{Input: "mov r1, #10\nmov r2, #20\nadd r3, r1, r2"}
	ok := Assemble(st, stubAssembler([]uint32{1, 2, 3}, nil))
	if !ok {
		t.Fatal("Assemble reported failure")
	}

	expected := "Addr 00: 00000000000000000000000000000001  (0x00000001)\n" +
		"Addr 01: 00000000000000000000000000000010  (0x00000002)\n" +
		"Addr 02: 00000000000000000000000000000011  (0x00000003)\n"
	if st.Output != expected {
		t.Errorf("output:\n got: %q\nwant: %q", st.Output, expected)
	}
	if st.Input != "mov r1, #10\nmov r2, #20\nadd r3, r1, r2" {
		t.Error("Assemble must not modify the input")
	}
}

func TestAssembleEmptyProgram(t *testing.T) {
	st := &State{Input: "; nothing", Output: "stale"}
	if !Assemble(st, stubAssembler(nil, nil)) {
		t.Fatal("Assemble reported failure")
	}
	if st.Output != "" {
		t.Errorf("output: got %q, want empty", st.Output)
	}
}

func TestAssembleError(t *testing.T) {
	st := &State{Input: "bogus", Output: "Addr 00: stale line\n"}
	ok := Assemble(st, stubAssembler([]uint32{9}, errors.New("Invalid instruction: bogus")))
	if ok {
		t.Fatal("Assemble reported success")
	}
	if st.Output != "Assembly Error: Invalid instruction: bogus" {
		t.Errorf("output: got %q", st.Output)
	}
	if st.Input != "bogus" {
		t.Error("Assemble must not modify the input")
	}
}

func TestAssembleErrorThenSuccessLeavesNoResidue(t *testing.T) {
	st := &State{Input: "x"}
	Assemble(st, stubAssembler(nil, errors.New("boom")))
	Assemble(st, stubAssembler([]uint32{0xA}, nil))

	if strings.Contains(st.Output, "Assembly Error") {
		t.Errorf("stale error text left in output: %q", st.Output)
	}
	if st.Output != FormatWord(0, 0xA) {
		t.Errorf("output: got %q", st.Output)
	}
}

func TestAssembleRecoversPanics(t *testing.T) {
	st := &State{Input: "add r1"}
	panicky := AssemblerFunc(func(string) ([]uint32, error) {
		panic("index out of range")
	})
	if Assemble(st, panicky) {
		t.Fatal("Assemble reported success")
	}
	if st.Output != "Assembly Error: index out of range" {
		t.Errorf("output: got %q", st.Output)
	}
}

func TestAssembleWrappedAssemblyError(t *testing.T) {
	st := &State{}
	err := &AssemblyError{Msg: "line 2: Undefined label: loop"}
	Assemble(st, stubAssembler(nil, err))
	if st.Output != "Assembly Error: line 2: Undefined label: loop" {
		t.Errorf("output: got %q", st.Output)
	}
}

func TestAssembleKeepsWrappingContext(t *testing.T) {
	st := &State{}
	inner := &AssemblyError{Msg: "line 2: Undefined label: loop"}
	Assemble(st, stubAssembler(nil, fmt.Errorf("boot.asm: %w", inner)))

	want := "Assembly Error: boot.asm: Assembly Error: line 2: Undefined label: loop"
	if st.Output != want {
		t.Errorf("output: got %q, want %q", st.Output, want)
	}

	_, err := runAssembler(stubAssembler(nil, fmt.Errorf("boot.asm: %w", inner)), "")
	var ae *AssemblyError
	if !errors.As(err, &ae) || ae == inner {
		t.Fatalf("expected a new AssemblyError around the wrapped one, got %#v", err)
	}
	if !errors.Is(err, inner) {
		t.Error("inner AssemblyError should stay reachable through Unwrap")
	}
}

func TestAssembleIdempotent(t *testing.T) {
	st := NewState()
	a := stubAssembler([]uint32{0x4C20000A, 0x4C400014, 0x00611000}, nil)

	Assemble(st, a)
	first := st.Output
	Assemble(st, a)
	if st.Output != first {
		t.Errorf("second run differs:\nfirst:  %q\nsecond: %q", first, st.Output)
	}
}

func TestSave(t *testing.T) {
	tests := []string{"", DefaultSource, "mov r1, #1\r\n", "unicode ✓ ＃\n\n"}

	for _, input := range tests {
		st := State{Input: input, Output: "ignored"}
		exp := Save(st)
		if exp.Name != "assembly_code.asm" {
			t.Errorf("name: got %q", exp.Name)
		}
		if exp.MIMEType != "text/plain" {
			t.Errorf("mime type: got %q", exp.MIMEType)
		}
		if string(exp.Data) != input {
			t.Errorf("data: got %q, want %q", exp.Data, input)
		}
	}
}
