// Package asm implements a two-pass assembler for the SimpleRISC instruction
// set: 32-bit words with a 5-bit opcode, a mode bit selecting register or
// immediate operands, and PC-relative branches.
package asm

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Assembler holds the state for one assembly run.
type Assembler struct {
	labels map[string]uint32
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{labels: make(map[string]uint32)}
}

// line is a cleaned source line with its 1-based position.
type line struct {
	num    int
	label  string
	fields []string
}

// Assemble converts SimpleRISC source into machine words, one per
// instruction in program order. The returned error, if any, is an *Error.
func (a *Assembler) Assemble(src string) ([]uint32, error) {
	a.labels = make(map[string]uint32)

	lines, err := parseLines(src)
	if err != nil {
		return nil, err
	}

	// First pass: record label addresses.
	var addr uint32
	for _, l := range lines {
		if l.label != "" {
			if _, dup := a.labels[l.label]; dup {
				return nil, errorf(l.num, "duplicate label: %s", l.label)
			}
			a.labels[l.label] = addr
		}
		if len(l.fields) > 0 {
			addr++
		}
	}

	// Second pass: encode instructions.
	code := make([]uint32, 0, addr)
	addr = 0
	for _, l := range lines {
		if len(l.fields) == 0 {
			continue
		}
		word, err := a.encode(l, addr)
		if err != nil {
			return nil, err
		}
		code = append(code, word)
		addr++
	}
	return code, nil
}

// Assemble is a convenience wrapper around New().Assemble.
func Assemble(src string) ([]uint32, error) {
	return New().Assemble(src)
}

// parseLines strips comments and blank lines and splits each remaining line
// into an optional label and the instruction fields.
func parseLines(src string) ([]line, error) {
	raw := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	var lines []line
	for i, text := range raw {
		// Full-width forms fold to ASCII first, so '；' starts a comment too.
		text = norm.NFKC.String(text)
		if idx := strings.IndexByte(text, ';'); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		l := line{num: i + 1}
		if idx := strings.IndexByte(text, ':'); idx != -1 {
			label := strings.TrimSpace(text[:idx])
			if label == "" || strings.ContainsAny(label, " \t,#") {
				return nil, errorf(l.num, "invalid label: %q", text[:idx])
			}
			l.label = label
			text = strings.TrimSpace(text[idx+1:])
		}
		l.fields = strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		lines = append(lines, l)
	}
	return lines, nil
}

func (a *Assembler) encode(l line, addr uint32) (uint32, error) {
	mnemonic := strings.ToLower(l.fields[0])
	operands := l.fields[1:]

	in, ok := instrTable[mnemonic]
	if !ok {
		return 0, errorf(l.num, "Invalid instruction: %s", l.fields[0])
	}
	if want := in.fmt.operandCount(); len(operands) != want {
		return 0, errorf(l.num, "%s: expected %d operands, got %d", mnemonic, want, len(operands))
	}

	word := uint32(in.op) << opcodeShift
	switch in.fmt {
	case FormatNone:
		return word, nil

	case FormatBranch:
		target, ok := a.labels[operands[0]]
		if !ok {
			return 0, errorf(l.num, "Undefined label: %s", operands[0])
		}
		offset := (int64(target) - int64(addr)) * 4
		return word | uint32(offset)&offsetMask, nil

	case FormatTwo:
		rd, err := parseRegister(l.num, operands[0])
		if err != nil {
			return 0, err
		}
		word |= rd << rdShift
		if isImmediate(operands[1]) {
			imm, err := parseImmediate(l.num, operands[1])
			if err != nil {
				return 0, err
			}
			return word | modeBit | uint32(imm)&imm21Mask, nil
		}
		rs, err := parseRegister(l.num, operands[1])
		if err != nil {
			return 0, err
		}
		return word | rs<<rs1Shift, nil

	case FormatThree, FormatMem:
		rd, err := parseRegister(l.num, operands[0])
		if err != nil {
			return 0, err
		}
		rs1, err := parseRegister(l.num, operands[1])
		if err != nil {
			return 0, err
		}
		word |= rd<<rdShift | rs1<<rs1Shift
		if isImmediate(operands[2]) {
			imm, err := parseImmediate(l.num, operands[2])
			if err != nil {
				return 0, err
			}
			return word | modeBit | uint32(imm)&imm16Mask, nil
		}
		rs2, err := parseRegister(l.num, operands[2])
		if err != nil {
			return 0, err
		}
		return word | rs2<<rs2Shift, nil
	}

	return 0, errorf(l.num, "Invalid instruction: %s", l.fields[0])
}

func isImmediate(s string) bool {
	return strings.HasPrefix(s, "#")
}

// parseRegister accepts r0..r31 (case-insensitive).
func parseRegister(lineNum int, s string) (uint32, error) {
	if len(s) < 2 || (s[0] != 'r' && s[0] != 'R') {
		return 0, errorf(lineNum, "invalid register %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n >= NumRegisters {
		return 0, errorf(lineNum, "invalid register %q", s)
	}
	return uint32(n), nil
}

// parseImmediate accepts #N in decimal, 0x hex, 0b binary or 0o octal,
// optionally negative. The caller masks the value to the field width.
func parseImmediate(lineNum int, s string) (int64, error) {
	n, err := strconv.ParseInt(s[1:], 0, 64)
	if err != nil {
		return 0, errorf(lineNum, "invalid immediate %q", s)
	}
	return n, nil
}
