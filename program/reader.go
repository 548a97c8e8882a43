// Package program parses the line-oriented instruction-file format
// described in spec.md §6 into a sequence of isa.Instruction values.
// Malformed lines are skipped with a diagnostic rather than aborting the
// whole read, mirroring the teacher's loader.Load pattern of returning
// collected errors rather than failing on the first bad segment.
package program

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/archlab/tomasim/isa"
)

// Diagnostic describes one instruction-file line that could not be parsed.
type Diagnostic struct {
	Line    int
	Text    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Message, d.Text)
}

var (
	arithmeticRE = regexp.MustCompile(`^(ADD|SUB|MUL|DIV)\s+F(\d+)\s*,?\s*F(\d+)\s*,?\s*F(\d+)$`)
	memRE        = regexp.MustCompile(`^(L\.D|LOAD|S\.D|STORE)\s+F(\d+)\s*,?\s*(-?\d+)\(F(\d+)\)$`)
)

// Parse reads an instruction file from r, returning the instructions it
// could decode and a diagnostic for every line it could not. Blank lines
// and lines beginning with '#' are ignored, per spec.md §6.
func Parse(r io.Reader) ([]*isa.Instruction, []Diagnostic) {
	var (
		instructions []*isa.Instruction
		diags        []Diagnostic
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		inst, err := parseLine(line)
		if err != nil {
			diags = append(diags, Diagnostic{Line: lineNum, Text: line, Message: err.Error()})
			continue
		}

		instructions = append(instructions, inst)
	}

	return instructions, diags
}

// ParseFile opens path and parses it, matching spec.md §7's "unopenable
// instruction file" error: the caller should diagnose and exit 1.
func ParseFile(path string) ([]*isa.Instruction, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open instruction file: %w", err)
	}
	defer func() { _ = f.Close() }()

	instructions, diags := Parse(f)
	return instructions, diags, nil
}

// parseLine decodes a single non-blank, non-comment instruction line.
func parseLine(line string) (*isa.Instruction, error) {
	upper := strings.ToUpper(line)

	if m := arithmeticRE.FindStringSubmatch(upper); m != nil {
		kind, err := arithmeticKind(m[1])
		if err != nil {
			return nil, err
		}
		dest, err := mustReg(m[2])
		if err != nil {
			return nil, err
		}
		src1, err := mustReg(m[3])
		if err != nil {
			return nil, err
		}
		src2, err := mustReg(m[4])
		if err != nil {
			return nil, err
		}
		inst := isa.New(kind)
		inst.Dest = dest
		inst.Src1 = src1
		inst.Src2 = src2
		return inst, nil
	}

	if m := memRE.FindStringSubmatch(upper); m != nil {
		offset, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q", m[3])
		}
		base, err := mustReg(m[4])
		if err != nil {
			return nil, err
		}

		switch m[1] {
		case "L.D", "LOAD":
			dest, err := mustReg(m[2])
			if err != nil {
				return nil, err
			}
			inst := isa.New(isa.LOAD)
			inst.Dest = dest
			inst.Offset = offset
			inst.Base = base
			return inst, nil
		case "S.D", "STORE":
			dataSrc, err := mustReg(m[2])
			if err != nil {
				return nil, err
			}
			inst := isa.New(isa.STORE)
			inst.DataSrc = dataSrc
			inst.Offset = offset
			inst.Base = base
			return inst, nil
		}
	}

	return nil, fmt.Errorf("unrecognized instruction mnemonic")
}

func arithmeticKind(mnemonic string) (isa.Kind, error) {
	switch mnemonic {
	case "ADD":
		return isa.ADD, nil
	case "SUB":
		return isa.SUB, nil
	case "MUL":
		return isa.MUL, nil
	case "DIV":
		return isa.DIV, nil
	default:
		return 0, fmt.Errorf("unrecognized arithmetic mnemonic %q", mnemonic)
	}
}

// mustReg parses a register digit string matched by the regexes above and
// validates it names an architectural register (F0..F31). The regexes
// only constrain the token to digits, not to range, so an out-of-range
// index (e.g. F40) is rejected here rather than reaching the engine's
// fixed-size register arrays.
func mustReg(digits string) (uint8, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n >= isa.NumRegisters {
		return 0, fmt.Errorf("register F%s out of range (F0-F%d)", digits, isa.NumRegisters-1)
	}
	return uint8(n), nil
}
