package render_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/tomasim/engine"
	"github.com/archlab/tomasim/isa"
	"github.com/archlab/tomasim/render"
)

var _ = Describe("Snapshot", func() {
	It("renders the instruction table, RS groups, ROB and busy reg-status rows", func() {
		program := []*isa.Instruction{isa.New(isa.ADD)}
		program[0].Dest, program[0].Src1, program[0].Src2 = 1, 2, 3

		eng := engine.New(program)
		eng.Step()

		var buf strings.Builder
		render.Snapshot(&buf, eng.Snapshot())
		out := buf.String()

		Expect(out).To(ContainSubstring("Cycle"))
		Expect(out).To(ContainSubstring("Instructions:"))
		Expect(out).To(ContainSubstring("ADD/SUB reservation stations:"))
		Expect(out).To(ContainSubstring("MUL/DIV reservation stations:"))
		Expect(out).To(ContainSubstring("LOAD reservation stations:"))
		Expect(out).To(ContainSubstring("STORE reservation stations:"))
		Expect(out).To(ContainSubstring("Reorder buffer"))
		Expect(out).To(ContainSubstring("Busy register status:"))
		Expect(out).To(ContainSubstring("F1"))
	})

	It("prints a dash for unset event stamps", func() {
		program := []*isa.Instruction{isa.New(isa.ADD)}
		program[0].Dest, program[0].Src1, program[0].Src2 = 1, 2, 3

		eng := engine.New(program)

		var buf strings.Builder
		render.Snapshot(&buf, eng.Snapshot())

		Expect(buf.String()).To(ContainSubstring("-"))
	})
})

var _ = Describe("Final", func() {
	It("appends the full architectural register file after the snapshot tables", func() {
		program := []*isa.Instruction{isa.New(isa.ADD)}
		program[0].Dest, program[0].Src1, program[0].Src2 = 1, 2, 3

		eng := engine.New(program)
		for !eng.Done() {
			eng.Step()
		}

		var buf strings.Builder
		render.Final(&buf, eng.FinalSnapshot())
		out := buf.String()

		Expect(out).To(ContainSubstring("Registers:"))
		Expect(out).To(ContainSubstring("F0"))
		Expect(out).To(ContainSubstring("= 10"))
	})
})
