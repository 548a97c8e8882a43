package program_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/tomasim/isa"
	"github.com/archlab/tomasim/program"
)

var _ = Describe("Parse", func() {
	It("skips blank lines and comments", func() {
		src := "\n# a comment\n\nADD F1, F2, F3\n"
		insts, diags := program.Parse(strings.NewReader(src))

		Expect(diags).To(BeEmpty())
		Expect(insts).To(HaveLen(1))
	})

	It("parses an arithmetic instruction", func() {
		insts, diags := program.Parse(strings.NewReader("ADD F1, F2, F3"))

		Expect(diags).To(BeEmpty())
		Expect(insts).To(HaveLen(1))
		Expect(insts[0].Kind).To(Equal(isa.ADD))
		Expect(insts[0].Dest).To(Equal(uint8(1)))
		Expect(insts[0].Src1).To(Equal(uint8(2)))
		Expect(insts[0].Src2).To(Equal(uint8(3)))
	})

	It("parses an arithmetic instruction without the optional comma", func() {
		insts, diags := program.Parse(strings.NewReader("SUB F4 F1 F5"))

		Expect(diags).To(BeEmpty())
		Expect(insts).To(HaveLen(1))
		Expect(insts[0].Kind).To(Equal(isa.SUB))
	})

	It("parses L.D with a mandatory parenthesized base register", func() {
		insts, diags := program.Parse(strings.NewReader("L.D F2, 100(F0)"))

		Expect(diags).To(BeEmpty())
		Expect(insts).To(HaveLen(1))
		Expect(insts[0].Kind).To(Equal(isa.LOAD))
		Expect(insts[0].Dest).To(Equal(uint8(2)))
		Expect(insts[0].Offset).To(Equal(100))
		Expect(insts[0].Base).To(Equal(uint8(0)))
	})

	It("accepts the LOAD/STORE alias mnemonics", func() {
		insts, diags := program.Parse(strings.NewReader("LOAD F2, 100(F0)\nSTORE F2, 50(F0)"))

		Expect(diags).To(BeEmpty())
		Expect(insts).To(HaveLen(2))
		Expect(insts[0].Kind).To(Equal(isa.LOAD))
		Expect(insts[1].Kind).To(Equal(isa.STORE))
	})

	It("parses a negative offset", func() {
		insts, diags := program.Parse(strings.NewReader("S.D F2, -8(F0)"))

		Expect(diags).To(BeEmpty())
		Expect(insts).To(HaveLen(1))
		Expect(insts[0].Offset).To(Equal(-8))
	})

	It("skips an unrecognized mnemonic with a diagnostic, continuing past it", func() {
		insts, diags := program.Parse(strings.NewReader("JMP F1\nADD F1, F2, F3"))

		Expect(diags).To(HaveLen(1))
		Expect(diags[0].Line).To(Equal(1))
		Expect(insts).To(HaveLen(1))
		Expect(insts[0].Kind).To(Equal(isa.ADD))
	})

	It("requires parentheses around the base register for memory ops", func() {
		_, diags := program.Parse(strings.NewReader("L.D F2, 100 F0"))

		Expect(diags).To(HaveLen(1))
	})

	It("skips an out-of-range register with a diagnostic, continuing past it", func() {
		insts, diags := program.Parse(strings.NewReader("ADD F40, F2, F3\nADD F1, F2, F3"))

		Expect(diags).To(HaveLen(1))
		Expect(diags[0].Line).To(Equal(1))
		Expect(insts).To(HaveLen(1))
		Expect(insts[0].Dest).To(Equal(uint8(1)))
	})

	It("rejects an out-of-range base register on a memory op", func() {
		_, diags := program.Parse(strings.NewReader("L.D F2, 100(F99)"))

		Expect(diags).To(HaveLen(1))
	})
})

var _ = Describe("ParseFile", func() {
	It("returns an error for an unopenable path", func() {
		_, _, err := program.ParseFile("/nonexistent/path/to/program.txt")

		Expect(err).To(HaveOccurred())
	})
})
