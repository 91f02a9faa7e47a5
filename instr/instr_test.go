package instr_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/everisa/instr"
)

var _ = Describe("Inst", func() {
	DescribeTable("should encode",
		func(inst instr.Inst, want string) {
			Expect(inst.String()).To(Equal(want))
		},
		Entry("MOV", instr.Mov(instr.RAX, 5), "MOV RAX, 5"),
		Entry("MOV negative", instr.Mov(instr.RBX, -12), "MOV RBX, -12"),
		Entry("PUSH", instr.Push(instr.RAX), "PUSH RAX"),
		Entry("POP", instr.Pop(instr.RBX), "POP RBX"),
		Entry("ADD", instr.Add(), "ADD RAX, RBX"),
		Entry("SUB", instr.Sub(), "SUB RAX, RBX"),
		Entry("MUL", instr.Mul(), "MUL RBX"),
		Entry("DIV", instr.Div(), "DIV RBX"),
		Entry("unknown keeps its text",
			instr.Inst{Op: instr.Unknown, Raw: "NOP"}, "NOP"),
	)

	It("should join a program with newlines", func() {
		prog := instr.Program{
			instr.Mov(instr.RAX, 1),
			instr.Push(instr.RAX),
			instr.Mov(instr.RAX, 2),
			instr.Pop(instr.RBX),
			instr.Add(),
		}

		Expect(prog.String()).To(Equal(
			"MOV RAX, 1\nPUSH RAX\nMOV RAX, 2\nPOP RBX\nADD RAX, RBX"))
		Expect(instr.Program{}.String()).To(BeEmpty())
	})

	It("should name opcodes and registers", func() {
		Expect(instr.DIV.String()).To(Equal("DIV"))
		Expect(instr.Opcode(99).String()).To(Equal("Opcode(99)"))
		Expect(instr.RBX.String()).To(Equal("RBX"))
		Expect(instr.Register(7).String()).To(Equal("Register(7)"))
	})
})

var _ = Describe("Decode", func() {
	DescribeTable("should decode",
		func(line string, want instr.Inst) {
			inst, err := instr.Decode(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst).To(Equal(want))
		},
		Entry("MOV with glued comma", "MOV RAX, 5", instr.Mov(instr.RAX, 5)),
		Entry("MOV into RBX", "MOV RBX, -3", instr.Mov(instr.RBX, -3)),
		Entry("PUSH", "PUSH RAX", instr.Push(instr.RAX)),
		Entry("POP", "  POP   RBX ", instr.Pop(instr.RBX)),
		Entry("PUSH tolerates a comma", "PUSH RBX,", instr.Push(instr.RBX)),
		Entry("ADD", "ADD RAX, RBX", instr.Add()),
		Entry("ADD ignores operands", "ADD", instr.Add()),
		Entry("SUB", "SUB RAX, RBX", instr.Sub()),
		Entry("MUL", "MUL RBX", instr.Mul()),
		Entry("DIV", "DIV RBX", instr.Div()),
		Entry("unknown opcode", "NOP 1",
			instr.Inst{Op: instr.Unknown, Raw: "NOP 1"}),
		Entry("lower case is unknown", "mov RAX, 1",
			instr.Inst{Op: instr.Unknown, Raw: "mov RAX, 1"}),
	)

	DescribeTable("should reject",
		func(line string, want error) {
			_, err := instr.Decode(line)
			Expect(err).To(MatchError(want))

			var de *instr.DecodeError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Text).To(Equal(line))
		},
		Entry("MOV without value", "MOV RAX,", instr.ErrMalformed),
		Entry("MOV with glued value", "MOV RAX,5", instr.ErrMalformed),
		Entry("MOV with non-integer", "MOV RAX, five", instr.ErrMalformed),
		Entry("MOV with a detached comma", "MOV RAX , 7", instr.ErrMalformed),
		Entry("PUSH without register", "PUSH", instr.ErrMalformed),
		Entry("unknown register", "POP RCX", instr.ErrUnknownRegister),
		Entry("MOV into unknown register", "MOV RDX, 1", instr.ErrUnknownRegister),
		Entry("blank line", "   ", instr.ErrMalformed),
	)

	It("should round trip generated text", func() {
		prog := instr.Program{
			instr.Mov(instr.RAX, 10),
			instr.Push(instr.RAX),
			instr.Mov(instr.RAX, 5),
			instr.Pop(instr.RBX),
			instr.Sub(),
			instr.Push(instr.RAX),
			instr.Mov(instr.RAX, 3),
			instr.Pop(instr.RBX),
			instr.Div(),
		}

		back, err := instr.DecodeText(prog.String())
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(Equal(prog))
	})

	It("should skip blank lines and number failing lines", func() {
		prog, err := instr.DecodeLines([]string{"MOV RAX, 1", "", "PUSH RAX"})
		Expect(err).NotTo(HaveOccurred())
		Expect(prog).To(HaveLen(2))

		_, err = instr.DecodeLines([]string{"MOV RAX, 1", "", "POP R9"})
		var de *instr.DecodeError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Line).To(Equal(3))
		Expect(err.Error()).To(ContainSubstring("line 3"))
	})
})
