package core

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/everisa/instr"
)

var _ = Describe("InstEmulator", func() {
	var (
		ie instEmulator
		s  coreState
	)

	BeforeEach(func() {
		ie = newInstEmulator(false)
		s = coreState{}
	})

	Context("when running MOV", func() {
		It("should load the immediate", func() {
			err := ie.RunInst(instr.Mov(instr.RBX, -9), &s)

			Expect(err).NotTo(HaveOccurred())
			Expect(s.Registers[instr.RBX]).To(Equal(int64(-9)))
			Expect(s.PC).To(Equal(1))
		})

		It("should reject a register outside the file", func() {
			err := ie.RunInst(instr.Inst{Op: instr.MOV, Reg: 5, Imm: 1}, &s)

			Expect(err).To(MatchError(instr.ErrUnknownRegister))
			Expect(s.PC).To(Equal(0))
		})
	})

	Context("when running PUSH and POP", func() {
		It("should move values through the stack", func() {
			s.Registers[instr.RAX] = 4

			Expect(ie.RunInst(instr.Push(instr.RAX), &s)).To(Succeed())
			Expect(s.Stack).To(Equal([]int64{4}))

			Expect(ie.RunInst(instr.Pop(instr.RBX), &s)).To(Succeed())
			Expect(s.Registers[instr.RBX]).To(Equal(int64(4)))
			Expect(s.Stack).To(BeEmpty())
			Expect(s.PC).To(Equal(2))
		})

		It("should underflow on an empty stack", func() {
			err := ie.RunInst(instr.Pop(instr.RBX), &s)

			Expect(err).To(MatchError(ErrStackUnderflow))
			Expect(s.PC).To(Equal(0))
		})
	})

	Context("when running arithmetic", func() {
		BeforeEach(func() {
			s.Registers[instr.RAX] = 2
			s.Registers[instr.RBX] = 7
		})

		It("ADD", func() {
			Expect(ie.RunInst(instr.Add(), &s)).To(Succeed())
			Expect(s.Registers[instr.RAX]).To(Equal(int64(9)))
		})

		It("SUB", func() {
			Expect(ie.RunInst(instr.Sub(), &s)).To(Succeed())
			Expect(s.Registers[instr.RAX]).To(Equal(int64(5)))
		})

		It("MUL", func() {
			Expect(ie.RunInst(instr.Mul(), &s)).To(Succeed())
			Expect(s.Registers[instr.RAX]).To(Equal(int64(14)))
			Expect(s.Registers[instr.RBX]).To(Equal(int64(7)))
		})

		It("DIV", func() {
			Expect(ie.RunInst(instr.Div(), &s)).To(Succeed())
			Expect(s.Registers[instr.RAX]).To(Equal(int64(3)))
		})

		It("DIV should round toward negative infinity", func() {
			s.Registers[instr.RBX] = -7

			Expect(ie.RunInst(instr.Div(), &s)).To(Succeed())
			Expect(s.Registers[instr.RAX]).To(Equal(int64(-4)))
		})

		It("DIV should fail on a zero divisor", func() {
			s.Registers[instr.RAX] = 0

			err := ie.RunInst(instr.Div(), &s)
			Expect(err).To(MatchError(ErrDivideByZero))
			Expect(s.Registers[instr.RBX]).To(Equal(int64(7)))
			Expect(s.PC).To(Equal(0))
		})

		DescribeTable("should fail on overflow without touching RAX",
			func(inst instr.Inst, left, right int64) {
				s.Registers[instr.RBX] = left
				s.Registers[instr.RAX] = right

				err := ie.RunInst(inst, &s)

				Expect(err).To(MatchError(ErrOverflow))
				Expect(s.Registers[instr.RAX]).To(Equal(right))
				Expect(s.PC).To(Equal(0))
			},
			Entry("ADD", instr.Add(), int64(math.MaxInt64), int64(1)),
			Entry("SUB", instr.Sub(), int64(math.MinInt64), int64(1)),
			Entry("MUL", instr.Mul(), int64(1)<<32, int64(1)<<32),
			Entry("DIV", instr.Div(), int64(math.MinInt64), int64(-1)),
		)
	})

	Context("when the opcode is unknown", func() {
		unknown := instr.Inst{Op: instr.Unknown, Raw: "NOP"}

		It("should skip it", func() {
			Expect(ie.RunInst(unknown, &s)).To(Succeed())
			Expect(s.PC).To(Equal(1))
		})

		It("should fail in strict mode", func() {
			ie = newInstEmulator(true)

			Expect(ie.RunInst(unknown, &s)).To(MatchError(instr.ErrUnknownOpcode))
			Expect(s.PC).To(Equal(0))
		})
	})
})

var _ = DescribeTable("FloorDiv",
	func(a, b, want int64) {
		Expect(FloorDiv(a, b)).To(Equal(want))
	},
	Entry("exact", int64(8), int64(2), int64(4)),
	Entry("positive remainder", int64(7), int64(2), int64(3)),
	Entry("negative dividend", int64(-7), int64(2), int64(-4)),
	Entry("negative divisor", int64(7), int64(-2), int64(-4)),
	Entry("both negative", int64(-7), int64(-2), int64(3)),
	Entry("negative exact", int64(-8), int64(2), int64(-4)),
	Entry("zero dividend", int64(0), int64(-5), int64(0)),
)

var _ = DescribeTable("checked arithmetic",
	func(f func(a, b int64) (int64, error), a, b, want int64, wantErr error) {
		got, err := f(a, b)
		if wantErr != nil {
			Expect(err).To(MatchError(wantErr))
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	},
	Entry("add", CheckedAdd, int64(2), int64(3), int64(5), nil),
	Entry("add to max", CheckedAdd, int64(math.MaxInt64-1), int64(1), int64(math.MaxInt64), nil),
	Entry("add past max", CheckedAdd, int64(math.MaxInt64), int64(1), int64(0), ErrOverflow),
	Entry("add past min", CheckedAdd, int64(math.MinInt64), int64(-1), int64(0), ErrOverflow),
	Entry("sub", CheckedSub, int64(3), int64(10), int64(-7), nil),
	Entry("sub to min", CheckedSub, int64(-1), int64(math.MaxInt64), int64(math.MinInt64), nil),
	Entry("sub past min", CheckedSub, int64(math.MinInt64), int64(1), int64(0), ErrOverflow),
	Entry("sub past max", CheckedSub, int64(0), int64(math.MinInt64), int64(0), ErrOverflow),
	Entry("mul", CheckedMul, int64(-6), int64(7), int64(-42), nil),
	Entry("mul by zero", CheckedMul, int64(math.MinInt64), int64(0), int64(0), nil),
	Entry("mul min by one", CheckedMul, int64(math.MinInt64), int64(1), int64(math.MinInt64), nil),
	Entry("mul 2^32 squared", CheckedMul, int64(1)<<32, int64(1)<<32, int64(0), ErrOverflow),
	Entry("mul min by -1", CheckedMul, int64(math.MinInt64), int64(-1), int64(0), ErrOverflow),
	Entry("mul -1 by min", CheckedMul, int64(-1), int64(math.MinInt64), int64(0), ErrOverflow),
	Entry("div", CheckedFloorDiv, int64(-7), int64(2), int64(-4), nil),
	Entry("div by zero", CheckedFloorDiv, int64(1), int64(0), int64(0), ErrDivideByZero),
	Entry("div min by -1", CheckedFloorDiv, int64(math.MinInt64), int64(-1), int64(0), ErrOverflow),
	Entry("div min by 1", CheckedFloorDiv, int64(math.MinInt64), int64(1), int64(math.MinInt64), nil),
)
