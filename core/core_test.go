package core_test

import (
	"bytes"
	"errors"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/everisa/core"
	"github.com/sarchlab/everisa/instr"
)

const tenPlusFive = `MOV RAX, 10
PUSH RAX
MOV RAX, 5
POP RBX
ADD RAX, RBX`

var _ = Describe("Core", func() {
	var c *core.Core

	BeforeEach(func() {
		c = core.NewBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithFreq(1 * sim.GHz).
			Build("Core")
	})

	It("should start with zeroed registers and an empty stack", func() {
		Expect(c.Register(instr.RAX)).To(BeZero())
		Expect(c.Register(instr.RBX)).To(BeZero())
		Expect(c.StackDepth()).To(BeZero())
	})

	It("should execute instruction text", func() {
		err := c.Execute(strings.Split(tenPlusFive, "\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Register(instr.RAX)).To(Equal(int64(15)))
		Expect(c.Register(instr.RBX)).To(Equal(int64(10)))
		Expect(c.StackDepth()).To(BeZero())
		Expect(c.Retired()).To(Equal(5))
		Expect(c.Ticks()).To(Equal(5))
		Expect(c.PC()).To(Equal(5))
	})

	It("should subtract the right operand from the left", func() {
		err := c.ExecuteProgram(instr.Program{
			instr.Mov(instr.RAX, 10),
			instr.Push(instr.RAX),
			instr.Mov(instr.RAX, 3),
			instr.Pop(instr.RBX),
			instr.Sub(),
		})

		// RAX holds the right operand and RBX the left one.
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Register(instr.RAX)).To(Equal(int64(7)))
	})

	It("should do nothing for an empty program", func() {
		Expect(c.Execute(nil)).To(Succeed())
		Expect(c.Retired()).To(BeZero())
	})

	It("should stop at a division by zero", func() {
		err := c.Execute([]string{
			"MOV RAX, 5", "PUSH RAX", "MOV RAX, 0", "POP RBX", "DIV RBX",
			"MOV RAX, 99",
		})

		Expect(err).To(MatchError(core.ErrDivideByZero))

		var ee *core.ExecError
		Expect(errors.As(err, &ee)).To(BeTrue())
		Expect(ee.PC).To(Equal(4))
		Expect(ee.Inst).To(Equal(instr.Div()))
		Expect(c.Register(instr.RAX)).To(BeZero())
		Expect(c.Register(instr.RBX)).To(Equal(int64(5)))
		Expect(c.Retired()).To(Equal(5))
	})

	It("should stop when a result overflows", func() {
		err := c.Execute([]string{
			"MOV RAX, 9223372036854775807", "PUSH RAX", "MOV RAX, 1", "POP RBX",
			"ADD RAX, RBX", "MOV RAX, 99",
		})

		Expect(err).To(MatchError(core.ErrOverflow))

		var ee *core.ExecError
		Expect(errors.As(err, &ee)).To(BeTrue())
		Expect(ee.PC).To(Equal(4))
		Expect(c.Register(instr.RAX)).To(Equal(int64(1)))
	})

	It("should stop at a stack underflow", func() {
		err := c.Execute([]string{"POP RAX", "MOV RAX, 1"})

		Expect(err).To(MatchError(core.ErrStackUnderflow))
		Expect(c.Register(instr.RAX)).To(BeZero())
	})

	It("should reject unknown registers before running", func() {
		err := c.Execute([]string{"MOV RAX, 1", "PUSH RCX"})

		Expect(err).To(MatchError(instr.ErrUnknownRegister))
		Expect(c.Retired()).To(BeZero())
	})

	It("should skip unknown opcodes", func() {
		err := c.Execute([]string{"MOV RAX, 3", "HALT", "NOP RAX"})

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Register(instr.RAX)).To(Equal(int64(3)))
		Expect(c.Retired()).To(Equal(3))
	})

	It("should fail on unknown opcodes when strict", func() {
		strict := core.NewBuilder().WithStrictOpcodes(true).Build("Strict")

		err := strict.Execute([]string{"MOV RAX, 3", "HALT"})

		Expect(err).To(MatchError(instr.ErrUnknownOpcode))
		Expect(strict.PC()).To(Equal(1))
	})

	It("should keep state across runs until Reset", func() {
		Expect(c.Execute([]string{"MOV RBX, 4", "PUSH RBX"})).To(Succeed())
		Expect(c.Execute([]string{"MOV RAX, 2", "DIV RBX"})).To(Succeed())

		Expect(c.Register(instr.RAX)).To(Equal(int64(2)))
		Expect(c.Stack()).To(Equal([]int64{4}))

		c.Reset()
		Expect(c.Registers()).To(Equal([instr.NumRegisters]int64{}))
		Expect(c.Stack()).To(BeEmpty())
		Expect(c.Retired()).To(BeZero())
	})

	It("should dump its state", func() {
		Expect(c.Execute([]string{"MOV RAX, 12", "PUSH RAX"})).To(Succeed())

		dump := c.Dump()
		Expect(dump).To(ContainSubstring("RAX"))
		Expect(dump).To(ContainSubstring("12"))
		Expect(dump).To(ContainSubstring("(top)"))
	})

	It("should print state after a run when asked", func() {
		var buf bytes.Buffer
		dumping := core.NewBuilder().WithStateDump(&buf).Build("Dumping")

		Expect(dumping.Execute([]string{"POP RAX"})).NotTo(Succeed())

		Expect(buf.String()).To(ContainSubstring("Dumping registers"))
		Expect(buf.String()).To(ContainSubstring("halted"))
	})

	It("should panic on a non-positive frequency", func() {
		Expect(func() { core.NewBuilder().WithFreq(0) }).To(Panic())
	})

	Context("with hooks", func() {
		var mockCtrl *gomock.Controller

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should invoke the hook once per instruction", func() {
			hook := NewMockHook(mockCtrl)
			c.AcceptHook(hook)

			var last core.InstRecord
			hook.EXPECT().
				Func(gomock.Any()).
				Do(func(ctx sim.HookCtx) {
					Expect(ctx.Pos).To(Equal(core.HookPosInstRetired))
					last = ctx.Item.(core.InstRecord)
				}).
				Times(5)

			Expect(c.Execute(strings.Split(tenPlusFive, "\n"))).To(Succeed())

			Expect(last.PC).To(Equal(4))
			Expect(last.Inst).To(Equal(instr.Add()))
			Expect(last.RAX).To(Equal(int64(15)))
		})

		It("should record a trace", func() {
			tracer := core.NewInstTracer()
			c.AcceptHook(tracer)

			Expect(c.Execute(strings.Split(tenPlusFive, "\n"))).To(Succeed())

			Expect(tracer.Records).To(HaveLen(5))
			Expect(tracer.Records[1].StackDepth).To(Equal(1))
			Expect(tracer.Records[3].RBX).To(Equal(int64(10)))

			var buf bytes.Buffer
			tracer.Write(&buf)
			Expect(buf.String()).To(ContainSubstring("PUSH RAX"))

			tracer.Reset()
			Expect(tracer.Records).To(BeEmpty())
		})

		It("should record the failing instruction", func() {
			tracer := core.NewInstTracer()
			c.AcceptHook(tracer)

			Expect(c.Execute([]string{"MOV RAX, 1", "POP RBX"})).NotTo(Succeed())

			Expect(tracer.Records).To(HaveLen(2))
			Expect(tracer.Records[1].Err).To(MatchError(core.ErrStackUnderflow))
		})
	})
})
