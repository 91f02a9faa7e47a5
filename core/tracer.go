package core

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
)

// InstTracer is a hook that records every retired instruction.
type InstTracer struct {
	Records []InstRecord
}

// NewInstTracer creates an empty tracer. Attach it with Core.AcceptHook.
func NewInstTracer() *InstTracer {
	return &InstTracer{}
}

// Func implements sim.Hook.
func (t *InstTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosInstRetired {
		return
	}

	rec, ok := ctx.Item.(InstRecord)
	if !ok {
		return
	}

	t.Records = append(t.Records, rec)
}

// Reset drops the recorded instructions.
func (t *InstTracer) Reset() {
	t.Records = nil
}

// Write prints the recorded instructions as a table.
func (t *InstTracer) Write(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"PC", "Instruction", "RAX", "RBX", "Stack", "Error"})

	for _, rec := range t.Records {
		errText := ""
		if rec.Err != nil {
			errText = fmt.Sprint(rec.Err)
		}
		tw.AppendRow(table.Row{
			rec.PC, rec.Inst.String(), rec.RAX, rec.RBX, rec.StackDepth, errText,
		})
	}

	tw.Render()
}
