package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/everisa/instr"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// StateTable renders the registers and the stack of a core as text tables.
func StateTable(name string, state *coreState) string {
	regTable := table.NewWriter()
	regTable.SetTitle(fmt.Sprintf("%s registers (PC %d)", name, state.PC))
	regTable.AppendHeader(table.Row{"Register", "Value"})
	for r := 0; r < instr.NumRegisters; r++ {
		regTable.AppendRow(table.Row{instr.Register(r), state.Registers[r]})
	}

	stackTable := table.NewWriter()
	stackTable.SetTitle(fmt.Sprintf("Stack (depth %d)", len(state.Stack)))
	stackTable.AppendHeader(table.Row{"Slot", "Value"})
	for i := len(state.Stack) - 1; i >= 0; i-- {
		slot := strconv.Itoa(i)
		if i == len(state.Stack)-1 {
			slot += " (top)"
		}
		stackTable.AppendRow(table.Row{slot, state.Stack[i]})
	}
	if len(state.Stack) == 0 {
		stackTable.AppendRow(table.Row{"-", "empty"})
	}

	return regTable.Render() + "\n" + stackTable.Render()
}

// PrintState writes the state tables of a core to w.
func PrintState(w io.Writer, name string, state *coreState) {
	fmt.Fprintln(w, StateTable(name, state))
	if state.Err != nil {
		fmt.Fprintf(w, "halted: %v\n", state.Err)
	}
}

// Dump renders the current state of the core.
func (c *Core) Dump() string {
	return StateTable(c.Name(), &c.state)
}

func LogState(name string, state *coreState) {
	slog.Debug("StateCheckpoint",
		"Core", name,
		"PC", state.PC,
		"Registers", state.Registers,
		"Stack", state.Stack,
		"Retired", state.Retired,
		"Err", state.Err,
	)
}
