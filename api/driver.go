// Package api defines the driver API for the EverISA compiler pipeline.
package api

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/everisa/ast"
	"github.com/sarchlab/everisa/codegen"
	"github.com/sarchlab/everisa/instr"
	"github.com/sarchlab/everisa/lexer"
	"github.com/sarchlab/everisa/parser"
)

// Driver provides the interface to compile and run expressions.
type Driver interface {
	// Tokenize returns the tokens of source.
	Tokenize(source string) []lexer.Token

	// Parse builds the expression tree of source.
	Parse(source string) (ast.Node, error)

	// Compile lowers source to a program. Each call is its own compilation
	// unit.
	Compile(source string) (instr.Program, error)

	// Run compiles source and executes it on a freshly reset machine.
	Run(source string) (Result, error)

	// Exec executes program text on a freshly reset machine.
	Exec(text string) (Result, error)
}

// Result is the machine state after a successful run.
type Result struct {
	Program    instr.Program
	RAX, RBX   int64
	StackDepth int
	Retired    int
	Ticks      int
}

// Text returns the program text of the run.
func (r Result) Text() string {
	return r.Program.String()
}

type driverImpl struct {
	name    string
	machine machine
}

func (d *driverImpl) Tokenize(source string) []lexer.Token {
	return lexer.Tokenize(source)
}

func (d *driverImpl) Parse(source string) (ast.Node, error) {
	p := parser.NewParser(d.Tokenize(source))

	tree, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if rest := p.Remaining(); len(rest) > 0 {
		slog.Debug("TrailingTokens",
			"Driver", d.name,
			"Count", len(rest),
			"First", rest[0].Text,
		)
	}

	return tree, nil
}

func (d *driverImpl) Compile(source string) (instr.Program, error) {
	tree, err := d.Parse(source)
	if err != nil {
		return nil, err
	}

	program, _, err := codegen.NewGenerator().Generate(tree)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	return program, nil
}

func (d *driverImpl) Run(source string) (Result, error) {
	program, err := d.Compile(source)
	if err != nil {
		return Result{}, err
	}

	return d.execute(program)
}

func (d *driverImpl) Exec(text string) (Result, error) {
	program, err := instr.DecodeText(text)
	if err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}

	return d.execute(program)
}

func (d *driverImpl) execute(program instr.Program) (Result, error) {
	d.machine.Reset()

	if err := d.machine.ExecuteProgram(program); err != nil {
		return Result{}, fmt.Errorf("execute: %w", err)
	}

	regs := d.machine.Registers()
	res := Result{
		Program:    program,
		RAX:        regs[instr.RAX],
		RBX:        regs[instr.RBX],
		StackDepth: d.machine.StackDepth(),
		Retired:    d.machine.Retired(),
		Ticks:      d.machine.Ticks(),
	}

	slog.Debug("Run",
		"Driver", d.name,
		"Instructions", len(program),
		"RAX", res.RAX,
	)

	return res, nil
}
