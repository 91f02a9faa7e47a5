package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/everisa/api"
	"github.com/sarchlab/everisa/ast"
	"github.com/sarchlab/everisa/instr"
)

// VerificationReport is the outcome of checking one source expression.
type VerificationReport struct {
	Source string

	Tree       ast.Node
	Program    instr.Program
	CompileErr error

	LintIssues []Issue

	Expected int64
	EvalErr  error

	Simulated MachineState
	SimErr    error

	Result api.Result
	RunErr error
}

// GenerateReport compiles source with d, lints the program, evaluates the
// tree and runs the program on both the functional simulator and the
// machine.
func GenerateReport(d api.Driver, source string) *VerificationReport {
	r := &VerificationReport{Source: source}

	r.Tree, r.CompileErr = d.Parse(source)
	if r.CompileErr != nil {
		return r
	}

	r.Expected, r.EvalErr = Evaluate(r.Tree)

	r.Program, r.CompileErr = d.Compile(source)
	if r.CompileErr != nil {
		return r
	}

	r.LintIssues = RunLint(r.Program)
	r.Simulated, r.SimErr = Interpret(r.Program)
	r.Result, r.RunErr = d.Run(source)

	return r
}

// Check verifies source on a default driver.
func Check(source string) *VerificationReport {
	return GenerateReport(api.DriverBuilder{}.Build("Check"), source)
}

// Consistent reports whether every stage that ran agrees with the reference
// evaluation, either on the value or on the kind of failure.
func (r *VerificationReport) Consistent() bool {
	if r.Tree == nil {
		return false
	}

	want := ErrorClass(r.EvalErr)
	if r.CompileErr != nil {
		return ErrorClass(r.CompileErr) == want
	}

	if ErrorClass(r.SimErr) != want || ErrorClass(r.RunErr) != want {
		return false
	}

	if want != "" {
		return true
	}

	return r.Simulated.RAX == r.Expected &&
		r.Result.RAX == r.Expected &&
		r.Result.StackDepth == 0
}

// Passed reports whether the source compiled and ran without any error and
// all stages agree.
func (r *VerificationReport) Passed() bool {
	return r.Consistent() && r.EvalErr == nil && r.CompileErr == nil
}

func status(err error, ok bool) string {
	switch {
	case err != nil:
		return "ERROR"
	case ok:
		return "OK"
	default:
		return "MISMATCH"
	}
}

func detail(err error, v int64) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("RAX = %d", v)
}

// WriteReport writes a formatted report to a writer.
func (r *VerificationReport) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "Source: %s\n", r.Source)
	if r.Tree != nil {
		fmt.Fprintf(w, "Tree:   %s\n", ast.Format(r.Tree))
	}

	stages := table.NewWriter()
	stages.SetOutputMirror(w)
	stages.SetTitle("Stages")
	stages.AppendHeader(table.Row{"Stage", "Status", "Detail"})

	if r.Tree == nil {
		stages.AppendRow(table.Row{"parse", "ERROR", r.CompileErr.Error()})
		stages.Render()
		return
	}

	stages.AppendRow(table.Row{"evaluate", status(r.EvalErr, true), detail(r.EvalErr, r.Expected)})

	if r.CompileErr != nil {
		stages.AppendRow(table.Row{"compile", "ERROR", r.CompileErr.Error()})
	} else {
		stages.AppendRow(table.Row{"compile", "OK", fmt.Sprintf("%d instructions", len(r.Program))})
		stages.AppendRow(table.Row{"lint", status(nil, len(r.LintIssues) == 0),
			fmt.Sprintf("%d issue(s)", len(r.LintIssues))})
		stages.AppendRow(table.Row{"funcsim", status(r.SimErr, r.Simulated.RAX == r.Expected),
			detail(r.SimErr, r.Simulated.RAX)})
		stages.AppendRow(table.Row{"machine", status(r.RunErr, r.Result.RAX == r.Expected),
			detail(r.RunErr, r.Result.RAX)})
	}

	verdict := "PASSED"
	switch {
	case !r.Consistent():
		verdict = "INCONSISTENT"
	case !r.Passed():
		verdict = "CONSISTENT FAILURE"
	}
	stages.AppendFooter(table.Row{"verdict", verdict, ""})
	stages.Render()

	if len(r.LintIssues) == 0 {
		return
	}

	issues := table.NewWriter()
	issues.SetOutputMirror(w)
	issues.SetTitle("Lint Issues")
	issues.AppendHeader(table.Row{"Type", "PC", "Message"})
	for _, issue := range r.LintIssues {
		pc := fmt.Sprint(issue.PC)
		if issue.PC < 0 {
			pc = "-"
		}
		issues.AppendRow(table.Row{issue.Type, pc, issue.Message})
	}
	issues.Render()
}

// SaveReportToFile saves the report to a file.
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
