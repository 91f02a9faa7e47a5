// Package verify provides checking tools for EverISA programs.
//
// It cross-checks the compiler pipeline in three independent ways:
//
//  1. Reference evaluation (eval.go): walks the expression tree directly,
//     with the same left-to-right folding and floor division the machine
//     uses.
//  2. Static lint (lint.go): inspects an instruction program without running
//     it. Stack balance, underflow, known-zero divisors, overflow of known
//     values, unknown opcodes and a missing result write are reported as
//     issues.
//  3. Functional simulation (funcsim.go): a plain interpreter for instruction
//     programs that does not go through the simulation engine.
//
// GenerateReport and Check combine the three with a real run on the machine.
// LoadCases and RunCases drive a YAML conformance corpus.
//
// # Usage Example
//
//	report := verify.Check("(1 + 2) * 3")
//	report.WriteReport(os.Stdout)
//	if !report.Passed() {
//	    os.Exit(1)
//	}
package verify

// IssueType categorizes lint issues.
type IssueType string

const (
	IssueOpcode IssueType = "OPCODE" // opcode outside the ISA
	IssueStack  IssueType = "STACK"  // underflow or unbalanced stack
	IssueArith  IssueType = "ARITH"  // division by a known zero or overflow
	IssueResult IssueType = "RESULT" // RAX never written
)

// Issue represents a single lint issue.
type Issue struct {
	Type    IssueType
	PC      int // instruction index, -1 for whole-program issues
	Message string
	Details map[string]interface{}
}
