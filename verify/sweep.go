package verify

import (
	"fmt"

	"github.com/sarchlab/everisa/api"
	"github.com/sarchlab/everisa/ast"
	valgen "github.com/sarchlab/everisa/util"
)

// SweepCases builds n cases of the form "<a> op <b>" with operands drawn
// from the generators. The expected outcome comes from the reference
// evaluator. Operands must be non-negative since the language has no unary
// minus.
func SweepCases(op ast.Op, lefts, rights valgen.Gen, n int) ([]Case, error) {
	cases := make([]Case, 0, n)

	for i := 0; i < n; i++ {
		a, b := lefts(), rights()
		if a < 0 || b < 0 {
			return nil, fmt.Errorf("sweep: negative operand in %d %s %d", a, op, b)
		}

		c := Case{
			Name:   fmt.Sprintf("sweep/%s/%d", op, i),
			Source: fmt.Sprintf("%d %s %d", a, op, b),
		}

		v, err := apply(op, a, b)
		if err != nil {
			c.Error = ErrorClass(err)
		} else {
			c.RAX = &v
		}

		cases = append(cases, c)
	}

	return cases, nil
}

// Sweep runs SweepCases on d.
func Sweep(d api.Driver, op ast.Op, lefts, rights valgen.Gen, n int) ([]CaseResult, error) {
	cases, err := SweepCases(op, lefts, rights, n)
	if err != nil {
		return nil, err
	}

	return RunCases(d, cases), nil
}
