package verify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/everisa/api"
	"gopkg.in/yaml.v3"
)

// Case is one conformance test. Exactly one of RAX and Error is expected to
// be set.
type Case struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	RAX    *int64 `yaml:"rax,omitempty"`
	Error  string `yaml:"error,omitempty"` // an error class, see ErrorClass
	Skip   string `yaml:"skip,omitempty"`  // reason to skip
}

// Suite is the layout of a conformance file.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

// LoadSuite parses a single YAML conformance file.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, err
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}

	for i, c := range suite.Cases {
		if c.RAX == nil && c.Error == "" && c.Skip == "" {
			return Suite{}, fmt.Errorf("%s: case %d (%s) expects nothing", path, i, c.Name)
		}
	}

	return suite, nil
}

// LoadCases loads the cases of a conformance file, or of every .yaml file
// under a directory. Case names are prefixed with the suite name.
func LoadCases(path string) ([]Case, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return loadPrefixed(path)
	}

	var cases []Case
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(p) != ".yaml" {
			return nil
		}

		loaded, err := loadPrefixed(p)
		if err != nil {
			return err
		}
		cases = append(cases, loaded...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cases, nil
}

func loadPrefixed(path string) ([]Case, error) {
	suite, err := LoadSuite(path)
	if err != nil {
		return nil, err
	}

	cases := make([]Case, len(suite.Cases))
	for i, c := range suite.Cases {
		if suite.Name != "" {
			c.Name = suite.Name + "/" + c.Name
		}
		cases[i] = c
	}

	return cases, nil
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Case    Case
	RAX     int64
	Err     error
	Skipped bool
	Passed  bool
	Reason  string
}

// RunCase runs one case on d.
func RunCase(d api.Driver, c Case) CaseResult {
	res := CaseResult{Case: c}

	if c.Skip != "" {
		res.Skipped = true
		res.Reason = c.Skip
		return res
	}

	out, err := d.Run(c.Source)
	res.RAX, res.Err = out.RAX, err

	got := ErrorClass(err)
	switch {
	case c.Error != "" && got != c.Error:
		res.Reason = fmt.Sprintf("want error %s, got %s", c.Error, orValue(got, out.RAX))
	case c.Error == "" && err != nil:
		res.Reason = fmt.Sprintf("want RAX = %d, got error %s", *c.RAX, got)
	case c.Error == "" && out.RAX != *c.RAX:
		res.Reason = fmt.Sprintf("want RAX = %d, got %d", *c.RAX, out.RAX)
	case c.Error == "" && out.StackDepth != 0:
		res.Reason = fmt.Sprintf("stack holds %d value(s) after the run", out.StackDepth)
	default:
		res.Passed = true
	}

	return res
}

func orValue(class string, rax int64) string {
	if class == "" {
		return fmt.Sprintf("RAX = %d", rax)
	}
	return class
}

// RunCases runs every case on d.
func RunCases(d api.Driver, cases []Case) []CaseResult {
	results := make([]CaseResult, 0, len(cases))
	for _, c := range cases {
		results = append(results, RunCase(d, c))
	}
	return results
}

// Summary counts case results.
type Summary struct {
	Passed, Failed, Skipped int
}

// Summarize counts the results.
func Summarize(results []CaseResult) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// WriteCaseResults prints the results as a table and returns the summary.
func WriteCaseResults(w io.Writer, results []CaseResult) Summary {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Case", "Source", "Result", "Reason"})

	for _, r := range results {
		verdict := "FAIL"
		switch {
		case r.Skipped:
			verdict = "SKIP"
		case r.Passed:
			verdict = "PASS"
		}
		tw.AppendRow(table.Row{r.Case.Name, r.Case.Source, verdict, r.Reason})
	}

	s := Summarize(results)
	tw.AppendFooter(table.Row{"", "",
		fmt.Sprintf("%d passed", s.Passed),
		fmt.Sprintf("%d failed, %d skipped", s.Failed, s.Skipped)})
	tw.Render()

	return s
}
