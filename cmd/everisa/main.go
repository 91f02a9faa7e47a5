// Command everisa compiles arithmetic expressions to EverISA instructions and
// runs them on the simulated register machine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/sarchlab/everisa/api"
	"github.com/sarchlab/everisa/ast"
	"github.com/sarchlab/everisa/config"
	"github.com/sarchlab/everisa/parser"
	"github.com/sarchlab/everisa/verify"
	"github.com/tebeka/atexit"
)

const (
	appName     = "everisa"
	version     = "0.1.0"
	historyFile = ".everisa_history"
	promptMain  = "everisa> "
	promptCont  = "     ... "
)

func main() {
	if len(os.Args) < 2 {
		usage()
		atexit.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "tokens":
		atexit.Exit(cmdTokens(args))
	case "parse":
		atexit.Exit(cmdParse(args))
	case "compile":
		atexit.Exit(cmdCompile(args))
	case "run":
		atexit.Exit(cmdRun(args))
	case "exec":
		atexit.Exit(cmdExec(args))
	case "repl":
		atexit.Exit(cmdRepl(args))
	case "check":
		atexit.Exit(cmdCheck(args))
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		atexit.Exit(2)
	}

	atexit.Exit(0)
}

func usage() {
	fmt.Printf(`EverISA %s

Usage:
  %s tokens <expr>                         Print the tokens of an expression.
  %s parse <expr>                          Print the parsed tree.
  %s compile [-f file] <expr>              Print the generated instructions.
  %s run [-trace] [-state] <expr>          Compile and run an expression.
  %s exec [-f file]                        Run instruction text (stdin by default).
  %s repl                                  Start the REPL.
  %s check [-e expr] [path]                Run conformance cases or check one expression.
  %s version                               Print the version.

Commands that build a machine accept -config <file.yaml>.
`, version, appName, appName, appName, appName, appName, appName, appName, appName)
}

// platformFlags are shared by the commands that run on a machine.
type platformFlags struct {
	config *string
}

func addPlatformFlags(fs *flag.FlagSet) platformFlags {
	return platformFlags{
		config: fs.String("config", "", "YAML configuration file"),
	}
}

func (pf platformFlags) load() (config.Config, error) {
	cfg := config.Default()
	if *pf.config != "" {
		var err error
		if cfg, err = config.Load(*pf.config); err != nil {
			return cfg, err
		}
	}

	if err := config.InitLogger(cfg.Log); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (pf platformFlags) build() (*config.Platform, error) {
	cfg, err := pf.load()
	if err != nil {
		return nil, err
	}

	return config.MakePlatformBuilder(cfg).
		WithStateDump(os.Stdout).
		Build("EverISA"), nil
}

// source returns the expression from -f, the arguments, or stdin, in that
// order.
func source(file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		return string(data), err
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	return string(data), err
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
	return 1
}

// -----------------------------------------------------------------------------
// tokens, parse, compile
// -----------------------------------------------------------------------------

func cmdTokens(args []string) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	file := fs.String("f", "", "read the expression from a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	src, err := source(*file, fs.Args())
	if err != nil {
		return fail(err)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Pos", "Kind", "Text"})

	d := api.DriverBuilder{}.Build("Driver")
	for _, tok := range d.Tokenize(src) {
		tw.AppendRow(table.Row{tok.Pos, tok.Kind, tok.Text})
	}
	tw.Render()

	return 0
}

func cmdParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	file := fs.String("f", "", "read the expression from a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	src, err := source(*file, fs.Args())
	if err != nil {
		return fail(err)
	}

	tree, err := api.DriverBuilder{}.Build("Driver").Parse(src)
	if err != nil {
		return fail(err)
	}

	fmt.Println(ast.Format(tree))
	fmt.Printf("depth %d\n", ast.Depth(tree))

	return 0
}

func cmdCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	file := fs.String("f", "", "read the expression from a file")
	out := fs.String("o", "", "write the instructions to a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	src, err := source(*file, fs.Args())
	if err != nil {
		return fail(err)
	}

	program, err := api.DriverBuilder{}.Build("Driver").Compile(src)
	if err != nil {
		return fail(err)
	}

	if *out == "" {
		fmt.Println(program.String())
		return 0
	}

	if err := os.WriteFile(*out, []byte(program.String()+"\n"), 0644); err != nil {
		return fail(err)
	}

	return 0
}

// -----------------------------------------------------------------------------
// run, exec
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	pf := addPlatformFlags(fs)
	file := fs.String("f", "", "read the expression from a file")
	trace := fs.Bool("trace", false, "print every retired instruction")
	state := fs.Bool("state", false, "print the machine state after the run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	src, err := source(*file, fs.Args())
	if err != nil {
		return fail(err)
	}

	return runOn(pf, *trace, *state, func(d api.Driver) (api.Result, error) {
		return d.Run(src)
	})
}

func cmdExec(args []string) int {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	pf := addPlatformFlags(fs)
	file := fs.String("f", "", "read the instructions from a file")
	trace := fs.Bool("trace", false, "print every retired instruction")
	state := fs.Bool("state", false, "print the machine state after the run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var text string
	if *file != "" || fs.NArg() == 0 {
		var err error
		if text, err = source(*file, nil); err != nil {
			return fail(err)
		}
	} else {
		text = strings.Join(fs.Args(), "\n")
	}

	return runOn(pf, *trace, *state, func(d api.Driver) (api.Result, error) {
		return d.Exec(text)
	})
}

func runOn(
	pf platformFlags,
	trace, state bool,
	run func(api.Driver) (api.Result, error),
) int {
	cfg, err := pf.load()
	if err != nil {
		return fail(err)
	}

	cfg.Machine.Trace = cfg.Machine.Trace || trace
	cfg.Machine.PrintState = cfg.Machine.PrintState || state

	p := config.MakePlatformBuilder(cfg).
		WithStateDump(os.Stdout).
		Build("EverISA")

	res, err := run(p.Driver)

	if p.Tracer != nil {
		p.Tracer.Write(os.Stdout)
	}

	if err != nil {
		return fail(err)
	}

	fmt.Printf("RAX: %d\n", res.RAX)

	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	pf := addPlatformFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := pf.build()
	if err != nil {
		return fail(err)
	}

	fmt.Printf("EverISA %s. Type :asm to toggle listings, :quit to exit.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	showAsm := false
	for {
		src, ok := readExpression(ln, p.Driver)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return 0
		case trimmed == ":asm":
			showAsm = !showAsm
			continue
		case strings.HasPrefix(trimmed, ":"):
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		res, err := p.Driver.Run(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if showAsm {
			fmt.Println(res.Text())
		}
		fmt.Println(res.RAX)
	}
}

// readExpression keeps prompting while the input so far ends in the middle
// of an expression.
func readExpression(ln *liner.State, d api.Driver) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" || strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}

		if _, err := d.Parse(src); parser.IsIncomplete(err) {
			continue
		}

		return src, true
	}
}

// -----------------------------------------------------------------------------
// check
// -----------------------------------------------------------------------------

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	pf := addPlatformFlags(fs)
	expr := fs.String("e", "", "check a single expression and print a report")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := pf.build()
	if err != nil {
		return fail(err)
	}

	if *expr != "" {
		report := verify.GenerateReport(p.Driver, *expr)
		report.WriteReport(os.Stdout)
		if !report.Consistent() {
			return 1
		}
		return 0
	}

	path := "verify/testdata"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	cases, err := verify.LoadCases(path)
	if err != nil {
		return fail(err)
	}

	summary := verify.WriteCaseResults(os.Stdout, verify.RunCases(p.Driver, cases))
	if summary.Failed > 0 {
		return 1
	}

	return 0
}
