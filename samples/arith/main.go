package main

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/everisa/api"
	"github.com/sarchlab/everisa/core"
	"github.com/tebeka/atexit"
)

//go:embed expressions.txt
var expressions string

func arith(driver api.Driver, tracer *core.InstTracer) int {
	failed := 0

	for _, line := range strings.Split(expressions, "\n") {
		src := strings.TrimSpace(line)
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}

		tracer.Reset()

		res, err := driver.Run(src)
		if err != nil {
			fmt.Printf("%-28s error: %v\n", src, err)
			failed++
			continue
		}

		fmt.Printf("%-28s = %d (%d instructions)\n", src, res.RAX, len(tracer.Records))
	}

	return failed
}

func main() {
	engine := sim.NewSerialEngine()
	tracer := core.NewInstTracer()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithHook(tracer).
		Build("Driver")

	if arith(driver, tracer) > 0 {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
