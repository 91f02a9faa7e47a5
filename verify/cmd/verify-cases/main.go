package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/everisa/api"
	"github.com/sarchlab/everisa/verify"
	"github.com/tebeka/atexit"
)

func main() {
	strict := flag.Bool("strict", false, "fail on unknown opcodes")
	flag.Parse()

	path := "verify/testdata"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cases, err := verify.LoadCases(path)
	if err != nil {
		log.Fatalf("Failed to load conformance cases from %s: %v", path, err)
	}

	fmt.Println("==============================================================================")
	fmt.Println("EVERISA CONFORMANCE")
	fmt.Println("==============================================================================")
	fmt.Printf("\nLoaded %d cases from %s\n\n", len(cases), path)

	driver := api.DriverBuilder{}.
		WithStrictOpcodes(*strict).
		Build("Driver")

	summary := verify.WriteCaseResults(os.Stdout, verify.RunCases(driver, cases))

	fmt.Println()
	if summary.Failed > 0 {
		fmt.Printf("❌ %d of %d cases failed\n", summary.Failed, len(cases))
		atexit.Exit(1)
	}

	fmt.Printf("✅ All %d cases passed\n", summary.Passed)
	atexit.Exit(0)
}
