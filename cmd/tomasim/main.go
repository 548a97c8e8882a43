// Command tomasim is the interactive stepper described in spec.md §6.3:
// it prompts for an instruction-file path, then loops
// snapshot-print/step/wait-for-keystroke until the simulation is done,
// finally printing the last snapshot and the full register file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/archlab/tomasim/engine"
	"github.com/archlab/tomasim/latency"
	"github.com/archlab/tomasim/program"
	"github.com/archlab/tomasim/render"
)

var (
	configPath = flag.String("config", "", "Path to functional-unit latency configuration JSON file")
	verbose    = flag.Bool("v", false, "Print how many instructions were loaded before stepping")
)

func main() {
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in io.Reader, out, errOut io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Instruction file: ")
	path, err := reader.ReadString('\n')
	if err != nil && path == "" {
		return fmt.Errorf("failed to read instruction file path: %w", err)
	}
	path = strings.TrimSpace(path)

	instructions, diags, err := program.ParseFile(path)
	if err != nil {
		return err
	}
	for _, d := range diags {
		fmt.Fprintln(errOut, d.String())
	}
	if *verbose {
		fmt.Fprintf(out, "Loaded %d instructions from %s\n", len(instructions), path)
	}

	table := latency.NewTable()
	if *configPath != "" {
		config, err := latency.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		table = latency.NewTableWithConfig(config)
	}

	eng := engine.New(instructions, engine.WithLatencyTable(table))

	reported := 0
	for !eng.Done() {
		render.Snapshot(out, eng.Snapshot())

		eng.Step()

		for _, d := range eng.Diagnostics()[reported:] {
			fmt.Fprintf(errOut, "cycle %d: %s\n", d.Cycle, d.Message)
		}
		reported = len(eng.Diagnostics())

		fmt.Fprint(out, "\nPress Enter to continue...")
		if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
			return fmt.Errorf("failed to read keystroke: %w", err)
		}
	}

	render.Final(out, eng.FinalSnapshot())
	return nil
}
