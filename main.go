// Package main provides the entry point for tomasim.
// tomasim is a cycle-accurate Tomasulo's-algorithm simulator with a
// reorder buffer.
//
// For the full interactive CLI, use: go run ./cmd/tomasim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tomasim - Tomasulo/ROB scheduling simulator")
	fmt.Println("")
	fmt.Println("Usage: tomasim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to functional-unit latency configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tomasim' for the full interactive CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tomasim' instead.")
	}
}
