package engine

import "fmt"

// Diagnostic is one non-fatal condition the engine detected while
// stepping — a divide-by-zero, an out-of-range address, or an internal
// invariant violation. Per spec.md §7, none of these are fatal. After a
// divide-by-zero or an out-of-range address the offending instruction
// still produces some value and commits in its turn, keeping the
// simulation from livelocking on a bad instruction; an internal invariant
// violation is only reported and changes no state.
type Diagnostic struct {
	// Cycle is the cycle the condition was detected in.
	Cycle int
	// Message describes the condition.
	Message string
}

// diagnostics accumulates Diagnostic values for the caller to drain.
type diagnostics struct {
	entries []Diagnostic
}

func (d *diagnostics) report(cycle int, format string, args ...any) {
	d.entries = append(d.entries, Diagnostic{Cycle: cycle, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns every diagnostic recorded so far.
func (e *Engine) Diagnostics() []Diagnostic {
	return e.diag.entries
}
