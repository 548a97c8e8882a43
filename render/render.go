// Package render formats an engine.Snapshot as aligned text tables, for
// the interactive CLI stepper. It is one of the external collaborators
// spec.md §1 names as out of scope for the engine itself: it only reads
// snapshots, never the engine's internal state directly.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/archlab/tomasim/engine"
	"github.com/archlab/tomasim/isa"
)

// Snapshot writes a human-readable dump of snap to w: the instruction
// table with its event stamps, each reservation-station group, the ROB,
// and the busy rows of the register-status table.
func Snapshot(w io.Writer, snap engine.Snapshot) {
	fmt.Fprintf(w, "Cycle %d\n", snap.Cycle)

	renderInstructions(w, snap.Instructions)
	renderStations(w, "ADD/SUB", snap.AddStations)
	renderStations(w, "MUL/DIV", snap.MulStations)
	renderStations(w, "LOAD", snap.LoadStations)
	renderStations(w, "STORE", snap.StoreStations)
	renderROB(w, snap.ROB)
	renderRegStatus(w, snap.BusyRegStatus)
}

// Final writes Snapshot(final) followed by the full architectural
// register file, for the CLI's end-of-run dump.
func Final(w io.Writer, final engine.FinalSnapshot) {
	Snapshot(w, final.Snapshot)

	fmt.Fprintln(w, "\nRegisters:")
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for i, v := range final.Registers {
		fmt.Fprintf(tw, "F%d\t= %d\n", i, v)
	}
	_ = tw.Flush()
}

func renderInstructions(w io.Writer, insts []engine.InstructionSnapshot) {
	fmt.Fprintln(w, "\nInstructions:")
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "#\tOp\tIssue\tExecComp\tWriteResult\tCommit")
	for _, inst := range insts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			inst.Index, inst.Kind,
			stamp(inst.Issue), stamp(inst.ExecutionComplete), stamp(inst.WriteResult), stamp(inst.Commit))
	}
	_ = tw.Flush()
}

func renderStations(w io.Writer, label string, stations []engine.StationSnapshot) {
	fmt.Fprintf(w, "\n%s reservation stations:\n", label)
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "Busy\tOp\tVj\tVk\tQj\tQk\tA\tDestRob\tInst")
	for _, s := range stations {
		fmt.Fprintf(tw, "%t\t%s\t%d\t%d\t%s\t%s\t%d\t%d\t%d\n",
			s.Busy, s.Op, s.Vj, s.Vk, tag(s.Qj), tag(s.Qk), s.A, s.DestRob, s.InstructionIndex)
	}
	_ = tw.Flush()
}

func renderROB(w io.Writer, rob engine.ROBSnapshot) {
	fmt.Fprintf(w, "\nReorder buffer (head=%d tail=%d available=%d):\n", rob.Head, rob.Tail, rob.Available)
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "Slot\tBusy\tInst\tOp\tState\tDest\tValue\tAddr\tReady")
	for i, e := range rob.Entries {
		dest := ""
		if e.HasDest {
			dest = isa.RegName(e.DestinationRegister)
		}
		fmt.Fprintf(tw, "%d\t%t\t%d\t%s\t%s\t%s\t%d\t%d\t%t\n",
			i, e.Busy, e.InstructionIndex, e.Kind, stateName(e.State), dest, e.Value, e.Address, e.ValueReady)
	}
	_ = tw.Flush()
}

func renderRegStatus(w io.Writer, rows []engine.RegStatusRow) {
	fmt.Fprintln(w, "\nBusy register status:")
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "Reg\tROB")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", isa.RegName(row.Register), row.ROBIndex)
	}
	_ = tw.Flush()
}

func stamp(cycle int) string {
	if cycle < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", cycle)
}

func tag(robIndex int) string {
	if robIndex < 0 {
		return "-"
	}
	return fmt.Sprintf("ROB%d", robIndex)
}

func stateName(s engine.ROBState) string {
	switch s {
	case engine.Empty:
		return "Empty"
	case engine.Issued:
		return "Issued"
	case engine.Executing:
		return "Executing"
	case engine.WroteResult:
		return "WroteResult"
	default:
		return "?"
	}
}
