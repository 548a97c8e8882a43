package engine

import "github.com/archlab/tomasim/isa"

// InstructionSnapshot is a structural copy of one instruction's event
// stamps, for external observers (the renderer, the stepper, tests).
type InstructionSnapshot struct {
	Index              int
	Kind               isa.Kind
	Issue              int
	ExecutionComplete  int
	WriteResult        int
	Commit             int
}

// StationSnapshot is a structural copy of one reservation station.
type StationSnapshot struct {
	Busy             bool
	Op               isa.Kind
	Vj, Vk           int
	Qj, Qk           int
	DestRob          int
	A                int
	InstructionIndex int
}

func snapshotStation(s *Station) StationSnapshot {
	return StationSnapshot{
		Busy:             s.Busy,
		Op:               s.Op,
		Vj:               s.Vj,
		Vk:               s.Vk,
		Qj:               s.Qj,
		Qk:               s.Qk,
		DestRob:          s.DestRob,
		A:                s.A,
		InstructionIndex: s.InstructionIndex,
	}
}

func snapshotGroup(g *Group) []StationSnapshot {
	out := make([]StationSnapshot, len(g.stations))
	for i, s := range g.stations {
		out[i] = snapshotStation(s)
	}
	return out
}

// ROBSnapshot is a structural copy of the reorder buffer.
type ROBSnapshot struct {
	Entries   []Entry
	Head      int
	Tail      int
	Available int
}

// RegStatusRow is one busy row of the register status table.
type RegStatusRow struct {
	Register uint8
	ROBIndex int
}

// Snapshot is a structural copy of the engine's observable state, per the
// "snapshot accessor" consumed by the renderer and the stepper (spec.md §6).
type Snapshot struct {
	Cycle           int
	Instructions    []InstructionSnapshot
	AddStations     []StationSnapshot
	MulStations     []StationSnapshot
	LoadStations    []StationSnapshot
	StoreStations   []StationSnapshot
	ROB             ROBSnapshot
	BusyRegStatus   []RegStatusRow
}

// FinalSnapshot extends Snapshot with every architectural register value,
// for the CLI's end-of-run dump.
type FinalSnapshot struct {
	Snapshot
	Registers [numRegisters]int
}

// Snapshot returns a structural copy of the engine's current state.
func (e *Engine) Snapshot() Snapshot {
	instructions := make([]InstructionSnapshot, len(e.program))
	for i, inst := range e.program {
		instructions[i] = InstructionSnapshot{
			Index:             i,
			Kind:              inst.Kind,
			Issue:             inst.Issue,
			ExecutionComplete: inst.ExecutionComplete,
			WriteResult:       inst.WriteResult,
			Commit:            inst.Commit,
		}
	}

	robEntries := make([]Entry, e.rob.Size())
	for i := range robEntries {
		robEntries[i] = *e.rob.At(i)
	}

	var regRows []RegStatusRow
	for _, r := range e.regStatus.BusyRegisters() {
		regRows = append(regRows, RegStatusRow{Register: r, ROBIndex: e.regStatus.Get(r).ROBIndex})
	}

	return Snapshot{
		Cycle:         e.cycle,
		Instructions:  instructions,
		AddStations:   snapshotGroup(e.addGroup),
		MulStations:   snapshotGroup(e.mulGroup),
		LoadStations:  snapshotGroup(e.loadGroup),
		StoreStations: snapshotGroup(e.storeGroup),
		ROB: ROBSnapshot{
			Entries:   robEntries,
			Head:      e.rob.Head(),
			Tail:      e.rob.Tail(),
			Available: e.rob.Available(),
		},
		BusyRegStatus: regRows,
	}
}

// FinalSnapshot returns a Snapshot plus the full architectural register
// file, for the CLI's end-of-run dump.
func (e *Engine) FinalSnapshot() FinalSnapshot {
	return FinalSnapshot{
		Snapshot:  e.Snapshot(),
		Registers: e.regs.Snapshot(),
	}
}
