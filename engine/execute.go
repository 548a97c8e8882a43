package engine

import (
	"github.com/archlab/tomasim/isa"
	"github.com/archlab/tomasim/latency"
)

// ExecuteStage dispatches ready reservation stations into the
// functional-unit tracker (Execute-Start, spec.md §4.2) and advances
// in-flight functional units, draining finished ones onto the CDB
// (Execute-Advance, spec.md §4.3).
type ExecuteStage struct {
	rob    *ROB
	fu     *FUTracker
	cdb    *CDB
	groups map[isa.Kind]*Group
	table  *latency.Table
}

// NewExecuteStage creates an ExecuteStage wired to the engine's shared state.
func NewExecuteStage(rob *ROB, fu *FUTracker, cdb *CDB, groups map[isa.Kind]*Group, table *latency.Table) *ExecuteStage {
	return &ExecuteStage{rob: rob, fu: fu, cdb: cdb, groups: groups, table: table}
}

// Start dispatches every reservation station whose operands are both
// ready and which is not already tracked, starting its functional-unit
// latency counter and moving its ROB entry to Executing.
func (s *ExecuteStage) Start(cycle int) {
	for _, group := range groupOrder(s.groups) {
		for _, station := range group.Stations() {
			if !station.ready() {
				continue
			}

			entry := s.rob.At(station.DestRob)

			if station.Op == isa.STORE && !entry.ValueReady {
				mirrorStoreData(entry, station.Vj)
			}

			s.fu.Start(station, station.InstructionIndex, station.DestRob, s.table.GetLatency(station.Op))
			entry.State = Executing
		}
	}
}

// Advance decrements every in-flight functional unit by one cycle,
// stamping execution-complete and enqueueing onto the CDB for any that
// finish this cycle.
func (s *ExecuteStage) Advance(cycle int, program []*isa.Instruction) {
	for _, robIndex := range s.fu.Advance() {
		instructionIndex := s.rob.At(robIndex).InstructionIndex
		program[instructionIndex].ExecutionComplete = cycle
		s.cdb.Enqueue(robIndex)
	}
}

// groupOrder returns the four reservation-station groups in a fixed,
// deterministic order (ADD, MUL, LOAD, STORE) so Start's dispatch order
// does not depend on Go's unordered map iteration.
func groupOrder(groups map[isa.Kind]*Group) []*Group {
	return []*Group{groups[isa.ADD], groups[isa.MUL], groups[isa.LOAD], groups[isa.STORE]}
}
