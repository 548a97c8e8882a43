package engine

import "github.com/archlab/tomasim/isa"

// WriteResultStage pops at most one finished instruction off the CDB each
// cycle, computes its result, broadcasts it to every waiting reservation
// station, and releases the producing station. See spec.md §4.4.
type WriteResultStage struct {
	cdb    *CDB
	rob    *ROB
	groups map[isa.Kind]*Group
	memory *Memory
	diag   *diagnostics
}

// NewWriteResultStage creates a WriteResultStage wired to the engine's
// shared state.
func NewWriteResultStage(cdb *CDB, rob *ROB, groups map[isa.Kind]*Group, memory *Memory, diag *diagnostics) *WriteResultStage {
	return &WriteResultStage{cdb: cdb, rob: rob, groups: groups, memory: memory, diag: diag}
}

// WriteResult drains at most one CDB entry, computing and broadcasting
// its result.
func (s *WriteResultStage) WriteResult(cycle int, program []*isa.Instruction) {
	robIndex, ok := s.cdb.Dequeue()
	if !ok {
		return
	}

	entry := s.rob.At(robIndex)

	station, found := findStationByInstruction(s.groups, entry.InstructionIndex)
	if !found {
		s.diag.report(cycle, "internal: no reservation station holds instruction %d at write-result", entry.InstructionIndex)
		return
	}

	inst := program[entry.InstructionIndex]
	inst.WriteResult = cycle

	result := s.compute(cycle, station, entry)

	entry.Value = result
	entry.ValueReady = true
	entry.State = WroteResult

	s.broadcast(robIndex, result)

	station.free()
}

// compute applies station's operation to its captured operands, handling
// the divide-by-zero and out-of-range-address diagnostics from spec.md §7.
func (s *WriteResultStage) compute(cycle int, station *Station, entry *Entry) int {
	switch station.Op {
	case isa.ADD:
		return station.Vj + station.Vk
	case isa.SUB:
		return station.Vj - station.Vk
	case isa.MUL:
		return station.Vj * station.Vk
	case isa.DIV:
		if station.Vk == 0 {
			s.diag.report(cycle, "divide by zero in instruction %d", entry.InstructionIndex)
			return 0
		}
		return station.Vj / station.Vk
	case isa.LOAD:
		addr := station.A + station.Vk
		entry.Address = addr
		if !s.memory.InBounds(addr) {
			s.diag.report(cycle, "load address %d out of range in instruction %d", addr, entry.InstructionIndex)
			return 0
		}
		return s.memory.Read(addr)
	case isa.STORE:
		addr := station.A + station.Vk
		entry.Address = addr
		return station.Vj
	default:
		return 0
	}
}

// broadcast walks every busy reservation station and resolves any operand
// tagged with robIndex. A STORE whose data operand (Qj) resolves this way
// also mirrors the value into its own ROB entry, per the single
// STORE-data-readiness consolidation point described in spec.md §9.
func (s *WriteResultStage) broadcast(robIndex int, result int) {
	for _, group := range groupOrder(s.groups) {
		for _, st := range group.Stations() {
			if !st.Busy {
				continue
			}
			if st.Qj == robIndex {
				st.Vj = result
				st.Qj = NoTag
				if st.Op == isa.STORE {
					mirrorStoreData(s.rob.At(st.DestRob), result)
				}
			}
			if st.Qk == robIndex {
				st.Vk = result
				st.Qk = NoTag
			}
		}
	}
}

// findStationByInstruction locates the reservation station holding
// instructionIndex across all four station groups, per spec.md §4.4.
func findStationByInstruction(groups map[isa.Kind]*Group, instructionIndex int) (*Station, bool) {
	for _, group := range groupOrder(groups) {
		if st, ok := group.FindByInstruction(instructionIndex); ok {
			return st, true
		}
	}
	return nil, false
}
