package engine

import "github.com/archlab/tomasim/isa"

// IssueStage renames one instruction into a free ROB slot and reservation
// station per cycle, capturing operands with early forwarding from the
// ROB when a producer has already written its result. See spec.md §4.1.
type IssueStage struct {
	rob       *ROB
	regStatus *RegStatusTable
	regs      *RegFile
	groups    map[isa.Kind]*Group
}

// NewIssueStage creates an IssueStage wired to the engine's shared state.
func NewIssueStage(rob *ROB, regStatus *RegStatusTable, regs *RegFile, groups map[isa.Kind]*Group) *IssueStage {
	return &IssueStage{rob: rob, regStatus: regStatus, regs: regs, groups: groups}
}

// Issue attempts to issue inst (program index instructionIndex). It
// returns false without changing any state if the ROB or the matching
// reservation-station group is full: a structural stall.
func (s *IssueStage) Issue(inst *isa.Instruction, instructionIndex int, cycle int) bool {
	group := s.groups[inst.Kind]

	if s.rob.Full() || !group.hasFree() {
		return false
	}

	hasDest := inst.Kind != isa.STORE
	robIndex := s.rob.Alloc(instructionIndex, inst.Kind, hasDest, inst.Dest)
	inst.Issue = cycle

	station, _ := group.AllocFree()
	station.Op = inst.Kind
	station.InstructionIndex = instructionIndex
	station.DestRob = robIndex

	switch {
	case inst.Kind.IsArithmetic():
		s.captureOperand(inst.Src1, &station.Vj, &station.Qj)
		s.captureOperand(inst.Src2, &station.Vk, &station.Qk)

	case inst.Kind == isa.LOAD:
		station.A = inst.Offset
		station.Qj = NoTag
		s.captureOperand(inst.Base, &station.Vk, &station.Qk)

	case inst.Kind == isa.STORE:
		station.A = inst.Offset
		s.captureOperand(inst.DataSrc, &station.Vj, &station.Qj)
		s.captureOperand(inst.Base, &station.Vk, &station.Qk)
		if station.Qj == NoTag {
			mirrorStoreData(s.rob.At(robIndex), station.Vj)
		}
	}

	if hasDest {
		s.regStatus.SetBusy(inst.Dest, robIndex)
	}

	return true
}

// captureOperand resolves source register reg into either a known value
// (v) or a pending producer tag (q), forwarding directly from the ROB
// when the producer has already reached WroteResult.
func (s *IssueStage) captureOperand(reg uint8, v *int, q *int) {
	status := s.regStatus.Get(reg)
	if !status.Busy {
		*v = s.regs.Read(reg)
		*q = NoTag
		return
	}

	entry := s.rob.At(status.ROBIndex)
	if entry.Busy && entry.State == WroteResult && entry.ValueReady {
		*v = entry.Value
		*q = NoTag
		return
	}

	*q = status.ROBIndex
}

// mirrorStoreData writes a STORE's data operand into its own ROB entry as
// soon as it is known. This is the single place — per the design note in
// spec.md §9 — that keeps a STORE's ROB value in sync with its Vj,
// whether that happens at Issue (here), at Execute-Start, or on CDB
// broadcast.
func mirrorStoreData(entry *Entry, value int) {
	entry.Value = value
	entry.ValueReady = true
}

// hasFree reports whether g has an unallocated station, without mutating it.
func (g *Group) hasFree() bool {
	for _, st := range g.stations {
		if !st.Busy {
			return true
		}
	}
	return false
}
