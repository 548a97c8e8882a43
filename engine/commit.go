package engine

import "github.com/archlab/tomasim/isa"

// CommitStage applies the ROB head's effect to architectural state, in
// program order, and frees its slot. See spec.md §4.5.
type CommitStage struct {
	rob       *ROB
	regs      *RegFile
	regStatus *RegStatusTable
	memory    *Memory
	diag      *diagnostics
}

// NewCommitStage creates a CommitStage wired to the engine's shared state.
func NewCommitStage(rob *ROB, regs *RegFile, regStatus *RegStatusTable, memory *Memory, diag *diagnostics) *CommitStage {
	return &CommitStage{rob: rob, regs: regs, regStatus: regStatus, memory: memory, diag: diag}
}

// Commit inspects the ROB head and, if it has produced a result, applies
// it to the register file or memory and frees the slot. A STORE whose
// data is still pending blocks every younger instruction from committing.
func (s *CommitStage) Commit(cycle int, program []*isa.Instruction) {
	if s.rob.EmptyQueue() {
		return
	}

	head := s.rob.Head()
	entry := s.rob.At(head)

	if !entry.Busy || entry.State != WroteResult {
		return
	}

	if entry.Kind == isa.STORE && !entry.ValueReady {
		return
	}

	program[entry.InstructionIndex].Commit = cycle

	if entry.HasDest {
		s.regs.Write(entry.DestinationRegister, entry.Value)
		s.regStatus.ClearIfOwner(entry.DestinationRegister, head)
	} else if s.memory.InBounds(entry.Address) {
		s.memory.Write(entry.Address, entry.Value)
	} else {
		s.diag.report(cycle, "store address %d out of range in instruction %d, skipping memory write", entry.Address, entry.InstructionIndex)
	}

	s.rob.Release()
}
