package engine

import "github.com/archlab/tomasim/isa"

// numRegisters is the size of the architectural register file, F0..F31.
const numRegisters = isa.NumRegisters

// RegFile is the architectural floating-point register file. Every
// register starts at 10, per spec.md §2.
type RegFile struct {
	regs [numRegisters]int
}

// NewRegFile creates a register file with every register initialized to 10.
func NewRegFile() *RegFile {
	rf := &RegFile{}
	for i := range rf.regs {
		rf.regs[i] = 10
	}
	return rf
}

// Read returns the current value of register r.
func (rf *RegFile) Read(r uint8) int {
	return rf.regs[r]
}

// Write sets register r to value.
func (rf *RegFile) Write(r uint8, value int) {
	rf.regs[r] = value
}

// Snapshot returns a copy of every register value, indexed by register number.
func (rf *RegFile) Snapshot() [numRegisters]int {
	return rf.regs
}

// RegStatusEntry records whether an architectural register is waiting on
// an in-flight instruction and, if so, which ROB slot will produce it.
type RegStatusEntry struct {
	// Busy is true while a not-yet-committed instruction owns this register.
	Busy bool
	// ROBIndex is the ROB slot that will supply the pending value.
	// Only meaningful when Busy is true.
	ROBIndex int
}

// RegStatusTable is the register-alias table used for renaming: for each
// architectural register, it names the ROB entry that will produce its
// next value.
type RegStatusTable struct {
	entries [numRegisters]RegStatusEntry
}

// NewRegStatusTable creates a register status table with every register free.
func NewRegStatusTable() *RegStatusTable {
	return &RegStatusTable{}
}

// Get returns the status entry for register r.
func (t *RegStatusTable) Get(r uint8) RegStatusEntry {
	return t.entries[r]
}

// SetBusy marks register r as renamed to robIndex. This unconditionally
// overwrites any prior mapping, implementing WAW/WAR hazard removal:
// the most recent Issue always wins.
func (t *RegStatusTable) SetBusy(r uint8, robIndex int) {
	t.entries[r] = RegStatusEntry{Busy: true, ROBIndex: robIndex}
}

// ClearIfOwner frees register r's status entry, but only if it still
// points at robIndex. A later Issue may have already retargeted the
// register to a newer ROB slot, in which case this is a no-op: see the
// commit-vs-rename race in spec.md §9.
func (t *RegStatusTable) ClearIfOwner(r uint8, robIndex int) {
	if t.entries[r].Busy && t.entries[r].ROBIndex == robIndex {
		t.entries[r] = RegStatusEntry{}
	}
}

// BusyRegisters returns the register indices currently renamed, for the
// snapshot accessor (which reports only busy rows, per spec.md §6).
func (t *RegStatusTable) BusyRegisters() []uint8 {
	var out []uint8
	for i, e := range t.entries {
		if e.Busy {
			out = append(out, uint8(i))
		}
	}
	return out
}
