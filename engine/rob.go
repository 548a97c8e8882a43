package engine

import "github.com/archlab/tomasim/isa"

// ROBState is the lifecycle state of a reorder-buffer entry.
type ROBState int

const (
	// Empty means the slot holds no instruction.
	Empty ROBState = iota
	// Issued means the instruction has been renamed into the ROB but has
	// not yet started execution.
	Issued
	// Executing means the instruction's functional unit is running.
	Executing
	// WroteResult means the result has been broadcast and the slot is
	// waiting to reach the ROB head to commit.
	WroteResult
)

// Entry is one reorder-buffer slot.
type Entry struct {
	// Busy is true while the slot is occupied.
	Busy bool
	// InstructionIndex is the program-order index of the held instruction.
	InstructionIndex int
	// Kind mirrors the instruction's operation.
	Kind isa.Kind
	// State is the entry's lifecycle state.
	State ROBState
	// HasDest is true for arithmetic/LOAD entries (false for STORE).
	HasDest bool
	// DestinationRegister is the architectural register this entry writes,
	// meaningful only when HasDest is true.
	DestinationRegister uint8
	// Value is the computed result (arithmetic/LOAD) or the pending store
	// data (STORE).
	Value int
	// Address is the effective address for LOAD/STORE.
	Address int
	// ValueReady is true once Value holds a meaningful result.
	ValueReady bool
}

// reset clears e back to an empty slot.
func (e *Entry) reset() {
	*e = Entry{}
}

// ROB is the fixed-size circular reorder buffer that preserves program
// order from Issue to Commit.
type ROB struct {
	entries          []Entry
	head, tail       int
	entriesAvailable int
}

// NewROB creates an ROB with the given number of slots.
func NewROB(size int) *ROB {
	return &ROB{
		entries:          make([]Entry, size),
		entriesAvailable: size,
	}
}

// Size returns the total number of ROB slots.
func (r *ROB) Size() int { return len(r.entries) }

// Full reports whether there is no free tail slot.
func (r *ROB) Full() bool { return r.entriesAvailable == 0 }

// EmptyQueue reports whether the ROB holds no in-flight instructions.
func (r *ROB) EmptyQueue() bool { return r.entriesAvailable == len(r.entries) }

// Head returns the index of the oldest (possibly empty) slot.
func (r *ROB) Head() int { return r.head }

// Tail returns the index of the next slot Issue would allocate.
func (r *ROB) Tail() int { return r.tail }

// Available returns the number of free slots.
func (r *ROB) Available() int { return r.entriesAvailable }

// At returns a pointer to the entry at index i so callers can read or
// mutate it in place.
func (r *ROB) At(i int) *Entry { return &r.entries[i] }

// Alloc reserves the tail slot for instructionIndex/kind and advances the
// tail. The caller must have checked Full() first.
func (r *ROB) Alloc(instructionIndex int, kind isa.Kind, hasDest bool, destReg uint8) int {
	idx := r.tail
	r.entries[idx] = Entry{
		Busy:                true,
		InstructionIndex:    instructionIndex,
		Kind:                kind,
		State:                Issued,
		HasDest:              hasDest,
		DestinationRegister: destReg,
	}
	r.tail = (r.tail + 1) % len(r.entries)
	r.entriesAvailable--
	return idx
}

// Release frees the head slot and advances head. The caller must have
// verified the head is committable first.
func (r *ROB) Release() {
	r.entries[r.head].reset()
	r.head = (r.head + 1) % len(r.entries)
	r.entriesAvailable++
}
