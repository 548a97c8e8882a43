package engine

import "github.com/archlab/tomasim/isa"

// NoTag marks a Qj/Qk operand slot as empty — the paired V field holds the
// meaningful value instead. Per the tag-space design note, tags are ROB
// indices, not strings: the ROB index alone identifies the producer for
// the instruction's entire lifetime in the machine.
const NoTag = -1

// Station is one reservation-station buffer. Exactly one of (Vj, Qj) is
// meaningful at a time, and likewise for (Vk, Qk).
type Station struct {
	// Busy is true while this station holds an issued, not-yet-completed
	// instruction.
	Busy bool
	// Op is the instruction's operation kind.
	Op isa.Kind
	// Vj, Vk are the operand values once known.
	Vj, Vk int
	// Qj, Qk are the producing ROB indices while an operand is pending,
	// or NoTag once resolved.
	Qj, Qk int
	// DestRob is the ROB slot this station will write its result into.
	DestRob int
	// A is the sign-extended offset for LOAD/STORE.
	A int
	// InstructionIndex back-points to the owning program instruction.
	InstructionIndex int
	// InFlight is true once the station has been dispatched into the
	// functional-unit tracker, sidestepping a linear "already executing?"
	// scan over the tracker on every cycle.
	InFlight bool
}

// free resets s to an unused station.
func (s *Station) free() {
	*s = Station{}
}

// ready reports whether both operands are known and the station has not
// already been dispatched.
func (s *Station) ready() bool {
	return s.Busy && !s.InFlight && s.Qj == NoTag && s.Qk == NoTag
}

// Group is one functional-unit class's pool of reservation stations:
// ADD (shared by ADD/SUB), MUL (shared by MUL/DIV), LOAD, or STORE.
type Group struct {
	stations []*Station
}

// NewGroup creates a Group with n free stations.
func NewGroup(n int) *Group {
	g := &Group{stations: make([]*Station, n)}
	for i := range g.stations {
		g.stations[i] = &Station{}
	}
	return g
}

// Stations exposes the underlying stations for iteration.
func (g *Group) Stations() []*Station { return g.stations }

// AllocFree returns a free station in this group and marks it busy, or
// (nil, false) if the group is full — a structural stall.
func (g *Group) AllocFree() (*Station, bool) {
	for _, s := range g.stations {
		if !s.Busy {
			s.Busy = true
			return s, true
		}
	}
	return nil, false
}

// FindByInstruction returns the station holding instructionIndex, if any.
func (g *Group) FindByInstruction(instructionIndex int) (*Station, bool) {
	for _, s := range g.stations {
		if s.Busy && s.InstructionIndex == instructionIndex {
			return s, true
		}
	}
	return nil, false
}
