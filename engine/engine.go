// Package engine implements the Tomasulo scheduling engine: the
// reservation-station pool, the reorder buffer, the register-status
// table, the common data bus, and the per-cycle pipeline driver that
// advances Commit, Write-Result, Issue, Execute-Start and Execute-Advance
// in that order. It is a deterministic, single-threaded, cooperative
// stepper — one Step() call advances exactly one cycle.
package engine

import "github.com/archlab/tomasim/isa"

// Engine is the full microarchitectural state of the simulated datapath.
type Engine struct {
	program []*isa.Instruction
	pc      int
	cycle   int

	regs      *RegFile
	regStatus *RegStatusTable
	memory    *Memory
	rob       *ROB

	addGroup   *Group
	mulGroup   *Group
	loadGroup  *Group
	storeGroup *Group

	fu  *FUTracker
	cdb *CDB

	diag diagnostics

	issueStage       *IssueStage
	executeStage     *ExecuteStage
	writeResultStage *WriteResultStage
	commitStage      *CommitStage
}

// New creates an Engine for program, with register file all-10 and memory
// mem[i]=i per spec.md §2, applying any Options given.
func New(program []*isa.Instruction, opts ...Option) *Engine {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		program:    program,
		regs:       NewRegFile(),
		regStatus:  NewRegStatusTable(),
		memory:     NewMemory(),
		rob:        NewROB(cfg.robSize),
		addGroup:   NewGroup(cfg.addCount),
		mulGroup:   NewGroup(cfg.mulCount),
		loadGroup:  NewGroup(cfg.loadCount),
		storeGroup: NewGroup(cfg.storeCount),
		fu:         NewFUTracker(),
		cdb:        NewCDB(),
	}

	groups := map[isa.Kind]*Group{
		isa.ADD:   e.addGroup,
		isa.SUB:   e.addGroup,
		isa.MUL:   e.mulGroup,
		isa.DIV:   e.mulGroup,
		isa.LOAD:  e.loadGroup,
		isa.STORE: e.storeGroup,
	}

	e.issueStage = NewIssueStage(e.rob, e.regStatus, e.regs, groups)
	e.executeStage = NewExecuteStage(e.rob, e.fu, e.cdb, groups, cfg.table)
	e.writeResultStage = NewWriteResultStage(e.cdb, e.rob, groups, e.memory, &e.diag)
	e.commitStage = NewCommitStage(e.rob, e.regs, e.regStatus, e.memory, &e.diag)

	return e
}

// Step advances the engine by exactly one cycle, running the pipeline
// stages in the order spec.md §4.6 requires: Commit, Write-Result, Issue,
// Execute-Start, Execute-Advance.
func (e *Engine) Step() {
	e.commitStage.Commit(e.cycle, e.program)
	e.writeResultStage.WriteResult(e.cycle, e.program)

	if e.pc < len(e.program) {
		if e.issueStage.Issue(e.program[e.pc], e.pc, e.cycle) {
			e.pc++
		}
	}

	e.executeStage.Start(e.cycle)
	e.executeStage.Advance(e.cycle, e.program)

	e.cycle++
}

// Done reports whether the simulation has reached the termination
// predicate of spec.md §5: every instruction has committed, the ROB, the
// functional-unit tracker and the CDB are all empty, and no un-issued
// instruction remains.
func (e *Engine) Done() bool {
	if e.pc < len(e.program) {
		return false
	}
	for _, inst := range e.program {
		if !inst.CommitSet() {
			return false
		}
	}
	return e.rob.EmptyQueue() && e.fu.Len() == 0 && e.cdb.Len() == 0
}

// Cycle returns the number of cycles executed so far.
func (e *Engine) Cycle() int { return e.cycle }

// Registers returns the current architectural register values.
func (e *Engine) Registers() [numRegisters]int { return e.regs.Snapshot() }

// MemoryAt returns the current value at addr. Used by tests to inspect
// architectural memory state.
func (e *Engine) MemoryAt(addr int) int { return e.memory.Read(addr) }
