package engine

// fuRecord is one in-flight functional-unit record: a reservation station
// whose operands are ready, counting down its operation's latency.
type fuRecord struct {
	station          *Station
	instructionIndex int
	robIndex         int
	remaining        uint64
}

// FUTracker holds the set of functional units currently executing an
// instruction. Each busy reservation station in state Executing has at
// most one corresponding record.
type FUTracker struct {
	records []*fuRecord
}

// NewFUTracker creates an empty tracker.
func NewFUTracker() *FUTracker {
	return &FUTracker{}
}

// Start adds a new in-flight record for station, which must not already be
// tracked (callers check Station.InFlight first).
func (t *FUTracker) Start(station *Station, instructionIndex, robIndex int, latency uint64) {
	station.InFlight = true
	t.records = append(t.records, &fuRecord{
		station:          station,
		instructionIndex: instructionIndex,
		robIndex:         robIndex,
		remaining:        latency,
	})
}

// Len reports how many functional units are currently in flight.
func (t *FUTracker) Len() int { return len(t.records) }

// Advance decrements every in-flight counter by one cycle and returns the
// ROB indices of any records that have now finished (for the caller to
// enqueue onto the CDB), removing them from the tracker. Multiple records
// may finish in the same cycle; they are returned in tracker order, per
// spec.md §4.3's tie-breaking rule.
func (t *FUTracker) Advance() []int {
	var finished []int
	remaining := t.records[:0]
	for _, rec := range t.records {
		if rec.remaining > 0 {
			rec.remaining--
		}
		if rec.remaining == 0 {
			finished = append(finished, rec.robIndex)
			continue
		}
		remaining = append(remaining, rec)
	}
	t.records = remaining
	return finished
}
