package engine

import "github.com/archlab/tomasim/latency"

// Default pool sizes from spec.md §6.
const (
	DefaultROBSize      = 16
	DefaultAddStations   = 3
	DefaultMulStations   = 2
	DefaultLoadStations  = 3
	DefaultStoreStations = 3
)

// settings holds the construction-time configuration an Option mutates.
type settings struct {
	robSize      int
	addCount     int
	mulCount     int
	loadCount    int
	storeCount   int
	table        *latency.Table
}

func defaultSettings() settings {
	return settings{
		robSize:    DefaultROBSize,
		addCount:   DefaultAddStations,
		mulCount:   DefaultMulStations,
		loadCount:  DefaultLoadStations,
		storeCount: DefaultStoreStations,
		table:      latency.NewTable(),
	}
}

// Option configures an Engine at construction time.
type Option func(*settings)

// WithROBSize overrides the number of reorder-buffer slots.
func WithROBSize(n int) Option {
	return func(s *settings) { s.robSize = n }
}

// WithRSCounts overrides the number of reservation stations in each of
// the four functional-unit groups.
func WithRSCounts(add, mul, load, store int) Option {
	return func(s *settings) {
		s.addCount = add
		s.mulCount = mul
		s.loadCount = load
		s.storeCount = store
	}
}

// WithLatencyTable overrides the functional-unit latency table, e.g. to
// load one from a JSON config file.
func WithLatencyTable(table *latency.Table) Option {
	return func(s *settings) { s.table = table }
}
