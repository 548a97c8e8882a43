package latency

import "github.com/archlab/tomasim/isa"

// Table provides functional-unit latency lookups by instruction kind.
type Table struct {
	config *Config
}

// NewTable creates a Table with the default latency values.
func NewTable() *Table {
	return &Table{config: DefaultConfig()}
}

// NewTableWithConfig creates a Table backed by a custom Config.
func NewTableWithConfig(config *Config) *Table {
	return &Table{config: config}
}

// GetLatency returns the number of cycles the functional unit needs to
// execute an instruction of the given kind once its operands are ready.
func (t *Table) GetLatency(kind isa.Kind) uint64 {
	switch kind {
	case isa.ADD, isa.SUB:
		return t.config.ALULatency
	case isa.MUL:
		return t.config.MulLatency
	case isa.DIV:
		return t.config.DivLatency
	case isa.LOAD:
		return t.config.LoadLatency
	case isa.STORE:
		return t.config.StoreLatency
	default:
		return 1
	}
}

// Config returns the latency configuration backing this table.
func (t *Table) Config() *Config {
	return t.config
}
