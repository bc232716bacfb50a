package picking

// EventKind names a degradation path taken by the engine.
type EventKind string

const (
	// EventHeaderFallback: a semantic column label was not found in the
	// header row and the positional default was used.
	EventHeaderFallback EventKind = "header_fallback"

	// EventHeaderAmbiguous: a label occurs more than once in the header row.
	EventHeaderAmbiguous EventKind = "header_ambiguous"

	// EventNoMasterMatch: neither the product SKU nor the SKU management
	// number matched a master row.
	EventNoMasterMatch EventKind = "no_master_match"

	// EventMigrationMiss: the matched row names a migration source but no
	// row carries it as migration target. The original row is kept.
	EventMigrationMiss EventKind = "migration_miss"

	// EventMigrationChainTruncated: the migration target itself names a
	// further source. Only one hop is followed.
	EventMigrationChainTruncated EventKind = "migration_chain_truncated"

	// EventZeroQuantity: the order quantity parsed as 0 and the line was
	// skipped.
	EventZeroQuantity EventKind = "zero_quantity"
)

// Event describes one degradation. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// Field and Label identify the master column for header events.
	Field  Field
	Label  string
	Column int

	// SKU, OrderID and SourceRow identify the order line for line events.
	SKU       string
	OrderID   string
	SourceRow int

	// Value carries the offending value (migration key, raw quantity).
	Value string
}

// Diagnostics receives degradation events. Implementations must not affect
// the computation; they exist for operability only.
type Diagnostics interface {
	Report(Event)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

// Report implements Diagnostics.
func (NopDiagnostics) Report(Event) {}

// Recorder keeps every reported event in order. Not safe for concurrent use.
type Recorder struct {
	Events []Event
}

// Report implements Diagnostics.
func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// multiDiagnostics fans one event out to several sinks.
type multiDiagnostics []Diagnostics

func (m multiDiagnostics) Report(e Event) {
	for _, d := range m {
		d.Report(e)
	}
}

// Tee returns a Diagnostics that forwards every event to all given sinks.
// Nil sinks are skipped.
func Tee(sinks ...Diagnostics) Diagnostics {
	var out multiDiagnostics
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return NopDiagnostics{}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
