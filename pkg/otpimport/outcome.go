package otpimport

import "log/slog"

// Status classifies the handling of one item.
type Status int

const (
	StatusSuccess Status = iota
	StatusDuplicate
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDuplicate:
		return "duplicate"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result is the classification of a single item.
type Result struct {
	Status Status
	Item   string
	Reason string // empty on success
}

// Failure is an item that was not imported, as written to the report.
type Failure struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// Report lists failed items by kind.
type Report struct {
	Invalid   []Failure `json:"invalid"`
	Duplicate []Failure `json:"duplicate"`
}

// Outcome aggregates the results of one batch.
type Outcome struct {
	Success   int
	Duplicate int
	Invalid   int
	Report    Report
}

func newOutcome() Outcome {
	return Outcome{Report: Report{Invalid: []Failure{}, Duplicate: []Failure{}}}
}

// Total is the number of items that were classified.
func (o Outcome) Total() int { return o.Success + o.Duplicate + o.Invalid }

// HasFailures reports whether any item was rejected.
func (o Outcome) HasFailures() bool { return o.Duplicate+o.Invalid > 0 }

// LogValue implements slog.LogValuer.
func (o Outcome) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("success", o.Success),
		slog.Int("duplicate", o.Duplicate),
		slog.Int("invalid", o.Invalid),
	)
}

func (o *Outcome) add(r Result) {
	switch r.Status {
	case StatusSuccess:
		o.Success++
	case StatusDuplicate:
		o.Duplicate++
		o.Report.Duplicate = append(o.Report.Duplicate, Failure{Item: r.Item, Reason: r.Reason})
	case StatusInvalid:
		o.Invalid++
		o.Report.Invalid = append(o.Report.Invalid, Failure{Item: r.Item, Reason: r.Reason})
	}
}
