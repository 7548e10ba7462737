// Package query runs keyed fetches whose results are consumed by a
// single-threaded UI loop.
//
// A Query is mutated only by its owner (Execute, Resolve, Cancel). The Task
// returned by Execute is the only part that runs elsewhere; it touches nothing
// but its own captured values and reports back through a Resolution tagged
// with the generation that issued it. Resolutions from older generations are
// dropped.
package query

// Status is the phase of a Result.
type Status int

const (
	// Idle means the query was skipped or never executed.
	Idle Status = iota
	Pending
	Ok
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Ok:
		return "ok"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is the observable state of a query.
type Result[T any] struct {
	Status Status
	Data   T
	Err    error
}

func (r Result[T]) Loading() bool { return r.Status == Pending }

// Value returns the data only once the query resolved successfully.
func (r Result[T]) Value() (T, bool) {
	if r.Status != Ok {
		var zero T
		return zero, false
	}
	return r.Data, true
}
