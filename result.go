package pdr

import "github.com/goatx/pdr/formula"

// Verdict is the outcome of a run.
type Verdict string

const (
	VerdictSafe   Verdict = "safe"
	VerdictUnsafe Verdict = "unsafe"
)

// Result is either *Safe or *Unsafe.
type Result interface {
	Verdict() Verdict
	isResult()
}

// Summary holds statistics of a run.
type Summary struct {
	Frames          int   `json:"frames"`
	Queries         int   `json:"queries"`
	BlockedCubes    int   `json:"blocked_cubes"`
	MaxObligations  int   `json:"max_obligations"`
	ExecutionTimeMs int64 `json:"execution_time_ms"`
}

// Safe reports an inductive invariant: a formula that holds in every initial
// state, is closed under the transition relation, and implies the property.
type Safe struct {
	Invariant formula.Formula
	// Frame is the index of the frame that turned out to be inductive.
	Frame   int
	Summary Summary
}

// Unsafe reports a counterexample.
type Unsafe struct {
	// Trace runs from the bad cube, tagged with the last frame, back to a
	// cube of frame 0 that contains an initial state.
	Trace []Cube
	// Violated names the conditions the bad cube violates. PostCondition
	// stands for the Post formula of the system.
	Violated []ConditionName
	Summary  Summary
}

func (*Safe) Verdict() Verdict   { return VerdictSafe }
func (*Unsafe) Verdict() Verdict { return VerdictUnsafe }

func (*Safe) isResult()   {}
func (*Unsafe) isResult() {}

// Path returns the trace in execution order, initial state first.
func (u *Unsafe) Path() []Cube {
	path := make([]Cube, len(u.Trace))
	for i, c := range u.Trace {
		path[len(u.Trace)-1-i] = c
	}
	return path
}

func summaryOf(res Result) Summary {
	switch res := res.(type) {
	case *Safe:
		return res.Summary
	case *Unsafe:
		return res.Summary
	}
	return Summary{}
}
