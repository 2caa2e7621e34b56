package pdr

import "github.com/goatx/pdr/formula"

// ConditionName represents the identifier for a condition.
type ConditionName string

// PostCondition names the Post formula of a System when reporting violated
// conditions.
const PostCondition ConditionName = "post"

// Condition represents a named predicate over the state variables of a
// system. A condition holds in a state when its formula is true there.
type Condition interface {
	Name() ConditionName
	Formula() formula.Formula
}

type condition struct {
	name ConditionName
	f    formula.Formula
}

func (c condition) Name() ConditionName      { return c.name }
func (c condition) Formula() formula.Formula { return c.f }

// NewCondition creates a condition from a formula over state variables and
// inputs.
//
// Parameters:
//   - name: The condition name
//   - f: The formula that holds in the states satisfying the condition
//
// Returns a Condition that can be used with Check (for example via
// WithRules(Always(...))).
//
// Example:
//
//	mutex := pdr.NewCondition("mutex", formula.Not(formula.And(a, b)))
func NewCondition(name string, f formula.Formula) Condition {
	if f == nil {
		f = formula.True
	}
	return condition{name: ConditionName(name), f: f}
}

// BoolCondition creates a condition from a constant boolean value.
// This is useful for conditions that always pass (true) or always fail
// (false), typically in tests.
//
// Example:
//
//	alwaysPass := pdr.BoolCondition("pass", true)
//	alwaysFail := pdr.BoolCondition("fail", false)
func BoolCondition(name string, b bool) Condition {
	return condition{name: ConditionName(name), f: formula.Const(b)}
}
