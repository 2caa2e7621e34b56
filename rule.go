package pdr

// Rule represents a property enforced by the checker.
// Rules register conditions that every reachable state must satisfy, on top
// of the Post formula of the system.
type Rule interface {
	apply(*options)
}

type ruleFunc func(*options)

func (f ruleFunc) apply(o *options) {
	f(o)
}

// WithRules returns an Option that registers the provided rules.
//
// Parameters:
//   - rs: Rules created with helpers such as Always
//
// Returns an Option that can be supplied to Check.
//
// Example:
//
//	res, err := pdr.Check(ctx, sys,
//		pdr.WithRules(
//			pdr.Always(mutex),
//		),
//	)
func WithRules(rs ...Rule) Option {
	return optionFunc(func(o *options) {
		for _, r := range rs {
			if r == nil {
				continue
			}
			r.apply(o)
		}
	})
}

// Always returns a rule that ensures c holds in every reachable state.
//
// Parameters:
//   - c: Condition that must remain true in all reachable states
//
// Returns a Rule that can be supplied to WithRules.
func Always(c Condition) Rule {
	return ruleFunc(func(o *options) {
		if c == nil {
			return
		}
		if registerCondition(o, c) {
			o.invariants = append(o.invariants, c.Name())
		}
	})
}

// registerCondition records c under its name and reports whether the name is
// new. A later condition replaces an earlier one of the same name.
func registerCondition(o *options, c Condition) bool {
	if o.conds == nil {
		o.conds = make(map[ConditionName]Condition)
	}
	_, exists := o.conds[c.Name()]
	o.conds[c.Name()] = c
	return !exists
}

func (o *options) conditions() []Condition {
	cs := make([]Condition, 0, len(o.invariants))
	for _, name := range o.invariants {
		cs = append(cs, o.conds[name])
	}
	return cs
}
