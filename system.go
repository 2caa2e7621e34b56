package pdr

import (
	"errors"
	"fmt"

	"github.com/goatx/pdr/formula"
)

// ErrInvalidSystem is returned by New when a System cannot be checked.
var ErrInvalidSystem = errors.New("invalid transition system")

// System is a boolean transition system together with the safety property
// that must hold in every reachable state.
//
// Vars and Primes are paired by position: Primes[i] is the next-state copy of
// Vars[i]. Init and Post range over Vars, Trans over Vars and Primes. Any other
// variable in Trans or Post is a free input, existentially quantified at every
// step and never part of a cube.
type System struct {
	Vars   []formula.Var
	Primes []formula.Var
	Init   formula.Formula
	Trans  formula.Formula
	// Post may be nil when the property is given by rules instead, see
	// WithRules.
	Post formula.Formula
}

// Primed returns the next-state copies of vars, named by formula.Prime.
func Primed(vars []formula.Var) []formula.Var {
	primes := make([]formula.Var, len(vars))
	for i, v := range vars {
		primes[i] = formula.Prime(v)
	}
	return primes
}

func (s System) validate(hasRules bool) error {
	if len(s.Vars) == 0 {
		return fmt.Errorf("%w: no state variables", ErrInvalidSystem)
	}
	if len(s.Vars) != len(s.Primes) {
		return fmt.Errorf("%w: %d state variables but %d primed variables", ErrInvalidSystem, len(s.Vars), len(s.Primes))
	}
	state := make(map[formula.Var]bool, len(s.Vars))
	for _, v := range s.Vars {
		if state[v] {
			return fmt.Errorf("%w: duplicate state variable %s", ErrInvalidSystem, v)
		}
		state[v] = true
	}
	primes := make(map[formula.Var]bool, len(s.Primes))
	for _, p := range s.Primes {
		if state[p] {
			return fmt.Errorf("%w: primed variable %s is also a state variable", ErrInvalidSystem, p)
		}
		if primes[p] {
			return fmt.Errorf("%w: duplicate primed variable %s", ErrInvalidSystem, p)
		}
		primes[p] = true
	}
	if s.Init == nil {
		return fmt.Errorf("%w: no initial-states formula", ErrInvalidSystem)
	}
	if s.Trans == nil {
		return fmt.Errorf("%w: no transition relation", ErrInvalidSystem)
	}
	if s.Post == nil && !hasRules {
		return fmt.Errorf("%w: no safety property", ErrInvalidSystem)
	}
	return nil
}

func (s System) pairs() []formula.Pair {
	return formula.Pairs(s.Vars, s.Primes)
}
