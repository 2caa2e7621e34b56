package pdr

import (
	"context"
	"testing"

	"github.com/goatx/pdr/formula"
)

// toggleSystem flips x at every step, starting from x == false.
func toggleSystem(post formula.Formula) System {
	x := formula.Var("x")
	vars := []formula.Var{x}
	return System{
		Vars:   vars,
		Primes: Primed(vars),
		Init:   formula.Not(x),
		Trans:  formula.Iff(formula.Prime(x), formula.Not(x)),
		Post:   post,
	}
}

// counterSystem is a two-bit counter with low bit a and high bit b counting
// up from 0. It reaches a == b == true after three steps.
func counterSystem() System {
	a, b := formula.Var("a"), formula.Var("b")
	vars := []formula.Var{a, b}
	return System{
		Vars:   vars,
		Primes: Primed(vars),
		Init:   formula.And(formula.Not(a), formula.Not(b)),
		Trans: formula.And(
			formula.Iff(formula.Prime(a), formula.Not(a)),
			formula.Iff(formula.Prime(b), formula.Not(formula.Iff(b, a))),
		),
		Post: formula.Not(formula.And(a, b)),
	}
}

// alternatingSystem shifts b into a while b toggles, so a and b are never
// both true.
func alternatingSystem() System {
	a, b := formula.Var("a"), formula.Var("b")
	vars := []formula.Var{a, b}
	return System{
		Vars:   vars,
		Primes: Primed(vars),
		Init:   formula.And(formula.Not(a), formula.Not(b)),
		Trans: formula.And(
			formula.Iff(formula.Prime(a), b),
			formula.Iff(formula.Prime(b), formula.Not(b)),
		),
		Post: formula.Not(formula.And(a, b)),
	}
}

// cube builds a cube tagged with frame t from literal values.
func cube(t int, values map[formula.Var]bool) Cube {
	vars := make([]formula.Var, 0, len(values))
	for v := range values {
		vars = append(vars, v)
	}
	return newCube(formula.Model(values), vars, t, true)
}

// implies decides f ⇒ g over vars by enumerating assignments.
func implies(t *testing.T, vars []formula.Var, f, g formula.Formula) bool {
	t.Helper()
	for bits := 0; bits < 1<<len(vars); bits++ {
		m := make(formula.Model, len(vars))
		for i, v := range vars {
			m[v] = bits&(1<<i) != 0
		}
		fv, err := formula.Eval(f, m)
		if err != nil {
			t.Fatal(err)
		}
		gv, err := formula.Eval(g, m)
		if err != nil {
			t.Fatal(err)
		}
		if fv && !gv {
			return false
		}
	}
	return true
}

func newTestChecker(t *testing.T, sys System, opts ...Option) *Checker {
	t.Helper()
	c, err := New(sys, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// fakeEngine delegates to the default engine unless checkSat is set.
type fakeEngine struct {
	Engine
	checkSat func(ctx context.Context, f formula.Formula) (formula.Model, bool, error)
}

func (e fakeEngine) CheckSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error) {
	if e.checkSat != nil {
		return e.checkSat(ctx, f)
	}
	return e.Engine.CheckSat(ctx, f)
}
