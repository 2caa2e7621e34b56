package main

import (
	"context"
	"os"

	"github.com/goatx/pdr"
	"github.com/goatx/pdr/formula"
)

// createToggleModel flips a single bit x at every step. The rule claims x
// stays low, which fails after one step.
func createToggleModel() (pdr.System, []pdr.Option) {
	x := formula.Var("x")
	vars := []formula.Var{x}
	sys := pdr.System{
		Vars:   vars,
		Primes: pdr.Primed(vars),
		Init:   formula.Eq(x, false),
		Trans:  formula.Iff(formula.Prime(x), formula.Not(x)),
	}

	low := pdr.NewCondition("low", formula.Eq(x, false))
	opts := []pdr.Option{
		pdr.WithRules(pdr.Always(low)),
	}
	return sys, opts
}

func main() {
	sys, opts := createToggleModel()
	if err := pdr.Report(context.Background(), os.Stdout, sys, opts...); err != nil {
		panic(err)
	}
}
