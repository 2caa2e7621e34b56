package main

import (
	"context"
	"os"

	"github.com/goatx/pdr"
	"github.com/goatx/pdr/formula"
)

// Bits of the counter.
var (
	lo = formula.Var("lo")
	hi = formula.Var("hi")
)

// createCounterModel counts up from 0 on two bits. Post claims the counter
// never reaches 3, which it does after three steps.
func createCounterModel() (pdr.System, []pdr.Option) {
	vars := []formula.Var{hi, lo}
	sys := pdr.System{
		Vars:   vars,
		Primes: pdr.Primed(vars),
		Init:   formula.And(formula.Eq(hi, false), formula.Eq(lo, false)),
		Trans: formula.And(
			formula.Iff(formula.Prime(lo), formula.Not(lo)),
			// hi flips when lo carries.
			formula.Iff(formula.Prime(hi), formula.Not(formula.Iff(hi, lo))),
		),
		Post: formula.Not(formula.And(hi, lo)),
	}
	return sys, nil
}

func main() {
	sys, opts := createCounterModel()
	if err := pdr.Report(context.Background(), os.Stdout, sys, opts...); err != nil {
		panic(err)
	}
}
