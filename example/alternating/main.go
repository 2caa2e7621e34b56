package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/goatx/pdr"
	"github.com/goatx/pdr/formula"
)

// createAlternatingModel toggles b and shifts its old value into a, so a and
// b are never both set. Proving it takes one blocked cube.
func createAlternatingModel() (pdr.System, []pdr.Option) {
	a, b := formula.Var("a"), formula.Var("b")
	vars := []formula.Var{a, b}
	sys := pdr.System{
		Vars:   vars,
		Primes: pdr.Primed(vars),
		Init:   formula.And(formula.Not(a), formula.Not(b)),
		Trans: formula.And(
			formula.Iff(formula.Prime(a), b),
			formula.Iff(formula.Prime(b), formula.Not(b)),
		),
	}

	exclusive := pdr.NewCondition("exclusive", formula.Not(formula.And(a, b)))
	opts := []pdr.Option{
		pdr.WithRules(pdr.Always(exclusive)),
	}
	return sys, opts
}

func main() {
	sys, opts := createAlternatingModel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append(opts, pdr.WithLogger(logger))
	if err := pdr.Report(context.Background(), os.Stdout, sys, opts...); err != nil {
		panic(err)
	}
}
