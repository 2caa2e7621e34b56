// Package solver implements the formula engine used by the PDR checker on top
// of third-party SAT solvers.
//
// Each backend decides the satisfiability of a formula by encoding it to CNF
// and handing the clauses to its solver. Backends keep no state between
// queries: every call builds and solves a fresh problem.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goatx/pdr/formula"
)

// ErrUnknown is returned when a solver gives up without deciding a query.
var ErrUnknown = errors.New("satisfiability unknown")

// Backend is a formula engine backed by a SAT solver.
type Backend interface {
	// CheckSat decides f. On SAT it returns a model binding every variable
	// of f and true; on UNSAT it returns nil and false.
	CheckSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error)
	// Substitute renames variables of f simultaneously.
	Substitute(f formula.Formula, pairs []formula.Pair) formula.Formula
	// Simplify returns a smaller formula equivalent to f.
	Simplify(f formula.Formula) formula.Formula
	// SolveDimacs decides the DIMACS CNF problem read from r.
	SolveDimacs(ctx context.Context, r io.Reader) (bool, error)
}

var backends = map[string]func() Backend{
	"gophersat": func() Backend { return NewGophersat() },
	"gini":      func() Backend { return NewGini() },
}

// DefaultName is the backend used when none is requested.
const DefaultName = "gophersat"

// New returns the backend registered under name.
func New(name string) (Backend, error) {
	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q (available: %v)", name, Names())
	}
	return mk(), nil
}

// Names lists the registered backends.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type substituter struct{}

func (substituter) Substitute(f formula.Formula, pairs []formula.Pair) formula.Formula {
	return formula.Substitute(f, pairs)
}

func (substituter) Simplify(f formula.Formula) formula.Formula {
	return Simplify(f)
}
