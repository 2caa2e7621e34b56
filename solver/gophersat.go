package solver

import (
	"context"
	"fmt"
	"io"

	gsat "github.com/crillab/gophersat/solver"

	"github.com/goatx/pdr/formula"
	"github.com/goatx/pdr/internal/cnf"
)

// Gophersat decides formulas with the gophersat CDCL solver.
//
// gophersat cannot be interrupted once a search has started, so the context is
// only consulted before and after each solve.
type Gophersat struct {
	substituter
}

// NewGophersat returns a gophersat backend.
func NewGophersat() *Gophersat {
	return &Gophersat{}
}

// CheckSat implements Backend.
func (g *Gophersat) CheckSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c := cnf.Encode(f)
	s := gsat.New(gsat.ParseSlice(c.Clauses))
	status := s.Solve()
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	switch status {
	case gsat.Sat:
		values := s.Model()
		return c.Model(func(idx int) bool {
			return idx-1 < len(values) && values[idx-1]
		}), true, nil
	case gsat.Unsat:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("gophersat: status %v: %w", status, ErrUnknown)
	}
}

// SolveDimacs implements Backend.
func (g *Gophersat) SolveDimacs(ctx context.Context, r io.Reader) (bool, error) {
	pb, err := gsat.ParseCNF(r)
	if err != nil {
		return false, fmt.Errorf("could not parse DIMACS problem: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	switch status := gsat.New(pb).Solve(); status {
	case gsat.Sat:
		return true, nil
	case gsat.Unsat:
		return false, nil
	default:
		return false, fmt.Errorf("gophersat: status %v: %w", status, ErrUnknown)
	}
}
