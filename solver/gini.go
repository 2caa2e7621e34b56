package solver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/goatx/pdr/formula"
	"github.com/goatx/pdr/internal/cnf"
)

// Gini decides formulas with the gini solver. Unlike gophersat, a gini search
// runs in the background and is stopped as soon as the context is done.
type Gini struct {
	substituter
	// PollInterval is how long a background search runs between checks of
	// the context.
	PollInterval time.Duration
}

// NewGini returns a gini backend.
func NewGini() *Gini {
	return &Gini{PollInterval: 10 * time.Millisecond}
}

// CheckSat implements Backend.
func (g *Gini) CheckSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c := cnf.Encode(f)
	s := gini.NewV(c.NbVars)
	for _, clause := range c.Clauses {
		for _, lit := range clause {
			s.Add(z.Dimacs2Lit(lit))
		}
		s.Add(z.LitNull)
	}
	res, err := g.solve(ctx, s)
	if err != nil {
		return nil, false, err
	}
	if res < 0 {
		return nil, false, nil
	}
	return c.Model(func(idx int) bool {
		return s.Value(z.Var(idx).Pos())
	}), true, nil
}

// SolveDimacs implements Backend.
func (g *Gini) SolveDimacs(ctx context.Context, r io.Reader) (bool, error) {
	s, err := gini.NewDimacs(r)
	if err != nil {
		return false, fmt.Errorf("could not parse DIMACS problem: %w", err)
	}
	res, err := g.solve(ctx, s)
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (g *Gini) solve(ctx context.Context, s *gini.Gini) (int, error) {
	if ctx.Done() == nil {
		return check(s.Solve())
	}
	interval := g.PollInterval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	conn := s.GoSolve()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if res, done := conn.Test(); done {
			return check(res)
		}
		select {
		case <-ctx.Done():
			conn.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

func check(res int) (int, error) {
	if res == 0 {
		return 0, fmt.Errorf("gini: %w", ErrUnknown)
	}
	return res, nil
}
