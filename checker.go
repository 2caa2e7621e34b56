package pdr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/goatx/pdr/formula"
	"github.com/goatx/pdr/solver"
)

// ErrFrameLimit is returned by Run when the frame sequence would grow beyond
// the limit set with WithMaxFrames.
var ErrFrameLimit = errors.New("frame limit reached")

// Engine decides the satisfiability queries of a Checker.
// The backends of package solver implement it.
type Engine interface {
	// CheckSat decides f. On SAT the model binds every variable of f.
	CheckSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error)
	// Substitute renames variables of f simultaneously.
	Substitute(f formula.Formula, pairs []formula.Pair) formula.Formula
	// Simplify returns a formula equivalent to f. It is only used to present
	// invariants.
	Simplify(f formula.Formula) formula.Formula
}

// State is the state of a Checker.
type State int

const (
	// Running means no verdict has been reached yet.
	Running State = iota
	// ProvedSafe means an inductive invariant was found.
	ProvedSafe
	// CounterexampleFound means a trace to a bad state was found.
	CounterexampleFound
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ProvedSafe:
		return "proved safe"
	case CounterexampleFound:
		return "counterexample found"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Checker runs property-directed reachability on a System.
//
// A Checker is not safe for concurrent use.
type Checker struct {
	sys    System
	post   formula.Formula
	conds  []Condition
	pairs  []formula.Pair
	eng    Engine
	log    *slog.Logger
	opts   *options
	frames *frames
	state  State

	invariant formula.Formula
	invFrame  int
	trace     []Cube
	result    Result

	queries        int
	blockedCubes   int
	maxObligations int
	elapsed        time.Duration
}

// New validates sys and returns a Checker for it.
//
// The property checked is the conjunction of sys.Post and the conditions of
// the rules given with WithRules. New fails with ErrInvalidSystem when sys is
// malformed.
func New(sys System, opts ...Option) (*Checker, error) {
	o := newOptions(opts...)
	conds := o.conditions()
	if err := sys.validate(len(conds) > 0); err != nil {
		return nil, err
	}
	eng := o.engine
	if eng == nil {
		eng = defaultEngine()
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{
		sys:    sys,
		post:   property(sys, conds),
		conds:  conds,
		pairs:  sys.pairs(),
		eng:    eng,
		log:    logger,
		opts:   o,
		frames: newFrames(sys.Init),
		state:  Running,
	}, nil
}

func defaultEngine() Engine {
	return solver.NewGophersat()
}

func property(sys System, conds []Condition) formula.Formula {
	fs := make([]formula.Formula, 0, len(conds)+1)
	if sys.Post != nil {
		fs = append(fs, sys.Post)
	}
	for _, c := range conds {
		fs = append(fs, c.Formula())
	}
	if len(fs) == 1 {
		return fs[0]
	}
	return formula.And(fs...)
}

// State returns the current state of the checker.
func (c *Checker) State() State {
	return c.state
}

// Frames returns the current frame formulas R[0..k].
func (c *Checker) Frames() []formula.Formula {
	return c.frames.snapshot()
}

// Run iterates until the system is proved safe or a counterexample is found.
// Engine failures and context errors end the run.
//
// Run has no iteration bound unless WithMaxFrames is given.
func (c *Checker) Run(ctx context.Context) (Result, error) {
	if c.result != nil {
		return c.result, nil
	}
	start := time.Now()
	for c.state == Running {
		if _, err := c.step(ctx); err != nil {
			c.elapsed += time.Since(start)
			return nil, err
		}
	}
	c.elapsed += time.Since(start)
	res, err := c.finish(ctx)
	if err != nil {
		return nil, err
	}
	c.result = res
	return res, nil
}

// step performs one iteration of the main loop.
func (c *Checker) step(ctx context.Context) (State, error) {
	if c.state != Running {
		return c.state, nil
	}
	bad, ok, err := c.badCube(ctx)
	if err != nil {
		return c.state, err
	}
	if ok {
		c.log.Debug("bad cube", "frame", c.frames.len()-1, "cube", bad.String())
		trace, err := c.recursivelyBlock(ctx, bad)
		if err != nil {
			return c.state, err
		}
		if trace != nil {
			c.trace = trace
			c.state = CounterexampleFound
			c.log.Debug("counterexample found", "length", len(trace))
		}
		return c.state, nil
	}

	inv, i, ok, err := c.checkInduction(ctx)
	if err != nil {
		return c.state, err
	}
	if ok {
		c.invariant, c.invFrame = inv, i
		c.state = ProvedSafe
		c.log.Debug("invariant found", "frame", i)
		return c.state, nil
	}
	if limit := c.opts.maxFrames; limit > 0 && c.frames.len() >= limit {
		return c.state, fmt.Errorf("%w: %d frames", ErrFrameLimit, c.frames.len())
	}
	c.frames.appendTrivial()
	c.log.Debug("frame appended", "frame", c.frames.len()-1)
	return c.state, nil
}

// badCube looks for a state of the last frame violating the property.
func (c *Checker) badCube(ctx context.Context) (Cube, bool, error) {
	last := c.frames.len() - 1
	m, sat, err := c.checkSat(ctx, formula.And(formula.Not(c.post), c.frames.formula(last)))
	if err != nil || !sat {
		return Cube{}, false, err
	}
	return newCube(m, c.sys.Vars, last, true), true, nil
}

// checkInduction returns the first frame R[i], in ascending order, for which
// Trans ∧ R[i] ∧ ¬R[i]' is unsatisfiable and that contains every initial
// state.
func (c *Checker) checkInduction(ctx context.Context) (formula.Formula, int, bool, error) {
	for i := 0; i < c.frames.len(); i++ {
		r := c.frames.formula(i)
		_, sat, err := c.checkSat(ctx, formula.And(c.sys.Trans, r, formula.Not(c.prime(r))))
		if err != nil {
			return nil, 0, false, err
		}
		if sat {
			continue
		}
		if i > 0 {
			// Blocked cubes may cut initial states out of a frame.
			_, sat, err := c.checkSat(ctx, formula.And(c.sys.Init, formula.Not(r)))
			if err != nil {
				return nil, 0, false, err
			}
			if sat {
				continue
			}
		}
		return r, i, true, nil
	}
	return nil, 0, false, nil
}

// recursivelyBlock tries to block s0 in its frame. It returns nil when s0 and
// every predecessor it needed were blocked, and otherwise the obligation stack
// from s0 down to a cube of frame 0.
func (c *Checker) recursivelyBlock(ctx context.Context, s0 Cube) ([]Cube, error) {
	q := []Cube{s0}
	for len(q) > 0 {
		c.maxObligations = max(c.maxObligations, len(q))
		s := q[len(q)-1]
		t, _ := s.Frame()
		if t == 0 {
			return slices.Clone(q), nil
		}
		z, ok, err := c.solveRelative(ctx, s)
		if err != nil {
			return nil, err
		}
		if ok {
			q = append(q, z)
			c.log.Debug("obligation pushed", "cube", z.String(), "depth", len(q))
			continue
		}
		q = q[:len(q)-1]
		for i := 1; i <= t; i++ {
			if err := c.frames.strengthen(i, s); err != nil {
				return nil, err
			}
		}
		c.blockedCubes++
		c.log.Debug("cube blocked", "cube", s.String(), "depth", len(q))
	}
	return nil, nil
}

// solveRelative checks whether s is reachable in one step from R[t-1]. If it
// is, the predecessor cube is returned tagged with t-1.
func (c *Checker) solveRelative(ctx context.Context, s Cube) (Cube, bool, error) {
	t, ok := s.Frame()
	if !ok || t < 1 || t >= c.frames.len() {
		return Cube{}, false, fmt.Errorf("cannot solve cube %s relative to its previous frame", s)
	}
	q := formula.And(c.frames.formula(t-1), c.sys.Trans, c.prime(s.Formula()))
	m, sat, err := c.checkSat(ctx, q)
	if err != nil || !sat {
		return Cube{}, false, err
	}
	return newCube(m, c.sys.Vars, t-1, true), true, nil
}

func (c *Checker) prime(f formula.Formula) formula.Formula {
	return c.eng.Substitute(f, c.pairs)
}

func (c *Checker) checkSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error) {
	c.queries++
	if d := c.opts.queryTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	m, sat, err := c.eng.CheckSat(ctx, f)
	if err != nil {
		return nil, false, fmt.Errorf("query %d: %w", c.queries, err)
	}
	return m, sat, nil
}

// finish builds the result of a terminated run.
func (c *Checker) finish(ctx context.Context) (Result, error) {
	switch c.state {
	case ProvedSafe:
		return &Safe{
			Invariant: c.eng.Simplify(c.invariant),
			Frame:     c.invFrame,
			Summary:   c.summary(),
		}, nil
	case CounterexampleFound:
		violated, err := c.violated(ctx, c.trace[0])
		if err != nil {
			return nil, err
		}
		return &Unsafe{
			Trace:    c.trace,
			Violated: violated,
			Summary:  c.summary(),
		}, nil
	default:
		return nil, fmt.Errorf("checker is %s", c.state)
	}
}

// violated lists the conditions that the bad cube can violate.
func (c *Checker) violated(ctx context.Context, bad Cube) ([]ConditionName, error) {
	type named struct {
		name ConditionName
		f    formula.Formula
	}
	var cs []named
	if c.sys.Post != nil {
		cs = append(cs, named{name: PostCondition, f: c.sys.Post})
	}
	for _, cond := range c.conds {
		cs = append(cs, named{name: cond.Name(), f: cond.Formula()})
	}
	var names []ConditionName
	for _, cond := range cs {
		_, sat, err := c.checkSat(ctx, formula.And(bad.Formula(), formula.Not(cond.f)))
		if err != nil {
			return nil, err
		}
		if sat {
			names = append(names, cond.name)
		}
	}
	return names, nil
}

func (c *Checker) summary() Summary {
	return Summary{
		Frames:          c.frames.len(),
		Queries:         c.queries,
		BlockedCubes:    c.blockedCubes,
		MaxObligations:  c.maxObligations,
		ExecutionTimeMs: c.elapsed.Milliseconds(),
	}
}
