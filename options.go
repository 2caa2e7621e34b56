package pdr

import (
	"log/slog"
	"time"
)

type options struct {
	engine       Engine
	logger       *slog.Logger
	conds        map[ConditionName]Condition
	invariants   []ConditionName
	maxFrames    int
	queryTimeout time.Duration
}

// Option is a configuration option for a Checker.
// Options are used with New, Check, Report, Debug and Dot.
//
// Example:
//
//	res, err := pdr.Check(ctx, sys,
//	    pdr.WithEngine(solver.NewGini()),
//	    pdr.WithRules(pdr.Always(mutex)),
//	)
type Option interface {
	apply(*options)
}

func newOptions(opts ...Option) *options {
	os := &options{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.apply(os)
	}
	return os
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithEngine sets the formula engine that decides the checker's queries. The
// default is the gophersat backend of package solver.
func WithEngine(e Engine) Option {
	return optionFunc(func(o *options) {
		o.engine = e
	})
}

// WithLogger makes the checker report its progress to l at debug level. By
// default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithMaxFrames stops the checker with ErrFrameLimit instead of growing the
// frame sequence beyond n frames. A value of zero or less means no limit,
// which is the default.
func WithMaxFrames(n int) Option {
	return optionFunc(func(o *options) {
		o.maxFrames = n
	})
}

// WithQueryTimeout bounds the time spent in each satisfiability query.
// A query that times out fails the run with context.DeadlineExceeded.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(o *options) {
		o.queryTimeout = d
	})
}
