package pdr

import (
	"context"
	"errors"
	"fmt"

	"github.com/goatx/pdr/formula"
)

// ErrInvalidCertificate is returned when an invariant or a trace does not
// prove what its result claims.
var ErrInvalidCertificate = errors.New("invalid certificate")

// ValidateInvariant checks that f is an inductive invariant of sys proving the
// property made of sys.Post and conds: Init ⇒ F, F ∧ Trans ⇒ F' and F ⇒ Post.
func ValidateInvariant(ctx context.Context, eng Engine, sys System, f formula.Formula, conds ...Condition) error {
	post := property(sys, conds)
	checks := []struct {
		what  string
		query formula.Formula
	}{
		{what: "initial states", query: formula.And(sys.Init, formula.Not(f))},
		{what: "transition relation", query: formula.And(f, sys.Trans, formula.Not(eng.Substitute(f, sys.pairs())))},
		{what: "property", query: formula.And(f, formula.Not(post))},
	}
	for _, c := range checks {
		m, sat, err := eng.CheckSat(ctx, c.query)
		if err != nil {
			return err
		}
		if sat {
			return fmt.Errorf("%w: invariant %s is not closed under the %s, witness %s", ErrInvalidCertificate, f, c.what, m)
		}
	}
	return nil
}

// ValidateTrace checks that trace, ordered as Unsafe.Trace, is a path from an
// initial state to a state violating the property made of sys.Post and conds.
func ValidateTrace(ctx context.Context, eng Engine, sys System, trace []Cube, conds ...Condition) error {
	if len(trace) == 0 {
		return fmt.Errorf("%w: empty trace", ErrInvalidCertificate)
	}
	for i, c := range trace {
		want := len(trace) - 1 - i
		if t, ok := c.Frame(); !ok || t != want {
			return fmt.Errorf("%w: cube %s should belong to frame %d", ErrInvalidCertificate, c, want)
		}
	}
	sat := func(f formula.Formula) (bool, error) {
		_, ok, err := eng.CheckSat(ctx, f)
		return ok, err
	}
	first := trace[len(trace)-1]
	ok, err := sat(formula.And(sys.Init, first.Formula()))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cube %s contains no initial state", ErrInvalidCertificate, first)
	}
	pairs := sys.pairs()
	for i := len(trace) - 1; i > 0; i-- {
		from, to := trace[i], trace[i-1]
		ok, err := sat(formula.And(sys.Trans, from.Formula(), eng.Substitute(to.Formula(), pairs)))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no transition from %s to %s", ErrInvalidCertificate, from, to)
		}
	}
	ok, err = sat(formula.And(trace[0].Formula(), formula.Not(property(sys, conds))))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cube %s satisfies the property", ErrInvalidCertificate, trace[0])
	}
	return nil
}

// Certify validates the certificate carried by res, which must come from
// checking sys with opts.
func Certify(ctx context.Context, sys System, res Result, opts ...Option) error {
	o := newOptions(opts...)
	eng := o.engine
	if eng == nil {
		eng = defaultEngine()
	}
	switch res := res.(type) {
	case *Safe:
		return ValidateInvariant(ctx, eng, sys, res.Invariant, o.conditions()...)
	case *Unsafe:
		return ValidateTrace(ctx, eng, sys, res.Trace, o.conditions()...)
	default:
		return fmt.Errorf("%w: unexpected result %T", ErrInvalidCertificate, res)
	}
}
