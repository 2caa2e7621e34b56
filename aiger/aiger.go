// Package aiger loads sequential circuits in the AIGER format as transition
// systems for the PDR checker.
//
// Latches become state variables and inputs become free variables. Every bad
// state literal of the file, or every output when the file has no bad
// section, yields one safety condition: the literal must never be true.
package aiger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"

	"github.com/goatx/pdr"
	"github.com/goatx/pdr/formula"
)

var (
	// ErrUnsupported is returned for circuits with liveness properties.
	ErrUnsupported = errors.New("unsupported AIGER feature")
	// ErrNoProperty is returned for circuits without bad states or outputs.
	ErrNoProperty = errors.New("circuit has no bad states or outputs")
)

// Circuit is a transition system read from an AIGER file.
type Circuit struct {
	System     pdr.System
	Inputs     []formula.Var
	Conditions []pdr.Condition
}

// Rules returns one Always rule per condition of c.
func (c *Circuit) Rules() []pdr.Rule {
	rs := make([]pdr.Rule, len(c.Conditions))
	for i, cond := range c.Conditions {
		rs[i] = pdr.Always(cond)
	}
	return rs
}

// Load reads an ASCII ("aag") or binary ("aig") AIGER circuit from r.
func Load(r io.Reader) (*Circuit, error) {
	br := bufio.NewReader(r)
	hdr, err := br.Peek(3)
	if err != nil {
		return nil, fmt.Errorf("could not read AIGER header: %w", err)
	}
	var t *aiger.T
	switch string(hdr) {
	case "aag":
		t, err = aiger.ReadAscii(br)
	case "aig":
		t, err = aiger.ReadBinary(br)
	default:
		return nil, fmt.Errorf("not an AIGER file: header %q", hdr)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse AIGER circuit: %w", err)
	}
	return translate(t)
}

// LoadFile reads the AIGER circuit stored at path.
func LoadFile(path string) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

type translator struct {
	t    *aiger.T
	memo map[z.Var]formula.Formula
}

func translate(t *aiger.T) (*Circuit, error) {
	if len(t.Justice) > 0 || len(t.Fair) > 0 {
		return nil, fmt.Errorf("%w: justice or fairness properties", ErrUnsupported)
	}
	tr := &translator{t: t, memo: make(map[z.Var]formula.Formula)}
	names := make(map[formula.Var]bool)
	declare := func(m z.Lit, name string) (formula.Var, error) {
		v := formula.Var(name)
		if names[v] || names[formula.Prime(v)] {
			return "", fmt.Errorf("duplicate variable name %q", name)
		}
		names[v] = true
		tr.memo[m.Var()] = v
		return v, nil
	}

	vars := make([]formula.Var, len(t.Latches))
	for i, m := range t.Latches {
		name, ok := t.LatchName(i)
		if !ok {
			name = fmt.Sprintf("l%d", i)
		}
		v, err := declare(m, name)
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}
	primes := pdr.Primed(vars)
	for _, p := range primes {
		if names[p] {
			return nil, fmt.Errorf("duplicate variable name %q", p)
		}
	}
	inputs := make([]formula.Var, len(t.Inputs))
	for i, m := range t.Inputs {
		name, ok := t.InputName(i)
		if !ok {
			name = fmt.Sprintf("i%d", i)
		}
		v, err := declare(m, name)
		if err != nil {
			return nil, err
		}
		for _, p := range primes {
			if p == v {
				return nil, fmt.Errorf("duplicate variable name %q", name)
			}
		}
		inputs[i] = v
	}

	var init []formula.Formula
	var trans []formula.Formula
	for i, m := range t.Latches {
		switch t.Init(m) {
		case t.T:
			init = append(init, formula.Eq(vars[i], true))
		case t.F:
			init = append(init, formula.Eq(vars[i], false))
		}
		next, err := tr.lit(t.Next(m))
		if err != nil {
			return nil, err
		}
		trans = append(trans, formula.Iff(primes[i], next))
	}
	var constraints []formula.Formula
	for _, m := range t.Constraints {
		f, err := tr.lit(m)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, f)
	}
	trans = append(trans, constraints...)

	bads, kind, name := t.Bad, "bad", t.BadName
	if len(bads) == 0 {
		bads, kind, name = t.Outputs, "output", t.OutputName
	}
	if len(bads) == 0 {
		return nil, ErrNoProperty
	}
	conds := make([]pdr.Condition, len(bads))
	for i, m := range bads {
		f, err := tr.lit(m)
		if err != nil {
			return nil, err
		}
		n, ok := name(i)
		if !ok {
			n = fmt.Sprintf("%s%d", kind, i)
		}
		conds[i] = pdr.NewCondition(n, formula.Not(conjoin(append(append([]formula.Formula(nil), constraints...), f))))
	}

	return &Circuit{
		System: pdr.System{
			Vars:   vars,
			Primes: primes,
			Init:   conjoin(init),
			Trans:  conjoin(trans),
		},
		Inputs:     inputs,
		Conditions: conds,
	}, nil
}

// lit returns the formula of an AIG literal, expanding AND gates.
func (tr *translator) lit(m z.Lit) (formula.Formula, error) {
	f, err := tr.node(m.Var())
	if err != nil {
		return nil, err
	}
	if !m.IsPos() {
		return formula.Not(f), nil
	}
	return f, nil
}

func (tr *translator) node(v z.Var) (formula.Formula, error) {
	if f, ok := tr.memo[v]; ok {
		return f, nil
	}
	if v == tr.t.T.Var() {
		if tr.t.T.IsPos() {
			return formula.True, nil
		}
		return formula.False, nil
	}
	a, b := tr.t.Ins(v.Pos())
	if a == z.LitNull || b == z.LitNull {
		return nil, fmt.Errorf("undefined AIG node %d", v)
	}
	fa, err := tr.lit(a)
	if err != nil {
		return nil, err
	}
	fb, err := tr.lit(b)
	if err != nil {
		return nil, err
	}
	f := formula.And(fa, fb)
	tr.memo[v] = f
	return f, nil
}

func conjoin(fs []formula.Formula) formula.Formula {
	switch len(fs) {
	case 0:
		return formula.True
	case 1:
		return fs[0]
	}
	return formula.And(fs...)
}
