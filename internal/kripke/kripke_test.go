package kripke

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goatx/pdr/formula"
)

var (
	a = formula.Var("a")
	b = formula.Var("b")
	i = formula.Var("i")
)

func primed(vars ...formula.Var) []formula.Var {
	ps := make([]formula.Var, len(vars))
	for j, v := range vars {
		ps[j] = formula.Prime(v)
	}
	return ps
}

// counter counts up from 0 with low bit a and high bit b.
func counter(t *testing.T) *Kripke {
	t.Helper()
	k, err := New(
		[]formula.Var{a, b},
		primed(a, b),
		formula.And(formula.Not(a), formula.Not(b)),
		formula.And(
			formula.Iff(formula.Prime(a), formula.Not(a)),
			formula.Iff(formula.Prime(b), formula.Not(formula.Iff(b, a))),
		),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := k.Solve(); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestKripke_Solve(t *testing.T) {
	tests := []struct {
		name          string
		vars          []formula.Var
		init          formula.Formula
		trans         formula.Formula
		wantReachable int
		wantInputs    []formula.Var
	}{
		{
			name:          "counter",
			vars:          []formula.Var{a, b},
			init:          formula.And(formula.Not(a), formula.Not(b)),
			trans:         formula.And(formula.Iff(formula.Prime(a), formula.Not(a)), formula.Iff(formula.Prime(b), formula.Not(formula.Iff(b, a)))),
			wantReachable: 4,
		},
		{
			name:          "stuck",
			vars:          []formula.Var{a},
			init:          formula.Not(a),
			trans:         formula.Iff(formula.Prime(a), a),
			wantReachable: 1,
		},
		{
			name:          "input driven",
			vars:          []formula.Var{a},
			init:          formula.Not(a),
			trans:         formula.Iff(formula.Prime(a), i),
			wantReachable: 2,
			wantInputs:    []formula.Var{i},
		},
		{
			name:          "unconstrained initial states",
			vars:          []formula.Var{a, b},
			init:          formula.True,
			trans:         formula.And(formula.Iff(formula.Prime(a), a), formula.Iff(formula.Prime(b), b)),
			wantReachable: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := New(tt.vars, primed(tt.vars...), tt.init, tt.trans)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.wantInputs, k.inputs); diff != "" {
				t.Errorf("inputs mismatch (-want +got):\n%s", diff)
			}
			if err := k.Solve(); err != nil {
				t.Fatal(err)
			}
			if got := k.Reachable(); got != tt.wantReachable {
				t.Errorf("Reachable() = %d, want %d", got, tt.wantReachable)
			}
		})
	}
}

func TestKripke_Violation(t *testing.T) {
	k := counter(t)

	path, ok, err := k.Violation(formula.Not(formula.And(a, b)))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Violation() found nothing, want the path to 3")
	}
	want := []formula.Model{
		{a: false, b: false},
		{a: true, b: false},
		{a: false, b: true},
		{a: true, b: true},
	}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("Violation() path mismatch (-want +got):\n%s", diff)
	}

	if _, ok, err := k.Violation(formula.True); err != nil || ok {
		t.Errorf("Violation(true) = %v, %v, want no violation", ok, err)
	}
}

func TestKripke_ViolationThroughInput(t *testing.T) {
	k, err := New([]formula.Var{a}, primed(a), formula.Not(a), formula.Iff(formula.Prime(a), a))
	if err != nil {
		t.Fatal(err)
	}
	if err := k.Solve(); err != nil {
		t.Fatal(err)
	}
	// The property reads an input the transition relation does not mention.
	_, ok, err := k.Violation(formula.Not(i))
	if err == nil {
		t.Fatalf("Violation() = %v, want an error for the unbound input", ok)
	}
}

func TestKripke_Holds(t *testing.T) {
	k := counter(t)
	tests := []struct {
		f    formula.Formula
		want bool
	}{
		{f: formula.True, want: true},
		{f: formula.Or(formula.Not(a), formula.Not(b)), want: false},
		{f: formula.Or(a, b, formula.Not(a)), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got, err := k.Holds(tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Holds(%s) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestNewRejectsLargeSystems(t *testing.T) {
	vars := make([]formula.Var, MaxVars+1)
	for j := range vars {
		vars[j] = formula.Var(fmt.Sprintf("v%d", j))
	}
	_, err := New(vars, primed(vars...), formula.True, formula.True)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("New() error = %v, want ErrTooLarge", err)
	}
}

func TestKripke_WriteAsDot(t *testing.T) {
	k := counter(t)
	var buf bytes.Buffer
	k.WriteAsDot(&buf)
	out := buf.String()
	for _, s := range []string{
		"digraph {",
		`  0 [ label="a=false\nb=false" ];`,
		"  0 [ penwidth=5 ];",
		"  0 -> 1;",
		"  1 -> 2;",
		"  2 -> 3;",
		"  3 -> 0;",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output should contain %q:\n%s", s, out)
		}
	}
	if strings.Count(out, "penwidth=5") != 1 {
		t.Errorf("only the initial world should be bold:\n%s", out)
	}
}
