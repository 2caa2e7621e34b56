package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goatx/pdr/formula"
)

func backendsUnderTest(t *testing.T) map[string]Backend {
	t.Helper()
	res := make(map[string]Backend)
	for _, name := range Names() {
		b, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		res[name] = b
	}
	return res
}

func TestCheckSat(t *testing.T) {
	a, b, c := formula.Var("a"), formula.Var("b"), formula.Var("c")
	tests := []struct {
		name    string
		f       formula.Formula
		wantSat bool
	}{
		{name: "literal", f: formula.Not(a), wantSat: true},
		{name: "contradiction", f: formula.And(a, formula.Not(a)), wantSat: false},
		{name: "true", f: formula.True, wantSat: true},
		{name: "false", f: formula.False, wantSat: false},
		{
			name:    "toggle step into bad state",
			f:       formula.And(formula.Not(a), formula.Iff(formula.Prime(a), formula.Not(a)), formula.Prime(a)),
			wantSat: true,
		},
		{
			name: "odd cycle of xors",
			f: formula.And(
				formula.Iff(a, formula.Not(b)),
				formula.Iff(b, formula.Not(c)),
				formula.Iff(c, formula.Not(a)),
			),
			wantSat: false,
		},
		{
			name:    "nested",
			f:       formula.And(formula.Or(a, b), formula.Not(formula.And(a, b)), formula.Iff(c, a)),
			wantSat: true,
		},
	}
	for name, backend := range backendsUnderTest(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				m, sat, err := backend.CheckSat(context.Background(), tt.f)
				if err != nil {
					t.Fatalf("CheckSat() error = %v", err)
				}
				if sat != tt.wantSat {
					t.Fatalf("CheckSat() sat = %v, want %v", sat, tt.wantSat)
				}
				if !sat {
					if m != nil {
						t.Errorf("CheckSat() returned model %s for an unsatisfiable query", m)
					}
					return
				}
				ok, err := formula.Eval(tt.f, m)
				if err != nil {
					t.Fatalf("model %s is incomplete: %v", m, err)
				}
				if !ok {
					t.Errorf("model %s does not satisfy %s", m, tt.f)
				}
			})
		}
	}
}

func TestCheckSatWithCancellableContext(t *testing.T) {
	a, b := formula.Var("a"), formula.Var("b")
	f := formula.And(formula.Or(a, b), formula.Not(a))
	for name, backend := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			m, sat, err := backend.CheckSat(ctx, f)
			if err != nil {
				t.Fatalf("CheckSat() error = %v", err)
			}
			if !sat {
				t.Fatal("CheckSat() = UNSAT, want SAT")
			}
			if diff := cmp.Diff(formula.Model{a: false, b: true}, m); diff != "" {
				t.Errorf("model mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckSatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, backend := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := backend.CheckSat(ctx, formula.Var("a"))
			if !errors.Is(err, context.Canceled) {
				t.Errorf("CheckSat() error = %v, want context.Canceled", err)
			}
		})
	}
}

func TestSolveDimacs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSat bool
	}{
		{name: "sat", input: "c a=1\nc b=2\np cnf 2 2\n1 2 0\n-1 0\n", wantSat: true},
		{name: "unsat", input: "p cnf 2 4\n1 2 0\n-1 2 0\n1 -2 0\n-1 -2 0\n", wantSat: false},
	}
	for name, backend := range backendsUnderTest(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				sat, err := backend.SolveDimacs(context.Background(), strings.NewReader(tt.input))
				if err != nil {
					t.Fatalf("SolveDimacs() error = %v", err)
				}
				if sat != tt.wantSat {
					t.Errorf("SolveDimacs() = %v, want %v", sat, tt.wantSat)
				}
			})
		}
	}
}

func TestNew(t *testing.T) {
	if diff := cmp.Diff([]string{"gini", "gophersat"}, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if _, err := New("z3"); err == nil {
		t.Error("New(\"z3\") succeeded, want error")
	}
	b, err := New(DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*Gophersat); !ok {
		t.Errorf("New(DefaultName) = %T, want *Gophersat", b)
	}
}

func TestSubstitute(t *testing.T) {
	x, y := formula.Var("x"), formula.Var("y")
	b := NewGini()
	got := b.Substitute(formula.And(x, formula.Not(y)), formula.Pairs([]formula.Var{x, y}, []formula.Var{formula.Prime(x), formula.Prime(y)}))
	if got.String() != "(x' & !y')" {
		t.Errorf("Substitute() = %s", got)
	}
}

func TestSimplify(t *testing.T) {
	a, b, c := formula.Var("a"), formula.Var("b"), formula.Var("c")
	tests := []struct {
		name string
		f    formula.Formula
		want string
	}{
		{name: "absorbed conjunct", f: formula.And(a, formula.Or(a, b)), want: "a"},
		{
			name: "tautology",
			f:    formula.Or(formula.And(a, b), formula.And(a, formula.Not(b)), formula.Not(a)),
			want: "true",
		},
		{
			name: "implied equivalence",
			f:    formula.And(formula.Iff(a, b), formula.Iff(b, c), formula.Iff(a, c)),
			want: "((a <-> b) & (b <-> c))",
		},
		{name: "contradiction", f: formula.And(formula.Iff(a, formula.Not(b)), a, b), want: "false"},
		{name: "blocked cube frame", f: formula.And(formula.True, formula.Not(formula.And(a, b))), want: "!(a & b)"},
		{name: "constant", f: formula.Not(formula.False), want: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.f).String(); got != tt.want {
				t.Errorf("Simplify(%s) = %q, want %q", tt.f, got, tt.want)
			}
		})
	}
}

func TestDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "queries")
	d, err := NewDump(NewGophersat(), dir)
	if err != nil {
		t.Fatal(err)
	}
	a := formula.Var("a")
	for _, f := range []formula.Formula{a, formula.And(a, formula.Not(a))} {
		if _, _, err := d.CheckSat(context.Background(), f); err != nil {
			t.Fatal(err)
		}
	}
	if got := d.Written(); got != 2 {
		t.Errorf("Written() = %d, want 2", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, "query-0001.cnf"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("c a=1\np cnf 1 1\n1 0\n", string(data)); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}

	f, err := os.Open(filepath.Join(dir, "query-0002.cnf"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sat, err := NewGini().SolveDimacs(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Error("replayed contradiction is satisfiable")
	}
}
