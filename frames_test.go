package pdr

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goatx/pdr/formula"
)

func framesStrings(r *frames) []string {
	var strs []string
	for _, f := range r.snapshot() {
		strs = append(strs, f.String())
	}
	return strs
}

func TestFrames(t *testing.T) {
	x := formula.Var("x")
	r := newFrames(formula.Not(x))
	if diff := cmp.Diff([]string{"!x"}, framesStrings(r)); diff != "" {
		t.Fatalf("initial frames mismatch (-want +got):\n%s", diff)
	}

	r.appendTrivial()
	r.appendTrivial()
	c := cube(2, map[formula.Var]bool{x: true})
	for i := 1; i <= 2; i++ {
		if err := r.strengthen(i, c); err != nil {
			t.Fatalf("strengthen(%d) error = %v", i, err)
		}
	}
	want := []string{"!x", "(true & !x)", "(true & !x)"}
	if diff := cmp.Diff(want, framesStrings(r)); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
	if got := r.len(); got != 3 {
		t.Errorf("len() = %d, want 3", got)
	}
}

func TestFramesStrengthenRejects(t *testing.T) {
	r := newFrames(formula.True)
	r.appendTrivial()
	c := cube(1, map[formula.Var]bool{"x": true})
	tests := []struct {
		name string
		i    int
	}{
		{name: "initial frame", i: 0},
		{name: "past the end", i: 2},
		{name: "negative", i: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.strengthen(tt.i, c); err == nil {
				t.Errorf("strengthen(%d) succeeded", tt.i)
			}
		})
	}
	if got := r.formula(0).String(); got != "true" {
		t.Errorf("frame 0 changed to %s", got)
	}
}

func TestFramesStrengthenTwice(t *testing.T) {
	r := newFrames(formula.True)
	r.appendTrivial()
	c1 := cube(1, map[formula.Var]bool{"a": true, "b": false})
	c2 := cube(5, map[formula.Var]bool{"b": false, "a": true})
	for _, c := range []Cube{c1, c2} {
		if err := r.strengthen(1, c); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(r.blocked(1)); got != 1 {
		t.Errorf("blocked(1) has %d cubes, want 1", got)
	}
	if got, want := r.formula(1).String(), "(true & !(a & !b))"; got != want {
		t.Errorf("formula(1) = %q, want %q", got, want)
	}
}
