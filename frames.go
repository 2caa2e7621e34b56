package pdr

import (
	"fmt"

	"github.com/goatx/pdr/formula"
)

// frame is a base formula plus the cubes blocked in it so far.
type frame struct {
	base    formula.Formula
	blocked []Cube
}

// frames is the sequence R[0..k]. R[0] is the initial-states formula and is
// never strengthened; the other frames start out as true.
type frames struct {
	fs []frame
}

func newFrames(init formula.Formula) *frames {
	return &frames{fs: []frame{{base: init}}}
}

func (r *frames) len() int {
	return len(r.fs)
}

func (r *frames) appendTrivial() {
	r.fs = append(r.fs, frame{base: formula.True})
}

// strengthen conjoins ¬c to frame i. Blocking a cube already blocked in the
// frame leaves it untouched.
func (r *frames) strengthen(i int, c Cube) error {
	if i <= 0 || i >= len(r.fs) {
		return fmt.Errorf("cannot strengthen frame %d of %d", i, len(r.fs))
	}
	for _, b := range r.fs[i].blocked {
		if b.Equal(c) {
			return nil
		}
	}
	r.fs[i].blocked = append(r.fs[i].blocked, c)
	return nil
}

// formula returns R[i] = base ∧ ¬c1 ∧ … ∧ ¬cn.
func (r *frames) formula(i int) formula.Formula {
	f := r.fs[i]
	if len(f.blocked) == 0 {
		return f.base
	}
	fs := make([]formula.Formula, 0, len(f.blocked)+1)
	fs = append(fs, f.base)
	for _, c := range f.blocked {
		fs = append(fs, formula.Not(c.Formula()))
	}
	return formula.And(fs...)
}

func (r *frames) blocked(i int) []Cube {
	return append([]Cube(nil), r.fs[i].blocked...)
}

func (r *frames) snapshot() []formula.Formula {
	res := make([]formula.Formula, len(r.fs))
	for i := range r.fs {
		res[i] = r.formula(i)
	}
	return res
}
