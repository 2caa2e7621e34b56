package pdr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goatx/pdr/formula"
)

// Cube is a conjunction of literal-equalities over state variables, taken from
// a model returned by the engine, and tagged with the frame it belongs to.
//
// Cubes are values: every operation returns a new cube.
type Cube struct {
	lits   []formula.Literal
	frame  int
	framed bool
}

// newCube keeps the assignments of m to the state variables vars. Primed
// variables and inputs are dropped. The cube is tagged with frame when framed
// is set.
func newCube(m formula.Model, vars []formula.Var, frame int, framed bool) Cube {
	lits := make([]formula.Literal, 0, len(vars))
	for _, v := range vars {
		if val, ok := m[v]; ok {
			lits = append(lits, formula.Literal{Var: v, Value: val})
		}
	}
	sort.Slice(lits, func(i, j int) bool {
		return lits[i].String() < lits[j].String()
	})
	return Cube{lits: lits, frame: frame, framed: framed}
}

// Formula returns the conjunction of the literals of c.
func (c Cube) Formula() formula.Formula {
	fs := make([]formula.Formula, len(c.lits))
	for i, l := range c.lits {
		fs[i] = l.Formula()
	}
	return formula.And(fs...)
}

// Frame returns the frame tag of c, and false when c is frameless.
func (c Cube) Frame() (int, bool) {
	return c.frame, c.framed
}

// WithFrame returns a copy of c tagged with frame t.
func (c Cube) WithFrame(t int) Cube {
	return Cube{lits: c.lits, frame: t, framed: true}
}

// Literals returns the literals of c in display order.
func (c Cube) Literals() []formula.Literal {
	return append([]formula.Literal(nil), c.lits...)
}

// Equal reports whether c and o have the same literals. Frame tags are
// ignored.
func (c Cube) Equal(o Cube) bool {
	return c.key() == o.key()
}

// String renders c as "t: [a == true, b == false]", with "-" standing for the
// frame of a frameless cube.
func (c Cube) String() string {
	frame := "-"
	if c.framed {
		frame = strconv.Itoa(c.frame)
	}
	return fmt.Sprintf("%s: [%s]", frame, c.key())
}

func (c Cube) key() string {
	strs := make([]string, len(c.lits))
	for i, l := range c.lits {
		strs[i] = l.String()
	}
	return strings.Join(strs, ", ")
}
