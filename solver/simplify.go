package solver

import (
	"fmt"

	"github.com/dalzilio/rudd"

	"github.com/goatx/pdr/formula"
)

// maxBDDVars bounds the formulas Simplify hands to the BDD package. Larger
// formulas are only simplified syntactically.
const maxBDDVars = 24

// bdd is the part of the rudd API Simplify relies on.
type bdd interface {
	True() rudd.Node
	False() rudd.Node
	Ithvar(i int) rudd.Node
	Not(n rudd.Node) rudd.Node
	And(n ...rudd.Node) rudd.Node
	Or(n ...rudd.Node) rudd.Node
	Equiv(n1, n2 rudd.Node) rudd.Node
	Imp(n1, n2 rudd.Node) rudd.Node
	Equal(n1, n2 rudd.Node) bool
}

// Simplify folds constants and removes redundant structure from f. After the
// syntactic pass of formula.Simplify, small formulas are compiled to BDDs:
// a formula equivalent to a constant becomes that constant, and conjuncts
// implied by the remaining ones are dropped.
func Simplify(f formula.Formula) formula.Formula {
	f = formula.Simplify(f)
	vars := formula.Vars(f)
	if len(vars) == 0 || len(vars) > maxBDDVars {
		return f
	}
	b, err := rudd.New(len(vars))
	if err != nil {
		return f
	}
	c := &compiler{bdd: b, index: make(map[formula.Var]int, len(vars))}
	for i, v := range vars {
		c.index[v] = i
	}
	n := c.compile(f)
	switch {
	case c.Equal(n, c.True()):
		return formula.True
	case c.Equal(n, c.False()):
		return formula.False
	}
	conj, ok := f.(formula.Conjunction)
	if !ok {
		return f
	}
	nodes := make([]rudd.Node, len(conj))
	for i, sub := range conj {
		nodes[i] = c.compile(sub)
	}
	keep := make([]bool, len(conj))
	for i := range keep {
		keep[i] = true
	}
	// Walk backwards so the first occurrence of equivalent conjuncts survives.
	for i := len(conj) - 1; i >= 0; i-- {
		rest := c.True()
		for j := range conj {
			if j != i && keep[j] {
				rest = c.And(rest, nodes[j])
			}
		}
		if c.Equal(c.Imp(rest, nodes[i]), c.True()) {
			keep[i] = false
		}
	}
	var res formula.Conjunction
	for i, sub := range conj {
		if keep[i] {
			res = append(res, sub)
		}
	}
	switch len(res) {
	case 0:
		return formula.True
	case 1:
		return res[0]
	}
	return res
}

type compiler struct {
	bdd
	index map[formula.Var]int
}

func (c *compiler) compile(f formula.Formula) rudd.Node {
	switch f := f.(type) {
	case formula.Var:
		return c.Ithvar(c.index[f])
	case formula.Const:
		if f {
			return c.True()
		}
		return c.False()
	case formula.Negation:
		return c.Not(c.compile(f.X))
	case formula.Conjunction:
		return c.And(c.compileAll(f)...)
	case formula.Disjunction:
		return c.Or(c.compileAll(f)...)
	case formula.Equivalence:
		return c.Equiv(c.compile(f.L), c.compile(f.R))
	default:
		panic(fmt.Sprintf("solver: unexpected %T", f))
	}
}

func (c *compiler) compileAll(fs []formula.Formula) []rudd.Node {
	if len(fs) == 0 {
		return nil
	}
	nodes := make([]rudd.Node, len(fs))
	for i, f := range fs {
		nodes[i] = c.compile(f)
	}
	return nodes
}
