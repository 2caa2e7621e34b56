// Package cnf turns formulas into clause lists that SAT solvers accept.
//
// The encoding is the usual Tseitin transformation: every connective gets a
// fresh variable constrained to be equivalent to it. Top-level conjunctions are
// asserted operand by operand and top-level disjunctions of literals become a
// single clause, which keeps the common queries (frames of blocked cubes) small.
package cnf

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goatx/pdr/formula"
)

// CNF is a formula in conjunctive normal form. Variables are numbered from 1,
// literals are signed variable numbers as in DIMACS.
type CNF struct {
	Clauses [][]int
	NbVars  int
	index   map[formula.Var]int
	truth   int
}

// Encode returns a CNF equisatisfiable with the conjunction of fs. Every
// variable of fs keeps its own index, so a model of the CNF restricted to those
// indices is a model of fs.
func Encode(fs ...formula.Formula) *CNF {
	c := &CNF{index: make(map[formula.Var]int)}
	for _, f := range fs {
		c.assert(f)
	}
	if len(c.Clauses) == 0 {
		// An empty clause list would leave nothing to solve; anchor it.
		c.Clauses = append(c.Clauses, []int{c.constant(true)})
	}
	return c
}

// Index returns the DIMACS variable of v.
func (c *CNF) Index(v formula.Var) (int, bool) {
	idx, ok := c.index[v]
	return idx, ok
}

// Vars returns the formula variables of c, sorted by name.
func (c *CNF) Vars() []formula.Var {
	vars := make([]formula.Var, 0, len(c.index))
	for v := range c.index {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return vars
}

// Model builds a formula model from the value of each DIMACS variable.
func (c *CNF) Model(value func(idx int) bool) formula.Model {
	m := make(formula.Model, len(c.index))
	for v, idx := range c.index {
		m[v] = value(idx)
	}
	return m
}

// WriteDimacs writes c in DIMACS format. Formula variables are listed in
// comments ahead of the problem line, e.g. "c x=1".
func (c *CNF) WriteDimacs(w io.Writer) error {
	for _, v := range c.Vars() {
		if _, err := fmt.Fprintf(w, "c %s=%d\n", v, c.index[v]); err != nil {
			return fmt.Errorf("could not write DIMACS output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", c.NbVars, len(c.Clauses)); err != nil {
		return fmt.Errorf("could not write DIMACS output: %w", err)
	}
	for _, clause := range c.Clauses {
		strs := make([]string, len(clause), len(clause)+1)
		for i, lit := range clause {
			strs[i] = strconv.Itoa(lit)
		}
		strs = append(strs, "0")
		if _, err := io.WriteString(w, strings.Join(strs, " ")+"\n"); err != nil {
			return fmt.Errorf("could not write DIMACS output: %w", err)
		}
	}
	return nil
}

func (c *CNF) fresh() int {
	c.NbVars++
	return c.NbVars
}

// add appends a clause without duplicate literals. Tautologies are dropped.
func (c *CNF) add(lits ...int) {
	seen := make(map[int]bool, len(lits))
	clause := make([]int, 0, len(lits))
	for _, l := range lits {
		if seen[-l] {
			return
		}
		if !seen[l] {
			seen[l] = true
			clause = append(clause, l)
		}
	}
	c.Clauses = append(c.Clauses, clause)
}

func (c *CNF) variable(v formula.Var) int {
	idx, ok := c.index[v]
	if !ok {
		idx = c.fresh()
		c.index[v] = idx
	}
	return idx
}

func (c *CNF) constant(b bool) int {
	if c.truth == 0 {
		c.truth = c.fresh()
		c.add(c.truth)
	}
	if b {
		return c.truth
	}
	return -c.truth
}

func (c *CNF) assert(f formula.Formula) {
	switch f := f.(type) {
	case formula.Conjunction:
		for _, sub := range f {
			c.assert(sub)
		}
		return
	case formula.Disjunction:
		lits := make([]int, 0, len(f))
		for _, sub := range f {
			lits = append(lits, c.lit(sub))
		}
		if len(lits) == 0 {
			lits = append(lits, c.constant(false))
		}
		c.add(lits...)
		return
	}
	c.add(c.lit(f))
}

// lit returns a literal equivalent to f, defining fresh variables as needed.
func (c *CNF) lit(f formula.Formula) int {
	switch f := f.(type) {
	case formula.Var:
		return c.variable(f)
	case formula.Const:
		return c.constant(bool(f))
	case formula.Negation:
		return -c.lit(f.X)
	case formula.Conjunction:
		if len(f) == 1 {
			return c.lit(f[0])
		}
		subs := c.lits(f)
		g := c.fresh()
		long := []int{g}
		for _, s := range subs {
			c.add(-g, s)
			long = append(long, -s)
		}
		c.add(long...)
		return g
	case formula.Disjunction:
		if len(f) == 1 {
			return c.lit(f[0])
		}
		subs := c.lits(f)
		g := c.fresh()
		long := []int{-g}
		for _, s := range subs {
			c.add(g, -s)
			long = append(long, s)
		}
		c.add(long...)
		return g
	case formula.Equivalence:
		l, r := c.lit(f.L), c.lit(f.R)
		g := c.fresh()
		c.add(-g, -l, r)
		c.add(-g, l, -r)
		c.add(g, l, r)
		c.add(g, -l, -r)
		return g
	default:
		panic(fmt.Sprintf("cnf: unexpected %T", f))
	}
}

func (c *CNF) lits(fs []formula.Formula) []int {
	res := make([]int, len(fs))
	for i, f := range fs {
		res[i] = c.lit(f)
	}
	return res
}
