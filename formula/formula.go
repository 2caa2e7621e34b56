// Package formula is a small propositional formula algebra used to describe
// transition systems and the queries built from them.
//
// Formulas are immutable values. Constructors copy their operands, so a
// formula can be shared freely between frames, cubes and queries.
package formula

import (
	"fmt"
	"sort"
	"strings"
)

// A Formula is a propositional formula over named boolean variables.
type Formula interface {
	String() string
	isFormula()
}

// Var is a boolean variable. Primed (next-state) variables carry a trailing
// quote, see Prime.
type Var string

// Const is the constant true or false.
type Const bool

// Negation is ¬X.
type Negation struct {
	X Formula
}

// Conjunction is the conjunction of its operands. An empty conjunction is true.
type Conjunction []Formula

// Disjunction is the disjunction of its operands. An empty disjunction is false.
type Disjunction []Formula

// Equivalence is L ↔ R.
type Equivalence struct {
	L, R Formula
}

var (
	// True is the tautology.
	True Formula = Const(true)
	// False is the contradiction.
	False Formula = Const(false)
)

func (Var) isFormula()         {}
func (Const) isFormula()       {}
func (Negation) isFormula()    {}
func (Conjunction) isFormula() {}
func (Disjunction) isFormula() {}
func (Equivalence) isFormula() {}

func (v Var) String() string { return string(v) }

func (c Const) String() string {
	if c {
		return "true"
	}
	return "false"
}

func (n Negation) String() string { return "!" + n.X.String() }

func (a Conjunction) String() string {
	if len(a) == 0 {
		return "true"
	}
	return join(a, " & ")
}

func (o Disjunction) String() string {
	if len(o) == 0 {
		return "false"
	}
	return join(o, " | ")
}

func (e Equivalence) String() string {
	return "(" + e.L.String() + " <-> " + e.R.String() + ")"
}

func join(fs []Formula, sep string) string {
	if len(fs) == 1 {
		return fs[0].String()
	}
	strs := make([]string, len(fs))
	for i, f := range fs {
		strs[i] = f.String()
	}
	return "(" + strings.Join(strs, sep) + ")"
}

// Not returns ¬f.
func Not(f Formula) Formula {
	mustNotBeNil(f)
	return Negation{X: f}
}

// And returns the conjunction of fs.
func And(fs ...Formula) Formula {
	for _, f := range fs {
		mustNotBeNil(f)
	}
	return Conjunction(append([]Formula(nil), fs...))
}

// Or returns the disjunction of fs.
func Or(fs ...Formula) Formula {
	for _, f := range fs {
		mustNotBeNil(f)
	}
	return Disjunction(append([]Formula(nil), fs...))
}

// Iff returns l ↔ r.
func Iff(l, r Formula) Formula {
	mustNotBeNil(l)
	mustNotBeNil(r)
	return Equivalence{L: l, R: r}
}

// Implies returns l → r, written as ¬l ∨ r.
func Implies(l, r Formula) Formula {
	return Or(Not(l), r)
}

// Eq returns the literal-equality v == value.
func Eq(v Var, value bool) Formula {
	return Literal{Var: v, Value: value}.Formula()
}

func mustNotBeNil(f Formula) {
	if f == nil {
		panic("formula: nil operand")
	}
}

// Prime returns the next-state copy of v.
func Prime(v Var) Var {
	return v + "'"
}

// Literal is the literal-equality Var == Value.
type Literal struct {
	Var   Var
	Value bool
}

// Formula returns the literal as a formula: v when Value is true, ¬v otherwise.
func (l Literal) Formula() Formula {
	if l.Value {
		return l.Var
	}
	return Negation{X: l.Var}
}

func (l Literal) String() string {
	return fmt.Sprintf("%s == %t", l.Var, l.Value)
}

// Model is a satisfying assignment returned by a solver.
type Model map[Var]bool

// String renders the model with variables in sorted order.
func (m Model) String() string {
	vars := make([]Var, 0, len(m))
	for v := range m {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	strs := make([]string, len(vars))
	for i, v := range vars {
		strs[i] = fmt.Sprintf("%s=%t", v, m[v])
	}
	return "{" + strings.Join(strs, " ") + "}"
}

// Pair maps a variable to the variable that replaces it in Substitute.
type Pair struct {
	From, To Var
}

// Pairs zips from and to. It panics when the lengths differ.
func Pairs(from, to []Var) []Pair {
	if len(from) != len(to) {
		panic(fmt.Sprintf("formula: pairing %d variables with %d", len(from), len(to)))
	}
	ps := make([]Pair, len(from))
	for i := range from {
		ps[i] = Pair{From: from[i], To: to[i]}
	}
	return ps
}
