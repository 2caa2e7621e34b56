package formula

import (
	"fmt"
	"sort"
)

// Substitute replaces, simultaneously, every variable From of pairs with its
// counterpart To throughout f.
func Substitute(f Formula, pairs []Pair) Formula {
	if len(pairs) == 0 {
		return f
	}
	m := make(map[Var]Var, len(pairs))
	for _, p := range pairs {
		m[p.From] = p.To
	}
	return rename(f, m)
}

func rename(f Formula, m map[Var]Var) Formula {
	switch f := f.(type) {
	case Var:
		if to, ok := m[f]; ok {
			return to
		}
		return f
	case Const:
		return f
	case Negation:
		return Negation{X: rename(f.X, m)}
	case Conjunction:
		return Conjunction(renameAll(f, m))
	case Disjunction:
		return Disjunction(renameAll(f, m))
	case Equivalence:
		return Equivalence{L: rename(f.L, m), R: rename(f.R, m)}
	default:
		panic(fmt.Sprintf("formula: unexpected %T", f))
	}
}

func renameAll(fs []Formula, m map[Var]Var) []Formula {
	res := make([]Formula, len(fs))
	for i, f := range fs {
		res[i] = rename(f, m)
	}
	return res
}

// Vars returns the variables occurring in f, sorted.
func Vars(f Formula) []Var {
	seen := make(map[Var]bool)
	collect(f, seen)
	vars := make([]Var, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return vars
}

func collect(f Formula, seen map[Var]bool) {
	switch f := f.(type) {
	case Var:
		seen[f] = true
	case Const:
	case Negation:
		collect(f.X, seen)
	case Conjunction:
		for _, sub := range f {
			collect(sub, seen)
		}
	case Disjunction:
		for _, sub := range f {
			collect(sub, seen)
		}
	case Equivalence:
		collect(f.L, seen)
		collect(f.R, seen)
	default:
		panic(fmt.Sprintf("formula: unexpected %T", f))
	}
}

// Eval evaluates f under m. It fails when m lacks a binding for a variable of f.
func Eval(f Formula, m Model) (bool, error) {
	switch f := f.(type) {
	case Var:
		b, ok := m[f]
		if !ok {
			return false, fmt.Errorf("model lacks binding for variable %s", f)
		}
		return b, nil
	case Const:
		return bool(f), nil
	case Negation:
		b, err := Eval(f.X, m)
		return !b, err
	case Conjunction:
		for _, sub := range f {
			b, err := Eval(sub, m)
			if err != nil || !b {
				return false, err
			}
		}
		return true, nil
	case Disjunction:
		for _, sub := range f {
			b, err := Eval(sub, m)
			if err != nil || b {
				return b, err
			}
		}
		return false, nil
	case Equivalence:
		l, err := Eval(f.L, m)
		if err != nil {
			return false, err
		}
		r, err := Eval(f.R, m)
		if err != nil {
			return false, err
		}
		return l == r, nil
	default:
		return false, fmt.Errorf("formula: unexpected %T", f)
	}
}

// Simplify returns a formula equivalent to f with constants folded, nested
// conjunctions and disjunctions flattened, duplicate operands removed, double
// negations dropped, and complementary operands (x and ¬x) collapsed.
func Simplify(f Formula) Formula {
	switch f := f.(type) {
	case Var, Const:
		return f
	case Negation:
		x := Simplify(f.X)
		switch x := x.(type) {
		case Const:
			return !x
		case Negation:
			return x.X
		}
		return Negation{X: x}
	case Conjunction:
		return simplifyNary(f, true)
	case Disjunction:
		return simplifyNary(f, false)
	case Equivalence:
		l, r := Simplify(f.L), Simplify(f.R)
		if c, ok := l.(Const); ok {
			return polarity(r, bool(c))
		}
		if c, ok := r.(Const); ok {
			return polarity(l, bool(c))
		}
		if l.String() == r.String() {
			return True
		}
		return Equivalence{L: l, R: r}
	default:
		panic(fmt.Sprintf("formula: unexpected %T", f))
	}
}

func polarity(f Formula, positive bool) Formula {
	if positive {
		return f
	}
	return Simplify(Negation{X: f})
}

// simplifyNary simplifies a conjunction (and == true) or a disjunction.
// The neutral element is dropped, the absorbing one wins.
func simplifyNary(fs []Formula, and bool) Formula {
	neutral, absorbing := Const(and), Const(!and)
	var res []Formula
	seen := make(map[string]bool)
	var add func(f Formula) bool
	add = func(f Formula) bool {
		switch f := f.(type) {
		case Const:
			return f != absorbing
		case Conjunction:
			if and {
				for _, sub := range f {
					if !add(sub) {
						return false
					}
				}
				return true
			}
		case Disjunction:
			if !and {
				for _, sub := range f {
					if !add(sub) {
						return false
					}
				}
				return true
			}
		}
		key := f.String()
		if seen[key] {
			return true
		}
		if seen[Simplify(Negation{X: f}).String()] {
			return false
		}
		seen[key] = true
		res = append(res, f)
		return true
	}
	for _, f := range fs {
		if !add(Simplify(f)) {
			return absorbing
		}
	}
	switch len(res) {
	case 0:
		return neutral
	case 1:
		return res[0]
	}
	if and {
		return Conjunction(res)
	}
	return Disjunction(res)
}
