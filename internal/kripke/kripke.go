// Package kripke builds the explicit state graph of small transition systems
// by enumerating assignments. It serves as an independent oracle for the
// symbolic checker.
package kripke

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goatx/pdr/formula"
)

// MaxVars bounds the number of state and input variables together.
const MaxVars = 12

var ErrTooLarge = errors.New("too many variables for explicit exploration")

// Kripke represents the reachable part of a transition system.
type Kripke struct {
	vars   []formula.Var
	primes []formula.Var
	inputs []formula.Var
	init   formula.Formula
	trans  formula.Formula

	worlds     map[world]int // depth of each reachable world
	initial    []world
	accessible map[world][]world
	parent     map[world]world
	order      []world
}

// world is an assignment of the state variables, bit i holding vars[i].
type world uint64

// New prepares the graph of the system with state variables vars, their
// next-state copies primes, initial states init and transition relation
// trans. Other variables of init and trans are inputs, chosen freely at every
// step.
func New(vars, primes []formula.Var, init, trans formula.Formula) (*Kripke, error) {
	if len(vars) != len(primes) {
		return nil, fmt.Errorf("%d state variables but %d primed variables", len(vars), len(primes))
	}
	bound := make(map[formula.Var]bool)
	for _, v := range slices.Concat(vars, primes) {
		bound[v] = true
	}
	var inputs []formula.Var
	for _, v := range formula.Vars(formula.And(init, trans)) {
		if !bound[v] {
			inputs = append(inputs, v)
		}
	}
	if n := len(vars) + len(inputs); n > MaxVars {
		return nil, fmt.Errorf("%w: %d", ErrTooLarge, n)
	}
	return &Kripke{
		vars:   vars,
		primes: primes,
		inputs: inputs,
		init:   init,
		trans:  trans,
	}, nil
}

func (k *Kripke) model(w world, vars []formula.Var, m formula.Model) formula.Model {
	if m == nil {
		m = make(formula.Model, len(vars))
	}
	for i, v := range vars {
		m[v] = w&(1<<i) != 0
	}
	return m
}

// exists reports whether f holds for some input assignment on top of m.
func (k *Kripke) exists(f formula.Formula, m formula.Model) (bool, error) {
	for in := world(0); in < 1<<len(k.inputs); in++ {
		ok, err := formula.Eval(f, k.model(in, k.inputs, m))
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// Solve explores every world reachable from an initial one, breadth first.
func (k *Kripke) Solve() error {
	k.worlds = make(map[world]int)
	k.accessible = make(map[world][]world)
	k.parent = make(map[world]world)
	k.initial, k.order = nil, nil

	n := world(1) << len(k.vars)
	var queue []world
	for w := world(0); w < n; w++ {
		ok, err := k.exists(k.init, k.model(w, k.vars, nil))
		if err != nil {
			return err
		}
		if ok {
			k.initial = append(k.initial, w)
			k.worlds[w] = 0
			queue = append(queue, w)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		k.order = append(k.order, current)

		acc := make([]world, 0)
		for next := world(0); next < n; next++ {
			m := k.model(next, k.primes, k.model(current, k.vars, nil))
			ok, err := k.exists(k.trans, m)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			acc = append(acc, next)
			if _, seen := k.worlds[next]; !seen {
				k.worlds[next] = k.worlds[current] + 1
				k.parent[next] = current
				queue = append(queue, next)
			}
		}
		k.accessible[current] = acc
	}
	return nil
}

// Reachable returns the number of reachable worlds.
func (k *Kripke) Reachable() int {
	return len(k.worlds)
}

// Violation returns a shortest path from an initial world to a world in which
// some input assignment falsifies prop, initial state first. It reports false
// when every reachable world satisfies prop.
func (k *Kripke) Violation(prop formula.Formula) ([]formula.Model, bool, error) {
	for _, w := range k.order {
		bad, err := k.exists(formula.Not(prop), k.model(w, k.vars, nil))
		if err != nil {
			return nil, false, err
		}
		if !bad {
			continue
		}
		path := []formula.Model{k.model(w, k.vars, nil)}
		for k.worlds[w] > 0 {
			w = k.parent[w]
			path = append(path, k.model(w, k.vars, nil))
		}
		slices.Reverse(path)
		return path, true, nil
	}
	return nil, false, nil
}

// Holds reports whether f, a formula over the state variables, is true in
// every reachable world.
func (k *Kripke) Holds(f formula.Formula) (bool, error) {
	for _, w := range k.order {
		ok, err := formula.Eval(f, k.model(w, k.vars, nil))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (k *Kripke) label(w world) string {
	strs := make([]string, len(k.vars))
	for i, v := range k.vars {
		strs[i] = fmt.Sprintf("%s=%t", v, w&(1<<i) != 0)
	}
	return strings.Join(strs, "\n")
}

// WriteAsDot writes the reachable graph in Graphviz DOT format with initial
// worlds in bold.
func (k *Kripke) WriteAsDot(w io.Writer) {
	_, _ = fmt.Fprintln(w, "digraph {")
	for _, id := range k.order {
		_, _ = fmt.Fprintf(w, "  %d [ label=%q ];\n", id, k.label(id))
		if k.worlds[id] == 0 {
			_, _ = fmt.Fprintf(w, "  %d [ penwidth=5 ];\n", id)
		}
	}
	for _, from := range k.order {
		for _, to := range k.accessible[from] {
			_, _ = fmt.Fprintf(w, "  %d -> %d;\n", from, to)
		}
	}
	_, _ = fmt.Fprintln(w, "}")
}
