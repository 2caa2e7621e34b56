package pdr

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goatx/pdr/formula"
)

// WriteLog writes res as human-readable text. Counterexamples are printed in
// execution order, initial state first.
func WriteLog(w io.Writer, res Result) {
	switch res := res.(type) {
	case *Safe:
		_, _ = fmt.Fprintln(w, "No invariant violations found.")
		_, _ = fmt.Fprintf(w, "Inductive invariant (frame %d): %s\n", res.Frame, res.Invariant)
	case *Unsafe:
		_, _ = fmt.Fprintf(w, "InvariantError:  %s   ✘\n", violatedDescription(res.Violated))
		path := res.Path()
		_, _ = fmt.Fprintf(w, "Path (length = %d):\n", len(path))
		for j, c := range path {
			frame, _ := c.Frame()
			if j == len(path)-1 {
				_, _ = fmt.Fprintf(w, "  [%d] frame %d <-- violation here\n", j, frame)
			} else {
				_, _ = fmt.Fprintf(w, "  [%d] frame %d\n", j, frame)
			}
			for _, l := range c.Literals() {
				_, _ = fmt.Fprintf(w, "    %s\n", l)
			}
		}
	}
}

func violatedDescription(names []ConditionName) string {
	if len(names) == 0 {
		return "invariant violation"
	}
	strs := make([]string, len(names))
	for i, n := range names {
		strs[i] = string(n)
	}
	return strings.Join(strs, ", ")
}

func writeSummary(w io.Writer, s Summary) {
	_, _ = fmt.Fprintln(w, "\nModel Checking Summary:")
	_, _ = fmt.Fprintf(w, "Frames: %d\n", s.Frames)
	_, _ = fmt.Fprintf(w, "Blocked Cubes: %d\n", s.BlockedCubes)
	_, _ = fmt.Fprintf(w, "Max Obligations: %d\n", s.MaxObligations)
	_, _ = fmt.Fprintf(w, "Queries: %d\n", s.Queries)
	_, _ = fmt.Fprintf(w, "Execution Time: %dms\n", s.ExecutionTimeMs)
}

// WriteDot writes res in Graphviz DOT format. A counterexample becomes a chain
// of cubes from the initial state (bold) to the bad state (red); an invariant
// becomes a single box.
func WriteDot(w io.Writer, res Result) {
	_, _ = fmt.Fprintln(w, "digraph {")
	switch res := res.(type) {
	case *Safe:
		_, _ = fmt.Fprintf(w, "  invariant [ label=%q, shape=box ];\n", fmt.Sprintf("frame %d\n%s", res.Frame, res.Invariant))
	case *Unsafe:
		path := res.Path()
		for j, c := range path {
			_, _ = fmt.Fprintf(w, "  %d [ label=%q ];\n", j, cubeLabel(c))
			if j == 0 {
				_, _ = fmt.Fprintf(w, "  %d [ penwidth=5 ];\n", j)
			}
			if j == len(path)-1 {
				_, _ = fmt.Fprintf(w, "  %d [ color=red, penwidth=3 ];\n", j)
			}
		}
		for j := 1; j < len(path); j++ {
			_, _ = fmt.Fprintf(w, "  %d -> %d;\n", j-1, j)
		}
	}
	_, _ = fmt.Fprintln(w, "}")
}

func cubeLabel(c Cube) string {
	frame, _ := c.Frame()
	strs := []string{fmt.Sprintf("frame %d", frame)}
	for _, l := range c.Literals() {
		strs = append(strs, l.String())
	}
	return strings.Join(strs, "\n")
}

// JSON output structures
type resultJSON struct {
	Verdict   Verdict         `json:"verdict"`
	Invariant string          `json:"invariant,omitempty"`
	Frame     *int            `json:"frame,omitempty"`
	Trace     []cubeJSON      `json:"trace,omitempty"`
	Violated  []ConditionName `json:"violated,omitempty"`
	Frames    []string        `json:"frames,omitempty"`
	Summary   Summary         `json:"summary"`
}

type cubeJSON struct {
	Frame    int           `json:"frame"`
	Literals []literalJSON `json:"literals"`
}

type literalJSON struct {
	Var   string `json:"var"`
	Value bool   `json:"value"`
}

func toJSON(res Result, frames []formula.Formula) resultJSON {
	out := resultJSON{Verdict: res.Verdict(), Summary: summaryOf(res)}
	switch res := res.(type) {
	case *Safe:
		frame := res.Frame
		out.Invariant = res.Invariant.String()
		out.Frame = &frame
	case *Unsafe:
		for _, c := range res.Path() {
			frame, _ := c.Frame()
			cj := cubeJSON{Frame: frame, Literals: make([]literalJSON, 0, len(c.lits))}
			for _, l := range c.Literals() {
				cj.Literals = append(cj.Literals, literalJSON{Var: string(l.Var), Value: l.Value})
			}
			out.Trace = append(out.Trace, cj)
		}
		out.Violated = res.Violated
	}
	for _, f := range frames {
		out.Frames = append(out.Frames, f.String())
	}
	return out
}

// WriteJSON writes res as indented JSON. Counterexamples are listed in
// execution order, initial state first.
func WriteJSON(w io.Writer, res Result) error {
	return writeJSON(w, res, nil)
}

func writeJSON(w io.Writer, res Result, frames []formula.Formula) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSON(res, frames))
}
