package pdr

import (
	"context"
	"io"
)

// Check runs property-directed reachability on sys with the provided options
// and returns the verdict.
//
// Parameters:
//   - ctx: Bounds the whole run; every satisfiability query honours it
//   - sys: The transition system and its Post property
//   - opts: Configuration options such as WithEngine or WithRules
//
// Returns an error if sys is malformed, a query fails, or the context is done.
//
// Example:
//
//	res, err := pdr.Check(ctx, sys)
//	if err != nil {
//	    return err
//	}
//	if u, ok := res.(*pdr.Unsafe); ok {
//	    fmt.Println(u.Path())
//	}
func Check(ctx context.Context, sys System, opts ...Option) (Result, error) {
	c, err := New(sys, opts...)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx)
}

// Report checks sys and writes the verdict followed by a summary of the run
// to w as text.
//
// Example:
//
//	err := pdr.Report(ctx, os.Stdout, sys, pdr.WithRules(pdr.Always(mutex)))
func Report(ctx context.Context, w io.Writer, sys System, opts ...Option) error {
	res, err := Check(ctx, sys, opts...)
	if err != nil {
		return err
	}
	WriteLog(w, res)
	writeSummary(w, summaryOf(res))
	return nil
}

// Debug checks sys and writes detailed JSON results to w. Unlike WriteJSON,
// the output also lists the final frame formulas R[0..k].
//
// Example:
//
//	var buf bytes.Buffer
//	err := pdr.Debug(ctx, &buf, sys)
//	fmt.Println(buf.String()) // JSON output
func Debug(ctx context.Context, w io.Writer, sys System, opts ...Option) error {
	c, err := New(sys, opts...)
	if err != nil {
		return err
	}
	res, err := c.Run(ctx)
	if err != nil {
		return err
	}
	return writeJSON(w, res, c.Frames())
}

// Dot checks sys and writes the verdict in DOT format. The output can be
// rendered with Graphviz.
//
// Example:
//
//	file, err := os.Create("trace.dot")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//	err = pdr.Dot(ctx, file, sys)
func Dot(ctx context.Context, w io.Writer, sys System, opts ...Option) error {
	res, err := Check(ctx, sys, opts...)
	if err != nil {
		return err
	}
	WriteDot(w, res)
	return nil
}
