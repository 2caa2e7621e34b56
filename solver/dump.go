package solver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goatx/pdr/formula"
	"github.com/goatx/pdr/internal/cnf"
)

// Dump is a Backend that writes every satisfiability query to Dir as a DIMACS
// file (query-0001.cnf, query-0002.cnf, ...) before passing it to the wrapped
// backend. The files can be replayed with any DIMACS solver.
type Dump struct {
	Backend
	Dir string

	mu sync.Mutex
	n  int
}

// NewDump wraps b so that its queries are saved under dir. The directory is
// created if needed.
func NewDump(b Backend, dir string) (*Dump, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create dump directory: %w", err)
	}
	return &Dump{Backend: b, Dir: dir}, nil
}

// CheckSat implements Backend.
func (d *Dump) CheckSat(ctx context.Context, f formula.Formula) (formula.Model, bool, error) {
	if err := d.write(f); err != nil {
		return nil, false, err
	}
	return d.Backend.CheckSat(ctx, f)
}

// Written returns how many queries have been saved.
func (d *Dump) Written() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}

func (d *Dump) write(f formula.Formula) error {
	d.mu.Lock()
	d.n++
	name := filepath.Join(d.Dir, fmt.Sprintf("query-%04d.cnf", d.n))
	d.mu.Unlock()

	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create query dump: %w", err)
	}
	if err := cnf.Encode(f).WriteDimacs(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not write query dump: %w", err)
	}
	return nil
}
