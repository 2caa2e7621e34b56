package main

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goatx/pdr"
)

func TestCounter(t *testing.T) {
	sys, opts := createCounterModel()

	res, err := pdr.Check(context.Background(), sys, opts...)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	u, ok := res.(*pdr.Unsafe)
	if !ok {
		t.Fatalf("Check() = %T, want *pdr.Unsafe", res)
	}

	var path []string
	for _, c := range u.Path() {
		path = append(path, c.String())
	}
	expected := []string{
		"0: [hi == false, lo == false]",
		"1: [hi == false, lo == true]",
		"2: [hi == true, lo == false]",
		"3: [hi == true, lo == true]",
	}
	if diff := cmp.Diff(expected, path); diff != "" {
		t.Errorf("path mismatch (-expected +actual):\n%s", diff)
	}

	wantSummary := pdr.Summary{Frames: 4, BlockedCubes: 3, MaxObligations: 4}
	gotSummary := u.Summary
	gotSummary.Queries, gotSummary.ExecutionTimeMs = 0, 0
	if diff := cmp.Diff(wantSummary, gotSummary); diff != "" {
		t.Errorf("summary mismatch (-expected +actual):\n%s", diff)
	}

	if err := pdr.Certify(context.Background(), sys, res, opts...); err != nil {
		t.Errorf("Certify failed: %v", err)
	}
}
