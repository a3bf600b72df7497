package solarroi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuery(t *testing.T) {
	p := NewPortfolio(DefaultProjects()...)

	got, err := Query(p, `$[?(@.stage == "Analysis")].name`)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	want := []any{"Harbor Logistics Hub", "Pine Hollow Emergency Operations"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}

	got, err = Query(p, `$[0].outputs.capex.value`)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if got != 3200000.0 {
		t.Errorf("Query(capex) = %v, want 3200000", got)
	}

	if _, err := Query(p, `$[`); err == nil {
		t.Error("Query(invalid) succeeded, want an error")
	}
}
