package solarroi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExportFilename(t *testing.T) {
	tests := map[string]string{
		"Riverside Medical Campus": "riverside-medical-campus-project.json",
		"  Harbor\tHub  ":           "-harbor-hub--project.json",
		"Depot":                    "depot-project.json",
	}
	for name, want := range tests {
		if got := ExportFilename(Project{Name: name}); got != want {
			t.Errorf("ExportFilename(%q) = %q, want %q", name, got, want)
		}
	}
}

// TestExportImportProject checks that an exported project imports back identical.
func TestExportImportProject(t *testing.T) {
	want := DefaultProjects()[0]
	var buf bytes.Buffer
	if err := ExportProject(&buf, want); err != nil {
		t.Fatalf("ExportProject() error: %v", err)
	}
	got, err := ImportProject(&buf, want)
	if err != nil {
		t.Fatalf("ImportProject() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("export/import sequence is not stable (-want +got):\n%s", diff)
	}
}

func TestImportProject_Merge(t *testing.T) {
	current := DefaultProjects()[1]
	doc := `{
		"id": "someone-else",
		"name": "Harbor Hub",
		"track": 7,
		"variables": {"system_capacity": 6},
		"meta": {"siteTeam": {"avp": " Kim ", "projectManagers": ["Lee", " Lee", ""]}}
	}`
	got, err := ImportProject(strings.NewReader(doc), current)
	if err != nil {
		t.Fatalf("ImportProject() error: %v", err)
	}
	if got.ID != current.ID {
		t.Errorf("ImportProject() id = %q, want the current %q", got.ID, current.ID)
	}
	if got.Name != "Harbor Hub" || got.Location != current.Location || got.Stage != current.Stage {
		t.Errorf("ImportProject() = %+v", got)
	}
	if got.Track != current.Track {
		t.Errorf("ImportProject() track = %d, want the current %d", got.Track, current.Track)
	}
	wantTeam := &SiteTeam{AVP: "Kim", ProjectManagers: []string{"Lee"}, TaxSupport: []string{}}
	if diff := cmp.Diff(wantTeam, got.Meta.SiteTeam); diff != "" {
		t.Errorf("ImportProject() site team mismatch (-want +got):\n%s", diff)
	}
	if got.Outputs != ComputeOutputs(VariableMap{VarSystemCapacity: 6.0}, nil, current.Track) {
		t.Error("ImportProject() outputs are not recomputed from the imported variables")
	}

	if _, err := ImportProject(strings.NewReader("[1,2]"), current); err == nil {
		t.Error("ImportProject(array) succeeded, want an error")
	}
}

func TestExportImportPortfolio(t *testing.T) {
	want := NewPortfolio(DefaultProjects()...)
	var buf bytes.Buffer
	if err := ExportPortfolio(&buf, want); err != nil {
		t.Fatalf("ExportPortfolio() error: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != want.Len() {
		t.Errorf("ExportPortfolio() wrote %d lines, want %d", lines, want.Len())
	}
	exported := buf.String()

	got, err := ImportPortfolio(strings.NewReader("\n" + exported + "\n"))
	if err != nil {
		t.Fatalf("ImportPortfolio() error: %v", err)
	}
	buf.Reset()
	ExportPortfolio(&buf, got)
	if buf.String() != exported {
		t.Errorf("export/import sequence is not stable got \n%s\n want \n%s\n", buf.String(), exported)
	}

	dup := strings.Repeat(strings.SplitAfter(exported, "\n")[0], 2)
	if _, err := ImportPortfolio(strings.NewReader(dup)); err == nil {
		t.Error("ImportPortfolio(duplicated ids) succeeded, want an error")
	}
}
