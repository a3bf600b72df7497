package solarroi

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/etnz/solarroi/kv"
	"github.com/google/go-cmp/cmp"
)

func TestStore_LoadSeed(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), "", DefaultProjects())
	p, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(DefaultProjects(), p.Projects()); diff != "" {
		t.Errorf("Load() of an empty store mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := NewStore(backend, "", DefaultProjects())
	p, _ := s.Load(ctx)

	pr, _ := p.Find("proj-002")
	pr.Variables = SetVariables(pr.Variables, VariableMap{VarUtilityRate: 0.2})
	pr.Track = FullOffGrid
	want, _ := p.Update(pr)
	added, _ := p.Add(NewProject("Depot", "Nevada", Proposed))

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if keys := backend.Keys(); !cmp.Equal(keys, []string{DefaultCollection}) {
		t.Errorf("Save() wrote keys %v, want %v", keys, []string{DefaultCollection})
	}

	got, err := NewStore(backend, "", DefaultProjects()).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Len() != len(DefaultProjects())+1 {
		t.Errorf("Load() returned %d projects, want %d", got.Len(), len(DefaultProjects())+1)
	}
	reloaded, _ := got.Find("proj-002")
	if diff := cmp.Diff(want, reloaded); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if _, err := got.Find(added.ID); err != nil {
		t.Errorf("Load() lost the added project: %v", err)
	}
}

func TestStore_LoadMerge(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	// a partial record: only the track and name are stored, no site team.
	backend.Set(ctx, DefaultCollection, []byte(`[{"id":"proj-001","name":"Riverside Campus","track":3,"outputs":{"npv":{"value":1,"confidence":"computed"}}}]`))

	p, err := NewStore(backend, "", DefaultProjects()).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got, _ := p.Find("proj-001")
	seed := DefaultProjects()[0]
	if got.Name != "Riverside Campus" || got.Track != CriticalLoadIsolation || got.Location != seed.Location {
		t.Errorf("Load() merged project = %+v", got)
	}
	if diff := cmp.Diff(seed.Meta, got.Meta); diff != "" {
		t.Errorf("Load() site team should fall back to the seed (-want +got):\n%s", diff)
	}
	if got.Outputs != ComputeOutputs(seed.Variables, nil, CriticalLoadIsolation) {
		t.Error("Load() did not recompute the outputs")
	}
}

func TestStore_LoadCorrupted(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	backend.Set(ctx, DefaultCollection, []byte(`{not json`))
	p, err := NewStore(backend, "", DefaultProjects()).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Len() != len(DefaultProjects()) {
		t.Errorf("Load() of corrupted data returned %d projects, want the seed", p.Len())
	}
}

func TestStore_LoadSkipsBadRecords(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := NewStore(backend, "", DefaultProjects())
	p, _ := s.Load(ctx)
	mine, _ := p.Add(NewProject("Depot", "Nevada", Proposed))
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// an unknown stage and a track stored as text only spoil their own record.
	stored := fmt.Sprintf(`[{"id":%q,"stage":"Green Ink"},{"id":"x2","stage":"On Hold"},{"id":"proj-002","track":"2"}]`, mine.ID)
	backend.Set(ctx, DefaultCollection, []byte(stored))

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Len() != len(DefaultProjects())+1 {
		t.Errorf("Load() returned %d projects, want the seed and the stored one", got.Len())
	}
	pr, err := got.Find(mine.ID)
	if err != nil {
		t.Fatalf("Load() lost a stored project: %v", err)
	}
	if pr.Stage != GreenInk {
		t.Errorf("stored project stage = %q, want %q", pr.Stage, GreenInk)
	}
	if _, err := got.Find("x2"); err == nil {
		t.Error("Load() kept a record with an unknown stage")
	}
	if pr, _ := got.Find("proj-002"); pr.Track != CriticalLoadIsolation {
		t.Errorf("proj-002 track = %v, want the seed's %v", pr.Track, CriticalLoadIsolation)
	}
}

func TestStore_LoadNotAnArray(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	backend.Set(ctx, DefaultCollection, []byte(`{"id":"proj-001"}`))
	p, err := NewStore(backend, "", DefaultProjects()).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(DefaultProjects(), p.Projects()); diff != "" {
		t.Errorf("Load() of a non array mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Lens(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := NewStore(backend, "site-a", nil)

	if l, err := s.Lens(ctx); err != nil || l != Executive {
		t.Errorf("Lens() = %q, %v; want executive by default", l, err)
	}
	if err := s.SetLens(ctx, Practitioner); err != nil {
		t.Fatalf("SetLens() error: %v", err)
	}
	if l, err := s.Lens(ctx); err != nil || l != Practitioner {
		t.Errorf("Lens() = %q, %v; want practitioner", l, err)
	}
	raw, _, _ := backend.Get(ctx, "site-a/lens")
	var stored string
	if err := json.Unmarshal(raw, &stored); err != nil || stored != "practitioner" {
		t.Errorf("stored lens = %s", raw)
	}
	if err := s.SetLens(ctx, "boss"); err == nil {
		t.Error("SetLens(boss) succeeded, want an error")
	}
}
