package solarroi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
)

// DefaultCollection is the key the project collection is stored under.
const DefaultCollection = "microgrid-projects"

// Backend is a byte oriented key/value storage. Implementations live in the kv package.
type Backend interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// Store persists the application state in a Backend: the project collection
// and the current lens.
type Store struct {
	backend    Backend
	collection string
	seed       []Project
}

// NewStore creates a Store saving the projects under 'collection' (DefaultCollection if empty).
// 'seed' is the collection used when nothing has been stored yet.
func NewStore(backend Backend, collection string, seed []Project) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{backend: backend, collection: collection, seed: seed}
}

func (s *Store) lensKey() string { return s.collection + "/lens" }

// Load reads the portfolio.
//
// Stored records are merged over the seed project with the same id: stored
// fields win, a missing site team falls back to the seed's. Stored projects
// unknown to the seed are appended. Outputs are always recomputed. A stored
// record that cannot be read is skipped with a warning; a collection that is
// not a JSON array is reported in the log and the seed is used instead.
func (s *Store) Load(ctx context.Context) (*Portfolio, error) {
	data, ok, err := s.backend.Get(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", s.collection, err)
	}
	if !ok {
		return s.recompute(ctx, slices.Clone(s.seed))
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		log.Printf("warning: stored projects %q are corrupted, using the sample portfolio: %v", s.collection, err)
		return s.recompute(ctx, slices.Clone(s.seed))
	}

	projects := make([]Project, 0, len(s.seed)+len(raws))
	projects = append(projects, s.seed...)
	for n, raw := range raws {
		var r projectOverlay
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Printf("warning: ignoring stored project #%d of %q: %v", n+1, s.collection, err)
			continue
		}
		if r.ID == nil || *r.ID == "" {
			log.Println("warning: ignoring a stored project without id")
			continue
		}
		i := -1
		for j, p := range projects {
			if p.ID == *r.ID {
				i = j
				break
			}
		}
		if i < 0 {
			projects = append(projects, r.apply(Project{}))
			continue
		}
		projects[i] = r.apply(projects[i])
	}
	return s.recompute(ctx, projects)
}

// recompute builds the portfolio of 'projects', computing their outputs concurrently.
func (s *Store) recompute(ctx context.Context, projects []Project) (*Portfolio, error) {
	p := &Portfolio{projects: projects}
	if err := p.Recompute(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the whole project collection.
func (s *Store) Save(ctx context.Context, p *Portfolio) error {
	data, err := json.Marshal(p.Projects())
	if err != nil {
		return fmt.Errorf("cannot encode projects: %w", err)
	}
	if err := s.backend.Set(ctx, s.collection, data); err != nil {
		return fmt.Errorf("cannot write %q: %w", s.collection, err)
	}
	return nil
}

// Lens returns the stored lens, Executive if none is stored.
func (s *Store) Lens(ctx context.Context) (Lens, error) {
	data, ok, err := s.backend.Get(ctx, s.lensKey())
	if err != nil {
		return "", fmt.Errorf("cannot read lens: %w", err)
	}
	if !ok {
		return Executive, nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("warning: stored lens is corrupted, using %s: %v", Executive, err)
		return Executive, nil
	}
	l, err := ParseLens(raw)
	if err != nil {
		log.Printf("warning: %v, using %s", err, Executive)
		return Executive, nil
	}
	return l, nil
}

// SetLens stores the lens, as a JSON string.
func (s *Store) SetLens(ctx context.Context, l Lens) error {
	if _, err := ParseLens(string(l)); err != nil {
		return err
	}
	data, err := json.Marshal(string(l))
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.lensKey(), data)
}
