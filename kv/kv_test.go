package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// backend is the contract shared by every backend of this package.
type backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

func testBackend(t *testing.T, b backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, "microgrid-projects"); err != nil || ok {
		t.Fatalf("Get() on an empty backend = ok %v, err %v, want not found", ok, err)
	}

	if err := b.Set(ctx, "microgrid-projects", []byte(`[{"id":"p1"}]`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := b.Set(ctx, "microgrid-projects/lens", []byte(`"practitioner"`)); err != nil {
		t.Fatalf("Set() nested key error: %v", err)
	}

	got, ok, err := b.Get(ctx, "microgrid-projects")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v, want found", ok, err)
	}
	if string(got) != `[{"id":"p1"}]` {
		t.Errorf("Get() = %s, want %s", got, `[{"id":"p1"}]`)
	}

	// overwrite
	if err := b.Set(ctx, "microgrid-projects", []byte(`[]`)); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	got, _, _ = b.Get(ctx, "microgrid-projects")
	if string(got) != `[]` {
		t.Errorf("Get() after overwrite = %s, want []", got)
	}

	got, ok, err = b.Get(ctx, "microgrid-projects/lens")
	if err != nil || !ok || string(got) != `"practitioner"` {
		t.Errorf("Get(lens) = %s, %v, %v; want \"practitioner\"", got, ok, err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	testBackend(t, m)

	// values are copied in and out.
	ctx := context.Background()
	value := []byte("abc")
	m.Set(ctx, "k", value)
	value[0] = 'x'
	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Get() = %s, want abc", got)
	}
	if keys := m.Keys(); len(keys) != 3 {
		t.Errorf("Keys() = %v, want 3 keys", keys)
	}
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	testBackend(t, NewDir(root))

	for _, name := range []string{"microgrid-projects.json", filepath.Join("microgrid-projects", "lens.json")} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("expected file %q: %v", name, err)
		}
	}
}

func TestDir_InvalidKeys(t *testing.T) {
	d := NewDir(t.TempDir())
	for _, key := range []string{"", "../escape", "a//b", "a/./b"} {
		if err := d.Set(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("Set(%q) succeeded, want an error", key)
		}
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "sroi.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	testBackend(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// values survive a reopen.
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() second time error: %v", err)
	}
	defer s.Close()
	got, ok, err := s.Get(context.Background(), "microgrid-projects")
	if err != nil || !ok || string(got) != `[]` {
		t.Errorf("Get() after reopen = %s, %v, %v; want []", got, ok, err)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(" "); err == nil {
		t.Error("OpenSQLite(\" \") succeeded, want an error")
	}
}

// TestRedis runs against the server in SROI_TEST_REDIS_ADDR, if any.
func TestRedis(t *testing.T) {
	addr := os.Getenv("SROI_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SROI_TEST_REDIS_ADDR is not set")
	}
	r := NewRedis(addr, "sroi-test/"+t.Name()+"/")
	defer r.Close()
	ctx := context.Background()
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
	// start clean in case a previous run left keys behind.
	r.client.Del(ctx, r.prefix+"microgrid-projects", r.prefix+"microgrid-projects/lens")
	testBackend(t, r)
}
