package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir stores every key as a JSON file under a root directory. Slashes in keys
// become sub directories: key "microgrid-projects/lens" is the file
// "<root>/microgrid-projects/lens.json".
type Dir struct {
	root string
}

// NewDir returns a Dir backend rooted at 'root'. The directory is created on first write.
func NewDir(root string) *Dir { return &Dir{root: root} }

func (d *Dir) filename(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("invalid key %q", key)
		}
	}
	return filepath.Join(d.root, filepath.FromSlash(key)+".json"), nil
}

func (d *Dir) Get(_ context.Context, key string) ([]byte, bool, error) {
	name, err := d.filename(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not read %q: %w", name, err)
	}
	return data, true, nil
}

// Set writes the value to a temporary file first and renames it, so that a
// crash never leaves a truncated file behind.
func (d *Dir) Set(_ context.Context, key string, value []byte) error {
	name, err := d.filename(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", name, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return nil
}
