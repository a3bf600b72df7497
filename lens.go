package solarroi

import (
	"errors"
	"fmt"
	"strings"
)

// Lens is the viewing mode of the application. The executive lens is read
// only, the practitioner lens can edit and export projects.
type Lens string

const (
	Executive    Lens = "executive"
	Practitioner Lens = "practitioner"
)

// ErrReadOnlyLens is returned when a mutation is attempted outside the practitioner lens.
var ErrReadOnlyLens = errors.New("switch to the practitioner lens to edit or export a project")

// ParseLens parses "executive" or "practitioner", case insensitive.
func ParseLens(s string) (Lens, error) {
	switch l := Lens(strings.ToLower(strings.TrimSpace(s))); l {
	case Executive, Practitioner:
		return l, nil
	default:
		return "", fmt.Errorf("unknown lens %q, expected %q or %q", s, Executive, Practitioner)
	}
}

// CanEdit reports whether projects can be modified or exported under l.
func (l Lens) CanEdit() bool { return l == Practitioner }

// CheckEdit returns ErrReadOnlyLens when l cannot edit.
func (l Lens) CheckEdit() error {
	if !l.CanEdit() {
		return ErrReadOnlyLens
	}
	return nil
}
