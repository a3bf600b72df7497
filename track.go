package solarroi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Track is one of the three analysis scenarios a project is evaluated under.
type Track int

const (
	// EndOfLifeReplacement evaluates the system as a like-for-like replacement.
	EndOfLifeReplacement Track = 1
	// FullOffGrid evaluates the site running without the grid.
	FullOffGrid Track = 2
	// CriticalLoadIsolation evaluates only the critical loads being islanded.
	CriticalLoadIsolation Track = 3
)

// Tracks lists the valid tracks in order.
var Tracks = []Track{EndOfLifeReplacement, FullOffGrid, CriticalLoadIsolation}

// Modifiers are the multiplicative adjustments a track applies to the base
// assumptions, plus the track specific capacity factor.
type Modifiers struct {
	Capex          float64
	Savings        float64
	Coverage       float64
	CapacityFactor float64
}

var trackModifiers = map[Track]Modifiers{
	EndOfLifeReplacement:  {Capex: 1, Savings: 1, Coverage: 1, CapacityFactor: 0.2},
	FullOffGrid:           {Capex: 1.25, Savings: 0.85, Coverage: 0.9, CapacityFactor: 0.18},
	CriticalLoadIsolation: {Capex: 1.1, Savings: 0.7, Coverage: 0.6, CapacityFactor: 0.16},
}

// Modifiers returns the track's row of the modifier table.
// An invalid track gets the EndOfLifeReplacement row.
func (t Track) Modifiers() Modifiers {
	if m, ok := trackModifiers[t]; ok {
		return m
	}
	return trackModifiers[EndOfLifeReplacement]
}

// Valid reports whether t is one of the known tracks.
func (t Track) Valid() bool {
	_, ok := trackModifiers[t]
	return ok
}

// OrDefault returns t, or EndOfLifeReplacement when t is not valid.
func (t Track) OrDefault() Track {
	if t.Valid() {
		return t
	}
	return EndOfLifeReplacement
}

func (t Track) String() string { return fmt.Sprintf("%d", int(t)) }

// Label is the human name of the track.
func (t Track) Label() string {
	switch t {
	case EndOfLifeReplacement:
		return "End-of-Life Replacement"
	case FullOffGrid:
		return "Full Off-Grid"
	case CriticalLoadIsolation:
		return "Critical-Load Isolation"
	default:
		return "unknown"
	}
}

// ParseTrack parses "1", "2" or "3" (surrounding spaces allowed) into a Track.
func ParseTrack(s string) (Track, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return EndOfLifeReplacement, nil
	case "2":
		return FullOffGrid, nil
	case "3":
		return CriticalLoadIsolation, nil
	default:
		return 0, fmt.Errorf("unknown track %q, expected 1, 2 or 3", s)
	}
}

// UnmarshalJSON accepts the track as a number. null leaves the track unset.
func (t *Track) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid track %s: %w", data, err)
	}
	*t = Track(n)
	return nil
}
