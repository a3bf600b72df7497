package solarroi

import (
	"encoding/json"
	"testing"
)

func TestTrack_Modifiers(t *testing.T) {
	tests := []struct {
		track Track
		want  Modifiers
	}{
		{EndOfLifeReplacement, Modifiers{1, 1, 1, 0.2}},
		{FullOffGrid, Modifiers{1.25, 0.85, 0.9, 0.18}},
		{CriticalLoadIsolation, Modifiers{1.1, 0.7, 0.6, 0.16}},
		{0, Modifiers{1, 1, 1, 0.2}},
		{7, Modifiers{1, 1, 1, 0.2}},
	}
	for _, tt := range tests {
		if got := tt.track.Modifiers(); got != tt.want {
			t.Errorf("Track(%d).Modifiers() = %+v, want %+v", tt.track, got, tt.want)
		}
	}
}

func TestParseTrack(t *testing.T) {
	for _, s := range []string{"1", " 2", "3 "} {
		if _, err := ParseTrack(s); err != nil {
			t.Errorf("ParseTrack(%q) error: %v", s, err)
		}
	}
	for _, s := range []string{"", "0", "4", "two"} {
		if _, err := ParseTrack(s); err == nil {
			t.Errorf("ParseTrack(%q) succeeded, want an error", s)
		}
	}
}

func TestTrack_UnmarshalJSON(t *testing.T) {
	var p struct {
		Track Track `json:"track"`
	}
	if err := json.Unmarshal([]byte(`{"track": null}`), &p); err != nil || p.Track != 0 {
		t.Errorf("null track = %v, %v; want unset", p.Track, err)
	}
	if err := json.Unmarshal([]byte(`{"track": 2}`), &p); err != nil || p.Track != FullOffGrid {
		t.Errorf("track 2 = %v, %v; want FullOffGrid", p.Track, err)
	}
	if err := json.Unmarshal([]byte(`{"track": "x"}`), &p); err == nil {
		t.Error("string track succeeded, want an error")
	}
	if got := Track(0).OrDefault(); got != EndOfLifeReplacement {
		t.Errorf("OrDefault() = %v, want 1", got)
	}
}

func TestParseStage(t *testing.T) {
	tests := map[string]Stage{
		"proposed":     Proposed,
		"Green Ink":    GreenInk,
		"green-ink":    GreenInk,
		"greenink":     GreenInk,
		"CONSTRUCTION": Construction,
	}
	for s, want := range tests {
		got, err := ParseStage(s)
		if err != nil || got != want {
			t.Errorf("ParseStage(%q) = %q, %v; want %q", s, got, err, want)
		}
	}
	if _, err := ParseStage("built"); err == nil {
		t.Error("ParseStage(built) succeeded, want an error")
	}
}

func TestParseLens(t *testing.T) {
	if l, err := ParseLens(" Practitioner"); err != nil || !l.CanEdit() {
		t.Errorf("ParseLens(Practitioner) = %q, %v; want an editable lens", l, err)
	}
	if l, err := ParseLens("executive"); err != nil || l.CheckEdit() != ErrReadOnlyLens {
		t.Errorf("ParseLens(executive) = %q, %v; want a read only lens", l, err)
	}
	if _, err := ParseLens("manager"); err == nil {
		t.Error("ParseLens(manager) succeeded, want an error")
	}
}
