package solarroi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Stage is the position of a project in the development pipeline.
type Stage string

const (
	Proposed     Stage = "Proposed"
	Analysis     Stage = "Analysis"
	GreenInk     Stage = "Green Ink"
	Construction Stage = "Construction"
	Complete     Stage = "Complete"
)

// AllStages is the filter value that matches every stage.
const AllStages = "All"

// Stages lists the pipeline stages in order.
var Stages = []Stage{Proposed, Analysis, GreenInk, Construction, Complete}

// ParseStage parses a stage name, case insensitive. "green-ink" and
// "greenink" are accepted for "Green Ink".
func ParseStage(s string) (Stage, error) {
	norm := strings.ToLower(strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), ""))
	for _, st := range Stages {
		if strings.ToLower(strings.ReplaceAll(string(st), " ", "")) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// UnmarshalJSON validates the stage. An empty stage is accepted and stays empty.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid stage %s: %w", data, err)
	}
	if str == "" {
		*s = ""
		return nil
	}
	st, err := ParseStage(str)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
