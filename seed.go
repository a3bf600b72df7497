package solarroi

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

// DefaultProjects returns the sample portfolio used until projects are stored.
//
// Sample variables only list what differs from the catalog defaults; the
// returned projects carry the full variable set, outputs computed.
func DefaultProjects() []Project {
	var projects []Project
	if err := json.Unmarshal(seedJSON, &projects); err != nil {
		panic(fmt.Sprintf("invalid embedded sample projects: %v", err))
	}
	for i, p := range projects {
		p.Variables = SetVariables(nil, p.Variables)
		projects[i] = p.Recompute()
	}
	return projects
}
