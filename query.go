package solarroi

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates the JSONPath expression 'path' against the JSON form of the
// portfolio: an array of projects, as saved by the Store.
//
// For instance "$[*].outputs.npv.value" lists every project NPV, and
// `$[?(@.stage == "Analysis")].name` the names of the projects under analysis.
func Query(p *Portfolio, path string) (any, error) {
	data, err := json.Marshal(p.Projects())
	if err != nil {
		return nil, fmt.Errorf("cannot encode projects: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("cannot decode projects: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
