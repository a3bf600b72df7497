package solarroi

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// this file contains the project import/export formats.
// A single project is an indented JSON document, readable and editable by hand.
// A whole portfolio is a JSONL file, one project per line, easy to diff and merge.

// ExportProject writes p to 'w' as an indented JSON document.
func ExportProject(w io.Writer, p Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("cannot export project %q: %w", p.ID, err)
	}
	return nil
}

var whitespaces = regexp.MustCompile(`\s+`)

// ExportFilename returns the file name a project is exported to: its name in
// lower case, whitespace runs replaced by '-', with a "-project.json" suffix.
func ExportFilename(p Project) string {
	return strings.ToLower(whitespaces.ReplaceAllString(p.Name, "-")) + "-project.json"
}

// ImportProject reads a project document from 'r' and merges it over 'current'.
//
// Fields absent from the document keep their current value. The id is always
// the current one, so a file exported from another project updates 'current'.
// An absent or invalid track keeps the current one. The site team is normalized
// and the outputs recomputed.
func ImportProject(r io.Reader, current Project) (Project, error) {
	var o projectOverlay
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return Project{}, fmt.Errorf("cannot parse project file: %w", err)
	}
	o.ID = nil
	p := o.apply(current)
	if p.Meta.SiteTeam != nil {
		team := NormalizeSiteTeam(*p.Meta.SiteTeam)
		p.Meta.SiteTeam = &team
	}
	return p.Recompute(), nil
}

// ExportPortfolio writes every project of p to 'w', one JSON object per line.
func ExportPortfolio(w io.Writer, p *Portfolio) error {
	enc := json.NewEncoder(w)
	for _, pr := range p.Projects() {
		if err := enc.Encode(pr); err != nil {
			return fmt.Errorf("cannot export project %q: %w", pr.ID, err)
		}
	}
	return nil
}

// ImportPortfolio reads a portfolio in the JSONL format written by ExportPortfolio.
// Blank lines are ignored; project ids must be unique.
func ImportPortfolio(r io.Reader) (*Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var o projectOverlay
		if err := json.Unmarshal(line, &o); err != nil {
			return nil, fmt.Errorf("cannot parse project on line %d: %w", n, err)
		}
		if _, err := p.Add(o.apply(Project{})); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read portfolio: %w", err)
	}
	return p, nil
}
