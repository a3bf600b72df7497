package solarroi

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrProjectNotFound is returned when a project id is unknown to the portfolio.
var ErrProjectNotFound = errors.New("project not found")

// SiteTeam lists the people attached to a project site.
type SiteTeam struct {
	AVP              string   `json:"avp"`
	AGMM             string   `json:"agmm"`
	ProjectOrganizer string   `json:"projectOrganizer"`
	ProjectManagers  []string `json:"projectManagers"`
	TaxSupport       []string `json:"taxSupport"`
}

// NormalizeSiteTeam trims every name, drops empty entries from the lists and
// removes duplicates, keeping the first occurrence.
func NormalizeSiteTeam(t SiteTeam) SiteTeam {
	list := func(names []string) []string {
		out := []string{}
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n != "" && !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
		return out
	}
	return SiteTeam{
		AVP:              strings.TrimSpace(t.AVP),
		AGMM:             strings.TrimSpace(t.AGMM),
		ProjectOrganizer: strings.TrimSpace(t.ProjectOrganizer),
		ProjectManagers:  list(t.ProjectManagers),
		TaxSupport:       list(t.TaxSupport),
	}
}

// Meta holds the descriptive data of a project that the model does not read.
type Meta struct {
	SiteTeam *SiteTeam `json:"siteTeam,omitempty"`
}

// Project is a capital project of the portfolio.
type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Stage        Stage           `json:"stage"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	Capacity     float64         `json:"capacity"`     // MW
	CarbonOffset float64         `json:"carbonOffset"` // tons of CO2 per year
	Track        Track           `json:"track"`
	Variables    VariableMap     `json:"variables,omitempty"`
	IntervalData json.RawMessage `json:"intervalData,omitempty"`
	Meta         Meta            `json:"meta"`
	Outputs      Outputs         `json:"outputs"`
}

// NewProject creates a project with a fresh id, the catalog default variables
// and its outputs computed under EndOfLifeReplacement.
func NewProject(name, location string, stage Stage) Project {
	p := Project{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Location:  strings.TrimSpace(location),
		Stage:     stage,
		Track:     EndOfLifeReplacement,
		Variables: DefaultVariables(),
	}
	p.Capacity = GetNumber(p.Variables, VarSystemCapacity, defaultSystemCapacity)
	return p.Recompute()
}

// Recompute returns a copy of p with a valid track and freshly computed outputs.
func (p Project) Recompute() Project {
	p.Track = p.Track.OrDefault()
	p.Outputs = ComputeOutputs(p.Variables, p.IntervalData, p.Track)
	return p
}

// Preview computes the outputs p would have under 'track' without changing p.
func (p Project) Preview(track Track) Outputs {
	return ComputeOutputs(p.Variables, p.IntervalData, track)
}

// projectOverlay is a partially known project record: absent fields are nil
// and leave the underlying project untouched when applied.
type projectOverlay struct {
	ID           *string         `json:"id"`
	Name         *string         `json:"name"`
	Location     *string         `json:"location"`
	Stage        *Stage          `json:"stage"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Capacity     *float64        `json:"capacity"`
	CarbonOffset *float64        `json:"carbonOffset"`
	Track        *Track          `json:"track"`
	Variables    VariableMap     `json:"variables"`
	IntervalData json.RawMessage `json:"intervalData"`
	Meta         *Meta           `json:"meta"`
}

// apply merges o over base. Outputs are not carried over, callers recompute.
func (o projectOverlay) apply(base Project) Project {
	p := base
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setf := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.ID, o.ID)
	set(&p.Name, o.Name)
	set(&p.Location, o.Location)
	if o.Stage != nil {
		p.Stage = *o.Stage
	}
	setf(&p.Latitude, o.Latitude)
	setf(&p.Longitude, o.Longitude)
	setf(&p.Capacity, o.Capacity)
	setf(&p.CarbonOffset, o.CarbonOffset)
	if o.Track != nil && o.Track.Valid() {
		p.Track = *o.Track
	}
	if o.Variables != nil {
		p.Variables = o.Variables
	}
	if len(o.IntervalData) > 0 && string(o.IntervalData) != "null" {
		p.IntervalData = o.IntervalData
	}
	if o.Meta != nil && o.Meta.SiteTeam != nil {
		p.Meta.SiteTeam = o.Meta.SiteTeam
	}
	return p
}
