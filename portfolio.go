package solarroi

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Portfolio is the ordered collection of projects the application manages.
type Portfolio struct {
	projects []Project
}

// NewPortfolio creates a portfolio from 'projects', recomputing every project.
func NewPortfolio(projects ...Project) *Portfolio {
	p := &Portfolio{projects: make([]Project, 0, len(projects))}
	for _, pr := range projects {
		p.projects = append(p.projects, pr.Recompute())
	}
	return p
}

// Projects returns a copy of the projects in order.
func (p *Portfolio) Projects() []Project { return slices.Clone(p.projects) }

// Len returns the number of projects.
func (p *Portfolio) Len() int { return len(p.projects) }

// Find returns the project with id 'id'.
func (p *Portfolio) Find(id string) (Project, error) {
	i := p.index(id)
	if i < 0 {
		return Project{}, fmt.Errorf("%w: %q", ErrProjectNotFound, id)
	}
	return p.projects[i], nil
}

func (p *Portfolio) index(id string) int {
	return slices.IndexFunc(p.projects, func(pr Project) bool { return pr.ID == id })
}

// Update replaces the project with the same id, recomputing its outputs, and
// returns the stored version.
func (p *Portfolio) Update(pr Project) (Project, error) {
	i := p.index(pr.ID)
	if i < 0 {
		return Project{}, fmt.Errorf("%w: %q", ErrProjectNotFound, pr.ID)
	}
	pr = pr.Recompute()
	p.projects[i] = pr
	return pr, nil
}

// Add appends a new project. Ids must be unique.
func (p *Portfolio) Add(pr Project) (Project, error) {
	if strings.TrimSpace(pr.ID) == "" {
		return Project{}, fmt.Errorf("cannot add a project without id")
	}
	if p.index(pr.ID) >= 0 {
		return Project{}, fmt.Errorf("project %q already exists", pr.ID)
	}
	pr = pr.Recompute()
	p.projects = append(p.projects, pr)
	return pr, nil
}

// Recompute refreshes the outputs of every project concurrently.
func (p *Portfolio) Recompute(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range p.projects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// each goroutine owns index i.
			p.projects[i] = p.projects[i].Recompute()
			return nil
		})
	}
	return g.Wait()
}

// Filter selects projects in the executive view.
// Empty fields, and "All" for Stage and Region, match everything.
type Filter struct {
	Search string // case insensitive, in name or location
	Stage  string
	Region string // exact location
}

func (f Filter) match(pr Project) bool {
	q := strings.ToLower(f.Search)
	if !strings.Contains(strings.ToLower(pr.Name), q) && !strings.Contains(strings.ToLower(pr.Location), q) {
		return false
	}
	if f.Stage != "" && f.Stage != AllStages && string(pr.Stage) != f.Stage {
		return false
	}
	if f.Region != "" && f.Region != AllStages && pr.Location != f.Region {
		return false
	}
	return true
}

// Filter returns the projects matching f, in portfolio order.
func (p *Portfolio) Filter(f Filter) []Project {
	var out []Project
	for _, pr := range p.projects {
		if f.match(pr) {
			out = append(out, pr)
		}
	}
	return out
}

// Regions returns the distinct project locations, sorted.
func (p *Portfolio) Regions() []string {
	var regions []string
	for _, pr := range p.projects {
		if !slices.Contains(regions, pr.Location) {
			regions = append(regions, pr.Location)
		}
	}
	slices.Sort(regions)
	return regions
}

// Stats are the executive KPIs of a set of projects.
type Stats struct {
	TotalProjects     int
	TotalCapacity     float64 // MW
	TotalCarbonOffset float64 // tons of CO2 per year
	TotalInvestment   float64 // sum of capex, dollars
	AverageROI        float64 // percent
	AveragePayback    float64 // years
}

// ComputeStats aggregates the KPIs of 'projects'. Averages are 0 for no project.
func ComputeStats(projects []Project) Stats {
	var s Stats
	var roi, payback float64
	for _, pr := range projects {
		s.TotalProjects++
		s.TotalCapacity += pr.Capacity
		s.TotalCarbonOffset += pr.CarbonOffset
		s.TotalInvestment += pr.Outputs.Capex.Value
		roi += pr.Outputs.ROI.Value
		payback += pr.Outputs.Payback.Value
	}
	if s.TotalProjects > 0 {
		s.AverageROI = roi / float64(s.TotalProjects)
		s.AveragePayback = payback / float64(s.TotalProjects)
	}
	return s
}

// Stats returns the KPIs of the whole portfolio.
func (p *Portfolio) Stats() Stats { return ComputeStats(p.projects) }

// PipelineCounts returns the number of projects per stage. Every stage is present.
func (p *Portfolio) PipelineCounts() map[Stage]int {
	counts := make(map[Stage]int, len(Stages))
	for _, st := range Stages {
		counts[st] = 0
	}
	for _, pr := range p.projects {
		counts[pr.Stage]++
	}
	return counts
}
