package renderer

import (
	"github.com/etnz/solarroi"
)

// Portfolio is the data of the executive portfolio report.
type Portfolio struct {
	AsOf   string `json:"asOf"`
	Filter string `json:"filter,omitempty"` // human description of the active filter

	TotalProjects     int              `json:"totalProjects"`
	TotalCapacity     float64          `json:"totalCapacity"`
	TotalCarbonOffset float64          `json:"totalCarbonOffset"`
	TotalInvestment   solarroi.Money   `json:"-"`
	AverageROI        solarroi.Percent `json:"averageRoi"`
	AveragePayback    solarroi.Years   `json:"averagePayback"`
	Pipeline          []StageCount     `json:"pipeline"`
	Projects          []ProjectRow     `json:"projects"`
}

// StageCount is the number of projects in a stage.
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// ProjectRow is a project line of the portfolio list.
type ProjectRow struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location string           `json:"location"`
	Stage    string           `json:"stage"`
	Track    int              `json:"track"`
	Capacity float64          `json:"capacity"`
	NPV      solarroi.Money   `json:"-"`
	ROI      solarroi.Percent `json:"roi"`
	Payback  solarroi.Years   `json:"payback"`
}

// NewPortfolio builds the portfolio report of 'projects', typically the
// result of a filter. Pipeline counts are those of 'projects' too.
func NewPortfolio(projects []solarroi.Project, filter string) *Portfolio {
	s := solarroi.ComputeStats(projects)
	r := &Portfolio{
		AsOf:              Now().Format("2006-01-02 15:04:05"),
		Filter:            filter,
		TotalProjects:     s.TotalProjects,
		TotalCapacity:     s.TotalCapacity,
		TotalCarbonOffset: s.TotalCarbonOffset,
		TotalInvestment:   solarroi.Dollars(s.TotalInvestment),
		AverageROI:        solarroi.Percent(s.AverageROI),
		AveragePayback:    solarroi.Years(s.AveragePayback),
	}
	counts := make(map[solarroi.Stage]int)
	for _, p := range projects {
		counts[p.Stage]++
	}
	for _, st := range solarroi.Stages {
		r.Pipeline = append(r.Pipeline, StageCount{Stage: string(st), Count: counts[st]})
	}
	for _, p := range projects {
		r.Projects = append(r.Projects, ProjectRow{
			ID:       p.ID,
			Name:     p.Name,
			Location: p.Location,
			Stage:    string(p.Stage),
			Track:    int(p.Track),
			Capacity: p.Capacity,
			NPV:      solarroi.Dollars(p.Outputs.NPV.Value),
			ROI:      solarroi.Percent(p.Outputs.ROI.Value),
			Payback:  solarroi.Years(p.Outputs.Payback.Value),
		})
	}
	return r
}
