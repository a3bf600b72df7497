package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/solarroi"
)

// Project is the data of a project report.
type Project struct {
	AsOf         string  `json:"asOf"`
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Stage        string  `json:"stage"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Capacity     float64 `json:"capacity"`
	CarbonOffset float64 `json:"carbonOffset"`

	Track      int    `json:"track"`
	TrackLabel string `json:"trackLabel"`
	// Set when the outputs are a preview of another track than the committed one.
	PreviewTrack      int    `json:"previewTrack,omitempty"`
	PreviewTrackLabel string `json:"previewTrackLabel,omitempty"`

	Outputs []Output  `json:"outputs"`
	Team    *SiteTeam `json:"team,omitempty"`
}

// Output is one line of the outputs table.
type Output struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Confidence string `json:"confidence"`
}

// SiteTeam is the printable site team, lists already joined.
type SiteTeam struct {
	AVP              string `json:"avp"`
	AGMM             string `json:"agmm"`
	ProjectOrganizer string `json:"projectOrganizer"`
	ProjectManagers  string `json:"projectManagers"`
	TaxSupport       string `json:"taxSupport"`
}

// NewProject builds the report of p. If 'preview' is a valid track different
// from the committed one, the outputs are those of the preview.
func NewProject(p solarroi.Project, preview solarroi.Track) *Project {
	r := &Project{
		AsOf:         Now().Format("2006-01-02 15:04:05"),
		ID:           p.ID,
		Name:         p.Name,
		Location:     p.Location,
		Stage:        string(p.Stage),
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Capacity:     p.Capacity,
		CarbonOffset: p.CarbonOffset,
		Track:        int(p.Track),
		TrackLabel:   p.Track.Label(),
	}
	outputs := p.Outputs
	if preview.Valid() && preview != p.Track {
		r.PreviewTrack = int(preview)
		r.PreviewTrackLabel = preview.Label()
		outputs = p.Preview(preview)
	}
	r.Outputs = NewOutputs(outputs)
	if t := p.Meta.SiteTeam; t != nil {
		r.Team = &SiteTeam{
			AVP:              orDash(t.AVP),
			AGMM:             orDash(t.AGMM),
			ProjectOrganizer: orDash(t.ProjectOrganizer),
			ProjectManagers:  orDash(strings.Join(t.ProjectManagers, ", ")),
			TaxSupport:       orDash(strings.Join(t.TaxSupport, ", ")),
		}
	}
	return r
}

// NewOutputs formats the outputs in display order.
func NewOutputs(o solarroi.Outputs) []Output {
	line := func(label, value string, m solarroi.Metric) Output {
		return Output{Label: label, Value: value, Confidence: string(m.Confidence)}
	}
	return []Output{
		line("Net Present Value", solarroi.Dollars(o.NPV.Value).String(), o.NPV),
		line("Return on Investment", solarroi.Percent(o.ROI.Value).String(), o.ROI),
		line("Simple Payback", solarroi.Years(o.Payback.Value).String(), o.Payback),
		line("Capital Expenditure", solarroi.Dollars(o.Capex.Value).String(), o.Capex),
		line("First Year Savings", solarroi.Dollars(o.AnnualSavings.Value).String(), o.AnnualSavings),
		line("Total Tax Benefit", solarroi.Dollars(o.TotalTaxBenefit.Value).String(), o.TotalTaxBenefit),
	}
}

// OutputsMarkdown renders outputs alone, as a table, for ad hoc computations.
func OutputsMarkdown(title string, o solarroi.Outputs) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	fmt.Fprintf(&b, "| Metric | Value | Confidence |\n")
	fmt.Fprintf(&b, "|:---|---:|:---|\n")
	for _, l := range NewOutputs(o) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", l.Label, l.Value, l.Confidence)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
