package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/solarroi"
)

func sampleProject(t *testing.T) solarroi.Project {
	t.Helper()
	for _, p := range solarroi.DefaultProjects() {
		if p.ID == "proj-001" {
			return p
		}
	}
	t.Fatal("sample project proj-001 not found")
	return solarroi.Project{}
}

// TestTemplatesParse checks that every embedded template is valid on its own.
func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "*.md")
	if err != nil || len(files) == 0 {
		t.Fatalf("no embedded templates: %v", err)
	}
	for _, f := range files {
		content, err := fs.ReadFile(templates, f)
		if err != nil {
			t.Fatalf("failed to read template %q: %v", f, err)
		}
		if _, err := template.New(f).Parse(string(content)); err != nil {
			t.Errorf("failed to parse template %q: %v", f, err)
		}
	}
}

func TestProjectOverviewPartial(t *testing.T) {
	content, _ := fs.ReadFile(templates, "project_overview.md")
	tmpl := template.Must(template.New("overview").Parse(string(content)))
	var b strings.Builder
	err := tmpl.Execute(&b, &Project{
		ID: "p1", Capacity: 2.5, CarbonOffset: 1850, Latitude: 34.0522, Longitude: -118.2437,
		Track: 2, TrackLabel: "Full Off-Grid",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	want := `## Overview

| | |
|:---|---:|
| Project ID | p1 |
| Capacity | 2.50 MW |
| Carbon Offset | 1850 tons/yr |
| Coordinates | 34.0522, -118.2437 |
| Track | 2 · Full Off-Grid |
`
	if got := b.String(); got != want {
		t.Errorf("overview partial:\n--- want\n%s\n+++ got\n%s", want, got)
	}
}

func TestRenderProject(t *testing.T) {
	t.Setenv("SROI_TESTING_NOW", "2026-01-02 03:04:05")
	got := RenderProject(NewProject(sampleProject(t), 0))
	for _, want := range []string{
		"# Riverside Medical Campus",
		"*California · Construction · As of 2026-01-02 03:04:05*",
		"| Track | 1 · End-of-Life Replacement |",
		"| Net Present Value | $5,319,188.63 | computed |",
		"| Return on Investment | 396.2% | computed |",
		"| Simple Payback | 5.0 yrs | computed |",
		"| Capital Expenditure | $3,200,000.00 | partial |",
		"| Total Tax Benefit | $1,210,000.00 | stubbed |",
		"## Site Team",
		"| Project Managers | Sam Keller, Ana Costa |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderProject() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Preview") {
		t.Errorf("RenderProject() without preview mentions a preview:\n%s", got)
	}
}

func TestRenderProject_Preview(t *testing.T) {
	p := sampleProject(t)
	p.Meta.SiteTeam = nil
	got := RenderProject(NewProject(p, solarroi.FullOffGrid))
	for _, want := range []string{
		"*Preview of track 2 · Full Off-Grid, not committed.*",
		"| Capital Expenditure | $4,000,000.00 | partial |",
		"| Track | 1 · End-of-Life Replacement |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderProject() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Site Team") {
		t.Errorf("RenderProject() without team renders a team section:\n%s", got)
	}
}

func TestRenderPortfolio(t *testing.T) {
	projects := solarroi.DefaultProjects()
	view := NewPortfolio(projects, "stage Analysis")

	got := RenderPortfolio(view, PortfolioRenderOptions{})
	for _, want := range []string{
		"· stage Analysis*",
		"| Projects | 6 |",
		"| Green Ink | 1 |",
		"| Analysis | 2 |",
		"| proj-001 | Riverside Medical Campus | California | Construction | 1 | 2.5 MW | $5.32M | 396.2% | 5.0 yrs |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPortfolio() does not contain %q:\n%s", want, got)
		}
	}

	got = RenderPortfolio(view, PortfolioRenderOptions{SkipProjects: true})
	if strings.Contains(got, "## Projects") || !strings.Contains(got, "## Key Figures") {
		t.Errorf("RenderPortfolio(SkipProjects):\n%s", got)
	}
	got = RenderPortfolio(view, PortfolioRenderOptions{SkipStats: true})
	if !strings.Contains(got, "## Projects") || strings.Contains(got, "## Pipeline") {
		t.Errorf("RenderPortfolio(SkipStats):\n%s", got)
	}

	got = RenderPortfolio(NewPortfolio(nil, ""), PortfolioRenderOptions{})
	if !strings.Contains(got, "No project matches.") || !strings.Contains(got, "| Average ROI | 0.0% |") {
		t.Errorf("RenderPortfolio(empty):\n%s", got)
	}
}

func TestVariablesMarkdown(t *testing.T) {
	vars := solarroi.SetVariables(nil, solarroi.VariableMap{"federal_itc": 70.0, "net_metering": false})
	vars["site_code"] = "RV-1"

	got := VariablesMarkdown("Riverside", vars, "", false)
	for _, want := range []string{
		"# Model Variables · Riverside",
		"*2 variable(s) changed from the defaults*",
		"## Incentives (1 changed)",
		"| Federal ITC | federal_itc | 70% | 30% | changed, ⚠ This value is unusually high. |",
		"| Net Metering Available | net_metering | no | yes | changed |",
		"| System Capacity | system_capacity | 2.5 MW | 2.5 MW |  |",
		"| State Rebate | state_rebate | $250000 | $250000 |  |",
		"| site_code | RV-1 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("VariablesMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	got = VariablesMarkdown("Riverside", vars, "", true)
	if strings.Contains(got, "## System Configuration") || !strings.Contains(got, "## Utility Rates (1 changed)") {
		t.Errorf("VariablesMarkdown(changed only) sections:\n%s", got)
	}
}

func TestOutputsMarkdown(t *testing.T) {
	got := OutputsMarkdown("Outputs", solarroi.ComputeOutputs(nil, nil, solarroi.EndOfLifeReplacement))
	if !strings.HasPrefix(got, "# Outputs\n\n| Metric | Value | Confidence |\n") {
		t.Errorf("OutputsMarkdown() header:\n%s", got)
	}
	if !strings.Contains(got, "| First Year Savings | $635,100.00 | computed |") {
		t.Errorf("OutputsMarkdown() savings:\n%s", got)
	}
}
