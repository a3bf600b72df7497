package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// PortfolioRenderOptions holds configuration for rendering a portfolio report.
type PortfolioRenderOptions struct {
	SkipStats    bool // Do not render the KPI and pipeline sections.
	SkipProjects bool // Do not render the project list.
}

// RenderProject renders a project report to a markdown string.
func RenderProject(p *Project) string {
	partials := map[string]string{
		"project_title":    "project_title.md",
		"project_overview": "project_overview.md",
		"project_outputs":  "project_outputs.md",
		"project_team":     "project_team.md",
	}
	return renderTemplate("project", "project.md", partials, p)
}

// RenderPortfolio renders the portfolio report to a markdown string.
func RenderPortfolio(p *Portfolio, opts PortfolioRenderOptions) string {
	partials := map[string]string{
		"portfolio_title": "portfolio_title.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipStats {
		partials["portfolio_kpis"] = "portfolio_kpis.md"
		partials["portfolio_pipeline"] = "portfolio_pipeline.md"
	} else {
		partials["portfolio_kpis"] = ""
		partials["portfolio_pipeline"] = ""
	}
	if !opts.SkipProjects {
		partials["portfolio_projects"] = "portfolio_projects.md"
	} else {
		partials["portfolio_projects"] = ""
	}
	return renderTemplate("portfolio", "portfolio.md", partials, p)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
