package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	search string
	stage  string
	region string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the projects of the portfolio" }
func (*listCmd) Usage() string {
	return `sroi list [-q <search>] [-stage <stage>] [-region <location>]

  Lists the projects with their key outputs, followed by the KPIs and the
  pipeline of the listed projects.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "q", "", "Search in project names and locations (case insensitive)")
	f.StringVar(&c.stage, "stage", solarroi.AllStages, "Only list projects in this stage")
	f.StringVar(&c.region, "region", solarroi.AllStages, "Only list projects at this location")
}

func (c *listCmd) filter() (solarroi.Filter, string, error) {
	f := solarroi.Filter{Search: c.search, Stage: c.stage, Region: c.region}
	if c.stage != "" && c.stage != solarroi.AllStages {
		st, err := solarroi.ParseStage(c.stage)
		if err != nil {
			return f, "", err
		}
		f.Stage = string(st)
	}
	var desc []string
	if c.search != "" {
		desc = append(desc, fmt.Sprintf("matching %q", c.search))
	}
	if f.Stage != "" && f.Stage != solarroi.AllStages {
		desc = append(desc, "in stage "+f.Stage)
	}
	if f.Region != "" && f.Region != solarroi.AllStages {
		desc = append(desc, "in "+f.Region)
	}
	return f, strings.Join(desc, ", "), nil
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, desc, err := c.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	report := renderer.NewPortfolio(s.portfolio.Filter(filter), desc)
	printMarkdown(renderer.RenderPortfolio(report, renderer.PortfolioRenderOptions{}))
	return subcommands.ExitSuccess
}

// statsCmd prints the portfolio KPIs only.
type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display the portfolio KPIs and pipeline" }
func (*statsCmd) Usage() string {
	return `sroi stats

  Displays the total capacity, carbon offset and investment of the portfolio,
  its average ROI and payback, and the number of projects per stage.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	report := renderer.NewPortfolio(s.portfolio.Projects(), "")
	printMarkdown(renderer.RenderPortfolio(report, renderer.PortfolioRenderOptions{SkipProjects: true}))
	return subcommands.ExitSuccess
}
