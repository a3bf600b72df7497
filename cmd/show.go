package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	track int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a project and its outputs" }
func (*showCmd) Usage() string {
	return `sroi show [-track <1|2|3>] <project id>

  Displays the overview, the financial outputs and the site team of a project.
  With -track, the outputs are a preview under another track, the committed
  track is left unchanged.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.track, "track", 0, "Preview the outputs under this track")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one project id")
		return subcommands.ExitUsageError
	}
	preview := solarroi.Track(c.track)
	if c.track != 0 && !preview.Valid() {
		fmt.Fprintf(os.Stderr, "Error: invalid track %d, expected 1, 2 or 3\n", c.track)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	p, err := s.portfolio.Find(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProject(renderer.NewProject(p, preview)))
	return subcommands.ExitSuccess
}

// varsCmd holds the flags for the 'vars' subcommand.
type varsCmd struct {
	query   string
	changed bool
}

func (*varsCmd) Name() string     { return "vars" }
func (*varsCmd) Synopsis() string { return "display the model variables of a project" }
func (*varsCmd) Usage() string {
	return `sroi vars [-q <search>] [-changed] <project id>

  Displays the model variables of a project grouped by section, with their
  defaults and warnings for unusual values.
`
}

func (c *varsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Only list variables whose label or section contains this text")
	f.BoolVar(&c.changed, "changed", false, "Only list variables changed from their default")
}

func (c *varsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one project id")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	p, err := s.portfolio.Find(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.VariablesMarkdown(p.Name, p.Variables, c.query, c.changed))
	return subcommands.ExitSuccess
}
