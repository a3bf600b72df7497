package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"maps"
	"os"

	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/renderer"
	"github.com/google/subcommands"
)

// computeCmd holds the flags for the 'compute' subcommand.
type computeCmd struct {
	project string
	file    string
	track   int
	json    bool
}

func (*computeCmd) Name() string { return "compute" }
func (*computeCmd) Synopsis() string {
	return "compute the financial outputs of a set of variables"
}
func (*computeCmd) Usage() string {
	return `sroi compute [-p <project id>] [-f <file>] [-track <1|2|3>] [-json] [<key>=<value>...]

  Computes NPV, ROI, payback, capex, savings and tax benefits without saving
  anything. Variables start from the catalog defaults, or from the project
  given with -p, then the file given with -f (JSON or YAML) is applied, then
  the key=value arguments.
`
}

func (c *computeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.project, "p", "", "Start from the variables and track of this project")
	f.StringVar(&c.file, "f", "", "Variables file, JSON if it ends with .json, YAML otherwise")
	f.IntVar(&c.track, "track", 0, "Track to compute under (default the project's track, or 1)")
	f.BoolVar(&c.json, "json", false, "Print the outputs as JSON")
}

func (c *computeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assignments, err := solarroi.ParseAssignments(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	track := solarroi.Track(c.track)
	if c.track != 0 && !track.Valid() {
		fmt.Fprintf(os.Stderr, "Error: invalid track %d, expected 1, 2 or 3\n", c.track)
		return subcommands.ExitUsageError
	}

	vars := solarroi.DefaultVariables()
	var intervalData any
	if c.project != "" {
		s, err := openSession(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
			return subcommands.ExitFailure
		}
		defer s.close()
		p, err := s.portfolio.Find(c.project)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		// stored values are used as is, like 'show' does.
		maps.Copy(vars, p.Variables)
		intervalData = p.IntervalData
		if c.track == 0 {
			track = p.Track
		}
	}
	if c.file != "" {
		fromFile, err := solarroi.ReadVariables(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		vars = solarroi.SetVariables(vars, fromFile)
	}
	vars = solarroi.SetVariables(vars, assignments)

	out := solarroi.ComputeOutputs(vars, intervalData, track.OrDefault())
	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding outputs: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	title := fmt.Sprintf("Outputs · Track %d · %s", track.OrDefault(), track.OrDefault().Label())
	printMarkdown(renderer.OutputsMarkdown(title, out))
	return subcommands.ExitSuccess
}
