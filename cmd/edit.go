package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/renderer"
	"github.com/google/subcommands"
)

// editProject loads the project 'id' in the practitioner lens, applies 'edit'
// to it, and saves the portfolio. It returns the stored project.
func editProject(ctx context.Context, id string, edit func(*solarroi.Project) error) (solarroi.Project, error) {
	s, err := openSession(ctx)
	if err != nil {
		return solarroi.Project{}, err
	}
	defer s.close()
	if err := s.lens.CheckEdit(); err != nil {
		return solarroi.Project{}, err
	}
	p, err := s.portfolio.Find(id)
	if err != nil {
		return solarroi.Project{}, err
	}
	if err := edit(&p); err != nil {
		return solarroi.Project{}, err
	}
	p, err = s.portfolio.Update(p)
	if err != nil {
		return solarroi.Project{}, err
	}
	if err := s.save(ctx); err != nil {
		return solarroi.Project{}, err
	}
	return p, nil
}

// syncCapacity keeps the headline capacity in line with the system_capacity variable.
func syncCapacity(p *solarroi.Project) {
	if v, ok := p.Variables[solarroi.VarSystemCapacity]; ok {
		if n, ok := solarroi.Number(v); ok {
			p.Capacity = n
		}
	}
}

// setCmd edits model variables.
type setCmd struct{}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "edit the model variables of a project" }
func (*setCmd) Usage() string {
	return `sroi set <project id> <key>=<value>...

  Sets model variables and recomputes the outputs. Numeric catalog variables
  are clamped to their bounds. Requires the practitioner lens.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a project id and at least one key=value")
		return subcommands.ExitUsageError
	}
	updates, err := solarroi.ParseAssignments(f.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := editProject(ctx, f.Arg(0), func(p *solarroi.Project) error {
		p.Variables = solarroi.SetVariables(p.Variables, updates)
		syncCapacity(p)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		d, ok := solarroi.LookupDefinition(k)
		if !ok {
			log.Printf("warning: %q is not a catalog variable, stored as is", k)
			continue
		}
		if w := d.Warning(p.Variables[k]); w != "" {
			log.Printf("warning: %s: %s", d.Label, w)
		}
	}
	printMarkdown(renderer.OutputsMarkdown(p.Name, p.Outputs))
	return subcommands.ExitSuccess
}

// resetCmd holds the flags for the 'reset' subcommand.
type resetCmd struct {
	section string
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "restore model variables to their default" }
func (*resetCmd) Usage() string {
	return `sroi reset [-section <section>] <project id> [<key>...]

  Restores the given variables, or every variable of a section, to their
  catalog default. Without keys nor section, every variable is restored.
  Requires the practitioner lens.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.section, "section", "", "Restore every variable of this section")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a project id")
		return subcommands.ExitUsageError
	}
	if c.section != "" && !slices.Contains(solarroi.Sections(), c.section) {
		fmt.Fprintf(os.Stderr, "Error: unknown section %q, expected one of %s\n", c.section, strings.Join(solarroi.Sections(), ", "))
		return subcommands.ExitUsageError
	}
	keys := f.Args()[1:]
	for _, k := range keys {
		if _, ok := solarroi.LookupDefinition(k); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown variable %q\n", k)
			return subcommands.ExitUsageError
		}
	}

	p, err := editProject(ctx, f.Arg(0), func(p *solarroi.Project) error {
		switch {
		case c.section != "":
			p.Variables = solarroi.ResetSection(p.Variables, c.section)
			p.Variables = solarroi.ResetVariables(p.Variables, keys...)
		case len(keys) > 0:
			p.Variables = solarroi.ResetVariables(p.Variables, keys...)
		default:
			p.Variables = solarroi.DefaultVariables()
		}
		syncCapacity(p)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.OutputsMarkdown(p.Name, p.Outputs))
	return subcommands.ExitSuccess
}

// trackCmd commits a track.
type trackCmd struct{}

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "commit the track of a project" }
func (*trackCmd) Usage() string {
	return `sroi track <project id> <1|2|3>

  Commits the track of a project and recomputes its outputs:
    1  End-of-Life Replacement
    2  Full Off-Grid
    3  Critical-Load Isolation
  Use 'sroi show -track' to preview a track without committing it.
  Requires the practitioner lens.
`
}

func (c *trackCmd) SetFlags(f *flag.FlagSet) {}

func (c *trackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a project id and a track")
		return subcommands.ExitUsageError
	}
	track, err := solarroi.ParseTrack(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := editProject(ctx, f.Arg(0), func(p *solarroi.Project) error {
		p.Track = track
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProject(renderer.NewProject(p, 0)))
	return subcommands.ExitSuccess
}

// teamCmd holds the flags for the 'team' subcommand.
type teamCmd struct {
	avp       string
	agmm      string
	organizer string
	managers  string
	tax       string
}

func (*teamCmd) Name() string     { return "team" }
func (*teamCmd) Synopsis() string { return "edit the site team of a project" }
func (*teamCmd) Usage() string {
	return `sroi team <project id> [-avp <name>] [-agmm <name>] [-organizer <name>] [-managers <names>] [-tax <names>]

  Edits the site team of a project. Only the given flags are changed. Lists
  are comma separated; blank and duplicate names are dropped.
  Requires the practitioner lens.
`
}

func (c *teamCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.avp, "avp", "", "Area Vice President")
	f.StringVar(&c.agmm, "agmm", "", "Area General Maintenance Manager")
	f.StringVar(&c.organizer, "organizer", "", "Project organizer")
	f.StringVar(&c.managers, "managers", "", "Comma separated project managers")
	f.StringVar(&c.tax, "tax", "", "Comma separated tax support")
}

func (c *teamCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one project id")
		return subcommands.ExitUsageError
	}
	given := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { given[fl.Name] = true })

	p, err := editProject(ctx, f.Arg(0), func(p *solarroi.Project) error {
		var team solarroi.SiteTeam
		if p.Meta.SiteTeam != nil {
			team = *p.Meta.SiteTeam
		}
		if given["avp"] {
			team.AVP = c.avp
		}
		if given["agmm"] {
			team.AGMM = c.agmm
		}
		if given["organizer"] {
			team.ProjectOrganizer = c.organizer
		}
		if given["managers"] {
			team.ProjectManagers = strings.Split(c.managers, ",")
		}
		if given["tax"] {
			team.TaxSupport = strings.Split(c.tax, ",")
		}
		team = solarroi.NormalizeSiteTeam(team)
		p.Meta.SiteTeam = &team
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProject(renderer.NewProject(p, 0)))
	return subcommands.ExitSuccess
}

// newCmd holds the flags for the 'new' subcommand.
type newCmd struct {
	name     string
	location string
	stage    string
	capacity float64
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "add a project to the portfolio" }
func (*newCmd) Usage() string {
	return `sroi new -name <name> -location <location> [-stage <stage>] [-capacity <MW>]

  Adds a project with a fresh id and the default model variables.
  Requires the practitioner lens.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Project name")
	f.StringVar(&c.location, "location", "", "Project location")
	f.StringVar(&c.stage, "stage", string(solarroi.Proposed), "Pipeline stage")
	f.Float64Var(&c.capacity, "capacity", 0, "System capacity in MW (default the catalog default)")
}

func (c *newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.name) == "" || strings.TrimSpace(c.location) == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -location are required")
		return subcommands.ExitUsageError
	}
	stage, err := solarroi.ParseStage(c.stage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.capacity < 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid capacity %v\n", c.capacity)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()
	if err := s.lens.CheckEdit(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	p := solarroi.NewProject(c.name, c.location, stage)
	if c.capacity > 0 {
		p.Variables = solarroi.SetVariables(p.Variables, solarroi.VariableMap{solarroi.VarSystemCapacity: c.capacity})
		syncCapacity(&p)
	}
	p, err = s.portfolio.Add(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving projects: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProject(renderer.NewProject(p, 0)))
	return subcommands.ExitSuccess
}
