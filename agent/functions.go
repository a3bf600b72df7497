package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/docs"
	"github.com/etnz/solarroi/renderer"
)

// PortfolioFunctions returns the read only tools over portfolio p.
func PortfolioFunctions(p *solarroi.Portfolio) []Function {
	return []Function{listProjects(p), showProject(p), computeOutputs(p), readTopic()}
}

func listProjects(p *solarroi.Portfolio) *Func {
	const name = "ListProjects"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `ListProjects lists the projects of the portfolio with their key figures (stage, track,
			capacity, NPV, ROI, payback), the portfolio KPIs and the pipeline counts per stage.
			All the arguments are optional filters.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"search": {Type: genai.TypeString, Description: "Case insensitive text searched in the project name or location."},
					"stage":  {Type: genai.TypeString, Description: "One of Proposed, Analysis, Green Ink, Construction, Complete."},
					"region": {Type: genai.TypeString, Description: "Exact project location, like a state name."},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the matching projects.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			f := solarroi.Filter{
				Search: stringArg(args, "search"),
				Stage:  stringArg(args, "stage"),
				Region: stringArg(args, "region"),
			}
			if f.Stage != "" {
				st, err := solarroi.ParseStage(f.Stage)
				if err != nil {
					return errorResponse(id, name, err)
				}
				f.Stage = string(st)
			}
			view := renderer.NewPortfolio(p.Filter(f), "")
			return outputResponse(id, name, renderer.RenderPortfolio(view, renderer.PortfolioRenderOptions{}))
		},
	}
}

func showProject(p *solarroi.Portfolio) *Func {
	const name = "ShowProject"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `ShowProject details a project: overview, site team, outputs and all its model variables.
			With a track, the outputs are a preview under that track, the project is not modified.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":    {Type: genai.TypeString, Description: "The project id, as listed by ListProjects."},
					"track": {Type: genai.TypeInteger, Description: "Optional track to preview: 1, 2 or 3."},
				},
				Required: []string{"id"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the project.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			pr, err := p.Find(stringArg(args, "id"))
			if err != nil {
				return errorResponse(id, name, err)
			}
			track, err := trackArg(args, 0)
			if err != nil {
				return errorResponse(id, name, err)
			}
			report := renderer.RenderProject(renderer.NewProject(pr, track)) + "\n" +
				renderer.VariablesMarkdown(pr.Name, pr.Variables, "", false)
			return outputResponse(id, name, report)
		},
	}
}

func computeOutputs(p *solarroi.Portfolio) *Func {
	const name = "ComputeOutputs"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `ComputeOutputs runs the calculator on a what-if scenario. It starts from the variables
			and track of a project (or from the defaults without project), applies the given variable changes,
			and returns the outputs. Nothing is stored.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id": {Type: genai.TypeString, Description: "Optional project id to start from."},
					"variables": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: `Variable changes as "id=value", for instance "system_capacity=4" or "net_metering=false".`,
					},
					"track": {Type: genai.TypeInteger, Description: "Optional track: 1, 2 or 3."},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the outputs.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			vars := solarroi.DefaultVariables()
			track := solarroi.EndOfLifeReplacement
			title := "Outputs"
			if pid := stringArg(args, "id"); pid != "" {
				pr, err := p.Find(pid)
				if err != nil {
					return errorResponse(id, name, err)
				}
				vars, track, title = pr.Variables, pr.Track, "Outputs of "+pr.Name
			}
			var assignments []string
			if raw, ok := args["variables"].([]any); ok {
				for _, a := range raw {
					assignments = append(assignments, fmt.Sprint(a))
				}
			}
			updates, err := solarroi.ParseAssignments(assignments)
			if err != nil {
				return errorResponse(id, name, err)
			}
			if track, err = trackArg(args, track); err != nil {
				return errorResponse(id, name, err)
			}
			vars = solarroi.SetVariables(vars, updates)
			title += fmt.Sprintf(" (track %d)", track)
			return outputResponse(id, name, renderer.OutputsMarkdown(title, solarroi.ComputeOutputs(vars, nil, track)))
		},
	}
}

func readTopic() *Func {
	const name = "ReadTopic"
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "ReadTopic returns a documentation topic. Topics are: " + strings.Join(topics, ", ") + ".",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {Type: genai.TypeString, Description: "The topic name."},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The topic, in markdown.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			content, err := docs.GetTopic(stringArg(args, "topic"))
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, content)
		},
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// trackArg reads an optional track argument. JSON numbers arrive as float64.
func trackArg(args map[string]any, fallback solarroi.Track) (solarroi.Track, error) {
	v, ok := args["track"]
	if !ok || v == nil {
		return fallback, nil
	}
	n, ok := solarroi.Number(v)
	if !ok {
		return fallback, fmt.Errorf("argument 'track' must be 1, 2 or 3, got %v", v)
	}
	return solarroi.ParseTrack(fmt.Sprint(n))
}
