package agent

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/etnz/solarroi"
)

func call(t *testing.T, lib Library, name string, args map[string]any) (string, string) {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("%s response id/name = %q/%q", name, resp.ID, resp.Name)
	}
	out, _ := resp.Response["output"].(string)
	errMsg, _ := resp.Response["error"].(string)
	return out, errMsg
}

func TestPortfolioFunctions(t *testing.T) {
	p := solarroi.NewPortfolio(solarroi.DefaultProjects()...)
	lib := NewLibrary(PortfolioFunctions(p))

	out, errMsg := call(t, lib, "ListProjects", map[string]any{"stage": "analysis"})
	if errMsg != "" || !strings.Contains(out, "Harbor Logistics Hub") || strings.Contains(out, "Riverside Medical Campus") {
		t.Errorf("ListProjects(stage analysis) = %q, error %q", out, errMsg)
	}

	out, errMsg = call(t, lib, "ShowProject", map[string]any{"id": "proj-001", "track": 2.0})
	if errMsg != "" || !strings.Contains(out, "Preview of track 2") || !strings.Contains(out, "# Model Variables") {
		t.Errorf("ShowProject(proj-001, 2) = %q, error %q", out, errMsg)
	}

	_, errMsg = call(t, lib, "ShowProject", map[string]any{"id": "nope"})
	if errMsg == "" {
		t.Error("ShowProject(nope) should fail")
	}

	out, errMsg = call(t, lib, "ComputeOutputs", map[string]any{"variables": []any{"system_capacity=4", "net_metering=false"}, "track": 1.0})
	if errMsg != "" || !strings.Contains(out, "| Capital Expenditure | $5,120,000.00 | partial |") {
		t.Errorf("ComputeOutputs() = %q, error %q", out, errMsg)
	}

	out, errMsg = call(t, lib, "ComputeOutputs", map[string]any{"id": "proj-001"})
	if errMsg != "" || !strings.Contains(out, "# Outputs of Riverside Medical Campus (track 1)") {
		t.Errorf("ComputeOutputs(proj-001) = %q, error %q", out, errMsg)
	}

	_, errMsg = call(t, lib, "ComputeOutputs", map[string]any{"track": 9.0})
	if errMsg == "" {
		t.Error("ComputeOutputs(track 9) should fail")
	}

	out, errMsg = call(t, lib, "ReadTopic", map[string]any{"topic": "tracks"})
	if errMsg != "" || !strings.HasPrefix(out, "# Tracks") {
		t.Errorf("ReadTopic(tracks) = %q, error %q", out, errMsg)
	}

	_, errMsg = call(t, lib, "Unknown", nil)
	if errMsg != "unknown function Unknown" {
		t.Errorf("Unknown function error = %q", errMsg)
	}
}

func TestNew(t *testing.T) {
	p := solarroi.NewPortfolio()
	var out strings.Builder
	a := New(&out, strings.NewReader(""), DefaultModel, NewAnalyst(DefaultModel, p), NewResearcher(DefaultModel))

	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	if len(decls) != 2 || decls[0].Name != "Analyst" || decls[1].Name != "Researcher" {
		t.Errorf("facilitator tools = %v", decls)
	}
	if a.Facilitator.ModelName != DefaultModel {
		t.Errorf("facilitator model = %q", a.Facilitator.ModelName)
	}
}

func TestExpert_CallWithoutQuestion(t *testing.T) {
	e := NewResearcher(DefaultModel)
	for _, args := range []map[string]any{nil, {"question": "  "}, {"question": 42.0}} {
		resp := e.Call(context.Background(), "7", args)
		if resp.ID != "7" || resp.Name != "Researcher" {
			t.Errorf("Call(%v) id/name = %q/%q", args, resp.ID, resp.Name)
		}
		if msg, _ := resp.Response["error"].(string); msg == "" {
			t.Errorf("Call(%v) = %v, want an error", args, resp.Response)
		}
	}
}

func TestAnswer(t *testing.T) {
	c := &genai.Content{Parts: []*genai.Part{
		{Text: "NPV is $5.32M."},
		{FunctionCall: &genai.FunctionCall{Name: "ListProjects"}},
		{Text: "Payback is 5 years."},
	}}
	if got, want := answer(c), "NPV is $5.32M.\nPayback is 5 years."; got != want {
		t.Errorf("answer() = %q, want %q", got, want)
	}
}
