package agent

import (
	"google.golang.org/genai"

	"github.com/etnz/solarroi"
)

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user manages a portfolio of solar and microgrid capital projects. They come to compare
			projects, understand their economics, and explore what-if scenarios.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			The user will assume that you know their projects by name: ask the Analyst first.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates an expert grounded on Google Search, for utility
// tariffs, incentives and market news.
func NewResearcher(model string) *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an energy market researcher,
		well aware of utility tariffs, tax credits, state rebates and the solar and storage market.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in energy markets, you can search and find about utility rates,
			federal and state incentives, equipment prices and anything related to solar and microgrid projects.
			You leverage Google Search to ground your assertions in a solid truth.
			`}}},
		},
	}
}

// NewAnalyst creates the expert in charge of the project portfolio. It reads
// the portfolio and runs the calculator, it never modifies a project.
func NewAnalyst(model string, p *solarroi.Portfolio) *Expert {
	lib := PortfolioFunctions(p)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They are in charge of the user's project portfolio.
		They can list and filter projects, detail a project, and compute outputs for any set of
		model variables and track, for instance to answer what-if questions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a project finance analyst in charge of the user's portfolio of solar and microgrid projects.
				You know how to use the Tools to extract relevant information about the projects.
				You are part of a team of experts, yours is everything about the user's projects. They might ask
				you questions with approximate project names, figure out what they meant.

				Use the available tools to
				  - list and filter projects
				  - read a project's variables, track and outputs
				  - compute outputs for modified variables or another track
				  - read the documentation about how outputs are computed
			`}}},
		},
		Library: NewLibrary(lib),
	}
}
