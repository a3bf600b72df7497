package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// maxCallRounds bounds the function calls an expert can chain before answering.
const maxCallRounds = 8

// Expert is a chat with a model playing one role of the assistant.
type Expert struct {
	Name        string
	Description string // how the facilitator should use this expert
	ModelName   string
	Config      *genai.GenerateContentConfig
	Library     Library // nil for experts without functions
	chat        *genai.Chat
}

// Start creates the chat session of the expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends 'parts' to the expert and returns its answer. Function calls the
// expert makes on the way are answered from its Library.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	for range maxCallRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content

		var calls []*genai.Part
		for _, part := range content.Parts {
			if part.FunctionCall == nil {
				continue
			}
			if e.Library == nil {
				return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
			}
			calls = append(calls, &genai.Part{FunctionResponse: e.Library(ctx, part.FunctionCall)})
		}
		if len(calls) == 0 {
			return content, nil
		}
		parts = calls
	}
	return nil, fmt.Errorf("expert %s made more than %d rounds of function calls", e.Name, maxCallRounds)
}

// answer joins the text parts of c.
func answer(c *genai.Content) string {
	var texts []string
	for _, part := range c.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Declaration returns the function declaration the facilitator uses to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question for the " + e.Name + ", with the project names or ids it is about.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The " + e.Name + "'s answer, in markdown.",
		},
	}
}

// Call asks the expert the question of a facilitator function call.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, _ := args["question"].(string)
	if strings.TrimSpace(question) == "" {
		return errorResponse(id, e.Name, errors.New("argument 'question' must be a non empty string"))
	}

	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("the %s could not answer: %w", e.Name, err))
	}

	r := answer(response)
	log.Printf("%s asked: %q", e.Name, question)
	return outputResponse(id, e.Name, r)
}
