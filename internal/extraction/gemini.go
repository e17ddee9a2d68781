package extraction

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

//go:embed prompt.txt
var promptTemplate string

// GeminiStructurer asks Gemini to restate extracted resume text as a JSON
// Resume document. The returned string is whatever the model produced; the
// caller is responsible for parsing it.
type GeminiStructurer struct {
	client *genai.Client
	model  string
}

func NewGeminiStructurer(ctx context.Context, apiKey, model string) (*GeminiStructurer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiStructurer{client: client, model: model}, nil
}

// StructureText renders the extraction prompt around the resume text and
// returns the model's JSON output with any markdown fences stripped.
func (g *GeminiStructurer) StructureText(ctx context.Context, text string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0) // deterministic extraction
	model.ResponseMIMEType = "application/json"

	prompt := strings.ReplaceAll(promptTemplate, "{{TEXT}}", text)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", llmError(fmt.Errorf("failed to generate content: %w", err))
	}

	out, err := textFromResponse(resp)
	if err != nil {
		return "", llmError(err)
	}
	return CleanJSONBlock(out), nil
}

func (g *GeminiStructurer) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// textFromResponse concatenates the text parts of the first candidate.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
