package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadscore_backend/internal/scoring/domain"
	"leadscore_backend/platform/logger"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// contentGenerator is the minimal surface of the Gemini client used here.
// Tests substitute a canned generator.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiClassifier classifies intent with a single low-temperature
// completion per lead. One attempt, no retry; any failure resolves to the
// fixed error result and is only logged.
type GeminiClassifier struct {
	generator contentGenerator
	log       *logger.Logger
}

// NewGemini creates a classifier backed by the Gemini API.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32, log *logger.Logger) (*GeminiClassifier, error) {
	generator, err := newGenerator(ctx, apiKey, model, temperature)
	if err != nil {
		return nil, err
	}
	return &GeminiClassifier{generator: generator, log: log}, nil
}

// Classify runs one completion for the lead and parses the JSON reply.
func (g *GeminiClassifier) Classify(ctx context.Context, lead domain.Lead, offer domain.Offer) Result {
	prompt, err := buildPrompt(lead, offer)
	if err != nil {
		g.log.AIError("build_prompt", lead.Field("name"), err)
		return errorResult()
	}

	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		g.log.AIError("generate", lead.Field("name"), err)
		return errorResult()
	}

	result, err := parseResponse(raw)
	if err != nil {
		g.log.AIError("parse", lead.Field("name"), err)
		return errorResult()
	}

	return result
}

// generator wraps the Google GenAI client for simple prompt-in, text-out calls.
type generator struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func newGenerator(ctx context.Context, apiKey, model string, temperature float32) (*generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &generator{client: client, modelName: model, temperature: temperature}, nil
}

// GenerateContent sends the prompt and returns the concatenated textual parts
// of the first response.
func (g *generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
