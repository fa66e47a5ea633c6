// Package intent classifies a lead's buying intent against an offer.
//
// Two implementations of Classifier exist: a Gemini-backed one and a fixed
// fallback used when no API credential is configured. The choice is made
// once at startup; callers never see the difference, and no implementation
// ever returns an error.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"leadscore_backend/internal/scoring/domain"
)

// Result is an intent label with the model's short justification.
type Result struct {
	Intent    domain.Intent
	Reasoning string
}

// Classifier assigns a buying-intent label to a lead. Implementations
// absorb every failure mode and always return a usable Result.
type Classifier interface {
	Classify(ctx context.Context, lead domain.Lead, offer domain.Offer) Result
}

// Fixed reasoning texts for the two degraded modes. Exported so callers
// can tell an absorbed failure apart from a real classification.
const (
	NotConfiguredReasoning = "AI not configured; using default reasoning."
	ErrorReasoning         = "Default reasoning due to AI error."
)

// FallbackClassifier is the no-credential strategy: every lead is Medium
// with a fixed reasoning, deterministically and without network access.
type FallbackClassifier struct{}

// NewFallback creates the fixed-result classifier.
func NewFallback() *FallbackClassifier {
	return &FallbackClassifier{}
}

// Classify returns the fixed not-configured result.
func (f *FallbackClassifier) Classify(context.Context, domain.Lead, domain.Offer) Result {
	return Result{Intent: domain.IntentMedium, Reasoning: NotConfiguredReasoning}
}

// errorResult is what any failed classification resolves to.
func errorResult() Result {
	return Result{Intent: domain.IntentMedium, Reasoning: ErrorReasoning}
}

const systemInstruction = "You are an expert B2B lead qualification assistant."

// buildPrompt embeds the full offer and lead record as JSON and demands a
// JSON-only reply with exactly the keys intent and reasoning.
func buildPrompt(lead domain.Lead, offer domain.Offer) (string, error) {
	offerJSON, err := json.Marshal(offer)
	if err != nil {
		return "", fmt.Errorf("marshal offer: %w", err)
	}
	leadJSON, err := json.Marshal(lead)
	if err != nil {
		return "", fmt.Errorf("marshal lead: %w", err)
	}

	var b strings.Builder
	b.WriteString("Based on the following lead and offer, classify the buying intent as High, Medium, or Low, ")
	b.WriteString("and explain in 1-2 short sentences.\n\n")
	b.WriteString("Respond ONLY with a valid JSON object containing exactly the keys:\n")
	b.WriteString("- intent\n- reasoning\n\n")
	b.WriteString("Offer: ")
	b.Write(offerJSON)
	b.WriteString("\nLead: ")
	b.Write(leadJSON)
	return b.String(), nil
}

// parseResponse turns raw model output into a Result. It tolerates a
// markdown code fence around the JSON but is strict about the payload:
// it must be an object carrying both intent and reasoning.
func parseResponse(raw string) (Result, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Result{}, fmt.Errorf("parse model response: %w", err)
	}

	rawIntent, ok := data["intent"].(string)
	if !ok {
		return Result{}, fmt.Errorf("model response missing intent")
	}
	reasoning, ok := data["reasoning"].(string)
	if !ok {
		return Result{}, fmt.Errorf("model response missing reasoning")
	}

	label, _ := domain.ParseIntent(rawIntent)
	return Result{Intent: label, Reasoning: strings.TrimSpace(reasoning)}, nil
}

// extractJSON strips a surrounding markdown code fence, if present.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
