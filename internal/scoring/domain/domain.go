// Package domain defines the core types for lead scoring.
package domain

import "strings"

// Intent is the AI-assigned buying-likelihood label for a lead.
type Intent string

const (
	IntentHigh   Intent = "High"
	IntentMedium Intent = "Medium"
	IntentLow    Intent = "Low"
)

// Intent point values combined with the rule score. Unrecognized labels
// fall back to the Medium value so a single odd model reply can never
// sink a scoring pass.
const (
	highPoints    = 50
	mediumPoints  = 30
	lowPoints     = 10
	unknownPoints = mediumPoints
)

// ParseIntent normalizes a raw label to a canonical Intent.
// Casing is ignored; anything unrecognized comes back as-is with ok=false
// so callers can decide whether to keep or replace it.
func ParseIntent(raw string) (Intent, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return IntentHigh, true
	case "medium":
		return IntentMedium, true
	case "low":
		return IntentLow, true
	default:
		return Intent(strings.TrimSpace(raw)), false
	}
}

// Points returns the score contribution for this intent.
func (i Intent) Points() int {
	switch i {
	case IntentHigh:
		return highPoints
	case IntentMedium:
		return mediumPoints
	case IntentLow:
		return lowPoints
	default:
		return unknownPoints
	}
}

// CombineScore produces the final lead score from the rule-based component
// and the AI intent label. No upper clamp is applied; with a rule score in
// [0, 50] the result is at most 100.
func CombineScore(ruleScore int, intent Intent) int {
	return ruleScore + intent.Points()
}

// Offer is the seller's product description used as scoring context.
// Replaced wholesale on upload; immutable for the duration of a pass.
type Offer struct {
	Name          string   `json:"name"`
	ValueProps    []string `json:"value_props"`
	IdealUseCases []string `json:"ideal_use_cases"`
}

// Lead is one prospective customer record from an uploaded batch.
// The schema is open: any column present in the upload is carried through.
type Lead map[string]string

// Field returns the trimmed value of a column, or "" when absent.
func (l Lead) Field(name string) string {
	return strings.TrimSpace(l[name])
}

// RequiredFields are the columns that must all be non-empty for the
// completeness bonus.
var RequiredFields = []string{"name", "role", "company", "industry", "location", "linkedin_bio"}

// IsComplete reports whether every required field is present and non-empty.
func (l Lead) IsComplete() bool {
	for _, field := range RequiredFields {
		if l.Field(field) == "" {
			return false
		}
	}
	return true
}

// LeadBatch is an ordered sequence of leads plus the column set of the
// upload, in original order.
type LeadBatch struct {
	Columns []string
	Leads   []Lead
}

// ScoredLead is the outcome of scoring one lead.
type ScoredLead struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Intent    Intent `json:"intent"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}
