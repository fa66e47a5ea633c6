// Package rules implements the deterministic half of the lead score:
// static heuristics over role seniority, industry fit against the offer's
// primary ideal use case, and record completeness.
package rules

import (
	"strings"

	"leadscore_backend/internal/scoring/domain"
)

// Factor contributions. Seniority and industry award a full or partial
// match; completeness is all-or-nothing. Sum never exceeds MaxScore.
const (
	seniorityTierAPoints = 20
	seniorityTierBPoints = 10

	industryExactPoints   = 20
	industryPartialPoints = 10

	completenessPoints = 10

	// MaxScore is the ceiling of the rule-based component.
	MaxScore = seniorityTierAPoints + industryExactPoints + completenessPoints
)

// Decision-maker titles. Tier A outranks Tier B; only the highest
// matching tier counts.
var (
	seniorityTierA = []string{"head", "director", "vp", "founder", "ceo"}
	seniorityTierB = []string{"manager", "lead", "specialist"}
)

// Score computes the rule-based score for a lead against an offer.
// Pure and total: missing fields are treated as empty and contribute nothing.
// The result is always in [0, MaxScore].
func Score(lead domain.Lead, offer domain.Offer) int {
	score := 0
	score += seniorityPoints(lead.Field("role"))
	score += industryPoints(lead.Field("industry"), offer)
	if lead.IsComplete() {
		score += completenessPoints
	}
	return score
}

// seniorityPoints awards points for decision-maker keywords in the role,
// case-insensitive substring match, highest tier wins.
func seniorityPoints(role string) int {
	role = strings.ToLower(role)
	if containsAny(role, seniorityTierA) {
		return seniorityTierAPoints
	}
	if containsAny(role, seniorityTierB) {
		return seniorityTierBPoints
	}
	return 0
}

// industryPoints matches the lead's industry against the offer's first
// ideal use case only. A full substring match of the use case beats a
// single-word overlap.
func industryPoints(industry string, offer domain.Offer) int {
	if len(offer.IdealUseCases) == 0 {
		return 0
	}

	icp := strings.ToLower(strings.TrimSpace(offer.IdealUseCases[0]))
	if icp == "" {
		return 0
	}

	industry = strings.ToLower(industry)
	if strings.Contains(industry, icp) {
		return industryExactPoints
	}
	if containsAny(industry, strings.Fields(icp)) {
		return industryPartialPoints
	}
	return 0
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
