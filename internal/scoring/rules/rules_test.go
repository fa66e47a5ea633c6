package rules

import (
	"testing"

	"leadscore_backend/internal/scoring/domain"
)

func completeLead() domain.Lead {
	return domain.Lead{
		"name":         "A",
		"role":         "VP Sales",
		"company":      "Acme",
		"industry":     "Finance",
		"location":     "NY",
		"linkedin_bio": "bio",
	}
}

func TestScore_SeniorityTierA(t *testing.T) {
	offer := domain.Offer{}
	roles := []string{"Director of Ops", "director", "Head of Growth", "VP Engineering", "Founder", "CEO"}

	for _, role := range roles {
		lead := domain.Lead{"role": role}
		if got := Score(lead, offer); got != 20 {
			t.Fatalf("role %q: expected seniority contribution 20, got %d", role, got)
		}
	}
}

func TestScore_SeniorityTierB(t *testing.T) {
	offer := domain.Offer{}
	roles := []string{"Product Manager", "Tech Lead", "Marketing Specialist"}

	for _, role := range roles {
		lead := domain.Lead{"role": role}
		if got := Score(lead, offer); got != 10 {
			t.Fatalf("role %q: expected seniority contribution 10, got %d", role, got)
		}
	}
}

func TestScore_SeniorityTierAWinsOverTierB(t *testing.T) {
	// "Head of Lead Generation" matches both tiers; only Tier A counts.
	lead := domain.Lead{"role": "Head of Lead Generation"}
	if got := Score(lead, domain.Offer{}); got != 20 {
		t.Fatalf("expected 20 with no double counting, got %d", got)
	}
}

func TestScore_NoSeniorityMatch(t *testing.T) {
	lead := domain.Lead{"role": "Intern"}
	if got := Score(lead, domain.Offer{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScore_IndustryExactMatch(t *testing.T) {
	offer := domain.Offer{IdealUseCases: []string{"finance software"}}
	lead := domain.Lead{"industry": "Finance Software and Services"}
	if got := Score(lead, offer); got != 20 {
		t.Fatalf("expected 20 for exact use-case substring, got %d", got)
	}
}

func TestScore_IndustryWordOverlap(t *testing.T) {
	offer := domain.Offer{IdealUseCases: []string{"finance software"}}
	lead := domain.Lead{"industry": "Finance"}
	if got := Score(lead, offer); got != 10 {
		t.Fatalf("expected 10 for word overlap, got %d", got)
	}
}

func TestScore_IndustryUsesFirstUseCaseOnly(t *testing.T) {
	lead := domain.Lead{"industry": "Healthcare"}

	offer := domain.Offer{IdealUseCases: []string{"finance software", "healthcare"}}
	if got := Score(lead, offer); got != 0 {
		t.Fatalf("second use case must not be consulted, got %d", got)
	}

	// Changing a later entry never affects the score.
	offer.IdealUseCases[1] = "logistics"
	if got := Score(lead, offer); got != 0 {
		t.Fatalf("changing ideal_use_cases[1] changed the score: %d", got)
	}
}

func TestScore_NoOfferUseCases(t *testing.T) {
	lead := domain.Lead{"industry": "Finance"}
	if got := Score(lead, domain.Offer{}); got != 0 {
		t.Fatalf("expected 0 without use cases, got %d", got)
	}
}

func TestScore_CompletenessAllOrNothing(t *testing.T) {
	offer := domain.Offer{}

	for _, missing := range domain.RequiredFields {
		lead := completeLead()
		lead["role"] = "Intern" // keep seniority out of the sum
		lead[missing] = ""
		if missing == "role" {
			// Clearing role also clears seniority; score must be 0 either way.
			if got := Score(lead, offer); got != 0 {
				t.Fatalf("missing %q: expected 0, got %d", missing, got)
			}
			continue
		}
		if got := Score(lead, offer); got != 0 {
			t.Fatalf("missing %q: expected no completeness bonus, got %d", missing, got)
		}
	}

	lead := completeLead()
	lead["role"] = "Intern"
	if got := Score(lead, offer); got != 10 {
		t.Fatalf("all fields present: expected completeness bonus 10, got %d", got)
	}
}

func TestScore_RangeBounds(t *testing.T) {
	// Best case: Tier A role, exact industry match, complete record.
	offer := domain.Offer{IdealUseCases: []string{"finance"}}
	lead := completeLead()
	lead["role"] = "CEO"
	lead["industry"] = "finance"
	if got := Score(lead, offer); got != MaxScore {
		t.Fatalf("expected max %d, got %d", MaxScore, got)
	}

	// Worst case: empty lead.
	if got := Score(domain.Lead{}, offer); got != 0 {
		t.Fatalf("expected 0 for empty lead, got %d", got)
	}
}

func TestScore_SpecScenario(t *testing.T) {
	// VP Sales + word-overlap industry + complete record = 20 + 10 + 10.
	offer := domain.Offer{
		Name:          "X",
		ValueProps:    []string{"a"},
		IdealUseCases: []string{"finance software"},
	}
	if got := Score(completeLead(), offer); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
}
