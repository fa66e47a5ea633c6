// Package service holds the scoring session: the current offer, the current
// lead batch, and the most recent results, together with the scoring pass
// that ties the rule scorer and the intent classifier together.
package service

import (
	"context"
	"sync"
	"time"

	"leadscore_backend/internal/scoring/domain"
	"leadscore_backend/internal/scoring/intent"
	"leadscore_backend/internal/scoring/rules"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Fixed API error messages. These are part of the public contract.
const (
	msgMissingInputs  = "Please upload both offer and leads first."
	msgNoResults      = "No scored results available. Run /score first."
	msgNoExport       = "No scored results available to export."
	msgNoLeadsInBatch = "Uploaded CSV contains no lead rows."
)

const defaultConcurrency = 4

// Session is the single process-wide scoring session. All three slots are
// guarded by one mutex; the access pattern is too simple to benefit from
// anything finer.
type Session struct {
	classifier  intent.Classifier
	log         *logger.Logger
	concurrency int

	mu      sync.Mutex
	offer   *domain.Offer
	batch   *domain.LeadBatch
	results []domain.ScoredLead
}

// New creates an empty session. concurrency bounds simultaneous AI calls
// during a pass; values below 1 fall back to the default.
func New(classifier intent.Classifier, log *logger.Logger, concurrency int) *Session {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Session{
		classifier:  classifier,
		log:         log,
		concurrency: concurrency,
	}
}

// SetOffer replaces the offer slot unconditionally.
func (s *Session) SetOffer(offer domain.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offer = &offer
}

// SetLeads replaces the lead batch slot unconditionally. Upload order is
// preserved. An empty batch is rejected so a later pass cannot silently
// produce zero results.
func (s *Session) SetLeads(batch domain.LeadBatch) error {
	if len(batch.Leads) == 0 {
		return apperr.Validation(msgNoLeadsInBatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &batch
	return nil
}

// Offer returns the current offer, or false when none is uploaded.
func (s *Session) Offer() (domain.Offer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offer == nil {
		return domain.Offer{}, false
	}
	return *s.offer, true
}

// LeadCount returns the size of the current batch.
func (s *Session) LeadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return 0
	}
	return len(s.batch.Leads)
}

// RunScoring scores every lead in the current batch against the current
// offer and replaces the results slot wholesale.
//
// The offer and batch are snapshotted under the lock, the pass itself runs
// with the lock released (AI calls are slow), and the finished slice is
// swapped in atomically. Leads are classified concurrently up to the
// session's bound; the result sequence always preserves input order because
// each worker writes to its own index. A per-lead AI failure never aborts
// the pass; the classifier resolves it to the fixed fallback internally.
func (s *Session) RunScoring(ctx context.Context) ([]domain.ScoredLead, error) {
	s.mu.Lock()
	if s.offer == nil || s.batch == nil || len(s.batch.Leads) == 0 {
		s.mu.Unlock()
		return nil, apperr.Precondition(msgMissingInputs)
	}
	offer := *s.offer
	leads := s.batch.Leads
	s.mu.Unlock()

	start := time.Now()
	scored := make([]domain.ScoredLead, len(leads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, lead := range leads {
		g.Go(func() error {
			scored[i] = s.scoreLead(gctx, lead, offer)
			return nil
		})
	}
	// Workers never return errors; Wait only collects them.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		// Client went away mid-pass; keep the previous results intact.
		return nil, apperr.Wrap(apperr.KindInternal, "scoring pass canceled", err)
	}

	s.mu.Lock()
	s.results = scored
	s.mu.Unlock()

	s.log.WithContext(ctx).ScoringPass(len(scored), countAIFailures(scored), float64(time.Since(start).Milliseconds()))
	return scored, nil
}

// scoreLead computes one lead's final score: rule component plus intent points.
func (s *Session) scoreLead(ctx context.Context, lead domain.Lead, offer domain.Offer) domain.ScoredLead {
	ruleScore := rules.Score(lead, offer)
	classified := s.classifier.Classify(ctx, lead, offer)

	return domain.ScoredLead{
		Name:      lead.Field("name"),
		Role:      lead.Field("role"),
		Company:   lead.Field("company"),
		Intent:    classified.Intent,
		Score:     domain.CombineScore(ruleScore, classified.Intent),
		Reasoning: classified.Reasoning,
	}
}

// Results returns the current results sequence, or a not-found error when
// no pass has run since the last restart.
func (s *Session) Results() ([]domain.ScoredLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return nil, apperr.NotFound(msgNoResults)
	}
	return s.results, nil
}

// ResultsForExport is Results with the export-specific empty message.
func (s *Session) ResultsForExport() ([]domain.ScoredLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return nil, apperr.NotFound(msgNoExport)
	}
	return s.results, nil
}

func countAIFailures(scored []domain.ScoredLead) int {
	failures := 0
	for _, lead := range scored {
		if lead.Reasoning == intent.ErrorReasoning {
			failures++
		}
	}
	return failures
}
