// Package scoring provides the lead scoring bounded context: one in-memory
// session holding the current offer, lead batch, and scoring results.
package scoring

import (
	apphttp "leadscore_backend/internal/http"
	"leadscore_backend/internal/scoring/handler"
	"leadscore_backend/internal/scoring/intent"
	"leadscore_backend/internal/scoring/service"
	"leadscore_backend/platform/config"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"
)

// Module is the scoring bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	session *service.Session
}

// NewModule creates and initializes the scoring module with all its
// dependencies. The classifier strategy (Gemini-backed or fixed fallback)
// is chosen by the composition root and injected here.
func NewModule(classifier intent.Classifier, cfg config.ScoringConfig, val *validator.Validator, log *logger.Logger) *Module {
	session := service.New(classifier, log, cfg.GetScoringConcurrency())
	h := handler.New(session, val, cfg.GetMaxUploadBytes())

	return &Module{
		handler: h,
		session: session,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scoring"
}

// Session returns the session for external use (tests, diagnostics).
func (m *Module) Session() *service.Session {
	return m.session
}

// RegisterRoutes mounts the scoring routes on the provided router context.
// Route shapes match the public API contract and are mounted at the root.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/offer", m.handler.UploadOffer)
	ctx.API.POST("/leads/upload", m.handler.UploadLeads)
	ctx.API.POST("/score", m.handler.Score)
	ctx.API.GET("/results", m.handler.Results)
	ctx.API.GET("/results/export", m.handler.ExportResults)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
