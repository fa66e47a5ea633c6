// Package handler exposes the scoring session over HTTP.
package handler

import (
	"net/http"

	"leadscore_backend/internal/scoring/service"
	"leadscore_backend/internal/scoring/transport"
	"leadscore_backend/platform/httpkit"
	"leadscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const exportFilename = "scored_leads.csv"

// Handler handles scoring requests.
type Handler struct {
	session        *service.Session
	val            *validator.Validator
	maxUploadBytes int64
}

// New creates a new scoring handler.
func New(session *service.Session, val *validator.Validator, maxUploadBytes int64) *Handler {
	return &Handler{session: session, val: val, maxUploadBytes: maxUploadBytes}
}

// UploadOffer stores the offer, replacing any previous one.
func (h *Handler) UploadOffer(c *gin.Context) {
	var req transport.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	offer := req.ToDomain()
	h.session.SetOffer(offer)

	httpkit.OK(c, transport.OfferResponse{
		Message: "Offer data uploaded successfully",
		Offer:   offer,
	})
}

// UploadLeads accepts a multipart CSV file and stores the lead batch,
// replacing any previous one.
func (h *Handler) UploadLeads(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing file upload", err.Error())
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		httpkit.Error(c, http.StatusBadRequest, "uploaded file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read uploaded file", err.Error())
		return
	}
	defer file.Close()

	batch, err := ParseLeadsCSV(file)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Error reading CSV", err.Error())
		return
	}

	if err := h.session.SetLeads(batch); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadsUploadResponse{
		Message: "Leads uploaded successfully",
		Rows:    len(batch.Leads),
	})
}

// Score runs one scoring pass over the uploaded batch.
func (h *Handler) Score(c *gin.Context) {
	results, err := h.session.RunScoring(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, results)
}

// Results returns the results of the most recent scoring pass.
func (h *Handler) Results(c *gin.Context) {
	results, err := h.session.Results()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, results)
}

// ExportResults streams the current results as a CSV download.
func (h *Handler) ExportResults(c *gin.Context) {
	results, err := h.session.ResultsForExport()
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)

	if err := WriteResultsCSV(c.Writer, results); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}
