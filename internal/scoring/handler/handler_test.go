package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadscore_backend/internal/scoring/domain"
	"leadscore_backend/internal/scoring/intent"
	"leadscore_backend/internal/scoring/service"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	session := service.New(intent.NewFallback(), logger.New("test"), 2)
	h := New(session, validator.New(), 1<<20)

	engine := gin.New()
	engine.POST("/offer", h.UploadOffer)
	engine.POST("/leads/upload", h.UploadLeads)
	engine.POST("/score", h.Score)
	engine.GET("/results", h.Results)
	engine.GET("/results/export", h.ExportResults)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func uploadOffer(t *testing.T, engine *gin.Engine) {
	t.Helper()
	offer := `{"name":"X","value_props":["a"],"ideal_use_cases":["finance software"]}`
	rec := doRequest(t, engine, http.MethodPost, "/offer", "application/json", []byte(offer))
	if rec.Code != http.StatusOK {
		t.Fatalf("offer upload failed: %d %s", rec.Code, rec.Body.String())
	}
}

func uploadLeads(t *testing.T, engine *gin.Engine, csvText string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "leads.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csvText)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return doRequest(t, engine, http.MethodPost, "/leads/upload", writer.FormDataContentType(), buf.Bytes())
}

const leadsCSV = "name,role,company,industry,location,linkedin_bio\n" +
	"A,VP Sales,Acme,Finance,NY,bio\n" +
	"B,Intern,Beta,Retail,LA,bio2\n"

func TestScoreBeforeUploads(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, http.MethodPost, "/score", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please upload both offer and leads first.") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	// Results stay empty.
	rec = doRequest(t, engine, http.MethodGet, "/results", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No scored results available. Run /score first.") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestOfferValidation(t *testing.T) {
	engine := newTestRouter()

	cases := []string{
		`{}`,
		`{"name":"X"}`,
		`{"name":"X","value_props":[],"ideal_use_cases":["a"]}`,
		`not json`,
	}
	for _, body := range cases {
		rec := doRequest(t, engine, http.MethodPost, "/offer", "application/json", []byte(body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestOfferEcho(t *testing.T) {
	engine := newTestRouter()
	offer := `{"name":"X","value_props":["a"],"ideal_use_cases":["finance software"]}`

	rec := doRequest(t, engine, http.MethodPost, "/offer", "application/json", []byte(offer))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Message string       `json:"message"`
		Offer   domain.Offer `json:"offer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Offer.Name != "X" || len(resp.Offer.IdealUseCases) != 1 {
		t.Fatalf("offer not echoed: %+v", resp.Offer)
	}
}

func TestLeadsUpload(t *testing.T) {
	engine := newTestRouter()

	rec := uploadLeads(t, engine, leadsCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Rows    int    `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Rows != 2 {
		t.Fatalf("expected 2 rows, got %d", resp.Rows)
	}
}

func TestLeadsUploadMalformed(t *testing.T) {
	engine := newTestRouter()

	rec := uploadLeads(t, engine, "name,role\n\"broken\n")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error reading CSV") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	// Missing file field.
	rec = doRequest(t, engine, http.MethodPost, "/leads/upload", "multipart/form-data; boundary=x", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", rec.Code)
	}
}

func TestFullScoringFlow(t *testing.T) {
	engine := newTestRouter()

	uploadOffer(t, engine)
	if rec := uploadLeads(t, engine, leadsCSV); rec.Code != http.StatusOK {
		t.Fatalf("leads upload failed: %d", rec.Code)
	}

	rec := doRequest(t, engine, http.MethodPost, "/score", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var results []domain.ScoredLead
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Lead A: seniority 20 + industry word overlap 10 + complete 10 + Medium 30.
	if results[0].Name != "A" || results[0].Score != 70 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	// Lead B: no seniority, no industry match, complete 10 + Medium 30.
	if results[1].Name != "B" || results[1].Score != 40 {
		t.Fatalf("unexpected second result: %+v", results[1])
	}

	// /results returns the same sequence.
	rec = doRequest(t, engine, http.MethodGet, "/results", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Export is a CSV attachment.
	rec = doRequest(t, engine, http.MethodGet, "/results/export", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "scored_leads.csv") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
}

func TestExportWithoutResults(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, http.MethodGet, "/results/export", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No scored results available to export.") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
