package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/phuslu/log"

	"github.com/nmalahov/clarus/internal/model"
)

// maxRequestBody bounds request payloads. Both endpoints accept tiny JSON
// bodies, anything larger is abuse.
const maxRequestBody = 1 << 20

// DocumentAnalyzer produces a plain-language explanation of a legal document.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, pdfURL string) (*model.AnalysisResult, error)
}

// ClaimVerifier checks a claim against collected web evidence.
type ClaimVerifier interface {
	VerifyClaim(ctx context.Context, query string) (*model.VerificationResult, error)
}

type handler struct {
	analyzer DocumentAnalyzer
	verifier ClaimVerifier
	logger   *log.Logger
}

func newHandler(analyzer DocumentAnalyzer, verifier ClaimVerifier, logger *log.Logger) *handler {
	return &handler{analyzer: analyzer, verifier: verifier, logger: logger}
}

type analyzeRequest struct {
	PDFURL string `json:"pdf_url"`
}

type verifyRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// verifyErrorResponse carries explicit nulls and empty lists so verification
// clients can rely on the classification and sources keys being present.
type verifyErrorResponse struct {
	Status         string            `json:"status"`
	Message        string            `json:"message"`
	Classification *model.Label      `json:"classification"`
	Sources        []model.SourceRef `json:"sources"`
}

// GET /
func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status":  model.StatusError,
			"message": "not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Legal Document Analysis API",
		"version": Version,
		"endpoints": map[string]string{
			"health":         "/health",
			"legal_analysis": "/analyze-legal-document",
			"verification":   "/verify-misinformation",
		},
	})
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "API is running",
	})
}

// POST /analyze-legal-document
func (h *handler) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected JSON with 'pdf_url'")
		return
	}

	if err := validateURL(req.PDFURL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.analyzer.AnalyzeDocument(r.Context(), req.PDFURL)
	if err != nil {
		h.respondDomainError(w, r, err, false)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /verify-misinformation
func (h *handler) handleVerifyMisinformation(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected JSON with 'query'")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must be a non-empty string")
		return
	}

	result, err := h.verifier.VerifyClaim(r.Context(), req.Query)
	if err != nil {
		h.respondDomainError(w, r, err, true)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// respondDomainError maps pipeline errors to HTTP responses: known domain
// errors become 400 with the error text, anything unexpected becomes a
// generic 500 so internals never leak to clients.
func (h *handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, verifyShape bool) {
	switch {
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrNoTextExtracted),
		errors.Is(err, model.ErrExtraction),
		errors.Is(err, model.ErrRetrieval),
		errors.Is(err, model.ErrNoEvidence),
		errors.Is(err, model.ErrUpstream),
		errors.Is(err, model.ErrMissingAPIKey):
		if verifyShape {
			writeJSON(w, http.StatusBadRequest, verifyErrorResponse{
				Status:  model.StatusError,
				Message: err.Error(),
				Sources: []model.SourceRef{},
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected pipeline error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("pdf_url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.New("pdf_url must be a valid http(s) URL")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Status: model.StatusError, Message: msg})
}
