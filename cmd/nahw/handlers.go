package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/cours-d-arabe/nahw"
	"github.com/cours-d-arabe/nahw/internal/metrics"
)

// ---- JSON request/response types -----------------------------------------

// analyzeRequest accepts both the current field names and the snake_case
// ones older clients send.
type analyzeRequest struct {
	Text           string   `json:"text"`
	Categories     []string `json:"categories"`
	AnalysisTypes  []string `json:"analysis_types"`
	SpecialRequest string   `json:"specialRequest"`
	SpecialSnake   string   `json:"special_request"`
}

func (r analyzeRequest) toRequest() nahw.Request {
	req := nahw.Request{
		Text:       r.Text,
		Categories: r.Categories,
		Special:    r.SpecialRequest,
	}
	if len(req.Categories) == 0 {
		req.Categories = r.AnalysisTypes
	}
	if req.Special == "" {
		req.Special = r.SpecialSnake
	}
	return req
}

type analyzeResponse struct {
	Results []nahw.MatchResult `json:"results"`
}

type categoriesResponse struct {
	Categories []nahw.CategoryInfo `json:"categories"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(c *nahw.Classifier, m *metrics.Metrics, logger *zap.Logger, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body analyzeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}
		if strings.TrimSpace(body.Text) == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}

		results, err := c.Analyze(r.Context(), body.toRequest())
		if err != nil {
			logger.Error("analyze failed",
				zap.String("request_id", requestIDFrom(r.Context())),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if results == nil {
			results = []nahw.MatchResult{}
		}
		m.ObserveMatches(results)
		writeJSON(w, http.StatusOK, analyzeResponse{Results: results})
	}
}

func handleCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, categoriesResponse{Categories: nahw.Categories()})
	}
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
