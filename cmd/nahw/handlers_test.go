package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cours-d-arabe/nahw"
	"github.com/cours-d-arabe/nahw/internal/metrics"
	"github.com/cours-d-arabe/nahw/lexicon"
)

const testLexicon = `
كان|VERB|فعل|ك.و.ن|كان
الطالبُ|NOUN|فاعل|ط.ل.ب|طالِب|مبتدأ|طلب
الكتاب|NOUN||ك.ت.ب|كِتاب|مفعول به
`

func newTestRouter(t *testing.T, a nahw.Analyzer) http.Handler {
	t.Helper()
	if a == nil {
		lex, err := lexicon.ReadPipe(strings.NewReader(testLexicon))
		require.NoError(t, err)
		a = lex
	}
	c, err := nahw.New(a)
	require.NoError(t, err)
	return newRouter(routerConfig{
		classifier:     c,
		metrics:        metrics.New(),
		logger:         zap.NewNop(),
		maxBody:        1 << 10,
		allowedOrigins: []string{"*"},
		metricsPath:    "/metrics",
	})
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResults(t *testing.T, rec *httptest.ResponseRecorder) []nahw.MatchResult {
	t.Helper()
	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Results
}

func TestAnalyze(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := post(t, h, "/analyze", `{
		"text": "كان الطالبُ مجتهدا",
		"categories": ["copula/auxiliary-verb", "active-participle"],
		"specialRequest": "اسم كان"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	want := []nahw.MatchResult{
		{Token: "كان", Type: "copula/auxiliary-verb", AdditionalDetails: []string{"الجذر: ك.و.ن", "الوزن: فعل", "نوع الكلمة: VERB", "المصدر: كان"}},
		{Token: "الطالبُ", Type: "active-participle", Details: "فاعل", AdditionalDetails: []string{"الجذر: ط.ل.ب", "الوزن: فاعل", "نوع الكلمة: NOUN", "المصدر: طالِب"}},
		{Token: "الطالبُ", Type: "اسم كان", AdditionalDetails: []string{"الجذر: ط.ل.ب", "الوزن: فاعل", "نوع الكلمة: NOUN", "المصدر: طالِب"}},
	}
	if diff := cmp.Diff(want, decodeResults(t, rec)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeSnakeCaseFields(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := post(t, h, "/api/analyze", `{"text":"الكتاب","analysis_types":["المفعول به"],"special_request":"subject-of-copula"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeResults(t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "المفعول به", got[0].Type)
}

func TestAnalyzeWireShape(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := post(t, h, "/analyze", `{"text":"ليس","categories":["النواسخ"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[{"token":"ليس","type":"النواسخ","details":"","additionalDetails":null}]}`, rec.Body.String())

	rec = post(t, h, "/analyze", `{"text":"الكتاب","categories":["nominal-sentence"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestAnalyzeBadRequests(t *testing.T) {
	h := newTestRouter(t, nil)
	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"not json", http.MethodPost, `text=كان`, http.StatusBadRequest},
		{"missing text", http.MethodPost, `{"categories":["النواسخ"]}`, http.StatusBadRequest},
		{"blank text", http.MethodPost, `{"text":"  \n"}`, http.StatusBadRequest},
		{"too large", http.MethodPost, `{"text":"` + strings.Repeat("ك", 2000) + `"}`, http.StatusRequestEntityTooLarge},
		{"wrong method", http.MethodGet, ``, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			var e errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestAnalyzeInternalErrorIsOpaque(t *testing.T) {
	failing := nahw.AnalyzerFunc(func(context.Context, []string) ([]nahw.Word, error) {
		return nil, nahw.ErrAnalyzerUnavailable
	})
	h := newTestRouter(t, failing)
	rec := post(t, h, "/analyze", `{"text":"كان","categories":["النواسخ"]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())

	metricsRec := httptest.NewRecorder()
	h.ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsRec.Body.String(), `nahw_http_requests_total{route="/analyze",status="500"} 1`)
}

func TestCategoriesEndpoint(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp categoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, nahw.Categories(), resp.Categories)
}

func TestHealthAndRequestID(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestMatchMetrics(t *testing.T) {
	h := newTestRouter(t, nil)
	post(t, h, "/analyze", `{"text":"كان ليس","categories":["copula/auxiliary-verb","النواسخ"]}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `nahw_matches_total{category="النواسخ"} 4`)
}

func TestAnalyzeCommand(t *testing.T) {
	t.Setenv("NAHW_ANALYZER_LEXICON_PATH", filepath.Join("..", "..", "data", "lexicon.ar"))
	t.Setenv("NAHW_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"analyze", "--categories", "copula/auxiliary-verb,elative-noun", "كان", "أكبر"})
	require.NoError(t, root.Execute())

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "كان", resp.Results[0].Token)
	assert.Equal(t, "elative-noun", resp.Results[1].Type)
	assert.Equal(t, "صيغة التفضيل", resp.Results[1].Details)
}

func TestAnalyzeCommandReadsStdin(t *testing.T) {
	t.Setenv("NAHW_ANALYZER_LEXICON_PATH", filepath.Join("..", "..", "data", "lexicon.ar"))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetIn(strings.NewReader("مكتوب\n"))
	root.SetArgs([]string{"analyze", "--log-level", "error", "--categories", "passive-participle"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"details": "كتب"`)
}

func TestAnalyzeCommandNoText(t *testing.T) {
	root := newRootCmd()
	root.SetIn(strings.NewReader(" "))
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"analyze"})
	assert.Error(t, root.Execute())
}
