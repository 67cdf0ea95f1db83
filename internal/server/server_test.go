package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/everstacklabs/costpilot/internal/architect"
	"github.com/everstacklabs/costpilot/internal/catalog"
	"github.com/everstacklabs/costpilot/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	store, err := catalog.NewStore([]catalog.Offering{
		{Provider: "OpenAI", Name: "gpt-4", DisplayName: "GPT-4", InputCostPer1M: 30, OutputCostPer1M: 60, ContextWindow: 8192},
		{Provider: "OpenAI", Name: "gpt-4o-mini", DisplayName: "GPT-4o mini", InputCostPer1M: 0.15, OutputCostPer1M: 0.60, ContextWindow: 128000, SupportsFunctionCalling: true},
	})
	if err != nil {
		t.Fatalf("building store: %v", err)
	}

	arch := architect.New(store, architect.KeywordExtractor{})
	srv, err := New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, arch, store)
	if err != nil {
		t.Fatalf("building server: %v", err)
	}
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestOptimizeEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/architect/optimize",
		`{"use_case_description": "chatbot with function calling", "monthly_input_tokens": 10000000, "current_model": "gpt-4"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result architect.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Status != architect.StatusSuccess {
		t.Errorf("status %q, want success", result.Status)
	}
	if result.Recommendation == nil {
		t.Fatal("expected a recommendation")
	}
	if result.Savings == nil {
		t.Error("expected a savings section")
	}
	if result.Volume.MonthlyOutputTokens != 2_000_000 {
		t.Errorf("output tokens %d, want defaulted 2,000,000", result.Volume.MonthlyOutputTokens)
	}
}

func TestOptimizeInvalidInput(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/architect/optimize",
		`{"use_case_description": "chatbot", "monthly_input_tokens": 0}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestOptimizeRejectsMalformedBody(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"broken json", `{"use_case_description":`},
		{"two objects", `{"monthly_input_tokens": 1}{"monthly_input_tokens": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/architect/optimize", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", rec.Code)
			}
		})
	}
}

func TestModelsEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body struct {
		Status string            `json:"status"`
		Models []catalog.Offering `json:"models"`
		Total  int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Total != 2 || len(body.Models) != 2 {
		t.Errorf("got %d models, want 2", body.Total)
	}
}

func TestProvidersAndStatsEndpoints(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/providers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("providers status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "OpenAI") {
		t.Errorf("providers response missing OpenAI: %s", rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total_models":2`) {
		t.Errorf("unexpected stats response: %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("unexpected health response: %s", rec.Body.String())
	}
}

func TestRequestIDAssigned(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("request ID %q, want caller-supplied", got)
	}
}

func TestRateLimitExceeded(t *testing.T) {
	store, err := catalog.NewStore(catalog.Seed())
	if err != nil {
		t.Fatal(err)
	}
	arch := architect.New(store, architect.KeywordExtractor{})
	srv, err := New(config.ServerConfig{
		Host:             "127.0.0.1",
		RateLimitEnabled: true,
		OptimizePerMin:   2,
		ReadsPerMin:      2,
	}, arch, store)
	if err != nil {
		t.Fatal(err)
	}

	var last int
	for i := 0; i < 3; i++ {
		rec := doRequest(t, srv, http.MethodGet, "/api/models", "")
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status %d, want 429", last)
	}
}
