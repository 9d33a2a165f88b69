package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"canteen/internal/config"
	"canteen/internal/metrics"
	"canteen/internal/searchlog"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	store := searchlog.NewWorkbookStore(filepath.Join(t.TempDir(), "search_log.xlsx"))
	session := searchlog.NewSession(store, nil)

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewTermCollector(store))
	s := New(cfg)
	s.RegisterRoutes(session, reg)
	return s
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:            "http://localhost:3000",
		RateLimitPerMinute: 100,
		SuggestLimit:       5,
	}
}

// TestRoutesRegistered verifies the search log endpoints respond through the
// full middleware stack.
func TestRoutesRegistered(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/healthz", "", 200},
		{http.MethodGet, "/search?q=apple", "", 200},
		{http.MethodPost, "/api/searches", `{"term":"pear"}`, 200},
		{http.MethodGet, "/api/search-terms", "", 200},
		{http.MethodGet, "/api/search-terms/suggest?q=appl", "", 200},
		{http.MethodGet, "/api/search-terms/export", "", 200},
		{http.MethodGet, "/nope", "", 404},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			resp, err := s.App.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.status {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
		})
	}
}

func TestNotFoundUsesJSONEnvelope(t *testing.T) {
	s := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"error"`) {
		t.Errorf("body = %s, want JSON error envelope", body)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	s := newTestServer(t, cfg)

	var last int
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
		resp, err := s.App.Test(req)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
