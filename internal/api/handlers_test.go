package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	c.Request = req
	return c
}

func TestParseSearchParams(t *testing.T) {
	c := testContext(t, "/search?q=hello&author=@alice&since=2026-01-01&until=2026-01-22&limit=5")

	params, apiErr := parseSearchParams(c)
	if apiErr != nil {
		t.Fatalf("parseSearchParams() error = %v", apiErr)
	}
	if params.Query != "hello" {
		t.Errorf("Query = %q", params.Query)
	}
	if params.Author != "@alice" {
		t.Errorf("Author = %q", params.Author)
	}
	if params.Limit != 5 {
		t.Errorf("Limit = %d, want 5", params.Limit)
	}
	wantSince := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if params.Since == nil || !params.Since.Equal(wantSince) {
		t.Errorf("Since = %v, want %v", params.Since, wantSince)
	}
	if params.Until == nil {
		t.Error("Until = nil")
	}
}

func TestParseSearchParams_Defaults(t *testing.T) {
	c := testContext(t, "/search?q=hello")

	params, apiErr := parseSearchParams(c)
	if apiErr != nil {
		t.Fatalf("parseSearchParams() error = %v", apiErr)
	}
	if params.Limit != 20 {
		t.Errorf("Limit = %d, want 20", params.Limit)
	}
	if params.Since != nil || params.Until != nil {
		t.Error("date filters should default to nil")
	}
}

func TestParseSearchParams_LimitCap(t *testing.T) {
	c := testContext(t, "/search?q=hello&limit=5000")

	params, apiErr := parseSearchParams(c)
	if apiErr != nil {
		t.Fatalf("parseSearchParams() error = %v", apiErr)
	}
	if params.Limit != 100 {
		t.Errorf("Limit = %d, want 100", params.Limit)
	}
}

func TestParseSearchParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"bad limit", "/search?q=x&limit=abc"},
		{"negative limit", "/search?q=x&limit=-1"},
		{"bad since", "/search?q=x&since=January"},
		{"bad until", "/search?q=x&until=2026-13-99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t, tt.url)
			if _, apiErr := parseSearchParams(c); apiErr == nil {
				t.Error("parseSearchParams() should reject invalid input")
			} else if apiErr.Code != http.StatusBadRequest {
				t.Errorf("Code = %d, want 400", apiErr.Code)
			}
		})
	}
}

func TestResultsPayload_NilResults(t *testing.T) {
	payload := resultsPayload(nil)
	if payload["count"] != 0 {
		t.Errorf("count = %v, want 0", payload["count"])
	}
	if payload["results"] == nil {
		t.Error("results should be an empty list, not nil")
	}
}
