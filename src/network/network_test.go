package network

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
)

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *APIClient {
	t.Helper()
	c, err := NewAPIClient(baseURL, models.MNetworkConfig{UserAgent: "k-stock-insight/test"}, timeout,
		logger.New(io.Discard, slog.LevelError, "test"))
	if err != nil {
		t.Fatalf("NewAPIClient() error = %v", err)
	}
	return c
}

func TestGetSendsRequest(t *testing.T) {
	var got *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL+"/", time.Second)
	body, err := c.Get(context.Background(), "/api/stocks", map[string]string{"market": "KOSPI", "search": "삼성"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != `{"status":"healthy"}` {
		t.Fatalf("body = %s", body)
	}

	if got.Method != http.MethodGet || got.URL.Path != "/api/stocks" {
		t.Errorf("request = %s %s", got.Method, got.URL.Path)
	}
	if q := got.URL.Query(); q.Get("market") != "KOSPI" || q.Get("search") != "삼성" {
		t.Errorf("query = %v", q)
	}
	if ct := got.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if ua := got.Header.Get("User-Agent"); ua != "k-stock-insight/test" {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestGetJoinsBaseURL(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "bare host", baseURL: ts.URL, want: "/api/stats"},
		{name: "trailing slash", baseURL: ts.URL + "/", want: "/api/stats"},
		{name: "path prefix", baseURL: ts.URL + "/backend/", want: "/backend/api/stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.baseURL, time.Second)
			if c.BaseURL != tt.baseURL {
				t.Fatalf("BaseURL = %q; want %q", c.BaseURL, tt.baseURL)
			}
			if _, err := c.Get(context.Background(), "/api/stats", nil); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if gotPath != tt.want {
				t.Errorf("path = %q; want %q", gotPath, tt.want)
			}
		})
	}
}

func TestGetApplicationErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantMsg    string
	}{
		{
			name:       "string detail",
			status:     http.StatusNotFound,
			body:       `{"detail":"종목을 찾을 수 없습니다: 999999"}`,
			wantDetail: "종목을 찾을 수 없습니다: 999999",
			wantMsg:    "종목을 찾을 수 없습니다: 999999",
		},
		{
			name:       "validation list",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":[{"loc":["query","limit"],"msg":"bad"}]}`,
			wantDetail: `[{"loc":["query","limit"],"msg":"bad"}]`,
			wantMsg:    `[{"loc":["query","limit"],"msg":"bad"}]`,
		},
		{
			name:    "no detail",
			status:  http.StatusInternalServerError,
			body:    `{"error":"x"}`,
			wantMsg: "Request failed with status code 500",
		},
		{
			name:    "not json",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "Request failed with status code 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := newTestClient(t, ts.URL, time.Second).Get(context.Background(), "/api/stats", nil)

			var appErr *helpers.ApplicationError
			if !errors.As(err, &appErr) {
				t.Fatalf("Get() error = %v; want *helpers.ApplicationError", err)
			}
			if appErr.Status != tt.status {
				t.Errorf("Status = %d; want %d", appErr.Status, tt.status)
			}
			if appErr.Detail != tt.wantDetail {
				t.Errorf("Detail = %q; want %q", appErr.Detail, tt.wantDetail)
			}
			if got := helpers.ErrorMessage(err); got != tt.wantMsg {
				t.Errorf("ErrorMessage() = %q; want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestGetTransportErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := newTestClient(t, url, time.Second).Get(context.Background(), "/api/health", nil)
		var transportErr *helpers.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("Get() error = %v; want *helpers.TransportError", err)
		}
		if helpers.ErrorMessage(err) == "" {
			t.Fatal("transport error message is empty")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer ts.Close()
		defer close(release)

		_, err := newTestClient(t, ts.URL, 50*time.Millisecond).Get(context.Background(), "/api/stats", nil)
		var transportErr *helpers.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("Get() error = %v; want *helpers.TransportError", err)
		}
	})
}

func TestNewAPIClientRejectsBadURL(t *testing.T) {
	_, err := NewAPIClient("not a url", models.MNetworkConfig{}, time.Second, nil)
	var cfgErr *helpers.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewAPIClient() error = %v; want *helpers.ConfigurationError", err)
	}
}
