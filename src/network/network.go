package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"

	"github.com/PaesslerAG/jsonpath"
)

// maxResponseBody caps the amount of data read from one response (32 MiB).
const maxResponseBody int64 = 32 << 20

// detailPath locates the structured error message in a backend error body.
const detailPath = "$.detail"

// APIClient issues GET requests against the backend. One client is built at
// startup and shared by every store operation.
type APIClient struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
	Logger    *logger.Logger
}

// -----------------------------------------------------------------------------

// NewAPIClient builds a client for baseURL. The timeout applies to every call.
func NewAPIClient(baseURL string, cfg models.MNetworkConfig, timeout time.Duration, log *logger.Logger) (*APIClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, &helpers.ConfigurationError{KStockError: helpers.KStockError{
			Message: fmt.Sprintf("invalid base URL %q", baseURL),
			Cause:   err,
		}}
	}
	if log == nil {
		log = logger.NewLogger(nil, "APIClient")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, &helpers.ConfigurationError{KStockError: helpers.KStockError{
				Message: fmt.Sprintf("invalid proxy %q", cfg.Proxy),
				Cause:   err,
			}}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &APIClient{
		BaseURL:   baseURL,
		UserAgent: cfg.UserAgent,
		Client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

// Get performs a GET request. A failure without a response is returned as
// *helpers.TransportError, a non-2xx response as *helpers.ApplicationError.
func (c *APIClient) Get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	joined, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, helpers.NewTransportError(err)
	}
	reqURL, err := url.Parse(joined)
	if err != nil {
		return nil, helpers.NewTransportError(err)
	}

	if len(params) > 0 {
		q := reqURL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, helpers.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	c.Logger.Debug("API request: GET %s", path)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Error("API response error: %s: %v", path, err)
		return nil, helpers.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.Logger.Error("API response error: %s: %v", path, err)
		return nil, helpers.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := &helpers.ApplicationError{
			Status: resp.StatusCode,
			Detail: extractDetail(body),
			Body:   body,
		}
		c.Logger.Error("API response error: %s (%d): %s", path, resp.StatusCode, helpers.ErrorMessage(appErr))
		return nil, appErr
	}

	c.Logger.Debug("API response: %s (%d)", path, resp.StatusCode)
	return body, nil
}

// -----------------------------------------------------------------------------

// extractDetail returns the "detail" field of a JSON error body. Non-string
// details (validation error lists) are re-encoded as JSON.
func extractDetail(body []byte) string {
	var obj interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}

	v, err := jsonpath.Get(detailPath, obj)
	if err != nil {
		return ""
	}

	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		encoded, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprint(d)
		}
		return string(encoded)
	}
}
