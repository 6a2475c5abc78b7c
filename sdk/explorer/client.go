// Package explorer is a client for etherscan-compatible block explorer APIs (etherscan, bscscan,
// polygonscan). Every request made through a Client waits on a shared rate limiter.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/smartcontractkit/timelock-roles/sdk"
)

const (
	// DefaultRequestsPerSecond is the request budget of the free explorer API tiers.
	DefaultRequestsPerSecond = 5

	// DefaultPageSize is the largest page the getLogs endpoint returns.
	DefaultPageSize = 1000

	redacted = "REDACTED"
)

// NewLimiter returns a limiter that lets at most requestsPerSecond requests start in any one-second
// window. A single limiter should be shared by every client talking to the same API key.
func NewLimiter(requestsPerSecond int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}

	return rate.NewLimiter(rate.Every(time.Second/time.Duration(requestsPerSecond)), 1)
}

// Client talks to a block explorer REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageSize sets the number of records requested per getLogs page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a Client for the explorer at baseURL (for example https://api.etherscan.io).
// A nil limiter gets a private limiter with the default budget.
func NewClient(baseURL, apiKey string, limiter *rate.Limiter, opts ...Option) *Client {
	if limiter == nil {
		limiter = NewLimiter(DefaultRequestsPerSecond)
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		limiter:    limiter,
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get waits for the limiter, issues a GET /api request with params and decodes the JSON body into out.
// It returns the request URL with the api key redacted so callers can surface it in errors.
func (c *Client) get(ctx context.Context, params url.Values, out any) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid explorer url %q: %w", c.baseURL, err)
	}
	u = u.JoinPath("api")

	shown := *u
	shownParams := cloneValues(params)
	shownParams.Set("apikey", redacted)
	shown.RawQuery = shownParams.Encode()
	requestURL := shown.String()

	query := cloneValues(params)
	query.Set("apikey", c.apiKey)
	u.RawQuery = query.Encode()

	if err = c.limiter.Wait(ctx); err != nil {
		return requestURL, err
	}

	sdk.LoggerFrom(ctx).Debugf("explorer request module=%s action=%s page=%s",
		params.Get("module"), params.Get("action"), params.Get("page"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return requestURL, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the transport error embeds the full url, including the api key
		return requestURL, fmt.Errorf("explorer request failed: %s: %w", requestURL, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return requestURL, fmt.Errorf("explorer returned HTTP %d: %s", resp.StatusCode, requestURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return requestURL, fmt.Errorf("failed to decode explorer response from %s: %w", requestURL, err)
	}

	return requestURL, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}

	return out
}

func unwrapURLError(err error) error {
	if uerr, ok := err.(*url.Error); ok { //nolint:errorlint // only the top level carries the url
		return uerr.Err
	}

	return err
}
