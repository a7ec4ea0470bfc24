// Package jobsource retrieves job postings from a remote job board.
// Boards may answer with a JSON feed or an HTML listing page.
package jobsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/skillmatch/backend/internal/domain"
)

// Client defaults
const (
	DefaultTimeout    = 30 * time.Second
	DefaultUserAgent  = "SkillMatch/1.0"
	DefaultMaxRetries = 3

	// maxBodyBytes caps how much of a board response is read
	maxBodyBytes = 5 << 20
)

// Config configures a job board client
type Config struct {
	SourceURL         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	UserAgent         string
}

// Client handles communication with a job board
type Client struct {
	httpClient  *http.Client
	sourceURL   string
	userAgent   string
	maxRetries  int
	retryDelay  time.Duration
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new job board client
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sourceURL:   config.SourceURL,
		userAgent:   userAgent,
		maxRetries:  maxRetries,
		retryDelay:  500 * time.Millisecond,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:      logger.Named("jobs"),
	}
}

// SearchJobs fetches postings matching query from the board
func (c *Client) SearchJobs(ctx context.Context, query string) ([]domain.JobPosting, error) {
	reqURL, err := c.searchURL(query)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("searching jobs", zap.String("query", query), zap.String("url", reqURL))

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, contentType, err := c.fetch(ctx, reqURL)
		if err != nil {
			lastErr = err
			c.logger.Warn("job source request failed",
				zap.Int("attempt", attempt),
				zap.Error(err))

			var fetchErr *FetchError
			if errors.As(err, &fetchErr) && !fetchErr.retryable() {
				return nil, err
			}
			if err := c.sleep(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		jobs, err := c.decode(body, contentType, reqURL)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("found jobs", zap.String("query", query), zap.Int("count", len(jobs)))
		return jobs, nil
	}

	c.logger.Warn("all retries failed", zap.String("query", query))
	return nil, lastErr
}

// searchURL appends the query as the q parameter, keeping any existing parameters
func (c *Client) searchURL(query string) (string, error) {
	parsed, err := url.Parse(c.sourceURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: c.sourceURL, Message: "invalid source URL", Cause: err}
	}

	if query != "" {
		params := parsed.Query()
		params.Set("q", query)
		parsed.RawQuery = params.Encode()
	}
	return parsed.String(), nil
}

// fetch executes one GET request and returns the body and its content type
func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", &FetchError{URL: reqURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &FetchError{URL: reqURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", &FetchError{URL: reqURL, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", &FetchError{
			URL:        reqURL,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// decode picks the feed or board parser from the content type, sniffing the body when the header is missing
func (c *Client) decode(body []byte, contentType, reqURL string) ([]domain.JobPosting, error) {
	if contentType == "" {
		contentType = mimetype.Detect(body).String()
	}

	switch {
	case strings.Contains(contentType, "json"):
		return decodeFeed(body)
	case strings.Contains(contentType, "html"), strings.Contains(contentType, "xml"):
		return parseBoard(body, reqURL)
	default:
		return nil, &FetchError{URL: reqURL, Message: fmt.Sprintf("unsupported content type %q", contentType)}
	}
}

// sleep waits before the next attempt, growing linearly with attempt
func (c *Client) sleep(ctx context.Context, attempt int) error {
	timer := time.NewTimer(time.Duration(attempt) * c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
