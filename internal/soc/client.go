package soc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/corpix/uarand"
	"github.com/klauspost/compress/gzip"

	apperr "github.com/rusoc/rusoc-go/internal/errors"
	"github.com/rusoc/rusoc-go/internal/logger"
)

// Client fetches course offerings from the Schedule of Classes API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	initialDelay time.Duration
	log          *logger.Logger
}

// NewClient creates a client for the given courses endpoint.
// baseURL is the full courses.json URL without query parameters.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:      baseURL,
		maxRetries:   maxRetries,
		initialDelay: 1 * time.Second,
		log:          log.WithModule("soc"),
	}
}

// FetchCourses retrieves all course offerings for one (year, term, campus).
// Retries on 429 and 5xx with exponential backoff, fails fast on other
// 4xx responses. A successful call may return an empty slice; the caller
// decides whether that replaces previously cached data.
func (c *Client) FetchCourses(ctx context.Context, year, term, campus string) ([]Course, error) {
	reqURL := c.buildURL(year, term, campus)

	var courses []Course
	err := RetryWithBackoff(ctx, c.maxRetries, c.initialDelay, func() error {
		var err error
		courses, err = c.fetchOnce(ctx, reqURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("fetched courses",
		"year", year, "term", term, "campus", campus, "count", len(courses))

	return courses, nil
}

func (c *Client) buildURL(year, term, campus string) string {
	params := url.Values{}
	params.Set("year", year)
	params.Set("term", term)
	params.Set("campus", campus)
	return c.baseURL + "?" + params.Encode()
}

func (c *Client) fetchOnce(ctx context.Context, reqURL string) ([]Course, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &permanentError{err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", uarand.GetRandom())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.UpstreamError{URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		upErr := &apperr.UpstreamError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, upErr
		case resp.StatusCode >= 500:
			return nil, upErr
		default:
			return nil, &permanentError{err: upErr}
		}
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &apperr.UpstreamError{URL: reqURL, Err: fmt.Errorf("gzip reader: %w", err)}
		}
		defer func() { _ = gz.Close() }()
		body = gz
	}

	var courses []Course
	if err := json.NewDecoder(body).Decode(&courses); err != nil {
		// Malformed payloads won't improve on retry
		return nil, &permanentError{
			err: &apperr.UpstreamError{URL: reqURL, Err: fmt.Errorf("decode response: %w", err)},
		}
	}

	return courses, nil
}
