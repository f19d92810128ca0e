// Package fetch retrieves raw TAF and METAR text from the Aviation Weather
// Center and keeps a per-station cache of what it fetched.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Kind is the type of report being retrieved
type Kind string

const (
	TAF   Kind = "TAF"
	METAR Kind = "METAR"
)

// DefaultBaseURL is the Aviation Weather Center data API
const DefaultBaseURL = "https://aviationweather.gov/api/data"

var (
	ErrInvalidStation = errors.New("invalid station code: must be 4 alphanumeric characters")
	ErrNoData         = errors.New("no report data found")
	ErrUnknownKind    = errors.New("unknown report kind")
)

var stationRegex = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// NormalizeStation upper-cases a station code and checks that it is a
// 4-character ICAO identifier
func NormalizeStation(code string) (string, error) {
	station := strings.ToUpper(strings.TrimSpace(code))
	if !stationRegex.MatchString(station) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStation, code)
	}
	return station, nil
}

// ValidStation reports whether code is a usable station identifier
func ValidStation(code string) bool {
	_, err := NormalizeStation(code)
	return err == nil
}

func (k Kind) path() (string, error) {
	switch k {
	case TAF:
		return "taf", nil
	case METAR:
		return "metar", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Fetcher returns the raw text of one report
type Fetcher interface {
	Fetch(ctx context.Context, station string, kind Kind) (string, error)
}

// HTTPClient is the subset of *http.Client used by Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds the transport and resilience settings of a Client
type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Multiplier     float64
	BreakerTimeout time.Duration
}

// Client fetches raw reports over HTTP, retrying transient failures
// inside a circuit breaker
type Client struct {
	client         HTTPClient
	logger         *zap.Logger
	circuitBreaker *gobreaker.CircuitBreaker
	baseURL        string
	maxRetries     int
	retryDelay     time.Duration
	multiplier     float64
}

// NewClient creates a Client. A nil logger disables logging.
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	breakerSettings := gobreaker.Settings{
		Name:        "aviationweather",
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		client:         &http.Client{Timeout: config.Timeout},
		logger:         logger,
		circuitBreaker: gobreaker.NewCircuitBreaker(breakerSettings),
		baseURL:        strings.TrimRight(baseURL, "/"),
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		multiplier:     config.Multiplier,
	}
}

// Fetch retrieves the raw report of the given kind for a station
func (c *Client) Fetch(ctx context.Context, station string, kind Kind) (string, error) {
	station, err := NormalizeStation(station)
	if err != nil {
		return "", err
	}

	path, err := kind.path()
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/%s?ids=%s", c.baseURL, path, url.QueryEscape(station))

	body, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.getWithRetry(ctx, u)
	})
	if err != nil {
		return "", fmt.Errorf("error fetching %s for %s: %w", kind, station, err)
	}

	data := strings.TrimSpace(string(body.([]byte)))
	if data == "" {
		return "", fmt.Errorf("%w: %s for station %s", ErrNoData, kind, station)
	}

	return data, nil
}

func (c *Client) getWithRetry(ctx context.Context, u string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			delay := time.Duration(float64(c.retryDelay) * math.Pow(c.multiplier, float64(attempt-1)))
			c.logger.Debug("Retrying request",
				zap.String("url", u),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request failed: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.logger.Warn("HTTP request failed",
				zap.String("url", u),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				lastErr = fmt.Errorf("error reading response: %w", err)
				continue
			}

			c.logger.Debug("Request successful",
				zap.String("url", u),
				zap.Int("status", resp.StatusCode),
				zap.Int("body_size", len(body)))
			return body, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)

		// Client errors other than rate limiting are not retried
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("max retries exceeded, last error: %w", lastErr)
}
