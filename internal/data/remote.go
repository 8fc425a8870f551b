package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"agri-market/internal/model"
)

// RemoteSource fetches a dataset from an HTTP endpoint returning the
// DatasetFile JSON shape. The whole collection arrives in one response.
type RemoteSource struct {
	URL    string
	APIKey string
	Client *http.Client
	Cache  *ResponseCache
	Logger *slog.Logger
}

// NewRemoteSource creates a remote source. A nil cache disables caching.
func NewRemoteSource(rawURL, apiKey string, cache *ResponseCache, logger *slog.Logger) *RemoteSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteSource{
		URL:    rawURL,
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Cache:  cache,
		Logger: logger.With(slog.String("component", "data.remote")),
	}
}

// RemoteError is a non-200 answer from the remote data endpoint.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (s *RemoteSource) Name() string { return "remote:" + s.URL }

func (s *RemoteSource) Load(ctx context.Context) ([]model.MarketRecord, error) {
	f, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return PrepareRecords(f.Records)
}

func (s *RemoteSource) fetch(ctx context.Context) (*DatasetFile, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("remote url is required")
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote url: %w", err)
	}

	key := GenerateCacheKey(u.String())
	if cached, ok := s.Cache.Get(key); ok {
		s.Logger.DebugContext(ctx, "cache hit",
			slog.String("url", u.Redacted()),
			slog.Int("records", len(cached.Records)))
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	start := time.Now()
	resp, err := s.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		s.Logger.ErrorContext(ctx, "request failed",
			slog.String("url", u.Redacted()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	s.Logger.InfoContext(ctx, "response received",
		slog.String("url", u.Redacted()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "REMOTE_ERROR",
			Message:    fmt.Sprintf("remote returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var f DatasetFile
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	s.Cache.Set(key, &f)
	return &f, nil
}

// Invalidate drops cached responses so the next Load reaches the remote.
func (s *RemoteSource) Invalidate() {
	s.Cache.Clear()
}
