// Package transport provides the authenticated HTTP session consumed by
// the resource core. It owns everything the core deliberately does not:
// bearer auth, retry with exponential backoff, request correlation, and
// translation of non-success responses into APIError values.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the Power BI REST API root.
const DefaultBaseURL = "https://api.powerbi.com/v1.0/myorg"

// Config holds configuration for a Session.
type Config struct {
	// BaseURL is the API root (default: DefaultBaseURL).
	BaseURL string

	// TokenSource supplies the bearer token for each request. Required.
	TokenSource TokenSource

	// HTTPClient is the underlying client (default: 30s timeout).
	HTTPClient *http.Client

	// RetryMaxElapsed bounds the total time spent retrying a single
	// request on 429/5xx responses (default: 60s). A negative value
	// disables retry entirely.
	RetryMaxElapsed time.Duration

	// UserAgent overrides the User-Agent header (optional).
	UserAgent string

	// Logger is used for debug logging only (optional).
	Logger hclog.Logger
}

// Session is a JSON-over-HTTP session against the service. It is safe for
// concurrent use and is shared, unmodified, by every entity and operation
// constructed from it.
type Session struct {
	baseURL     string
	tokens      TokenSource
	httpClient  *http.Client
	retryMax    time.Duration
	retryOff    bool
	userAgent   string
	logger      hclog.Logger
}

// NewSession creates a session, applying defaults for everything but the
// token source.
func NewSession(cfg Config) (*Session, error) {
	if cfg.TokenSource == nil {
		return nil, fmt.Errorf("transport: a TokenSource is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	retryOff := false
	if cfg.RetryMaxElapsed == 0 {
		cfg.RetryMaxElapsed = 60 * time.Second
	} else if cfg.RetryMaxElapsed < 0 {
		retryOff = true
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "powerbi-go"
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Session{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     cfg.TokenSource,
		httpClient: cfg.HTTPClient,
		retryMax:   cfg.RetryMaxElapsed,
		retryOff:   retryOff,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger.Named("powerbi-session"),
	}, nil
}

// Get issues an authenticated GET and returns the decoded-ready body.
func (s *Session) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return s.do(ctx, http.MethodGet, path, params, "", nil)
}

// Post issues an authenticated POST with a JSON payload.
func (s *Session) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("transport: marshaling payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	return s.do(ctx, http.MethodPost, path, nil, "application/json", body)
}

// PostFile issues a multipart/form-data POST streaming r as the file part,
// used for .pbix import uploads.
func (s *Session) PostFile(ctx context.Context, path string, params url.Values, filename string, r io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("transport: building multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("transport: reading upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("transport: building multipart body: %w", err)
	}
	return s.do(ctx, http.MethodPost, path, params, mw.FormDataContentType(), bytes.NewReader(buf.Bytes()))
}

func (s *Session) do(ctx context.Context, method, path string, params url.Values, contentType string, body io.Reader) (json.RawMessage, error) {
	target := s.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	requestID := uuid.NewString()

	var payload []byte
	if body != nil {
		// Buffer once so retries can replay the body.
		var err error
		payload, err = io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("transport: reading request body: %w", err)
		}
	}

	attempt := func() (json.RawMessage, error) {
		token, err := s.tokens.Token(ctx)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("transport: acquiring token: %w", err))
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("transport: building request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", s.userAgent)
		req.Header.Set("X-Request-Id", requestID)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		s.logger.Debug("sending request",
			"method", method,
			"path", path,
			"request_id", requestID,
		)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			// Connection-level failures are retryable.
			return nil, fmt.Errorf("transport: %s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: reading response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := parseAPIError(resp.StatusCode, respBody, requestID)
			if !retryable(resp.StatusCode) {
				return nil, backoff.Permanent(apiErr)
			}
			return nil, apiErr
		}
		return respBody, nil
	}

	if s.retryOff {
		body, err := attempt()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return body, perm.Err
		}
		return body, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = s.retryMax
	return backoff.RetryWithData(attempt, backoff.WithContext(bo, ctx))
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// serviceError is the body shape the service uses for failures.
type serviceError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseAPIError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{StatusCode: status, RequestID: requestID}

	var svcErr serviceError
	if err := json.Unmarshal(body, &svcErr); err == nil && svcErr.Error.Code != "" {
		apiErr.Code = svcErr.Error.Code
		apiErr.Message = svcErr.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
