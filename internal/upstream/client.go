package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"shopping-advisor-go/internal/logger"
)

// StatusError is returned when a collaborator answers with a non-2xx code.
type StatusError struct {
	StatusCode int
	Body       string
	// Detail is the "detail" field of a FastAPI-style error body, if any.
	Detail string
}

func (e *StatusError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// Temporary reports whether a retry could plausibly succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{StatusCode: code, Body: strings.TrimSpace(string(body))}
	var parsed struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != nil {
		switch d := parsed.Detail.(type) {
		case string:
			e.Detail = d
		default:
			b, _ := json.Marshal(d)
			e.Detail = string(b)
		}
	}
	return e
}

type ctxKey struct{}

// WithRequestID stores an id that Do forwards as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Client sends JSON requests with exponential-backoff retries. 4xx answers
// other than 429 are not retried.
type Client struct {
	HTTP     *http.Client
	MaxRetry time.Duration
	// BackOff overrides the retry policy; tests use a short constant one.
	BackOff func() backoff.BackOff
	Log     *logger.Logger
}

func New(timeout, maxRetry time.Duration, log *logger.Logger) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: timeout},
		MaxRetry: maxRetry,
		Log:      log,
	}
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	if c.BackOff != nil {
		b = c.BackOff()
	} else {
		eb := backoff.NewExponentialBackOff()
		eb.MaxElapsedTime = c.MaxRetry
		b = eb
	}
	return backoff.WithContext(b, ctx)
}

// Do sends payload (nil for no body) and hands the 2xx response body to
// decode. A decode error is retried like a server error.
func (c *Client) Do(ctx context.Context, method, url string, payload any, decode func(body []byte) error) error {
	var data []byte
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	base := c.Log
	if base == nil {
		base = logger.Discard()
	}
	log := base.WithField("method", method).WithField("url", url)

	attempt := 0
	var lastErr error
	op := func() error {
		attempt++
		var body io.Reader
		if data != nil {
			body = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		if data != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		if id := requestID(ctx); id != "" {
			req.Header.Set(logger.RequestIDHeader, id)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			log.WithField("attempt", attempt).WithField("error", err.Error()).Warn("upstream request failed")
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		log.WithField("http_status", resp.StatusCode).WithField("attempt", attempt).Debug("upstream responded")

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			se := newStatusError(resp.StatusCode, b)
			lastErr = se
			if !se.Temporary() {
				return backoff.Permanent(se)
			}
			return se
		}
		if decode == nil {
			lastErr = nil
			return nil
		}
		if err := decode(b); err != nil {
			lastErr = fmt.Errorf("decode response: %w", err)
			log.WithField("error", err.Error()).Warn("upstream response not understood")
			return lastErr
		}
		lastErr = nil
		return nil
	}

	if err := backoff.Retry(op, c.policy(ctx)); err != nil {
		// the deadline may fire while waiting between attempts
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(lastErr, ctxErr) {
			if lastErr == nil {
				return ctxErr
			}
			return fmt.Errorf("%w (last error: %w)", ctxErr, lastErr)
		}
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

// DecodeInto returns a decode func that unmarshals into target.
func DecodeInto(target any) func([]byte) error {
	return func(b []byte) error {
		if len(bytes.TrimSpace(b)) == 0 {
			return fmt.Errorf("empty body")
		}
		return json.Unmarshal(b, target)
	}
}
