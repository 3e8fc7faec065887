package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-advisor-go/internal/logger"
)

func testClient() *Client {
	c := New(2*time.Second, time.Second, logger.Discard())
	c.BackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 3)
	}
	return c
}

func TestDo_RetriesServerErrorsAndResendsBody(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"url":"x"}`, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := testClient().Do(context.Background(), http.MethodPost, srv.URL, map[string]string{"url": "x"}, DecodeInto(&out))
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestDo_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "URL must be from tokopedia.com"})
	}))
	defer srv.Close()

	err := testClient().Do(context.Background(), http.MethodPost, srv.URL, struct{}{}, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, "URL must be from tokopedia.com", se.Detail)
	assert.Equal(t, "HTTP 422: URL must be from tokopedia.com", err.Error())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDo_GivesUpWithLastError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("scraper crashed"))
	}))
	defer srv.Close()

	err := testClient().Do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "scraper crashed", se.Body)
	assert.True(t, se.Temporary())
}

func TestDo_DecodeFailureIsRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte(`not json`))
			return
		}
		w.Write([]byte(`{"n":2}`))
	}))
	defer srv.Close()

	var out struct{ N int }
	require.NoError(t, testClient().Do(context.Background(), http.MethodGet, srv.URL, nil, DecodeInto(&out)))
	assert.Equal(t, 2, out.N)
}

func TestDo_ForwardsRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(logger.RequestIDHeader))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := WithRequestID(context.Background(), "req-42")
	require.NoError(t, testClient().Do(ctx, http.MethodGet, srv.URL, nil, nil))
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := testClient().Do(ctx, http.MethodGet, srv.URL, nil, nil)
	require.Error(t, err)
}

func TestDo_DeadlineDuringBackoffWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient()
	c.BackOff = func() backoff.BackOff { return backoff.NewConstantBackOff(time.Second) }
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := c.Do(ctx, http.MethodGet, srv.URL, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestDecodeInto_EmptyBody(t *testing.T) {
	var v map[string]any
	assert.EqualError(t, DecodeInto(&v)([]byte("  ")), "empty body")
}
