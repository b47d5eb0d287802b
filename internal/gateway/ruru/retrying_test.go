package ruru

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	testlog "ruru-backoffice/internal/testutil"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

func respond(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(`{}`))}
}

func TestRetryingDoer_GetRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var calls int32
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			return nil, errors.New("connection reset")
		case 2:
			return respond(http.StatusServiceUnavailable), nil
		default:
			return respond(http.StatusOK), nil
		}
	})
	ctr := &counterStub{}
	d := NewRetryingDoer(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})

	req, _ := http.NewRequest(http.MethodGet, "http://ruru.test/admin/couriers", nil)
	resp, err := d.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	require.EqualValues(t, 2, ctr.Count())
	require.True(t, rec.Has("warn", "ruru api retry"))
}

func TestRetryingDoer_NoRetryOnWrites(t *testing.T) {
	t.Parallel()

	var calls int32
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return respond(http.StatusServiceUnavailable), nil
	})
	ctr := &counterStub{}
	d := NewRetryingDoer(next, nil, ctr, RetryConfig{MaxAttempts: 5})

	req, _ := http.NewRequest(http.MethodPatch, "http://ruru.test/user/activate-deactivate", nil)
	resp, err := d.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.EqualValues(t, 0, ctr.Count())
}

func TestRetryingDoer_NoRetryOnClientErrors(t *testing.T) {
	t.Parallel()

	var calls int32
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return respond(http.StatusBadRequest), nil
	})
	d := NewRetryingDoer(next, nil, nil, RetryConfig{MaxAttempts: 3})

	req, _ := http.NewRequest(http.MethodGet, "http://ruru.test/admin/riders", nil)
	resp, err := d.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRetryingDoer_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return respond(http.StatusBadGateway), nil
	})
	ctr := &counterStub{}
	d := NewRetryingDoer(next, nil, ctr, RetryConfig{MaxAttempts: 3})

	req, _ := http.NewRequest(http.MethodGet, "http://ruru.test/admin/riders", nil)
	resp, err := d.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	require.EqualValues(t, 2, ctr.Count())
}

func TestRetryingDoer_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return nil, errors.New("dial tcp: refused")
	})
	d := NewRetryingDoer(next, nil, nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: time.Second})

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://ruru.test/admin/riders", nil)
	_, err := d.Do(req)
	require.Error(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 6))
}
