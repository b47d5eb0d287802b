package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/logx"
	testlog "ruru-backoffice/internal/testutil"
)

type countingCloser struct {
	calls int
	err   error
}

func (c *countingCloser) Close() error {
	c.calls++
	return c.err
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	rec := testlog.New()
	ctx, cancel := context.WithCancel(context.Background())
	a, b := &countingCloser{}, &countingCloser{err: errors.New("flush failed")}

	done := make(chan error, 1)
	go func() {
		done <- serve(serverIn{
			Ctx:     ctx,
			Logger:  rec.Logger(),
			Server:  &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()},
			Closers: []io.Closer{a, nil, b},
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	require.Equal(t, 1, a.calls)
	require.Equal(t, 1, b.calls)
	require.True(t, rec.Has("info", "shutting down back-office"))
	require.True(t, rec.Has("error", "close error"))
}

func TestServe_ReturnsListenError(t *testing.T) {
	err := serve(serverIn{
		Ctx:    context.Background(),
		Logger: logx.Nop(),
		Server: &http.Server{Addr: "256.0.0.1:bad"},
	})
	require.Error(t, err)
}
