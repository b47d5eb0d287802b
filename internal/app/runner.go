package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"ruru-backoffice/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the back-office server using the provided DI container.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type serverIn struct {
	dig.In
	Ctx     context.Context
	Logger  logx.Logger
	Server  *http.Server
	Pprof   *http.Server `name:"pprof_server" optional:"true"`
	Closers []io.Closer  `group:"closers"`
}

func run(container *dig.Container) error {
	return container.Invoke(serve)
}

func serve(in serverIn) error {
	errs := make(chan error, 2)
	startServer(in.Server, in.Logger, "back-office", errs)
	if in.Pprof != nil {
		startServer(in.Pprof, in.Logger, "pprof", errs)
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down back-office")
	case runErr = <-errs:
		in.Logger.Error("server stopped", logx.Err(runErr))
	}

	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	if in.Pprof != nil {
		gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
	}
	closeResources(in.Closers, in.Logger)
	return runErr
}

func startServer(server *http.Server, logger logx.Logger, name string, errs chan<- error) {
	go func() {
		logger.Info(name+" listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(closers []io.Closer, logger logx.Logger) {
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			logger.Error("close error", logx.Err(err))
		}
	}
}
