package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/repository"
	"ruru-backoffice/internal/transport/kafka"
)

// WorkerRunner runs the audit worker.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes audit events until the container context is cancelled.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type migrator interface {
	Migrate(ctx context.Context) error
}

type eventConsumer interface {
	Run(ctx context.Context) error
	Close() error
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	repo *repository.AuditRepo,
	consumer *kafka.Consumer,
) error {
	if consumer == nil {
		closeWorker(pool, logger, nil)
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS, KAFKA_AUDIT_TOPIC and KAFKA_GROUP_ID")
	}
	defer closeWorker(pool, logger, consumer)
	return consume(ctx, logger, repo, consumer)
}

func consume(ctx context.Context, logger logx.Logger, repo migrator, consumer eventConsumer) error {
	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate audit store: %w", err)
	}
	logger.Info("audit worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer eventConsumer) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
