package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/metrics"
	"ruru-backoffice/internal/repository"
	"ruru-backoffice/internal/transport/kafka"
)

const auditHandleTimeout = 5 * time.Second

func newAuditProcessor(repo *repository.AuditRepo, logger logx.Logger, reg prometheus.Registerer) (*audit.Processor, error) {
	outcomes := metrics.NewAuditEventsTotal()
	if err := reg.Register(outcomes); err != nil {
		return nil, fmt.Errorf("register audit metrics: %w", err)
	}
	return audit.NewProcessor(repo, logger, metrics.Outcomes(outcomes)), nil
}

// makeAuditHandler bounds each event by a timeout and marks events that
// can never be stored as permanent so the consumer commits past them.
func makeAuditHandler(p *audit.Processor) kafka.HandleFunc {
	return func(ctx context.Context, e audit.Event) error {
		ctx, cancel := context.WithTimeout(ctx, auditHandleTimeout)
		defer cancel()
		err := p.Handle(ctx, e)
		if errors.Is(err, audit.ErrInvalidEvent) {
			return kafka.Permanent(err)
		}
		return err
	}
}

var newAuditConsumer = kafka.NewConsumer

func newWorkerConsumer(cfg *config.Config, logger logx.Logger, p *audit.Processor) (*kafka.Consumer, error) {
	return newAuditConsumer(
		logger.With(logx.String("component", "audit-consumer")),
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		cfg.Kafka.AuditTopic,
		makeAuditHandler(p),
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewAuditRepo,
		newAuditProcessor,
		newWorkerConsumer,
	)
}
