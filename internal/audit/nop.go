package audit

import (
	"context"

	"ruru-backoffice/internal/logx"
)

// LogPublisher only logs events. It is used when no Kafka brokers are configured.
type LogPublisher struct {
	logger logx.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger logx.Logger) *LogPublisher {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs e.
func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	p.logger.Info("audit event",
		logx.String("id", e.ID),
		logx.String("action", string(e.Action)),
		logx.String("resource", e.Resource),
		logx.String("target_id", e.TargetID),
		logx.String("actor", e.Actor),
	)
	return nil
}
