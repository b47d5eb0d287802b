package audit

import (
	"context"
	"errors"
	"fmt"

	"ruru-backoffice/internal/logx"
)

// ErrInvalidEvent marks events that can never be stored.
var ErrInvalidEvent = errors.New("invalid audit event")

type outcomeCounter interface {
	Inc(outcome string)
}

// Processor stores events consumed from the audit stream.
type Processor struct {
	store   Store
	logger  logx.Logger
	outcome outcomeCounter
}

// NewProcessor creates a Processor. outcome may be nil.
func NewProcessor(store Store, logger logx.Logger, outcome outcomeCounter) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{store: store, logger: logger, outcome: outcome}
}

// Handle validates and stores e. Redelivered events are stored once.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if !e.Valid() {
		p.count("invalid")
		return fmt.Errorf("%w: id=%q action=%q target=%q", ErrInvalidEvent, e.ID, e.Action, e.TargetID)
	}
	if err := p.store.Insert(ctx, e); err != nil {
		p.count("error")
		return fmt.Errorf("store audit event %s: %w", e.ID, err)
	}
	p.count("stored")
	p.logger.Debug("audit event stored",
		logx.String("id", e.ID),
		logx.String("action", string(e.Action)),
	)
	return nil
}

func (p *Processor) count(outcome string) {
	if p.outcome != nil {
		p.outcome.Inc(outcome)
	}
}
