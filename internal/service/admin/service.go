package admin

import (
	"context"
	"strconv"
	"time"

	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/logx"
)

// Resource names.
const (
	Couriers     = "couriers"
	Customers    = "customers"
	Riders       = "riders"
	Transactions = "transactions"
	Settings     = "settings"
)

type mutationCounter interface {
	Inc(resource, action, outcome string)
}

// Service holds the admin rules shared by every session. Calls that reach
// the API take the session-bound API explicitly.
type Service struct {
	pub       audit.Publisher
	logger    logx.Logger
	mutations mutationCounter
	now       func() time.Time
}

// New creates a Service. mutations may be nil.
func New(pub audit.Publisher, logger logx.Logger, mutations mutationCounter) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	if pub == nil {
		pub = audit.NewLogPublisher(logger)
	}
	return &Service{pub: pub, logger: logger, mutations: mutations, now: time.Now}
}

// record counts a mutation outcome and, on success, publishes its audit event.
// A publish failure is logged: the API already applied the change.
func (s *Service) record(ctx context.Context, actor domain.User, action audit.Action, resource, target, detail string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if s.mutations != nil {
		s.mutations.Inc(resource, string(action), outcome)
	}
	if err != nil {
		s.logger.Warn("admin mutation failed",
			logx.String("resource", resource),
			logx.String("action", string(action)),
			logx.String("target_id", target),
			logx.Err(err),
		)
		return
	}

	ev := audit.NewEvent(actor.ID, actor.Email, action, resource, target, detail, s.now())
	if perr := s.pub.Publish(ctx, ev); perr != nil {
		s.logger.Error("audit publish failed",
			logx.String("id", ev.ID),
			logx.String("action", string(action)),
			logx.Err(perr),
		)
	}
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
