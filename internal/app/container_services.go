package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/gateway/ruru"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/metrics"
	"ruru-backoffice/internal/resource"
	"ruru-backoffice/internal/service/admin"
	"ruru-backoffice/internal/service/auth"
	"ruru-backoffice/internal/service/leads"
	"ruru-backoffice/internal/session"
	"ruru-backoffice/internal/transport/kafka"
)

// closeFunc releases a resource from the "closers" group on shutdown.
type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func newMetricsSet(reg prometheus.Registerer) (*metrics.Set, error) {
	set := metrics.NewSet()
	if err := set.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return set, nil
}

func newRuruClient(cfg *config.Config, logger logx.Logger, set *metrics.Set) (*ruru.Client, error) {
	doer := ruru.NewRetryingDoer(&http.Client{Timeout: cfg.API.Timeout}, logger, set.GatewayRetries, ruru.RetryConfig{
		MaxAttempts: cfg.API.MaxAttempts,
		BaseDelay:   cfg.API.BaseDelay,
		MaxDelay:    cfg.API.MaxDelay,
	})
	return ruru.New(cfg.API.BaseURL, doer, logger.With(logx.String("component", "ruru-api")))
}

func registerGateway(container *dig.Container) error {
	return provideAll(container,
		newMetricsSet,
		newRuruClient,
	)
}

type sessionsOut struct {
	dig.Out
	Store  session.Store
	Closer io.Closer `group:"closers"`
}

var newRedisClient = redis.NewClient

// newSessionStore keeps sessions in Redis when an address is configured and
// in memory otherwise. A Redis that does not answer a ping fails startup.
func newSessionStore(ctx context.Context, cfg *config.Config, logger logx.Logger) (sessionsOut, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, sessions are kept in memory")
		return sessionsOut{Store: session.NewMemoryStore(), Closer: closeFunc(func() error { return nil })}, nil
	}

	client := newRedisClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return sessionsOut{}, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("session store ready", logx.String("redis", cfg.Redis.Addr))
	return sessionsOut{Store: session.NewRedisStore(client), Closer: client}, nil
}

func registerSessions(container *dig.Container) error {
	return provideAll(container,
		newSessionStore,
		func(cfg *config.Config) *resource.Registry {
			return resource.NewRegistry(cfg.UI.WorkspaceTTL)
		},
	)
}

type publisherOut struct {
	dig.Out
	Publisher audit.Publisher
	Closer    io.Closer `group:"closers"`
}

var newAuditProducer = kafka.NewProducer

// newAuditPublisher sends audit events to Kafka when it is configured and to
// the log otherwise.
func newAuditPublisher(cfg *config.Config, logger logx.Logger) (publisherOut, error) {
	if !cfg.Kafka.Enabled() {
		return publisherOut{
			Publisher: audit.NewLogPublisher(logger),
			Closer:    closeFunc(func() error { return nil }),
		}, nil
	}
	p, err := newAuditProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return publisherOut{}, err
	}
	return publisherOut{Publisher: p, Closer: p}, nil
}

func registerAudit(container *dig.Container) error {
	return provideAll(container, newAuditPublisher)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(client *ruru.Client, store session.Store, logger logx.Logger, cfg *config.Config) *auth.Service {
			return auth.New(client, store, logger, cfg.Session.TTL)
		},
		func(client *ruru.Client, logger logx.Logger, set *metrics.Set) *leads.Service {
			return leads.New(client, logger, metrics.Leads(set.Leads))
		},
		func(pub audit.Publisher, logger logx.Logger, set *metrics.Set) *admin.Service {
			return admin.New(pub, logger, metrics.Mutations(set.Mutations))
		},
	)
}
