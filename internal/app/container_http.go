package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/gateway/ruru"
	"ruru-backoffice/internal/http/handlers"
	"ruru-backoffice/internal/http/middleware/ratelimit"
	"ruru-backoffice/internal/http/pprofserver"
	"ruru-backoffice/internal/http/router"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/metrics"
	"ruru-backoffice/internal/resource"
	"ruru-backoffice/internal/service/admin"
	"ruru-backoffice/internal/service/auth"
	"ruru-backoffice/internal/service/leads"
	"ruru-backoffice/internal/session"
	"ruru-backoffice/internal/view"
)

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config) pprofOut {
	pc := pprofserver.Config{Addr: cfg.Pprof.Addr, User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}
	if !pc.Enabled() {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.New(pc)}
}

func newCookie(cfg *config.Config) handlers.Cookie {
	return handlers.Cookie{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}
}

func newBaseHandlers(logger logx.Logger, render *view.Renderer, keys secrets, cfg *config.Config) *handlers.Handlers {
	return handlers.New(logger, render, handlers.NewFlash(keys.Flash, cfg.Session.Secure))
}

func newPublicHandler(base *handlers.Handlers, svc *leads.Service) *handlers.PublicHandler {
	return handlers.NewPublicHandler(base, svc)
}

func newAuthHandler(base *handlers.Handlers, svc *auth.Service, cookie handlers.Cookie, spaces *resource.Registry) *handlers.AuthHandler {
	return handlers.NewAuthHandler(base, handlers.NewAuthService(svc), cookie, spaces)
}

type adminHandlerIn struct {
	dig.In
	Base     *handlers.Handlers
	Service  *admin.Service
	Client   *ruru.Client
	Spaces   *resource.Registry
	Sessions session.Store
	Cookie   handlers.Cookie
	Metrics  *metrics.Set
	Config   *config.Config
}

func newAdminHandler(in adminHandlerIn) *handlers.AdminHandler {
	client := in.Client
	return handlers.NewAdminHandler(in.Base, handlers.AdminDeps{
		Service:  in.Service,
		API:      func(token string) admin.API { return client.As(ruru.StaticToken(token)) },
		Spaces:   in.Spaces,
		Sessions: in.Sessions,
		Cookie:   in.Cookie,
		Stale:    in.Metrics.StaleResponses,
		PageSize: in.Config.UI.PageSize,
	})
}

type routerIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Keys     secrets
	Gatherer prometheus.Gatherer
	Base     *handlers.Handlers
	Public   *handlers.PublicHandler
	Auth     *handlers.AuthHandler
	Admin    *handlers.AdminHandler
	Limiter  *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Options{
		CSRFKey:     in.Keys.CSRF,
		Secure:      in.Config.Session.Secure,
		CORSOrigins: in.Config.CORS,
		PublicLimit: in.Config.UI.PublicLimit,
	}, router.Deps{
		Logger:  in.Logger,
		Base:    in.Base,
		Public:  in.Public,
		Auth:    in.Auth,
		Admin:   in.Admin,
		Limiter: in.Limiter,
		Metrics: promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{}),
	})
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		view.NewRenderer,
		newSecrets,
		newCookie,
		newBaseHandlers,
		newPublicHandler,
		newAuthHandler,
		newAdminHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		newServer,
		newPprofServer,
	)
}
