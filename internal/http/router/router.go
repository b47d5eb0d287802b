package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/csrf"

	"ruru-backoffice/internal/http/handlers"
	mw "ruru-backoffice/internal/http/middleware"
	"ruru-backoffice/internal/http/middleware/ratelimit"
	"ruru-backoffice/internal/logx"
)

const resourcePattern = "{resource:couriers|customers|riders|transactions}"

// Options are the security settings of the router.
type Options struct {
	// CSRFKey signs CSRF tokens; 32 bytes.
	CSRFKey []byte
	// Secure marks cookies Secure and enforces the HTTPS referer check.
	Secure bool
	// CORSOrigins are allowed to call admin routes with JSON. Empty disables CORS.
	CORSOrigins []string
	// PublicLimit is the number of public form posts per IP per minute. Zero disables it.
	PublicLimit int
	// Timeout bounds each request.
	Timeout time.Duration
}

// Deps groups the handlers mounted by New.
type Deps struct {
	Logger  logx.Logger
	Base    *handlers.Handlers
	Public  *handlers.PublicHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Limiter *ratelimit.Middleware
	Metrics http.Handler
}

// New constructs the chi router with base middleware and every route.
func New(opts Options, d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	r.Group(func(r chi.Router) {
		r.Use(csrfProtect(opts))

		r.Get("/", d.Public.Home)
		r.Get("/quote", d.Public.Quote)
		r.Get("/quote/local", d.Public.LocalQuoteForm)
		r.Get("/quote/international", d.Public.InternationalQuoteForm)
		r.Get("/contact", d.Public.ContactForm)
		r.Get("/terms", d.Public.Terms)
		r.Get("/terms/{doc}", d.Public.Terms)

		r.Group(func(r chi.Router) {
			if opts.PublicLimit > 0 {
				r.Use(httprate.LimitByIP(opts.PublicLimit, time.Minute))
			}
			r.Post("/quote/local", d.Public.LocalQuote)
			r.Post("/quote/international", d.Public.InternationalQuote)
			r.Post("/contact", d.Public.Contact)
		})

		r.Route("/admin", func(r chi.Router) {
			if len(opts.CORSOrigins) > 0 {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins:   opts.CORSOrigins,
					AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
					AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
					AllowCredentials: true,
					MaxAge:           300,
				}))
			}
			if d.Limiter != nil {
				r.Use(d.Limiter.Handler())
			}

			r.Get("/", d.Auth.LoginPage)
			r.Post("/", d.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.RequireSession)

				r.Get("/logout", d.Auth.LogoutConfirm)
				r.Post("/logout", d.Auth.Logout)
				r.Get("/dashboard", d.Admin.Dashboard)
				r.Get("/settings", d.Admin.Settings)
				r.Post("/settings/profile", d.Admin.UpdateProfile)
				r.Post("/settings/password", d.Admin.ChangePassword)
				r.Get("/"+resourcePattern, d.Admin.List)
				r.Get("/"+resourcePattern+"/export.xlsx", d.Admin.Export)
				r.Post("/"+resourcePattern+"/{id}/actions", d.Admin.Action)
			})
		})
	})

	return r
}

// csrfProtect guards every form post. Plain HTTP deployments skip the
// referer check gorilla/csrf applies to TLS requests.
func csrfProtect(opts Options) func(http.Handler) http.Handler {
	protect := csrf.Protect(opts.CSRFKey,
		csrf.Secure(opts.Secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName("csrf_token"),
	)
	return func(next http.Handler) http.Handler {
		guarded := protect(next)
		if opts.Secure {
			return guarded
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guarded.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
