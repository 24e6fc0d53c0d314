// Package api exposes the storefront and admin back-office over REST.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/royalkeys/royalkeys/assistant"
	"github.com/royalkeys/royalkeys/backoffice"
	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/checkout"
	"github.com/royalkeys/royalkeys/router"
	"github.com/royalkeys/royalkeys/session"
)

//go:embed openapi.yaml
var openapiSpec []byte

// defaultAdminSessionTTL is the absolute lifetime of an admin session.
const defaultAdminSessionTTL = 12 * time.Hour

// API holds the dependencies needed by the REST handlers.
type API struct {
	nav         *router.Router
	catalog     *catalog.Catalog
	sessions    *session.Manager
	processor   checkout.Processor
	assistant   assistant.Completer
	backoffice  backoffice.Service
	admin       SessionStore
	rateLimiter *loginRateLimiter
	ipLimiter   *ipRateLimiter
	audit       *auditLogger
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// WithProcessor overrides the checkout processor.
func WithProcessor(p checkout.Processor) Option {
	return func(a *API) { a.processor = p }
}

// WithAssistant sets the generative-text backend for the chat widget.
func WithAssistant(c assistant.Completer) Option {
	return func(a *API) { a.assistant = c }
}

// WithBackoffice sets the admin data service.
func WithBackoffice(s backoffice.Service) Option {
	return func(a *API) { a.backoffice = s }
}

// WithAdminSessionStore overrides the admin session store.
func WithAdminSessionStore(s SessionStore) Option {
	return func(a *API) { a.admin = s }
}

// New creates a new API instance over the given navigation router.
func New(nav *router.Router, cat *catalog.Catalog, sessions *session.Manager, opts ...Option) *API {
	a := &API{
		nav:         nav,
		catalog:     cat,
		sessions:    sessions,
		processor:   checkout.NewSimulatedProcessor(),
		rateLimiter: newLoginRateLimiter(),
		ipLimiter:   newIPRateLimiter(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.admin == nil {
		a.admin = NewMemorySessionStore(30 * time.Minute)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	return a
}

// Router returns a chi.Router with all API routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/docs",
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/redoc",
	}, nil))

	r.Get("/catalog", a.ListCatalog)
	r.Get("/catalog/categories", a.ListCategories)
	r.Get("/catalog/{productID}", a.GetProduct)

	r.Get("/nav/state", a.NavState)
	r.Post("/nav/home", a.NavHome)
	r.Post("/nav/category", a.NavCategory)
	r.Post("/nav/search", a.NavSearch)
	r.Post("/nav/product", a.NavProduct)
	r.Post("/nav/info", a.NavInfo)
	r.Post("/nav/dashboard", a.NavDashboard)

	r.Get("/session", a.GetSession)
	r.Get("/session/keys", a.ListKeys)

	r.Post("/checkout", a.BeginCheckout)
	r.Post("/checkout/cancel", a.CancelCheckout)
	r.Post("/checkout/submit", a.SubmitCheckout)

	r.Post("/assistant/chat", a.AssistantChat)

	r.Post("/admin/login", a.AdminLogin)
	r.Post("/admin/logout", a.AdminLogout)
	r.Post("/admin/reset-password", a.AdminResetPassword)

	r.Route("/admin/products", func(r chi.Router) {
		r.Use(a.AdminAuthMiddleware)
		r.Get("/", a.AdminListProducts)
		r.Put("/{productID}", a.AdminUpsertProduct)
		r.Delete("/{productID}", a.AdminDeleteProduct)
	})

	return r
}
