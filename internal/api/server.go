// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/cart"
	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/product"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/config"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/constants"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/middleware"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/account"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/designer"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is up.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry.
	Metrics http.Handler

	Auth     *auth.Handler
	Account  *account.Handler
	Designer *designer.Handler
	Products *product.Handler
	Cart     *cart.Handler
}

// Security is what the auth gate and the role authorizer need.
type Security struct {
	Tokens   middleware.TokenResolver
	Profiles middleware.ProfileReader
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Route Layout
//
//	/health, /ready, /metrics           public probes
//	/api/v1/auth/*                      public
//	/api/v1/products                    public reads, guarded writes
//	/api/v1/{me,designer,cart}/*        auth gate
//	/api/v1/admin/*                     auth gate + admin role
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, metrics *middleware.Metrics, security Security, h Handlers) *Server {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Middleware)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg, cfg.AllowedOrigins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", h.Metrics)

	authenticate := middleware.Authenticate(security.Tokens, security.Profiles)
	sellers := middleware.Authorize(security.Profiles, sec.RoleDesigner, sec.RoleAdmin)
	admins := middleware.Authorize(security.Profiles, sec.RoleAdmin)

	publish := func(next http.Handler) http.Handler {
		return chi.Chain(authenticate, sellers).Handler(next)
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/products", h.Products.Routes(publish, authenticate))

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate)

			protected.Mount("/me", h.Account.Routes())
			protected.Mount("/designer", h.Designer.Routes())
			protected.Mount("/cart", h.Cart.Routes())

			protected.Route("/admin", func(admin chi.Router) {
				admin.Use(admins)
				admin.Mount("/users", h.Account.AdminRoutes())
				admin.Mount("/designer-applications", h.Designer.AdminRoutes())
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
