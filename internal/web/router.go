package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/reflink/giveaway/internal/config"
	"github.com/reflink/giveaway/internal/handlers"
	mw "github.com/reflink/giveaway/internal/middleware"
	"github.com/reflink/giveaway/internal/session"
)

func Router(cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)

	tmpl := Templates()
	sessions := session.NewManager(cfg.SessionSecret)

	// Public pages
	r.Get("/", handlers.Home(tmpl, sessions))
	r.Post("/", handlers.RegisterSubmit(tmpl, sessions))
	r.Get("/healthz", handlers.Health)
	r.Get("/qr/{token}.png", handlers.QR)

	// Admin login (public)
	r.Get("/admin", handlers.AdminLoginForm(tmpl, sessions))
	r.Post("/admin", handlers.AdminLoginSubmit(sessions, cfg))

	// Guarded admin pages
	r.Group(func(ag chi.Router) {
		ag.Use(handlers.RequireAdmin(sessions))
		ag.Get("/dashboard", handlers.Dashboard(tmpl, sessions))
		ag.Post("/delete_user/{id}", handlers.DeleteUser(sessions))
		ag.Post("/clear_database", handlers.ClearDatabase(sessions))
		ag.Post("/logout", handlers.AdminLogout(sessions))
	})

	// Shareable links; static routes above win over the wildcard.
	r.Get("/{token}", handlers.Visit(sessions))

	return r
}
