package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"homepage/internal/auth"
	"homepage/internal/config"
	"homepage/internal/docs"
	"homepage/internal/entitlement"
)

type Server struct {
	router *chi.Mux
	config *config.Config
}

func NewServer(cfg *config.Config, registry *docs.Registry) *Server {
	authService := auth.NewService(registry)
	entitlementService := entitlement.NewService(registry)

	contentHandler := NewContentHandler(registry)
	entitlementHandler := NewEntitlementHandler(entitlementService)
	adminHandler := NewAdminHandler(authService)
	manageHandler := NewManageHandler(cfg.Manage.PageURL, cfg.Manage.FetchTimeout)
	healthHandler := NewHealthHandler(registry)

	gate := NewAdminGate(authService)

	r := chi.NewRouter()
	r.Use(slogRequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { routeNotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { routeNotFound(w) })

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Use(maxBodySizeMiddleware(1 << 20)) // 1 MB

		// Public surface.
		r.Get("/profile", contentHandler.GetProfile)
		r.Get("/announcement", contentHandler.GetAnnouncement)
		r.Get("/portals", contentHandler.GetPortals)
		r.Post("/redeem", entitlementHandler.Redeem)
		r.Get("/vip/check", entitlementHandler.CheckVip)
		r.Get("/verified/check", entitlementHandler.CheckVerified)
		r.Post("/admin/login", adminHandler.Login)

		// Everything else goes through the admin gate.
		r.Group(func(r chi.Router) {
			r.Use(gate.Require)

			r.Put("/profile", contentHandler.UpdateProfile)
			r.Put("/announcement", contentHandler.UpdateAnnouncement)
			r.Put("/portals", contentHandler.UpdatePortals)
			r.Get("/admin/portals", contentHandler.GetAllPortals)
			r.Put("/admin/password", adminHandler.ChangePassword)

			r.Get("/admin/redeem-codes", entitlementHandler.ListCodes)
			r.Post("/admin/redeem-codes", entitlementHandler.CreateCodes)
			r.Delete("/admin/redeem-codes", entitlementHandler.DeleteCode)

			r.Get("/admin/vip-users", entitlementHandler.ListVipUsers)
			r.Post("/admin/vip-users", entitlementHandler.GrantVip)
			r.Delete("/admin/vip-users", entitlementHandler.RevokeVip)

			r.Get("/admin/verified-users", entitlementHandler.ListVerifiedUsers)
			r.Post("/admin/verified-users", entitlementHandler.AddVerified)
			r.Delete("/admin/verified-users", entitlementHandler.RemoveVerified)
		})
	})

	r.Get("/manage", manageHandler.ServePage)
	r.Get("/manage/", manageHandler.ServePage)

	return &Server{
		router: r,
		config: cfg,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
