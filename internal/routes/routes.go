package routes

import (
	"net/http"

	"github.com/AnshRaj112/esangrahan-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

// Deps is everything the route table needs.
type Deps struct {
	Auth         *handlers.AuthHandler
	Points       *handlers.CollectionPointHandler
	Admin        *handlers.AdminHandler
	Protect      func(http.Handler) http.Handler
	ProtectAdmin func(http.Handler) http.Handler
}

func SetupRoutes(r chi.Router, d Deps) {
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)
	r.Get("/api/test-cors", handlers.CORSCheck)

	// Auth routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
		r.Post("/google", d.Auth.GoogleAuth)
		r.With(d.Protect).Get("/me", d.Auth.Me)

		r.Post("/admin/register", d.Auth.RegisterAdmin)
		r.Post("/admin/login", d.Auth.LoginAdmin)
		r.With(d.ProtectAdmin).Get("/admin/me", d.Auth.AdminMe)
	})

	// Collection point routes (owner only)
	r.Route("/api/collection-points", func(r chi.Router) {
		r.Use(d.Protect)
		r.Post("/", d.Points.Create)
		r.Get("/", d.Points.List)
		r.Get("/{id}", d.Points.Get)
		r.Put("/{id}", d.Points.Update)
		r.Delete("/{id}", d.Points.Delete)
	})

	// Admin routes
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(d.ProtectAdmin)
		r.Get("/dashboard/stats", d.Admin.DashboardStats)
		r.Get("/users", d.Admin.ListUsers)
		r.Get("/audit", d.Admin.ListAudit)
		r.Get("/collection-points", d.Admin.ListCollectionPoints)
		r.Get("/collection-points/{id}", d.Admin.GetCollectionPoint)
		r.Delete("/collection-points/{id}", d.Admin.DeleteCollectionPoint)
		r.Put("/collection-points/{id}/status", d.Admin.UpdateStatus)
	})
}
