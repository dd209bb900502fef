package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adminusers "monterhyra/frontend/adminUsers"
	"monterhyra/frontend/events"
	"monterhyra/frontend/exports"
	"monterhyra/frontend/help"
	"monterhyra/frontend/login"
	"monterhyra/frontend/orders"
	"monterhyra/frontend/packlist"
	"monterhyra/frontend/pricing"
	"monterhyra/frontend/printfiles"
	"monterhyra/infrastructure/rbac"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes(r chi.Router) {
	r.Get("/login", login.GetLoginScreenHandler)
	r.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache, s.SessionTTL))
	r.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterPublicRoutes registers the configurator API. No session is required.
func (s *Server) RegisterPublicRoutes(r chi.Router) {
	r.Post("/api/pricing/quote", pricing.QuoteHandler(s.Events))
	r.Get("/api/pricing/defaults", pricing.DefaultsHandler(s.Events))

	r.Post("/api/packlist/categorize", packlist.CategorizeHandler())
	r.Post("/api/packlist/export.xlsx", packlist.ExportHandler())

	r.Post("/api/printfiles/storage-walls", printfiles.StorageWallsHandler())
	r.Post("/api/printfiles/archive", printfiles.ArchiveHandler(s.Printer))
	r.Post("/api/printfiles/wall.pdf", printfiles.WallHandler())

	r.Post("/api/orders", orders.CheckoutHandler(s.Orders))

	r.Get("/api/events/{id}/pricing", events.EventPricingHandler(s.Events))
	r.Get("/api/invites/{token}", events.InviteHandler(s.Events))
}

// RegisterAdminRoutes registers session protected routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) {
	s.RegisterOrderRoutes(r)
	s.RegisterEventRoutes(r)
	s.RegisterUserRoutes(r)

	s.Rbac.Allow("HELP_VIEW", http.MethodGet, "/admin/help", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/admin/help", help.HelpPageQueryHandler())
}

func (s *Server) RegisterOrderRoutes(r chi.Router) {
	s.Rbac.Allow("ORDERS_PAGE_VIEW", http.MethodGet, "/admin/orders", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/admin/orders", orders.OrdersPageHandler(s.Orders))
	s.Rbac.Allow("ORDERS_PAGE_DELETE", http.MethodPost, "/admin/orders/*/delete", rbac.RoleAdmin)
	r.Post("/admin/orders/{id}/delete", orders.DeleteFormHandler(s.Orders))

	s.Rbac.Allow("ORDERS_LIST", http.MethodGet, "/api/admin/orders", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders", orders.ListHandler(s.Orders))
	s.Rbac.Allow("ORDERS_EXPORT", http.MethodGet, "/api/admin/orders/export.csv", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/export.csv", exports.OrdersCSVHandler(s.Orders))
	s.Rbac.Allow("ORDERS_EXPORT", http.MethodGet, "/api/admin/orders/export.xlsx", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/export.xlsx", exports.OrdersXLSXHandler(s.Orders))
	s.Rbac.Allow("ORDERS_VIEW", http.MethodGet, "/api/admin/orders/*", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/{id}", orders.GetHandler(s.Orders))
	s.Rbac.Allow("ORDERS_EDIT", http.MethodPatch, "/api/admin/orders/*", rbac.RoleAdmin)
	r.Patch("/api/admin/orders/{id}", orders.UpdateHandler(s.Orders))
	s.Rbac.Allow("ORDERS_DELETE", http.MethodDelete, "/api/admin/orders/*", rbac.RoleAdmin)
	r.Delete("/api/admin/orders/{id}", orders.DeleteHandler(s.Orders))

	s.Rbac.Allow("ORDERS_ARCHIVE", http.MethodGet, "/api/admin/orders/*/archive.zip", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/{id}/archive.zip", orders.ArchiveHandler(s.Orders))
	s.Rbac.Allow("ORDERS_ARCHIVE_ATTACH", http.MethodPut, "/api/admin/orders/*/archive", rbac.RoleAdmin)
	r.Put("/api/admin/orders/{id}/archive", orders.AttachArchiveHandler(s.Orders))
	s.Rbac.Allow("ORDERS_PACKING_SLIP", http.MethodGet, "/api/admin/orders/*/packing-slip.pdf", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/{id}/packing-slip.pdf", orders.PackingSlipHandler(s.Orders))
	s.Rbac.Allow("ORDERS_QUOTE", http.MethodGet, "/api/admin/orders/*/quote.pdf", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/{id}/quote.pdf", orders.QuotePDFHandler(s.Orders))
	s.Rbac.Allow("ORDERS_SUMMARY", http.MethodGet, "/api/admin/orders/*/summary.txt", rbac.RoleAdmin, rbac.RoleWarehouse)
	r.Get("/api/admin/orders/{id}/summary.txt", orders.SummaryHandler(s.Orders))
}

func (s *Server) RegisterEventRoutes(r chi.Router) {
	s.Rbac.Allow("EVENTS_LIST", http.MethodGet, "/api/admin/events", rbac.RoleAdmin)
	r.Get("/api/admin/events", events.ListHandler(s.Events))
	s.Rbac.Allow("EVENTS_CREATE", http.MethodPost, "/api/admin/events", rbac.RoleAdmin)
	r.Post("/api/admin/events", events.CreateHandler(s.Events))
	s.Rbac.Allow("EVENTS_VIEW", http.MethodGet, "/api/admin/events/*", rbac.RoleAdmin)
	r.Get("/api/admin/events/{id}", events.GetHandler(s.Events))
	s.Rbac.Allow("EVENTS_DELETE", http.MethodDelete, "/api/admin/events/*", rbac.RoleAdmin)
	r.Delete("/api/admin/events/{id}", events.DeleteHandler(s.Events))
	s.Rbac.Allow("EVENTS_PRICING_EDIT", http.MethodPut, "/api/admin/events/*/pricing", rbac.RoleAdmin)
	r.Put("/api/admin/events/{id}/pricing", events.UpdatePricingHandler(s.Events))
	s.Rbac.Allow("EVENTS_BRANDING_EDIT", http.MethodPut, "/api/admin/events/*/branding", rbac.RoleAdmin)
	r.Put("/api/admin/events/{id}/branding", events.UpdateBrandingHandler(s.Events))
	s.Rbac.Allow("EXHIBITORS_CREATE", http.MethodPost, "/api/admin/events/*/exhibitors", rbac.RoleAdmin)
	r.Post("/api/admin/events/{id}/exhibitors", events.AddExhibitorHandler(s.Events))
	s.Rbac.Allow("EXHIBITORS_LIST", http.MethodGet, "/api/admin/events/*/exhibitors", rbac.RoleAdmin)
	r.Get("/api/admin/events/{id}/exhibitors", events.ExhibitorsHandler(s.Events))

	s.Rbac.Allow("PRICING_DEFAULTS_EDIT", http.MethodPut, "/api/admin/pricing/defaults", rbac.RoleAdmin)
	r.Put("/api/admin/pricing/defaults", events.GlobalPricingHandler(s.Events))
}

func (s *Server) RegisterUserRoutes(r chi.Router) {
	s.Rbac.Allow("ADMIN_USERS_LIST_VIEW", http.MethodGet, "/admin/users", rbac.RoleAdmin)
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB))
	s.Rbac.Allow("ADMIN_USERS_CREATE", http.MethodPost, "/admin/users", rbac.RoleAdmin)
	r.Post("/admin/users", adminusers.CreateUserCommandHandler(s.DB, s.Audit))
	s.Rbac.Allow("ADMIN_USERS_DELETE", http.MethodPost, "/admin/users/*/delete", rbac.RoleAdmin)
	r.Post("/admin/users/{id}/delete", adminusers.DeleteUserCommandHandler(s.DB, s.Audit))
	s.Rbac.Allow("ADMIN_USERS_PASSWORD", http.MethodPost, "/admin/users/*/password", rbac.RoleAdmin)
	r.Post("/admin/users/{id}/password", adminusers.ResetPasswordCommandHandler(s.DB, s.Audit))
}
