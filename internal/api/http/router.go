package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"medishare-backend/internal/security"
	"medishare-backend/internal/service"
	"medishare-backend/internal/storage"
)

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Auth       service.AuthService
	User       service.UserService
	Equipment  service.EquipmentService
	Order      service.OrderService
	Favorite   service.FavoriteService
	Chat       service.ChatService
	Settings   service.SettingsService
	Dashboard  service.DashboardService
	Newsletter service.NewsletterService
}

// NewRouter builds the full API surface under /api/v1.
func NewRouter(svcs Services, tokens security.TokenManager, artifacts storage.ArtifactStore) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogging)
	router.Use(authenticate(tokens))
	router.Use(newRateLimiter(svcs.Settings).middleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/check-email", authHandler.CheckEmail).Methods(http.MethodGet)

	userHandler := NewUserHandler(svcs.User)
	api.HandleFunc("/users/me", requireAuth(userHandler.Profile)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/membership", userHandler.Membership).Methods(http.MethodGet)

	equipmentHandler := NewEquipmentHandler(svcs.Equipment, artifacts)
	api.HandleFunc("/equipment", equipmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment", requireAuth(equipmentHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/equipment/mine", requireAuth(equipmentHandler.ListMine)).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", equipmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", requireAuth(equipmentHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/equipment/{id}", requireAuth(equipmentHandler.Delete)).Methods(http.MethodDelete)

	orderHandler := NewOrderHandler(svcs.Order, artifacts)
	api.HandleFunc("/orders/checkout", orderHandler.Checkout).Methods(http.MethodPost)
	api.HandleFunc("/orders/mine", requireAuth(orderHandler.ListMine)).Methods(http.MethodGet)
	api.HandleFunc("/orders/received", requireAuth(orderHandler.ListReceived)).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", requireAuth(orderHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", requireAuth(orderHandler.UpdateStatus)).Methods(http.MethodPatch)

	favoriteHandler := NewFavoriteHandler(svcs.Favorite)
	api.HandleFunc("/favorites", requireAuth(favoriteHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/favorites/{equipmentId}", requireAuth(favoriteHandler.Add)).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{equipmentId}", requireAuth(favoriteHandler.Remove)).Methods(http.MethodDelete)

	chatHandler := NewChatHandler(svcs.Chat)
	api.HandleFunc("/messages", requireAuth(chatHandler.Send)).Methods(http.MethodPost)
	api.HandleFunc("/messages/partners", requireAuth(chatHandler.Partners)).Methods(http.MethodGet)
	api.HandleFunc("/messages/{userId}", requireAuth(chatHandler.Conversation)).Methods(http.MethodGet)

	settingsHandler := NewSettingsHandler(svcs.Settings)
	api.HandleFunc("/admin/settings", requireAdmin(settingsHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/admin/settings", requireAdmin(settingsHandler.Update)).Methods(http.MethodPatch)
	api.HandleFunc("/admin/settings/api-key", requireAdmin(settingsHandler.RegenerateAPIKey)).Methods(http.MethodPost)

	dashboardHandler := NewDashboardHandler(svcs.Dashboard, svcs.User)
	api.HandleFunc("/admin/dashboard", requireAdmin(dashboardHandler.AdminStats)).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/owner", requireAuth(dashboardHandler.OwnerStats)).Methods(http.MethodGet)

	newsletterHandler := NewNewsletterHandler(svcs.Newsletter)
	api.HandleFunc("/newsletter/subscribe", newsletterHandler.Subscribe).Methods(http.MethodPost)
	api.HandleFunc("/newsletter/unsubscribe", newsletterHandler.Unsubscribe).Methods(http.MethodPost)

	filesHandler := NewFilesHandler(artifacts)
	router.HandleFunc("/uploads/{key}", filesHandler.Serve).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusOK, "ok")
	}).Methods(http.MethodGet)

	return router
}
