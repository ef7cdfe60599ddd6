package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"CAMPUS_EVENTS_BACK-END/internal/config"
	"CAMPUS_EVENTS_BACK-END/internal/handlers"
	"CAMPUS_EVENTS_BACK-END/internal/middleware"
	"CAMPUS_EVENTS_BACK-END/internal/store"
)

// Setup configures all application routes
func Setup(
	authHandler *handlers.AuthHandler,
	eventsHandler *handlers.EventsHandler,
	healthHandler *handlers.HealthHandler,
	users store.UserStore,
	cfg *config.Config,
) *mux.Router {
	r := mux.NewRouter()

	protected := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(next, users, &cfg.JWT)
	}

	// Health check routes
	r.HandleFunc("/healthz", healthHandler.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/readyz", healthHandler.ReadinessCheck).Methods(http.MethodGet)

	// Authentication routes
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/profile", protected(authHandler.Profile)).Methods(http.MethodGet)

	// Event routes; /search is registered before /{id} so it wins the match
	r.HandleFunc("/api/events", eventsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/events/search", eventsHandler.Search).Methods(http.MethodGet)
	r.HandleFunc("/api/events/{id}", eventsHandler.Detail).Methods(http.MethodGet)
	r.HandleFunc("/api/events", protected(eventsHandler.Create)).Methods(http.MethodPost)
	r.HandleFunc("/api/events/{id}", protected(eventsHandler.Update)).Methods(http.MethodPut)
	r.HandleFunc("/api/events/{id}", protected(eventsHandler.Delete)).Methods(http.MethodDelete)

	// Uploaded images
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Root route
	r.HandleFunc("/", rootHandler)

	return r
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Campus Events API is running."))
}
