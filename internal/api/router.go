package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spacerent/space-rental-backend/internal/api/handlers"
	"github.com/spacerent/space-rental-backend/internal/api/middleware"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/service"
	"github.com/spacerent/space-rental-backend/internal/token"
)

func NewRouter(services *service.Services, tokens *token.Manager) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	spaceHandler := handlers.NewSpaceHandler(services.Space)
	reviewHandler := handlers.NewReviewHandler(services.Review)
	bookingHandler := handlers.NewBookingHandler(services.Booking)

	lookups := map[string]func(chi.Router){
		"/space-types":          handlers.NewLookupHandler[domain.SpaceType](services.SpaceType).Routes,
		"/space-access-methods": handlers.NewLookupHandler[domain.SpaceAccessMethod](services.SpaceAccessMethod).Routes,
		"/space-access-options": handlers.NewLookupHandler[domain.SpaceAccessOption](services.SpaceAccessOption).Routes,
		"/storage-conditions":   handlers.NewLookupHandler[domain.StorageCondition](services.StorageCondition).Routes,
		"/unloading-movings":    handlers.NewLookupHandler[domain.UnloadingMoving](services.UnloadingMoving).Routes,
		"/space-securities":     handlers.NewLookupHandler[domain.SpaceSecurity](services.SpaceSecurity).Routes,
		"/space-schedules":      handlers.NewLookupHandler[domain.SpaceSchedule](services.SpaceSchedule).Routes,
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-in", authHandler.SignIn)
			r.Post("/admin/sign-in", authHandler.AdminSignIn)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/revoke", authHandler.Revoke)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(tokens))
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Public listing views
		r.Get("/spaces/cards", spaceHandler.Cards)
		r.Get("/spaces/{id}", spaceHandler.Get)
		r.Get("/reviews/space/{spaceId}", reviewHandler.ListBySpace)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			// Lookup tables
			for pattern, mount := range lookups {
				r.Route(pattern, mount)
			}

			// User routes
			r.Route("/users", func(r chi.Router) {
				r.Put("/me/profile-picture", userHandler.UpdateProfilePicture)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", userHandler.Create)
					r.Get("/", userHandler.List)
					r.Get("/{id}", userHandler.Get)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			// Space routes
			r.Route("/spaces", func(r chi.Router) {
				r.Post("/", spaceHandler.Create)
				r.Put("/{id}", spaceHandler.Update)
				r.Delete("/{id}", spaceHandler.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/verify", spaceHandler.Verify)
				})
			})

			// Review routes
			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", reviewHandler.Create)
				r.Get("/", reviewHandler.List)
				r.Delete("/{id}", reviewHandler.Delete)
			})

			// Booking routes
			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", bookingHandler.Create)
				r.Get("/", bookingHandler.ListMine)
				r.Get("/{id}", bookingHandler.Get)
			})
		})
	})

	return r
}
