package main

import (
	"context"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api"
	apiMiddleware "github.com/ecofinds/ecofinds-api/internal/api/middleware"
	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
// ctx bounds background work owned by the router, such as the rate limiter sweep.
func (app *application) setupRouter(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	metrics := apiMiddleware.NewMetrics(app.metricsRegistry)

	r.Use(middleware.RequestID)
	r.Use(apiMiddleware.CapturePeer)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{shared.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	productHandler := api.NewProductHandler(app.productService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService)
	limiter := apiMiddleware.NewRateLimiter(ctx,
		app.config.Server.RateLimitRPS, app.config.Server.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithJSON(w, r, http.StatusOK, api.MessageResponse{Message: "EcoFinds API is running!"})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// Public endpoints
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{id}/count", categoryHandler.CategoryCount)
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/featured", productHandler.FeaturedProducts)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Get("/users/{id}", userHandler.GetUser)
		r.Get("/users/{id}/products", productHandler.ListUserProducts)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/products", productHandler.CreateProduct)
			r.Put("/products/{id}", productHandler.UpdateProduct)
			r.Delete("/products/{id}", productHandler.DeleteProduct)
			r.Put("/users/{id}", userHandler.UpdateUser)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.metricsRegistry, promhttp.HandlerOpts{}))

	return r
}
