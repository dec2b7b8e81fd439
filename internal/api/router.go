// Package api assembles the HTTP surface from the feature handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/blog/docs"
	"github.com/fkhayef/blog/internal/config"
	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/internal/post"
	"github.com/fkhayef/blog/internal/system"
	"github.com/fkhayef/blog/internal/user"
	mw "github.com/fkhayef/blog/pkg/middleware"
)

// NewRouter wires repositories, services and handlers over store
func NewRouter(cfg *config.Config, store docstore.Store) http.Handler {
	// User feature
	userRepo := user.NewRepository(store)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Post feature (comments are embedded in posts)
	postRepo := post.NewRepository(store)
	postService := post.NewService(postRepo, userService)
	postHandler := post.NewHandler(postService)

	systemHandler := system.NewHandler(store, cfg.DatabaseURL)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.CORS(cfg.CorsAllowedOrigins))
	r.Use(mw.MaxBodyBytes(cfg.MaxBodyBytes))

	r.Get("/", systemHandler.Root)
	r.Get("/test", systemHandler.Test)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", systemHandler.Health)

		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/posts", postHandler.Routes())
	})

	return r
}
