package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes registers the public routes. There is no authentication.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware(log.With().Str("component", "http").Logger()))

		r.Get("/", handlers.diagnosticsHandler.root())
		r.Get("/test", handlers.diagnosticsHandler.test())

		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", handlers.blogPostHandler.listBlogPosts())
			r.Post("/", handlers.blogPostHandler.createBlogPost())
			r.Get("/{postID}", handlers.blogPostHandler.getBlogPost())
			r.Put("/{postID}", handlers.blogPostHandler.updateBlogPost())
			r.Patch("/{postID}", handlers.blogPostHandler.updateBlogPost())
			r.Delete("/{postID}", handlers.blogPostHandler.deleteBlogPost())
		})
	})
}
