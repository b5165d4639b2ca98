package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-api/config"
	"github.com/rpupo63/blog-api/database"
	"github.com/rpupo63/blog-api/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.Settings, db database.Database, notifier services.Notifier) (Server, error) {
	if settings.Port == "" {
		return Server{}, fmt.Errorf("server port is not configured")
	}
	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(
		db.BlogPostRepo(),
		withSettings(settings),
		withProbe(db),
		withNotifier(notifier),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  time.Duration(settings.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(settings.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(settings.IdleTimeoutSeconds) * time.Second,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	settings config.Settings
	posts    blogPostStore
	probe    databaseProbe
	notifier services.Notifier
}

func withSettings(settings config.Settings) func(*router) {
	return func(r *router) {
		r.settings = settings
	}
}

func withProbe(probe databaseProbe) func(*router) {
	return func(r *router) {
		r.probe = probe
	}
}

func withNotifier(notifier services.Notifier) func(*router) {
	return func(r *router) {
		r.notifier = notifier
	}
}

func newRouter(posts blogPostStore, opts ...func(*router)) *chi.Mux {
	router := router{posts: posts}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(corsMiddleware())

	handlers := initializeHandlers(router)
	setupRoutes(chiRouter, handlers)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", s.Uptime()).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
