package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	diagnosticsTimeout    = 5 * time.Second
	maxListedCollections  = 10
	maxDiagnosticErrorLen = 80
)

// databaseProbe is what the diagnostics endpoint inspects.
type databaseProbe interface {
	Name() string
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

type diagnosticsHandler struct {
	responder   Responder
	logger      zerolog.Logger
	probe       databaseProbe
	databaseURL bool
}

func newDiagnosticsHandler(probe databaseProbe, databaseURLSet bool) diagnosticsHandler {
	logger := log.With().Str("handlerName", "diagnosticsHandler").Logger()

	return diagnosticsHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		probe:       probe,
		databaseURL: databaseURLSet,
	}
}

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// root
// @Summary Liveness message
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h diagnosticsHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Blog API is running"})
	}
}

// test reports process and database status. It always answers 200; every
// storage failure is folded into a status string.
// @Summary Diagnostics
// @Produce json
// @Success 200 {object} diagnosticsResponse
// @Router /test [get]
func (h diagnosticsHandler) test() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), diagnosticsTimeout)
		defer cancel()

		h.responder.WriteJSON(w, http.StatusOK, h.inspect(ctx))
	}
}

func (h diagnosticsHandler) inspect(ctx context.Context) (resp diagnosticsResponse) {
	resp = diagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().Interface("panic", rec).Msg("diagnostics probe panicked")
			resp.Database = "❌ Error: " + truncate(fmt.Sprint(rec))
		}
	}()

	if h.probe == nil {
		resp.Database = "⚠️ Available but not initialized"
		return resp
	}

	resp.Database = "✅ Available"
	urlStatus := "❌ Not Set"
	if h.databaseURL {
		urlStatus = "✅ Set"
	}
	resp.DatabaseURL = &urlStatus

	name := h.probe.Name()
	if name == "" {
		name = "✅ Connected"
	}
	resp.DatabaseName = &name

	var (
		g           errgroup.Group
		pingErr     error
		listErr     error
		collections []string
	)
	g.Go(func() error {
		pingErr = safely(func() error { return h.probe.Ping(ctx) })
		return pingErr
	})
	g.Go(func() error {
		listErr = safely(func() (err error) {
			collections, err = h.probe.CollectionNames(ctx)
			return err
		})
		return listErr
	})
	if err := g.Wait(); err != nil {
		h.logger.Warn().Err(err).Msg("database diagnostics failed")
	}

	switch {
	case pingErr != nil:
		resp.Database = "❌ Error: " + truncate(pingErr.Error())
	case listErr != nil:
		resp.ConnectionStatus = "Connected"
		resp.Database = "⚠️ Connected but Error: " + truncate(listErr.Error())
	default:
		resp.ConnectionStatus = "Connected"
		resp.Database = "✅ Connected & Working"
		if len(collections) > maxListedCollections {
			collections = collections[:maxListedCollections]
		}
		if collections != nil {
			resp.Collections = collections
		}
	}
	return resp
}

// safely runs fn, turning a panic into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxDiagnosticErrorLen {
		return string(r[:maxDiagnosticErrorLen])
	}
	return s
}
