// Package api exposes verification over HTTP: on-demand verification of
// server-local capture files, the archived run history, and Prometheus
// metrics.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mktdata/mktverify/pkg/verify"
)

// Router builds the HTTP routes for the server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/verify", s.handleVerify)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(store RunStore, config ServerConfig, verifierConfig verify.VerifierConfig) error {
	metrics := NewMetrics()
	verifier := verify.NewVerifier(verifierConfig, metrics)
	server := NewServer(store, verifier, config)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting mktverify API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)

	return http.ListenAndServe(addr, server.Router())
}
