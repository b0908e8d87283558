// Package api provides the REST API for ctxtier-service.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ctxtier/ctxtier/internal/config"
	"github.com/ctxtier/ctxtier/pkg/catalog"
)

// Server represents the API server.
type Server struct {
	cfg     *config.Config
	router  chi.Router
	catalog *catalog.Catalog
	mcp     http.Handler
}

// NewServer creates a new API server. The mcp handler is optional; when
// non-nil and enabled in the config it is mounted under /mcp.
func NewServer(cfg *config.Config, cat *catalog.Catalog, mcp http.Handler) *Server {
	s := &Server{
		cfg:     cfg,
		catalog: cat,
		mcp:     mcp,
	}

	s.setupRouter()
	return s
}

// setupRouter configures all routes.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Optional API key authentication
	if s.cfg.API.APIKey != "" {
		r.Use(s.apiKeyAuth)
	}

	// Health and version endpoints (no auth)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	// Classification
	r.Post("/classify", s.handleClassify)

	// Tier catalog
	r.Route("/tiers", func(r chi.Router) {
		r.Get("/", s.handleListTiers)
		r.Get("/{tier}/modules", s.handleTierModules)
	})

	// MCP over HTTP
	if s.mcp != nil && s.cfg.MCP.Enabled {
		r.Handle("/mcp", s.mcp)
		r.Handle("/mcp/*", s.mcp)
	}

	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// apiKeyAuth is middleware that validates API key.
func (s *Server) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth for health and version
		if r.URL.Path == "/health" || r.URL.Path == "/version" {
			next.ServeHTTP(w, r)
			return
		}

		if s.cfg.API.APIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Check API key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey != s.cfg.API.APIKey {
			writeError(w, http.StatusUnauthorized, "Invalid or missing API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
