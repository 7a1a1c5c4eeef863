// Package server provides the HTTP API for tag autocomplete, bookmark search
// and the tag cloud.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/search"
	"github.com/nikbrunner/pouch/internal/storage"
)

// Source is the read side of the bookmark store.
type Source interface {
	Bookmarks() []model.Bookmark
	Bookmark(id string) (model.Bookmark, error)
	storage.TagRegistry
}

// Writer applies edits to the stored bookmarks. Sources that implement it
// get the write routes.
type Writer interface {
	Update(fn func(*model.Store) error) error
}

// Server is the HTTP server for the pouch API.
type Server struct {
	source Source
	engine *search.Engine
	config storage.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(source Source, cfg storage.ServerConfig, searchCfg storage.SearchConfig, logger *zap.Logger) *Server {
	return &Server{
		source: source,
		engine: search.NewEngine(source, searchCfg.SuggestionLimit),
		config: cfg,
		logger: logger,
	}
}

// Handler returns the router with all routes mounted.
func (s *Server) Handler() http.Handler {
	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tags", s.handleTags)
		r.Get("/tags/autocomplete", s.handleAutocomplete)
		r.Get("/bookmarks/search", s.handleSearchGet)
		r.Post("/bookmarks/search", s.handleSearchPost)
		r.Get("/bookmarks/{id}", s.handleGetBookmark)
		if w, ok := s.source.(Writer); ok {
			r.Post("/bookmarks", s.handleAddBookmark(w))
			r.Delete("/bookmarks/{id}", s.handleDeleteBookmark(w))
		}
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
