// Package server provides the HTTP viewer for the Rangoli painter: state
// inspection, MJPEG streams of the live frame and canvas, and a landmark
// WebSocket feed.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/rangoli/internal/server/api"
)

// Config holds the server configuration. Nil fields disable the
// corresponding endpoints.
type Config struct {
	StaticDir string
	State     api.Controller
	Live      FrameSource
	Canvas    FrameSource
	Hands     HandsSource
}

// Server represents the HTTP server for the Rangoli application.
type Server struct {
	config    Config
	mux       *http.ServeMux
	start     time.Time
	landmarks *LandmarksHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.State != nil {
		s.mux.Handle("/api/state", api.NewStateHandler(s.config.State))
	}

	if s.config.Live != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Live))
	}

	if s.config.Canvas != nil {
		s.mux.Handle("/api/canvas", NewStreamHandler(s.config.Canvas))
	}

	if s.config.Hands != nil {
		s.landmarks = NewLandmarksHandler(s.config.Hands)
		s.mux.Handle("/api/landmarks", s.landmarks)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close stops the server's background work. Route handlers stay
// registered; only the landmark broadcast loop is shut down.
func (s *Server) Close() {
	if s.landmarks != nil {
		s.landmarks.Close()
	}
}
