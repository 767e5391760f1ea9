// Package server provides the HTTP server for the Sparsh virtual touch calculator.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/server/api"
	"github.com/ayusman/sparsh/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the Sparsh application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
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

	if s.config.Store != nil {
		historyHandler := api.NewHistoryHandler(s.config.Store)
		s.mux.Handle("/api/history", historyHandler)
		s.mux.Handle("/api/history/", historyHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings", settingsHandler)
		s.mux.Handle("/api/settings/", settingsHandler)
	}

	if s.config.App != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/commands", s.handleCommand)
		s.mux.HandleFunc("/api/layout", s.handleLayout)

		streamHandler := NewStreamHandler(s.config.App.Camera())
		s.mux.Handle("/api/stream", streamHandler)

		stateHandler := NewStateHandler(s.config.App)
		s.mux.Handle("/api/ws", stateHandler)
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

// handleState handles GET requests to /api/state and returns the current
// interaction snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.App.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

type commandRequest struct {
	Command string `json:"command"`
}

// handleCommand handles POST requests to /api/commands. Commands queue for
// the next frame boundary; they never interrupt a frame in flight.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	switch cmd := app.Command(req.Command); cmd {
	case app.CmdToggleTheme, app.CmdToggleInstructions, app.CmdResetHistory, app.CmdClear:
		s.config.App.Do(cmd)
		w.WriteHeader(http.StatusAccepted)
	default:
		http.Error(w, "Unknown command", http.StatusBadRequest)
	}
}

// handleLayout handles GET requests to /api/layout and returns the button
// rectangles so clients can draw the panel.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	grid := s.config.App.Layout()

	type buttonResponse struct {
		ID       string `json:"id"`
		Label    string `json:"label"`
		Category string `json:"category"`
		X        int    `json:"x"`
		Y        int    `json:"y"`
		Width    int    `json:"width"`
		Height   int    `json:"height"`
	}

	buttons := grid.Buttons()
	response := struct {
		Width   int              `json:"width"`
		Height  int              `json:"height"`
		Buttons []buttonResponse `json:"buttons"`
	}{
		Width:   grid.Width(),
		Height:  grid.Height(),
		Buttons: make([]buttonResponse, 0, len(buttons)),
	}

	for _, b := range buttons {
		response.Buttons = append(response.Buttons, buttonResponse{
			ID:       b.ID,
			Label:    b.Label,
			Category: string(b.Category),
			X:        b.Rect.Min.X,
			Y:        b.Rect.Min.Y,
			Width:    b.Rect.Dx(),
			Height:   b.Rect.Dy(),
		})
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
