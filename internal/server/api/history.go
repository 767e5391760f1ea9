// Package api provides HTTP API handlers for the Sparsh virtual touch calculator.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/sparsh/internal/store"
)

// defaultHistoryLimit bounds unqualified history listings.
const defaultHistoryLimit = 10

// HistoryHandler handles HTTP requests for calculation history.
type HistoryHandler struct {
	store *store.Store
}

// NewHistoryHandler creates a new HistoryHandler with the given store.
func NewHistoryHandler(s *store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/history or /api/history/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/history")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/history
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.clear(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/history/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type calculationResponse struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	CreatedAt  string `json:"created_at"`
}

type listHistoryResponse struct {
	Calculations []calculationResponse `json:"calculations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Calculation to a calculationResponse.
func toResponse(c *store.Calculation) calculationResponse {
	return calculationResponse{
		ID:         c.ID,
		Expression: c.Expression,
		Result:     c.Result,
		CreatedAt:  c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/history and returns recent calculations, newest first.
func (h *HistoryHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	calculations, err := h.store.History().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history")
		return
	}

	response := listHistoryResponse{
		Calculations: make([]calculationResponse, 0, len(calculations)),
	}
	for _, c := range calculations {
		response.Calculations = append(response.Calculations, toResponse(c))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/history/{id} and returns a single calculation.
func (h *HistoryHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	calculation, err := h.store.History().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Calculation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get calculation")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(calculation))
}

// clear handles DELETE /api/history and removes all stored calculations.
func (h *HistoryHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.History().Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
