package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/sparsh/internal/store"
)

// knownSettings lists the keys the application reads. Writes to other keys
// are rejected so typos do not silently accumulate.
var knownSettings = map[string]bool{
	store.SettingTheme:            true,
	store.SettingCooldownMs:       true,
	store.SettingTouchRadius:      true,
	store.SettingShowInstructions: true,
}

// SettingsHandler handles HTTP requests for application settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/settings or /api/settings/{key}
	path := strings.TrimPrefix(r.URL.Path, "/api/settings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/settings
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/settings/{key}
	key := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, key)
	case http.MethodPut:
		h.set(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// list handles GET /api/settings and returns all stored settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// get handles GET /api/settings/{key} and returns a single setting.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request, key string) {
	value, err := h.store.Settings().Get(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "Setting not found")
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

// set handles PUT /api/settings/{key} and stores a setting value.
func (h *SettingsHandler) set(w http.ResponseWriter, r *http.Request, key string) {
	if !knownSettings[key] {
		writeError(w, http.StatusBadRequest, "Unknown setting")
		return
	}

	var req setSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.Settings().Set(key, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})
}
