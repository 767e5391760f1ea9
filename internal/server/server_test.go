package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/detector"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a := app.New(app.Config{SmoothWindow: 1})
	a.SetDetector(detector.NewMockDetector())
	return a
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		contentType := rec.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", contentType)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}

		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

		for _, method := range methods {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_State(t *testing.T) {
	s := New(Config{App: newTestApp(t)})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var snap app.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if snap.Calc.Display != "0" {
		t.Errorf("expected display '0', got %q", snap.Calc.Display)
	}
	if snap.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", snap.Theme)
	}
}

func TestServer_Commands(t *testing.T) {
	s := New(Config{App: newTestApp(t)})

	t.Run("accepts known commands", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"command": "clear"})
		req := httptest.NewRequest(http.MethodPost, "/api/commands", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusAccepted {
			t.Errorf("expected status %d, got %d", http.StatusAccepted, rec.Code)
		}
	})

	t.Run("rejects unknown commands", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"command": "self_destruct"})
		req := httptest.NewRequest(http.MethodPost, "/api/commands", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/commands", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("only allows POST method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/commands", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}

func TestServer_Layout(t *testing.T) {
	s := New(Config{App: newTestApp(t)})

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response struct {
		Width   int `json:"width"`
		Height  int `json:"height"`
		Buttons []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
			Width    int    `json:"width"`
		} `json:"buttons"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Width <= 0 || response.Height <= 0 {
		t.Errorf("expected positive dimensions, got %dx%d", response.Width, response.Height)
	}

	if len(response.Buttons) != 20 {
		t.Errorf("expected 20 buttons, got %d", len(response.Buttons))
	}

	seen := make(map[string]bool)
	for _, b := range response.Buttons {
		seen[b.ID] = true
	}
	for _, id := range []string{"0", "9", "+", "÷", "=", "C", "del", "±", "%", "."} {
		if !seen[id] {
			t.Errorf("expected button %q in layout response", id)
		}
	}
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
