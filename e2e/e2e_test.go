package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/detector"
	"github.com/ayusman/sparsh/internal/server"
	"github.com/ayusman/sparsh/internal/store"
)

// pointAt builds a pointing hand whose fingertip lands on the center of the
// given button.
func pointAt(t *testing.T, application *app.App, buttonID string) []detector.HandLandmarks {
	t.Helper()
	grid := application.Layout()
	b := grid.Lookup(buttonID)
	if b == nil {
		t.Fatalf("no button %q in layout", buttonID)
	}
	c := b.Center()
	return []detector.HandLandmarks{detector.PointingLandmarks(
		float64(c.X)/float64(grid.Width()),
		float64(c.Y)/float64(grid.Height()),
	)}
}

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:        s,
		SmoothWindow: 1,
	})
	application.SetDetector(detector.NewMockDetector())

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("PressSequence", func(t *testing.T) {
		for _, id := range []string{"7", "×", "6", "="} {
			application.ProcessHands(pointAt(t, application, id))
		}

		if got := application.Engine().Display(); got != "42" {
			t.Errorf("display = %q, want %q", got, "42")
		}
	})

	t.Run("StateOverHTTP", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatalf("get state error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var snap app.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			t.Fatalf("decode state error = %v", err)
		}

		if snap.Calc.Display != "42" {
			t.Errorf("display = %q, want %q", snap.Calc.Display, "42")
		}
		if len(snap.History) != 1 {
			t.Errorf("history length = %d, want 1", len(snap.History))
		}
	})

	t.Run("HistoryPersisted", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/history")
		if err != nil {
			t.Fatalf("get history error = %v", err)
		}
		defer resp.Body.Close()

		var response struct {
			Calculations []struct {
				Expression string `json:"expression"`
				Result     string `json:"result"`
			} `json:"calculations"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			t.Fatalf("decode history error = %v", err)
		}

		if len(response.Calculations) != 1 {
			t.Fatalf("calculations = %d, want 1", len(response.Calculations))
		}
		if response.Calculations[0].Expression != "7 × 6" || response.Calculations[0].Result != "42" {
			t.Errorf("persisted %q = %q, want 7 × 6 = 42",
				response.Calculations[0].Expression, response.Calculations[0].Result)
		}
	})

	t.Run("ClearCommandOverHTTP", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/commands",
			"application/json",
			strings.NewReader(`{"command": "clear"}`),
		)
		if err != nil {
			t.Fatalf("post command error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusAccepted {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusAccepted)
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_ErrorRecovery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	application := app.New(app.Config{SmoothWindow: 1})
	application.SetDetector(detector.NewMockDetector())

	for _, id := range []string{"5", "÷", "0", "="} {
		application.ProcessHands(pointAt(t, application, id))
	}
	if got := application.Engine().Display(); got != "Error" {
		t.Fatalf("display = %q, want %q after division by zero", got, "Error")
	}

	// The next digit press recovers.
	application.ProcessHands(pointAt(t, application, "8"))
	if got := application.Engine().Display(); got != "8" {
		t.Errorf("display = %q, want %q after recovery", got, "8")
	}
}

func TestE2E_SettingsRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/settings/theme",
		strings.NewReader(`{"value": "light"}`))
	if err != nil {
		t.Fatalf("build request error = %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("put setting error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// A fresh app picks the stored theme up.
	application := app.New(app.Config{Store: s})
	application.SetDetector(detector.NewMockDetector())
	if snap := application.Snapshot(); snap.Theme != "light" {
		t.Errorf("theme = %q, want stored %q", snap.Theme, "light")
	}
}
