package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/server"
	"github.com/ayusman/sparsh/internal/store"
	"github.com/ayusman/sparsh/internal/tray"
)

const listenAddr = ":8080"

func main() {
	fmt.Println("Sparsh - Virtual Touch Calculator")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".sparsh")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "sparsh.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Wire the touch pipeline
	application := app.New(app.Config{Store: st})
	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer application.Stop()
	application.SetEnabled(true)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       application,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", listenAddr)
		if err := srv.ListenAndServe(listenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// System tray drives enable/pause and shutdown
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
	})
	t.OnOpenPanel(func() {
		if err := exec.Command("open", "http://localhost"+listenAddr).Start(); err != nil {
			log.Printf("Failed to open panel: %v", err)
		}
	})
	t.OnQuit(func() {
		application.Stop()
	})

	go updateLastResult(t, application)

	t.Run()
}

// updateLastResult mirrors the most recent calculation into the tray menu.
func updateLastResult(t *tray.Tray, application *app.App) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var last string
	for range ticker.C {
		history := application.Snapshot().History
		if len(history) == 0 {
			continue
		}
		latest := history[len(history)-1]
		if latest.Expression == last {
			continue
		}
		last = latest.Expression
		t.SetLastResult(latest.Expression, latest.Result)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.sparsh/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".sparsh", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
