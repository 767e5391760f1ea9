// Package app orchestrates the virtual touch calculator pipeline.
package app

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/sparsh/internal/calc"
	"github.com/ayusman/sparsh/internal/capture"
	"github.com/ayusman/sparsh/internal/detector"
	"github.com/ayusman/sparsh/internal/gesture"
	"github.com/ayusman/sparsh/internal/layout"
	"github.com/ayusman/sparsh/internal/store"
	"github.com/ayusman/sparsh/internal/touch"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when nobody is in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a user is interacting.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without presence before dropping back to
	// the idle frame rate.
	IdleTimeoutMs = 2000
)

// Command is a keyboard-boundary action applied between frames.
type Command string

const (
	CmdToggleTheme        Command = "toggle_theme"
	CmdToggleInstructions Command = "toggle_instructions"
	CmdResetHistory       Command = "reset_history"
	CmdClear              Command = "clear"
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	CameraID       int
	PresenceThresh float64
	DisplayWidth   int
	DisplayHeight  int
	Cooldown       time.Duration
	TouchRadius    float64
	SmoothWindow   int
}

// Snapshot is the per-frame state exposed to the rendering boundary.
// The core never draws; renderers consume this.
type Snapshot struct {
	Touch            touch.State  `json:"touch"`
	Calc             calc.State   `json:"calc"`
	Pose             gesture.Pose `json:"pose"`
	Theme            string       `json:"theme"`
	ShowInstructions bool         `json:"show_instructions"`
	History          []calc.Entry `json:"history"`
}

// App wires the camera, landmark detector, pose classifier, touch machine
// and calculator engine into one frame-driven pipeline.
type App struct {
	config   Config
	camera   capture.Camera
	presence *capture.PresenceDetector
	detector detector.Detector
	smoother *gesture.Smoother
	layout   *layout.Layout
	machine  *touch.Machine
	engine   *calc.Engine

	theme            string
	showInstructions bool
	lastPose         gesture.Pose

	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	commands chan Command
}

// New creates an App with the given configuration. Zero config fields fall
// back to defaults; stored settings override the defaults where present.
func New(config Config) *App {
	if config.DisplayWidth <= 0 {
		config.DisplayWidth = capture.DefaultWidth
	}
	if config.DisplayHeight <= 0 {
		config.DisplayHeight = capture.DefaultHeight
	}
	if config.SmoothWindow <= 0 {
		config.SmoothWindow = gesture.DefaultWindow
	}

	touchCfg := touch.Config{
		Cooldown:    config.Cooldown,
		TouchRadius: config.TouchRadius,
	}

	theme := "dark"
	showInstructions := true
	if config.Store != nil {
		settings := config.Store.Settings()
		theme = settings.GetOrDefault(store.SettingTheme, theme)
		showInstructions = settings.GetBool(store.SettingShowInstructions, showInstructions)
		if ms := settings.GetInt(store.SettingCooldownMs, 0); ms > 0 && touchCfg.Cooldown == 0 {
			touchCfg.Cooldown = time.Duration(ms) * time.Millisecond
		}
		if r := settings.GetInt(store.SettingTouchRadius, 0); r > 0 && touchCfg.TouchRadius == 0 {
			touchCfg.TouchRadius = float64(r)
		}
	}

	grid := layout.New(config.DisplayWidth, config.DisplayHeight)

	a := &App{
		config:           config,
		camera:           capture.NewCamera(config.CameraID),
		presence:         capture.NewPresenceDetector(config.PresenceThresh),
		smoother:         gesture.NewSmoother(config.SmoothWindow),
		layout:           grid,
		machine:          touch.NewMachine(grid, touchCfg),
		engine:           calc.NewEngine(),
		theme:            theme,
		showInstructions: showInstructions,
		lastPose:         gesture.PoseNoHand,
		commands:         make(chan Command, 8),
	}

	a.engine.OnCalculation = a.persistCalculation

	// Try MediaPipe first, fall back to mock detector.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables fingertip tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether fingertip tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use. Must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Do queues a keyboard-boundary command for the next frame.
// Commands never interrupt a frame in flight.
func (a *App) Do(cmd Command) {
	select {
	case a.commands <- cmd:
	default:
		log.Printf("Command queue full, dropping %q", cmd)
	}
}

// Snapshot returns a consistent copy of the interaction state for renderers.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{
		Touch:            a.machine.State(),
		Calc:             a.engine.State(),
		Pose:             a.lastPose,
		Theme:            a.theme,
		ShowInstructions: a.showInstructions,
		History:          a.engine.History(),
	}
}

// Start begins the frame pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Touch pipeline started")
	return nil
}

// Stop halts the pipeline between frames and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.presence.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Touch pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Layout returns the button layout.
func (a *App) Layout() *layout.Layout {
	return a.layout
}

// Engine returns the calculator engine. Callers outside the pipeline must
// treat it as read-only.
func (a *App) Engine() *calc.Engine {
	return a.engine
}

func (a *App) persistCalculation(entry calc.Entry) {
	if a.config.Store == nil {
		return
	}
	err := a.config.Store.History().Add(&store.Calculation{
		Expression: entry.Expression,
		Result:     entry.Result,
		CreatedAt:  entry.At,
	})
	if err != nil {
		log.Printf("Failed to persist calculation: %v", err)
	}
}

// handleCommand applies one keyboard-boundary command. Caller holds the lock.
func (a *App) handleCommand(cmd Command) {
	switch cmd {
	case CmdToggleTheme:
		if a.theme == "dark" {
			a.theme = "light"
		} else {
			a.theme = "dark"
		}
		a.saveSetting(store.SettingTheme, a.theme)
	case CmdToggleInstructions:
		a.showInstructions = !a.showInstructions
		a.saveSetting(store.SettingShowInstructions, strconv.FormatBool(a.showInstructions))
	case CmdResetHistory:
		a.engine.ClearHistory()
		if a.config.Store != nil {
			if err := a.config.Store.History().Clear(); err != nil {
				log.Printf("Failed to clear history: %v", err)
			}
		}
	case CmdClear:
		a.engine.Clear()
	}
}

func (a *App) saveSetting(key, value string) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().Set(key, value); err != nil {
		log.Printf("Failed to save setting %s: %v", key, err)
	}
}
