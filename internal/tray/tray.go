// Package tray provides a macOS system tray interface for the Sparsh virtual touch calculator.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the macOS system tray application.
type Tray struct {
	onToggle    func(enabled bool)
	onOpenPanel func()
	onQuit      func()
	enabled     bool
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuToggle     *systray.MenuItem
	menuLastResult *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpenPanel sets the callback function to be called when the panel menu item is clicked.
func (t *Tray) OnOpenPanel(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenPanel = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Sparsh")
	systray.SetTooltip("Sparsh Virtual Touch Calculator")

	t.menuToggle = systray.AddMenuItem("● Tracking", "Toggle fingertip tracking")
	systray.AddSeparator()

	t.menuLastResult = systray.AddMenuItem("Last: none", "Last completed calculation")
	t.menuLastResult.Disable()
	systray.AddSeparator()

	menuPanel := systray.AddMenuItem("Open Panel...", "Open the calculator panel in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Sparsh")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuPanel.ClickedCh:
				t.handleOpenPanel()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Tracking")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleOpenPanel handles the panel menu item click.
func (t *Tray) handleOpenPanel() {
	t.mu.RLock()
	callback := t.onOpenPanel
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastResult updates the last calculation display in the menu.
func (t *Tray) SetLastResult(expression, result string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastResult != nil {
		if expression == "" {
			t.menuLastResult.SetTitle("Last: none")
		} else {
			t.menuLastResult.SetTitle("Last: " + expression + " = " + result)
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
