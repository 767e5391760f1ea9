// Package touch turns per-frame fingertip positions into button press events.
package touch

import (
	"image"
	"time"

	"github.com/ayusman/sparsh/internal/layout"
)

// Phase is the interaction phase of the touch state machine.
type Phase string

const (
	// PhaseIdle means no hand is pointing at any button.
	PhaseIdle Phase = "idle"
	// PhaseHover means the fingertip is inside a button's rectangle.
	PhaseHover Phase = "hover"
	// PhasePressed means a press was emitted this frame.
	PhasePressed Phase = "pressed"
)

// Default interaction tuning.
const (
	// DefaultCooldown is the minimum time between presses of the same button.
	DefaultCooldown = 300 * time.Millisecond
	// DefaultTouchRadius is the fingertip-to-center distance that commits a
	// press. It must stay below half the button width, so hovering near an
	// edge never presses.
	DefaultTouchRadius = 30
)

// Input is one frame's pointing state. Tip is the index fingertip already
// mapped into display coordinates; it is meaningful only when Pointing.
type Input struct {
	Pointing bool
	Tip      image.Point
}

// Press is emitted when a button press commits.
type Press struct {
	Button layout.Button
	At     time.Time
}

// Config holds interaction tuning for the machine.
type Config struct {
	Cooldown    time.Duration
	TouchRadius float64
}

// DefaultConfig returns the stock cooldown and touch radius.
func DefaultConfig() Config {
	return Config{
		Cooldown:    DefaultCooldown,
		TouchRadius: DefaultTouchRadius,
	}
}

// State is a snapshot of the machine for the rendering boundary.
type State struct {
	Phase    Phase  `json:"phase"`
	ButtonID string `json:"button_id,omitempty"`
}

// Machine resolves fingertip positions against the button layout and emits
// press events. Hover requires rectangle containment; a press additionally
// requires proximity to the button center, so "pointing near" and
// "committing" stay distinct gestures. It is driven by a single frame loop
// and holds no locks.
type Machine struct {
	layout      *layout.Layout
	cooldown    time.Duration
	touchRadius float64

	phase       Phase
	hoveredID   string
	lastPressID string
	lastPressAt time.Time
}

// NewMachine creates a Machine over the given layout. Zero config fields
// fall back to the defaults.
func NewMachine(l *layout.Layout, cfg Config) *Machine {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.TouchRadius <= 0 {
		cfg.TouchRadius = DefaultTouchRadius
	}
	return &Machine{
		layout:      l,
		cooldown:    cfg.Cooldown,
		touchRadius: cfg.TouchRadius,
		phase:       PhaseIdle,
	}
}

// Advance consumes one frame and returns the press emitted this frame, if
// any. now must come from a single monotonic clock read per frame.
//
// Transitions:
//   - not pointing, or fingertip outside every button -> IDLE
//   - fingertip inside button B -> HOVER(B)
//   - additionally within the touch radius of B's center, and B was not
//     pressed within the cooldown -> PRESSED(B), press emitted
//
// A PRESSED phase decays back to HOVER on the next frame while the fingertip
// stays put; the cooldown keeps the button from firing again.
func (m *Machine) Advance(in Input, now time.Time) *Press {
	if !in.Pointing {
		m.phase = PhaseIdle
		m.hoveredID = ""
		return nil
	}

	b := m.layout.HitTest(in.Tip)
	if b == nil {
		m.phase = PhaseIdle
		m.hoveredID = ""
		return nil
	}

	m.phase = PhaseHover
	m.hoveredID = b.ID

	if b.CenterDist(in.Tip) >= m.touchRadius {
		return nil
	}
	if b.ID == m.lastPressID && now.Sub(m.lastPressAt) < m.cooldown {
		return nil
	}

	m.phase = PhasePressed
	m.lastPressID = b.ID
	m.lastPressAt = now

	return &Press{Button: *b, At: now}
}

// State returns the current phase and hovered or pressed button.
func (m *Machine) State() State {
	return State{Phase: m.phase, ButtonID: m.hoveredID}
}

// Reset returns the machine to IDLE and clears the cooldown.
func (m *Machine) Reset() {
	m.phase = PhaseIdle
	m.hoveredID = ""
	m.lastPressID = ""
	m.lastPressAt = time.Time{}
}
