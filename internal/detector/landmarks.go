// Package detector provides hand landmark detection for the virtual touch calculator.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger identifies one finger's landmark chain from knuckle to tip.
type Finger struct {
	MCP, PIP, DIP, Tip int
}

// Finger chains used by the gesture classifier. The thumb is omitted on
// purpose: its state never affects the pointing classification.
var (
	IndexFinger  = Finger{IndexMCP, IndexPIP, IndexDIP, IndexTip}
	MiddleFinger = Finger{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip}
	RingFinger   = Finger{RingMCP, RingPIP, RingDIP, RingTip}
	PinkyFinger  = Finger{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip}
)

// Point3D represents a landmark position. X and Y are normalized to [0,1]
// in frame space; Z is depth relative to the wrist.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Valid reports whether the point carries usable planar coordinates.
// NaN or infinite components mean the model produced garbage for this frame.
func (p Point3D) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// HandLandmarks represents the 21 hand landmarks detected for one hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Valid reports whether every landmark in the set has usable coordinates.
// A hand with any broken point is treated as not detected at all.
func (h *HandLandmarks) Valid() bool {
	if h == nil {
		return false
	}
	for i := 0; i < NumLandmarks; i++ {
		if !h.Points[i].Valid() {
			return false
		}
	}
	return true
}

// Dist returns the planar distance between two landmarks of the hand.
// The classifier works in 2D; depth from the model is too noisy to gate
// an extension test on.
func (h *HandLandmarks) Dist(a, b int) float64 {
	dx := h.Points[a].X - h.Points[b].X
	dy := h.Points[a].Y - h.Points[b].Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ToPixel maps a normalized landmark coordinate onto a display of the given
// dimensions. This is the calibration step between model space and the
// button layout's pixel space: proportional scaling per axis.
func ToPixel(p Point3D, width, height int) (int, int) {
	x := int(math.Round(p.X * float64(width)))
	y := int(math.Round(p.Y * float64(height)))
	return x, y
}
