package detector

import (
	"math"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PointingLandmarks returns a preset hand pointing with the index finger,
// the other fingers curled into the palm. The index fingertip lands exactly
// at the given normalized coordinate, so tests can aim it at a button.
func PointingLandmarks(tipX, tipY float64) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist sits below and slightly right of the fingertip.
	wx, wy := tipX+0.05, tipY+0.40
	h.Points[Wrist] = Point3D{X: wx, Y: wy}

	// Thumb folded across the palm; its pose is irrelevant to classification.
	h.Points[ThumbCMC] = Point3D{X: wx + 0.04, Y: wy - 0.04}
	h.Points[ThumbMCP] = Point3D{X: wx + 0.02, Y: wy - 0.09}
	h.Points[ThumbIP] = Point3D{X: wx - 0.01, Y: wy - 0.12}
	h.Points[ThumbTip] = Point3D{X: wx - 0.04, Y: wy - 0.13}

	// Index finger extended straight toward the tip coordinate.
	h.Points[IndexMCP] = Point3D{X: wx - 0.02, Y: wy - 0.12}
	h.Points[IndexPIP] = Point3D{X: wx - 0.03, Y: wy - 0.22}
	h.Points[IndexDIP] = Point3D{X: wx - 0.04, Y: wy - 0.31}
	h.Points[IndexTip] = Point3D{X: tipX, Y: tipY}

	// Remaining fingers curled: tips pulled back toward the palm, closer to
	// the wrist than their own PIP joints.
	curl := func(f Finger, offsetX float64) {
		h.Points[f.MCP] = Point3D{X: wx + offsetX, Y: wy - 0.13}
		h.Points[f.PIP] = Point3D{X: wx + offsetX, Y: wy - 0.19}
		h.Points[f.DIP] = Point3D{X: wx + offsetX - 0.01, Y: wy - 0.14}
		h.Points[f.Tip] = Point3D{X: wx + offsetX - 0.02, Y: wy - 0.09}
	}
	curl(MiddleFinger, -0.06)
	curl(RingFinger, -0.10)
	curl(PinkyFinger, -0.14)

	return h
}

// FistLandmarks returns a preset hand with every finger curled.
func FistLandmarks() HandLandmarks {
	h := PointingLandmarks(0.5, 0.3)

	// Pull the index back like the curled fingers.
	wx, wy := h.Points[Wrist].X, h.Points[Wrist].Y
	h.Points[IndexPIP] = Point3D{X: wx - 0.02, Y: wy - 0.19}
	h.Points[IndexDIP] = Point3D{X: wx - 0.03, Y: wy - 0.14}
	h.Points[IndexTip] = Point3D{X: wx - 0.04, Y: wy - 0.09}

	return h
}

// OpenPalmLandmarks returns a preset hand with all fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := PointingLandmarks(0.45, 0.3)
	wx, wy := h.Points[Wrist].X, h.Points[Wrist].Y

	extend := func(f Finger, offsetX float64) {
		h.Points[f.MCP] = Point3D{X: wx + offsetX, Y: wy - 0.13}
		h.Points[f.PIP] = Point3D{X: wx + offsetX, Y: wy - 0.24}
		h.Points[f.DIP] = Point3D{X: wx + offsetX, Y: wy - 0.33}
		h.Points[f.Tip] = Point3D{X: wx + offsetX, Y: wy - 0.42}
	}
	extend(MiddleFinger, -0.06)
	extend(RingFinger, -0.10)
	extend(PinkyFinger, -0.14)

	return h
}

// BrokenLandmarks returns a preset hand whose index tip is NaN, as produced
// by the model on a partially occluded hand.
func BrokenLandmarks() HandLandmarks {
	h := PointingLandmarks(0.5, 0.3)
	h.Points[IndexTip] = Point3D{X: math.NaN(), Y: math.NaN()}
	return h
}
