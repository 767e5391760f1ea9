package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestPoint3D_Valid(t *testing.T) {
	t.Run("finite point is valid", func(t *testing.T) {
		p := Point3D{X: 0.5, Y: 0.5, Z: -0.01}
		if !p.Valid() {
			t.Error("expected finite point to be valid")
		}
	})

	t.Run("NaN component is invalid", func(t *testing.T) {
		p := Point3D{X: math.NaN(), Y: 0.5}
		if p.Valid() {
			t.Error("expected NaN point to be invalid")
		}
	})

	t.Run("infinite component is invalid", func(t *testing.T) {
		p := Point3D{X: 0.5, Y: math.Inf(1)}
		if p.Valid() {
			t.Error("expected infinite point to be invalid")
		}
	})
}

func TestHandLandmarks_Valid(t *testing.T) {
	t.Run("nil hand is invalid", func(t *testing.T) {
		var h *HandLandmarks
		if h.Valid() {
			t.Error("expected nil hand to be invalid")
		}
	})

	t.Run("preset hand is valid", func(t *testing.T) {
		h := PointingLandmarks(0.5, 0.3)
		if !h.Valid() {
			t.Error("expected preset hand to be valid")
		}
	})

	t.Run("single broken landmark invalidates the hand", func(t *testing.T) {
		h := BrokenLandmarks()
		if h.Valid() {
			t.Error("expected hand with NaN landmark to be invalid")
		}
	})
}

func TestHandLandmarks_Dist(t *testing.T) {
	h := HandLandmarks{}
	h.Points[Wrist] = Point3D{X: 0.1, Y: 0.2}
	h.Points[IndexTip] = Point3D{X: 0.4, Y: 0.6, Z: 0.5} // Z must not contribute

	got := h.Dist(Wrist, IndexTip)
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("Dist() = %f, want 0.5", got)
	}
}

func TestToPixel(t *testing.T) {
	tests := []struct {
		name          string
		p             Point3D
		width, height int
		wantX, wantY  int
	}{
		{"center of 1280x720", Point3D{X: 0.5, Y: 0.5}, 1280, 720, 640, 360},
		{"origin", Point3D{X: 0, Y: 0}, 1280, 720, 0, 0},
		{"bottom right corner", Point3D{X: 1, Y: 1}, 640, 480, 640, 480},
		{"rounds to nearest pixel", Point3D{X: 0.25, Y: 0.75}, 101, 11, 25, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ToPixel(tt.p, tt.width, tt.height)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ToPixel() = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPointingLandmarks_TipPlacement(t *testing.T) {
	h := PointingLandmarks(0.32, 0.41)

	tip := h.Points[IndexTip]
	if math.Abs(tip.X-0.32) > epsilon || math.Abs(tip.Y-0.41) > epsilon {
		t.Errorf("index tip = (%f, %f), want (0.32, 0.41)", tip.X, tip.Y)
	}

	// The index tip must sit clearly farther from the wrist than its PIP
	// joint, and the curled fingers clearly nearer.
	if h.Dist(Wrist, IndexTip) <= h.Dist(Wrist, IndexPIP) {
		t.Error("expected index tip farther from wrist than index PIP")
	}
	for _, f := range []Finger{MiddleFinger, RingFinger, PinkyFinger} {
		if h.Dist(Wrist, f.Tip) >= h.Dist(Wrist, f.PIP) {
			t.Errorf("expected finger tip %d nearer to wrist than its PIP", f.Tip)
		}
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{PointingLandmarks(0.5, 0.5)})

		hands, err := mock.Detect(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		wantErr := errors.New("detector offline")
		mock.SetError(wantErr)

		if _, err := mock.Detect(nil); !errors.Is(err, wantErr) {
			t.Errorf("expected configured error, got %v", err)
		}
	})

	t.Run("close is a no-op", func(t *testing.T) {
		mock := NewMockDetector()
		if err := mock.Close(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
