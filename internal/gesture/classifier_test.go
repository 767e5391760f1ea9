package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/sparsh/internal/detector"
)

func TestClassify_Pointing(t *testing.T) {
	hand := detector.PointingLandmarks(0.3, 0.4)

	c := Classify(&hand)

	if c.Pose != PosePointing {
		t.Fatalf("Pose = %q, want %q", c.Pose, PosePointing)
	}
	if math.Abs(c.Fingertip.X-0.3) > 1e-9 || math.Abs(c.Fingertip.Y-0.4) > 1e-9 {
		t.Errorf("Fingertip = (%f, %f), want (0.3, 0.4)", c.Fingertip.X, c.Fingertip.Y)
	}
}

func TestClassify_Other(t *testing.T) {
	t.Run("fist", func(t *testing.T) {
		hand := detector.FistLandmarks()
		if c := Classify(&hand); c.Pose != PoseOther {
			t.Errorf("Pose = %q, want %q", c.Pose, PoseOther)
		}
	})

	t.Run("open palm", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()
		if c := Classify(&hand); c.Pose != PoseOther {
			t.Errorf("Pose = %q, want %q", c.Pose, PoseOther)
		}
	})

	t.Run("index and middle extended", func(t *testing.T) {
		hand := detector.PointingLandmarks(0.4, 0.3)
		// Extend the middle finger alongside the index.
		wx, wy := hand.Points[detector.Wrist].X, hand.Points[detector.Wrist].Y
		hand.Points[detector.MiddlePIP] = detector.Point3D{X: wx - 0.06, Y: wy - 0.24}
		hand.Points[detector.MiddleDIP] = detector.Point3D{X: wx - 0.06, Y: wy - 0.33}
		hand.Points[detector.MiddleTip] = detector.Point3D{X: wx - 0.06, Y: wy - 0.42}

		if c := Classify(&hand); c.Pose != PoseOther {
			t.Errorf("Pose = %q, want %q", c.Pose, PoseOther)
		}
	})
}

func TestClassify_ThumbIgnored(t *testing.T) {
	hand := detector.PointingLandmarks(0.3, 0.4)

	// Swing the thumb fully out; classification must not change.
	wx, wy := hand.Points[detector.Wrist].X, hand.Points[detector.Wrist].Y
	hand.Points[detector.ThumbIP] = detector.Point3D{X: wx + 0.15, Y: wy - 0.10}
	hand.Points[detector.ThumbTip] = detector.Point3D{X: wx + 0.22, Y: wy - 0.14}

	if c := Classify(&hand); c.Pose != PosePointing {
		t.Errorf("Pose = %q, want %q", c.Pose, PosePointing)
	}
}

func TestClassify_NoHand(t *testing.T) {
	t.Run("nil hand", func(t *testing.T) {
		if c := Classify(nil); c.Pose != PoseNoHand {
			t.Errorf("Pose = %q, want %q", c.Pose, PoseNoHand)
		}
	})

	t.Run("NaN landmark degrades to no hand", func(t *testing.T) {
		hand := detector.BrokenLandmarks()
		if c := Classify(&hand); c.Pose != PoseNoHand {
			t.Errorf("Pose = %q, want %q", c.Pose, PoseNoHand)
		}
	})
}

func TestClassify_FingertipOnlyWhenPointing(t *testing.T) {
	hands := map[string]detector.HandLandmarks{
		"fist":      detector.FistLandmarks(),
		"open palm": detector.OpenPalmLandmarks(),
		"broken":    detector.BrokenLandmarks(),
	}

	for name, hand := range hands {
		t.Run(name, func(t *testing.T) {
			c := Classify(&hand)
			if c.Pose == PosePointing {
				t.Fatalf("unexpected pointing pose for %s", name)
			}
			if c.Fingertip != (detector.Point3D{}) {
				t.Errorf("Fingertip set for non-pointing pose: %+v", c.Fingertip)
			}
		})
	}
}
