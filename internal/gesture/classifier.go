// Package gesture classifies per-frame hand poses for touch interaction.
package gesture

import "github.com/ayusman/sparsh/internal/detector"

// Pose represents the classified hand pose for one frame.
type Pose string

const (
	// PoseNoHand means no usable hand was detected in the frame.
	PoseNoHand Pose = "no_hand"
	// PosePointing means the index finger is extended and the middle,
	// ring and pinky fingers are curled.
	PosePointing Pose = "pointing"
	// PoseOther is any detected hand that is not pointing.
	PoseOther Pose = "other"
)

// extendMargin is the relative margin by which a fingertip must be farther
// from the wrist than its PIP joint to count as extended. It absorbs the
// jitter of a finger hovering between states.
const extendMargin = 1.1

// Classification is the result of classifying one frame.
// Fingertip holds the index fingertip position in normalized frame
// coordinates, and is set if and only if Pose is PosePointing.
type Classification struct {
	Pose      Pose
	Fingertip detector.Point3D
}

// Classify decides whether the hand is in pointing pose. It is a pure
// per-frame function: no state is carried between calls. A nil hand or a
// hand with unusable landmark data yields PoseNoHand.
//
// A finger counts as extended when its tip lies farther from the wrist than
// its PIP joint by extendMargin. Pointing requires the index extended and
// middle, ring and pinky each not extended; the thumb is ignored.
func Classify(hand *detector.HandLandmarks) Classification {
	if !hand.Valid() {
		return Classification{Pose: PoseNoHand}
	}

	if !extended(hand, detector.IndexFinger) {
		return Classification{Pose: PoseOther}
	}
	for _, f := range []detector.Finger{detector.MiddleFinger, detector.RingFinger, detector.PinkyFinger} {
		if extended(hand, f) {
			return Classification{Pose: PoseOther}
		}
	}

	return Classification{
		Pose:      PosePointing,
		Fingertip: hand.Points[detector.IndexTip],
	}
}

func extended(hand *detector.HandLandmarks, f detector.Finger) bool {
	return hand.Dist(detector.Wrist, f.Tip) > hand.Dist(detector.Wrist, f.PIP)*extendMargin
}
