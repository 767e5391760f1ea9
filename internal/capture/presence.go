package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Presence detection constants.
const (
	// presenceBlurSize is the kernel size for Gaussian blur noise reduction.
	presenceBlurSize = 21
	// presenceDiffThreshold is the binary threshold for pixel differences.
	presenceDiffThreshold = 25
	// DefaultPresenceThreshold is the percentage of changed pixels that
	// counts as someone moving in front of the camera.
	DefaultPresenceThreshold = 1.0
)

// PresenceDetector decides whether anyone is interacting with the camera by
// differencing consecutive frames. The pipeline uses it to drop to a low
// frame rate when nobody is around, so the landmark model only runs while
// a user is present.
type PresenceDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewPresenceDetector creates a PresenceDetector. threshold is the
// percentage of pixels that must change between frames; values <= 0 fall
// back to DefaultPresenceThreshold.
func NewPresenceDetector(threshold float64) *PresenceDetector {
	if threshold <= 0 {
		threshold = DefaultPresenceThreshold
	}
	return &PresenceDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Observe compares a frame with the previous one and reports whether enough
// pixels changed to indicate a user, along with the change percentage.
// The first frame establishes the baseline and reports absent.
func (p *PresenceDetector) Observe(frame *gocv.Mat) (present bool, changePercent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(presenceBlurSize, presenceBlurSize), 0, 0, gocv.BorderDefault)

	if !p.initialized {
		blurred.CopyTo(&p.prevGray)
		p.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, p.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, presenceDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	total := thresh.Rows() * thresh.Cols()
	changePercent = float64(nonZero) / float64(total) * 100.0

	blurred.CopyTo(&p.prevGray)

	return changePercent > p.threshold, changePercent
}

// Reset clears the baseline so the next frame starts fresh.
func (p *PresenceDetector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.prevGray.Empty() {
		p.prevGray.Close()
		p.prevGray = gocv.NewMat()
	}
	p.initialized = false
}

// Close releases resources held by the detector.
func (p *PresenceDetector) Close() {
	p.Reset()
}

// SetThreshold updates the change percentage threshold.
// Values less than or equal to 0 are ignored.
func (p *PresenceDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.threshold = threshold
}
