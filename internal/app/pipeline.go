package app

import (
	"image"
	"log"
	"time"

	"github.com/ayusman/sparsh/internal/detector"
	"github.com/ayusman/sparsh/internal/gesture"
	"github.com/ayusman/sparsh/internal/touch"
)

// runPipeline is the frame loop. Each tick processes exactly one captured
// frame to completion before the next begins:
//
//  1. Drain pending keyboard-boundary commands.
//  2. Read a frame; run presence detection to pick idle or active FPS.
//  3. In active mode, detect hand landmarks and classify the pose.
//  4. Smooth the classification, map the fingertip to display pixels and
//     advance the touch state machine with one clock reading.
//  5. Apply any emitted press to the calculator engine.
//
// All mutable interaction state is touched only here, under the app lock so
// Snapshot readers see consistent frames.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastPresence := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case cmd := <-a.commands:
			a.mu.Lock()
			a.handleCommand(cmd)
			a.mu.Unlock()
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			present, _ := a.presence.Observe(frame)

			if present {
				lastPresence = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastPresence) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				a.dropHand()
				log.Println("Switched to idle mode")
			}

			if !activeMode || a.detector == nil {
				frame.Close()
				continue
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			a.ProcessHands(hands)
		}
	}
}

// ProcessHands classifies the frame's hand, advances the touch machine and
// applies any press. An empty slice is a no-hand frame. The pipeline calls
// this once per active frame; it is exported so tests can drive frames
// without a camera.
func (a *App) ProcessHands(hands []detector.HandLandmarks) {
	var classification gesture.Classification
	if len(hands) == 0 {
		classification = gesture.Classification{Pose: gesture.PoseNoHand}
	} else {
		classification = gesture.Classify(&hands[0])
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	smoothed := a.smoother.Push(classification)
	a.lastPose = smoothed.Pose

	in := touch.Input{}
	if smoothed.Pose == gesture.PosePointing {
		x, y := detector.ToPixel(smoothed.Fingertip, a.layout.Width(), a.layout.Height())
		in = touch.Input{Pointing: true, Tip: image.Pt(x, y)}
	}

	// One monotonic clock read serves the whole frame.
	press := a.machine.Advance(in, time.Now())
	if press == nil {
		return
	}

	display := a.engine.Apply(press.Button.ID)
	log.Printf("Button pressed: %s (display: %s)", press.Button.ID, display)
}

// dropHand resets per-hand state when the user walks away.
func (a *App) dropHand() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.smoother.Reset()
	a.machine.Advance(touch.Input{}, time.Now())
	a.lastPose = gesture.PoseNoHand
}
