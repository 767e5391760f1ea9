package gesture

// DefaultWindow is the default number of frames in the majority vote.
const DefaultWindow = 5

// Smoother suppresses single-frame classification flicker with a sliding
// window majority vote over the most recent classifications. All state is
// explicit in the struct; the per-frame classifier itself stays pure.
type Smoother struct {
	window []Classification
	size   int
}

// NewSmoother creates a Smoother voting over the last size frames.
// A size below 2 disables smoothing.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = 1
	}
	return &Smoother{
		window: make([]Classification, 0, size),
		size:   size,
	}
}

// Push adds a frame classification and returns the smoothed result.
// The winning pose is the one with the most votes in the window; ties go to
// the most recently seen pose. When the winner is PosePointing the fingertip
// comes from the newest pointing frame, so the coordinate never lags more
// than it has to.
func (s *Smoother) Push(c Classification) Classification {
	if len(s.window) >= s.size {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}
	s.window = append(s.window, c)

	counts := make(map[Pose]int, 3)
	for _, w := range s.window {
		counts[w.Pose]++
	}

	winner := c.Pose
	best := 0
	// Newest to oldest, so ties resolve toward the most recent pose.
	for i := len(s.window) - 1; i >= 0; i-- {
		p := s.window[i].Pose
		if counts[p] > best {
			best = counts[p]
			winner = p
		}
	}

	if winner != PosePointing {
		return Classification{Pose: winner}
	}
	for i := len(s.window) - 1; i >= 0; i-- {
		if s.window[i].Pose == PosePointing {
			return s.window[i]
		}
	}
	return Classification{Pose: winner} // unreachable: winner had votes
}

// Reset clears the vote window.
func (s *Smoother) Reset() {
	s.window = s.window[:0]
}
