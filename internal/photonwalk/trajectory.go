package photonwalk

import (
	"sync"
)

// Trajectory is an in-memory Recorder. It may be read from other goroutines
// while the walk records into it.
type Trajectory struct {
	mu       sync.Mutex
	segments []Segment
	maxDist  Real
}

func NewTrajectory() *Trajectory {
	return &Trajectory{}
}

func (t *Trajectory) Record(s Segment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.segments = append(t.segments, s)
	if d := Distance(s.To); d > t.maxDist {
		t.maxDist = d
	}
}

// Segments returns a copy of the recorded segments.
func (t *Trajectory) Segments() []Segment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

func (t *Trajectory) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.segments)
}

// Distances returns the distance from the origin after every step.
func (t *Trajectory) Distances() []Real {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Real, len(t.segments))
	for i, s := range t.segments {
		out[i] = Distance(s.To)
	}
	return out
}

// MaxDistance is the farthest the photon got from the center.
func (t *Trajectory) MaxDistance() Real {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxDist
}

// Reset drops all segments, for reuse across runs.
func (t *Trajectory) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.segments = nil
	t.maxDist = 0
}
