package photonwalk

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/lukaszgryglicki/photonwalk/internal/logging"
)

// Segment is one step of the walk, from the old to the new position.
type Segment struct {
	From Point3 `json:"from"`
	To   Point3 `json:"to"`
	Step int    `json:"step"`
}

// Recorder consumes one segment per step actually taken.
type Recorder interface {
	Record(Segment)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Segment)

func (f RecorderFunc) Record(s Segment) { f(s) }

// Reporter receives the statistics once, at the moment the photon escapes.
type Reporter interface {
	Report(Stats)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Stats)

func (f ReporterFunc) Report(s Stats) { f(s) }

// State is a read-only copy of the walker.
type State struct {
	Position       Point3 `json:"position"`
	Steps          int    `json:"steps"`
	Active         bool   `json:"active"`
	Distance       Real   `json:"distance"`
	StepLength     Real   `json:"stepLength"`
	BoundaryRadius Real   `json:"boundaryRadius"`
}

// Walker owns one photon's random walk from the center of a star.
// It is not safe for concurrent use; exactly one driver advances it.
type Walker struct {
	medium   Medium
	stepLen  Real // scaled
	boundary Real // scaled
	radius   Real // unscaled, for the escape estimate

	pos    Point3
	steps  int
	start  time.Time
	end    time.Time
	active bool

	angles    AngleSource
	now       func() time.Time
	recorders []Recorder
	reporters []Reporter
	log       *slog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithAngles sets the angle source, overriding WithRand.
func WithAngles(a AngleSource) Option { return func(w *Walker) { w.angles = a } }

// WithRand draws random angles from rng.
func WithRand(rng *rand.Rand) Option {
	return func(w *Walker) { w.angles = NewRandomAngles(rng) }
}

// WithClock replaces time.Now for start and end timestamps.
func WithClock(now func() time.Time) Option { return func(w *Walker) { w.now = now } }

// WithRecorder adds a trajectory recorder; may be given more than once.
func WithRecorder(r Recorder) Option {
	return func(w *Walker) { w.recorders = append(w.recorders, r) }
}

// WithReporter adds a stats reporter; may be given more than once.
func WithReporter(r Reporter) Option {
	return func(w *Walker) { w.reporters = append(w.reporters, r) }
}

func WithLogger(l *slog.Logger) Option { return func(w *Walker) { w.log = l } }

// NewWalker starts a walk at the origin of medium m.
func NewWalker(m Medium, opts ...Option) (*Walker, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return newWalker(m, m.BoundaryRadius(), opts), nil
}

// Create starts a walk with the default scale factor. boundaryRadius is
// already in scene units, e.g. SunRadius*ScaleFactor.
func Create(opacity, density, boundaryRadius Real, opts ...Option) (*Walker, error) {
	m := Medium{Opacity: opacity, Density: density, Radius: boundaryRadius / ScaleFactor, Scale: ScaleFactor}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return newWalker(m, boundaryRadius, opts), nil
}

func newWalker(m Medium, boundary Real, opts []Option) *Walker {
	w := &Walker{
		medium:   m,
		stepLen:  m.ScaledStepLength(),
		boundary: boundary,
		radius:   m.Radius,
		now:      time.Now,
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.angles == nil {
		w.angles = NewRandomAngles(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	w.active = true
	w.start = w.now()
	w.log.Debug("walk created", "step_length", w.stepLen, "boundary", w.boundary)
	return w
}

// Advance takes one step. It returns the segment and true, or a zero
// segment and false when the photon has already escaped.
func (w *Walker) Advance() (Segment, bool) {
	if !w.active {
		return Segment{}, false
	}
	theta, phi := w.angles.Angles()
	from := w.pos
	w.pos = from.Add(displacement(w.stepLen, theta, phi))
	w.steps++
	seg := Segment{From: from, To: w.pos, Step: w.steps}
	for _, r := range w.recorders {
		r.Record(seg)
	}
	if Distance(w.pos) > w.boundary {
		w.escape()
	}
	return seg, true
}

// Step is Advance without the segment, for drivers.
func (w *Walker) Step() bool {
	_, ok := w.Advance()
	return ok
}

func (w *Walker) escape() {
	w.active = false
	w.end = w.now()
	if w.end.Before(w.start) {
		w.end = w.start
	}
	st := w.stats()
	w.log.Info("photon escaped", "steps", st.TotalSteps, "duration", st.DurationString(), "escape_years", st.EscapeYears)
	for _, r := range w.reporters {
		r.Report(st)
	}
}

func (w *Walker) stats() Stats {
	return Stats{
		Duration:      w.end.Sub(w.start).Seconds(),
		TotalSteps:    w.steps,
		EscapeYears:   escapeYears(w.steps, w.medium.StepLength(), w.radius),
		FinalPosition: w.pos,
		FinalDistance: Distance(w.pos),
	}
}

// Stats returns ErrStillActive until the photon has escaped.
func (w *Walker) Stats() (Stats, error) {
	if w.active {
		return Stats{}, ErrStillActive
	}
	return w.stats(), nil
}

// DistanceFromOrigin is the current distance from the star's center.
func (w *Walker) DistanceFromOrigin() Real { return Distance(w.pos) }

func (w *Walker) Active() bool { return w.active }
func (w *Walker) Steps() int { return w.steps }
func (w *Walker) Position() Point3 { return w.pos }
func (w *Walker) StepLength() Real { return w.stepLen }
func (w *Walker) BoundaryRadius() Real { return w.boundary }
func (w *Walker) Medium() Medium { return w.medium }
func (w *Walker) StartTime() time.Time { return w.start }

// EndTime reports false while the walk is active.
func (w *Walker) EndTime() (time.Time, bool) { return w.end, !w.active }

func (w *Walker) Snapshot() State {
	return State{
		Position:       w.pos,
		Steps:          w.steps,
		Active:         w.active,
		Distance:       Distance(w.pos),
		StepLength:     w.stepLen,
		BoundaryRadius: w.boundary,
	}
}
