// Package driver advances a walk from the outside, one frame at a time.
// The walk itself never touches timers; pacing and cancellation live here.
package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lukaszgryglicki/photonwalk/internal/logging"
)

// ErrStepLimit is returned when the step cap is reached before the walk ends.
var ErrStepLimit = errors.New("step limit reached before escape")

// Stepper is anything that can be advanced until it is no longer active.
type Stepper interface {
	// Step advances once and reports whether a step was taken.
	Step() bool
	Active() bool
}

// Driver calls Step once per frame (or StepsPerFrame times) until the
// stepper finishes, the cap is hit, or the context is done.
type Driver struct {
	s             Stepper
	fps           int
	stepsPerFrame int
	maxSteps      int
	log           *slog.Logger
}

type Option func(*Driver)

// WithFPS sets the frame rate; n <= 0 runs unthrottled.
func WithFPS(n int) Option { return func(d *Driver) { d.fps = n } }

// WithStepsPerFrame sets how many steps are taken per frame (at least one).
func WithStepsPerFrame(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.stepsPerFrame = n
		}
	}
}

// WithMaxSteps caps the number of steps this driver takes; 0 means none.
func WithMaxSteps(n int) Option { return func(d *Driver) { d.maxSteps = n } }

func WithLogger(l *slog.Logger) Option { return func(d *Driver) { d.log = l } }

func New(s Stepper, opts ...Option) *Driver {
	d := &Driver{s: s, stepsPerFrame: 1, log: logging.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drives the stepper and returns the number of steps it took.
// Stopping early leaves the stepper valid at a step boundary.
func (d *Driver) Run(ctx context.Context) (int, error) {
	d.log.Debug("driver started", "fps", d.fps, "steps_per_frame", d.stepsPerFrame, "max_steps", d.maxSteps)
	var (
		steps int
		err   error
	)
	if d.fps <= 0 {
		steps, err = d.runUnthrottled(ctx)
	} else {
		steps, err = d.runPaced(ctx)
	}
	d.log.Debug("driver stopped", "steps", steps, "err", err)
	return steps, err
}

func (d *Driver) runUnthrottled(ctx context.Context) (int, error) {
	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		done, err := d.frame(&steps)
		if done || err != nil {
			return steps, err
		}
	}
}

func (d *Driver) runPaced(ctx context.Context) (int, error) {
	t := time.NewTicker(time.Second / time.Duration(d.fps))
	defer t.Stop()
	steps := 0
	for {
		select {
		case <-ctx.Done():
			return steps, ctx.Err()
		case <-t.C:
			done, err := d.frame(&steps)
			if done || err != nil {
				return steps, err
			}
		}
	}
}

// frame takes up to stepsPerFrame steps and reports whether the walk is over.
func (d *Driver) frame(steps *int) (bool, error) {
	for i := 0; i < d.stepsPerFrame; i++ {
		if !d.s.Active() {
			return true, nil
		}
		if d.maxSteps > 0 && *steps >= d.maxSteps {
			return true, ErrStepLimit
		}
		if d.s.Step() {
			*steps++
		}
	}
	return !d.s.Active(), nil
}
