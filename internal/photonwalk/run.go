package photonwalk

import (
	"context"
	"log/slog"
	"time"

	"github.com/lukaszgryglicki/photonwalk/internal/driver"
	"github.com/lukaszgryglicki/photonwalk/internal/logging"
)

// Run performs one walk described by cfg, paced at cfg.FPS, and returns
// its statistics together with the recorded trajectory. opts are applied
// after the config ones, so they may replace the angle source or add
// recorders and reporters.
func Run(ctx context.Context, cfg *Config, log *slog.Logger, opts ...Option) (Stats, *Trajectory, error) {
	if log == nil {
		log = logging.NewNop()
	}
	traj := NewTrajectory()
	all := append([]Option{WithRand(cfg.Rand()), WithRecorder(traj), WithLogger(log)}, opts...)
	w, err := NewWalker(cfg.Medium, all...)
	if err != nil {
		return Stats{}, traj, err
	}

	d := driver.New(w,
		driver.WithFPS(cfg.FPS),
		driver.WithStepsPerFrame(cfg.StepsPerFrame),
		driver.WithMaxSteps(cfg.MaxSteps),
		driver.WithLogger(log),
	)
	start := time.Now()
	if _, err := d.Run(ctx); err != nil {
		return Stats{}, traj, err
	}
	log.Debug("walk finished", "steps", w.Steps(), "time", time.Since(start))
	st, err := w.Stats()
	return st, traj, err
}
