package photonwalk

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/lukaszgryglicki/photonwalk/internal/logging"
)

// EnsembleOptions configures Estimate.
type EnsembleOptions struct {
	Walks    int   // number of independent walks
	Workers  int   // <= 0 means NumCPU
	MaxSteps int   // per-walk cap, 0 means none
	Seed     int64 // 0 means time based
}

// EnsembleResult aggregates many walks. Capped walks are excluded from the means.
type EnsembleResult struct {
	Walks           int  `json:"walks"`
	Completed       int  `json:"completed"`
	Capped          int  `json:"capped"`
	MeanSteps       Real `json:"meanSteps"`
	MinSteps        int  `json:"minSteps"`
	MaxSteps        int  `json:"maxSteps"`
	MeanEscapeYears Real `json:"meanEscapeYears"`
}

type partial struct {
	completed, capped  int
	sumSteps, sumYears int64
	minSteps, maxSteps int
}

// Estimate runs opts.Walks independent walks through m in parallel.
// Each walker is owned by one goroutine with its own seeded generator.
func Estimate(ctx context.Context, m Medium, opts EnsembleOptions) (EnsembleResult, error) {
	if err := m.Validate(); err != nil {
		return EnsembleResult{}, err
	}
	if opts.Walks <= 0 {
		return EnsembleResult{}, &ConfigurationError{Key: "walks", Reason: "must be > 0", Value: opts.Walks}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = imax(1, imin(workers, opts.Walks))
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	per, rem := opts.Walks/workers, opts.Walks%workers
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	partCh := make(chan partial, workers)
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		wg.Add(1)
		go func(wid, n int) {
			defer wg.Done()
			// independent RNG per worker
			rng := rand.New(rand.NewSource(seed ^ int64(uint64(wid)*0x9e3779b97f4a7c15)))
			p := partial{minSteps: math.MaxInt}
			for i := 0; i < n; i++ {
				steps, years, capped, err := walkOnce(ctx, m, rng, opts.MaxSteps)
				if err != nil {
					errCh <- err
					cancel()
					return
				}
				if capped {
					p.capped++
					continue
				}
				p.completed++
				p.sumSteps += int64(steps)
				p.sumYears += years
				p.minSteps = imin(p.minSteps, steps)
				p.maxSteps = imax(p.maxSteps, steps)
			}
			partCh <- p
		}(w, n)
	}
	wg.Wait()
	close(partCh)
	close(errCh)
	if err, ok := <-errCh; ok {
		return EnsembleResult{}, err
	}

	res := EnsembleResult{Walks: opts.Walks, MinSteps: math.MaxInt}
	var sumSteps, sumYears int64
	for p := range partCh {
		res.Completed += p.completed
		res.Capped += p.capped
		sumSteps += p.sumSteps
		sumYears += p.sumYears
		if p.completed > 0 {
			res.MinSteps = imin(res.MinSteps, p.minSteps)
			res.MaxSteps = imax(res.MaxSteps, p.maxSteps)
		}
	}
	if res.Completed == 0 {
		res.MinSteps = 0
		return res, nil
	}
	res.MeanSteps = Real(sumSteps) / Real(res.Completed)
	res.MeanEscapeYears = Real(sumYears) / Real(res.Completed)
	return res, nil
}

func walkOnce(ctx context.Context, m Medium, rng *rand.Rand, maxSteps int) (steps int, years int64, capped bool, err error) {
	w, err := NewWalker(m, WithRand(rng), WithLogger(logging.NewNop()))
	if err != nil {
		return 0, 0, false, err
	}
	for w.Active() {
		if maxSteps > 0 && w.Steps() >= maxSteps {
			return w.Steps(), 0, true, nil
		}
		if w.Steps()%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, 0, false, err
			}
		}
		w.Advance()
	}
	st, err := w.Stats()
	if err != nil {
		return 0, 0, false, err
	}
	return st.TotalSteps, st.EscapeYears, false, nil
}
