// Package server serves a frame-paced walk over HTTP: a WebSocket stream for
// the browser scene, a JSON snapshot, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lukaszgryglicki/photonwalk/internal/driver"
	"github.com/lukaszgryglicki/photonwalk/internal/logging"
	"github.com/lukaszgryglicki/photonwalk/internal/metrics"
	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
	"github.com/lukaszgryglicki/photonwalk/internal/stream"
)

// ErrClosed is returned by StartWalk after Close.
var ErrClosed = errors.New("server closed")

// Server owns at most one running walk at a time.
type Server struct {
	cfg      *photonwalk.Config
	log      *slog.Logger
	hub      *stream.Hub
	registry *prometheus.Registry
	metrics  *metrics.Collector
	traj     *photonwalk.Trajectory

	startMu sync.Mutex // serializes StartWalk, Stop and Close
	closed  bool

	mu     sync.Mutex // guards walker, cancel and done; also serializes steps against snapshots
	walker *photonwalk.Walker
	cancel context.CancelFunc
	done   chan struct{}
	runErr error
}

func New(cfg *photonwalk.Config, log *slog.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		log:      log,
		hub:      stream.NewHub(log),
		registry: reg,
		metrics:  metrics.New(reg),
		traj:     photonwalk.NewTrajectory(),
	}
}

// Hub exposes the stream hub, mostly for tests.
func (s *Server) Hub() *stream.Hub { return s.hub }

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Handle("/ws", s.hub)
	r.Get("/walk", s.getWalk)
	r.Post("/walk", s.postWalk)
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type walkResponse struct {
	State       photonwalk.State  `json:"state"`
	Stats       *photonwalk.Stats `json:"stats,omitempty"`
	Segments    int               `json:"segments"`
	MaxDistance photonwalk.Real   `json:"maxDistance"`
}

func (s *Server) getWalk(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.walker == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no walk started"})
		return
	}
	resp := walkResponse{State: s.walker.Snapshot(), Segments: s.traj.Len(), MaxDistance: s.traj.MaxDistance()}
	if st, err := s.walker.Stats(); err == nil {
		resp.Stats = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) postWalk(w http.ResponseWriter, r *http.Request) {
	if err := s.StartWalk(); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrClosed) {
			code = http.StatusServiceUnavailable
		}
		s.log.Error("failed to start walk", "error", err)
		writeJSON(w, code, map[string]string{"error": err.Error()})
		return
	}
	s.mu.Lock()
	state := s.walker.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusAccepted, walkResponse{State: state})
}

// lockedWalker serializes steps against HTTP snapshots. Recorders run under
// the lock, so they must not block; the hub only queues.
type lockedWalker struct {
	mu *sync.Mutex
	w  *photonwalk.Walker
}

func (l lockedWalker) Step() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Step()
}

func (l lockedWalker) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Active()
}

// StartWalk stops the current walk, if any, and starts a new one in the background.
func (s *Server) StartWalk() error {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.stop()

	w, err := photonwalk.NewWalker(s.cfg.Medium,
		photonwalk.WithRand(s.cfg.Rand()),
		photonwalk.WithRecorder(s.traj),
		photonwalk.WithRecorder(s.metrics),
		photonwalk.WithRecorder(s.hub),
		photonwalk.WithReporter(s.metrics),
		photonwalk.WithReporter(s.hub),
		photonwalk.WithLogger(s.log),
	)
	if err != nil {
		return err
	}
	s.traj.Reset()
	s.metrics.Reset()
	s.hub.Reset()
	s.hub.SetStars(photonwalk.GenerateStars(s.cfg.Rand(), s.cfg.StarCount, s.cfg.StarMinDistance))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d := driver.New(lockedWalker{mu: &s.mu, w: w},
		driver.WithFPS(s.cfg.FPS),
		driver.WithStepsPerFrame(s.cfg.StepsPerFrame),
		driver.WithMaxSteps(s.cfg.MaxSteps),
		driver.WithLogger(s.log),
	)

	s.mu.Lock()
	s.walker, s.cancel, s.done, s.runErr = w, cancel, done, nil
	s.mu.Unlock()
	m := w.Medium()
	s.log.Info("walk started", "opacity", m.Opacity, "density", m.Density,
		"step_length", w.StepLength(), "boundary", w.BoundaryRadius(), "fps", s.cfg.FPS)

	go func() {
		defer close(done)
		_, err := d.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn("walk stopped", "error", err)
		}
		s.mu.Lock()
		s.runErr = err
		s.mu.Unlock()
	}()
	return nil
}

// Wait blocks until the current walk's driver returns and yields its error.
func (s *Server) Wait() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

// Stop cancels the running walk and waits for its driver to return.
func (s *Server) Stop() {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	s.stop()
}

func (s *Server) stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Close stops the walk and disconnects clients. Later StartWalk calls fail with ErrClosed.
func (s *Server) Close() {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	s.closed = true
	s.stop()
	s.hub.Close()
}
