// Package loop drives the simulation: seed, then advance, detect and persist
// once per tick until the context is cancelled.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gol-miner/internal/core"
	"gol-miner/internal/pattern"
	"gol-miner/internal/persist"
	"gol-miner/internal/step"
)

// State is the lifecycle phase of a Loop.
type State int

const (
	StateInit State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Renderer displays a snapshot. Failures are logged and otherwise ignored.
type Renderer interface {
	Render(g *core.DenseGrid) error
}

// Config controls seeding and pacing.
type Config struct {
	Density  float64
	Seed     int64
	Interval time.Duration
	// MaxTicks stops the run after this many ticks. Zero runs until cancelled.
	MaxTicks int
	// Initial replaces random seeding with these live cells when it is
	// non-nil or when Preset is set.
	Initial []core.Coord
	// Preset loads Initial as given, even when it is empty.
	Preset bool
}

// DefaultConfig returns the standard loop settings.
func DefaultConfig() Config {
	return Config{Density: 0.1, Seed: 0, Interval: time.Second}
}

// Report summarizes one tick.
type Report struct {
	Tick        int
	Generation  uint64
	Alive       int
	Occurrences int
	Clusters    int
	Saved       []persist.Selection
}

// Stats summarizes a finished run.
type Stats struct {
	Ticks int
	Saved int
}

// Loop owns every component of a simulation run.
type Loop struct {
	cfg      Config
	coord    *step.Coordinator
	detector *pattern.Detector
	saver    *persist.Saver
	renderer Renderer
	pacer    *core.Pacer
	log      zerolog.Logger

	mu    sync.Mutex
	state State
	last  Report
	stats Stats
}

// New assembles a Loop. renderer may be nil.
func New(cfg Config, coord *step.Coordinator, detector *pattern.Detector, saver *persist.Saver, renderer Renderer, log zerolog.Logger) *Loop {
	return &Loop{
		cfg:      cfg,
		coord:    coord,
		detector: detector,
		saver:    saver,
		renderer: renderer,
		pacer:    core.NewPacer(cfg.Interval),
		log:      log.With().Str("component", "loop").Logger(),
	}
}

// State returns the current lifecycle phase.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Last returns the report of the most recent tick.
func (l *Loop) Last() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
	l.log.Debug().Stringer("state", s).Msg("state changed")
}

// Init seeds the board and enters the running state.
func (l *Loop) Init() {
	if l.cfg.Preset || l.cfg.Initial != nil {
		l.coord.Load(l.cfg.Initial)
	} else {
		seed := l.cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		l.coord.Seed(core.NewRNG(seed), l.cfg.Density)
		l.log.Info().Int64("seed", seed).Float64("density", l.cfg.Density).Msg("board seeded")
	}
	l.log.Info().Int("size", l.coord.Size()).Int("alive", l.coord.Alive()).Msg("simulation initialized")
	l.setState(StateRunning)
}

// Tick advances one generation and, unless ctx is already done, analyzes and
// persists the result. The advance itself always completes.
func (l *Loop) Tick(ctx context.Context) (Report, error) {
	if err := l.coord.Step(ctx); err != nil {
		return Report{}, err
	}

	snap := l.coord.Snapshot()
	rep := Report{Generation: l.coord.Generation(), Alive: snap.Alive()}
	if ctx.Err() == nil {
		res := l.detector.Detect(snap)
		rep.Occurrences = len(res.Occurrences)
		rep.Clusters = len(res.Counts)
		rep.Saved = l.saver.Persist(ctx, res.Counts, snap)
		if l.renderer != nil {
			if err := l.renderer.Render(snap); err != nil {
				l.log.Warn().Err(err).Msg("render failed")
			}
		}
	}

	l.mu.Lock()
	l.stats.Ticks++
	l.stats.Saved += len(rep.Saved)
	rep.Tick = l.stats.Ticks
	l.last = rep
	l.mu.Unlock()

	l.log.Info().
		Int("tick", rep.Tick).
		Uint64("generation", rep.Generation).
		Int("alive", rep.Alive).
		Int("occurrences", rep.Occurrences).
		Int("clusters", rep.Clusters).
		Int("saved", len(rep.Saved)).
		Msg("tick")
	return rep, nil
}

// Run initializes the board if needed and ticks until ctx is cancelled or
// MaxTicks is reached. Cancellation is not an error. A failed advance ends
// the run with that error. The store is closed before Run returns.
func (l *Loop) Run(ctx context.Context) (stats Stats, err error) {
	if l.State() == StateTerminated {
		return Stats{}, errors.New("loop already terminated")
	}
	if l.State() == StateInit {
		l.Init()
	}
	defer func() {
		if cerr := l.saver.Close(); cerr != nil {
			l.log.Warn().Err(cerr).Msg("closing store")
		}
		l.setState(StateTerminated)
		l.mu.Lock()
		stats = l.stats
		l.mu.Unlock()
		l.log.Info().Int("ticks", stats.Ticks).Int("saved", stats.Saved).Msg("simulation terminated")
	}()

	for ctx.Err() == nil {
		rep, err := l.Tick(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("tick %d: %w", l.Last().Tick+1, err)
		}
		if l.cfg.MaxTicks > 0 && rep.Tick >= l.cfg.MaxTicks {
			return Stats{}, nil
		}
		if err := l.pacer.Wait(ctx); err != nil {
			break
		}
	}
	return Stats{}, nil
}

// Name implements core.Source.
func (l *Loop) Name() string { return "life" }

// Size implements core.Source.
func (l *Loop) Size() core.Size {
	n := l.coord.Size()
	return core.Size{W: n, H: n}
}

// Cells implements core.Source with a fresh snapshot of the current generation.
func (l *Loop) Cells() []uint8 { return l.coord.Snapshot().Cells() }
