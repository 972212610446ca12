package epidemic

import (
	"errors"
	"io"
	"log/slog"

	"epi-ca/internal/core"
	rng "epi-ca/pkg/core"
)

var (
	// ErrNoPopulation is returned by Ready when every cell is Empty.
	ErrNoPopulation = errors.New("no individuals on the grid")
	// ErrNoInfected is returned by Ready when nobody is infected.
	ErrNoInfected = errors.New("no infected individuals on the grid")
)

// Simulation owns one run: the grid, the rule parameters, the random source,
// the tick counter and the statistics history. It is not safe for concurrent
// use; the driver serializes Step, Toggle and Reset.
type Simulation struct {
	cfg     Config
	pending Config

	grid   *Grid
	engine Engine

	rng          *rng.RNG
	src          rng.Source
	customSource bool

	tick      int
	ended     bool
	placement PlacementReport
	history   History
	display   []uint8

	log *slog.Logger
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithLogger routes reset, placement and end-of-epidemic events to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSource replaces the seeded generator with src. Reset seeds are then
// ignored; the caller owns the draw sequence.
func WithSource(src rng.Source) Option {
	return func(s *Simulation) {
		if src != nil {
			s.src = src
			s.customSource = true
		}
	}
}

// New validates cfg and builds a seeded simulation ready for its first tick.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:     cfg,
		pending: cfg,
		rng:     rng.NewRNG(cfg.Seed),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.src = s.rng
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reset(0); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "epidemic" }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.grid.n, H: s.grid.n} }

// Grid exposes the store. Writes through it bypass history recording.
func (s *Simulation) Grid() *Grid { return s.grid }

// Config returns the configuration the current run was built from.
func (s *Simulation) Config() Config { return s.cfg }

// Params returns the rule parameters the next Step will use.
func (s *Simulation) Params() Params { return s.cfg.Params }

// SetParams swaps the rule parameters between ticks.
func (s *Simulation) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.cfg.Params = p
	s.pending.Params = p
	return nil
}

// Configure stages a full configuration, structural fields included. It
// takes effect on the next Reset.
func (s *Simulation) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.pending = cfg
	return nil
}

// Tick returns the number of completed steps since the last reset.
func (s *Simulation) Tick() int { return s.tick }

// Ended reports whether the last Step left no Infected cell.
func (s *Simulation) Ended() bool { return s.ended }

// Placement returns the report from the last seeding.
func (s *Simulation) Placement() PlacementReport { return s.placement }

// History exposes the recorded statistics.
func (s *Simulation) History() *History { return &s.history }

// Stats tallies the committed grid.
func (s *Simulation) Stats() Counts { return Tally(s.grid, s.tick) }

// Reset applies any staged configuration, re-allocates the grid and seeds the
// population. seed == 0 is reserved to mean "keep the configured seed", so a
// run seeded with 0 is only reachable through Config.Seed. An invalid staged
// configuration is rejected and the current run is kept.
func (s *Simulation) Reset(seed int64) error {
	cfg := s.pending
	if err := cfg.Validate(); err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	grid, err := NewGrid(cfg.GridSize)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.pending = cfg
	s.grid = grid
	s.display = make([]uint8, grid.Len())
	s.tick = 0
	s.ended = false
	s.history.Clear()
	if !s.customSource {
		s.rng.Reseed(cfg.Seed)
	}

	s.placement = PlacementReport{}
	if !cfg.ManualPlacement() {
		s.placement = Place(s.grid, cfg.Population, cfg.InitialInfected, s.src)
		if short := s.placement.Shortfall(); short > 0 {
			s.log.Warn("population under-placed",
				"requested", s.placement.Requested,
				"placed", s.placement.Placed,
				"shortfall", short)
		}
	}
	s.log.Info("reset",
		"size", cfg.GridSize,
		"seed", cfg.Seed,
		"placed", s.placement.Placed,
		"infected", s.placement.Infected,
		"manual", cfg.ManualPlacement())

	s.history.Record(s.Stats())
	return nil
}

// Ready reports whether a run can start: the grid needs at least one
// individual and at least one of them infected.
func (s *Simulation) Ready() error {
	if s.grid.CountStatus(Empty) == s.grid.Len() {
		return ErrNoPopulation
	}
	if s.grid.CountStatus(Infected) == 0 {
		return ErrNoInfected
	}
	return nil
}

// Step advances one tick, records its statistics and reports whether any
// Infected cell remains. Once it returns false the driver should stop
// scheduling ticks.
func (s *Simulation) Step() bool {
	active := s.engine.Step(s.grid, s.cfg.Params, s.src)
	s.tick++
	s.history.Record(s.Stats())
	if !active && !s.ended {
		s.log.Info("epidemic ended", "tick", s.tick)
	}
	s.ended = !active
	return active
}

// Toggle cycles a cell for manual placement: Empty becomes Healthy, Healthy
// becomes Infected, anything else becomes Empty. Out-of-range coordinates are
// ignored.
func (s *Simulation) Toggle(row, col int) bool {
	if !core.InBounds(s.grid.n, row, col) {
		return false
	}
	switch s.grid.Get(row, col).Status {
	case Empty:
		s.grid.Set(row, col, Healthy, 0)
	case Healthy:
		s.grid.Set(row, col, Infected, 0)
	default:
		s.grid.Set(row, col, Empty, 0)
	}
	s.ended = false
	s.history.Record(s.Stats())
	return true
}

// Cells exposes the committed health states as one byte per cell for
// renderers.
func (s *Simulation) Cells() []uint8 {
	for i, c := range s.grid.cur {
		s.display[i] = uint8(c.Status)
	}
	return s.display
}

func init() {
	core.Register("epidemic", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
