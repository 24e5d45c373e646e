package duel

import (
	"github.com/Garsondee/Artillery-Duel/internal/geom"
	"github.com/rs/zerolog"
)

// TestSim is a headless duel harness for tests and the headless report.
// It drives Duel.Tick directly with deterministic seeding and structured
// logging, and has no Ebiten dependency.
type TestSim struct {
	Config Config
	Duel   *Duel
	SimLog *SimLog

	seed      int64
	log       zerolog.Logger
	field     FieldFactory
	spawn     [2]*geom.Vec2
	autopilot []Side
	ticks     int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // field size, physics, seed, verbose
	simOptScene                       // terrain and tank placement, which read the final size
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithFieldSize sets the playfield dimensions.
func WithFieldSize(w, h int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.Config.Width = w
		ts.Config.Height = h
	}}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) { ts.Config = cfg }}
}

// WithTweak edits the configuration in place.
func WithTweak(fn func(*Config)) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) { fn(&ts.Config) }}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) { ts.seed = seed }}
}

// WithCalm disables wind.
func WithCalm() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) { ts.Config.Physics.WindMax = 0 }}
}

// WithVerbose enables per-tick projectile logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithSimLogger routes duel events to l.
func WithSimLogger(l zerolog.Logger) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) { ts.log = l }}
}

// WithSimAutopilot hands exactly the given sides to the computer.
func WithSimAutopilot(sides ...Side) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.autopilot = append([]Side{}, sides...)
	}}
}

// WithFlatTerrain replaces generated terrain with a level plain of the given
// elevation.
func WithFlatTerrain(height float64) SimOption {
	return WithTerrainProfile(func(int) float64 { return height })
}

// WithTerrainProfile replaces generated terrain with heights(col).
func WithTerrainProfile(heights func(col int) float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.field = func(cfg Config, _ Rand) *Field {
			return NewProfileField(cfg.Width, cfg.Height, heights)
		}
	}}
}

// WithTankAt spawns side at (x, y) in screen space every round.
func WithTankAt(side Side, x, y float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		p := geom.V(x, y)
		ts.spawn[side] = &p
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered
// passes (configuration, then scene) and starts the first round. Both sides
// are computer controlled unless WithSimAutopilot says otherwise.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		Config:    DefaultConfig(),
		SimLog:    NewSimLog(false),
		seed:      1,
		log:       zerolog.Nop(),
		autopilot: []Side{SideA, SideB},
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptScene {
			o.fn(ts)
		}
	}

	dopts := []Option{
		WithSeed(ts.seed),
		WithLogger(ts.log),
		WithSimLog(ts.SimLog),
		WithAutopilot(ts.autopilot...),
	}
	if ts.field != nil {
		dopts = append(dopts, WithFieldFactory(ts.field))
	}
	if ts.spawn[SideA] != nil || ts.spawn[SideB] != nil {
		a := geom.V(ts.Config.Terrain.TankInsetX, 0)
		b := geom.V(float64(ts.Config.Width)-ts.Config.Terrain.TankInsetX, 0)
		if ts.spawn[SideA] != nil {
			a = *ts.spawn[SideA]
		}
		if ts.spawn[SideB] != nil {
			b = *ts.spawn[SideB]
		}
		dopts = append(dopts, WithSpawn(a, b))
	}

	d, err := New(ts.Config, dopts...)
	if err != nil {
		return nil, err
	}
	ts.Duel = d
	return ts, nil
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.ticks++
		ts.Duel.Tick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true after a tick. Returns the tick count at which the
// predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim, TickResult) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.ticks++
		res := ts.Duel.Tick()
		if predicate(ts, res) {
			return ts.ticks
		}
	}
	return -1
}

// RunRounds plays until n rounds have finished or maxTicks elapse. It
// returns the number of rounds completed.
func (ts *TestSim) RunRounds(n, maxTicks int) int {
	done := 0
	ts.RunUntil(func(_ *TestSim, res TickResult) bool {
		if res.RoundOver {
			done++
		}
		return done >= n
	}, maxTicks)
	return done
}

// CurrentTick returns the number of ticks run across all rounds.
func (ts *TestSim) CurrentTick() int {
	return ts.ticks
}

// Snapshot returns the current duel state.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Duel.Snapshot()
}

// Summary formats the SimLog summary for the current scores.
func (ts *TestSim) Summary() string {
	return ts.SimLog.Summary(ts.Duel.Scores(), ts.Duel.Rounds())
}
