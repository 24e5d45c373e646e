// Package duel is the artillery simulation: terrain, ballistics, collision,
// shot prediction and the computer opponent. It has no rendering or input
// dependencies; a frontend drives it through Tick, the input entry points
// and Snapshot.
package duel

import (
	"fmt"
	"math"

	"github.com/Garsondee/Artillery-Duel/internal/geom"
	"github.com/rs/zerolog"
)

// HumanSide is the side driven by AdjustAim, AdjustForce and Fire.
const HumanSide = SideA

// TickResult describes what happened during one Tick.
type TickResult struct {
	Round     int     // round number the tick ran in
	HadShot   bool    // a projectile was stepped this tick
	Outcome   Outcome // its state after the step
	AutoFired bool    // an autopilot side fired this tick
	RoundOver bool    // the round ended and a new one has started
}

// FieldFactory builds the terrain for a new round.
type FieldFactory func(cfg Config, rng Rand) *Field

// Duel owns the round state and runs one simulation step per Tick. It is not
// safe for concurrent use; one Tick must finish before the next starts.
type Duel struct {
	cfg       Config
	rng       Rand
	log       zerolog.Logger
	simLog    *SimLog
	autopilot [2]bool
	opponent  *Opponent
	newField  FieldFactory
	spawn     [2]geom.Vec2
	scores    [2]int
	round     *Round
	rounds    int
}

// Option configures a Duel.
type Option func(*Duel)

// WithRand sets the random source for terrain, wind and the opponent.
func WithRand(r Rand) Option {
	return func(d *Duel) { d.rng = r }
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) Option {
	return func(d *Duel) { d.rng = NewRand(seed) }
}

// WithLogger routes duel events to l.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Duel) { d.log = l }
}

// WithSimLog records events into sl.
func WithSimLog(sl *SimLog) Option {
	return func(d *Duel) { d.simLog = sl }
}

// WithAutopilot hands exactly the given sides to the computer opponent.
// With no sides both tanks wait for FireFor.
func WithAutopilot(sides ...Side) Option {
	return func(d *Duel) {
		d.autopilot = [2]bool{}
		for _, s := range sides {
			d.autopilot[s] = true
		}
	}
}

// WithFieldFactory replaces random terrain generation.
func WithFieldFactory(fn FieldFactory) Option {
	return func(d *Duel) { d.newField = fn }
}

// WithSpawn places the tanks at the start of every round.
func WithSpawn(a, b geom.Vec2) Option {
	return func(d *Duel) { d.spawn = [2]geom.Vec2{a, b} }
}

func generatedField(cfg Config, rng Rand) *Field {
	return GenerateField(cfg.Width, cfg.Height, cfg.Terrain, rng)
}

// New validates cfg and starts the first round. Side B is computer
// controlled unless options say otherwise.
func New(cfg Config, opts ...Option) (*Duel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid duel config: %w", err)
	}
	d := &Duel{
		cfg:       cfg,
		log:       zerolog.Nop(),
		simLog:    NewSimLog(false),
		autopilot: [2]bool{false, true},
		newField:  generatedField,
		spawn: [2]geom.Vec2{
			geom.V(cfg.Terrain.TankInsetX, 0),
			geom.V(float64(cfg.Width)-cfg.Terrain.TankInsetX, 0),
		},
	}
	for _, o := range opts {
		o(d)
	}
	if d.rng == nil {
		d.rng = NewRand(1)
	}
	d.opponent = NewOpponent(cfg.Opponent, d.rng)
	d.StartRound()
	return d, nil
}

// Config returns the configuration the duel runs with.
func (d *Duel) Config() Config { return d.cfg }

// Round returns the live round. Callers must treat it as read-only.
func (d *Duel) Round() *Round { return d.round }

// Scores returns the hits landed by each side since the duel began.
func (d *Duel) Scores() [2]int { return d.scores }

// Rounds returns how many rounds have been started.
func (d *Duel) Rounds() int { return d.rounds }

// SimLog returns the event log.
func (d *Duel) SimLog() *SimLog { return d.simLog }

// Autopilot reports whether side is computer controlled.
func (d *Duel) Autopilot(side Side) bool { return d.autopilot[side] }

// Snapshot returns a copy of the current state for rendering.
func (d *Duel) Snapshot() Snapshot { return d.round.snapshot() }

// StartRound regenerates terrain, resets both tanks to their spawn points
// and gives side A the first turn. Scores and aim carry over.
func (d *Duel) StartRound() {
	d.rounds++
	a := &Tank{Side: SideA, Position: d.spawn[SideA], Score: d.scores[SideA],
		AimAngle: d.cfg.Controls.StartAngle, LaunchForce: d.cfg.Controls.StartForce}
	b := &Tank{Side: SideB, Position: d.spawn[SideB], Score: d.scores[SideB],
		AimAngle: -d.cfg.Controls.StartAngle, LaunchForce: d.cfg.Controls.StartForce}
	if prev := d.round; prev != nil {
		a.AimAngle, a.LaunchForce = prev.Tanks[SideA].AimAngle, prev.Tanks[SideA].LaunchForce
		b.AimAngle, b.LaunchForce = prev.Tanks[SideB].AimAngle, prev.Tanks[SideB].LaunchForce
	}
	a.Opponent, b.Opponent = b, a

	d.round = &Round{
		ID:     newRoundID(d.rng),
		Number: d.rounds,
		Field:  d.newField(d.cfg, d.rng),
		Tanks:  [2]*Tank{a, b},
	}
	d.log.Info().
		Int("round", d.rounds).
		Str("id", d.round.ID.String()).
		Int("scoreA", d.scores[SideA]).
		Int("scoreB", d.scores[SideB]).
		Msg("round started")
	d.record("--", "round", "start", d.round.ID.String(), 0)
	d.beginTurn(SideA)
}

func (d *Duel) beginTurn(side Side) {
	r := d.round
	r.Turn = side
	r.Wind = d.cfg.Physics.WindMax * (1 - 2*d.rng.Float64())
	r.Best = BestShot{}
	d.record(side.String(), "turn", "begin", fmt.Sprintf("wind=%.2f", r.Wind), r.Wind)
}

// record writes one event to the SimLog and the debug logger.
func (d *Duel) record(side, category, key, value string, num float64) {
	r := d.round
	d.simLog.Add(r.Tick, r.Number, side, category, key, value, num)
	d.log.Debug().
		Int("round", r.Number).
		Int("tick", r.Tick).
		Str("side", side).
		Str("key", key).
		Float64("num", num).
		Msg(category + ": " + value)
}

// Tick advances the simulation by one step.
func (d *Duel) Tick() TickResult {
	r := d.round
	pc := d.cfg.Physics
	r.Tick++
	res := TickResult{Round: r.Number}

	for _, t := range r.Tanks {
		was := t.Grounded
		t.Fall(r.Field, pc)
		if t.Grounded && !was {
			d.record(t.Side.String(), "tank", "landed", fmt.Sprintf("(%.0f,%.0f)", t.Position.X, t.Position.Y), t.Position.Y)
		}
	}
	for _, t := range r.Tanks {
		if t.BelowField(r.Field, pc) {
			d.record(t.Side.String(), "tank", "fell", "dropped out of the field", t.Position.Y)
			d.endRound(t.Opponent.Side, "opponent fell")
			res.RoundOver = true
			return res
		}
	}

	if p := r.Projectile; p != nil {
		res.HadShot = true
		res.Outcome = StepProjectile(p, r.Environment(pc))
		if d.simLog.Verbose() {
			d.simLog.Add(r.Tick, r.Number, p.Target.Opponent.Side.String(), "shot", "position",
				fmt.Sprintf("(%.1f,%.1f)", p.Position.X, p.Position.Y), p.Position.Y)
		}
		if res.Outcome.Terminal() && d.resolve(res.Outcome) {
			res.RoundOver = true
			return res
		}
	}

	if r.Projectile == nil && d.autopilot[r.Turn] && r.Tanks[r.Turn].Grounded {
		res.AutoFired = d.autoFire(r.Turn)
	}
	return res
}

// resolve applies the side effects of a terminal shot. It reports whether
// the round ended.
func (d *Duel) resolve(out Outcome) bool {
	r := d.round
	p := r.Projectile
	shooter := p.Target.Opponent.Side
	where := fmt.Sprintf("(%.0f,%.0f)", p.Position.X, p.Position.Y)
	r.Projectile = nil

	switch out {
	case HitTarget:
		d.record(shooter.String(), "impact", out.String(), where, 0)
		d.endRound(shooter, "direct hit")
		return true
	case HitTerrain:
		n := r.Field.Destroy(p.Position, d.cfg.Physics.CraterRadius)
		d.record(shooter.String(), "impact", out.String(), fmt.Sprintf("%s cells=%d", where, n), float64(n))
	case OutOfBounds:
		d.record(shooter.String(), "impact", out.String(), where, 0)
	}
	d.beginTurn(shooter.Other())
	return false
}

func (d *Duel) endRound(winner Side, why string) {
	d.scores[winner]++
	d.round.Tanks[winner].Score++
	d.record(winner.String(), "round", "end", why, float64(d.scores[winner]))
	d.log.Info().
		Int("round", d.round.Number).
		Str("winner", winner.String()).
		Str("reason", why).
		Int("scoreA", d.scores[SideA]).
		Int("scoreB", d.scores[SideB]).
		Msg("round over")
	d.StartRound()
}

// Predictor returns a shot predictor for the live terrain and wind.
func (d *Duel) Predictor() *Simulator {
	return NewSimulator(d.round.Field, d.round.Wind, d.cfg.Physics)
}

func (d *Duel) autoFire(side Side) bool {
	r := d.round
	shooter := r.Tanks[side]
	best := d.opponent.Decide(shooter, d.Predictor())
	r.Best = best
	d.record(side.String(), "ai", "decision",
		fmt.Sprintf("trials=%d angle=%.3f force=%.2f dist=%.1f predicted=%s",
			best.Trials, best.AimAngle, best.LaunchForce, math.Sqrt(best.DistanceSq), best.Outcome),
		best.DistanceSq)
	d.log.Debug().
		Str("side", side.String()).
		Int("trials", best.Trials).
		Float64("dist2", best.DistanceSq).
		Msg("opponent committed shot")
	d.Aim(side, best.AimAngle, best.LaunchForce)
	return d.FireFor(side)
}

// Aim sets a side's aim, clamped to the control limits.
func (d *Duel) Aim(side Side, angle, force float64) {
	c := d.cfg.Controls
	t := d.round.Tanks[side]
	t.AimAngle = clamp(angle, -c.MaxAngle, c.MaxAngle)
	t.LaunchForce = clamp(force, 0, c.MaxForce)
}

// AdjustAim turns the human tank's barrel by delta radians.
func (d *Duel) AdjustAim(delta float64) {
	t := d.round.Tanks[HumanSide]
	d.Aim(HumanSide, t.AimAngle+delta, t.LaunchForce)
}

// AdjustForce changes the human tank's launch force by delta.
func (d *Duel) AdjustForce(delta float64) {
	t := d.round.Tanks[HumanSide]
	d.Aim(HumanSide, t.AimAngle, t.LaunchForce+delta)
}

// Fire launches the human tank's shot. It is ignored unless it is the
// human's turn and no projectile is in the air.
func (d *Duel) Fire() bool {
	return d.FireFor(HumanSide)
}

// FireFor launches side's shot with its current aim.
func (d *Duel) FireFor(side Side) bool {
	r := d.round
	if r.Projectile != nil || r.Turn != side {
		return false
	}
	t := r.Tanks[side]
	r.Projectile = &Projectile{
		Position: t.Position,
		Velocity: LaunchVelocity(t.AimAngle, t.LaunchForce),
		Target:   t.Opponent,
	}
	d.record(side.String(), "shot", "fire",
		fmt.Sprintf("angle=%.3f force=%.2f wind=%.2f", t.AimAngle, t.LaunchForce, r.Wind), t.LaunchForce)
	return true
}

// AimPreview predicts where the human's current aim would land.
func (d *Duel) AimPreview() Prediction {
	a := d.round.Tanks[HumanSide]
	return d.Predictor().Predict(a.Pose(), a.Opponent.Position)
}
