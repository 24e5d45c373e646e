package duel

import "github.com/Garsondee/Artillery-Duel/internal/geom"

// Outcome is the state of a projectile after one step.
type Outcome int

const (
	Flying Outcome = iota
	HitTerrain
	OutOfBounds
	HitTarget
)

func (o Outcome) String() string {
	switch o {
	case Flying:
		return "flying"
	case HitTerrain:
		return "hit_terrain"
	case OutOfBounds:
		return "out_of_bounds"
	case HitTarget:
		return "hit_target"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends a shot.
func (o Outcome) Terminal() bool { return o != Flying }

// Projectile is a live shell in flight toward Target.
type Projectile struct {
	Position geom.Vec2
	Velocity geom.Vec2
	Target   *Tank
}

// Environment is everything the ballistics step reads besides the projectile.
type Environment struct {
	Field   *Field
	Wind    float64
	Physics PhysicsConfig
}

// Advance integrates one tick (velocity first, then position) and classifies
// the new position. It does not modify its inputs.
func Advance(pos, vel, target geom.Vec2, env Environment) (geom.Vec2, geom.Vec2, Outcome) {
	pc := env.Physics
	vel = vel.AddXY(env.Wind*pc.WindCoefficient, pc.Gravity)
	pos = pos.Add(vel)
	return pos, vel, classify(pos, target, env)
}

// classify checks target, then terrain, then the bottom edge, so a shell
// clipping the tank and the ground in the same tick is a hit.
func classify(pos, target geom.Vec2, env Environment) Outcome {
	pc := env.Physics
	r := pc.TankSize*0.5 + pc.HitMargin
	if pos.Dist2(target) < r*r {
		return HitTarget
	}
	if IsSupported(pos, pc.ProjectileProbe, env.Field) {
		return HitTerrain
	}
	if pos.Y+pc.BottomMargin >= float64(env.Field.Height) {
		return OutOfBounds
	}
	return Flying
}

// StepProjectile advances the live projectile by one tick in place.
func StepProjectile(p *Projectile, env Environment) Outcome {
	vel := &p.Velocity
	vel.AddAssign(geom.V(env.Wind*env.Physics.WindCoefficient, env.Physics.Gravity))
	p.Position.AddAssign(*vel)
	return classify(p.Position, p.Target.Position, env)
}
