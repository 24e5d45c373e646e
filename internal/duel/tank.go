package duel

import (
	"math"

	"github.com/Garsondee/Artillery-Duel/internal/geom"
)

// Side identifies one of the two tanks.
type Side int

const (
	SideA Side = iota // left tank, the human by default
	SideB             // right tank, the computer opponent by default
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "?"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side { return 1 - s }

// Tank is one stationary artillery piece. X is fixed for the round; Y falls
// under gravity whenever the tank is not resting on terrain.
type Tank struct {
	Side             Side
	Position         geom.Vec2
	VerticalVelocity float64
	AimAngle         float64 // radians; 0 fires straight up, positive leans right
	LaunchForce      float64
	Grounded         bool
	Score            int
	Opponent         *Tank
}

// Pose is the part of a tank the shot predictor needs.
type Pose struct {
	Position    geom.Vec2
	AimAngle    float64
	LaunchForce float64
}

// Pose returns the tank's current aim.
func (t *Tank) Pose() Pose {
	return Pose{Position: t.Position, AimAngle: t.AimAngle, LaunchForce: t.LaunchForce}
}

// LaunchVelocity is the initial projectile velocity for an aim: (0, force)
// rotated by angle+π, which turns the downward template up-screen.
func LaunchVelocity(angle, force float64) geom.Vec2 {
	return geom.V(0, force).Rotate(angle + math.Pi)
}

// Fall applies one tick of gravity unless the tank rests on solid ground.
func (t *Tank) Fall(f *Field, pc PhysicsConfig) {
	if IsSupported(t.Position, pc.TankSize, f) {
		t.VerticalVelocity = 0
		t.Grounded = true
		return
	}
	t.Grounded = false
	t.VerticalVelocity += pc.Gravity
	t.Position.Y += t.VerticalVelocity
}

// BelowField reports whether the tank has dropped entirely out of the field.
func (t *Tank) BelowField(f *Field, pc PhysicsConfig) bool {
	return t.Position.Y-pc.TankSize*0.5 > float64(f.Height)
}
