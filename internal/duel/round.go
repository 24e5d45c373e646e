package duel

import (
	"github.com/Garsondee/Artillery-Duel/internal/geom"
	"github.com/google/uuid"
)

// Round is everything that lives from one terrain generation to the next
// direct hit: the field, both tanks, the live projectile, wind and turn.
type Round struct {
	ID         uuid.UUID
	Number     int
	Field      *Field
	Tanks      [2]*Tank
	Projectile *Projectile
	Wind       float64
	Turn       Side
	Tick       int
	Best       BestShot // last computer decision, for display
}

// Tank returns the tank for side.
func (r *Round) Tank(s Side) *Tank { return r.Tanks[s] }

// Environment returns the ballistics inputs for the current turn.
func (r *Round) Environment(pc PhysicsConfig) Environment {
	return Environment{Field: r.Field, Wind: r.Wind, Physics: pc}
}

// TankView is a read-only copy of a tank for renderers.
type TankView struct {
	Side        Side
	Position    geom.Vec2
	AimAngle    float64
	LaunchForce float64
	Grounded    bool
	Score       int
}

// Barrel returns the muzzle tip for a barrel of the given length.
func (t TankView) Barrel(length float64) geom.Vec2 {
	return t.Position.Add(LaunchVelocity(t.AimAngle, length))
}

// Snapshot is a read-only copy of the duel state for one frame.
type Snapshot struct {
	Round         int
	RoundID       string
	Tick          int
	Wind          float64
	Turn          Side
	Tanks         [2]TankView
	HasProjectile bool
	Projectile    geom.Vec2
	FieldVersion  int
	Best          BestShot
}

func (r *Round) snapshot() Snapshot {
	s := Snapshot{
		Round:        r.Number,
		RoundID:      r.ID.String(),
		Tick:         r.Tick,
		Wind:         r.Wind,
		Turn:         r.Turn,
		FieldVersion: r.Field.Version(),
		Best:         r.Best,
	}
	for i, t := range r.Tanks {
		s.Tanks[i] = TankView{
			Side:        t.Side,
			Position:    t.Position,
			AimAngle:    t.AimAngle,
			LaunchForce: t.LaunchForce,
			Grounded:    t.Grounded,
			Score:       t.Score,
		}
	}
	if r.Projectile != nil {
		s.HasProjectile = true
		s.Projectile = r.Projectile.Position
	}
	return s
}
