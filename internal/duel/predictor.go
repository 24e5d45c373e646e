package duel

import "github.com/Garsondee/Artillery-Duel/internal/geom"

// Prediction is the simulated result of a hypothetical shot.
type Prediction struct {
	Landing geom.Vec2
	Outcome Outcome // Flying only when the flight was cut off at MaxFlightTicks
	Ticks   int
	Path    []geom.Vec2
}

// Predictor simulates a shot ahead of time.
//
//go:generate go tool mockgen -destination=./mocks/predictor_mock.go -package=mocks . Predictor
type Predictor interface {
	Predict(pose Pose, target geom.Vec2) Prediction
}

// Simulator predicts shots against a terrain snapshot. It only reads the
// field; every call starts from a fresh detached projectile.
type Simulator struct {
	Env       Environment
	MaxTicks  int
	PathEvery int // sample the trajectory every n ticks; 0 disables the path
}

// NewSimulator returns a predictor for the round's current terrain and wind.
func NewSimulator(f *Field, wind float64, pc PhysicsConfig) *Simulator {
	return &Simulator{
		Env:       Environment{Field: f, Wind: wind, Physics: pc},
		MaxTicks:  pc.MaxFlightTicks,
		PathEvery: pc.PathSampleEvery,
	}
}

// Predict flies the shot until it terminates or MaxTicks elapse.
func (s *Simulator) Predict(pose Pose, target geom.Vec2) Prediction {
	pos := pose.Position
	vel := LaunchVelocity(pose.AimAngle, pose.LaunchForce)

	var path []geom.Vec2
	if s.PathEvery > 0 {
		path = append(path, pos)
	}

	out := Flying
	ticks := 0
	for ticks < s.MaxTicks {
		pos, vel, out = Advance(pos, vel, target, s.Env)
		ticks++
		if out.Terminal() {
			break
		}
		if s.PathEvery > 0 && ticks%s.PathEvery == 0 {
			path = append(path, pos)
		}
	}
	if s.PathEvery > 0 {
		path = append(path, pos)
	}
	return Prediction{Landing: pos, Outcome: out, Ticks: ticks, Path: path}
}
