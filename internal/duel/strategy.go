package duel

import "math"

// BestShot is the closest candidate found during one decision episode.
type BestShot struct {
	AimAngle    float64
	LaunchForce float64
	DistanceSq  float64 // squared distance from the predicted landing to the target
	Outcome     Outcome
	Trials      int
}

// Opponent picks launch parameters by random sampling: each candidate is
// flown through a Predictor and the one landing nearest the target wins.
type Opponent struct {
	cfg OpponentConfig
	rng Rand
}

// NewOpponent returns a strategy drawing candidates from rng.
func NewOpponent(cfg OpponentConfig, rng Rand) *Opponent {
	return &Opponent{cfg: cfg, rng: rng}
}

// Trials is the number of candidates tried for one shot. It grows with the
// score of the side being aimed at, so the computer sharpens as the human
// lands hits.
func (o *Opponent) Trials(targetScore int) int {
	return o.cfg.BaseSamples + targetScore
}

// Decide samples Trials candidates for shooter and returns the best one.
// Ties keep the earlier candidate.
func (o *Opponent) Decide(shooter *Tank, p Predictor) BestShot {
	target := shooter.Opponent.Position
	dir := 1.0
	if target.X < shooter.Position.X {
		dir = -1
	}

	n := o.Trials(shooter.Opponent.Score)
	best := BestShot{DistanceSq: math.MaxFloat64}
	for i := 0; i < n; i++ {
		angle := dir * o.rng.Float64() * o.cfg.AngleSpan
		force := o.cfg.ForceMin + o.rng.Float64()*(o.cfg.ForceMax-o.cfg.ForceMin)

		pred := p.Predict(Pose{Position: shooter.Position, AimAngle: angle, LaunchForce: force}, target)
		if d := pred.Landing.Dist2(target); d < best.DistanceSq {
			best = BestShot{AimAngle: angle, LaunchForce: force, DistanceSq: d, Outcome: pred.Outcome}
		}
	}
	best.Trials = n
	return best
}
