package duel

import (
	"errors"
	"fmt"
	"math"
)

// Configuration errors returned by Config.Validate.
var (
	ErrNonPositiveGravity = errors.New("gravity must be > 0")
	ErrFieldSize          = errors.New("field width and height must be > 0")
	ErrTankSize           = errors.New("tank size must be > 0")
	ErrProbeSize          = errors.New("projectile probe must be > 0")
	ErrForceRange         = errors.New("opponent force range is inverted")
	ErrOpponentReach      = errors.New("opponent sampling range exceeds the control limits")
	ErrBaseSamples        = errors.New("opponent base samples must be >= 1")
	ErrFlightTicks        = errors.New("max flight ticks must be > 0")
	ErrTerrainProfile     = errors.New("terrain height fractions must satisfy 0 <= min <= max <= 1")
)

// PhysicsConfig holds the ballistic and collision constants. All distances are
// in field pixels and all rates are per tick.
type PhysicsConfig struct {
	Gravity         float64 `mapstructure:"gravity"`
	WindCoefficient float64 `mapstructure:"windCoefficient"`
	WindMax         float64 `mapstructure:"windMax"`
	TankSize        float64 `mapstructure:"tankSize"`
	HitMargin       float64 `mapstructure:"hitMargin"`
	BottomMargin    float64 `mapstructure:"bottomMargin"`
	ProjectileProbe float64 `mapstructure:"projectileProbe"`
	CraterRadius    float64 `mapstructure:"craterRadius"`
	MaxFlightTicks  int     `mapstructure:"maxFlightTicks"`
	PathSampleEvery int     `mapstructure:"pathSampleEvery"`
}

// TerrainConfig controls heightmap generation.
type TerrainConfig struct {
	Slope         float64 `mapstructure:"slope"`
	Steps         int     `mapstructure:"steps"`
	MinHeightFrac float64 `mapstructure:"minHeightFrac"`
	MaxHeightFrac float64 `mapstructure:"maxHeightFrac"`
	TankInsetX    float64 `mapstructure:"tankInsetX"`
}

// ControlConfig bounds the human inputs.
type ControlConfig struct {
	AimStep    float64 `mapstructure:"aimStep"`
	ForceStep  float64 `mapstructure:"forceStep"`
	MaxAngle   float64 `mapstructure:"maxAngle"`
	MaxForce   float64 `mapstructure:"maxForce"`
	StartAngle float64 `mapstructure:"startAngle"`
	StartForce float64 `mapstructure:"startForce"`
}

// OpponentConfig tunes the shot-selection search.
type OpponentConfig struct {
	BaseSamples int     `mapstructure:"baseSamples"`
	AngleSpan   float64 `mapstructure:"angleSpan"`
	ForceMin    float64 `mapstructure:"forceMin"`
	ForceMax    float64 `mapstructure:"forceMax"`
}

// Config is the full set of duel parameters.
type Config struct {
	Width    int            `mapstructure:"width"`
	Height   int            `mapstructure:"height"`
	Physics  PhysicsConfig  `mapstructure:"physics"`
	Terrain  TerrainConfig  `mapstructure:"terrain"`
	Controls ControlConfig  `mapstructure:"controls"`
	Opponent OpponentConfig `mapstructure:"opponent"`
}

// DefaultConfig returns the classic 640x480 duel.
func DefaultConfig() Config {
	return Config{
		Width:  640,
		Height: 480,
		Physics: PhysicsConfig{
			Gravity:         0.25,
			WindCoefficient: 0.025,
			WindMax:         1,
			TankSize:        17,
			HitMargin:       2,
			BottomMargin:    2,
			ProjectileProbe: 4,
			CraterRadius:    30,
			MaxFlightTicks:  5000,
			PathSampleEvery: 20,
		},
		Terrain: TerrainConfig{
			Slope:         50,
			Steps:         40,
			MinHeightFrac: 0.1,
			MaxHeightFrac: 0.6,
			TankInsetX:    50,
		},
		Controls: ControlConfig{
			AimStep:    0.02,
			ForceStep:  0.5,
			MaxAngle:   math.Pi / 2,
			MaxForce:   40,
			StartAngle: 0.4,
			StartForce: 10,
		},
		Opponent: OpponentConfig{
			BaseSamples: 5,
			AngleSpan:   1,
			ForceMin:    0,
			ForceMax:    30,
		},
	}
}

// Validate rejects configurations the simulation cannot run with. A
// non-positive gravity would let a projectile fly forever.
func (c Config) Validate() error {
	if !(c.Physics.Gravity > 0) {
		return fmt.Errorf("physics.gravity=%v: %w", c.Physics.Gravity, ErrNonPositiveGravity)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrFieldSize)
	}
	if c.Physics.TankSize <= 0 {
		return fmt.Errorf("physics.tankSize=%v: %w", c.Physics.TankSize, ErrTankSize)
	}
	if c.Physics.ProjectileProbe <= 0 {
		return fmt.Errorf("physics.projectileProbe=%v: %w", c.Physics.ProjectileProbe, ErrProbeSize)
	}
	if c.Physics.MaxFlightTicks <= 0 {
		return fmt.Errorf("physics.maxFlightTicks=%d: %w", c.Physics.MaxFlightTicks, ErrFlightTicks)
	}
	if c.Opponent.BaseSamples < 1 {
		return fmt.Errorf("opponent.baseSamples=%d: %w", c.Opponent.BaseSamples, ErrBaseSamples)
	}
	if c.Opponent.ForceMax < c.Opponent.ForceMin {
		return fmt.Errorf("opponent force [%v,%v]: %w", c.Opponent.ForceMin, c.Opponent.ForceMax, ErrForceRange)
	}
	// Candidates must survive Aim's clamp unchanged or the committed shot
	// differs from the predicted one.
	if c.Opponent.ForceMin < 0 || c.Opponent.ForceMax > c.Controls.MaxForce {
		return fmt.Errorf("opponent force [%v,%v] outside [0,%v]: %w",
			c.Opponent.ForceMin, c.Opponent.ForceMax, c.Controls.MaxForce, ErrOpponentReach)
	}
	if c.Opponent.AngleSpan < 0 || c.Opponent.AngleSpan > c.Controls.MaxAngle {
		return fmt.Errorf("opponent.angleSpan=%v outside [0,%v]: %w",
			c.Opponent.AngleSpan, c.Controls.MaxAngle, ErrOpponentReach)
	}
	t := c.Terrain
	if t.MinHeightFrac < 0 || t.MaxHeightFrac > 1 || t.MinHeightFrac > t.MaxHeightFrac {
		return fmt.Errorf("terrain [%v,%v]: %w", t.MinHeightFrac, t.MaxHeightFrac, ErrTerrainProfile)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
