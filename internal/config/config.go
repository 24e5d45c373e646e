// Package config loads duel settings from an optional JSON file and DUEL_*
// environment variables on top of the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/spf13/viper"
)

// FileName is looked up in the directory passed to Load.
const FileName = "duel.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. DUEL_PHYSICS_GRAVITY.
const EnvPrefix = "DUEL"

// Settings is everything a binary needs to start a duel.
type Settings struct {
	LogLevel string      `mapstructure:"logLevel"`
	Duel     duel.Config `mapstructure:",squash"`
}

// Load reads configuration from configDir and the environment. A missing
// file is not an error; a malformed one is. The result is validated.
func Load(configDir string) (Settings, error) {
	v := viper.New()
	setDefaults(v, duel.DefaultConfig())

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Duel.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper, c duel.Config) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("width", c.Width)
	v.SetDefault("height", c.Height)

	v.SetDefault("physics.gravity", c.Physics.Gravity)
	v.SetDefault("physics.windCoefficient", c.Physics.WindCoefficient)
	v.SetDefault("physics.windMax", c.Physics.WindMax)
	v.SetDefault("physics.tankSize", c.Physics.TankSize)
	v.SetDefault("physics.hitMargin", c.Physics.HitMargin)
	v.SetDefault("physics.bottomMargin", c.Physics.BottomMargin)
	v.SetDefault("physics.projectileProbe", c.Physics.ProjectileProbe)
	v.SetDefault("physics.craterRadius", c.Physics.CraterRadius)
	v.SetDefault("physics.maxFlightTicks", c.Physics.MaxFlightTicks)
	v.SetDefault("physics.pathSampleEvery", c.Physics.PathSampleEvery)

	v.SetDefault("terrain.slope", c.Terrain.Slope)
	v.SetDefault("terrain.steps", c.Terrain.Steps)
	v.SetDefault("terrain.minHeightFrac", c.Terrain.MinHeightFrac)
	v.SetDefault("terrain.maxHeightFrac", c.Terrain.MaxHeightFrac)
	v.SetDefault("terrain.tankInsetX", c.Terrain.TankInsetX)

	v.SetDefault("controls.aimStep", c.Controls.AimStep)
	v.SetDefault("controls.forceStep", c.Controls.ForceStep)
	v.SetDefault("controls.maxAngle", c.Controls.MaxAngle)
	v.SetDefault("controls.maxForce", c.Controls.MaxForce)
	v.SetDefault("controls.startAngle", c.Controls.StartAngle)
	v.SetDefault("controls.startForce", c.Controls.StartForce)

	v.SetDefault("opponent.baseSamples", c.Opponent.BaseSamples)
	v.SetDefault("opponent.angleSpan", c.Opponent.AngleSpan)
	v.SetDefault("opponent.forceMin", c.Opponent.ForceMin)
	v.SetDefault("opponent.forceMax", c.Opponent.ForceMax)
}
