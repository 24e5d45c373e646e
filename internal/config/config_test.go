package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, duel.DefaultConfig(), s.Duel)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := writeConfig(t, `{
		"logLevel": "debug",
		"width": 800,
		"physics": { "gravity": 0.5, "craterRadius": 12 },
		"opponent": { "baseSamples": 9 }
	}`)

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 800, s.Duel.Width)
	assert.Equal(t, 480, s.Duel.Height)
	assert.Equal(t, 0.5, s.Duel.Physics.Gravity)
	assert.Equal(t, 12.0, s.Duel.Physics.CraterRadius)
	assert.Equal(t, 17.0, s.Duel.Physics.TankSize)
	assert.Equal(t, 9, s.Duel.Opponent.BaseSamples)
	assert.Equal(t, 30.0, s.Duel.Opponent.ForceMax)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, `{ "physics": { "gravity": 0.5 } }`)
	t.Setenv("DUEL_PHYSICS_GRAVITY", "0.75")
	t.Setenv("DUEL_LOGLEVEL", "warn")

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 0.75, s.Duel.Physics.Gravity)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, `{ "physics": `)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := writeConfig(t, `{ "physics": { "gravity": -1 } }`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, duel.ErrNonPositiveGravity), "got %v", err)
}
