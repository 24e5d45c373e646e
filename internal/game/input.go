package game

import (
	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key repeat: first step on press, then every repeatInterval frames once the
// key has been held for repeatDelay frames.
const (
	repeatDelay    = 15
	repeatInterval = 3
)

// intents is one frame of player input, decoupled from Ebiten so it can be
// applied in tests.
type intents struct {
	aim           float64
	force         float64
	fire          bool
	togglePreview bool
	copyLog       bool
	restart       bool
}

func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

func readIntents(c duel.ControlConfig) intents {
	var in intents
	if repeating(ebiten.KeyArrowUp) {
		in.aim += c.AimStep
	}
	if repeating(ebiten.KeyArrowDown) {
		in.aim -= c.AimStep
	}
	if repeating(ebiten.KeyArrowRight) {
		in.force += c.ForceStep
	}
	if repeating(ebiten.KeyArrowLeft) {
		in.force -= c.ForceStep
	}
	in.fire = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.togglePreview = inpututil.IsKeyJustPressed(ebiten.KeyT)
	in.copyLog = inpututil.IsKeyJustPressed(ebiten.KeyC)
	in.restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	return in
}
