// Package game is the Ebiten frontend: it reads the keyboard, ticks the duel
// once per frame and draws the latest snapshot.
package game

import (
	"fmt"
	"image"

	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// statusFrames is how long a HUD status message stays up (~2s at 60 TPS).
const statusFrames = 120

type Game struct {
	duel   *duel.Duel
	log    zerolog.Logger
	width  int
	height int

	// Terrain is uploaded to the GPU only when the field changes.
	terrain    *ebiten.Image
	raster     *image.RGBA
	terrainKey terrainKey

	preview     previewMemo
	showPreview bool

	status      string
	statusTicks int

	writeClipboard func(string) error
}

type terrainKey struct {
	round   string
	version int
}

// New wraps a running duel.
func New(d *duel.Duel, log zerolog.Logger) *Game {
	cfg := d.Config()
	return &Game{
		duel:           d,
		log:            log,
		width:          cfg.Width,
		height:         cfg.Height,
		showPreview:    true,
		terrainKey:     terrainKey{version: -1},
		writeClipboard: clipboard.WriteAll,
	}
}

func (g *Game) Update() error {
	g.apply(readIntents(g.duel.Config().Controls))

	res := g.duel.Tick()
	if res.RoundOver {
		s := g.duel.Scores()
		g.flash(fmt.Sprintf("Round %d over  A %d : %d B", res.Round, s[duel.SideA], s[duel.SideB]))
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// apply performs one frame's worth of player intents.
func (g *Game) apply(in intents) {
	if in.aim != 0 {
		g.duel.AdjustAim(in.aim)
	}
	if in.force != 0 {
		g.duel.AdjustForce(in.force)
	}
	if in.fire {
		g.duel.Fire()
	}
	if in.togglePreview {
		g.showPreview = !g.showPreview
	}
	if in.restart {
		g.duel.StartRound()
		g.flash("Round restarted")
	}
	if in.copyLog {
		g.copyLog()
	}
}

func (g *Game) copyLog() {
	d := g.duel
	text := d.SimLog().Format() + d.SimLog().Summary(d.Scores(), d.Rounds())
	if err := g.writeClipboard(text); err != nil {
		g.log.Error().Err(err).Msg("copy event log to clipboard")
		g.flash("Clipboard unavailable")
		return
	}
	g.log.Info().Int("entries", len(d.SimLog().Entries())).Msg("event log copied")
	g.flash("Event log copied")
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusTicks = statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.duel.Snapshot()

	g.drawTerrain(screen)
	if g.showPreview && snap.Turn == duel.HumanSide && !snap.HasProjectile && !g.duel.Autopilot(duel.HumanSide) {
		g.drawPreview(screen, g.preview.get(g.duel, snap))
	}
	for _, t := range snap.Tanks {
		g.drawTank(screen, t)
	}
	if snap.HasProjectile {
		g.drawProjectile(screen, snap)
	}
	g.drawHUD(screen, snap)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
