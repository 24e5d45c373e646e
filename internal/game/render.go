package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/Garsondee/Artillery-Duel/internal/geom"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	barrelLength = 22
	barrelWidth  = 4
	shellSize    = 4
)

var (
	tankColors = [2]color.RGBA{
		duel.SideA: {R: 220, G: 40, B: 40, A: 255},
		duel.SideB: {R: 40, G: 90, B: 230, A: 255},
	}
	shellColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	previewColor = color.RGBA{R: 255, G: 80, B: 80, A: 110}
	hudText      = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	hudPanel     = color.RGBA{R: 6, G: 4, B: 20, A: 200}
	hudBorder    = color.RGBA{R: 60, G: 60, B: 110, A: 180}
)

func (g *Game) drawTerrain(screen *ebiten.Image) {
	r := g.duel.Round()
	key := terrainKey{round: r.ID.String(), version: r.Field.Version()}
	if g.terrain == nil {
		g.terrain = ebiten.NewImage(r.Field.Width, r.Field.Height)
	}
	if key != g.terrainKey {
		g.raster = r.Field.Raster(g.raster, duel.DefaultPalette)
		g.terrain.WritePixels(g.raster.Pix)
		g.terrainKey = key
	}
	screen.DrawImage(g.terrain, nil)
}

// previewKey is everything the aim preview depends on.
type previewKey struct {
	round   int
	pos     geom.Vec2
	angle   float64
	force   float64
	wind    float64
	version int
}

// previewMemo caches the last aim prediction so the trajectory is only
// re-simulated when the aim, wind or terrain changes.
type previewMemo struct {
	key    previewKey
	valid  bool
	pred   duel.Prediction
	misses int
}

func (m *previewMemo) get(d *duel.Duel, s duel.Snapshot) duel.Prediction {
	a := s.Tanks[duel.HumanSide]
	k := previewKey{
		round:   s.Round,
		pos:     a.Position,
		angle:   a.AimAngle,
		force:   a.LaunchForce,
		wind:    s.Wind,
		version: s.FieldVersion,
	}
	if m.valid && m.key == k {
		return m.pred
	}
	m.key, m.valid = k, true
	m.pred = d.AimPreview()
	m.misses++
	return m.pred
}

func (g *Game) drawPreview(screen *ebiten.Image, p duel.Prediction) {
	for i := 1; i < len(p.Path); i++ {
		a, b := p.Path[i-1], p.Path[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, previewColor, true)
	}
	vector.StrokeCircle(screen, float32(p.Landing.X), float32(p.Landing.Y), 5, 1, previewColor, true)
}

func (g *Game) drawTank(screen *ebiten.Image, t duel.TankView) {
	c := tankColors[t.Side]
	tip := t.Barrel(barrelLength)
	vector.StrokeLine(screen, float32(t.Position.X), float32(t.Position.Y), float32(tip.X), float32(tip.Y), barrelWidth, c, false)

	size := float32(g.duel.Config().Physics.TankSize)
	vector.FillRect(screen, float32(t.Position.X)-size/2, float32(t.Position.Y)-size/2, size, size, c, false)
}

func (g *Game) drawProjectile(screen *ebiten.Image, s duel.Snapshot) {
	p := s.Projectile
	vector.FillRect(screen, float32(p.X)-shellSize/2, float32(p.Y)-shellSize/2, shellSize, shellSize, shellColor, false)
}

func (g *Game) hudLines(s duel.Snapshot) []string {
	a := s.Tanks[duel.HumanSide]
	turn := "your turn"
	switch {
	case s.HasProjectile:
		turn = "shell in flight"
	case s.Turn != duel.HumanSide || g.duel.Autopilot(duel.HumanSide):
		turn = "computer aiming"
	}
	lines := []string{
		fmt.Sprintf("Angle: %.2f", a.AimAngle),
		fmt.Sprintf("Force: %.2f", a.LaunchForce),
		fmt.Sprintf("Wind : %.2f", s.Wind),
		fmt.Sprintf("Score: A %d  B %d", s.Tanks[duel.SideA].Score, s.Tanks[duel.SideB].Score),
		fmt.Sprintf("Round %d  %s", s.Round, turn),
	}
	if s.Best.Trials > 0 {
		// Best is cleared at every turn change, so it belongs to the side on turn.
		lines = append(lines, fmt.Sprintf("%s tried %d shots", s.Turn, s.Best.Trials))
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image, s duel.Snapshot) {
	const lineH = 16
	const padX = 6
	const padY = 4
	face := basicfont.Face7x13

	lines := g.hudLines(s)
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*face.Advance + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, 8, 8, boxW, boxH, hudPanel, false)
	vector.StrokeRect(screen, 8, 8, boxW, boxH, 1, hudBorder, false)
	for i, l := range lines {
		text.Draw(screen, l, face, 8+padX, 8+padY+face.Ascent+i*lineH, hudText)
	}

	if g.statusTicks > 0 {
		x := (g.width - len(g.status)*face.Advance) / 2
		text.Draw(screen, g.status, face, x, 40, color.White)
	}

	ebitenutil.DebugPrintAt(screen, "arrows aim/force  SPACE fire  T preview  C copy log  R restart", 8, g.height-18)
}
