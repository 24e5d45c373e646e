package duel

import (
	"math"

	"github.com/Garsondee/Artillery-Duel/internal/geom"
)

// IsSupported reports whether any solid cell lies inside the axis-aligned
// square of side size centred on the screen-space position. The same probe
// serves tank ground contact and projectile impact, at different sizes.
func IsSupported(pos geom.Vec2, size float64, f *Field) bool {
	hs := size * 0.5
	minX := int(math.Max(0, math.Floor(pos.X-hs)))
	minY := int(math.Max(0, math.Floor(pos.Y-hs)))
	maxX := math.Min(float64(f.Width), pos.X+hs)
	maxY := math.Min(float64(f.Height), pos.Y+hs)

	for i := minX; float64(i) < maxX; i++ {
		for j := minY; float64(j) < maxY; j++ {
			if f.cellSolid(i, j) {
				return true
			}
		}
	}
	return false
}
