package duel

import (
	"image"
	"image/color"
	"math"

	"github.com/Garsondee/Artillery-Duel/internal/geom"
)

// Material is the content of one terrain cell.
type Material uint8

const (
	Empty Material = iota
	Solid
)

// Field is the destructible terrain: one Material per pixel.
//
// Cells are stored in field space, row-major with row 0 at the bottom edge,
// so a row index is an elevation. Every public query taking float coordinates
// takes screen space (y grows downward from the top) and converts through
// ToRow. Coordinates outside the field are Empty.
type Field struct {
	Width   int
	Height  int
	cells   []Material // index = row*Width + col
	profile []float64  // generated column heights, elevation units
	version int
}

// NewField returns an all-empty field.
func NewField(w, h int) *Field {
	return &Field{
		Width:   w,
		Height:  h,
		cells:   make([]Material, w*h),
		profile: make([]float64, w),
	}
}

// NewProfileField returns a field whose column col is solid for every row
// strictly below heights(col).
func NewProfileField(w, h int, heights func(col int) float64) *Field {
	f := NewField(w, h)
	for col := 0; col < w; col++ {
		f.fillColumn(col, heights(col))
	}
	return f
}

// GenerateField builds the random piecewise-linear skyline used at the start
// of every round. Heights stay within [MinHeightFrac·h, MaxHeightFrac·h].
func GenerateField(w, h int, tc TerrainConfig, rng Rand) *Field {
	minY := float64(h) * tc.MinHeightFrac
	maxY := float64(h) * tc.MaxHeightFrac
	perturb := func(from float64) float64 {
		s := tc.Slope * rng.Float64()
		return clamp(math.Floor(from+s-rng.Float64()*s*2), minY, maxY)
	}

	steps := tc.Steps
	if steps < 1 {
		steps = 1
	}
	seg := w / steps
	if seg < 1 {
		seg = 1
	}

	f := NewField(w, h)
	y := perturb(float64(h) * tc.MaxHeightFrac * rng.Float64())
	last := y
	for col := 0; col < w; col++ {
		k := col % seg
		if k == 0 {
			last = y
			y = perturb(last)
		}
		f.fillColumn(col, last+(y-last)/float64(seg)*float64(k))
	}
	return f
}

func (f *Field) fillColumn(col int, height float64) {
	f.profile[col] = height
	for row := 0; row < f.Height; row++ {
		m := Empty
		if float64(row) < height {
			m = Solid
		}
		f.cells[row*f.Width+col] = m
	}
}

func (f *Field) inBounds(col, row int) bool {
	return col >= 0 && col < f.Width && row >= 0 && row < f.Height
}

// ToRow converts a screen-space y to a field-space row.
func (f *Field) ToRow(y float64) int {
	return f.Height - 1 - int(math.Floor(y))
}

// ToScreenY converts a field-space row back to the screen-space y of the
// cell's top edge.
func (f *Field) ToScreenY(row int) int {
	return f.Height - 1 - row
}

// SolidAt reports whether the field-space cell (col, row) is solid.
func (f *Field) SolidAt(col, row int) bool {
	if !f.inBounds(col, row) {
		return false
	}
	return f.cells[row*f.Width+col] == Solid
}

// IsSolid reports whether the cell under the screen-space point (x, y) is solid.
func (f *Field) IsSolid(x, y float64) bool {
	if x < 0 || y < 0 || x >= float64(f.Width) || y >= float64(f.Height) {
		return false
	}
	return f.SolidAt(int(math.Floor(x)), f.ToRow(y))
}

// cellSolid is IsSolid for integer screen coordinates.
func (f *Field) cellSolid(col, screenY int) bool {
	return f.SolidAt(col, f.Height-1-screenY)
}

// Destroy carves a crater: every cell whose integer screen coordinate lies
// strictly within radius of center becomes Empty. Only the disc's bounding box
// is visited. Returns how many cells changed.
func (f *Field) Destroy(center geom.Vec2, radius float64) int {
	if radius <= 0 {
		return 0
	}
	minX := int(math.Max(0, math.Floor(center.X-radius)))
	minY := int(math.Max(0, math.Floor(center.Y-radius)))
	maxX := math.Min(float64(f.Width), center.X+radius)
	maxY := math.Min(float64(f.Height), center.Y+radius)
	r2 := radius * radius

	changed := 0
	for i := minX; float64(i) < maxX; i++ {
		dx := float64(i) - center.X
		dx2 := dx * dx
		for j := minY; float64(j) < maxY; j++ {
			dy := float64(j) - center.Y
			if dx2+dy*dy >= r2 {
				continue
			}
			idx := (f.Height-1-j)*f.Width + i
			if f.cells[idx] == Solid {
				f.cells[idx] = Empty
				changed++
			}
		}
	}
	if changed > 0 {
		f.version++
	}
	return changed
}

// Version increments every time Destroy changes at least one cell.
func (f *Field) Version() int { return f.version }

// ProfileHeight returns the generated height of column col, ignoring craters.
func (f *Field) ProfileHeight(col int) float64 {
	if col < 0 || col >= f.Width {
		return 0
	}
	return f.profile[col]
}

// MaxProfileHeight returns the tallest generated column height.
func (f *Field) MaxProfileHeight() float64 {
	m := 0.0
	for _, h := range f.profile {
		if h > m {
			m = h
		}
	}
	return m
}

// SurfaceRow returns the highest solid row in column col, or -1.
func (f *Field) SurfaceRow(col int) int {
	for row := f.Height - 1; row >= 0; row-- {
		if f.SolidAt(col, row) {
			return row
		}
	}
	return -1
}

// Clone returns an independent copy.
func (f *Field) Clone() *Field {
	c := &Field{
		Width:   f.Width,
		Height:  f.Height,
		cells:   make([]Material, len(f.cells)),
		profile: make([]float64, len(f.profile)),
		version: f.version,
	}
	copy(c.cells, f.cells)
	copy(c.profile, f.profile)
	return c
}

// Equal reports whether both fields have identical dimensions and cells.
func (f *Field) Equal(o *Field) bool {
	if f.Width != o.Width || f.Height != o.Height {
		return false
	}
	for i := range f.cells {
		if f.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Palette maps materials to raster colours.
type Palette struct {
	Solid color.RGBA
	Empty color.RGBA
}

// DefaultPalette is green ground on a night sky.
var DefaultPalette = Palette{
	Solid: color.RGBA{R: 90, G: 175, B: 31, A: 255},
	Empty: color.RGBA{R: 4, G: 0, B: 32, A: 255},
}

// Raster renders the field in screen orientation. dst is reused when it has
// the field's bounds; otherwise a new image is allocated.
func (f *Field) Raster(dst *image.RGBA, pal Palette) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != f.Width || dst.Bounds().Dy() != f.Height {
		dst = image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	}
	for y := 0; y < f.Height; y++ {
		row := f.Height - 1 - y
		off := y * dst.Stride
		for x := 0; x < f.Width; x++ {
			c := pal.Empty
			if f.cells[row*f.Width+x] == Solid {
				c = pal.Solid
			}
			p := off + x*4
			dst.Pix[p] = c.R
			dst.Pix[p+1] = c.G
			dst.Pix[p+2] = c.B
			dst.Pix[p+3] = c.A
		}
	}
	return dst
}
