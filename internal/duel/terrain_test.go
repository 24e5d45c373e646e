package duel

import (
	"math"
	"testing"

	"github.com/Garsondee/Artillery-Duel/internal/geom"
	"pgregory.net/rapid"
)

func flatField(w, h int, height float64) *Field {
	return NewProfileField(w, h, func(int) float64 { return height })
}

func TestField_ScreenFieldConversion(t *testing.T) {
	f := flatField(8, 20, 10)

	if got := f.ToRow(0); got != 19 {
		t.Fatalf("ToRow(0) = %d, want 19", got)
	}
	if got := f.ToRow(19.7); got != 0 {
		t.Fatalf("ToRow(19.7) = %d, want 0", got)
	}
	for y := 0; y < 20; y++ {
		if got := f.ToScreenY(f.ToRow(float64(y) + 0.5)); got != y {
			t.Fatalf("round trip of y=%d gave %d", y, got)
		}
	}

	// Rows 0..9 are solid, which is screen y 10..19.
	if !f.SolidAt(3, 9) || f.SolidAt(3, 10) {
		t.Fatalf("field-space boundary wrong: row9=%v row10=%v", f.SolidAt(3, 9), f.SolidAt(3, 10))
	}
	if !f.IsSolid(3, 19) || !f.IsSolid(3, 10.2) {
		t.Fatal("expected ground at the bottom of the screen")
	}
	if f.IsSolid(3, 9.9) || f.IsSolid(3, 0) {
		t.Fatal("expected sky above the surface")
	}
	if got := f.SurfaceRow(3); got != 9 {
		t.Fatalf("SurfaceRow = %d, want 9", got)
	}
}

func TestField_OutOfBoundsIsEmpty(t *testing.T) {
	f := flatField(8, 8, 8)
	for _, p := range [][2]float64{{-1, 4}, {8, 4}, {4, -0.5}, {4, 8}, {1e9, 1e9}} {
		if f.IsSolid(p[0], p[1]) {
			t.Fatalf("IsSolid(%v,%v) = true outside the field", p[0], p[1])
		}
	}
	if f.SolidAt(-1, 0) || f.SolidAt(0, 8) {
		t.Fatal("SolidAt outside the field should be false")
	}
	if got := f.SurfaceRow(99); got != -1 {
		t.Fatalf("SurfaceRow outside = %d, want -1", got)
	}
}

func TestGenerateField_HeightsWithinBand(t *testing.T) {
	tc := DefaultConfig().Terrain
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		w := rapid.IntRange(1, 400).Draw(t, "w")
		h := rapid.IntRange(10, 300).Draw(t, "h")

		f := GenerateField(w, h, tc, NewRand(seed))
		lo, hi := float64(h)*tc.MinHeightFrac, float64(h)*tc.MaxHeightFrac
		for col := 0; col < w; col++ {
			if ph := f.ProfileHeight(col); ph < lo-1e-9 || ph > hi+1e-9 {
				t.Fatalf("col %d height %.3f outside [%.1f, %.1f]", col, ph, lo, hi)
			}
		}
	})
}

func TestGenerateField_Deterministic(t *testing.T) {
	tc := DefaultConfig().Terrain
	a := GenerateField(320, 240, tc, NewRand(7))
	b := GenerateField(320, 240, tc, NewRand(7))
	if !a.Equal(b) {
		t.Fatal("same seed produced different terrain")
	}
}

func TestIsSupported_NeverAboveTerrain(t *testing.T) {
	const w, h = 200, 150
	tc := DefaultConfig().Terrain
	rapid.Check(t, func(t *rapid.T) {
		f := GenerateField(w, h, tc, NewRand(rapid.Int64().Draw(t, "seed")))
		size := rapid.Float64Range(1, 30).Draw(t, "size")
		top := float64(h) - math.Ceil(f.MaxProfileHeight()) - size/2 - 1
		pos := geom.V(
			rapid.Float64Range(-50, w+50).Draw(t, "x"),
			rapid.Float64Range(-100, top).Draw(t, "y"),
		)
		if IsSupported(pos, size, f) {
			t.Fatalf("supported at %v (size %.1f) above terrain peak %.1f", pos, size, f.MaxProfileHeight())
		}
	})
}

func TestIsSupported_RestsOnSurface(t *testing.T) {
	f := flatField(100, 100, 20) // surface at screen y 80
	tank := 17.0

	if IsSupported(geom.V(50, 71), tank, f) {
		t.Fatal("tank with its base above the surface should not be supported")
	}
	if !IsSupported(geom.V(50, 72), tank, f) {
		t.Fatal("tank whose probe reaches y=80 should be supported")
	}
	if !IsSupported(geom.V(2, 90), tank, f) {
		t.Fatal("probe clipped by the left edge should still find ground")
	}
	if IsSupported(geom.V(-20, 90), tank, f) {
		t.Fatal("probe entirely left of the field should find nothing")
	}
}

func TestDestroy_ClearsDiscOnly(t *testing.T) {
	const w, h = 64, 48
	rapid.Check(t, func(t *rapid.T) {
		f := GenerateField(w, h, DefaultConfig().Terrain, NewRand(rapid.Int64().Draw(t, "seed")))
		before := f.Clone()
		c := geom.V(
			rapid.Float64Range(-20, w+20).Draw(t, "cx"),
			rapid.Float64Range(-20, h+20).Draw(t, "cy"),
		)
		r := rapid.Float64Range(0, 40).Draw(t, "r")

		f.Destroy(c, r)

		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				got := f.IsSolid(float64(x), float64(y))
				if c.Dist2XY(float64(x), float64(y)) < r*r {
					if got {
						t.Fatalf("cell (%d,%d) inside disc %v r=%.2f still solid", x, y, c, r)
					}
				} else if want := before.IsSolid(float64(x), float64(y)); got != want {
					t.Fatalf("cell (%d,%d) outside disc changed %v -> %v", x, y, want, got)
				}
			}
		}
	})
}

func TestDestroy_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := GenerateField(80, 60, DefaultConfig().Terrain, NewRand(rapid.Int64().Draw(t, "seed")))
		c := geom.V(rapid.Float64Range(0, 80).Draw(t, "cx"), rapid.Float64Range(0, 60).Draw(t, "cy"))
		r := rapid.Float64Range(0, 30).Draw(t, "r")

		f.Destroy(c, r)
		once := f.Clone()
		v := f.Version()
		if n := f.Destroy(c, r); n != 0 {
			t.Fatalf("second destroy changed %d cells", n)
		}
		if !f.Equal(once) || f.Version() != v {
			t.Fatal("second destroy altered the field")
		}
	})
}

func TestDestroy_BumpsVersion(t *testing.T) {
	f := flatField(100, 100, 50)
	if n := f.Destroy(geom.V(50, 10), 5); n != 0 || f.Version() != 0 {
		t.Fatalf("crater in the sky changed %d cells, version %d", n, f.Version())
	}
	if n := f.Destroy(geom.V(50, 50), 10); n == 0 {
		t.Fatal("crater on the surface removed nothing")
	}
	if f.Version() != 1 {
		t.Fatalf("version = %d, want 1", f.Version())
	}
	if f.IsSolid(50, 55) {
		t.Fatal("crater centre still solid")
	}
}

func TestField_RasterOrientation(t *testing.T) {
	f := flatField(4, 4, 1)
	img := f.Raster(nil, DefaultPalette)
	if got := img.RGBAAt(0, 3); got != DefaultPalette.Solid {
		t.Fatalf("bottom-left pixel = %v, want solid", got)
	}
	if got := img.RGBAAt(0, 0); got != DefaultPalette.Empty {
		t.Fatalf("top-left pixel = %v, want empty", got)
	}
	if again := f.Raster(img, DefaultPalette); again != img {
		t.Fatal("raster with matching bounds should reuse dst")
	}
}
