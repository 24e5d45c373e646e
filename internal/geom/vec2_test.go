package geom

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearVec(a, b Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestVec2_AddSubScale(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)
	if got := a.Add(b); got != V(4, -2) {
		t.Fatalf("Add = %v, want (4,-2)", got)
	}
	if got := a.AddXY(3, -4); got != V(4, -2) {
		t.Fatalf("AddXY = %v, want (4,-2)", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Fatalf("Sub = %v, want (-2,6)", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Fatalf("Scale = %v, want (2,4)", got)
	}
	if got := a.ScaleXY(2, 3); got != V(2, 6) {
		t.Fatalf("ScaleXY = %v, want (2,6)", got)
	}
	if a != V(1, 2) {
		t.Fatalf("value methods must not modify the receiver, got %v", a)
	}
}

func TestVec2_Dot(t *testing.T) {
	if got := V(1, 2).Dot(V(3, 4)); got != 11 {
		t.Fatalf("Dot = %f, want 11", got)
	}
	if got := V(1, 2).DotXY(3, 4); got != 11 {
		t.Fatalf("DotXY = %f, want 11", got)
	}
}

func TestVec2_RotateQuarterTurn(t *testing.T) {
	got := V(1, 0).Rotate(math.Pi / 2)
	if !nearVec(got, V(0, 1)) {
		t.Fatalf("Rotate(pi/2) of (1,0) = %v, want (0,1)", got)
	}
}

// Launch template: (0, force) rotated by angle+pi points up-screen and to the
// right for positive angles.
func TestVec2_RotateLaunchTemplate(t *testing.T) {
	got := V(0, 10).Rotate(0.4 + math.Pi)
	if got.X <= 0 || got.Y >= 0 {
		t.Fatalf("launch velocity = %v, want +x and -y", got)
	}
	want := V(10*math.Sin(0.4), -10*math.Cos(0.4))
	if !nearVec(got, want) {
		t.Fatalf("launch velocity = %v, want %v", got, want)
	}
}

func TestVec2_RotateSinCosMatchesRotate(t *testing.T) {
	v := V(3, -7)
	a := 1.234
	if !nearVec(v.Rotate(a), v.RotateSinCos(math.Sin(a), math.Cos(a))) {
		t.Fatal("RotateSinCos disagrees with Rotate")
	}
}

func TestVec2_NormalizeZeroIsNoop(t *testing.T) {
	z := Vec2{}
	if got := z.Normalize(); !got.IsZero() {
		t.Fatalf("Normalize(0) = %v, want zero", got)
	}
	z.NormalizeAssign()
	if !z.IsZero() {
		t.Fatalf("NormalizeAssign(0) = %v, want zero", z)
	}
}

func TestVec2_LengthAndDistance(t *testing.T) {
	v := V(3, 4)
	if v.Len2() != 25 || v.Len() != 5 {
		t.Fatalf("Len2/Len = %f/%f, want 25/5", v.Len2(), v.Len())
	}
	if got := V(1, 1).Dist2(V(4, 5)); got != 25 {
		t.Fatalf("Dist2 = %f, want 25", got)
	}
	if got := V(1, 1).Dist2XY(4, 5); got != 25 {
		t.Fatalf("Dist2XY = %f, want 25", got)
	}
	if got := V(1, 1).DistXY(4, 5); got != 5 {
		t.Fatalf("DistXY = %f, want 5", got)
	}
}

func TestVec2_Lerp(t *testing.T) {
	got := V(0, 0).Lerp(V(10, -10), 0.25)
	if !nearVec(got, V(2.5, -2.5)) {
		t.Fatalf("Lerp = %v, want (2.5,-2.5)", got)
	}
}

func TestVec2_InPlaceMatchesValueForm(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(-1e3, 1e3).Draw(t, "x")
		y := rapid.Float64Range(-1e3, 1e3).Draw(t, "y")
		ox := rapid.Float64Range(-1e3, 1e3).Draw(t, "ox")
		oy := rapid.Float64Range(-1e3, 1e3).Draw(t, "oy")
		a := rapid.Float64Range(-10, 10).Draw(t, "angle")
		v, o := V(x, y), V(ox, oy)

		m := v
		m.AddAssign(o).ScaleAssign(0.5).RotateAssign(a)
		want := v.Add(o).Scale(0.5).Rotate(a)
		if !nearVec(m, want) {
			t.Fatalf("in-place chain %v != value chain %v", m, want)
		}

		n := v
		n.NormalizeAssign()
		if !nearVec(n, v.Normalize()) {
			t.Fatalf("NormalizeAssign %v != Normalize %v", n, v.Normalize())
		}
		if v.Len2() > 1e-12 && math.Abs(v.Normalize().Len()-1) > 1e-9 {
			t.Fatalf("normalized length = %f, want 1", v.Normalize().Len())
		}
	})
}

func TestVec2_RotatePreservesLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := V(rapid.Float64Range(-100, 100).Draw(t, "x"), rapid.Float64Range(-100, 100).Draw(t, "y"))
		a := rapid.Float64Range(-2*math.Pi, 2*math.Pi).Draw(t, "angle")
		if d := math.Abs(v.Rotate(a).Len() - v.Len()); d > 1e-9 {
			t.Fatalf("rotation changed length by %g", d)
		}
	})
}
