// Package geom holds the 2D vector type shared by the simulation and the frontend.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a real-valued 2D vector.
//
// Value-receiver methods never modify the receiver and return a new Vec2.
// The *Assign methods mutate the receiver in place and return it for chaining.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) mgl() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

func fromMgl(m mgl64.Vec2) Vec2 { return Vec2{X: m[0], Y: m[1]} }

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// AddXY returns v+(x,y).
func (v Vec2) AddXY(x, y float64) Vec2 { return Vec2{X: v.X + x, Y: v.Y + y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// SubXY returns v-(x,y).
func (v Vec2) SubXY(x, y float64) Vec2 { return Vec2{X: v.X - x, Y: v.Y - y} }

// Scale returns v scaled uniformly by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

// ScaleXY returns v scaled per axis.
func (v Vec2) ScaleXY(fx, fy float64) Vec2 { return Vec2{X: v.X * fx, Y: v.Y * fy} }

// Dot returns the dot product v·o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// DotXY returns the dot product v·(x,y).
func (v Vec2) DotXY(x, y float64) float64 { return v.X*x + v.Y*y }

// Rotate returns v rotated counter-clockwise (in a y-up frame) by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	return fromMgl(mgl64.Rotate2D(angle).Mul2x1(v.mgl()))
}

// RotateSinCos is Rotate with a precomputed sine and cosine, for callers that
// rotate many vectors by the same angle.
func (v Vec2) RotateSinCos(sin, cos float64) Vec2 {
	m := mgl64.Mat2{cos, sin, -sin, cos}
	return fromMgl(m.Mul2x1(v.mgl()))
}

// Len2 returns the squared length.
func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length.
func (v Vec2) Len() float64 { return math.Sqrt(v.Len2()) }

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l2 := v.Len2()
	if l2 == 0 {
		return v
	}
	l := math.Sqrt(l2)
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp returns the linear interpolation between v (alpha=0) and target (alpha=1).
func (v Vec2) Lerp(target Vec2, alpha float64) Vec2 {
	inv := 1.0 - alpha
	return Vec2{X: v.X*inv + target.X*alpha, Y: v.Y*inv + target.Y*alpha}
}

// Dist2 returns the squared distance between the points v and o.
func (v Vec2) Dist2(o Vec2) float64 { return v.Dist2XY(o.X, o.Y) }

// Dist2XY returns the squared distance between v and the point (x,y).
func (v Vec2) Dist2XY(x, y float64) float64 {
	dx := x - v.X
	dy := y - v.Y
	return dx*dx + dy*dy
}

// Dist returns the distance between the points v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Sqrt(v.Dist2(o)) }

// DistXY returns the distance between v and the point (x,y).
func (v Vec2) DistXY(x, y float64) float64 { return math.Sqrt(v.Dist2XY(x, y)) }

// Negate returns -v.
func (v Vec2) Negate() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Set overwrites v with o.
func (v *Vec2) Set(o Vec2) *Vec2 {
	*v = o
	return v
}

// AddAssign adds o to v in place.
func (v *Vec2) AddAssign(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// SubAssign subtracts o from v in place.
func (v *Vec2) SubAssign(o Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// ScaleAssign scales v in place.
func (v *Vec2) ScaleAssign(f float64) *Vec2 {
	v.X *= f
	v.Y *= f
	return v
}

// RotateAssign rotates v in place.
func (v *Vec2) RotateAssign(angle float64) *Vec2 {
	*v = v.Rotate(angle)
	return v
}

// NormalizeAssign normalizes v in place. A zero vector is left untouched.
func (v *Vec2) NormalizeAssign() *Vec2 {
	*v = v.Normalize()
	return v
}

// LerpAssign moves v toward target by alpha in place.
func (v *Vec2) LerpAssign(target Vec2, alpha float64) *Vec2 {
	*v = v.Lerp(target, alpha)
	return v
}
