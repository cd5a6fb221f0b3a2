// Package mathx holds the small numeric helpers shared by the game packages:
// a mutable 2D vector, interpolation, and random ranges.
package mathx

import "math"

// Vec2 is a mutable 2D vector. Set, Add, Sub and Scale modify the receiver in
// place and return it so calls can be chained.
type Vec2 struct {
	X, Y float64
}

// V returns a Vec2 with the given components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Set overwrites both components.
func (v *Vec2) Set(x, y float64) *Vec2 {
	v.X = x
	v.Y = y
	return v
}

// Add adds (x, y) to v.
func (v *Vec2) Add(x, y float64) *Vec2 {
	v.X += x
	v.Y += y
	return v
}

// Sub subtracts (x, y) from v.
func (v *Vec2) Sub(x, y float64) *Vec2 {
	v.X -= x
	v.Y -= y
	return v
}

// Scale multiplies both components by s.
func (v *Vec2) Scale(s float64) *Vec2 {
	v.X *= s
	v.Y *= s
	return v
}

// Zero resets v to the origin.
func (v *Vec2) Zero() *Vec2 {
	v.X = 0
	v.Y = 0
	return v
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Magnitude returns the length of v.
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns a unit-length copy of v. The zero vector stays zero.
func (v Vec2) Normalized() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return Vec2{a.X - b.X, a.Y - b.Y}.Magnitude()
}

// PointToAngle returns the angle of v in radians.
func PointToAngle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleToPoint returns the unit vector pointing along angle (radians).
func AngleToPoint(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos, sin}
}
