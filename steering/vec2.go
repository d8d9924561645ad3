// Package steering implements the per-tick steering pipeline: arrival,
// cohesion and separation force blending with prioritized fallback, the
// ClearPath reciprocal-avoidance step, and the velocity-history/orientation
// filter. The force math is translated from an RTS engine's C vec2_t /
// PFM_Vec2_* free functions into Go free functions over model.Vec2 values.
package steering

import (
	"math"

	"github.com/mwanga/skirmish-engine/model"
)

type Vec2 = model.Vec2

// Add returns a+b.
func Add(a, b Vec2) Vec2 { return Vec2{X: a.X + b.X, Z: a.Z + b.Z} }

// Sub returns a-b.
func Sub(a, b Vec2) Vec2 { return Vec2{X: a.X - b.X, Z: a.Z - b.Z} }

// Scale returns v scaled by s.
func Scale(v Vec2, s float64) Vec2 { return Vec2{X: v.X * s, Z: v.Z * s} }

// Len returns the Euclidean length of v.
func Len(v Vec2) float64 { return math.Sqrt(v.X*v.X + v.Z*v.Z) }

// Len2 returns the squared length of v (cheaper when only comparing).
func Len2(v Vec2) float64 { return v.X*v.X + v.Z*v.Z }

// Normalize returns v scaled to unit length, or the zero vector if v is
// (near) zero.
func Normalize(v Vec2) Vec2 {
	l := Len(v)
	if l < model.Epsilon {
		return Vec2{}
	}
	return Scale(v, 1.0/l)
}

// Truncate clamps v's magnitude to maxLen, preserving direction.
func Truncate(v Vec2, maxLen float64) Vec2 {
	l := Len(v)
	if l <= maxLen || l == 0 {
		return v
	}
	return Scale(v, maxLen/l)
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float64 { return a.X*b.X + a.Z*b.Z }

// Zero reports whether v's magnitude is within epsilon of zero.
func Zero(v Vec2) bool { return Len(v) < model.Epsilon }
