package steering

import "math"

// Quat is an axis-angle-derived quaternion constrained to rotation about
// the vertical (Y) axis, which is all a planar agent's facing needs.
type Quat struct {
	X, Y, Z, W float64
}

// OrientationFromVelocity derives a yaw-only quaternion from a heading
// vector in the XZ plane. Callers must not pass a (near) zero vector —
// direction is undefined at zero magnitude, so the movement engine gates
// this call on Epsilon itself rather than have it silently return identity.
func OrientationFromVelocity(heading Vec2) Quat {
	angle := math.Atan2(heading.Z, heading.X) - math.Pi/2
	return Quat{
		X: 0,
		Y: math.Sin(angle / 2),
		Z: 0,
		W: math.Cos(angle / 2),
	}
}

// VelSMA returns the unweighted mean of a velocity-history ring buffer.
// Unused by the tick driver (which uses VelWMA for display), but kept
// available since it's a meaningful alternative smoothing and other
// callers (e.g. a debug overlay) may prefer it.
func VelSMA(hist [VelHistLen]Vec2) Vec2 {
	var sum Vec2
	for _, v := range hist {
		sum = Add(sum, v)
	}
	return Scale(sum, 1.0/float64(VelHistLen))
}

// VelWMA computes a weighted moving average over a velocity-history ring
// buffer ordered oldest-to-newest, weighting the oldest sample by
// VelHistLen and the newest by 1 — i.e. favoring *older* samples, which
// lags the visible orientation behind the true instantaneous heading and
// smooths out the per-tick jitter ClearPath's candidate search otherwise
// introduces into facing direction.
func VelWMA(hist [VelHistLen]Vec2) Vec2 {
	var sum Vec2
	denom := 0.0
	for i, v := range hist {
		weight := float64(VelHistLen - i)
		sum = Add(sum, Scale(v, weight))
		denom += weight
	}
	return Scale(sum, 1.0/denom)
}
