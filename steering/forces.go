package steering

import "math"

// separationBufferDist is added to the sum of two agents' radii when
// computing the separation force's activation radius. The original engine
// sets this to zero; kept as a named constant since a future caller may
// want the margin without touching the force's math.
const separationBufferDist = 0.0

// SeekForce steers directly for target at max speed, ignoring arrival
// deceleration. Used by callers that want raw pursuit (e.g. a future
// "charge" stance); the steering pipeline itself uses ArriveForce.
func SeekForce(self Kinematics, target Vec2) Vec2 {
	desired := Scale(Normalize(Sub(target, self.Pos)), self.MaxSpeed/TickRes)
	return Sub(desired, self.Velocity)
}

// ArriveForce steers self toward target, decelerating linearly inside
// ArriveSlowingRadius. When hasLOS is false the destination isn't directly
// visible, so the desired direction comes from the nav service's flow
// field (vdes) instead of straight-line direction to target.
func ArriveForce(self Kinematics, hasLOS bool, target, vdes Vec2) Vec2 {
	var desired Vec2

	if hasLOS {
		toTarget := Sub(target, self.Pos)
		distance := Len(toTarget)
		desired = Scale(Normalize(toTarget), self.MaxSpeed/TickRes)
		if distance < ArriveSlowingRadius {
			desired = Scale(desired, distance/ArriveSlowingRadius)
		}
	} else {
		desired = Scale(vdes, self.MaxSpeed/TickRes)
	}

	return Truncate(Sub(desired, self.Velocity), MaxForce)
}

// AlignmentForce steers self to match the heading of nearby flockmates.
//
// This mirrors a long-standing quirk of the engine this was ported from: the
// accumulator sums self's own velocity once per qualifying neighbor rather
// than each neighbor's velocity, so the result is always the zero vector:
// when self is moving the averaged sum equals self.Velocity and the two
// cancel, and when self is stationary every neighbor is skipped by the
// self-velocity check and nothing is accumulated. It is preserved exactly
// rather than "fixed", and — as in the original — is not part of the
// point-seek blend; PointSeekTotalForce never calls it.
func AlignmentForce(self Kinematics, flockMembers []Kinematics) Vec2 {
	var sum Vec2
	count := 0

	for _, curr := range flockMembers {
		if curr.Agent == self.Agent {
			continue
		}
		if Len(Sub(curr.Pos, self.Pos)) >= AlignNeighbourRadius {
			continue
		}
		if Len(self.Velocity) < Epsilon {
			continue
		}
		sum = Add(sum, self.Velocity)
		count++
	}

	if count == 0 {
		return Vec2{}
	}
	sum = Scale(sum, 1.0/float64(count))
	return Truncate(Sub(sum, self.Velocity), MaxForce)
}

// CohesionForce steers self toward the exponentially-weighted center of
// mass of nearby flockmates, weighting positions further from
// CohesionNeighbourRadius*0.75 less heavily so the pull tapers off smoothly
// rather than cutting off sharply at the radius boundary.
func CohesionForce(self Kinematics, flockMembers []Kinematics) Vec2 {
	var com Vec2
	count := 0
	weightSum := 0.0

	for _, curr := range flockMembers {
		if curr.Agent == self.Agent {
			continue
		}
		diff := Sub(curr.Pos, self.Pos)
		t := (Len(diff) - CohesionNeighbourRadius*0.75) / CohesionNeighbourRadius
		scale := math.Exp(-6.0 * t)
		com = Add(com, Scale(curr.Pos, scale))
		weightSum += scale
		count++
	}

	if count == 0 || weightSum == 0 {
		return Vec2{}
	}
	com = Scale(com, 1.0/weightSum)
	return Truncate(Sub(com, self.Pos), MaxForce)
}

// SeparationForce steers self away from nearby agents, weighting the push
// exponentially so it's strong just inside an agent's combined radius and
// fades smoothly rather than toggling on/off at a hard boundary. nearby
// must already exclude static (non-moving) agents and self.
func SeparationForce(self Kinematics, nearby []Kinematics, bufferDist float64) Vec2 {
	var sum Vec2

	for _, curr := range nearby {
		if curr.Agent == self.Agent {
			continue
		}
		diff := Sub(curr.Pos, self.Pos)
		d := Len(diff)
		if d < Epsilon {
			continue
		}
		radius := self.Radius + curr.Radius + bufferDist
		t := (d - radius*0.85) / d
		scale := math.Exp(-20.0 * t)
		sum = Add(sum, Scale(diff, scale))
	}

	if len(nearby) == 0 {
		return Vec2{}
	}
	return Truncate(Scale(sum, -1.0), MaxForce)
}

// PointSeekTotalForce blends arrive, separation and cohesion for an agent
// moving toward a commanded point, in the weighted order the original
// engine accumulates them in (arrive, then separation, then cohesion —
// the order only matters for floating-point rounding, never for the
// result's meaning).
func PointSeekTotalForce(self Kinematics, flockMembers, nearby []Kinematics, hasLOS bool, target, vdes Vec2) Vec2 {
	arrive := Scale(ArriveForce(self, hasLOS, target, vdes), ArriveForceScale)
	cohesion := Scale(CohesionForce(self, flockMembers), CohesionForceScale)
	separation := Scale(SeparationForce(self, nearby, separationBufferDist), SeparationForceScale)

	ret := Add(arrive, separation)
	ret = Add(ret, cohesion)
	return Truncate(ret, MaxForce)
}

// EnemySeekTotalForce blends arrive (toward the nav service's enemy-seek
// direction, passed as vdes with no LOS/target of its own) and separation
// for a SEEK_ENEMIES agent, which has no flock and so never gets cohesion.
func EnemySeekTotalForce(self Kinematics, nearby []Kinematics, vdes Vec2) Vec2 {
	arrive := Scale(ArriveForce(self, false, Vec2{}, vdes), ArriveForceScale)
	separation := Scale(SeparationForce(self, nearby, separationBufferDist), SeparationForceScale)

	ret := Add(arrive, separation)
	return Truncate(ret, MaxForce)
}

// NullifyImpassComponents zeroes whichever axis of force would push self
// toward an impassable tile immediately to that side, so the steering
// pipeline never accelerates an agent directly into a wall even when the
// blended force otherwise points that way.
func NullifyImpassComponents(pos Vec2, tileDX, tileDZ float64, pathable func(Vec2) bool, force Vec2) Vec2 {
	left := Vec2{X: pos.X + tileDX, Z: pos.Z}
	right := Vec2{X: pos.X - tileDX, Z: pos.Z}
	top := Vec2{X: pos.X, Z: pos.Z + tileDZ}
	bot := Vec2{X: pos.X, Z: pos.Z - tileDZ}

	out := force
	if (force.X > 0 && !pathable(left)) || (force.X < 0 && !pathable(right)) {
		out.X = 0
	}
	if (force.Z > 0 && !pathable(top)) || (force.Z < 0 && !pathable(bot)) {
		out.Z = 0
	}
	return out
}

// Gate bundles the impassability-testing collaborators PointSeekVpref and
// EnemySeekVpref need, so the functions below stay pure of any nav-service
// import (steering never depends on package nav).
type Gate struct {
	Pathable     func(Vec2) bool
	TileDX, TileDZ float64
}

// PointSeekVpref runs the prioritized fallback chain — try the full
// point-seek blend, then pure separation, then pure arrive, using the
// first one with enough magnitude to matter — in that order,
// nullifying impassable-direction components at each step. Only the
// first tier applies the per-component ArriveForceScale/
// SeparationForceScale/CohesionForceScale weights (those describe how
// that blend balances its three components against each other); the
// fallback tiers retry with the raw, unscaled force. It returns the
// new preferred velocity after integrating the chosen force as an
// acceleration over unit mass.
func PointSeekVpref(self Kinematics, flockMembers, nearby []Kinematics, hasLOS bool, target, vdes Vec2, gate Gate) Vec2 {
	var steerForce Vec2
	for prio := 0; prio < 3; prio++ {
		switch prio {
		case 0:
			steerForce = PointSeekTotalForce(self, flockMembers, nearby, hasLOS, target, vdes)
		case 1:
			steerForce = SeparationForce(self, nearby, separationBufferDist)
		case 2:
			steerForce = ArriveForce(self, hasLOS, target, vdes)
		}

		steerForce = NullifyImpassComponents(self.Pos, gate.TileDX, gate.TileDZ, gate.Pathable, steerForce)
		if Len(steerForce) > MaxForce*0.01 {
			break
		}
	}

	accel := Scale(steerForce, 1.0/Mass)
	newVel := Add(self.Velocity, accel)
	return Truncate(newVel, self.MaxSpeed/TickRes)
}

// EnemySeekVpref integrates EnemySeekTotalForce as an acceleration, with
// no fallback chain: a SEEK_ENEMIES agent has no flock target to fall back
// to, so there is nothing to try after the blended force.
func EnemySeekVpref(self Kinematics, nearby []Kinematics, vdes Vec2) Vec2 {
	steerForce := EnemySeekTotalForce(self, nearby, vdes)
	accel := Scale(steerForce, 1.0/Mass)
	newVel := Add(self.Velocity, accel)
	return Truncate(newVel, self.MaxSpeed/TickRes)
}
