package steering

import (
	"math"
	"testing"

	"github.com/mwanga/skirmish-engine/model"
)

func kin(agent model.AgentID, pos, vel Vec2, radius, maxSpeed float64) Kinematics {
	return Kinematics{Agent: agent, Pos: pos, Velocity: vel, Radius: radius, MaxSpeed: maxSpeed}
}

func TestArriveForceLOSDeceleratesInsideSlowingRadius(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	target := Vec2{X: ArriveSlowingRadius / 2}

	f := ArriveForce(self, true, target, Vec2{})
	if Len(f) < Epsilon {
		t.Fatal("expected nonzero steering force toward target")
	}
	if f.X <= 0 {
		t.Errorf("force.X = %v, want positive (steering toward +X target)", f.X)
	}
}

func TestArriveForceNoLOSUsesVdes(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	vdes := Vec2{X: 0, Z: 1}

	f := ArriveForce(self, false, Vec2{X: 999}, vdes)
	if f.X > Epsilon {
		t.Errorf("force.X = %v, want ~0 since vdes points along Z only", f.X)
	}
	if f.Z <= 0 {
		t.Errorf("force.Z = %v, want positive (steering along vdes)", f.Z)
	}
}

func TestArriveForceTruncatedToMaxForce(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{X: -1000}, 1.0, 10.0)
	f := ArriveForce(self, true, Vec2{X: 1000}, Vec2{})
	if Len(f) > MaxForce+1e-9 {
		t.Errorf("Len(f) = %v, want <= MaxForce (%v)", Len(f), MaxForce)
	}
}

func TestAlignmentForceBugPreservedReturnsZeroWhenSelfMoving(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{X: 1, Z: 0}, 1.0, 10.0)
	neighbor := kin(2, Vec2{X: 1}, Vec2{X: 0, Z: 5}, 1.0, 10.0)

	f := AlignmentForce(self, []Kinematics{self, neighbor})
	if f != (Vec2{}) {
		t.Errorf("AlignmentForce = %v, want zero vector (self.Velocity - self.Velocity)", f)
	}
}

func TestAlignmentForceZeroForDistantNeighborAndStationarySelf(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	far := kin(2, Vec2{X: AlignNeighbourRadius + 100}, Vec2{X: 1}, 1.0, 10.0)

	f := AlignmentForce(self, []Kinematics{self, far})
	if f != (Vec2{}) {
		t.Errorf("AlignmentForce with only a too-far neighbor = %v, want zero", f)
	}
}

func TestCohesionForceZeroWithNoFlockmates(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	if f := CohesionForce(self, []Kinematics{self}); f != (Vec2{}) {
		t.Errorf("CohesionForce with only self present = %v, want zero", f)
	}
}

func TestCohesionForcePullsTowardNeighborCenter(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	neighbor := kin(2, Vec2{X: 5}, Vec2{}, 1.0, 10.0)

	f := CohesionForce(self, []Kinematics{self, neighbor})
	if f.X <= 0 {
		t.Errorf("CohesionForce.X = %v, want positive (neighbor is at +X)", f.X)
	}
}

func TestSeparationForcePushesAwayFromCloseNeighbor(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	close := kin(2, Vec2{X: 1}, Vec2{}, 1.0, 10.0)

	f := SeparationForce(self, []Kinematics{close}, 0.0)
	if f.X >= 0 {
		t.Errorf("SeparationForce.X = %v, want negative (push away from +X neighbor)", f.X)
	}
}

func TestSeparationForceZeroWithNoNeighbors(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	if f := SeparationForce(self, nil, 0.0); f != (Vec2{}) {
		t.Errorf("SeparationForce with no neighbors = %v, want zero", f)
	}
}

func TestPointSeekTotalForceTruncated(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{X: -1000}, 1.0, 10.0)
	crowd := kin(2, Vec2{X: 0.1}, Vec2{}, 1.0, 10.0)

	f := PointSeekTotalForce(self, nil, []Kinematics{crowd}, true, Vec2{X: 1000}, Vec2{})
	if Len(f) > MaxForce+1e-9 {
		t.Errorf("Len(f) = %v, want <= MaxForce", Len(f))
	}
}

func TestEnemySeekTotalForceHasNoCohesionContribution(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	// EnemySeekTotalForce takes no flock members at all, so its result
	// must be exactly the weighted arrive + separation blend with no
	// cohesion term added.
	vdes := Vec2{X: 0, Z: 1}
	f1 := EnemySeekTotalForce(self, nil, vdes)
	f2 := Truncate(Add(
		Scale(ArriveForce(self, false, Vec2{}, vdes), ArriveForceScale),
		Scale(SeparationForce(self, nil, separationBufferDist), SeparationForceScale),
	), MaxForce)
	if f1 != f2 {
		t.Errorf("EnemySeekTotalForce = %v, want arrive+separation blend %v", f1, f2)
	}
}

func TestNullifyImpassComponentsZeroesBlockedAxis(t *testing.T) {
	pathable := func(p Vec2) bool {
		// Everything pathable except directly to the +X side.
		return p.X <= 0.5
	}
	force := Vec2{X: 5, Z: 5}
	out := NullifyImpassComponents(Vec2{}, 1.0, 1.0, pathable, force)
	if out.X != 0 {
		t.Errorf("out.X = %v, want 0 (blocked to +X)", out.X)
	}
	if out.Z != 5 {
		t.Errorf("out.Z = %v, want unchanged 5", out.Z)
	}
}

func TestPointSeekVprefFallsBackWhenBlendTooWeak(t *testing.T) {
	// No LOS, zero vdes, no neighbors: arrive alone contributes ~0 and
	// separation is zero too, so the blend should fall through every
	// priority tier and return just the integrated (zero) steerForce.
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	gate := Gate{Pathable: func(Vec2) bool { return true }, TileDX: 1, TileDZ: 1}

	v := PointSeekVpref(self, nil, nil, false, Vec2{}, Vec2{}, gate)
	if Len(v) > Epsilon {
		t.Errorf("PointSeekVpref = %v, want ~zero with no force contributors", v)
	}
}

func TestPointSeekVprefClampedToMaxSpeed(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 5.0)
	gate := Gate{Pathable: func(Vec2) bool { return true }, TileDX: 1, TileDZ: 1}

	v := PointSeekVpref(self, nil, nil, true, Vec2{X: 10000}, Vec2{}, gate)
	maxStep := self.MaxSpeed / TickRes
	if Len(v) > maxStep+1e-9 {
		t.Errorf("Len(v) = %v, want <= %v", Len(v), maxStep)
	}
}

func TestEnemySeekVprefIntegratesAsAcceleration(t *testing.T) {
	self := kin(1, Vec2{}, Vec2{}, 1.0, 10.0)
	v := EnemySeekVpref(self, nil, Vec2{X: 0, Z: 1})
	if v.Z <= 0 {
		t.Errorf("EnemySeekVpref.Z = %v, want positive along vdes", v.Z)
	}
	if math.Abs(v.X) > Epsilon {
		t.Errorf("EnemySeekVpref.X = %v, want ~0", v.X)
	}
}
