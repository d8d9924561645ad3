package model

import "testing"

func TestPushVelHistOrdering(t *testing.T) {
	ms := NewMotionState(1, Vec2{}, 1.0)
	for i := 0; i < VelHistLen; i++ {
		ms.PushVelHist(Vec2{X: float64(i)})
	}

	ordered := ms.OrderedVelHist()
	for i := 0; i < VelHistLen; i++ {
		if ordered[i].X != float64(i) {
			t.Fatalf("ordered[%d].X = %v, want %v", i, ordered[i].X, float64(i))
		}
	}

	// One more push should evict the oldest (index 0) sample.
	ms.PushVelHist(Vec2{X: float64(VelHistLen)})
	ordered = ms.OrderedVelHist()
	if ordered[0].X != 1 {
		t.Fatalf("after wraparound, ordered[0].X = %v, want 1", ordered[0].X)
	}
	if ordered[VelHistLen-1].X != float64(VelHistLen) {
		t.Fatalf("after wraparound, newest sample = %v, want %v", ordered[VelHistLen-1].X, VelHistLen)
	}
}

func TestMotionStateKindStillString(t *testing.T) {
	cases := []struct {
		k    MotionStateKind
		str  string
		till bool
	}{
		{Moving, "MOVING", false},
		{Arrived, "ARRIVED", true},
		{SeekEnemies, "SEEK_ENEMIES", false},
		{Waiting, "WAITING", true},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.str {
			t.Errorf("%v.String() = %q, want %q", c.k, got, c.str)
		}
		if got := c.k.Still(); got != c.till {
			t.Errorf("%v.Still() = %v, want %v", c.k, got, c.till)
		}
	}
}

func TestNewMotionStateStartsArrivedAndBlocking(t *testing.T) {
	pos := Vec2{X: 3, Z: 4}
	ms := NewMotionState(42, pos, 1.5)

	if ms.State != Arrived {
		t.Errorf("State = %v, want Arrived", ms.State)
	}
	if !ms.Blocking {
		t.Error("Blocking = false, want true")
	}
	if ms.LastStopPos != pos {
		t.Errorf("LastStopPos = %v, want %v", ms.LastStopPos, pos)
	}
	if ms.LastStopRadius != 1.5 {
		t.Errorf("LastStopRadius = %v, want 1.5", ms.LastStopRadius)
	}
}
