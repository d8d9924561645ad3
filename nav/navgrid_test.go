package nav

import (
	"testing"

	"github.com/mwanga/skirmish-engine/model"
)

func TestPositionPathableRespectsStaticImpassability(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	g.SetImpassable(5, 5, true)

	if g.PositionPathable(model.Vec2{X: 5.5, Z: 5.5}) {
		t.Error("tile marked impassable should not be pathable")
	}
	if !g.PositionPathable(model.Vec2{X: 1.5, Z: 1.5}) {
		t.Error("untouched tile should be pathable")
	}
}

func TestPositionPathableOutOfBoundsIsUnpathable(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	if g.PositionPathable(model.Vec2{X: -5, Z: -5}) {
		t.Error("out-of-bounds position should not be pathable")
	}
}

func TestBlockersIncrefDecrefRoundTrip(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	pos := model.Vec2{X: 3.5, Z: 3.5}

	g.BlockersIncref(pos, 0.4)
	if g.PositionPathable(pos) {
		t.Error("position under a live blocker footprint should not be pathable")
	}

	g.BlockersDecref(pos, 0.4)
	if !g.PositionPathable(pos) {
		t.Error("position should be pathable again once the blocker is fully decreffed")
	}
}

func TestBlockersDecrefWithoutIncrefPanics(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic decreffing a footprint with no live refcount")
		}
	}()
	g.BlockersDecref(model.Vec2{X: 1, Z: 1}, 0.4)
}

func TestBlockersIncrefIsRefcounted(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	pos := model.Vec2{X: 3.5, Z: 3.5}

	g.BlockersIncref(pos, 0.4)
	g.BlockersIncref(pos, 0.4)
	g.BlockersDecref(pos, 0.4)
	if g.PositionPathable(pos) {
		t.Error("one remaining refcount should still block the position")
	}
	g.BlockersDecref(pos, 0.4)
	if !g.PositionPathable(pos) {
		t.Error("position should be pathable after both increfs are decreffed")
	}
}

func TestClosestReachableDestSnapsAwayFromImpassableTile(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	g.SetImpassable(5, 5, true)

	target := model.Vec2{X: 5.5, Z: 5.5}
	snapped, _ := g.ClosestReachableDest(model.Vec2{}, target)
	if snapped == target {
		t.Error("ClosestReachableDest should not return an impassable tile unchanged")
	}
	if !g.PositionPathable(snapped) {
		t.Error("snapped destination should itself be pathable")
	}
}

func TestDestIDForPosStableForSameTarget(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	target := model.Vec2{X: 4.25, Z: 2.75}

	a := g.DestIDForPos(target)
	b := g.DestIDForPos(target)
	if a != b {
		t.Errorf("DestIDForPos should be stable for the same target: %v vs %v", a, b)
	}

	other := g.DestIDForPos(model.Vec2{X: 9, Z: 9})
	if other == a {
		t.Error("DestIDForPos should assign distinct ids to distinct targets")
	}
}

func TestHasDestLOSFalseAcrossWall(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	for x := 0; x < 10; x++ {
		g.SetImpassable(x, 5, true)
	}

	dest := g.DestIDForPos(model.Vec2{X: 5, Z: 9})
	if g.HasDestLOS(dest, model.Vec2{X: 5, Z: 0}) {
		t.Error("HasDestLOS should be false when a wall of impassable tiles lies between pos and dest")
	}
}

func TestIsMaximallyCloseThreshold(t *testing.T) {
	g := NewGrid(10, 10, 1, 1)
	dest := g.DestIDForPos(model.Vec2{X: 5, Z: 5})

	if !g.IsMaximallyClose(dest, model.Vec2{X: 5, Z: 5}) {
		t.Error("a position at the destination itself should be maximally close")
	}
	if g.IsMaximallyClose(dest, model.Vec2{X: 500, Z: 500}) {
		t.Error("a far-away position should not be maximally close")
	}
}
