package movement

import (
	"sync"
	"testing"

	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/nav"
	"github.com/mwanga/skirmish-engine/steering"
)

// fakeQuery is a minimal in-memory AgentQuery for tests: every agent has
// the same selection radius/max speed/faction unless overridden.
type fakeQuery struct {
	mu         sync.Mutex
	pos        map[model.AgentID]model.Vec2
	radius     map[model.AgentID]float64
	maxSpeed   map[model.AgentID]float64
	faction    map[model.AgentID]int
	combatable map[model.AgentID]bool
	aggressive map[model.AgentID]bool
	orient     map[model.AgentID]steering.Quat
}

func newFakeQuery() *fakeQuery {
	return &fakeQuery{
		pos:        make(map[model.AgentID]model.Vec2),
		radius:     make(map[model.AgentID]float64),
		maxSpeed:   make(map[model.AgentID]float64),
		faction:    make(map[model.AgentID]int),
		combatable: make(map[model.AgentID]bool),
		aggressive: make(map[model.AgentID]bool),
		orient:     make(map[model.AgentID]steering.Quat),
	}
}

func (q *fakeQuery) add(agent model.AgentID, pos model.Vec2, radius, maxSpeed float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pos[agent] = pos
	q.radius[agent] = radius
	q.maxSpeed[agent] = maxSpeed
}

func (q *fakeQuery) Position(agent model.AgentID) model.Vec2 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pos[agent]
}

func (q *fakeQuery) SetPosition(agent model.AgentID, xz model.Vec2, height float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pos[agent] = xz
}

func (q *fakeQuery) SelectionRadius(agent model.AgentID) float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.radius[agent]
}

func (q *fakeQuery) MaxSpeed(agent model.AgentID) float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.maxSpeed[agent]
}

func (q *fakeQuery) Faction(agent model.AgentID) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.faction[agent]
}

func (q *fakeQuery) Combatable(agent model.AgentID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.combatable[agent]
}

func (q *fakeQuery) SetCombatStanceAggressive(agent model.AgentID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.aggressive[agent] = true
}

func (q *fakeQuery) SetOrientation(agent model.AgentID, quat steering.Quat) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.orient[agent] = quat
}

func newTestEngine() (*Engine, *fakeQuery, *nav.Grid) {
	grid := nav.NewGrid(200, 200, 1, 1)
	query := newFakeQuery()
	eng := New(grid, query, nil, nil)
	return eng, query, grid
}

func TestAddEntityStartsArrivedAndClaimsBlocker(t *testing.T) {
	eng, query, grid := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)

	if grid.PositionPathable(model.Vec2{X: 10, Z: 10}) {
		t.Error("newly added entity's blocker footprint should make its position unpathable")
	}
}

func TestRemoveEntityReleasesBlocker(t *testing.T) {
	eng, query, grid := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)
	eng.RemoveEntity(1)

	if !grid.PositionPathable(model.Vec2{X: 10, Z: 10}) {
		t.Error("removing an entity should release its blocker footprint")
	}
}

func TestSetDestCreatesFlockAndTransitionsToMoving(t *testing.T) {
	eng, query, _ := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)

	eng.SetDest(1, model.Vec2{X: 50, Z: 50})

	dest, ok := eng.GetDest(1)
	if !ok {
		t.Fatal("expected agent to have a destination after SetDest")
	}
	if dest.X != 50 || dest.Z != 50 {
		t.Errorf("GetDest = %v, want (50, 50)", dest)
	}
}

func TestSetDestSelectionMergesSharedDestination(t *testing.T) {
	eng, query, _ := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	query.add(2, model.Vec2{X: 12, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)
	eng.AddEntity(2)

	if ok := eng.SetDestSelection([]model.AgentID{1}, model.Vec2{X: 80, Z: 80}); !ok {
		t.Fatal("SetDestSelection should succeed for a moving agent")
	}
	if ok := eng.SetDestSelection([]model.AgentID{2}, model.Vec2{X: 80, Z: 80}); !ok {
		t.Fatal("SetDestSelection should succeed for the second agent")
	}

	d1, _ := eng.GetDest(1)
	d2, _ := eng.GetDest(2)
	if d1 != d2 {
		t.Errorf("agents commanded to the same destination should share a flock target: %v vs %v", d1, d2)
	}
}

func TestSetSeekEnemiesLeavesFlock(t *testing.T) {
	eng, query, _ := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)
	eng.SetDest(1, model.Vec2{X: 50, Z: 50})

	eng.SetSeekEnemies(1)
	if _, ok := eng.GetDest(1); ok {
		t.Error("agent switched to SEEK_ENEMIES should no longer belong to a point-seek flock")
	}
}

func TestStopHaltsAgentInPlace(t *testing.T) {
	eng, query, _ := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)
	eng.SetDest(1, model.Vec2{X: 50, Z: 50})

	eng.Stop(1)
	if _, ok := eng.GetDest(1); ok {
		t.Error("Stop should remove the agent from its flock")
	}
}

func TestTickDrivesAgentTowardArrival(t *testing.T) {
	eng, query, _ := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 20.0)
	eng.AddEntity(1)
	eng.SetDest(1, model.Vec2{X: 10.3, Z: 10})

	for i := 0; i < 200; i++ {
		eng.Tick()
	}

	pos := query.Position(1)
	dist := (pos.X-10.3)*(pos.X-10.3) + (pos.Z-10)*(pos.Z-10)
	if dist > 1.0 {
		t.Errorf("agent did not approach its destination after 200 ticks: final pos %v", pos)
	}
}

func TestSaveLoadStateRoundTrip(t *testing.T) {
	eng, query, _ := newTestEngine()
	query.add(1, model.Vec2{X: 10, Z: 10}, 0.5, 5.0)
	eng.AddEntity(1)
	eng.SetDest(1, model.Vec2{X: 50, Z: 50})

	blob, err := eng.SaveState()
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	eng2, _, _ := newTestEngine()
	if err := eng2.LoadState(blob); err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	d1, ok1 := eng.GetDest(1)
	d2, ok2 := eng2.GetDest(1)
	if ok1 != ok2 || d1 != d2 {
		t.Errorf("destination mismatch after round-trip: before=(%v,%v) after=(%v,%v)", d1, ok1, d2, ok2)
	}
}
