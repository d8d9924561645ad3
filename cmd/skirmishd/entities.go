package main

import (
	"sync"

	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/steering"
)

// entityTable is a minimal in-memory stand-in for the "external entity
// system" the movement engine queries through movement.AgentQuery. A real
// deployment backs this interface with whatever owns entity state (ECS,
// scene graph, etc.); this one exists so the daemon has something to run
// against without one.
type entityTable struct {
	mu sync.RWMutex

	pos        map[model.AgentID]model.Vec2
	height     map[model.AgentID]float64
	radius     map[model.AgentID]float64
	maxSpeed   map[model.AgentID]float64
	faction    map[model.AgentID]int
	combatable map[model.AgentID]bool
	rotation   map[model.AgentID]steering.Quat
}

func newEntityTable() *entityTable {
	return &entityTable{
		pos:        make(map[model.AgentID]model.Vec2),
		height:     make(map[model.AgentID]float64),
		radius:     make(map[model.AgentID]float64),
		maxSpeed:   make(map[model.AgentID]float64),
		faction:    make(map[model.AgentID]int),
		combatable: make(map[model.AgentID]bool),
		rotation:   make(map[model.AgentID]steering.Quat),
	}
}

// Spawn registers a new agent with the given starting fields.
func (t *entityTable) Spawn(agent model.AgentID, pos model.Vec2, radius, maxSpeed float64, faction int, combatable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos[agent] = pos
	t.radius[agent] = radius
	t.maxSpeed[agent] = maxSpeed
	t.faction[agent] = faction
	t.combatable[agent] = combatable
}

func (t *entityTable) Position(agent model.AgentID) model.Vec2 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pos[agent]
}

func (t *entityTable) SetPosition(agent model.AgentID, xz model.Vec2, height float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos[agent] = xz
	t.height[agent] = height
}

func (t *entityTable) SelectionRadius(agent model.AgentID) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.radius[agent]
}

func (t *entityTable) MaxSpeed(agent model.AgentID) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maxSpeed[agent]
}

func (t *entityTable) Faction(agent model.AgentID) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.faction[agent]
}

func (t *entityTable) Combatable(agent model.AgentID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.combatable[agent]
}

func (t *entityTable) SetCombatStanceAggressive(agent model.AgentID) {
	// Combat stance itself lives outside the movement engine's scope;
	// a real deployment would forward this to whatever owns it.
}

func (t *entityTable) SetOrientation(agent model.AgentID, q steering.Quat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rotation[agent] = q
}
