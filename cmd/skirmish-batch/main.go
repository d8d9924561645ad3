// Command skirmish-batch runs a scripted movement scenario against an
// in-memory nav.Grid with no network server attached, printing a summary
// report at the end — the headless equivalent of cmd/skirmishd, useful
// for regression-testing the steering pipeline's emergent behavior
// without standing up a daemon.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/movement"
	"github.com/mwanga/skirmish-engine/nav"
	"github.com/mwanga/skirmish-engine/steering"
)

func main() {
	numAgents := flag.Int("agents", 20, "number of agents in the scenario")
	ticks := flag.Int("ticks", 400, "number of 20Hz ticks to simulate")
	seed := flag.Int64("seed", 1, "random seed for initial placement")
	flag.Parse()

	grid := nav.NewGrid(64, 64, 1.0, 1.0)
	ents := newBatchEntities()
	engine := movement.New(grid, ents, noopBus{}, nil)

	rng := rand.New(rand.NewSource(*seed))
	agents := make([]model.AgentID, *numAgents)
	for i := range agents {
		a := model.AgentID(i + 1)
		pos := model.Vec2{X: rng.Float64() * 20, Z: rng.Float64() * 20}
		ents.Spawn(a, pos, 0.5, 4.0)
		engine.AddEntity(a)
		agents[i] = a
	}

	engine.SetDestSelection(agents, model.Vec2{X: 50, Z: 50})

	for i := 0; i < *ticks; i++ {
		engine.Tick()
	}

	arrived := 0
	for _, a := range agents {
		if dest, ok := engine.GetDest(a); ok {
			_ = dest
			continue
		}
		arrived++
	}

	fmt.Printf("scenario complete: %d/%d agents arrived after %d ticks\n", arrived, *numAgents, *ticks)
}

// noopBus discards every event; skirmish-batch has no telemetry
// consumer to deliver them to.
type noopBus struct{}

func (noopBus) Publish(name string, payload interface{}) {}

// batchEntities is the same minimal AgentQuery stand-in as the daemon's
// entityTable, trimmed to what the batch scenario needs (no combat
// stance, no faction).
type batchEntities struct {
	pos      map[model.AgentID]model.Vec2
	radius   map[model.AgentID]float64
	maxSpeed map[model.AgentID]float64
}

func newBatchEntities() *batchEntities {
	return &batchEntities{
		pos:      make(map[model.AgentID]model.Vec2),
		radius:   make(map[model.AgentID]float64),
		maxSpeed: make(map[model.AgentID]float64),
	}
}

func (b *batchEntities) Spawn(a model.AgentID, pos model.Vec2, radius, maxSpeed float64) {
	b.pos[a] = pos
	b.radius[a] = radius
	b.maxSpeed[a] = maxSpeed
}

func (b *batchEntities) Position(a model.AgentID) model.Vec2 { return b.pos[a] }
func (b *batchEntities) SetPosition(a model.AgentID, xz model.Vec2, h float64) {
	b.pos[a] = xz
}
func (b *batchEntities) SelectionRadius(a model.AgentID) float64        { return b.radius[a] }
func (b *batchEntities) MaxSpeed(a model.AgentID) float64               { return b.maxSpeed[a] }
func (b *batchEntities) Faction(a model.AgentID) int                    { return 0 }
func (b *batchEntities) Combatable(a model.AgentID) bool                { return false }
func (b *batchEntities) SetCombatStanceAggressive(a model.AgentID)      {}
func (b *batchEntities) SetOrientation(a model.AgentID, q steering.Quat) {}
