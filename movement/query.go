// Package movement is the engine: it owns the per-agent motion-state
// registry and flock set, drives the 20Hz tick (steering, ClearPath,
// integration, state transitions), and exposes the command surface
// (SetDest, Stop, SetSeekEnemies, ...) that the rest of the simulation
// calls against it. It reads position/selection-radius/max-speed/faction
// from the external entity system on demand through the AgentQuery
// interface rather than caching them, since those fields are owned
// elsewhere and can change between ticks for reasons the engine doesn't
// need to know about.
package movement

import (
	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/steering"
)

// AgentQuery is the engine's view of the external entity system: the
// handful of per-agent fields the steering pipeline and blocker coupling
// need, plus the two mutators the engine itself is responsible for
// (position and facing, at the end of each tick's integration step).
type AgentQuery interface {
	Position(agent model.AgentID) model.Vec2
	SetPosition(agent model.AgentID, xz model.Vec2, height float64)
	SelectionRadius(agent model.AgentID) float64
	MaxSpeed(agent model.AgentID) float64
	Faction(agent model.AgentID) int
	// Combatable reports whether arriving should switch the agent into
	// an aggressive combat stance; the stance change itself is out of
	// scope here and left to whatever owns combat state.
	Combatable(agent model.AgentID) bool
	SetCombatStanceAggressive(agent model.AgentID)
	SetOrientation(agent model.AgentID, q steering.Quat)
}

func kinematicsOf(agent model.AgentID, ms *model.MotionState, q AgentQuery) steering.Kinematics {
	maxSpeed := q.MaxSpeed(agent)
	return steering.Kinematics{
		Agent:    agent,
		Pos:      q.Position(agent),
		Velocity: ms.Velocity,
		Radius:   q.SelectionRadius(agent),
		MaxSpeed: maxSpeed,
		Static:   maxSpeed <= 0,
	}
}
