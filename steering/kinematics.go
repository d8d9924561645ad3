package steering

import "github.com/mwanga/skirmish-engine/model"

// Kinematics is the minimal snapshot of an agent (self or neighbor) the
// steering pipeline needs. It is built fresh each tick from pre-tick state,
// never mutated in place, so that all reads within a tick observe the same
// snapshot (two-pass split: all reads within a tick observe pre-tick state).
type Kinematics struct {
	Agent    model.AgentID
	Pos      Vec2
	Velocity Vec2
	Radius   float64
	MaxSpeed float64
	// Static agents (mass-static entities, or max_speed == 0) are
	// skipped by flock operations and never contribute cohesion or
	// separation; they still enter ClearPath's static-neighbor set, which
	// is partitioned by motion state rather than by this flag.
	Static bool
}

// Stationary reports whether this kinematics record describes an agent
// that never moves. Stationary agents are skipped by all flock operations.
func (k Kinematics) Stationary() bool {
	return k.Static || k.MaxSpeed <= 0
}
