// Package nav defines the movement engine's contract with the navigation
// service. The grid, flow-field solver and blocker field themselves are
// treated as a separate subsystem — callers of this package treat
// everything behind the Service interface as an opaque collaborator.
// The Grid type (navgrid.go) is one concrete in-memory adapter, used by tests,
// the batch driver and the daemon when no external nav backend is wired
// in.
package nav

import "github.com/mwanga/skirmish-engine/model"

// Service is the full set of navigation operations the movement engine
// calls. All of them are pure functions of the nav state plus the blocker
// field: nothing here may fail in a way the caller must recover from
// except by returning zero values, since there is no nav-service error
// channel (a nav-unreachable destination is coerced to the closest
// reachable one, never an error).
type Service interface {
	// ClosestReachableDest snaps target to the nearest point reachable
	// from pos, returning both the snapped point and its DestID.
	ClosestReachableDest(pos, target model.Vec2) (model.Vec2, model.DestID)

	// DestIDForPos returns the DestID of the equivalence class pos's
	// flow field belongs to for the given target (used to detect
	// whether two commands resolve to the same destination).
	DestIDForPos(target model.Vec2) model.DestID

	// HasDestLOS reports whether pos has unobstructed line of sight to
	// dest's target point.
	HasDestLOS(dest model.DestID, pos model.Vec2) bool

	// PositionPathable reports whether pos is currently walkable,
	// accounting for static terrain and the live blocker field.
	PositionPathable(pos model.Vec2) bool

	// DesiredPointSeekVelocity returns the flow-field direction toward
	// dest as a unit vector (zero when there is no direction to offer),
	// for an agent moving toward a commanded point; the steering pipeline
	// scales it to the agent's per-tick speed budget.
	DesiredPointSeekVelocity(dest model.DestID, pos, target model.Vec2) model.Vec2

	// DesiredEnemySeekVelocity returns a direction toward the nearest
	// opposing-faction presence, for SEEK_ENEMIES agents.
	DesiredEnemySeekVelocity(pos model.Vec2, faction int) model.Vec2

	// BlockersIncref/BlockersDecref maintain the refcounted blocker
	// field. Every Incref must be matched by exactly one Decref over an
	// agent's lifetime; double-increffing the same footprint
	// without an intervening decref, or decreffing one that was never
	// incref'd, is an invariant violation and the adapter may panic.
	BlockersIncref(pos model.Vec2, radius float64)
	BlockersDecref(pos model.Vec2, radius float64)

	// IsMaximallyClose reports whether the agent at pos heading toward
	// dest cannot practically get any closer (e.g. packed against a
	// flock already filling the destination tile).
	IsMaximallyClose(dest model.DestID, pos model.Vec2) bool

	// TileDims returns the nav grid's tile width in world units along
	// each axis; the steering pipeline's impassability gate probes one
	// tile width to each side.
	TileDims() (dx, dz float64)

	// HeightAtPoint returns the terrain height at (x, z), used to set
	// the vertical coordinate after a planar position update.
	HeightAtPoint(x, z float64) float64
}
