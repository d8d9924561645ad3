// Package model holds the movement engine's core data types: agent motion
// state and flocks. It owns no behavior beyond small invariant-preserving
// helpers; the tick driver and steering pipeline live in sibling packages.
package model

import "time"

// Tunable constants, authoritative per the movement spec.
const (
	Mass    = 1.0
	Epsilon = 1.0 / 1024.0

	MaxForce = 0.75

	SeparationForceScale = 0.6
	ArriveForceScale     = 0.5
	CohesionForceScale   = 0.15

	CohesionNeighbourRadius   = 50.0
	AlignNeighbourRadius      = 10.0
	SeparationNeighbourRadius = 30.0
	ClearPathNeighbourRadius  = 15.0
	AdjacencySepDist          = 5.0

	ArriveSlowingRadius  = 10.0
	CollisionMaxSeeAhead = 10.0
	WaitTicks            = 60
	VelHistLen           = 14

	// TickRate is the fixed cadence the tick driver runs at (20Hz), and
	// TickRes is the divisor used to convert a per-second max speed into
	// a per-tick speed budget.
	TickRate = 20
	TickRes  = float64(TickRate)

	TickPeriod = time.Second / time.Duration(TickRate)
)
