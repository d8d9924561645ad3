package steering

import "github.com/mwanga/skirmish-engine/model"

// Local aliases for the model package's tunable constants, so force
// functions in this package read without a model. prefix.
const (
	Mass    = model.Mass
	Epsilon = model.Epsilon

	MaxForce = model.MaxForce

	SeparationForceScale = model.SeparationForceScale
	ArriveForceScale     = model.ArriveForceScale
	CohesionForceScale   = model.CohesionForceScale

	CohesionNeighbourRadius   = model.CohesionNeighbourRadius
	AlignNeighbourRadius      = model.AlignNeighbourRadius
	SeparationNeighbourRadius = model.SeparationNeighbourRadius
	ClearPathNeighbourRadius  = model.ClearPathNeighbourRadius
	AdjacencySepDist          = model.AdjacencySepDist

	ArriveSlowingRadius  = model.ArriveSlowingRadius
	CollisionMaxSeeAhead = model.CollisionMaxSeeAhead

	TickRes    = model.TickRes
	VelHistLen = model.VelHistLen
)
