package movement

import (
	"time"

	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/steering"
)

// Tick runs one 20Hz movement update: disband empty flocks, then a
// two-pass sweep over every non-still agent — pass one computes each
// agent's preferred velocity and resolves it through ClearPath against a
// pre-tick snapshot of its neighbors, pass two integrates position and
// runs state transitions (and advances every WAITING agent's countdown).
// Splitting the sweep this way means no agent's ClearPath resolution
// observes another agent's post-tick position: all of pass one reads the
// same pre-tick snapshot. Pass two is sequential, so a state transition
// there can see positions and states already updated earlier in the
// same pass.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	e.disbandEmptyFlocksLocked()

	var order, waiting []model.AgentID
	for agent, ms := range e.states {
		if ms.State.Still() {
			if ms.State == model.Waiting {
				waiting = append(waiting, agent)
			}
			continue
		}
		order = append(order, agent)
	}

	tileDX, tileDZ := e.nav.TileDims()
	gate := steering.Gate{Pathable: e.nav.PositionPathable, TileDX: tileDX, TileDZ: tileDZ}

	for _, agent := range order {
		ms := e.states[agent]
		self := kinematicsOf(agent, ms, e.query)
		fl := e.flockForAgent(agent)

		var vdes model.Vec2
		if ms.State == model.SeekEnemies {
			vdes = e.nav.DesiredEnemySeekVelocity(self.Pos, e.query.Faction(agent))
		} else {
			vdes = e.nav.DesiredPointSeekVelocity(fl.Dest, self.Pos, fl.Target)
		}
		ms.Vdes = vdes

		nearby := e.nearbyKinematics(agent, self.Pos, model.SeparationNeighbourRadius)

		var vpref model.Vec2
		if ms.State == model.SeekEnemies {
			vpref = steering.EnemySeekVpref(self, nearby, vdes)
		} else {
			hasLOS := e.nav.HasDestLOS(fl.Dest, self.Pos)
			flockMembers := e.flockKinematics(fl)
			vpref = steering.PointSeekVpref(self, flockMembers, nearby, hasLOS, fl.Target, vdes, gate)
		}

		dyn, stat := e.findNeighbours(agent, self.Pos)
		vnew := steering.NewVelocity(self, vpref, dyn, stat)
		ms.PushVelHist(vnew)

		if e.stats != nil && steering.Len(steering.Sub(vnew, vpref)) > model.Epsilon {
			e.stats.ClearPathDeflected.Inc()
		}

		// Re-derive the post-ClearPath velocity relative to the agent's
		// current velocity rather than using vnew directly: an
		// arithmetic identity (velocity + (vnew - velocity) == vnew)
		// that exists in the original engine and is kept exactly as-is
		// rather than simplified away, in case a future change to this
		// sequence (e.g. inserting a clamp between the two additions)
		// relies on the intermediate velDiff value.
		velDiff := steering.Sub(vnew, ms.Velocity)
		combined := steering.Add(ms.Velocity, velDiff)
		ms.Vnew = steering.Truncate(combined, self.MaxSpeed/model.TickRes)
	}

	for _, agent := range order {
		e.entityUpdate(agent, e.states[agent].Vnew)
	}
	for _, agent := range waiting {
		e.entityUpdate(agent, model.Vec2{})
	}

	if e.stats != nil {
		e.stats.TickDuration.Observe(time.Since(start).Seconds())
		e.updateGaugesLocked()
	}
}

func (e *Engine) updateGaugesLocked() {
	counts := map[model.MotionStateKind]int{}
	for _, ms := range e.states {
		counts[ms.State]++
	}
	for _, k := range []model.MotionStateKind{model.Moving, model.Arrived, model.SeekEnemies, model.Waiting} {
		e.stats.AgentsByState.WithLabelValues(k.String()).Set(float64(counts[k]))
	}
	e.stats.FlockCount.Set(float64(len(e.flocks)))

	blockers := 0
	for _, ms := range e.states {
		if ms.Blocking {
			blockers++
		}
	}
	e.stats.ActiveBlockers.Set(float64(blockers))
}

// entityUpdate integrates newVel into agent's position (if the
// destination tile is pathable and newVel is non-zero), updates its
// visible orientation from the velocity-history weighted average, and
// runs its motion-state transition.
func (e *Engine) entityUpdate(agent model.AgentID, newVel model.Vec2) {
	ms := e.states[agent]
	pos := e.query.Position(agent)
	newPos := steering.Add(pos, newVel)

	if steering.Len(newVel) > 0 && e.nav.PositionPathable(newPos) {
		height := e.nav.HeightAtPoint(newPos.X, newPos.Z)
		e.query.SetPosition(agent, newPos, height)
		ms.Velocity = newVel

		wma := steering.VelWMA(ms.OrderedVelHist())
		if steering.Len(wma) > model.Epsilon {
			e.query.SetOrientation(agent, steering.OrientationFromVelocity(wma))
		}
	} else {
		ms.Velocity = model.Vec2{}
	}

	// If the agent's current position isn't pathable (only reachable by
	// a scripted teleport bypassing the normal integration path), leave
	// it exactly as it was rather than attempting a state transition. A
	// WAITING agent is exempt: its own blocker covers its position.
	if ms.State != model.Waiting && !e.nav.PositionPathable(e.query.Position(agent)) {
		return
	}

	switch ms.State {
	case model.Moving:
		e.updateMoving(agent, ms)
	case model.SeekEnemies:
		if steering.Len(ms.Vdes) < model.Epsilon {
			e.finishMoving(agent, ms, model.Waiting)
		}
	case model.Waiting:
		ms.WaitTicksLeft--
		if ms.WaitTicksLeft == 0 {
			e.entityUnblock(ms)
			e.emitMotionStart(agent)
			ms.State = ms.WaitPrev
		}
	case model.Arrived:
		// Nothing to do.
	}
}

func (e *Engine) updateMoving(agent model.AgentID, ms *model.MotionState) {
	pos := e.query.Position(agent)
	fl := e.flockForAgent(agent)
	diffToTarget := steering.Sub(fl.Target, pos)
	arriveThresh := e.query.SelectionRadius(agent) * 1.5

	if steering.Len(diffToTarget) < arriveThresh || e.nav.IsMaximallyClose(fl.Dest, pos) {
		e.finishMoving(agent, ms, model.Arrived)
		return
	}

	for _, other := range e.adjacentFlockMembers(agent, fl) {
		if e.states[other].State == model.Arrived {
			e.finishMoving(agent, ms, model.Arrived)
			return
		}
	}

	// If nothing above stopped or gave up progress but the nav service
	// has nothing useful to suggest this tick, stop and wait, retrying
	// after the usual countdown.
	if steering.Len(ms.Vdes) < model.Epsilon {
		e.finishMoving(agent, ms, model.Waiting)
	}
}

// adjacentFlockMembers returns the other members of fl within
// AdjacencySepDist of agent (plus their combined selection radii).
func (e *Engine) adjacentFlockMembers(agent model.AgentID, fl *model.Flock) []model.AgentID {
	pos := e.query.Position(agent)
	radius := e.query.SelectionRadius(agent)

	var out []model.AgentID
	for other := range fl.Members {
		if other == agent {
			continue
		}
		otherPos := e.query.Position(other)
		otherRadius := e.query.SelectionRadius(other)
		if steering.Len(steering.Sub(pos, otherPos)) <= radius+otherRadius+model.AdjacencySepDist {
			out = append(out, other)
		}
	}
	return out
}

// flockKinematics snapshots every member of fl as Kinematics, for the
// cohesion and (unused-but-preserved) alignment forces, which weigh every
// flockmate rather than only spatially-nearby ones.
func (e *Engine) flockKinematics(fl *model.Flock) []steering.Kinematics {
	if fl == nil {
		return nil
	}
	out := make([]steering.Kinematics, 0, len(fl.Members))
	for a := range fl.Members {
		ms := e.states[a]
		out = append(out, kinematicsOf(a, ms, e.query))
	}
	return out
}

// nearbyKinematics returns every non-static, non-self agent within radius
// of pos, for the separation force's near-entities query.
func (e *Engine) nearbyKinematics(self model.AgentID, pos model.Vec2, radius float64) []steering.Kinematics {
	var out []steering.Kinematics
	for a, ms := range e.states {
		if a == self {
			continue
		}
		k := kinematicsOf(a, ms, e.query)
		if k.Stationary() {
			continue
		}
		if steering.Len(steering.Sub(k.Pos, pos)) > radius {
			continue
		}
		out = append(out, k)
	}
	return out
}

// findNeighbours partitions every agent within ClearPathNeighbourRadius
// of pos (excluding self) into dynamic (currently moving) and static
// (currently still) obstacle sets for the ClearPath resolution step.
// Agents with zero selection radius are excluded, the same as the
// original engine's find_neighbours.
func (e *Engine) findNeighbours(self model.AgentID, pos model.Vec2) (dyn, stat []steering.Obstacle) {
	for a, ms := range e.states {
		if a == self {
			continue
		}
		radius := e.query.SelectionRadius(a)
		if radius == 0 {
			continue
		}
		apos := e.query.Position(a)
		if steering.Len(steering.Sub(apos, pos)) > model.ClearPathNeighbourRadius {
			continue
		}
		ob := steering.Obstacle{Pos: apos, Vel: ms.Velocity, Radius: radius}
		if ms.State.Still() {
			stat = append(stat, ob)
		} else {
			dyn = append(dyn, ob)
		}
	}
	return dyn, stat
}

// disbandEmptyFlocksLocked removes flocks all of whose members have
// reached ARRIVED — note this intentionally does not run after pass two
// in the same tick: a flock that every member arrives into during this
// tick survives until the *next* tick's disband pass, exactly as in the
// original single disband-at-tick-start call.
func (e *Engine) disbandEmptyFlocksLocked() {
	kept := e.flocks[:0]
	for _, fl := range e.flocks {
		disband := true
		for a := range fl.Members {
			if e.states[a].State != model.Arrived {
				disband = false
				break
			}
		}
		if !disband {
			kept = append(kept, fl)
		}
	}
	e.flocks = kept
}
