package movement

import "github.com/mwanga/skirmish-engine/model"

// SetDest commands a single agent toward target: if a flock already
// exists for the resolved destination it joins that flock, otherwise a
// new one-agent flock is created via SetDestSelection.
func (e *Engine) SetDest(agent model.AgentID, target model.Vec2) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stationary(agent) {
		return
	}

	pos := e.query.Position(agent)
	snapped, destID := e.nav.ClosestReachableDest(pos, target)

	existing := e.flockForDest(destID)
	current := e.flockForAgent(agent)
	if existing != nil && existing == current {
		return
	}

	if existing != nil {
		e.removeFromFlocks(agent)
		existing.Add(agent)

		ms := e.states[agent]
		if ms.State.Still() {
			e.entityUnblock(ms)
			e.emitMotionStart(agent)
		}
		ms.State = model.Moving
		return
	}

	e.setDestSelectionLocked([]model.AgentID{agent}, snapped)
}

// SetDestSelection commands a whole selection set toward target as one
// flock, the way the original engine's make_flock_from_selection does:
// repeated ids in agents are harmless (a repeat is already MOVING and
// flock membership is a set), resolved to the closest reachable point
// from the first agent's position (an approximation that can be wrong
// when the selection spans disconnected regions of the map — handling
// that case well is out of scope), merged into any existing flock sharing
// the resolved destination, and created fresh otherwise.
func (e *Engine) SetDestSelection(agents []model.AgentID, target model.Vec2) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(agents) == 0 {
		return false
	}
	firstPos := e.query.Position(agents[0])
	snapped, _ := e.nav.ClosestReachableDest(firstPos, target)
	return e.setDestSelectionLocked(agents, snapped)
}

func (e *Engine) setDestSelectionLocked(agents []model.AgentID, target model.Vec2) bool {
	for _, a := range agents {
		if e.stationary(a) {
			continue
		}
		e.removeFromFlocks(a)
	}

	destID := e.nav.DestIDForPos(target)
	newFlock := model.NewFlock(target, destID)

	for _, a := range agents {
		if e.stationary(a) {
			continue
		}
		ms, ok := e.states[a]
		if !ok {
			continue
		}
		if ms.State.Still() {
			e.entityUnblock(ms)
			e.emitMotionStart(a)
		}
		newFlock.Add(a)
		ms.State = model.Moving
	}

	if newFlock.Empty() {
		return false
	}

	if merge := e.flockForDest(destID); merge != nil {
		merge.Merge(newFlock)
	} else {
		e.flocks = append(e.flocks, newFlock)
	}

	e.lastCmdDest = destID
	e.lastCmdDestValid = true
	return true
}

// SetSeekEnemies pulls agent out of any flock and switches it into
// SEEK_ENEMIES, where it steers toward the nearest opposing-faction
// presence instead of a commanded point.
func (e *Engine) SetSeekEnemies(agent model.AgentID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ms, ok := e.states[agent]
	if !ok {
		return
	}

	e.removeFromFlocks(agent)

	if ms.State.Still() {
		e.entityUnblock(ms)
		e.emitMotionStart(agent)
	}
	ms.State = model.SeekEnemies
}

// LastCommandedDest returns the DestID of the most recent SetDest /
// SetDestSelection call, if any has happened yet.
func (e *Engine) LastCommandedDest() (model.DestID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastCmdDest, e.lastCmdDestValid
}
