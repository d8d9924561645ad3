package movement

import (
	"sync"

	"github.com/mwanga/skirmish-engine/events"
	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/nav"
	"github.com/mwanga/skirmish-engine/telemetry"
)

// Engine is the movement module's context: every package-level global the
// original engine keeps (the entity-state table, the flock vector, the
// last-commanded destination) lives here instead, as explicit fields on a
// value callers construct and own. This also means more than one Engine
// can coexist (e.g. one per match instance in a server hosting several
// games), which a package-global table could never support.
type Engine struct {
	mu sync.Mutex

	nav   nav.Service
	query AgentQuery
	bus   events.Bus
	stats *telemetry.Metrics

	states map[model.AgentID]*model.MotionState
	flocks []*model.Flock

	moveOnLeftClick   bool
	attackOnLeftClick bool

	lastCmdDest      model.DestID
	lastCmdDestValid bool
}

// New constructs an empty Engine. stats may be nil to disable metrics.
func New(navSvc nav.Service, query AgentQuery, bus events.Bus, stats *telemetry.Metrics) *Engine {
	return &Engine{
		nav:    navSvc,
		query:  query,
		bus:    bus,
		stats:  stats,
		states: make(map[model.AgentID]*model.MotionState),
	}
}

// AddEntity registers agent with the engine, starting it ARRIVED and
// immediately claiming a nav blocker at its current position.
func (e *Engine) AddEntity(agent model.AgentID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.query.Position(agent)
	radius := e.query.SelectionRadius(agent)
	ms := model.NewMotionState(agent, pos, radius)
	e.states[agent] = ms
	e.nav.BlockersIncref(pos, radius)
}

// RemoveEntity stops and unregisters agent, releasing its blocker if it
// holds one.
func (e *Engine) RemoveEntity(agent model.AgentID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ms, ok := e.states[agent]
	if !ok {
		return
	}
	e.stopLocked(agent, ms)
	if ms.Blocking {
		e.nav.BlockersDecref(ms.LastStopPos, ms.LastStopRadius)
		ms.Blocking = false
	}
	delete(e.states, agent)
}

// Stop halts agent in place: it becomes ARRIVED wherever it currently is
// and leaves any flock it was a member of.
func (e *Engine) Stop(agent model.AgentID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ms, ok := e.states[agent]
	if !ok {
		return
	}
	e.stopLocked(agent, ms)
}

func (e *Engine) stopLocked(agent model.AgentID, ms *model.MotionState) {
	if !ms.State.Still() {
		e.finishMoving(agent, ms, model.Arrived)
	}
	e.removeFromFlocks(agent)
	ms.State = model.Arrived
}

// GetDest returns the target point of the flock agent belongs to, if any.
func (e *Engine) GetDest(agent model.AgentID) (model.Vec2, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fl := e.flockForAgent(agent)
	if fl == nil {
		return model.Vec2{}, false
	}
	return fl.Target, true
}

// UpdatePos re-homes agent's blocker footprint to pos, for callers (e.g.
// a scripted teleport) that move an agent outside the normal tick
// integration path. A no-op if agent isn't currently blocking.
func (e *Engine) UpdatePos(agent model.AgentID, pos model.Vec2) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ms, ok := e.states[agent]
	if !ok || !ms.Blocking {
		return
	}
	radius := e.query.SelectionRadius(agent)
	e.nav.BlockersDecref(ms.LastStopPos, ms.LastStopRadius)
	e.nav.BlockersIncref(pos, radius)
	ms.LastStopPos = pos
	ms.LastStopRadius = radius
}

// UpdateSelectionRadius re-homes agent's blocker footprint to the given
// radius at its last stop position. A no-op if agent isn't blocking.
func (e *Engine) UpdateSelectionRadius(agent model.AgentID, radius float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ms, ok := e.states[agent]
	if !ok || !ms.Blocking {
		return
	}
	e.nav.BlockersDecref(ms.LastStopPos, ms.LastStopRadius)
	e.nav.BlockersIncref(ms.LastStopPos, radius)
	ms.LastStopRadius = radius
}

// SetMoveOnLeftClick and SetAttackOnLeftClick toggle the cursor-command
// mode a UI layer would consult to decide what a left click does; the
// engine only remembers the flag, it has no input handling of its own.
func (e *Engine) SetMoveOnLeftClick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveOnLeftClick = true
	e.attackOnLeftClick = false
}

func (e *Engine) SetAttackOnLeftClick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attackOnLeftClick = true
	e.moveOnLeftClick = false
}

// ClickMode reports the current left-click command mode.
func (e *Engine) ClickMode() (move, attack bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveOnLeftClick, e.attackOnLeftClick
}

// --- flock bookkeeping -----------------------------------------------

func (e *Engine) flockForAgent(agent model.AgentID) *model.Flock {
	for _, fl := range e.flocks {
		if fl.Contains(agent) {
			return fl
		}
	}
	return nil
}

func (e *Engine) flockForDest(dest model.DestID) *model.Flock {
	for _, fl := range e.flocks {
		if fl.Dest == dest {
			return fl
		}
	}
	return nil
}

// removeFromFlocks pulls agent out of whatever flock it's in and discards
// any flock left empty by the removal.
func (e *Engine) removeFromFlocks(agent model.AgentID) {
	kept := e.flocks[:0]
	for _, fl := range e.flocks {
		fl.Remove(agent)
		if !fl.Empty() {
			kept = append(kept, fl)
		}
	}
	e.flocks = kept
}

func (e *Engine) stationary(agent model.AgentID) bool {
	return e.query.MaxSpeed(agent) <= 0
}

func (e *Engine) emitMotionStart(agent model.AgentID) {
	if e.bus != nil {
		e.bus.Publish(string(events.MotionStart), events.MotionEvent{Agent: uint32(agent)})
	}
}

func (e *Engine) emitMotionEnd(agent model.AgentID) {
	if e.bus != nil {
		e.bus.Publish(string(events.MotionEnd), events.MotionEvent{Agent: uint32(agent)})
	}
}

// entityBlock claims a nav blocker for agent at its current position,
// recording the footprint so it can be released exactly later even if
// position or radius change while still blocking.
func (e *Engine) entityBlock(agent model.AgentID, ms *model.MotionState) {
	pos := e.query.Position(agent)
	radius := e.query.SelectionRadius(agent)
	e.nav.BlockersIncref(pos, radius)
	ms.Blocking = true
	ms.LastStopPos = pos
	ms.LastStopRadius = radius
}

// entityUnblock releases agent's current nav blocker footprint.
func (e *Engine) entityUnblock(ms *model.MotionState) {
	e.nav.BlockersDecref(ms.LastStopPos, ms.LastStopRadius)
	ms.Blocking = false
}

// finishMoving transitions agent from a moving state into newState
// (Arrived or Waiting), notifying MotionEnd, flipping to an aggressive
// combat stance if combatable, and reclaiming its nav blocker.
func (e *Engine) finishMoving(agent model.AgentID, ms *model.MotionState, newState model.MotionStateKind) {
	e.emitMotionEnd(agent)
	if e.query.Combatable(agent) {
		e.query.SetCombatStanceAggressive(agent)
	}

	if newState == model.Waiting {
		ms.WaitPrev = ms.State
		ms.WaitTicksLeft = model.WaitTicks
	}

	ms.State = newState
	ms.Velocity = model.Vec2{}
	ms.Vnew = model.Vec2{}

	e.entityBlock(agent, ms)
}
