package model

// AgentID is the opaque identity of a simulated unit, owned by the
// external entity system. The movement engine never interprets it beyond
// equality and map-keying.
type AgentID uint32

// MotionStateKind is one of the four states an agent's motion can be in.
type MotionStateKind int

const (
	Moving MotionStateKind = iota
	Arrived
	SeekEnemies
	Waiting
)

func (k MotionStateKind) String() string {
	switch k {
	case Moving:
		return "MOVING"
	case Arrived:
		return "ARRIVED"
	case SeekEnemies:
		return "SEEK_ENEMIES"
	case Waiting:
		return "WAITING"
	default:
		return "UNKNOWN"
	}
}

// Still reports whether a state is one of the two "parked" states, in
// which the agent is registered as a nav blocker and has zero velocity.
func (k MotionStateKind) Still() bool {
	return k == Arrived || k == Waiting
}

// Vec2 is a planar vector (XZ plane in the original 3-D engine — the
// vertical coordinate is a pure function of (x, z) via terrain height, so
// the movement engine only ever works in two dimensions).
type Vec2 struct {
	X, Z float64
}

// MotionState is the movement engine's per-agent record. It is the only
// place the engine keeps mutable state about an agent; everything else
// (position, selection radius, faction, max speed) is read from the
// external entity system on demand.
type MotionState struct {
	Agent AgentID
	State MotionStateKind

	// Vdes is this tick's desired velocity as reported by the nav
	// service; Vnew is the post-ClearPath velocity; Velocity is the
	// velocity actually integrated into position last tick.
	Vdes     Vec2
	Vnew     Vec2
	Velocity Vec2

	// Blocking mirrors whether this agent currently holds a nav blocker
	// refcount, and at what footprint, so it can be released exactly
	// even if the agent moves or its selection radius changes while
	// still.
	Blocking       bool
	LastStopPos    Vec2
	LastStopRadius float64

	// WaitPrev/WaitTicksLeft drive the WAITING countdown; WaitPrev is
	// the state to resume once the countdown reaches zero.
	WaitPrev      MotionStateKind
	WaitTicksLeft int

	// VelHist is a ring buffer of the last VelHistLen Vnew samples, used
	// by the orientation filter's weighted moving average.
	VelHist    [VelHistLen]Vec2
	VelHistIdx int
}

// NewMotionState constructs the state an agent is given on AddEntity: it
// starts ARRIVED and immediately claims a blocker at its current position.
func NewMotionState(agent AgentID, pos Vec2, radius float64) *MotionState {
	return &MotionState{
		Agent:          agent,
		State:          Arrived,
		Blocking:       true,
		LastStopPos:    pos,
		LastStopRadius: radius,
	}
}

// PushVelHist records vnew into the ring buffer, advancing the index.
func (ms *MotionState) PushVelHist(vnew Vec2) {
	ms.VelHist[ms.VelHistIdx] = vnew
	ms.VelHistIdx = (ms.VelHistIdx + 1) % VelHistLen
}

// OrderedVelHist returns the ring buffer contents ordered oldest-to-newest.
func (ms *MotionState) OrderedVelHist() [VelHistLen]Vec2 {
	var out [VelHistLen]Vec2
	for i := 0; i < VelHistLen; i++ {
		// ms.VelHistIdx points at the slot the *next* write will land
		// in, i.e. the oldest surviving sample.
		out[i] = ms.VelHist[(ms.VelHistIdx+i)%VelHistLen]
	}
	return out
}
