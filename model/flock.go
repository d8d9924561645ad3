package model

// DestID is the opaque token the nav service produces for a target point;
// it identifies an equivalence class of targets served by the same flow
// field. Two flocks sharing a DestID are always merged into one.
type DestID uint64

// Flock is a set of agents sharing a destination, the unit of collective
// steering. Membership lives on the flock, never on the agent, so an
// agent's flock is always found by scanning (flock counts are small).
type Flock struct {
	Members map[AgentID]struct{}
	Target  Vec2
	Dest    DestID
}

// NewFlock creates an empty flock targeting the given point/dest.
func NewFlock(target Vec2, dest DestID) *Flock {
	return &Flock{
		Members: make(map[AgentID]struct{}),
		Target:  target,
		Dest:    dest,
	}
}

// Add inserts an agent into the flock. Idempotent.
func (f *Flock) Add(agent AgentID) {
	f.Members[agent] = struct{}{}
}

// Remove deletes an agent from the flock, if present.
func (f *Flock) Remove(agent AgentID) {
	delete(f.Members, agent)
}

// Contains reports whether agent is a member.
func (f *Flock) Contains(agent AgentID) bool {
	_, ok := f.Members[agent]
	return ok
}

// Empty reports whether the flock has no members left; empty flocks are
// destroyed before the end of the tick that emptied them.
func (f *Flock) Empty() bool {
	return len(f.Members) == 0
}

// Merge absorbs other's members into f. Used when two flocks' DestID
// collide (at most one flock per destination identifier may exist).
func (f *Flock) Merge(other *Flock) {
	for a := range other.Members {
		f.Members[a] = struct{}{}
	}
}
