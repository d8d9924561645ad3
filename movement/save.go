package movement

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/mwanga/skirmish-engine/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// savedState is the on-disk shape of one agent's MotionState. Fields are
// spelled out explicitly rather than reusing model.MotionState directly
// so the wire format doesn't silently change shape if that struct grows
// engine-internal fields later.
//
// LastStopPos/LastStopRadius are deliberately NOT part of this shape: they
// describe the live nav-blocker footprint the engine currently holds, and
// restoring a stale footprint from before the save would desync from the
// blocker refcount LoadState's caller re-establishes against the agent's
// actual current position/radius, eventually decreffing a footprint that
// was never increffed. LoadState reconciles both fields from AgentQuery
// instead.
type savedState struct {
	Agent         model.AgentID         `json:"agent"`
	State         model.MotionStateKind `json:"state"`
	Vdes          model.Vec2            `json:"vdes"`
	Vnew          model.Vec2            `json:"vnew"`
	Velocity      model.Vec2            `json:"velocity"`
	Blocking      bool                  `json:"blocking"`
	WaitPrev      model.MotionStateKind `json:"wait_prev"`
	WaitTicksLeft int                   `json:"wait_ticks_left"`
	VelHist       [model.VelHistLen]model.Vec2 `json:"vel_hist"`
	VelHistIdx    int                   `json:"vel_hist_idx"`
}

type savedFlock struct {
	Members []model.AgentID `json:"members"`
	Target  model.Vec2      `json:"target"`
	Dest    model.DestID    `json:"dest"`
}

type savedEngine struct {
	States           []savedState `json:"states"`
	Flocks           []savedFlock `json:"flocks"`
	LastCmdDest      model.DestID `json:"last_cmd_dest"`
	LastCmdDestValid bool         `json:"last_cmd_dest_valid"`
}

// SaveState serializes every agent's motion state and every live flock.
// It does not serialize anything the nav service owns (blocker refcounts,
// destination caches) — restoring those is LoadState's caller's
// responsibility, against the footprints LoadState records for each
// blocking agent (see LoadState). AddEntity does not serve for this: it
// replaces the agent's loaded motion state with a fresh ARRIVED one.
func (e *Engine) SaveState() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := savedEngine{
		LastCmdDest:      e.lastCmdDest,
		LastCmdDestValid: e.lastCmdDestValid,
	}
	for _, ms := range e.states {
		out.States = append(out.States, savedState{
			Agent: ms.Agent, State: ms.State,
			Vdes: ms.Vdes, Vnew: ms.Vnew, Velocity: ms.Velocity,
			Blocking: ms.Blocking,
			WaitPrev: ms.WaitPrev, WaitTicksLeft: ms.WaitTicksLeft,
			VelHist: ms.VelHist, VelHistIdx: ms.VelHistIdx,
		})
	}
	for _, fl := range e.flocks {
		sf := savedFlock{Target: fl.Target, Dest: fl.Dest}
		for a := range fl.Members {
			sf.Members = append(sf.Members, a)
		}
		out.Flocks = append(out.Flocks, sf)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "movement: marshal state")
	}
	return b, nil
}

// LoadState replaces the engine's entire state with what's encoded in b,
// as produced by a prior SaveState. Agents named in the saved state that
// are no longer known to the caller's entity system will simply never be
// queried again; LoadState itself does no existence checking against
// AgentQuery.
//
// For every agent whose saved Blocking is true, the restored footprint is
// taken fresh from AgentQuery — the agent's current position and selection
// radius — rather than from anything in b, since LoadState's caller is
// responsible for re-establishing the nav blocker refcount against the
// agent's actual current footprint, and the footprint recorded at save
// time may no longer match it.
func (e *Engine) LoadState(b []byte) error {
	var in savedEngine
	if err := json.Unmarshal(b, &in); err != nil {
		return errors.Wrap(err, "movement: unmarshal state")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.states = make(map[model.AgentID]*model.MotionState, len(in.States))
	for _, s := range in.States {
		ms := &model.MotionState{
			Agent: s.Agent, State: s.State,
			Vdes: s.Vdes, Vnew: s.Vnew, Velocity: s.Velocity,
			Blocking: s.Blocking,
			WaitPrev: s.WaitPrev, WaitTicksLeft: s.WaitTicksLeft,
			VelHist: s.VelHist, VelHistIdx: s.VelHistIdx,
		}
		if ms.Blocking {
			ms.LastStopPos = e.query.Position(s.Agent)
			ms.LastStopRadius = e.query.SelectionRadius(s.Agent)
		}
		e.states[s.Agent] = ms
	}

	e.flocks = e.flocks[:0]
	for _, sf := range in.Flocks {
		fl := model.NewFlock(sf.Target, sf.Dest)
		for _, a := range sf.Members {
			fl.Add(a)
		}
		e.flocks = append(e.flocks, fl)
	}

	e.lastCmdDest = in.LastCmdDest
	e.lastCmdDestValid = in.LastCmdDestValid
	return nil
}
