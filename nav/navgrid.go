package nav

import (
	"math"
	"sync"

	"github.com/mwanga/skirmish-engine/model"
)

// Grid is an in-memory nav.Service adapter: a uniform tile grid with a
// static impassability mask, a refcounted blocker overlay, and straight-line
// (rather than flow-field) desired-velocity queries. It is grounded on the
// teacher's route/world loaders (model/route_loader.go), generalized from a
// 1-D sequence of stops to a 2-D tile grid, and is enough to drive the
// batch tool and the test suite without a real flow-field solver.
type Grid struct {
	mu sync.RWMutex

	TileW, TileD float64
	Width, Depth int // tile counts along X and Z

	// impassable[z][x] is true for statically unwalkable tiles (walls,
	// water, etc).
	impassable [][]bool

	// height is a simple per-tile terrain height sample.
	height [][]float64

	// blockers maps a quantized footprint key to its live refcount and
	// radius; PositionPathable treats a covered tile as unpathable.
	blockers map[blockerKey]int

	// destinations caches the DestID assigned to each distinct target
	// point snapped so far, keyed by its quantized coordinates, so that
	// repeated commands to the same point resolve to the same DestID,
	// since at most one flock may exist per destination identifier.
	destinations map[quant]model.DestID
	nextDest     model.DestID
}

type blockerKey struct {
	tx, tz int
	radius int // quantized radius, so UpdateSelectionRadius changes get a distinct key
}

type quant struct{ x, z int }

// NewGrid builds a Width x Depth grid of TileW x TileD tiles, all
// initially pathable and flat.
func NewGrid(width, depth int, tileW, tileD float64) *Grid {
	imp := make([][]bool, depth)
	ht := make([][]float64, depth)
	for z := 0; z < depth; z++ {
		imp[z] = make([]bool, width)
		ht[z] = make([]float64, width)
	}
	return &Grid{
		TileW: tileW, TileD: tileD,
		Width: width, Depth: depth,
		impassable:   imp,
		height:       ht,
		blockers:     make(map[blockerKey]int),
		destinations: make(map[quant]model.DestID),
	}
}

// SetImpassable marks/unmarks a tile's static impassability.
func (g *Grid) SetImpassable(tx, tz int, v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inBounds(tx, tz) {
		g.impassable[tz][tx] = v
	}
}

// SetHeight sets a tile's terrain height sample.
func (g *Grid) SetHeight(tx, tz int, h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inBounds(tx, tz) {
		g.height[tz][tx] = h
	}
}

func (g *Grid) inBounds(tx, tz int) bool {
	return tx >= 0 && tx < g.Width && tz >= 0 && tz < g.Depth
}

func (g *Grid) tileOf(x, z float64) (int, int) {
	return int(math.Floor(x / g.TileW)), int(math.Floor(z / g.TileD))
}

// ClosestReachableDest returns target unchanged when its tile is statically
// passable, and otherwise the center of the nearest statically passable
// tile (searched in growing square rings around target's tile), together
// with a DestID derived from the returned point's quantized position. pos
// is not consulted: reachability from pos is not checked. Note this
// approximation is computed from the first selected agent's position only
// by the caller, not by the adapter.
func (g *Grid) ClosestReachableDest(pos, target model.Vec2) (model.Vec2, model.DestID) {
	snapped := g.snapToPathable(target)
	return snapped, g.DestIDForPos(snapped)
}

func (g *Grid) snapToPathable(target model.Vec2) model.Vec2 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	tx, tz := g.tileOf(target.X, target.Z)
	if g.inBounds(tx, tz) && !g.impassable[tz][tx] {
		return target
	}
	// Spiral outward for the nearest pathable tile center.
	for r := 1; r < g.Width+g.Depth; r++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dz)) != r {
					continue
				}
				nx, nz := tx+dx, tz+dz
				if g.inBounds(nx, nz) && !g.impassable[nz][nx] {
					return model.Vec2{X: (float64(nx) + 0.5) * g.TileW, Z: (float64(nz) + 0.5) * g.TileD}
				}
			}
		}
	}
	return target
}

// DestIDForPos returns a stable DestID for a quantized target point.
func (g *Grid) DestIDForPos(target model.Vec2) model.DestID {
	g.mu.Lock()
	defer g.mu.Unlock()
	q := quant{x: int(math.Round(target.X * 4)), z: int(math.Round(target.Z * 4))}
	if id, ok := g.destinations[q]; ok {
		return id
	}
	g.nextDest++
	g.destinations[q] = g.nextDest
	return g.nextDest
}

// HasDestLOS walks a coarse sample of the segment from pos to the
// destination's cached target tile, reporting false if any sampled tile is
// impassable.
func (g *Grid) HasDestLOS(dest model.DestID, pos model.Vec2) bool {
	target, ok := g.targetForDest(dest)
	if !ok {
		return false
	}
	const samples = 16
	g.mu.RLock()
	defer g.mu.RUnlock()
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		x := pos.X + (target.X-pos.X)*t
		z := pos.Z + (target.Z-pos.Z)*t
		tx, tz := g.tileOf(x, z)
		if g.inBounds(tx, tz) && g.impassable[tz][tx] {
			return false
		}
	}
	return true
}

func (g *Grid) targetForDest(dest model.DestID) (model.Vec2, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for q, id := range g.destinations {
		if id == dest {
			return model.Vec2{X: float64(q.x) / 4, Z: float64(q.z) / 4}, true
		}
	}
	return model.Vec2{}, false
}

// PositionPathable reports whether pos is walkable: within bounds,
// statically passable, and not in a tile covered by a live blocker
// footprint (a tile is covered when its center lies inside the footprint
// circle, which is centered on the center of the tile it was claimed in).
func (g *Grid) PositionPathable(pos model.Vec2) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	tx, tz := g.tileOf(pos.X, pos.Z)
	if !g.inBounds(tx, tz) || g.impassable[tz][tx] {
		return false
	}
	px := (float64(tx) + 0.5) * g.TileW
	pz := (float64(tz) + 0.5) * g.TileD
	for bk, refs := range g.blockers {
		if refs <= 0 {
			continue
		}
		cx := (float64(bk.tx) + 0.5) * g.TileW
		cz := (float64(bk.tz) + 0.5) * g.TileD
		r := float64(bk.radius) / 100.0
		dx, dz := px-cx, pz-cz
		if dx*dx+dz*dz < r*r {
			return false
		}
	}
	return true
}

// DesiredPointSeekVelocity returns the unit straight-line direction toward
// target, or the zero vector within Epsilon of it — a simplified flow field
// standing in for the real solver, since the solver itself is out of scope.
func (g *Grid) DesiredPointSeekVelocity(dest model.DestID, pos, target model.Vec2) model.Vec2 {
	dir := model.Vec2{X: target.X - pos.X, Z: target.Z - pos.Z}
	l := math.Sqrt(dir.X*dir.X + dir.Z*dir.Z)
	if l < model.Epsilon {
		return model.Vec2{}
	}
	return model.Vec2{X: dir.X / l, Z: dir.Z / l}
}

// DesiredEnemySeekVelocity is a stub returning the zero vector: the real
// enemy-location query belongs to the nav/vision service, out of scope
// here. Adapters embedding Grid in a real deployment override this by
// wrapping Grid and intercepting the call.
func (g *Grid) DesiredEnemySeekVelocity(pos model.Vec2, faction int) model.Vec2 {
	return model.Vec2{}
}

// BlockersIncref adds a live refcount for the footprint at (pos, radius).
func (g *Grid) BlockersIncref(pos model.Vec2, radius float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	tx, tz := g.tileOf(pos.X, pos.Z)
	k := blockerKey{tx: tx, tz: tz, radius: int(math.Round(radius * 100))}
	g.blockers[k]++
}

// BlockersDecref releases one refcount for the footprint at (pos, radius).
// Decreffing a footprint with no live refcount is a caller invariant
// violation: the adapter panics rather than silently ignoring it.
func (g *Grid) BlockersDecref(pos model.Vec2, radius float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	tx, tz := g.tileOf(pos.X, pos.Z)
	k := blockerKey{tx: tx, tz: tz, radius: int(math.Round(radius * 100))}
	if g.blockers[k] <= 0 {
		panic("nav: blocker decref with no matching incref")
	}
	g.blockers[k]--
	if g.blockers[k] == 0 {
		delete(g.blockers, k)
	}
}

// IsMaximallyClose reports true once pos is within one tile width of the
// destination's target.
func (g *Grid) IsMaximallyClose(dest model.DestID, pos model.Vec2) bool {
	target, ok := g.targetForDest(dest)
	if !ok {
		return false
	}
	dx, dz := pos.X-target.X, pos.Z-target.Z
	thresh := (g.TileW + g.TileD) / 2
	return math.Sqrt(dx*dx+dz*dz) <= thresh
}

// TileDims returns the grid's tile width along each axis.
func (g *Grid) TileDims() (float64, float64) { return g.TileW, g.TileD }

// HeightAtPoint samples the nearest tile's height.
func (g *Grid) HeightAtPoint(x, z float64) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	tx, tz := g.tileOf(x, z)
	if !g.inBounds(tx, tz) {
		return 0
	}
	return g.height[tz][tx]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
