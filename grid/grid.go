//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package grid

import (
	"manetsim/core"

	"go.uber.org/zap"
)

const emptyCell = -1

// Grid is a sparse swarm of radio nodes on a square integer grid. It owns
// the occupancy index, the ordered device list, the neighbor map and a
// cached sparsity scalar (spec §3). All mutating operations either fully
// apply and preserve the grid's invariants, or fail and leave state
// unchanged (spec §7).
type Grid struct {
	size      int
	occupancy [][]int   // occupancy[x][y] = node id, or emptyCell
	devices   []*Node   // in creation order; devices[i].ID() == i
	neighbors map[int][]int
	sparsity  float64
	radius    float64
	rng       *core.Rand
	log       *zap.SugaredLogger
}

// New builds a grid of side size, populated with floor(size*size/5) nodes
// at distinct random coordinates (rejection sampling) using a seeded RNG.
// Rejects size < 1 (spec §4.1). A swarm of zero nodes is only possible
// when size itself is small enough that floor(size*size/5) == 0.
func New(size int, seed int64, log *zap.SugaredLogger) (*Grid, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	g := &Grid{
		size:      size,
		radius:    cfg.RadioRadius,
		rng:       core.NewRand(seed),
		neighbors: make(map[int][]int),
		log:       log,
	}
	g.occupancy = make([][]int, size)
	for x := range g.occupancy {
		g.occupancy[x] = make([]int, size)
		for y := range g.occupancy[x] {
			g.occupancy[x][y] = emptyCell
		}
	}
	g.populate()
	g.findNeighborsAll()
	g.recomputeSparsity()
	log.Infow("grid populated", "size", size, "nodes", len(g.devices), "sparsity", g.sparsity)
	return g, nil
}

// populate places floor(size*size/5) nodes at unique random coordinates.
func (g *Grid) populate() {
	n := (g.size * g.size) / 5
	for i := 0; i < n; i++ {
		for {
			x := g.rng.Intn(g.size)
			y := g.rng.Intn(g.size)
			if g.occupancy[x][y] != emptyCell {
				continue // rejection sampling: cell taken, re-roll
			}
			node := &Node{id: i, Pos: Point{X: x, Y: y}}
			g.occupancy[x][y] = i
			g.devices = append(g.devices, node)
			break
		}
	}
}

// NumNodes returns the number of placed devices.
func (g *Grid) NumNodes() int {
	return len(g.devices)
}

// Size returns the grid's side length.
func (g *Grid) Size() int {
	return g.size
}

// Node returns the device with the given id, or nil if out of range.
func (g *Grid) Node(id int) *Node {
	if id < 0 || id >= len(g.devices) {
		return nil
	}
	return g.devices[id]
}

// Devices returns the ordered device list (creation order).
func (g *Grid) Devices() []*Node {
	return g.devices
}

// Neighbors returns a defensive copy of the full neighbor map.
func (g *Grid) Neighbors() map[int][]int {
	out := make(map[int][]int, len(g.neighbors))
	for id, list := range g.neighbors {
		out[id] = core.Clone(list)
	}
	return out
}

// NeighborsOf returns the neighbor ids of a single node.
func (g *Grid) NeighborsOf(id int) []int {
	return core.Clone(g.neighbors[id])
}

// Sparsity returns the mean neighbor-list length over all devices.
func (g *Grid) Sparsity() float64 {
	return g.sparsity
}

func (g *Grid) recomputeSparsity() {
	if len(g.devices) == 0 {
		g.sparsity = 0
		return
	}
	total := 0
	for _, list := range g.neighbors {
		total += len(list)
	}
	g.sparsity = float64(total) / float64(len(g.devices))
}

//----------------------------------------------------------------------
// Neighbor rebuild
//----------------------------------------------------------------------

// findNeighborsAll rebuilds the neighbor list of every device.
func (g *Grid) findNeighborsAll() {
	for _, n := range g.devices {
		g.findNeighbors(n.ID())
	}
}

// findNeighbors rebuilds the neighbor list of a single node by scanning the
// bounding box [x-R,x+R]x[y-R,y+R] clamped to the grid, per spec §4.1.
func (g *Grid) findNeighbors(id int) {
	n := g.devices[id]
	r := int(g.radius)
	xmin, xmax := clamp(n.Pos.X-r, 0, g.size-1), clamp(n.Pos.X+r, 0, g.size-1)
	ymin, ymax := clamp(n.Pos.Y-r, 0, g.size-1), clamp(n.Pos.Y+r, 0, g.size-1)

	list := make([]int, 0)
	for x := xmin; x <= xmax; x++ {
		for y := ymin; y <= ymax; y++ {
			other := g.occupancy[x][y]
			if other == emptyCell || other == id {
				continue
			}
			if n.Pos.Distance(g.devices[other].Pos) <= g.radius {
				list = append(list, other)
			}
		}
	}
	g.neighbors[id] = list
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

//----------------------------------------------------------------------
// Movement
//----------------------------------------------------------------------

// moveDevice moves the occupant of `from` to `to`. Fails (and leaves state
// unchanged) if `from` is empty or `to` is occupied. On success, rebuilds
// neighbor lists for the moved node plus both its prior and new neighbor
// sets (spec §4.1).
func (g *Grid) moveDevice(from, to Point) error {
	if !g.inBounds(to) {
		g.log.Debugw("move rejected: out of bounds", "from", from, "to", to)
		return ErrOutOfBounds
	}
	id := g.occupancy[from.X][from.Y]
	if id == emptyCell {
		g.log.Debugw("move rejected: source cell empty", "from", from)
		return ErrEmptyCell
	}
	if g.occupancy[to.X][to.Y] != emptyCell {
		g.log.Debugw("move rejected: target cell occupied", "to", to)
		return ErrOccupied
	}

	prevNeighbors := core.Clone(g.neighbors[id])

	g.occupancy[from.X][from.Y] = emptyCell
	g.occupancy[to.X][to.Y] = id
	g.devices[id].Pos = to

	g.findNeighbors(id)
	rebuilt := map[int]bool{id: true}
	for _, m := range prevNeighbors {
		if !rebuilt[m] {
			g.findNeighbors(m)
			rebuilt[m] = true
		}
	}
	for _, m := range g.neighbors[id] {
		if !rebuilt[m] {
			g.findNeighbors(m)
			rebuilt[m] = true
		}
	}
	g.recomputeSparsity()
	return nil
}

func (g *Grid) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

//----------------------------------------------------------------------
// Mutation
//----------------------------------------------------------------------

const maxMoveAttempts = 3

// Mutate attempts, for every device in arrival order, up to 3 random
// single-cell displacements within the mobility radius (the radio radius).
// A candidate is rejected if the target cell is occupied/off-grid, or if
// the move would split the swarm. Devices that exhaust their attempts are
// retried once more after every other device has had its turn. Returns a
// per-node movement delta: 1 for nodes that moved this call, 0 otherwise
// (spec §4.1).
func (g *Grid) Mutate() []int {
	delta := make([]int, len(g.devices))
	var stragglers []int

	for _, n := range g.devices {
		if g.tryMove(n.ID()) {
			delta[n.ID()] = 1
		} else {
			stragglers = append(stragglers, n.ID())
		}
	}
	for _, id := range stragglers {
		if g.tryMove(id) {
			delta[id] = 1
		}
	}
	return delta
}

// tryMove attempts up to maxMoveAttempts random displacements of node id
// within the mobility radius, committing (and stopping) on the first
// candidate that stays in-bounds, lands on an empty cell, and preserves
// swarm connectivity.
func (g *Grid) tryMove(id int) bool {
	n := g.devices[id]
	r := int(g.radius)
	for attempt := 0; attempt < maxMoveAttempts; attempt++ {
		dx := g.rng.Intn(2*r+1) - r
		dy := g.rng.Intn(2*r+1) - r
		if dx == 0 && dy == 0 {
			continue
		}
		to := Point{X: n.Pos.X + dx, Y: n.Pos.Y + dy}
		if !g.inBounds(to) {
			continue
		}
		if n.Pos.Distance(to) > g.radius {
			continue
		}
		if g.occupancy[to.X][to.Y] != emptyCell {
			continue
		}
		from := n.Pos
		if err := g.moveDevice(from, to); err != nil {
			continue
		}
		if !g.IsSingleSwarm() {
			g.log.Debugw("move rejected: would split swarm", "id", id, "from", from, "to", to)
			_ = g.moveDevice(to, from)
			continue
		}
		return true
	}
	return false
}

//----------------------------------------------------------------------
// Connectivity
//----------------------------------------------------------------------

// IsSingleSwarm returns true iff a BFS from any device, walking the
// neighbor relation, visits every device (spec §4.1, §8).
func (g *Grid) IsSingleSwarm() bool {
	if len(g.devices) == 0 {
		return true
	}
	visited := make(map[int]bool, len(g.devices))
	queue := []int{g.devices[0].ID()}
	visited[queue[0]] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, m := range g.neighbors[cur] {
			if !visited[m] {
				visited[m] = true
				queue = append(queue, m)
			}
		}
	}
	return len(visited) == len(g.devices)
}
