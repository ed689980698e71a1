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

package engine

import (
	"manetsim/core"

	"go.uber.org/zap"
)

// routeAge marks a never-heard-from routing table entry.
const routeAge = -1

// OLSR is the proactive protocol: every node periodically floods a
// LinkState about itself through multi-point relays (MPRs), and every
// other node maintains a routing table of "last heard" timestamps per
// destination. Grounded structurally on kprusa-olsr-simulation/node.go's
// calculateMPRs for the greedy set-cover selection, and on
// original_source/simulation.py for the discovery/forwarding loop shape.
type OLSR struct {
	source, target, numNodes int
	timeout                  int

	queues         *core.QueueHolder
	mpr            map[int][]int
	routingTables  map[int]map[int]int // routingTables[m][dst] = last-heard timestamp
	received       map[int]int         // dedup for forwarded RouteRequests, keyed by node
	lastTimeout    int
	lastLinkUpdate int

	rng *core.Rand

	finished bool
	result   Result

	log *zap.SugaredLogger
	metrics
}

// NewOLSR creates an OLSR engine, seeds every node's routing table to
// routeAge for every destination, and enqueues the slot-0 RouteRequest and
// LinkState beacons.
func NewOLSR(source, target, numNodes, capacity int, rng *core.Rand, log *zap.SugaredLogger) *OLSR {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &OLSR{
		source:        source,
		target:        target,
		numNodes:      numNodes,
		timeout:       cfg.Timeout,
		queues:        core.NewQueueHolder(numNodes, capacity),
		mpr:           make(map[int][]int),
		routingTables: make(map[int]map[int]int),
		received:      make(map[int]int),
		rng:           rng,
		log:           log,
		metrics:       newMetrics(capacity),
	}
	for n := 0; n < numNodes; n++ {
		table := make(map[int]int, numNodes)
		for d := 0; d < numNodes; d++ {
			table[d] = routeAge
		}
		e.routingTables[n] = table
	}
	log.Infow("olsr constructed", "source", source, "target", target, "numNodes", numNodes)
	if source == target {
		e.finished = true
		e.result.Timeslot = 0
		return e
	}
	e.beginDiscover(0)
	e.beaconAll(0)
	return e
}

func (e *OLSR) beginDiscover(timeslot int) {
	e.queues.Queue(e.source).PushBack(core.NewRouteRequest(timeslot, e.source, e.target))
}

// beaconAll enqueues a LinkState about itself at every node's own queue.
func (e *OLSR) beaconAll(timeslot int) {
	for n := 0; n < e.numNodes; n++ {
		e.queues.Queue(n).PushBack(core.NewLinkState(timeslot, n))
	}
}

// ChooseMPR recomputes every node's multi-point-relay set by greedy set
// cover over each node's two-hop neighborhood, clearing the previous set
// first (the reference implementation appends without clearing). Nodes are
// visited in ascending id order, not Go's randomized map iteration: each
// chooseMPRFor call draws from the shared seeded rng, so the order in which
// nodes consume that stream must itself be fixed for a run to be
// reproducible across repeats of the same seed.
func (e *OLSR) ChooseMPR(neighbors map[int][]int) {
	for n := 0; n < e.numNodes; n++ {
		e.mpr[n] = e.chooseMPRFor(n, neighbors)
	}
}

func (e *OLSR) chooseMPRFor(n int, neighbors map[int][]int) []int {
	own := neighbors[n]
	ownSet := make(map[int]bool, len(own))
	for _, m := range own {
		ownSet[m] = true
	}

	h2 := make(map[int]bool)
	for _, k := range own {
		for _, m := range neighbors[k] {
			if m != n && !ownSet[m] {
				h2[m] = true
			}
		}
	}

	order := e.rng.Perm(len(own))
	var selected []int
	for _, idx := range order {
		if len(h2) == 0 {
			break
		}
		k := own[idx]
		covered := 0
		for _, m := range neighbors[k] {
			if h2[m] {
				covered++
			}
		}
		if covered == 0 {
			continue
		}
		selected = append(selected, k)
		for _, m := range neighbors[k] {
			delete(h2, m)
		}
	}
	return selected
}

func (e *OLSR) Finished() bool { return e.finished }

func (e *OLSR) Result() Result {
	r := e.result
	r.Finished = e.finished
	r.TotalOverhead = e.overhead
	r.QueueUsagePercent = e.usagePercent()
	return r
}

// Step advances OLSR by one timeslot: periodic timeout-rediscovery and
// link-state beaconing, then per-transmitter forwarding restricted to the
// current MPR set.
func (e *OLSR) Step(timeslot int, neighbors map[int][]int, transmitters []int) {
	if e.finished {
		return
	}
	if timeslot-e.lastTimeout > e.timeout {
		e.beginDiscover(timeslot)
		e.lastTimeout = timeslot
	}
	if timeslot-e.lastLinkUpdate >= cfg.LinkUpdate {
		e.beaconAll(timeslot)
		e.lastLinkUpdate = timeslot
	}
	e.sampleQueues(e.queues)

	for _, node := range transmitters {
		if e.finished {
			return
		}
		q := e.queues.Queue(node)
		if q == nil || q.Empty() {
			continue
		}
		pkt := q.PopFront()
		e.forward(timeslot, node, pkt, neighbors)
	}
}

func (e *OLSR) forward(timeslot, node int, pkt *core.Packet, neighbors map[int][]int) {
	relays := e.currentMPRs(node, neighbors)
	var sent bool
	switch pkt.Kind {
	case core.RouteRequest:
		sent = e.forwardRequest(timeslot, pkt, relays)
	case core.LinkState:
		sent = e.forwardLinkState(pkt, relays)
	default:
		return
	}
	if !sent {
		pkt.Retransmits++
		e.log.Debugw("olsr forward rejected, requeued", "node", node, "kind", pkt.Kind, "retransmits", pkt.Retransmits)
		e.queues.Queue(node).PushFront(pkt)
	}
}

// currentMPRs returns node's MPR set filtered to ids that are still
// neighbors, since MPRs may be stale between recomputations.
func (e *OLSR) currentMPRs(node int, neighbors map[int][]int) []int {
	cur := make(map[int]bool, len(neighbors[node]))
	for _, m := range neighbors[node] {
		cur[m] = true
	}
	var relays []int
	for _, m := range e.mpr[node] {
		if cur[m] {
			relays = append(relays, m)
		}
	}
	return relays
}

func (e *OLSR) forwardRequest(timeslot int, pkt *core.Packet, relays []int) bool {
	sent := false
	for _, m := range relays {
		e.addOverhead(1)
		if m == e.target || e.validRoute(m, e.target, timeslot) {
			e.finished = true
			e.result.Timeslot = timeslot
			e.log.Infow("olsr finished", "timeslot", timeslot, "overhead", e.overhead)
			return true
		}
		last, seen := e.received[m]
		if !seen || last < pkt.Timestamp {
			e.received[m] = pkt.Timestamp
			e.queues.Queue(m).PushBack(pkt.AppendPath(m))
			sent = true
		}
	}
	return sent
}

func (e *OLSR) forwardLinkState(pkt *core.Packet, relays []int) bool {
	sent := false
	for _, m := range relays {
		table := e.routingTables[m]
		if table == nil {
			continue
		}
		if table[pkt.Source] < pkt.Timestamp {
			table[pkt.Source] = pkt.Timestamp
			e.addOverhead(1)
			e.queues.Queue(m).PushBack(pkt.AppendPath(m))
			sent = true
		}
	}
	return sent
}

// validRoute reports whether m's routing table carries a route to dst that
// is both known (age >= 0) and fresh (heard within the last LinkUpdate
// slots).
func (e *OLSR) validRoute(m, dst, timeslot int) bool {
	table := e.routingTables[m]
	if table == nil {
		return false
	}
	age := table[dst]
	return age >= 0 && timeslot-age <= cfg.LinkUpdate
}
