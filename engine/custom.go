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
	"sort"

	"manetsim/core"

	"go.uber.org/zap"
)

// Custom is the mobility-aware variant: instead of flooding, a forwarding
// node prefers the neighbors that have moved least often, and falls
// back to a broadcast once its reverse path to a reply's destination goes
// stale. Grounded on AODV's discovery/reply skeleton (same packet family,
// same timeout/retransmit rules) with the neighbor-ranking and
// broadcast-on-broken-path behavior added per the mobility-aware routing
// description; no example repo runs this protocol directly.
type Custom struct {
	source, target int
	timeout, retry int
	degree         int

	queues        *core.QueueHolder
	received      map[int]int
	replyReceived map[int]int
	graphNums     map[int]int
	brokenPath    bool
	lastTimeout   int

	finished bool
	result   Result

	log *zap.SugaredLogger
	metrics
}

// NewCustom creates a Custom engine and enqueues the initial RouteRequest.
func NewCustom(source, target, numNodes, capacity int, log *zap.SugaredLogger) *Custom {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &Custom{
		source:        source,
		target:        target,
		timeout:       cfg.Timeout,
		retry:         cfg.Retry,
		degree:        cfg.Degree,
		queues:        core.NewQueueHolder(numNodes, capacity),
		received:      make(map[int]int),
		replyReceived: make(map[int]int),
		graphNums:     make(map[int]int, numNodes),
		log:           log,
		metrics:       newMetrics(capacity),
	}
	log.Infow("custom constructed", "source", source, "target", target, "numNodes", numNodes, "degree", e.degree)
	if source == target {
		e.finished = true
		e.result.Timeslot = 0
		return e
	}
	e.beginDiscover(0)
	return e
}

func (e *Custom) beginDiscover(timeslot int) {
	e.queues.Queue(e.source).PushBack(core.NewRouteRequest(timeslot, e.source, e.target))
}

// AddMovement folds a Grid.Mutate() delta into the per-node stability
// counters the forwarding order is sorted by (spec §4.5).
func (e *Custom) AddMovement(delta []int) {
	for id, d := range delta {
		e.graphNums[id] += d
	}
}

func (e *Custom) Finished() bool { return e.finished }

func (e *Custom) Result() Result {
	r := e.result
	r.Finished = e.finished
	r.TotalOverhead = e.overhead
	r.QueueUsagePercent = e.usagePercent()
	return r
}

func (e *Custom) Step(timeslot int, neighbors map[int][]int, transmitters []int) {
	if e.finished {
		return
	}
	if timeslot-e.lastTimeout > e.timeout {
		e.beginDiscover(timeslot)
		e.lastTimeout = timeslot
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
		e.forward(timeslot, node, pkt, e.stableOrder(node, neighbors[node]))
	}
}

// stableOrder returns node's neighbors sorted ascending by graphNums,
// preferring the ones with the fewest recorded moves. Sort is stable so
// ties keep the box-scan insertion order (spec §5).
func (e *Custom) stableOrder(node int, neighbors []int) []int {
	out := core.Clone(neighbors)
	sort.SliceStable(out, func(i, j int) bool {
		return e.graphNums[out[i]] < e.graphNums[out[j]]
	})
	return out
}

func (e *Custom) forward(timeslot, node int, pkt *core.Packet, ranked []int) {
	var sent bool
	switch pkt.Kind {
	case core.RouteRequest:
		sent = e.forwardRequest(timeslot, pkt, ranked)
	case core.RouteReply:
		sent = e.forwardReply(timeslot, pkt, ranked)
	default:
		return
	}
	if !sent {
		pkt.Retransmits++
		e.log.Debugw("custom forward rejected, requeued", "node", node, "kind", pkt.Kind, "retransmits", pkt.Retransmits)
		e.queues.Queue(node).PushFront(pkt)
	}
}

// forwardRequest offers pkt to at most degree of the stable-ranked
// neighbors, skipping ones at which an equal-or-newer request was already
// queued. Reaching the target still produces exactly one RouteReply.
func (e *Custom) forwardRequest(timeslot int, pkt *core.Packet, ranked []int) bool {
	sent := false
	offered := 0
	for _, m := range ranked {
		if offered >= e.degree {
			break
		}
		if m == e.target {
			reply := core.NewRouteReply(timeslot, e.target, e.source, core.Reverse(pkt.Path))
			e.queues.Queue(m).PushBack(reply)
			e.addOverhead(1)
			sent = true
			offered++
			continue
		}
		last, seen := e.received[m]
		if seen && last >= pkt.Timestamp {
			continue
		}
		e.received[m] = pkt.Timestamp
		e.queues.Queue(m).PushBack(pkt.AppendPath(m))
		e.addOverhead(1)
		sent = true
		offered++
	}
	return sent
}

// forwardReply follows the reverse path one hop at a time, same as AODV.
// If the next hop is no longer a neighbor, it switches to broadcast mode
// (brokenPath) and fans the reply out to up to degree neighbors per step,
// deduplicated via replyReceived.
func (e *Custom) forwardReply(timeslot int, pkt *core.Packet, ranked []int) bool {
	if !e.brokenPath {
		for _, m := range ranked {
			if m == pkt.Destination {
				e.finished = true
				e.result.Timeslot = timeslot
				e.log.Infow("custom finished", "timeslot", timeslot, "overhead", e.overhead, "broadcast", false)
				return true
			}
			if len(pkt.Path) > 0 && m == pkt.Path[0] {
				if pkt.Retransmits > e.retry {
					return false
				}
				pkt.Path = pkt.Path[1:]
				e.queues.Queue(m).PushBack(pkt)
				return true
			}
		}
		e.brokenPath = true
		e.log.Debugw("custom reverse path broken, falling back to broadcast", "timeslot", timeslot)
	}
	return e.broadcastReply(timeslot, pkt, ranked)
}

func (e *Custom) broadcastReply(timeslot int, pkt *core.Packet, ranked []int) bool {
	sent := false
	offered := 0
	for _, m := range ranked {
		if offered >= e.degree {
			break
		}
		if m == pkt.Destination {
			e.finished = true
			e.result.Timeslot = timeslot
			e.log.Infow("custom finished", "timeslot", timeslot, "overhead", e.overhead, "broadcast", true)
			return true
		}
		last, seen := e.replyReceived[m]
		if seen && last >= pkt.Timestamp {
			continue
		}
		e.replyReceived[m] = pkt.Timestamp
		e.queues.Queue(m).PushFront(pkt.Clone())
		e.addOverhead(1)
		sent = true
		offered++
	}
	return sent
}
