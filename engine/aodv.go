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

// AODV is the reactive, on-demand discovery protocol: the source floods a
// RouteRequest, the target replies once along the reverse path, and the
// source re-floods on timeout. Grounded on original_source/simulation.py's
// AODVSimulation, reworked as a Step-driven state machine instead of a
// blocking Python loop.
type AODV struct {
	source, target int
	timeout, retry int

	queues             *core.QueueHolder
	received           map[int]int // node -> timestamp of the newest RouteRequest queued at it
	destinationReached bool
	lastTimeout        int

	finished bool
	result   Result

	log *zap.SugaredLogger
	metrics
}

// NewAODV creates an AODV engine for the given source/target pair over
// numNodes devices, and immediately enqueues the initial RouteRequest at
// the source (mirroring AODVSimulation.__init__'s eager beginDiscover(0)).
func NewAODV(source, target, numNodes, capacity int, log *zap.SugaredLogger) *AODV {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &AODV{
		source:   source,
		target:   target,
		timeout:  cfg.Timeout,
		retry:    cfg.Retry,
		queues:   core.NewQueueHolder(numNodes, capacity),
		received: make(map[int]int),
		log:      log,
		metrics:  newMetrics(capacity),
	}
	log.Infow("aodv constructed", "source", source, "target", target, "numNodes", numNodes)
	if source == target {
		// Degenerate pair: a route of length zero always exists.
		e.finished = true
		e.result.Timeslot = 0
		return e
	}
	e.beginDiscover(0)
	return e
}

// beginDiscover enqueues a fresh RouteRequest at the source.
func (e *AODV) beginDiscover(timeslot int) {
	e.queues.Queue(e.source).PushBack(core.NewRouteRequest(timeslot, e.source, e.target))
}

// Finished reports whether the target's RouteReply has reached the source.
func (e *AODV) Finished() bool {
	return e.finished
}

// Result returns the current (timeslots, overhead, queueUsagePercent) tuple.
func (e *AODV) Result() Result {
	r := e.result
	r.Finished = e.finished
	r.TotalOverhead = e.overhead
	r.QueueUsagePercent = e.usagePercent()
	return r
}

// Step advances the engine by one timeslot: on a discovery timeout it
// re-floods, then every currently transmitting node pops and processes the
// head of its own queue.
func (e *AODV) Step(timeslot int, neighbors map[int][]int, transmitters []int) {
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
		e.forward(timeslot, node, pkt, neighbors[node])
	}
}

// hasReceived reports whether any RouteRequest has been queued at node m yet.
// A plain map[int]int can't distinguish "never seen" from "seen at
// timestamp 0" (the initial flood's timestamp), hence the explicit check.
func (e *AODV) hasReceived(m int) bool {
	_, ok := e.received[m]
	return ok
}

// forward dispatches a popped packet by kind and applies the
// requeue-on-no-forward rule common to both kinds (spec §4.3).
func (e *AODV) forward(timeslot, node int, pkt *core.Packet, neighbors []int) {
	var sent bool
	switch pkt.Kind {
	case core.RouteRequest:
		sent = e.forwardRequest(timeslot, node, pkt, neighbors)
	case core.RouteReply:
		sent = e.forwardReply(timeslot, pkt, neighbors)
	default:
		return
	}
	if !sent {
		pkt.Retransmits++
		e.log.Debugw("aodv forward rejected, requeued", "node", node, "kind", pkt.Kind, "retransmits", pkt.Retransmits)
		e.queues.Queue(node).PushFront(pkt)
	}
}

// forwardRequest offers pkt to every neighbor of node. A neighbor that is
// the target and not yet answered gets a RouteReply queued at its own
// queue; every other neighbor gets a deep copy with itself appended to the
// path, unless an equal-or-newer request was already queued at it. Every
// offered neighbor counts as one overhead unit regardless of dedup.
func (e *AODV) forwardRequest(timeslot, node int, pkt *core.Packet, neighbors []int) bool {
	sent := false
	for _, m := range neighbors {
		e.addOverhead(1)
		switch {
		case m == e.target && !e.destinationReached:
			e.destinationReached = true
			reply := core.NewRouteReply(timeslot, e.target, e.source, core.Reverse(pkt.Path))
			e.queues.Queue(m).PushBack(reply)
			sent = true
		case !e.hasReceived(m) || e.received[m] < pkt.Timestamp:
			e.received[m] = pkt.Timestamp
			e.queues.Queue(m).PushBack(pkt.AppendPath(m))
			sent = true
		default:
			// m already had an equal-or-newer request queued; ignore.
		}
	}
	return sent
}

// forwardReply walks pkt one hop closer to the source. If node's neighbor
// list includes the original source, the reply has arrived and the engine
// finishes. Otherwise, if the next hop on the reverse path is a current
// neighbor and the retry budget allows it, the same packet (not a copy) is
// consumed one hop and re-enqueued.
func (e *AODV) forwardReply(timeslot int, pkt *core.Packet, neighbors []int) bool {
	for _, m := range neighbors {
		if m == pkt.Destination {
			e.finished = true
			e.result.Timeslot = timeslot
			e.log.Infow("aodv finished", "timeslot", timeslot, "overhead", e.overhead)
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
	return false
}
