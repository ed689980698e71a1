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

// Package engine implements the three routing protocol state machines
// (AODV, OLSR, Custom) compared by the simulator. Each is a deterministic,
// step-driven state machine: no goroutines, no channels, no listener
// callbacks, mirroring the turn-based model in spec §5. Where the teacher
// (leatea/core.Node) dispatches on message type inside a Receive method
// invoked from a channel-fed event loop, these engines dispatch on packet
// Kind inside a Step method invoked once per timeslot by the driver.
package engine

import "manetsim/core"

// Result is the per-engine tuple reported by Simulation.End() (spec §4.6).
type Result struct {
	Finished          bool
	Timeslot          int // slot the engine finished at; stays 0 while it has not finished
	TotalOverhead     int
	QueueUsagePercent float64
}

// Engine is the common contract for AODV, OLSR and Custom (spec §6).
type Engine interface {
	// Step advances the engine by one timeslot. transmitters is the
	// ascending-by-id set of nodes transmitting this slot (grid.Scheduler);
	// the ascending order is what makes repeated runs of a fixed seed
	// produce identical results.
	Step(timeslot int, neighbors map[int][]int, transmitters []int)
	// Finished reports whether the engine has reached its terminal
	// condition (a reply reached the source, or a usable route was found).
	Finished() bool
	// Result returns the current (timeslots, overhead, queueUsagePercent)
	// tuple; valid at any point, final once Finished() is true.
	Result() Result
}

// metrics accumulates the overhead counter and per-step queue-occupancy
// samples shared by every engine (spec §4.3's Metrics paragraph,
// generalized to OLSR and Custom).
type metrics struct {
	overhead     int
	queueSampSum float64
	steps        int
	capacity     int
}

func newMetrics(capacity int) metrics {
	return metrics{capacity: capacity}
}

func (m *metrics) addOverhead(n int) {
	m.overhead += n
}

func (m *metrics) sampleQueues(h *core.QueueHolder) {
	m.steps++
	m.queueSampSum += h.MeanLength()
}

func (m *metrics) usagePercent() float64 {
	if m.steps == 0 || m.capacity == 0 {
		return 0
	}
	return (m.queueSampSum / float64(m.steps) / float64(m.capacity)) * 100
}
