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

import "manetsim/core"

// Scheduler draws, once per timeslot, the subset of nodes that transmit.
// It models the simulator's single shared radio channel: a node
// "transmits" this slot iff it is in the returned set.
type Scheduler struct {
	rng *core.Rand
	p   float64
}

// NewScheduler creates a scheduler with the given per-node transmit
// probability, backed by a seeded RNG.
func NewScheduler(rng *core.Rand, p float64) *Scheduler {
	if p <= 0 {
		p = cfg.TransmitProbability
	}
	return &Scheduler{rng: rng, p: p}
}

// Transmitters draws an independent Bernoulli(p) trial per node and
// returns the ids that succeeded, ascending by id. The ascending order
// (not Go's randomized map iteration) is what keeps a run's per-slot
// forwarding order - and therefore its end-to-end result - reproducible
// for a fixed seed (spec §5).
func (s *Scheduler) Transmitters(g *Grid) []int {
	var out []int
	for _, n := range g.Devices() {
		if s.rng.Bernoulli(s.p) {
			out = append(out, n.ID())
		}
	}
	return out
}
