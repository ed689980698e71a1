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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a simple path topology 0-1-2-...-n-1 where neighbor i's list
// is {i-1, i+1} (clamped), enough to exercise multi-hop forwarding without
// needing a real Grid.
func chain(n int) map[int][]int {
	out := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		var nb []int
		if i > 0 {
			nb = append(nb, i-1)
		}
		if i < n-1 {
			nb = append(nb, i+1)
		}
		out[i] = nb
	}
	return out
}

func allTransmit(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestAODVFinishesOverChain(t *testing.T) {
	const n = 6
	neighbors := chain(n)
	transmitters := allTransmit(n)
	e := NewAODV(0, n-1, n, 10, nil)

	finished := false
	for slot := 0; slot < 200 && !finished; slot++ {
		e.Step(slot, neighbors, transmitters)
		finished = e.Finished()
	}
	require.True(t, finished, "AODV should find a route over a connected chain")
	assert.Positive(t, e.Result().TotalOverhead)
}

func TestAODVReceivedMonotonic(t *testing.T) {
	const n = 5
	neighbors := chain(n)
	transmitters := allTransmit(n)
	e := NewAODV(0, n-1, n, 10, nil)

	last := make(map[int]int)
	for slot := 0; slot < 50 && !e.Finished(); slot++ {
		e.Step(slot, neighbors, transmitters)
		for node, ts := range e.received {
			assert.GreaterOrEqual(t, ts, last[node])
			last[node] = ts
		}
	}
}

func TestAODVSourceEqualsTargetFinishesImmediately(t *testing.T) {
	e := NewAODV(0, 0, 3, 10, nil)
	require.True(t, e.Finished())
	assert.Equal(t, 0, e.Result().Timeslot)
	assert.Zero(t, e.Result().TotalOverhead)
}
