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

	"manetsim/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOLSRChooseMPRClearsPreviousSet(t *testing.T) {
	e := NewOLSR(0, 4, 5, 10, core.NewRand(1), nil)
	neighbors := chain(5)
	e.ChooseMPR(neighbors)
	first := len(e.mpr[0])
	// Recomputing against the same topology must not grow the set: the
	// reference bug appends across calls without clearing.
	e.ChooseMPR(neighbors)
	e.ChooseMPR(neighbors)
	assert.Equal(t, first, len(e.mpr[0]))
}

func TestOLSRFinishesOverChain(t *testing.T) {
	const n = 6
	neighbors := chain(n)
	transmitters := allTransmit(n)
	e := NewOLSR(0, n-1, n, 10, core.NewRand(3), nil)
	e.ChooseMPR(neighbors)

	finished := false
	for slot := 0; slot < 500 && !finished; slot++ {
		e.Step(slot, neighbors, transmitters)
		finished = e.Finished()
	}
	require.True(t, finished, "OLSR should find a route over a connected chain")
}

func TestOLSRRoutingTableMonotonic(t *testing.T) {
	const n = 5
	neighbors := chain(n)
	transmitters := allTransmit(n)
	e := NewOLSR(0, n-1, n, 10, core.NewRand(5), nil)
	e.ChooseMPR(neighbors)

	last := make(map[int]map[int]int)
	for slot := 0; slot < 200 && !e.Finished(); slot++ {
		e.Step(slot, neighbors, transmitters)
		for node, table := range e.routingTables {
			if last[node] == nil {
				last[node] = make(map[int]int)
			}
			for dst, age := range table {
				assert.GreaterOrEqual(t, age, last[node][dst])
				last[node][dst] = age
			}
		}
	}
}

func TestOLSRSourceEqualsTargetFinishesImmediately(t *testing.T) {
	e := NewOLSR(2, 2, 5, 10, core.NewRand(1), nil)
	require.True(t, e.Finished())
	assert.Equal(t, 0, e.Result().Timeslot)
}
