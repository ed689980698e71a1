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

func TestCustomFinishesOverChain(t *testing.T) {
	const n = 6
	neighbors := chain(n)
	transmitters := allTransmit(n)
	e := NewCustom(0, n-1, n, 10, nil)

	finished := false
	for slot := 0; slot < 300 && !finished; slot++ {
		// simulate occasional movement to exercise graphNums ordering
		delta := make([]int, n)
		if slot%10 == 0 {
			delta[slot%n] = 1
		}
		e.AddMovement(delta)
		e.Step(slot, neighbors, transmitters)
		finished = e.Finished()
	}
	require.True(t, finished, "Custom should find a route over a connected chain")
	assert.Positive(t, e.Result().TotalOverhead)
}

func TestCustomGraphNumsAccumulate(t *testing.T) {
	e := NewCustom(0, 4, 5, 10, nil)
	e.AddMovement([]int{1, 0, 1, 0, 0})
	e.AddMovement([]int{1, 0, 0, 0, 0})
	assert.Equal(t, 2, e.graphNums[0])
	assert.Equal(t, 1, e.graphNums[2])
	assert.Equal(t, 0, e.graphNums[1])
}

func TestCustomSourceEqualsTargetFinishesImmediately(t *testing.T) {
	e := NewCustom(3, 3, 5, 10, nil)
	require.True(t, e.Finished())
	assert.Equal(t, 0, e.Result().Timeslot)
}

func TestCustomStableOrderSortsAscending(t *testing.T) {
	e := NewCustom(0, 4, 5, 10, nil)
	e.graphNums[1] = 5
	e.graphNums[2] = 1
	e.graphNums[3] = 3
	ranked := e.stableOrder(0, []int{1, 2, 3})
	assert.Equal(t, []int{2, 3, 1}, ranked)
}
