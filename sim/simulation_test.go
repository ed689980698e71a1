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

package sim

import (
	"testing"

	"manetsim/core"
	"manetsim/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulationRejectsTinyGrid(t *testing.T) {
	g, err := grid.New(1, 1, nil)
	require.NoError(t, err)
	_, err = NewSimulation(g, core.NewRand(1), 100, nil, nil)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestSimulationEndToEndSeedPinned(t *testing.T) {
	g, err := grid.New(20, 1, nil)
	require.NoError(t, err)
	s, err := NewSimulation(g, core.NewRand(1), 5000, nil, nil)
	require.NoError(t, err)
	s.Run()

	for _, r := range s.End() {
		assert.True(t, r.Finished, "%s should finish within maxTimeslots", r.Name)
	}
}

func TestSimulationDeterministicForFixedSeed(t *testing.T) {
	run := func() []EngineResult {
		g, err := grid.New(20, 1, nil)
		require.NoError(t, err)
		s, err := NewSimulation(g, core.NewRand(1), 5000, nil, nil)
		require.NoError(t, err)
		s.Run()
		return s.End()
	}
	a := run()
	b := run()
	assert.Equal(t, a, b)
}

func TestSimulationSourceEqualsTargetFinishesAtSlotZero(t *testing.T) {
	g, err := grid.New(20, 1, nil)
	require.NoError(t, err)
	s := newSimulationForPair(g, core.NewRand(1), 0, 0, 100, nil)
	s.Run()
	for _, r := range s.End() {
		assert.True(t, r.Finished)
		assert.Equal(t, 0, r.Timeslots)
	}
}
