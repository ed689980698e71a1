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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGrid(t *testing.T, size int, seed int64) *Grid {
	t.Helper()
	g, err := New(size, seed, nil)
	require.NoError(t, err)
	return g
}

func TestNewRejectsInvalidSize(t *testing.T) {
	_, err := New(0, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNoTwoNodesShareACell(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		g := buildGrid(t, 20, seed)
		occupied := make(map[Point]bool)
		for _, n := range g.Devices() {
			assert.False(t, occupied[n.Pos], "duplicate occupant at %v", n.Pos)
			occupied[n.Pos] = true
		}
		assert.True(t, g.IsSingleSwarm())
	}
}

func TestNeighborsSymmetricAndCorrect(t *testing.T) {
	g := buildGrid(t, 15, 5)
	for _, n := range g.Devices() {
		for _, m := range g.NeighborsOf(n.ID()) {
			assert.NotEqual(t, n.ID(), m)
			assert.LessOrEqual(t, n.Pos.Distance(g.Node(m).Pos), g.radius)
			assert.Contains(t, g.NeighborsOf(m), n.ID(), "neighbor relation not symmetric")
		}
	}
}

func TestSparsityIsMeanNeighborLength(t *testing.T) {
	g := buildGrid(t, 15, 9)
	total := 0
	for _, n := range g.Devices() {
		total += len(g.NeighborsOf(n.ID()))
	}
	want := float64(total) / float64(g.NumNodes())
	assert.InDelta(t, want, g.Sparsity(), 1e-9)
}

func TestMutatePreservesInvariants(t *testing.T) {
	g := buildGrid(t, 20, 3)
	for i := 0; i < 30; i++ {
		g.Mutate()
		assert.True(t, g.IsSingleSwarm())
		occupied := make(map[Point]bool)
		for _, n := range g.Devices() {
			assert.False(t, occupied[n.Pos])
			occupied[n.Pos] = true
		}
	}
}

func TestMutateReturnsPerNodeDelta(t *testing.T) {
	g := buildGrid(t, 20, 11)
	delta := g.Mutate()
	assert.Len(t, delta, g.NumNodes())
	for _, d := range delta {
		assert.True(t, d == 0 || d == 1)
	}
}

func TestSingleCellGridHasNoNodes(t *testing.T) {
	g := buildGrid(t, 1, 1)
	assert.Equal(t, 0, g.NumNodes())
	assert.True(t, g.IsSingleSwarm())
}
