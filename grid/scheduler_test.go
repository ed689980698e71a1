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

	"manetsim/core"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerDeterministicForFixedSeed(t *testing.T) {
	g := buildGrid(t, 15, 4)
	s1 := NewScheduler(core.NewRand(99), TransmitProbability())
	s2 := NewScheduler(core.NewRand(99), TransmitProbability())
	assert.Equal(t, s1.Transmitters(g), s2.Transmitters(g))
}

func TestSchedulerTransmittersAscending(t *testing.T) {
	g := buildGrid(t, 15, 4)
	s := NewScheduler(core.NewRand(1), 0.9)
	out := s.Transmitters(g)
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1], out[i])
	}
}
