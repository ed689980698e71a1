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

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketQueueCapacityEviction(t *testing.T) {
	q := NewPacketQueue(0, 3)
	for i := 0; i < 5; i++ {
		q.PushBack(NewRouteRequest(i, 0, 1))
	}
	require.Equal(t, 3, q.Len())
	// PushBack evicts the front: the two oldest (timestamps 0,1) are gone.
	assert.Equal(t, 2, q.PopFront().Timestamp)
	assert.Equal(t, 3, q.PopFront().Timestamp)
	assert.Equal(t, 4, q.PopFront().Timestamp)
	assert.True(t, q.Empty())
}

func TestPacketQueuePushFrontEvictsBack(t *testing.T) {
	q := NewPacketQueue(0, 2)
	q.PushBack(NewRouteRequest(1, 0, 1))
	q.PushBack(NewRouteRequest(2, 0, 1))
	q.PushFront(NewRouteRequest(3, 0, 1))
	require.Equal(t, 2, q.Len())
	assert.Equal(t, 3, q.PopFront().Timestamp)
	assert.Equal(t, 1, q.PopFront().Timestamp)
}

func TestPacketQueuePopFrontEmpty(t *testing.T) {
	q := NewPacketQueue(0, 2)
	assert.Nil(t, q.PopFront())
}

func TestQueueHolderMeanLength(t *testing.T) {
	h := NewQueueHolder(3, 10)
	h.Queue(0).PushBack(NewRouteRequest(0, 0, 1))
	h.Queue(1).PushBack(NewRouteRequest(0, 0, 1))
	h.Queue(1).PushBack(NewRouteRequest(1, 0, 1))
	assert.InDelta(t, 1.0, h.MeanLength(), 1e-9)
}

func TestPacketClonePathIndependence(t *testing.T) {
	orig := NewRouteRequest(0, 1, 2)
	clone := orig.AppendPath(5)
	clone.Path[0] = 99
	assert.Equal(t, 1, orig.Path[0])
	assert.Equal(t, []int{99, 5}, clone.Path)
}
