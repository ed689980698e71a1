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

import "errors"

// Errors returned by Grid operations (spec §7). Every Grid method either
// fully applies and preserves invariants, or returns one of these and
// leaves state unchanged.
var (
	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrOccupied is returned when a target cell already holds a node.
	ErrOccupied = errors.New("grid: cell already occupied")
	// ErrEmptyCell is returned when moving a node out of a cell with none.
	ErrEmptyCell = errors.New("grid: source cell is empty")
	// ErrWouldSplitSwarm names a move that would disconnect the graph. No
	// Grid method returns it: Mutate undoes a splitting move internally and
	// tries another candidate.
	ErrWouldSplitSwarm = errors.New("grid: move would split the swarm")
	// ErrInvalidSize is returned by New for a size < 1.
	ErrInvalidSize = errors.New("grid: size must be >= 1")
)
