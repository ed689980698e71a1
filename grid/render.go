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
	"fmt"
	"io"
	"strings"
)

// Render writes a debug dump of the grid: one token per cell, '-' runs for
// empty cells and the (padded) node id for occupied ones (spec §6).
func (g *Grid) Render(out io.Writer) {
	width := len(fmt.Sprintf("%d", len(g.devices)))
	if width < 1 {
		width = 1
	}
	for y := 0; y < g.size; y++ {
		var row strings.Builder
		for x := 0; x < g.size; x++ {
			id := g.occupancy[x][y]
			if id == emptyCell {
				row.WriteString(strings.Repeat("-", width))
			} else {
				fmt.Fprintf(&row, "%0*d", width, id)
			}
			row.WriteByte(' ')
		}
		fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
	}
}
