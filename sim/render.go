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
	"bytes"
	"fmt"
	"image/color"
	"os"

	"manetsim/grid"

	svg "github.com/ajstarks/svgo"
)

// Color definitions for the SVG snapshot.
var (
	ClrWhite = &color.RGBA{R: 255, G: 255, B: 255}
	ClrBlack = &color.RGBA{}
	ClrBlue  = &color.RGBA{B: 255}
)

// Canvas is a minimal drawing surface. The core only ever produces a
// static topology snapshot (spec §6's render hook is textual; this is the
// CLI collaborator's optional pictorial counterpart), so unlike the
// teacher's Canvas this has no IsDynamic/live-window variant.
type Canvas interface {
	Open()
	Start(w, h int)
	Circle(x, y, r float64, clr *color.RGBA)
	Line(x1, y1, x2, y2 float64, clr *color.RGBA)
	Text(x, y float64, s string)
	End()
}

// SVGCanvas renders into an in-memory buffer, flushed to a file on End.
type SVGCanvas struct {
	svg  *svg.SVG
	buf  *bytes.Buffer
	fn   string
	prec float64
}

// NewSVGCanvas creates an SVG canvas that writes to file fn on End.
func NewSVGCanvas(fn string) *SVGCanvas {
	return &SVGCanvas{buf: new(bytes.Buffer), fn: fn, prec: 4}
}

func (c *SVGCanvas) Open() {
	c.svg = svg.New(c.buf)
}

func (c *SVGCanvas) Start(w, h int) {
	c.svg.Start(w*int(c.prec), h*int(c.prec))
}

func (c *SVGCanvas) Circle(x, y, r float64, clr *color.RGBA) {
	style := fmt.Sprintf("fill:#%02x%02x%02x", clr.R, clr.G, clr.B)
	c.svg.Circle(int(x*c.prec), int(y*c.prec), int(r*c.prec), style)
}

func (c *SVGCanvas) Line(x1, y1, x2, y2 float64, clr *color.RGBA) {
	style := fmt.Sprintf("stroke:#%02x%02x%02x;stroke-width:1", clr.R, clr.G, clr.B)
	c.svg.Line(int(x1*c.prec), int(y1*c.prec), int(x2*c.prec), int(y2*c.prec), style)
}

func (c *SVGCanvas) Text(x, y float64, s string) {
	c.svg.Text(int(x*c.prec), int(y*c.prec), s)
}

func (c *SVGCanvas) End() {
	c.svg.End()
	if len(c.fn) == 0 {
		return
	}
	f, err := os.Create(c.fn)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(c.buf.Bytes())
}

// RenderSVG draws every node as a circle and every neighbor relation as a
// line, then finalizes the canvas. It is a CLI-collaborator convenience,
// not part of the core's required interface (spec §6).
func RenderSVG(g *grid.Grid, c Canvas) {
	c.Open()
	c.Start(g.Size(), g.Size())
	seen := make(map[[2]int]bool)
	for _, n := range g.Devices() {
		for _, m := range g.NeighborsOf(n.ID()) {
			key := [2]int{n.ID(), m}
			rev := [2]int{m, n.ID()}
			if seen[key] || seen[rev] {
				continue
			}
			seen[key] = true
			other := g.Node(m)
			c.Line(float64(n.Pos.X), float64(n.Pos.Y), float64(other.Pos.X), float64(other.Pos.Y), ClrBlack)
		}
	}
	for _, n := range g.Devices() {
		c.Circle(float64(n.Pos.X), float64(n.Pos.Y), 0.4, ClrBlue)
		c.Text(float64(n.Pos.X)+0.5, float64(n.Pos.Y), n.String())
	}
	c.End()
}
