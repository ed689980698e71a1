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

import "fmt"

// Kind distinguishes the packet variants carried by a PacketQueue. A tagged
// struct stands in for the source's class hierarchy (RouteRequest/
// RouteReply/LinkState all inheriting from a Packet base): one Go type,
// switched on Kind, makes deep-copy trivial and avoids dynamic dispatch.
type Kind int

const (
	// RouteRequest is a route discovery packet, used by all three engines.
	RouteRequest Kind = iota
	// RouteReply is an AODV/Custom route reply, carrying the reverse path.
	RouteReply
	// LinkState is an OLSR proactive beacon about its source.
	LinkState
)

// String returns a human-readable packet kind.
func (k Kind) String() string {
	switch k {
	case RouteRequest:
		return "RouteRequest"
	case RouteReply:
		return "RouteReply"
	case LinkState:
		return "LinkState"
	default:
		return "Unknown"
	}
}

// Packet is the common wire unit of every engine. Destination is unused
// (zero) for LinkState packets, which only ever carry a source (spec §3).
type Packet struct {
	Kind        Kind
	Timestamp   int // time slot the packet originated
	Source      int
	Destination int
	Retransmits int
	Path        []int // visited/forwarder node ids, meaning depends on Kind
}

// NewRouteRequest creates a fresh RREQ with the source as the only entry
// on its path so far.
func NewRouteRequest(timestamp, source, destination int) *Packet {
	return &Packet{
		Kind:        RouteRequest,
		Timestamp:   timestamp,
		Source:      source,
		Destination: destination,
		Path:        []int{source},
	}
}

// NewRouteReply creates a RREP carrying the reverse path from the target
// back to the original source.
func NewRouteReply(timestamp, source, destination int, reversePath []int) *Packet {
	return &Packet{
		Kind:        RouteReply,
		Timestamp:   timestamp,
		Source:      source,
		Destination: destination,
		Path:        Clone(reversePath),
	}
}

// NewLinkState creates a fresh LinkState beacon about its source.
func NewLinkState(timestamp, source int) *Packet {
	return &Packet{
		Kind:      LinkState,
		Timestamp: timestamp,
		Source:    source,
		Path:      []int{source},
	}
}

// Clone deep-copies the packet so the receiver's copy has an independent
// path; mutating the copy never alters the original (spec §3, §8).
func (p *Packet) Clone() *Packet {
	if p == nil {
		return nil
	}
	return &Packet{
		Kind:        p.Kind,
		Timestamp:   p.Timestamp,
		Source:      p.Source,
		Destination: p.Destination,
		Retransmits: p.Retransmits,
		Path:        Clone(p.Path),
	}
}

// AppendPath returns a copy of the packet with node appended to its path.
func (p *Packet) AppendPath(node int) *Packet {
	c := p.Clone()
	c.Path = append(c.Path, node)
	return c
}

// String returns a human-readable representation.
func (p *Packet) String() string {
	if p == nil {
		return "Packet(nil)"
	}
	return fmt.Sprintf("%s{src=%d,dst=%d,t=%d,rt=%d,path=%v}",
		p.Kind, p.Source, p.Destination, p.Timestamp, p.Retransmits, p.Path)
}
