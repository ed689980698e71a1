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

// Config holds the tunable constants shared by the queue and packet layer.
// Protocol-specific constants (timeout, retry, degree, MPR cadence) live on
// the engines that use them; this only covers what core/ itself needs.
type Config struct {
	QueueCapacity int `yaml:"queueCapacity"` // hard cap on PacketQueue length
}

// package-local configuration data (with default values)
var cfg = &Config{
	QueueCapacity: 10,
}

// SetConfiguration overrides package defaults. Zero/negative fields are left
// at their current value.
func SetConfiguration(c *Config) {
	if c == nil {
		return
	}
	if c.QueueCapacity > 0 {
		cfg.QueueCapacity = c.QueueCapacity
	}
}

// QueueCapacity returns the configured queue capacity.
func QueueCapacity() int {
	return cfg.QueueCapacity
}
