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

// Reference tunables (radio broadcast radius, per-slot transmit
// probability). Both default in here but are overridable via
// SetConfiguration.
const (
	DefaultRadioRadius         = 5.0
	DefaultTransmitProbability = 0.3
)

// Config holds the tunables shared by Grid and Scheduler.
type Config struct {
	RadioRadius         float64 `yaml:"radioRadius"`
	TransmitProbability float64 `yaml:"transmitProbability"`
}

// package-local configuration data (with default values)
var cfg = &Config{
	RadioRadius:         DefaultRadioRadius,
	TransmitProbability: DefaultTransmitProbability,
}

// SetConfiguration overrides package defaults. Zero/negative fields are left
// at their current value.
func SetConfiguration(c *Config) {
	if c == nil {
		return
	}
	if c.RadioRadius > 0 {
		cfg.RadioRadius = c.RadioRadius
	}
	if c.TransmitProbability > 0 {
		cfg.TransmitProbability = c.TransmitProbability
	}
}

// RadioRadius returns the configured broadcast radius.
func RadioRadius() float64 {
	return cfg.RadioRadius
}

// TransmitProbability returns the configured per-slot transmit probability.
func TransmitProbability() float64 {
	return cfg.TransmitProbability
}
