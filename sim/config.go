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
	"os"

	"manetsim/core"
	"manetsim/engine"
	"manetsim/grid"

	"gopkg.in/yaml.v3"
)

// GridCfg holds the Grid construction parameters, plus the grid-level
// tunables (spec.md §3's radio radius and per-slot transmit probability)
// that used to be hardcoded constants.
type GridCfg struct {
	Size                int     `yaml:"size"`
	Seed                int64   `yaml:"seed"`
	RadioRadius         float64 `yaml:"radioRadius"`
	TransmitProbability float64 `yaml:"transmitProbability"`
}

// EngineCfg holds the tunables shared by AODV/OLSR/Custom (discovery
// timeout, retransmit budget, Custom's fan-out, OLSR's beacon period).
type EngineCfg struct {
	Timeout    int `yaml:"timeout"`
	Retry      int `yaml:"retry"`
	Degree     int `yaml:"degree"`
	LinkUpdate int `yaml:"linkUpdate"`
}

// RunCfg holds the driver's own knobs: how long to run and how often to
// mutate/recompute MPRs (spec §4.6).
type RunCfg struct {
	MaxTimeslots int `yaml:"maxTimeslots"`
	MutateEvery  int `yaml:"mutateEvery"`
	MPREvery     int `yaml:"mprEvery"`
}

// RenderCfg options for the optional SVG snapshot.
type RenderCfg struct {
	Mode string `yaml:"mode"` // "none" or "svg"
	File string `yaml:"file"`
}

// Config is the full YAML-loadable configuration for a simulation run.
type Config struct {
	Core   *core.Config `yaml:"core"`
	Grid   *GridCfg     `yaml:"grid"`
	Run    *RunCfg      `yaml:"run"`
	Engine *EngineCfg   `yaml:"engine"`
	Render *RenderCfg   `yaml:"render"`
}

// Cfg is the package-level default configuration, overridable via
// ReadConfig or by mutating it directly before a run.
var Cfg = &Config{
	Core: &core.Config{
		QueueCapacity: 10,
	},
	Grid: &GridCfg{
		Size:                20,
		Seed:                1,
		RadioRadius:         grid.DefaultRadioRadius,
		TransmitProbability: grid.DefaultTransmitProbability,
	},
	Run: &RunCfg{
		MaxTimeslots: 5000,
		MutateEvery:  10,
		MPREvery:     100,
	},
	Engine: &EngineCfg{
		Timeout:    engine.DefaultTimeout,
		Retry:      engine.DefaultRetry,
		Degree:     engine.DefaultDegree,
		LinkUpdate: engine.DefaultLinkUpdate,
	},
	Render: &RenderCfg{
		Mode: "none",
	},
}

// ApplyTunables pushes the configured grid/engine tunables down into the
// grid and engine packages' own package-level defaults. Call once after
// ReadConfig (or after mutating Cfg directly) and before constructing a
// Grid or Simulation.
func ApplyTunables() {
	grid.SetConfiguration(&grid.Config{
		RadioRadius:         Cfg.Grid.RadioRadius,
		TransmitProbability: Cfg.Grid.TransmitProbability,
	})
	engine.SetConfiguration(&engine.Config{
		Timeout:    Cfg.Engine.Timeout,
		Retry:      Cfg.Engine.Retry,
		Degree:     Cfg.Engine.Degree,
		LinkUpdate: Cfg.Engine.LinkUpdate,
	})
}

// ReadConfig deserializes a configuration from a YAML file, overwriting
// Cfg's fields with whatever the file sets.
func ReadConfig(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, Cfg)
}

// TransmitProbability exposes the configured (or default) per-slot
// transmission probability for the scheduler.
func (c *Config) TransmitProbability() float64 {
	return grid.TransmitProbability()
}

// DegreeReference exposes Custom's currently configured fan-out, for
// documentation/printing purposes.
func DegreeReference() int {
	return engine.Degree()
}
