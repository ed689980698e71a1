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

// Command manetsim is the CLI collaborator: it reads the grid/run
// parameters, runs a Simulation to completion synchronously, and prints
// the per-engine end() tuple. It is not part of the core (spec §6).
package main

import (
	"fmt"
	"os"

	"manetsim/core"
	"manetsim/grid"
	"manetsim/sim"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		size         = flag.Int("size", sim.Cfg.Grid.Size, "grid side length")
		seed         = flag.Int64("seed", sim.Cfg.Grid.Seed, "RNG seed")
		maxTimeslots = flag.Int("max-slots", sim.Cfg.Run.MaxTimeslots, "timeslot budget before giving up")
		configFile   = flag.StringP("config", "c", "", "optional YAML config file")
		renderFile   = flag.String("render", "", "optional SVG snapshot output path")
		verbose      = flag.BoolP("verbose", "v", false, "enable development-mode logging")
	)
	flag.Parse()

	if *configFile != "" {
		if err := sim.ReadConfig(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "manetsim: reading config: %v\n", err)
			os.Exit(2)
		}
	}
	core.SetConfiguration(sim.Cfg.Core)
	sim.ApplyTunables()

	log := sim.NewLogger()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err == nil {
			log = dev.Sugar()
		}
	}
	defer log.Sync() //nolint:errcheck

	g, err := grid.New(*size, *seed, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "manetsim: %v\n", err)
		os.Exit(2)
	}

	registry := prometheus.NewRegistry()
	metrics := sim.NewMetrics(registry)

	rng := core.NewRand(*seed)
	s, err := sim.NewSimulation(g, rng, *maxTimeslots, log, metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "manetsim: %v\n", err)
		os.Exit(2)
	}
	s.Run()

	if *renderFile != "" {
		sim.RenderSVG(g, sim.NewSVGCanvas(*renderFile))
	}

	allFinished := true
	for _, r := range s.End() {
		fmt.Printf("%-8s finished=%-5v timeslots=%-6d overhead=%-6d queueUsage=%.2f%%\n",
			r.Name, r.Finished, r.Timeslots, r.TotalOverhead, r.QueueUsagePercent)
		allFinished = allFinished && r.Finished
	}

	if !allFinished {
		os.Exit(1)
	}
}

