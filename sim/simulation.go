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

// Package sim wires Grid and the three protocol engines into the
// turn-based driver described by the core (spec §4.6). It is the only
// package that owns goroutine-free but "impure" concerns: config loading,
// logging, metrics, rendering - everything the core itself stays silent
// about (spec §1, §6).
package sim

import (
	"errors"

	"manetsim/core"
	"manetsim/engine"
	"manetsim/grid"

	"go.uber.org/zap"
)

// ErrNoRoute is returned by NewSimulation when the grid has fewer than two
// distinct nodes to pick a source and target from (spec §8's size=1
// boundary case).
var ErrNoRoute = errors.New("sim: grid does not have two distinct nodes for source/target")

// EngineResult names and reports one engine's outcome.
type EngineResult struct {
	Name              string
	Finished          bool
	Timeslots         int
	TotalOverhead     int
	QueueUsagePercent float64
}

// Simulation drives a single run: it owns the grid, the per-engine queue
// state and the transmit scheduler, and advances all three engines in
// lockstep, one timeslot at a time, until every engine finishes or
// maxTimeslots elapses (spec §4.6, §5).
type Simulation struct {
	grid      *grid.Grid
	scheduler *grid.Scheduler
	rng       *core.Rand

	source, target int
	maxTimeslots   int
	mutateEvery    int
	mprEvery       int

	aodv   *engine.AODV
	olsr   *engine.OLSR
	custom *engine.Custom

	log     *zap.SugaredLogger
	metrics *Metrics

	timeslot int
}

// NewSimulation builds a Simulation over an existing grid. source and
// target are picked uniformly without replacement from the grid's devices
// by rng; pass the same rng the grid was seeded with (or a derived one)
// for full-run determinism (spec §5).
func NewSimulation(g *grid.Grid, rng *core.Rand, maxTimeslots int, log *zap.SugaredLogger, m *Metrics) (*Simulation, error) {
	if g.NumNodes() < 2 {
		return nil, ErrNoRoute
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	source, target := pickPair(g, rng)

	capacity := core.QueueCapacity()
	s := &Simulation{
		grid:         g,
		scheduler:    grid.NewScheduler(rng, grid.TransmitProbability()),
		rng:          rng,
		source:       source,
		target:       target,
		maxTimeslots: maxTimeslots,
		mutateEvery:  Cfg.Run.MutateEvery,
		mprEvery:     Cfg.Run.MPREvery,
		aodv:         engine.NewAODV(source, target, g.NumNodes(), capacity, log),
		olsr:         engine.NewOLSR(source, target, g.NumNodes(), capacity, rng, log),
		custom:       engine.NewCustom(source, target, g.NumNodes(), capacity, log),
		log:          log,
		metrics:      m,
	}
	s.olsr.ChooseMPR(g.Neighbors())
	log.Infow("simulation constructed", "nodes", g.NumNodes(), "source", source, "target", target, "maxTimeslots", maxTimeslots)
	return s, nil
}

// newSimulationForPair is a package-private constructor that forces a
// given (source, target) pair, bypassing the distinctness pick in
// NewSimulation. It exists only so tests can exercise the source==target
// boundary case named in spec §8; ordinary callers use NewSimulation.
func newSimulationForPair(g *grid.Grid, rng *core.Rand, source, target, maxTimeslots int, log *zap.SugaredLogger) *Simulation {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	capacity := core.QueueCapacity()
	s := &Simulation{
		grid:         g,
		scheduler:    grid.NewScheduler(rng, grid.TransmitProbability()),
		rng:          rng,
		source:       source,
		target:       target,
		maxTimeslots: maxTimeslots,
		mutateEvery:  10,
		mprEvery:     100,
		aodv:         engine.NewAODV(source, target, g.NumNodes(), capacity, log),
		olsr:         engine.NewOLSR(source, target, g.NumNodes(), capacity, rng, log),
		custom:       engine.NewCustom(source, target, g.NumNodes(), capacity, log),
		log:          log,
	}
	s.olsr.ChooseMPR(g.Neighbors())
	return s
}

func pickPair(g *grid.Grid, rng *core.Rand) (int, int) {
	perm := rng.Perm(g.NumNodes())
	return perm[0], perm[1]
}

// Run executes the full turn-based loop synchronously, returning once every
// engine has finished or maxTimeslots has elapsed (spec §4.6).
func (s *Simulation) Run() {
	for s.timeslot < s.maxTimeslots && !s.allFinished() {
		s.step()
	}
	s.log.Infow("simulation finished", "timeslot", s.timeslot, "allFinished", s.allFinished())
}

func (s *Simulation) allFinished() bool {
	return s.aodv.Finished() && s.olsr.Finished() && s.custom.Finished()
}

// step advances every unfinished engine by exactly one timeslot, then
// applies the driver-owned mutation/MPR-recompute cadence (spec §4.6,
// step 4). Engines observe the same neighbor map and transmitter set for
// this slot; the grid itself only changes between steps.
func (s *Simulation) step() {
	neighbors := s.grid.Neighbors()
	transmitters := s.scheduler.Transmitters(s.grid)

	if !s.aodv.Finished() {
		s.aodv.Step(s.timeslot, neighbors, transmitters)
	}
	if !s.olsr.Finished() {
		s.olsr.Step(s.timeslot, neighbors, transmitters)
	}
	if !s.custom.Finished() {
		s.custom.Step(s.timeslot, neighbors, transmitters)
	}

	if s.mutateEvery > 0 && s.timeslot > 0 && s.timeslot%s.mutateEvery == 0 {
		delta := s.grid.Mutate()
		s.custom.AddMovement(delta)
	}
	if s.mprEvery > 0 && s.timeslot > 0 && s.timeslot%s.mprEvery == 0 {
		s.olsr.ChooseMPR(s.grid.Neighbors())
	}
	if s.metrics != nil {
		s.metrics.observeSparsity(s.grid.Sparsity())
	}

	s.timeslot++
}

// End returns the (timeslots, overhead, queueUsagePercent) tuple for each
// of the three engines (spec §4.6, §6).
func (s *Simulation) End() []EngineResult {
	results := []EngineResult{
		resultOf("aodv", s.aodv.Result()),
		resultOf("olsr", s.olsr.Result()),
		resultOf("custom", s.custom.Result()),
	}
	for _, r := range results {
		s.metrics.observeEngine(r.Name, r.Timeslots, r.TotalOverhead, r.QueueUsagePercent)
	}
	return results
}

func resultOf(name string, r engine.Result) EngineResult {
	return EngineResult{
		Name:              name,
		Finished:          r.Finished,
		Timeslots:         r.Timeslot,
		TotalOverhead:     r.TotalOverhead,
		QueueUsagePercent: r.QueueUsagePercent,
	}
}

// AllFinished reports whether every engine reached its terminal condition
// before maxTimeslots elapsed; a CLI collaborator uses this for the
// documented exit-code convention (spec §6).
func (s *Simulation) AllFinished() bool {
	return s.allFinished()
}
