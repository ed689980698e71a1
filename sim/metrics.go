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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is an optional Prometheus collector set a caller can register
// and pass into a Simulation to observe a run in progress (spec §6 treats
// everything beyond the core as an external collaborator). A nil *Metrics
// is always safe to use: every method is a no-op on a nil receiver.
type Metrics struct {
	timeslots   *prometheus.GaugeVec
	overhead    *prometheus.GaugeVec
	queueUsage  *prometheus.GaugeVec
	sparsity    prometheus.Gauge
}

// NewMetrics creates and registers a Metrics set against reg. Pass
// prometheus.NewRegistry() for an isolated registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		timeslots: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "manetsim_engine_timeslots",
			Help: "Timeslot at which an engine finished (0 if it has not finished).",
		}, []string{"engine"}),
		overhead: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "manetsim_engine_overhead_total",
			Help: "Cumulative forwarding overhead units for an engine.",
		}, []string{"engine"}),
		queueUsage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "manetsim_engine_queue_usage_percent",
			Help: "Mean queue occupancy percentage for an engine.",
		}, []string{"engine"}),
		sparsity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "manetsim_grid_sparsity",
			Help: "Mean neighbor-list length over all grid devices.",
		}),
	}
	reg.MustRegister(m.timeslots, m.overhead, m.queueUsage, m.sparsity)
	return m
}

func (m *Metrics) observeEngine(name string, timeslot, overhead int, queueUsage float64) {
	if m == nil {
		return
	}
	m.timeslots.WithLabelValues(name).Set(float64(timeslot))
	m.overhead.WithLabelValues(name).Set(float64(overhead))
	m.queueUsage.WithLabelValues(name).Set(queueUsage)
}

func (m *Metrics) observeSparsity(v float64) {
	if m == nil {
		return
	}
	m.sparsity.Set(v)
}
