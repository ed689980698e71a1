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

import "math/rand"

// Rand is a seeded source of determinism for the whole simulation: grid
// placement, mutation choices, transmitter draws and MPR shuffles all pull
// from the same *Rand so that a fixed seed reproduces a fixed run (spec
// determinism requirement). Never backed by the process-global rand source.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a seeded random source.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a random int in [0,n).
func (r *Rand) Intn(n int) int {
	return r.r.Intn(n)
}

// Float64 returns a random float in [0,1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Bernoulli draws true with probability p.
func (r *Rand) Bernoulli(p float64) bool {
	return r.r.Float64() < p
}

// Perm returns a random permutation of [0,n).
func (r *Rand) Perm(n int) []int {
	return r.r.Perm(n)
}

// Shuffle shuffles a slice of length n in place using swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}
