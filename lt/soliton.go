// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lt

import "math"

// DefaultC and DefaultDelta are the Robust Soliton tuning constants used
// when a caller does not supply its own.
const (
	DefaultC     = 0.03
	DefaultDelta = 0.05
)

// Distribution is a precomputed Robust Soliton CDF over degrees 1..=k.
// The CDF is one-based: cdf[d] is P(degree <= d), cdf[0] is unused (kept
// at 0 so degree indices can be used directly).
type Distribution struct {
	k     int
	c     float64
	delta float64
	cdf   []float64
}

// NewDistribution precomputes the Robust Soliton CDF for k source blocks
// using tuning constants c and delta (spec defaults DefaultC, DefaultDelta).
// Requires k >= 1.
func NewDistribution(k int, c, delta float64) (*Distribution, error) {
	if k < 1 {
		return nil, errInvalidArgumentf("degree distribution requires k >= 1, got %d", k)
	}

	d := &Distribution{k: k, c: c, delta: delta}
	d.cdf = buildRobustSolitonCDF(k, c, delta)
	return d, nil
}

// ideal Soliton pdf, rho(1)=1/k, rho(d)=1/(d*(d-1)) for 2<=d<=k.
func idealSolitonPDF(k int) []float64 {
	rho := make([]float64, k+1)
	rho[1] = 1 / float64(k)
	for d := 2; d <= k; d++ {
		rho[d] = 1 / (float64(d) * float64(d-1))
	}
	return rho
}

// buildRobustSolitonCDF implements spec.md §4.2 exactly: R, kr, tau, Z, mu.
func buildRobustSolitonCDF(k int, c, delta float64) []float64 {
	if k == 1 {
		return []float64{0, 1}
	}

	rho := idealSolitonPDF(k)

	r := c * math.Log(float64(k)/delta) * math.Sqrt(float64(k))
	if r < 1 {
		r = 1
	}
	kr := int(math.Floor(float64(k) / r))
	if kr < 1 {
		kr = 1
	}
	if kr > k {
		kr = k
	}

	tau := make([]float64, k+1)
	for d := 1; d < kr; d++ {
		tau[d] = r / (float64(d) * float64(k))
	}
	tau[kr] = r * math.Log(r/delta) / float64(k)

	mu := make([]float64, k+1)
	z := 0.0
	for d := 1; d <= k; d++ {
		mu[d] = rho[d] + tau[d]
		z += mu[d]
	}
	if z <= 0 {
		// Degenerate tiny-k case: fall back to a point mass on degree 1.
		cdf := make([]float64, k+1)
		for d := 1; d <= k; d++ {
			cdf[d] = 1
		}
		return cdf
	}

	cdf := make([]float64, k+1)
	running := 0.0
	for d := 1; d <= k; d++ {
		running += mu[d] / z
		cdf[d] = running
	}
	// Guard against float drift so the final entry is exactly 1.
	cdf[k] = 1
	return cdf
}

// Sample draws a degree in [1, k] from the distribution using one GenUnit
// draw from r. Ties and the exact endpoint go to the smaller d: the
// returned d is the smallest with cdf[d] >= u.
func (d *Distribution) Sample(r *Rand) int {
	u := r.GenUnit()
	return d.sampleFromUnit(u)
}

func (d *Distribution) sampleFromUnit(u float64) int {
	lo, hi := 1, d.k
	for lo < hi {
		mid := (lo + hi) / 2
		if d.cdf[mid] >= u {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// K returns the number of source blocks this distribution was built for.
func (d *Distribution) K() int { return d.k }

// EstimateBlocksNeeded returns a rough estimate of how many encoded blocks
// are typically needed to decode k source blocks with this distribution's
// tuning, in the spirit of the teacher's onlineCodec.estimateDecodeBlocksNeeded.
// It is advisory only: never consulted by Encoder or Decoder, only by
// callers sizing a transfer.
func (d *Distribution) EstimateBlocksNeeded() int {
	if d.k <= 1 {
		return d.k
	}
	overhead := d.c * math.Log(float64(d.k)/d.delta) * math.Sqrt(float64(d.k))
	return d.k + int(math.Ceil(overhead))
}
