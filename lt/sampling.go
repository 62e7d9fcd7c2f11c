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

// sampleDistinctIndices draws count distinct indices in [0, k) from r by
// rejection sampling. This sequence of draws is normative (spec.md §4.3
// step 4): the encoder and decoder must call this in exactly the same way,
// with the same r, for the same count and k, to agree on block
// composition without ever exchanging indices.
func sampleDistinctIndices(r *Rand, count, k int) []int {
	indices := make([]int, 0, count)
	seen := make(map[int]bool, count)
	for len(indices) < count {
		p := int(r.GenRange(0, uint64(k)))
		if seen[p] {
			continue
		}
		seen[p] = true
		indices = append(indices, p)
	}
	return indices
}

// deriveBlockComposition performs the one normative sequence of PRNG draws
// that both Encoder.GenerateBlock and Decoder.AddEncodedBlock must
// reproduce bit-for-bit given the same seed: seed a local Rand, draw the
// degree from the distribution with a single GenUnit() draw, then sample
// that many distinct indices in [0, k).
func deriveBlockComposition(seed uint64, dist *Distribution, k int) (degree int, indices []int) {
	r := NewRand(seed)
	degree = dist.Sample(r)
	indices = sampleDistinctIndices(r, degree, k)
	return degree, indices
}
