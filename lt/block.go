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

// SourceBlock is a fixed-length vector of 32-bit signed integers. All
// source blocks owned by one Encoder share the same length; padding to a
// common length is the caller's concern (spec.md §3).
type SourceBlock []int32

// EncodedBlock is the wire-minimal tuple an Encoder produces: the seed and
// degree needed to regenerate its source-index set, and the XOR payload.
// Indices are deliberately not a field here — they are a derived
// attribute, recomputed by reseeding a Rand with Seed (spec.md §3).
type EncodedBlock struct {
	Seed    uint64
	Degree  uint32
	Payload []int32
}

// xorInto XORs src elementwise into dst, which must already be the same
// length as src. Zero-initialized accumulators are the caller's
// responsibility, mirroring the teacher's block.xor convention of
// XOR-in-place onto a destination buffer.
func xorInto(dst, src []int32) {
	for i, v := range src {
		dst[i] ^= v
	}
}

func newZeroBlock(blockSize int) []int32 {
	return make([]int32, blockSize)
}

func cloneBlock(b []int32) []int32 {
	out := make([]int32, len(b))
	copy(out, b)
	return out
}

func equalBlocks(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isZeroBlock(b []int32) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
