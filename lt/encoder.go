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

/*
Package lt implements a Luby Transform (LT) rateless fountain code: a
Robust Soliton degree distribution, seeded pseudo-random neighbor
selection, an XOR encoder, and a peeling (belief-propagation) decoder.

An Encoder owns a fixed set of equal-length source blocks and produces an
unbounded stream of EncodedBlocks from them. A Decoder accepts that stream
and recovers the source blocks once it has seen a sufficient subset —
typically k*(1+epsilon) blocks for k source blocks. Neither side ever
transmits the index set an EncodedBlock is composed of; both sides
regenerate it from the block's seed.
*/
package lt

import (
	"encoding/binary"
	"io"

	"github.com/sixafter/prng-chacha"
)

// Encoder owns a set of source blocks and produces LT-encoded blocks from
// them on demand. An Encoder is not safe for concurrent use by multiple
// goroutines (spec.md §5); create one Encoder per goroutine if needed.
type Encoder struct {
	source    []SourceBlock
	blockSize int
	master    *Rand
	dist      *Distribution
}

// NewEncoder constructs an Encoder over source, a set of equal-length
// source blocks. If masterSeed is non-nil, it seeds the encoder's master
// PRNG deterministically; otherwise a fresh seed is drawn from an OS
// entropy source. c and delta tune the Robust Soliton distribution
// (DefaultC, DefaultDelta if zero).
func NewEncoder(source []SourceBlock, masterSeed *uint64, c, delta float64) (*Encoder, error) {
	if len(source) == 0 {
		return nil, errInvalidArgumentf("encoder requires at least one source block")
	}
	blockSize := len(source[0])
	if blockSize == 0 {
		return nil, errInvalidArgumentf("source blocks must be non-empty")
	}
	for i, b := range source {
		if len(b) != blockSize {
			return nil, errInvalidArgumentf("source block %d has length %d, want %d", i, len(b), blockSize)
		}
	}
	if c == 0 {
		c = DefaultC
	}
	if delta == 0 {
		delta = DefaultDelta
	}

	dist, err := NewDistribution(len(source), c, delta)
	if err != nil {
		return nil, err
	}

	seed, err := resolveMasterSeed(masterSeed)
	if err != nil {
		return nil, err
	}

	owned := make([]SourceBlock, len(source))
	for i, b := range source {
		owned[i] = cloneBlock(b)
	}

	return &Encoder{
		source:    owned,
		blockSize: blockSize,
		master:    NewRand(seed),
		dist:      dist,
	}, nil
}

// resolveMasterSeed returns seed verbatim if provided, otherwise draws a
// fresh 64-bit seed from an OS entropy source (spec.md §4.1).
func resolveMasterSeed(seed *uint64) (uint64, error) {
	if seed != nil {
		return *seed, nil
	}
	var buf [8]byte
	if _, err := io.ReadFull(prng.Reader, buf[:]); err != nil {
		return 0, errInvalidArgumentf("failed to draw master seed from entropy source: %v", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// SourceBlockCount returns k, the number of source blocks the encoder owns.
func (e *Encoder) SourceBlockCount() int {
	return len(e.source)
}

// BlockSize returns the length, in int32 words, of every source and
// encoded block.
func (e *Encoder) BlockSize() int {
	return e.blockSize
}

// GenerateBlock produces one EncodedBlock. If blockSeed is non-nil it is
// used verbatim as the block's seed; otherwise a fresh seed is drawn from
// the encoder's master PRNG and recorded on the result (spec.md §4.3).
func (e *Encoder) GenerateBlock(blockSeed *uint64) EncodedBlock {
	var seed uint64
	if blockSeed != nil {
		seed = *blockSeed
	} else {
		seed = e.master.Uint64()
	}

	degree, indices := deriveBlockComposition(seed, e.dist, len(e.source))

	payload := newZeroBlock(e.blockSize)
	for _, i := range indices {
		xorInto(payload, e.source[i])
	}

	return EncodedBlock{
		Seed:    seed,
		Degree:  uint32(degree),
		Payload: payload,
	}
}

// EncodeFileBlocks is a bulk convenience wrapper: it constructs an Encoder
// over blocks with the given optional masterSeed and returns n generated
// EncodedBlocks using fresh per-block seeds.
func EncodeFileBlocks(blocks []SourceBlock, masterSeed *uint64, n int) ([]EncodedBlock, error) {
	enc, err := NewEncoder(blocks, masterSeed, DefaultC, DefaultDelta)
	if err != nil {
		return nil, err
	}
	out := make([]EncodedBlock, n)
	for i := range out {
		out[i] = enc.GenerateBlock(nil)
	}
	return out, nil
}
