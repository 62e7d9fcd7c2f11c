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

import (
	"log/slog"
)

// State is the decoder's coarse progress, spec.md §4.4.
type State int

const (
	// Starving: decoded_count < k and the ready queue was empty after the
	// last AddEncodedBlock call returned.
	Starving State = iota
	// Progressing: the ready queue is non-empty; this is a transient state
	// only observable mid-peel, never after AddEncodedBlock returns.
	Progressing
	// Complete: decoded_count == k. Terminal.
	Complete
)

func (s State) String() string {
	switch s {
	case Starving:
		return "starving"
	case Progressing:
		return "progressing"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// pendingHandle is a stable index into Decoder.pending. Slots are never
// reused or compacted — a resolved block is tombstoned (live = false) — so
// adjacency sets referencing a handle never need to be renumbered — spec.md §9's "arena+index" design, generalized
// from the teacher's sparseMatrix convention of addressing rows by plain
// integer index rather than pointer.
type pendingHandle int

type pendingBlock struct {
	remaining map[int]bool
	residual  []int32
	live      bool
}

type readyItem struct {
	index int
	value []int32
}

// Decoder accepts a stream of EncodedBlocks for a fixed (k, blockSize) and
// peels source blocks out of them as soon as enough information has
// accumulated. A Decoder is not safe for concurrent use by multiple
// goroutines without external serialization (spec.md §5).
type Decoder struct {
	k         int
	blockSize int
	dist      *Distribution

	decoded      []SourceBlock
	decodedCount int

	pending   []pendingBlock
	adjacency map[int]map[pendingHandle]bool
	ready     []readyItem

	round int
	log   *slog.Logger
}

// DecoderOption configures optional Decoder behavior.
type DecoderOption func(*Decoder)

// WithLogger attaches a structured logger the decoder uses to report
// CorruptResidual and SeedMismatch anomalies (spec.md §7). The default,
// if this option is not supplied, is slog.Default().
func WithLogger(logger *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.log = logger
	}
}

// NewDecoder constructs a Decoder for k source blocks of blockSize int32
// words each, using a Robust Soliton distribution tuned by c and delta
// (DefaultC, DefaultDelta if zero). c and delta must match the encoder's
// tuning or the two sides will disagree on sampled degrees. Requires
// k >= 1, blockSize >= 1.
func NewDecoder(k, blockSize int, c, delta float64, opts ...DecoderOption) (*Decoder, error) {
	if k < 1 {
		return nil, errInvalidArgumentf("decoder requires k >= 1, got %d", k)
	}
	if blockSize < 1 {
		return nil, errInvalidArgumentf("decoder requires block_size >= 1, got %d", blockSize)
	}
	if c == 0 {
		c = DefaultC
	}
	if delta == 0 {
		delta = DefaultDelta
	}

	dist, err := NewDistribution(k, c, delta)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		k:         k,
		blockSize: blockSize,
		dist:      dist,
		decoded:   make([]SourceBlock, k),
		adjacency: make(map[int]map[pendingHandle]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}

	return d, nil
}

// K returns the number of source blocks this decoder is configured for.
func (d *Decoder) K() int { return d.k }

// BlockSize returns the configured block length in int32 words.
func (d *Decoder) BlockSize() int { return d.blockSize }

// AddResult reports what happened to a single AddEncodedBlock call,
// letting streaming callers distinguish a SeedMismatch rejection from
// ordinary accepted/redundant blocks without the decoder ever returning a
// Go error. A CorruptResidual found while peeling is logged only; it is
// not reported in AddResult.
type AddResult struct {
	DecodedCount int
	SeedMismatch bool
	Accepted     bool
}

// AddEncodedBlock regenerates the block's index set from seed, validates
// the supplied degree against the regenerated one, and folds the block
// into the decoder's residual graph, peeling any newly-resolvable source
// blocks. Returns the decoded count after the call.
//
// If payload's length does not match BlockSize, AddEncodedBlock returns
// an InvalidArgument error and leaves all state untouched. A degree that
// disagrees with the seed's regenerated degree (SeedMismatch) or a
// residual that fails to cancel to zero during peeling (CorruptResidual)
// are both non-fatal: the call returns normally, the offending data is
// discarded, and decoding continues with everything else already
// accumulated.
func (d *Decoder) AddEncodedBlock(seed uint64, degree uint32, payload []int32) (AddResult, error) {
	if len(payload) != d.blockSize {
		return AddResult{}, errInvalidArgumentf("payload length %d does not match block_size %d", len(payload), d.blockSize)
	}

	regenDegree, indices := deriveBlockComposition(seed, d.dist, d.k)
	if regenDegree != int(degree) {
		d.log.Warn("lt: seed/degree mismatch, dropping block",
			slog.Uint64("seed", seed), slog.Int("claimed_degree", int(degree)), slog.Int("regenerated_degree", regenDegree))
		return AddResult{DecodedCount: d.decodedCount, SeedMismatch: true}, nil
	}

	working := cloneBlock(payload)
	remaining := make(map[int]bool, len(indices))
	for _, i := range indices {
		remaining[i] = true
	}
	for _, i := range indices {
		if d.decoded[i] != nil {
			xorInto(working, d.decoded[i])
			delete(remaining, i)
		}
	}

	if len(remaining) == 0 {
		// Fully absorbed by already-decoded indices: redundant, spec.md
		// §4.4 step 3, or idempotent re-delivery of an already-seen block.
		return AddResult{DecodedCount: d.decodedCount, Accepted: true}, nil
	}

	if len(remaining) == 1 {
		var only int
		for i := range remaining {
			only = i
		}
		d.ready = append(d.ready, readyItem{index: only, value: working})
	} else {
		d.installPending(remaining, working)
	}

	d.peel()

	return AddResult{DecodedCount: d.decodedCount, Accepted: true}, nil
}

func (d *Decoder) installPending(remaining map[int]bool, residual []int32) {
	h := pendingHandle(len(d.pending))
	d.pending = append(d.pending, pendingBlock{remaining: remaining, residual: residual, live: true})
	for i := range remaining {
		set, ok := d.adjacency[i]
		if !ok {
			set = make(map[pendingHandle]bool)
			d.adjacency[i] = set
		}
		set[h] = true
	}
}

// peel drains the ready queue, resolving one source block per iteration
// and propagating the cancellation into every pending block that
// references it, per spec.md §4.4.
func (d *Decoder) peel() {
	for len(d.ready) > 0 {
		item := d.ready[0]
		d.ready = d.ready[1:]

		i := item.index
		if d.decoded[i] != nil {
			continue
		}

		d.round++
		d.decoded[i] = item.value
		d.decodedCount++

		for h := range d.adjacency[i] {
			p := &d.pending[h]
			if !p.live {
				continue
			}
			xorInto(p.residual, item.value)
			delete(p.remaining, i)

			switch len(p.remaining) {
			case 0:
				if !isZeroBlock(p.residual) {
					d.log.Warn("lt: corrupt residual after full cancellation, discarding block",
						slog.Int("pending_round", d.round))
				}
				p.live = false
			case 1:
				var only int
				for j := range p.remaining {
					only = j
				}
				d.ready = append(d.ready, readyItem{index: only, value: cloneBlock(p.residual)})
				p.live = false
			}
		}
		delete(d.adjacency, i)
	}
}

// DecodedCount returns how many of the k source blocks have been
// recovered so far.
func (d *Decoder) DecodedCount() int { return d.decodedCount }

// IsComplete reports whether all k source blocks have been recovered.
func (d *Decoder) IsComplete() bool { return d.decodedCount == d.k }

// CurrentRound returns the number of successful peels performed so far.
func (d *Decoder) CurrentRound() int { return d.round }

// GetAllDecodedBlocks returns the full recovered source block set if
// IsComplete, or nil otherwise.
func (d *Decoder) GetAllDecodedBlocks() []SourceBlock {
	if !d.IsComplete() {
		return nil
	}
	out := make([]SourceBlock, d.k)
	for i, b := range d.decoded {
		out[i] = cloneBlock(b)
	}
	return out
}

// Stats is a point-in-time snapshot of decoder progress, layered on top
// of the state machine in spec.md §4.4 for observability/logging callers
// that want a single value instead of polling three methods.
type Stats struct {
	DecodedCount int
	PendingCount int
	Round        int
	State        State
}

// Stats returns a snapshot of the decoder's current progress.
func (d *Decoder) Stats() Stats {
	live := 0
	for _, p := range d.pending {
		if p.live {
			live++
		}
	}
	state := Starving
	if d.IsComplete() {
		state = Complete
	} else if len(d.ready) > 0 {
		state = Progressing
	}
	return Stats{
		DecodedCount: d.decodedCount,
		PendingCount: live,
		Round:        d.round,
		State:        state,
	}
}
