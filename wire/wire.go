// Package wire implements the minimum sufficient transport for an LT
// EncodedBlock named in spec.md §6: (seed uint64, degree uint32, payload
// []int32), bit-packed onto an io.Writer/io.Reader. block_size and k are
// out-of-band parameters the caller must already agree on; this package
// never transmits the derived index set.
package wire

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"

	"github.com/fountaincodec/lt/lt"
)

// WriteBlock bit-packs one EncodedBlock onto w: a 64-bit seed, a 32-bit
// degree, then blockSize 32-bit payload words. The caller is responsible
// for knowing blockSize up front (it is not re-sent per block).
func WriteBlock(w io.Writer, b lt.EncodedBlock) error {
	bw := bitio.NewWriter(w)

	if err := bw.WriteBits(b.Seed, 64); err != nil {
		return errors.Wrap(err, "wire: write seed")
	}
	if err := bw.WriteBits(uint64(b.Degree), 32); err != nil {
		return errors.Wrap(err, "wire: write degree")
	}
	for i, word := range b.Payload {
		if err := bw.WriteBits(uint64(uint32(word)), 32); err != nil {
			return errors.Wrapf(err, "wire: write payload word %d", i)
		}
	}

	if err := bw.Close(); err != nil {
		return errors.Wrap(err, "wire: flush")
	}
	return nil
}

// ReadBlock reads one EncodedBlock whose payload is exactly blockSize
// words long from r, the inverse of WriteBlock.
func ReadBlock(r io.Reader, blockSize int) (lt.EncodedBlock, error) {
	br := bitio.NewReader(r)

	seed, err := br.ReadBits(64)
	if err != nil {
		return lt.EncodedBlock{}, errors.Wrap(err, "wire: read seed")
	}
	degree, err := br.ReadBits(32)
	if err != nil {
		return lt.EncodedBlock{}, errors.Wrap(err, "wire: read degree")
	}

	payload := make([]int32, blockSize)
	for i := range payload {
		word, err := br.ReadBits(32)
		if err != nil {
			return lt.EncodedBlock{}, errors.Wrapf(err, "wire: read payload word %d", i)
		}
		payload[i] = int32(uint32(word))
	}

	return lt.EncodedBlock{
		Seed:    seed,
		Degree:  uint32(degree),
		Payload: payload,
	}, nil
}
