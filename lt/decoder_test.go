package lt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderFullRoundTrip(t *testing.T) {
	k, blockSize := 30, 4
	source := makeSourceBlocks(k, blockSize, 9)
	masterSeed := uint64(424242)

	enc, err := NewEncoder(source, &masterSeed, 0, 0)
	require.NoError(t, err)
	dec, err := NewDecoder(k, blockSize, 0, 0)
	require.NoError(t, err)

	const cap = 500
	for i := 0; i < cap && !dec.IsComplete(); i++ {
		eb := enc.GenerateBlock(nil)
		_, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
		require.NoError(t, err)
	}

	require.True(t, dec.IsComplete(), "decoder did not converge within %d blocks", cap)

	recovered := dec.GetAllDecodedBlocks()
	require.Len(t, recovered, k)
	for i := range source {
		assert.Equal(t, []int32(source[i]), []int32(recovered[i]), "block %d mismatch", i)
	}
}

func TestDecoderKEqualsOneTrivialCase(t *testing.T) {
	source := makeSourceBlocks(1, 4, 1)
	enc, err := NewEncoder(source, nil, 0, 0)
	require.NoError(t, err)
	dec, err := NewDecoder(1, 4, 0, 0)
	require.NoError(t, err)

	eb := enc.GenerateBlock(nil)
	result, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
	require.NoError(t, err)
	assert.True(t, dec.IsComplete())
	assert.Equal(t, 1, result.DecodedCount)
	assert.Equal(t, []int32(source[0]), []int32(dec.GetAllDecodedBlocks()[0]))
}

func TestDecoderBlockSizeOne(t *testing.T) {
	k := 12
	source := makeSourceBlocks(k, 1, 4)
	masterSeed := uint64(55)

	enc, err := NewEncoder(source, &masterSeed, 0, 0)
	require.NoError(t, err)
	dec, err := NewDecoder(k, 1, 0, 0)
	require.NoError(t, err)

	for i := 0; i < 200 && !dec.IsComplete(); i++ {
		eb := enc.GenerateBlock(nil)
		_, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
		require.NoError(t, err)
	}
	require.True(t, dec.IsComplete())
}

func TestDecoderRejectsWrongPayloadLength(t *testing.T) {
	dec, err := NewDecoder(5, 4, 0, 0)
	require.NoError(t, err)
	_, err = dec.AddEncodedBlock(1, 1, []int32{1, 2, 3})
	require.Error(t, err)
}

func TestDecoderSeedMismatchIsNonFatal(t *testing.T) {
	dec, err := NewDecoder(5, 4, 0, 0)
	require.NoError(t, err)

	result, err := dec.AddEncodedBlock(1, 999, []int32{1, 2, 3, 4})
	require.NoError(t, err)
	assert.True(t, result.SeedMismatch)
	assert.False(t, dec.IsComplete())
	assert.Equal(t, 0, dec.DecodedCount())
}

func TestDecoderDuplicateBlockDeliveryIsIdempotent(t *testing.T) {
	k, blockSize := 6, 3
	source := makeSourceBlocks(k, blockSize, 2)
	enc, err := NewEncoder(source, nil, 0, 0)
	require.NoError(t, err)
	dec, err := NewDecoder(k, blockSize, 0, 0)
	require.NoError(t, err)

	seed := uint64(11)
	eb := enc.GenerateBlock(&seed)

	r1, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
	require.NoError(t, err)
	countAfterFirst := r1.DecodedCount

	r2, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
	require.NoError(t, err)
	assert.Equal(t, countAfterFirst, r2.DecodedCount)
}

func TestDecoderTwoIndependentDecodersAgree(t *testing.T) {
	k, blockSize := 20, 4
	source := makeSourceBlocks(k, blockSize, 6)
	masterSeed := uint64(909090)

	enc, err := NewEncoder(source, &masterSeed, 0, 0)
	require.NoError(t, err)

	decA, err := NewDecoder(k, blockSize, 0, 0)
	require.NoError(t, err)
	decB, err := NewDecoder(k, blockSize, 0, 0)
	require.NoError(t, err)

	for i := 0; i < 300 && !(decA.IsComplete() && decB.IsComplete()); i++ {
		eb := enc.GenerateBlock(nil)
		_, err := decA.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
		require.NoError(t, err)
		_, err = decB.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
		require.NoError(t, err)
	}

	require.True(t, decA.IsComplete())
	require.True(t, decB.IsComplete())
	assert.Equal(t, decA.GetAllDecodedBlocks(), decB.GetAllDecodedBlocks())
	assert.Equal(t, decA.CurrentRound(), decB.CurrentRound())
}

func TestDecoderStatsTransitionsToComplete(t *testing.T) {
	k, blockSize := 4, 2
	source := makeSourceBlocks(k, blockSize, 1)
	enc, err := NewEncoder(source, nil, 0, 0)
	require.NoError(t, err)
	dec, err := NewDecoder(k, blockSize, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, Starving, dec.Stats().State)

	for i := 0; i < 100 && !dec.IsComplete(); i++ {
		eb := enc.GenerateBlock(nil)
		_, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
		require.NoError(t, err)
	}

	stats := dec.Stats()
	assert.Equal(t, Complete, stats.State)
	assert.Equal(t, k, stats.DecodedCount)
}

func TestNewDecoderRejectsBadDimensions(t *testing.T) {
	_, err := NewDecoder(0, 4, 0, 0)
	require.Error(t, err)
	_, err = NewDecoder(4, 0, 0, 0)
	require.Error(t, err)
}
