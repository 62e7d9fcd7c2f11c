package lt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSourceBlocks(k, blockSize int, seed int32) []SourceBlock {
	blocks := make([]SourceBlock, k)
	for i := range blocks {
		b := make(SourceBlock, blockSize)
		for j := range b {
			b[j] = seed*int32(1000) + int32(i*blockSize+j)
		}
		blocks[i] = b
	}
	return blocks
}

func TestNewEncoderRejectsEmptySource(t *testing.T) {
	_, err := NewEncoder(nil, nil, 0, 0)
	require.Error(t, err)
}

func TestNewEncoderRejectsEmptyBlocks(t *testing.T) {
	_, err := NewEncoder([]SourceBlock{{}}, nil, 0, 0)
	require.Error(t, err)
}

func TestNewEncoderRejectsUnequalLengths(t *testing.T) {
	_, err := NewEncoder([]SourceBlock{{1, 2}, {1}}, nil, 0, 0)
	require.Error(t, err)
}

func TestNewEncoderWithExplicitMasterSeedIsDeterministic(t *testing.T) {
	source := makeSourceBlocks(10, 4, 1)
	seed := uint64(12345)

	encA, err := NewEncoder(source, &seed, 0, 0)
	require.NoError(t, err)
	encB, err := NewEncoder(source, &seed, 0, 0)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		a := encA.GenerateBlock(nil)
		b := encB.GenerateBlock(nil)
		assert.Equal(t, a.Seed, b.Seed)
		assert.Equal(t, a.Degree, b.Degree)
		assert.Equal(t, a.Payload, b.Payload)
	}
}

func TestGenerateBlockWithExplicitSeedReproducesComposition(t *testing.T) {
	source := makeSourceBlocks(8, 3, 2)
	enc, err := NewEncoder(source, nil, 0, 0)
	require.NoError(t, err)

	seed := uint64(777)
	eb := enc.GenerateBlock(&seed)
	assert.Equal(t, seed, eb.Seed)

	degree, indices := deriveBlockComposition(seed, enc.dist, len(source))
	assert.Equal(t, uint32(degree), eb.Degree)

	want := newZeroBlock(3)
	for _, i := range indices {
		xorInto(want, source[i])
	}
	assert.Equal(t, want, eb.Payload)
}

func TestEncodeFileBlocksCount(t *testing.T) {
	source := makeSourceBlocks(5, 2, 3)
	blocks, err := EncodeFileBlocks(source, nil, 17)
	require.NoError(t, err)
	assert.Len(t, blocks, 17)
}
