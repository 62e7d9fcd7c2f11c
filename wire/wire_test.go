package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fountaincodec/lt/lt"
)

func TestWriteReadBlockRoundTrip(t *testing.T) {
	original := lt.EncodedBlock{
		Seed:    0xdeadbeefcafef00d,
		Degree:  7,
		Payload: []int32{1, -2, 3, -4, 2147483647, -2147483648},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBlock(&buf, original))

	got, err := ReadBlock(&buf, len(original.Payload))
	require.NoError(t, err)

	assert.Equal(t, original.Seed, got.Seed)
	assert.Equal(t, original.Degree, got.Degree)
	assert.Equal(t, original.Payload, got.Payload)
}

func TestReadBlockErrorsOnTruncatedInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBlock(&buf, lt.EncodedBlock{Seed: 1, Degree: 2, Payload: []int32{1, 2, 3}}))

	truncated := buf.Bytes()[:4]
	_, err := ReadBlock(bytes.NewReader(truncated), 3)
	assert.Error(t, err)
}

func TestWriteReadMultipleBlocksSequentially(t *testing.T) {
	var buf bytes.Buffer
	blocks := []lt.EncodedBlock{
		{Seed: 1, Degree: 1, Payload: []int32{10, 20}},
		{Seed: 2, Degree: 2, Payload: []int32{30, 40}},
		{Seed: 3, Degree: 1, Payload: []int32{50, 60}},
	}
	for _, b := range blocks {
		require.NoError(t, WriteBlock(&buf, b))
	}

	for _, want := range blocks {
		got, err := ReadBlock(&buf, len(want.Payload))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
