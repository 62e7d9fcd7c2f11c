package cli

import "encoding/binary"

// chunkFile splits data into k source blocks of blockSize int32 words
// each, zero-filling every word past the end of data. Bytes beyond the
// first k*blockSize*4 are not included in any block. This is the file-chunker
// collaborator spec.md §1 scopes outside the core lt package; it knows
// nothing about seeds, degrees, or peeling.
func chunkFile(data []byte, k, blockSize int) []lt32 {
	wordsPerBlock := blockSize
	bytesPerBlock := wordsPerBlock * 4

	blocks := make([]lt32, k)
	for i := 0; i < k; i++ {
		start := i * bytesPerBlock
		end := start + bytesPerBlock
		chunk := make([]byte, bytesPerBlock)
		if start < len(data) {
			n := copy(chunk, data[start:min(end, len(data))])
			_ = n
		}
		blocks[i] = bytesToWords(chunk)
	}
	return blocks
}

// reassembleFile is the inverse of chunkFile, truncated to originalLen
// bytes.
func reassembleFile(blocks []lt32, originalLen int) []byte {
	out := make([]byte, 0, len(blocks)*len(blocks[0])*4)
	for _, b := range blocks {
		out = append(out, wordsToBytes(b)...)
	}
	if originalLen < len(out) {
		out = out[:originalLen]
	}
	return out
}

// lt32 is a local alias kept distinct from lt.SourceBlock so this file
// stays ignorant of the lt package's types — it only deals in raw int32
// words, the way a real chunker library would hand off to many possible
// codecs.
type lt32 = []int32

func bytesToWords(b []byte) []int32 {
	words := make([]int32, len(b)/4)
	for i := range words {
		words[i] = int32(binary.BigEndian.Uint32(b[i*4 : i*4+4]))
	}
	return words
}

func wordsToBytes(w []int32) []byte {
	out := make([]byte, len(w)*4)
	for i, word := range w {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], uint32(word))
	}
	return out
}
