package lzfu

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUncompressedHeader(body []byte) []byte {
	hdr := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(headerSize+len(body)-4))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(body)))
	binary.LittleEndian.PutUint32(hdr[8:12], magicUncompressed)
	binary.LittleEndian.PutUint32(hdr[12:16], 0)
	return append(hdr, body...)
}

func TestDecompress_UncompressedMagicPassesThrough(t *testing.T) {
	body := []byte(`{\rtf1\ansi hello}`)
	src := buildUncompressedHeader(body)

	out, err := Decompress(src)
	require.NoError(t, err)
	assert.Equal(t, body, out)
}

func TestDecompress_TooShortIsInvalidHeader(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3})
	assert.Equal(t, ErrInvalidHeader, err)
}

func TestDecompress_SizeMismatchIsRejected(t *testing.T) {
	src := buildUncompressedHeader([]byte("hello"))
	binary.LittleEndian.PutUint32(src[0:4], 999) // lie about compressed size
	_, err := Decompress(src)
	assert.Equal(t, ErrSizeMismatch, err)
}

func TestDecompress_UnknownMagicIsRejected(t *testing.T) {
	src := buildUncompressedHeader([]byte("hello"))
	binary.LittleEndian.PutUint32(src[8:12], 0xDEADBEEF)
	_, err := Decompress(src)
	require.Error(t, err)
}

func TestCRC32Of_IsDeterministic(t *testing.T) {
	buf := []byte("the quick brown fox")
	first := crc32Of(buf)
	second := crc32Of(buf)
	assert.Equal(t, first, second)
}
