package compress_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharfpatch/fdp/compress"
)

func TestIdentityRoundTrip(t *testing.T) {
	data := []byte("some bytes that should pass through untouched")
	compressed := compress.Identity(data)
	assert.Equal(t, data, compressed)
	assert.Equal(t, data, compress.DecodeIdentity(compressed))
}

func TestZstdRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 4096)
	compressed, err := compress.Zstd(data)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(data))

	decompressed, err := compress.DecodeZstd(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestZstdRejectsTruncatedFrame(t *testing.T) {
	data := bytes.Repeat([]byte("highly compressible data "), 1024)
	compressed, err := compress.Zstd(data)
	require.NoError(t, err)

	_, err = compress.DecodeZstd(compressed[:len(compressed)-4])
	assert.Error(t, err)
}
