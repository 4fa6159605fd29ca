package rsync_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharfpatch/fdp/rsync"
)

func TestRoundTripIdentical(t *testing.T) {
	before := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200)
	delta, err := rsync.Encode(before, before)
	require.NoError(t, err)

	got, err := rsync.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestRoundTripInsertion(t *testing.T) {
	before := bytes.Repeat([]byte("0123456789"), 500)
	after := append(append(append([]byte{}, before[:2000]...), []byte("INSERTED-BYTES-HERE")...), before[2000:]...)

	delta, err := rsync.Encode(before, after)
	require.NoError(t, err)

	got, err := rsync.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripAppend(t *testing.T) {
	before := bytes.Repeat([]byte("ABCDEFGH"), 1000)
	after := append(append([]byte{}, before...), []byte("trailing tail that is brand new")...)

	delta, err := rsync.Encode(before, after)
	require.NoError(t, err)

	got, err := rsync.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripTruncate(t *testing.T) {
	before := bytes.Repeat([]byte("xyzxyzxyz"), 1000)
	after := before[:3000]

	delta, err := rsync.Encode(before, after)
	require.NoError(t, err)

	got, err := rsync.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripEmptyBefore(t *testing.T) {
	after := []byte("brand new content with nothing to copy from")
	delta, err := rsync.Encode(nil, after)
	require.NoError(t, err)

	got, err := rsync.Decode(nil, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripEmptyAfter(t *testing.T) {
	before := bytes.Repeat([]byte("data"), 500)
	delta, err := rsync.Encode(before, nil)
	require.NoError(t, err)

	got, err := rsync.Decode(before, delta)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoundTripCompletelyDifferent(t *testing.T) {
	before := bytes.Repeat([]byte{0xAA}, 5000)
	after := bytes.Repeat([]byte{0x55}, 5000)

	delta, err := rsync.Encode(before, after)
	require.NoError(t, err)

	got, err := rsync.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestDecodeRejectsCorruptOpTag(t *testing.T) {
	_, err := rsync.Decode([]byte("hello world"), []byte{0xFF})
	assert.ErrorIs(t, err, rsync.ErrCorrupt)
}

func TestDecodeRejectsOutOfRangeCopy(t *testing.T) {
	before := bytes.Repeat([]byte("short base "), 300)
	delta, err := rsync.Encode(before, before)
	require.NoError(t, err)

	// Every block of before matches itself, so the delta is one copy span
	// over blocks 0..3. A 4-byte before only has block 0, which puts the
	// end of that span out of range.
	got, err := rsync.Decode(before[:4], delta)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, rsync.ErrMismatchedBase)
}
