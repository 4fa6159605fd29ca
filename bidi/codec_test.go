package bidi_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharfpatch/fdp/bidi"
)

func TestRoundTripIdentical(t *testing.T) {
	before := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200)
	delta, err := bidi.Encode(before, before)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestRoundTripInsertion(t *testing.T) {
	before := bytes.Repeat([]byte("0123456789"), 500)
	after := append(append(append([]byte{}, before[:2000]...), []byte("INSERTED-BYTES-HERE")...), before[2000:]...)

	delta, err := bidi.Encode(before, after)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripSmallEdit(t *testing.T) {
	before := []byte("a quick brown fox jumps over the lazy dog, many times over")
	after := []byte("a quick RED fox leaps over the lazy dog, many many times over")

	delta, err := bidi.Encode(before, after)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripAppend(t *testing.T) {
	before := bytes.Repeat([]byte("ABCDEFGH"), 1000)
	after := append(append([]byte{}, before...), []byte("trailing tail that is brand new")...)

	delta, err := bidi.Encode(before, after)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripTruncate(t *testing.T) {
	before := bytes.Repeat([]byte("xyzxyzxyz"), 1000)
	after := before[:3000]

	delta, err := bidi.Encode(before, after)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripEmptyBefore(t *testing.T) {
	after := []byte("brand new content with nothing to copy from")
	delta, err := bidi.Encode(nil, after)
	require.NoError(t, err)

	got, err := bidi.Decode(nil, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestRoundTripEmptyAfter(t *testing.T) {
	before := bytes.Repeat([]byte("data"), 500)
	delta, err := bidi.Encode(before, nil)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoundTripBothEmpty(t *testing.T) {
	delta, err := bidi.Encode(nil, nil)
	require.NoError(t, err)

	got, err := bidi.Decode(nil, delta)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoundTripCompletelyDifferent(t *testing.T) {
	before := bytes.Repeat([]byte{0xAA}, 5000)
	after := bytes.Repeat([]byte{0x55}, 5000)

	delta, err := bidi.Encode(before, after)
	require.NoError(t, err)

	got, err := bidi.Decode(before, delta)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestDecodeRejectsCorruptStream(t *testing.T) {
	_, err := bidi.Decode([]byte("hello world"), []byte{0x01})
	assert.ErrorIs(t, err, bidi.ErrCorrupt)
}

func TestDecodeRejectsOutOfRangeCopy(t *testing.T) {
	before := bytes.Repeat([]byte("needle in a haystack of text "), 50)
	after := append(append([]byte{}, before...), []byte("a brand new trailing suffix")...)

	delta, err := bidi.Encode(before, after)
	require.NoError(t, err)

	_, err = bidi.Decode(before[:10], delta)
	assert.ErrorIs(t, err, bidi.ErrMismatchedBase)
}
