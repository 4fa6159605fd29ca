package fdp_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharfpatch/fdp/fdp"
)

var bothDeltaAlgos = []fdp.DeltaAlgorithm{fdp.RollingHash, fdp.SuffixArrayBidi}
var bothCompressAlgos = []fdp.CompressAlgorithm{fdp.None, fdp.DictionaryLevel21}

func TestScenarioHelloWorld(t *testing.T) {
	before := []byte("hello world")
	after := []byte("hello brave new world")

	p, err := fdp.Diff(before, after, fdp.RollingHash, fdp.None)
	require.NoError(t, err)
	assert.Equal(t, fdp.Fingerprint(before), p.BeforeFingerprint)
	assert.Equal(t, fdp.Fingerprint(after), p.AfterFingerprint)

	got, err := fdp.Apply(before, p)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestScenarioSmallEditLargeBuffer(t *testing.T) {
	before := make([]byte, 1<<20)
	after := make([]byte, 1<<20)
	copy(after, before)
	copy(after[512:520], []byte("DEADBEEF"))

	p, err := fdp.Diff(before, after, fdp.RollingHash, fdp.DictionaryLevel21)
	require.NoError(t, err)
	assert.Less(t, len(p.Payload), 1024)

	got, err := fdp.Apply(before, p)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestScenarioIdenticalInputs(t *testing.T) {
	before := make([]byte, 100*1024)
	_, err := rand.Read(before)
	require.NoError(t, err)

	p, err := fdp.Diff(before, before, fdp.RollingHash, fdp.None)
	require.NoError(t, err)
	assert.Equal(t, p.BeforeFingerprint, p.AfterFingerprint)

	got, err := fdp.Apply(before, p)
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestScenarioWrongBaseRejectedBeforeDecode(t *testing.T) {
	before := []byte("abc")
	after := []byte("xyz")

	p, err := fdp.Diff(before, after, fdp.SuffixArrayBidi, fdp.None)
	require.NoError(t, err)

	wrongBase := []byte("abd")
	_, err = fdp.Apply(wrongBase, p)
	assert.ErrorIs(t, err, fdp.ErrMismatchedBase)
}

func TestScenarioTamperedPayloadDetected(t *testing.T) {
	before := bytes.Repeat([]byte("payload tamper detection test data "), 200)
	after := append(append([]byte{}, before...), []byte("a new trailing chunk")...)

	p, err := fdp.Diff(before, after, fdp.RollingHash, fdp.None)
	require.NoError(t, err)
	require.NotEmpty(t, p.Payload)

	p.Payload[len(p.Payload)-1] ^= 0xFF

	_, err = fdp.Apply(before, p)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, fdp.ErrCorruptDelta) || errors.Is(err, fdp.ErrMismatchedBase))
}

func TestRoundTripAllAlgorithmCombinations(t *testing.T) {
	before := bytes.Repeat([]byte("cross-product coverage of every algorithm pairing. "), 300)
	after := append(append([]byte{}, before[:4000]...), append([]byte("MUTATION"), before[4000:]...)...)

	for _, delta := range bothDeltaAlgos {
		for _, comp := range bothCompressAlgos {
			p, err := fdp.Diff(before, after, delta, comp)
			require.NoError(t, err)

			got, err := fdp.Apply(before, p)
			require.NoError(t, err)
			assert.Equal(t, after, got)
		}
	}
}

func TestPatchSerializationRoundTrip(t *testing.T) {
	before := []byte("some base content")
	after := []byte("some mutated content")

	p, err := fdp.Diff(before, after, fdp.RollingHash, fdp.DictionaryLevel21)
	require.NoError(t, err)

	b := p.ToBytes()
	p2, err := fdp.PatchFromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, p.DeltaAlgorithm, p2.DeltaAlgorithm)
	assert.Equal(t, p.CompressAlgorithm, p2.CompressAlgorithm)
	assert.Equal(t, p.BeforeFingerprint, p2.BeforeFingerprint)
	assert.Equal(t, p.AfterFingerprint, p2.AfterFingerprint)
	assert.Equal(t, p.Payload, p2.Payload)
	assert.Equal(t, b, p2.ToBytes())
}

func TestDiffIsDeterministic(t *testing.T) {
	before := bytes.Repeat([]byte("determinism check "), 500)
	after := bytes.Repeat([]byte("determinism check!"), 500)

	p1, err := fdp.Diff(before, after, fdp.SuffixArrayBidi, fdp.DictionaryLevel21)
	require.NoError(t, err)
	p2, err := fdp.Diff(before, after, fdp.SuffixArrayBidi, fdp.DictionaryLevel21)
	require.NoError(t, err)

	assert.Equal(t, p1.ToBytes(), p2.ToBytes())
}
