package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulletproofsProveVerifySingleValue(t *testing.T) {
	values := []uint64{12345}
	blindings := ScalarVector{RandomScalar()}

	proof, commitments, err := ProveAggregatedRange(values, blindings, 8)
	assert.NoError(t, err)
	assert.True(t, proof.Check(commitments, 8))
}

func TestBulletproofsProveVerifyAggregated(t *testing.T) {
	values := []uint64{1, 2, 3, 4}
	blindings := ScalarVector{RandomScalar(), RandomScalar(), RandomScalar(), RandomScalar()}

	proof, commitments, err := ProveAggregatedRange(values, blindings, 16)
	assert.NoError(t, err)
	assert.True(t, proof.Check(commitments, 16))
}

func TestBulletproofsRejectsNonPowerOfTwoCount(t *testing.T) {
	values := []uint64{1, 2, 3}
	blindings := ScalarVector{RandomScalar(), RandomScalar(), RandomScalar()}

	_, _, err := ProveAggregatedRange(values, blindings, 8)
	assert.Error(t, err)
}

func TestBulletproofsRejectsInvalidBitSize(t *testing.T) {
	values := []uint64{1}
	blindings := ScalarVector{RandomScalar()}

	_, _, err := ProveAggregatedRange(values, blindings, 24)
	assert.Error(t, err)
}

func TestBulletproofsOutOfRangeValueFailsCheck(t *testing.T) {
	// 1000 does not fit in 8 bits (max 255): the proof still constructs
	// (it just encodes the out-of-range bit decomposition) but Check
	// must reject it.
	values := []uint64{1000}
	blindings := ScalarVector{RandomScalar()}

	proof, commitments, err := ProveAggregatedRange(values, blindings, 8)
	assert.NoError(t, err)
	assert.False(t, proof.Check(commitments, 8))
}

func TestBulletproofsMarshalRoundTrip(t *testing.T) {
	values := []uint64{7, 8}
	blindings := ScalarVector{RandomScalar(), RandomScalar()}

	proof, commitments, err := ProveAggregatedRange(values, blindings, 8)
	assert.NoError(t, err)

	data, err := proof.MarshalBinary()
	assert.NoError(t, err)

	got := &RangeProof{}
	assert.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, got.Check(commitments, 8))
}
