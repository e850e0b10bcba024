package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulletproofsPlusProveVerifySingleValue(t *testing.T) {
	values := []uint64{999}
	blindings := ScalarVector{RandomScalar()}

	proof, commitments, err := ProveAggregatedRangePlus(values, blindings, 16)
	assert.NoError(t, err)
	assert.True(t, proof.Check(commitments, 16))
}

func TestBulletproofsPlusProveVerifyAggregated(t *testing.T) {
	values := []uint64{10, 20, 30, 40}
	blindings := ScalarVector{RandomScalar(), RandomScalar(), RandomScalar(), RandomScalar()}

	proof, commitments, err := ProveAggregatedRangePlus(values, blindings, 8)
	assert.NoError(t, err)
	assert.True(t, proof.Check(commitments, 8))
}

func TestBulletproofsPlusRejectsNonPowerOfTwoCount(t *testing.T) {
	values := []uint64{1, 2, 3}
	blindings := ScalarVector{RandomScalar(), RandomScalar(), RandomScalar()}

	_, _, err := ProveAggregatedRangePlus(values, blindings, 8)
	assert.Error(t, err)
}

func TestBulletproofsPlusOutOfRangeValueFailsCheck(t *testing.T) {
	values := []uint64{1000}
	blindings := ScalarVector{RandomScalar()}

	proof, commitments, err := ProveAggregatedRangePlus(values, blindings, 8)
	assert.NoError(t, err)
	assert.False(t, proof.Check(commitments, 8))
}

func TestBulletproofsPlusMarshalRoundTrip(t *testing.T) {
	values := []uint64{3, 4}
	blindings := ScalarVector{RandomScalar(), RandomScalar()}

	proof, commitments, err := ProveAggregatedRangePlus(values, blindings, 8)
	assert.NoError(t, err)

	data, err := proof.MarshalBinary()
	assert.NoError(t, err)

	got := &RangeProofPlus{}
	assert.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, got.Check(commitments, 8))
}
