package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProveCheckOwnership(t *testing.T) {
	xs := []*Scalar{RandomScalar(), RandomScalar(), RandomScalar()}
	keys := make(PointVector, len(xs))
	for i, x := range xs {
		keys[i] = ScalarMulBase(x)
	}

	proof, err := ProveOwnership(xs)
	assert.NoError(t, err)
	assert.True(t, CheckOwnership(proof, keys))
}

func TestProveOwnershipRejectsEmpty(t *testing.T) {
	_, err := ProveOwnership(nil)
	assert.Error(t, err)
}

func TestProveOwnershipRejectsZeroEphemeral(t *testing.T) {
	xs := []*Scalar{RandomScalar(), ZeroScalar()}
	_, err := ProveOwnership(xs)
	assert.Error(t, err)
}

func TestCheckOwnershipRejectsReorderedKeys(t *testing.T) {
	xs := []*Scalar{RandomScalar(), RandomScalar()}
	keys := make(PointVector, len(xs))
	for i, x := range xs {
		keys[i] = ScalarMulBase(x)
	}

	proof, err := ProveOwnership(xs)
	assert.NoError(t, err)

	reordered := PointVector{keys[1], keys[0]}
	assert.False(t, CheckOwnership(proof, reordered))
}

func TestCheckOwnershipRejectsSubstitutedKey(t *testing.T) {
	xs := []*Scalar{RandomScalar(), RandomScalar()}
	keys := make(PointVector, len(xs))
	for i, x := range xs {
		keys[i] = ScalarMulBase(x)
	}

	proof, err := ProveOwnership(xs)
	assert.NoError(t, err)

	keys[1] = ScalarMulBase(RandomScalar())
	assert.False(t, CheckOwnership(proof, keys))
}

func TestCheckOwnershipRejectsLengthMismatch(t *testing.T) {
	xs := []*Scalar{RandomScalar(), RandomScalar()}
	proof, err := ProveOwnership(xs)
	assert.NoError(t, err)

	assert.False(t, CheckOwnership(proof, PointVector{ScalarMulBase(RandomScalar())}))
}

func TestAuditProofEncodeDecode(t *testing.T) {
	xs := []*Scalar{RandomScalar(), RandomScalar()}
	keys := make(PointVector, len(xs))
	for i, x := range xs {
		keys[i] = ScalarMulBase(x)
	}

	proof, err := ProveOwnership(xs)
	assert.NoError(t, err)

	encoded, err := EncodeAuditProof(proof)
	assert.NoError(t, err)

	decoded, err := DecodeAuditProof(encoded)
	assert.NoError(t, err)
	assert.True(t, CheckOwnership(decoded, keys))
}

func TestDecodeAuditProofRejectsBadChecksum(t *testing.T) {
	xs := []*Scalar{RandomScalar()}
	proof, err := ProveOwnership(xs)
	assert.NoError(t, err)

	encoded, err := EncodeAuditProof(proof)
	assert.NoError(t, err)

	tampered := encoded[:len(encoded)-1] + "9"
	_, err = DecodeAuditProof(tampered)
	assert.Error(t, err)
}
