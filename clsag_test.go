package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLSAGSignVerify(t *testing.T) {
	n := 6
	index := 3
	value := uint64(500)

	ring := make(PointVector, n)
	commitments := make(PointVector, n)
	x := RandomScalar()
	inputBlinding := RandomScalar()
	pseudoOutBlinding := RandomScalar()
	for i := 0; i < n; i++ {
		if i == index {
			ring[i] = ScalarMulBase(x)
			commitments[i] = NewCommitment(value, inputBlinding)
			continue
		}
		ring[i] = ScalarMulBase(RandomScalar())
		commitments[i] = NewCommitment(uint64(i*10+1), RandomScalar())
	}
	pseudoOut := NewCommitment(value, pseudoOutBlinding)

	digest := []byte("clsag message")
	sig, err := CLSAGSign(digest, ring, commitments, index, x, inputBlinding, pseudoOutBlinding, pseudoOut)
	assert.NoError(t, err)
	assert.True(t, sig.Check(digest, ring, commitments, pseudoOut))
}

func TestCLSAGRejectsDuplicateRing(t *testing.T) {
	n := 4
	index := 0
	ring := make(PointVector, n)
	commitments := make(PointVector, n)
	x := RandomScalar()
	for i := 0; i < n; i++ {
		ring[i] = ScalarMulBase(x)
		commitments[i] = NewCommitment(1, RandomScalar())
	}
	_, err := CLSAGSign([]byte("d"), ring, commitments, index, x, RandomScalar(), RandomScalar(), NewCommitment(1, RandomScalar()))
	assert.Error(t, err)
}

func TestCLSAGCheckRejectsTamperedDigest(t *testing.T) {
	n := 4
	index := 1
	value := uint64(77)

	ring := make(PointVector, n)
	commitments := make(PointVector, n)
	x := RandomScalar()
	inputBlinding := RandomScalar()
	pseudoOutBlinding := RandomScalar()
	for i := 0; i < n; i++ {
		if i == index {
			ring[i] = ScalarMulBase(x)
			commitments[i] = NewCommitment(value, inputBlinding)
			continue
		}
		ring[i] = ScalarMulBase(RandomScalar())
		commitments[i] = NewCommitment(uint64(i+1), RandomScalar())
	}
	pseudoOut := NewCommitment(value, pseudoOutBlinding)

	sig, err := CLSAGSign([]byte("message a"), ring, commitments, index, x, inputBlinding, pseudoOutBlinding, pseudoOut)
	assert.NoError(t, err)
	assert.False(t, sig.Check([]byte("message b"), ring, commitments, pseudoOut))
}

func TestCLSAGMarshalRoundTrip(t *testing.T) {
	n := 4
	index := 2
	value := uint64(42)

	ring := make(PointVector, n)
	commitments := make(PointVector, n)
	x := RandomScalar()
	inputBlinding := RandomScalar()
	pseudoOutBlinding := RandomScalar()
	for i := 0; i < n; i++ {
		if i == index {
			ring[i] = ScalarMulBase(x)
			commitments[i] = NewCommitment(value, inputBlinding)
			continue
		}
		ring[i] = ScalarMulBase(RandomScalar())
		commitments[i] = NewCommitment(uint64(i+1), RandomScalar())
	}
	pseudoOut := NewCommitment(value, pseudoOutBlinding)
	digest := []byte("marshal")

	sig, err := CLSAGSign(digest, ring, commitments, index, x, inputBlinding, pseudoOutBlinding, pseudoOut)
	assert.NoError(t, err)

	data, err := sig.MarshalBinary()
	assert.NoError(t, err)

	got := &CLSAGSignature{}
	assert.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, got.Check(digest, ring, commitments, pseudoOut))
}
