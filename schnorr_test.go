package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchnorrSignVerify(t *testing.T) {
	s := RandomScalar()
	P := ScalarMulBase(s)
	digest := []byte("schnorr message")

	sig, err := SchnorrSign(digest, s)
	assert.NoError(t, err)
	assert.True(t, sig.Verify(digest, P))
}

func TestSchnorrVerifyRejectsWrongKey(t *testing.T) {
	s := RandomScalar()
	P := ScalarMulBase(s)
	_ = P
	other := ScalarMulBase(RandomScalar())
	digest := []byte("schnorr message")

	sig, err := SchnorrSign(digest, s)
	assert.NoError(t, err)
	assert.False(t, sig.Verify(digest, other))
}

func TestSchnorrVerifyRejectsWrongDigest(t *testing.T) {
	s := RandomScalar()
	P := ScalarMulBase(s)

	sig, err := SchnorrSign([]byte("message a"), s)
	assert.NoError(t, err)
	assert.False(t, sig.Verify([]byte("message b"), P))
}

func TestSchnorrPrepareCompleteMatchesSign(t *testing.T) {
	s := RandomScalar()
	P := ScalarMulBase(s)
	digest := []byte("prepare complete")

	prepared, err := SchnorrPrepare(digest, P)
	assert.NoError(t, err)

	sig := SchnorrComplete(s, prepared)
	assert.True(t, sig.Verify(digest, P))
}

func TestSchnorrMarshalRoundTrip(t *testing.T) {
	s := RandomScalar()
	P := ScalarMulBase(s)
	digest := []byte("marshal")

	sig, err := SchnorrSign(digest, s)
	assert.NoError(t, err)

	data, err := sig.MarshalBinary()
	assert.NoError(t, err)

	got := &Schnorr{}
	assert.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, got.Verify(digest, P))
}
