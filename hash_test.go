package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashFunctionsDeterministicAndDistinct(t *testing.T) {
	data := []byte("ringcrypto hash test vector")

	sha3_256 := SHA3_256Sum(data)
	assert.Len(t, sha3_256, 32)
	assert.Equal(t, sha3_256, SHA3_256Sum(data))

	sha3_512 := SHA3_512Sum(data)
	assert.Len(t, sha3_512, 64)

	sha256 := SHA256Sum(data)
	assert.Len(t, sha256, 32)

	sha512 := SHA512Sum(data)
	assert.Len(t, sha512, 64)

	b2_256 := Blake2b256Sum(data)
	assert.Len(t, b2_256, 32)

	b2_512 := Blake2b512Sum(data)
	assert.Len(t, b2_512, 64)

	// All distinct hash families should disagree on the same input.
	assert.NotEqual(t, sha3_256, sha256)
	assert.NotEqual(t, sha3_256, b2_256)
	assert.NotEqual(t, sha256, b2_256)
}

func TestArgon2idSumDeterministicAndSensitive(t *testing.T) {
	a := Argon2idSum([]byte("password one"))
	b := Argon2idSum([]byte("password one"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	c := Argon2idSum([]byte("password two"))
	assert.NotEqual(t, a, c)
}
