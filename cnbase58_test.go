package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCNBase58RoundTripFullBlocks(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i * 7)
	}

	encoded := CNBase58Encode(data)
	assert.Len(t, encoded, 22)

	ok, decoded := CNBase58Decode(encoded)
	assert.True(t, ok)
	assert.Equal(t, data, decoded)
}

func TestCNBase58RoundTripPartialBlock(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	encoded := CNBase58Encode(data)
	ok, decoded := CNBase58Decode(encoded)
	assert.True(t, ok)
	assert.Equal(t, data, decoded)
}

func TestCNBase58EmptyInput(t *testing.T) {
	assert.Equal(t, "", CNBase58Encode(nil))
	ok, _ := CNBase58Decode("")
	assert.False(t, ok)
}

func TestCNBase58DecodeRejectsInvalidSymbol(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	encoded := CNBase58Encode(data)

	bad := []byte(encoded)
	bad[0] = '0' // '0' is excluded from the alphabet
	ok, _ := CNBase58Decode(string(bad))
	assert.False(t, ok)
}

func TestCNBase58DecodeRejectsBadLength(t *testing.T) {
	ok, _ := CNBase58Decode("1")
	assert.False(t, ok)
}

func TestCNBase58EncodeDecodeCheck(t *testing.T) {
	data := []byte("cryptonote address payload")
	encoded := CNBase58EncodeCheck(data)

	ok, decoded := CNBase58DecodeCheck(encoded)
	assert.True(t, ok)
	assert.Equal(t, data, decoded)
}

func TestCNBase58DecodeCheckRejectsTamperedChecksum(t *testing.T) {
	data := []byte("payload")
	encoded := CNBase58EncodeCheck(data)

	bad := []byte(encoded)
	bad[len(bad)-1] = cnOtherAlphabetChar(bad[len(bad)-1])
	ok, _ := CNBase58DecodeCheck(string(bad))
	assert.False(t, ok)
}

// cnOtherAlphabetChar returns an alphabet character distinct from c, so
// tampering tests reliably flip the encoded value instead of risking a
// no-op substitution.
func cnOtherAlphabetChar(c byte) byte {
	for i := 0; i < len(cnBase58Alphabet); i++ {
		if cnBase58Alphabet[i] != c {
			return cnBase58Alphabet[i]
		}
	}
	return c
}
