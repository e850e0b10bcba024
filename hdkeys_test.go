package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHDChildKeyDeterministic(t *testing.T) {
	var parent, chain [32]byte
	copy(parent[:], []byte("parent key material 0123456789"))
	copy(chain[:], []byte("chain code material 01234567890"))

	k1, c1 := HDChildKey(parent, chain, 0)
	k2, c2 := HDChildKey(parent, chain, 0)
	assert.Equal(t, k1, k2)
	assert.Equal(t, c1, c2)
}

func TestHDChildKeyDiffersByIndex(t *testing.T) {
	var parent, chain [32]byte
	copy(parent[:], []byte("parent key material 0123456789"))
	copy(chain[:], []byte("chain code material 01234567890"))

	k0, _ := HDChildKey(parent, chain, 0)
	k1, _ := HDChildKey(parent, chain, 1)
	assert.NotEqual(t, k0, k1)
}

func TestDeriveHDPathWalksSegments(t *testing.T) {
	var key, chain [32]byte
	copy(key[:], []byte("root key material 012345678901"))
	copy(chain[:], []byte("root chain material 01234567890"))

	got, gotChain, err := DeriveHDPath(key, chain, "m/44'/128'/0'/0/0")
	assert.NoError(t, err)

	step1k, step1c := HDChildKey(key, chain, 44+hardenedBit)
	step2k, step2c := HDChildKey(step1k, step1c, 128+hardenedBit)
	step3k, step3c := HDChildKey(step2k, step2c, 0+hardenedBit)
	step4k, step4c := HDChildKey(step3k, step3c, 0)
	step5k, step5c := HDChildKey(step4k, step4c, 0)

	assert.Equal(t, step5k, got)
	assert.Equal(t, step5c, gotChain)
}

func TestDeriveHDPathRootOnly(t *testing.T) {
	var key, chain [32]byte
	copy(key[:], []byte("root key material 012345678901"))
	copy(chain[:], []byte("root chain material 01234567890"))

	got, gotChain, err := DeriveHDPath(key, chain, "m")
	assert.NoError(t, err)
	assert.Equal(t, key, got)
	assert.Equal(t, chain, gotChain)
}

func TestDeriveHDPathRejectsMalformedPath(t *testing.T) {
	var key, chain [32]byte
	_, _, err := DeriveHDPath(key, chain, "44'/128'")
	assert.Error(t, err)

	_, _, err = DeriveHDPath(key, chain, "m/abc")
	assert.Error(t, err)

	_, _, err = DeriveHDPath(key, chain, "m//0")
	assert.Error(t, err)
}

func TestMakeHDPath(t *testing.T) {
	assert.Equal(t, "m", MakeHDPath())
	assert.Equal(t, "m/44'/128'/0'", MakeHDPath(44, 128, 0))
}
