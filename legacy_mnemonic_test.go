package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyMnemonicRoundTrip128Bit(t *testing.T) {
	entropy, err := secureRandomBytes(16)
	assert.NoError(t, err)

	m, err := EncodeLegacyMnemonic(entropy)
	assert.NoError(t, err)
	assert.Len(t, m.Words, 12)

	decoded, err := DecodeLegacyMnemonic(m.Words)
	assert.NoError(t, err)
	assert.Equal(t, entropy, decoded)
}

func TestLegacyMnemonicRoundTrip256Bit(t *testing.T) {
	entropy, err := secureRandomBytes(32)
	assert.NoError(t, err)

	m, err := EncodeLegacyMnemonic(entropy)
	assert.NoError(t, err)
	assert.Len(t, m.Words, 24)

	decoded, err := DecodeLegacyMnemonic(m.Words)
	assert.NoError(t, err)
	assert.Equal(t, entropy, decoded)
}

func TestLegacyMnemonicAbbreviatedPrefixMatch(t *testing.T) {
	entropy, err := secureRandomBytes(16)
	assert.NoError(t, err)

	m, err := EncodeLegacyMnemonic(entropy)
	assert.NoError(t, err)

	abbreviated := make([]string, len(m.Words))
	for i, w := range m.Words {
		abbreviated[i] = legacyTrimWord(w)
	}

	decoded, err := DecodeLegacyMnemonic(abbreviated)
	assert.NoError(t, err)
	assert.Equal(t, entropy, decoded)
}

func TestLegacyMnemonicRejectsBadWordCount(t *testing.T) {
	_, err := DecodeLegacyMnemonic([]string{"abandon"})
	assert.Error(t, err)
}

func TestLegacyMnemonicRejectsUnknownWord(t *testing.T) {
	entropy, err := secureRandomBytes(16)
	assert.NoError(t, err)

	m, err := EncodeLegacyMnemonic(entropy)
	assert.NoError(t, err)

	corrupted := append([]string{}, m.Words...)
	corrupted[0] = "zzznotaword"

	_, err = DecodeLegacyMnemonic(corrupted)
	assert.Error(t, err)
}

func TestLegacyMnemonicString(t *testing.T) {
	m := &LegacyMnemonic{Words: []string{"one", "two", "three"}}
	assert.Equal(t, "one two three", m.String())
}
