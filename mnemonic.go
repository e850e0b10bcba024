package ringcrypto

import (
	"math/big"
	"strings"

	"github.com/cosmos/go-bip39"
)

// BIP-39 mnemonic codec, per spec §6: 16 or 32 bytes of entropy plus a
// SHA-256 checksum (4 bits for 128-bit entropy, 8 bits for 256-bit)
// split into 11-bit groups, each mapped to a word in the standard
// 2048-word English list. Grounded on
// original_source/src/encoding/mnemonics.cpp, whose encode/decode is
// itself the BIP-39 algorithm — this module wires the ecosystem's own
// BIP-39 implementation instead of re-deriving the bit manipulation by
// hand. Per spec §9's Open Question, this is the public codec; a
// second, hand-coded implementation of the same BIP-39 bit packing,
// with 4-codepoint prefix word matching, lives in legacy_mnemonic.go.

// EncodeMnemonic turns 16 or 32 bytes of entropy into its word phrase.
func EncodeMnemonic(entropy []byte) ([]string, error) {
	if len(entropy) != 16 && len(entropy) != 32 {
		return nil, newErr(KindInvalidArgument, "mnemonic entropy must be 16 or 32 bytes, got %d", len(entropy))
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, newErr(KindInvalidArgument, "mnemonic encode: %v", err)
	}
	return strings.Fields(phrase), nil
}

// DecodeMnemonic reverses EncodeMnemonic, validating the embedded
// checksum. words must be 12 or 24 entries.
func DecodeMnemonic(words []string) ([]byte, error) {
	if len(words) != 12 && len(words) != 24 {
		return nil, newErr(KindInvalidArgument, "mnemonic must contain 12 or 24 words, got %d", len(words))
	}
	phrase := strings.Join(words, " ")
	if !bip39.IsMnemonicValid(phrase) {
		return nil, newErr(KindChecksumFailure, "mnemonic checksum validation failed")
	}
	withChecksum, err := bip39.MnemonicToByteArray(phrase)
	if err != nil {
		return nil, newErr(KindChecksumFailure, "mnemonic decode: %v", err)
	}
	// MnemonicToByteArray (this library version) returns the entropy and
	// checksum bits still packed together (bitSize = 11*len(words) bits,
	// padded out to whole bytes); strip the trailing checksumSize bits to
	// recover just the entropy, matching the older EntropyFromMnemonic
	// contract this codec is written against.
	bitSize := len(words) * 11
	checksumSize := bitSize % 32
	entropyByteSize := (bitSize - checksumSize) / 8
	entropy := new(big.Int).Rsh(new(big.Int).SetBytes(withChecksum), uint(checksumSize)).Bytes()
	if len(entropy) != entropyByteSize {
		padded := make([]byte, entropyByteSize)
		copy(padded[entropyByteSize-len(entropy):], entropy)
		entropy = padded
	}
	return entropy, nil
}

// Entropy-timestamp bounds, per spec §6: a varint written into the
// leading bytes of the entropy encodes wallet creation time in seconds
// since epoch. 1640995200 is 2022-01-01T00:00:00Z (this codec's epoch
// floor); 10413792000 is year 2300, chosen as a generous ceiling.
const (
	entropyTimestampMin = 1640995200
	entropyTimestampMax = 10413792000
)

// EncodeEntropyTimestamp writes unixSeconds as a varint into the
// leading bytes of entropy, in place.
func EncodeEntropyTimestamp(entropy []byte, unixSeconds uint64) error {
	buf := varintBytes(unixSeconds)
	if len(buf) > len(entropy) {
		return newErr(KindInvalidArgument, "entropy too short to hold timestamp varint")
	}
	copy(entropy, buf)
	return nil
}

// DecodeEntropyTimestamp reads the leading varint out of entropy and
// returns 0 if it falls outside [entropyTimestampMin, entropyTimestampMax].
func DecodeEntropyTimestamp(entropy []byte) uint64 {
	v, n := readVarint(entropy)
	if n == 0 {
		return 0
	}
	if v < entropyTimestampMin || v > entropyTimestampMax {
		return 0
	}
	return v
}
