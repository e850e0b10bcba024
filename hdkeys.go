package ringcrypto

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"strconv"
	"strings"
)

// HD key derivation, per spec §6: HMAC-SHA512(chain_code, 0x00 ‖
// parent_key ‖ index_be32) splits into a 32-byte child key and a
// 32-byte child chain code, walked down a BIP-32-style "m/i'/j'/..."
// path. Grounded on original_source/src/helpers/hd_keys.cpp, translated
// from CryptoPP's HMAC<SHA512> to stdlib crypto/hmac+crypto/sha512: no
// pack library exposes raw HMAC-SHA512 over arbitrary keys the way this
// derivation needs, and the pack's BIP-32 implementations (where
// present) are all secp256k1-keyed, not usable over this module's
// Ed25519 scalar/point keys — so this stays on the standard library by
// necessity rather than by default.

const hardenedBit = 0x80000000

// HDChildKey derives the child key and chain code at index from
// parentKey/chainCode, per spec §6's HMAC-SHA512(chain_code, 0x00 ‖
// parent_key ‖ index_be32) construction.
func HDChildKey(parentKey, chainCode [32]byte, index uint32) (childKey, childChainCode [32]byte) {
	var data [37]byte
	data[0] = 0x00
	copy(data[1:33], parentKey[:])
	binary.BigEndian.PutUint32(data[33:], index)

	mac := hmac.New(sha512.New, chainCode[:])
	mac.Write(data[:])
	sum := mac.Sum(nil)

	copy(childKey[:], sum[:32])
	copy(childChainCode[:], sum[32:64])
	return childKey, childChainCode
}

// DeriveHDPath walks path (e.g. "m/44'/128'/0'/0/0") from (key, chainCode),
// applying HDChildKey once per path segment.
func DeriveHDPath(key, chainCode [32]byte, path string) (childKey, childChainCode [32]byte, err error) {
	indices, err := parseHDPath(path)
	if err != nil {
		return [32]byte{}, [32]byte{}, err
	}

	current, currentChain := key, chainCode
	for _, index := range indices {
		current, currentChain = HDChildKey(current, currentChain, index)
	}
	return current, currentChain, nil
}

func parseHDPath(path string) ([]uint32, error) {
	if len(path) == 0 || path[0] != 'm' {
		return nil, newErr(KindInvalidArgument, "hd path must start with m")
	}
	if len(path) == 1 {
		return nil, nil
	}
	if path[1] != '/' {
		return nil, newErr(KindInvalidArgument, "malformed hd path %q", path)
	}

	segments := strings.Split(path[2:], "/")
	indices := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			return nil, newErr(KindInvalidArgument, "empty hd path segment in %q", path)
		}
		hardened := strings.HasSuffix(segment, "'")
		if hardened {
			segment = segment[:len(segment)-1]
		}
		n, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, newErr(KindInvalidArgument, "invalid hd path segment %q", segment)
		}
		index := uint32(n)
		if hardened {
			index += hardenedBit
		}
		indices = append(indices, index)
	}
	return indices, nil
}

// MakeHDPath builds a "m/purpose'/coinType'/..." path out of as many
// hardened components as are given, mirroring the original's family of
// make_bip32_path overloads collapsed into a single variadic helper.
func MakeHDPath(components ...uint32) string {
	if len(components) == 0 {
		return "m"
	}
	var b strings.Builder
	b.WriteString("m")
	for _, c := range components {
		b.WriteString("/")
		b.WriteString(strconv.FormatUint(uint64(c), 10))
		b.WriteString("'")
	}
	return b.String()
}
