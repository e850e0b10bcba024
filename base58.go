package ringcrypto

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
)

// Address codecs, per spec §6: `(prefix varint, P_spend [, P_view])`
// plus a 4-byte checksum. Grounded on the teacher's `account.go`
// (`base58.Encode`/`base58.Decode`, append-checksum-then-encode shape)
// with the checksum switched from the teacher's CRC32 to the SHA3-256
// truncated digest spec §6 calls for.

// EncodeAddress serializes (prefix, spend [, view]) with a varint
// prefix, appends a 4-byte SHA3-256 checksum, and Base58-encodes the
// result using the Bitcoin alphabet.
func EncodeAddress(prefix uint64, spend, view *Point) string {
	w := NewWriter()
	w.WriteVarint(prefix)
	w.WritePoint(spend)
	if view != nil {
		w.WritePoint(view)
	}
	payload := w.Bytes()
	checksum := addressChecksum(payload)
	return base58.Encode(append(payload, checksum...))
}

// DecodeAddress reverses EncodeAddress. ok is false if the checksum
// does not match; view is nil for a single-key address.
func DecodeAddress(address string) (ok bool, prefix uint64, spend, view *Point, err error) {
	data := base58.Decode(address)
	if len(data) < 4 {
		return false, 0, nil, nil, newErr(KindChecksumFailure, "base58 address too short")
	}
	payload, checksum := data[:len(data)-4], data[len(data)-4:]
	if !bytes.Equal(checksum, addressChecksum(payload)) {
		return false, 0, nil, nil, nil
	}

	r := NewReader(payload)
	prefix, err = r.ReadVarint()
	if err != nil {
		return false, 0, nil, nil, err
	}
	spend, err = r.ReadPoint()
	if err != nil {
		return false, 0, nil, nil, err
	}
	if r.Remaining() > 0 {
		view, err = r.ReadPoint()
		if err != nil {
			return false, 0, nil, nil, err
		}
	}
	return true, prefix, spend, view, nil
}

func addressChecksum(payload []byte) []byte {
	sum := SHA3_256Sum(payload)
	return sum[:4]
}
