package ringcrypto

import "github.com/dchest/blake2b"

// ConfirmationNumber derives a receiver-verifiable confirmation code
// from a transaction's shared secret, letting the sender prove
// delivery of a specific output without revealing their spend key.
// Grounded on the teacher's utils.go (`ConfirmationNumberFromSecret`),
// generalized onto this module's own domain-tag convention
// (`confirmationTag` in domains.go) rather than the teacher's
// transaction-specific constant.
func ConfirmationNumber(sharedSecret []byte) []byte {
	h := blake2b.New256()
	h.Write([]byte(confirmationTag))
	h.Write(sharedSecret)
	return h.Sum(nil)
}
