package ringcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
)

// AES-CBC envelope with PBKDF2-HMAC-SHA3-512 key stretching, per spec
// §6: `salt16 ‖ AES-CBC(PBKDF2-HMAC-SHA3-512(password, salt16,
// iterations), salt16 as IV, plaintext)`, hex-encoded. Grounded on
// original_source/src/crypto_common.cpp's `AES::encrypt`/`AES::decrypt`
// (CryptoPP's `PKCS5_PBKDF2_HMAC<SHA3_512>` deriving a 16-byte key,
// `CBC_Mode<AES>` using the salt itself as the IV, PKCS7 padding via
// `StreamTransformationFilter`). AES-CBC itself stays on the standard
// library (`crypto/aes`+`crypto/cipher`): no third-party library in the
// pack implements raw AES-CBC, so stdlib is the only idiomatic choice
// for a primitive this standard. PBKDF2 is wired to
// `golang.org/x/crypto/pbkdf2`, the ecosystem implementation spec §2's
// dependency table calls for.

const aesKeySize = 16
const aesSaltSize = 16

// EncryptAES encrypts plaintext under password, returning the
// hex-encoded `salt ‖ ciphertext` envelope.
func EncryptAES(plaintext []byte, password string, iterations int) (string, error) {
	salt, err := secureRandomBytes(aesSaltSize)
	if err != nil {
		return "", wrapErr(KindInvalidArgument, err, "aes encrypt: generating salt")
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, aesKeySize, sha3.New512)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", wrapErr(KindInvalidArgument, err, "aes encrypt: building cipher")
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cbc := cipher.NewCBCEncrypter(block, salt)
	cbc.CryptBlocks(ciphertext, padded)

	envelope := append(append([]byte{}, salt...), ciphertext...)
	return hex.EncodeToString(envelope), nil
}

// DecryptAES reverses EncryptAES. A wrong password surfaces as a
// KindWrongPassword error (detected via an invalid PKCS7 pad, the
// closest CBC-mode equivalent to a MAC failure since this envelope
// carries no separate authentication tag).
func DecryptAES(hexInput string, password string, iterations int) ([]byte, error) {
	envelope, err := hex.DecodeString(hexInput)
	if err != nil {
		return nil, newErr(KindInvalidArgument, "aes decrypt: input is not valid hex")
	}
	if len(envelope) < aesSaltSize {
		return nil, newErr(KindInvalidArgument, "aes decrypt: ciphertext shorter than salt")
	}

	salt, ciphertext := envelope[:aesSaltSize], envelope[aesSaltSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, newErr(KindWrongPassword, "aes decrypt: ciphertext is not block-aligned")
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, aesKeySize, sha3.New512)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wrapErr(KindInvalidArgument, err, "aes decrypt: building cipher")
	}

	plaintext := make([]byte, len(ciphertext))
	cbc := cipher.NewCBCDecrypter(block, salt)
	cbc.CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, block.BlockSize())
	if err != nil {
		return nil, newErr(KindWrongPassword, "wrong password supplied for decryption")
	}
	return unpadded, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, newErr(KindWrongPassword, "pkcs7 unpad: misaligned input")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, newErr(KindWrongPassword, "pkcs7 unpad: invalid padding length")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, newErr(KindWrongPassword, "pkcs7 unpad: invalid padding bytes")
		}
	}
	return data[:len(data)-padLen], nil
}
