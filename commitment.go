package ringcrypto

import "golang.org/x/crypto/sha3"

var cachedInv8 *Scalar

// inv8 is the field inverse of 8, cached since every commitment in the
// module divides by it.
func inv8() *Scalar {
	if cachedInv8 == nil {
		s, err := NewScalarFromUint64(8).Invert()
		if err != nil {
			// 8 is never zero; Invert only fails on a zero scalar.
			panic("unreachable: 8 has no inverse")
		}
		cachedInv8 = s
	}
	return cachedInv8
}

// commitScalar is the Pedersen commitment formula C = (1/8)*(v*H + r*G)
// parameterized over a scalar value, shared by NewCommitment (uint64
// amounts) and the Bulletproofs/Bulletproofs+ range proofs (which
// commit to polynomial coefficients, not raw amounts, but must use the
// exact same generators so a range proof verifies against the same
// commitments CLSAG/Triptych/the RingCT parity check produce).
func commitScalar(value, blinding *Scalar) *Point {
	return domainH().ScalarMul(value).Add(BasePoint().ScalarMul(blinding)).ScalarMul(inv8())
}

// NewCommitment builds a Pedersen commitment C = (1/8)*(v*H + r*G). The
// cofactor division is part of the commitment itself (spec §3) so that
// re-multiplying by 8 at verification lands back in the subgroup.
func NewCommitment(value uint64, blinding *Scalar) *Point {
	return commitScalar(NewScalarFromUint64(value), blinding)
}

// CheckCommitmentsParity decides whether the RingCT balance equation
// holds: sum(pseudoOutputs) == sum(outputs) + fee*H, without revealing
// any individual amount. Commitments carry the 1/8 factor, so the
// comparison is 8*sum(pseudoOutputs) == 8*sum(outputs) + fee*H.
func CheckCommitmentsParity(pseudoOutputs, outputs PointVector, fee uint64) bool {
	lhs := pseudoOutputs.Sum().Mul8()
	rhs := outputs.Sum().Mul8().Add(domainH().ScalarMul(NewScalarFromUint64(fee)))
	return lhs.Equal(rhs)
}

// amountMaskDomainTag domain-separates the amount-mask keystream from
// every other SHA3-256 use, mirroring the teacher's
// AMOUNT_VALUE_DOMAIN_TAG / AMOUNT_BLINDING_DOMAIN_TAG pattern
// (transaction_builder.go, payment.go) but collapsed to a single XOR
// mask per spec §8's "amount mask XOR is an involution" property.
const amountMaskDomainTag = "ringcrypto_amount_mask"

// AmountMask derives the 8-byte keystream XORed with a cleartext amount
// to produce its masked form, from the shared secret point. XOR with
// the same mask twice recovers the original value (an involution), the
// property spec §8 tests.
func AmountMask(sharedSecret *Point) uint64 {
	h := sha3.New256()
	h.Write([]byte(amountMaskDomainTag))
	h.Write(sharedSecret.Bytes())
	sum := h.Sum(nil)
	var mask uint64
	for i := 0; i < 8; i++ {
		mask |= uint64(sum[i]) << (8 * i)
	}
	return mask
}

// MaskAmount and UnmaskAmount both XOR with AmountMask; they are the
// same operation under two names because XOR is its own inverse.
func MaskAmount(value uint64, sharedSecret *Point) uint64   { return value ^ AmountMask(sharedSecret) }
func UnmaskAmount(masked uint64, sharedSecret *Point) uint64 { return masked ^ AmountMask(sharedSecret) }

// blindingDomainTag separates blinding-factor derivation from the
// amount mask, per the teacher's split AMOUNT_BLINDING_DOMAIN_TAG.
const blindingDomainTag = "ringcrypto_amount_blinding"

// DeriveBlinding derives an output's blinding factor deterministically
// from a shared secret, following the teacher's GetBlinding pattern
// (payment.go) of hashing the shared secret into a scalar rather than
// transmitting the blinding factor out of band.
func DeriveBlinding(sharedSecret *Point) *Scalar {
	h := sha3.New256()
	h.Write([]byte(blindingDomainTag))
	h.Write(sharedSecret.Bytes())
	return NewScalarFromWideBytes(padTo64(h.Sum(nil)))
}

// KeyImage is the one-way linkable tag bound to a spent output.
type KeyImage struct {
	Point *Point
}

// KeyImageCLSAG computes I = x*Hp(P), the variant used by CLSAG and
// Borromean ring signatures.
func KeyImageCLSAG(privateKey *Scalar, publicKey *Point) *KeyImage {
	return &KeyImage{Point: Hp(publicKey).ScalarMul(privateKey)}
}

// KeyImageTriptych computes I = (1/x)*U, the variant Triptych uses.
func KeyImageTriptych(privateKey *Scalar) (*KeyImage, error) {
	inv, err := privateKey.Invert()
	if err != nil {
		return nil, err
	}
	return &KeyImage{Point: domainU().ScalarMul(inv)}, nil
}

// CheckSubgroup is mandatory at verification time per spec §3.
func (ki *KeyImage) CheckSubgroup() bool {
	return ki.Point.CheckSubgroup()
}

func (ki *KeyImage) Equal(o *KeyImage) bool {
	return ki.Point.Equal(o.Point)
}
