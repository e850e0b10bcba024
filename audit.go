package ringcrypto

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
)

// AuditProof bundles a set of one-of-one CLSAG ownership proofs, per
// spec §4.9: given secret ephemerals {x_i}, prove knowledge of each
// x_i behind P_i = x_i*G and I_i = x_i*Hp(P_i) without revealing x_i.
//
// Grounded on clsag.go's CLSAGSign/Check: a CLSAG ring of size 1 closes
// its rotation loop on the very first step, so feeding it a one-member
// ring collapses the general ring signature to a plain proof of
// ownership of a single key. The commitment machinery is neutralized
// by using the identity point as both the sole commitment and the
// pseudo-output, and a zero blinding factor on both sides, so the
// commitment-image term D is always the identity and contributes
// nothing to the proof.
type AuditProof struct {
	I    PointVector
	Sigs []*CLSAGSignature
}

// auditCommitment and auditBlinding are the neutral commitment/blinding
// pair shared by every one-of-one CLSAG in an audit bundle: with
// commitments[0] == pseudoOut and inputBlinding == pseudoOutBlinding,
// z = inputBlinding - pseudoOutBlinding is always zero, so the
// commitment image D = Hp(P)*0 never binds to anything.
func auditCommitment() *Point { return IdentityPoint() }
func auditBlinding() *Scalar  { return ZeroScalar() }

// ProveOwnership builds an AuditProof over keys, one CLSAG per secret
// ephemeral in xs. The bundle is built against a single rolling
// transcript seeded with outputProofDomainTag and updated with each
// (P_i, I_i) pair before that index's digest is derived, so the proofs
// are bound together in order: reordering or substituting any entry
// invalidates every signature from that point on.
func ProveOwnership(xs []*Scalar) (*AuditProof, error) {
	if len(xs) == 0 {
		return nil, newErr(KindInvalidArgument, "audit: no ephemerals given")
	}

	t := NewTranscript(outputProofDomainTag)
	proof := &AuditProof{
		I:    make(PointVector, len(xs)),
		Sigs: make([]*CLSAGSignature, len(xs)),
	}

	commitment := PointVector{auditCommitment()}
	blinding := auditBlinding()

	for i, x := range xs {
		if err := x.NonZeroOrErr(); err != nil {
			return nil, newErr(KindInvalidArgument, "audit: ephemeral %d is zero", i)
		}
		P := ScalarMulBase(x)
		I := KeyImageCLSAG(x, P).Point

		t.UpdatePoint(P)
		t.UpdatePoint(I)
		digest := t.Challenge().Bytes()

		ring := PointVector{P}
		sig, err := CLSAGSign(digest, ring, commitment, 0, x, blinding, blinding, auditCommitment())
		if err != nil {
			return nil, wrapErr(KindInvalidArgument, err, "audit: signing ephemeral %d", i)
		}

		proof.I[i] = I
		proof.Sigs[i] = sig
	}

	return proof, nil
}

// CheckOwnership recovers each P_i from the bundle's own key images is
// not possible (P_i is not stored independently of the ring the
// signature was made over), so instead the caller supplies the public
// keys the bundle claims ownership of; CheckOwnership walks the same
// transcript the prover used and checks each CLSAG individually.
// Any single failing signature fails the whole bundle.
func CheckOwnership(proof *AuditProof, keys PointVector) bool {
	if len(keys) != len(proof.I) || len(keys) != len(proof.Sigs) {
		return false
	}

	t := NewTranscript(outputProofDomainTag)
	commitment := PointVector{auditCommitment()}

	for i, P := range keys {
		I := proof.I[i]
		if !I.CheckSubgroup() {
			return false
		}

		t.UpdatePoint(P)
		t.UpdatePoint(I)
		digest := t.Challenge().Bytes()

		ring := PointVector{P}
		if !proof.Sigs[i].Check(digest, ring, commitment, auditCommitment()) {
			return false
		}
		if !proof.Sigs[i].I.Equal(I) {
			return false
		}
	}

	return true
}

func (proof *AuditProof) MarshalBinary() ([]byte, error) {
	w := NewWriter()
	w.WritePointVector(proof.I)
	w.WriteVarint(uint64(len(proof.Sigs)))
	for _, sig := range proof.Sigs {
		b, err := sig.MarshalBinary()
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	return w.Bytes(), nil
}

func (proof *AuditProof) UnmarshalBinary(data []byte) error {
	r := NewReader(data)
	var err error
	if proof.I, err = r.ReadPointVector(); err != nil {
		return err
	}
	n, err := r.ReadVarint()
	if err != nil {
		return err
	}
	proof.Sigs = make([]*CLSAGSignature, n)
	for i := range proof.Sigs {
		b, err := r.ReadBytes()
		if err != nil {
			return err
		}
		sig := &CLSAGSignature{}
		if err := sig.UnmarshalBinary(b); err != nil {
			return err
		}
		proof.Sigs[i] = sig
	}
	return nil
}

// EncodeAuditProof serializes and Base58-checks an AuditProof the same
// way EncodeAddress does for addresses, per spec §6's "serialized
// length-prefixed and Base58-check encoded" contract.
func EncodeAuditProof(proof *AuditProof) (string, error) {
	payload, err := proof.MarshalBinary()
	if err != nil {
		return "", err
	}
	checksum := addressChecksum(payload)
	return base58.Encode(append(payload, checksum...)), nil
}

// DecodeAuditProof reverses EncodeAuditProof.
func DecodeAuditProof(s string) (*AuditProof, error) {
	data := base58.Decode(s)
	if len(data) < 4 {
		return nil, newErr(KindChecksumFailure, "audit proof too short")
	}
	payload, checksum := data[:len(data)-4], data[len(data)-4:]
	if !bytes.Equal(checksum, addressChecksum(payload)) {
		return nil, newErr(KindChecksumFailure, "audit proof checksum mismatch")
	}
	proof := &AuditProof{}
	if err := proof.UnmarshalBinary(payload); err != nil {
		return nil, err
	}
	return proof, nil
}
