package ringcrypto

// Schnorr implements the single-signer signature with a prepare/complete
// split so a hardware signer can hold the secret scalar while a
// coordinator assembles the transcript, per spec §4.4.
type Schnorr struct {
	L *Scalar
	R *Scalar
}

// SchnorrPrepared is the intermediate value prepare() hands to the
// eventual signer: the challenge L and the nonce alpha, carried by
// value so interleaving prepare/complete calls across goroutines is
// safe (spec §5 "Ordering").
type SchnorrPrepared struct {
	L     *Scalar
	Alpha *Scalar
	R     *Point
}

// SchnorrPrepare draws a fresh alpha via a transcript seeded with
// (digest, P, fresh randomness), computes R = alpha*G, and derives the
// challenge L = H(SIG_DOMAIN ‖ digest ‖ P ‖ R) mod l.
func SchnorrPrepare(digest []byte, P *Point) (*SchnorrPrepared, error) {
	fresh, err := secureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	t := NewTranscript(sigDomainTag)
	t.Update(digest)
	t.UpdatePoint(P)
	t.Update(fresh)
	alpha := t.Challenge()
	if alpha.IsZero() {
		return nil, newErr(KindInvalidArgument, "schnorr prepare: zero nonce")
	}
	R := ScalarMulBase(alpha)

	lt := NewTranscript(sigDomainTag)
	lt.Update(digest)
	lt.UpdatePoint(P)
	lt.UpdatePoint(R)
	L := lt.Challenge()

	return &SchnorrPrepared{L: L, Alpha: alpha, R: R}, nil
}

// SchnorrComplete finishes the signature given the signing scalar:
// r = alpha - L*s.
func SchnorrComplete(s *Scalar, prepared *SchnorrPrepared) *Schnorr {
	r := prepared.Alpha.Sub(prepared.L.Mul(s))
	return &Schnorr{L: prepared.L, R: r}
}

// SchnorrSign is the all-in-one convenience wrapper around
// prepare/complete for the common single-process case.
func SchnorrSign(digest []byte, s *Scalar) (*Schnorr, error) {
	P := ScalarMulBase(s)
	prepared, err := SchnorrPrepare(digest, P)
	if err != nil {
		return nil, err
	}
	return SchnorrComplete(s, prepared), nil
}

// Verify recomputes R' = L*P + r*G and confirms
// H(SIG_DOMAIN ‖ digest ‖ P ‖ R') - L == 0.
func (sig *Schnorr) Verify(digest []byte, P *Point) bool {
	if !P.CheckSubgroup() {
		return false
	}
	Rprime := DblMult(sig.L, P, sig.R, BasePoint())
	t := NewTranscript(sigDomainTag)
	t.Update(digest)
	t.UpdatePoint(P)
	t.UpdatePoint(Rprime)
	recomputed := t.Challenge()
	return recomputed.Sub(sig.L).IsZero()
}

func (sig *Schnorr) MarshalBinary() ([]byte, error) {
	w := NewWriter()
	w.WriteScalar(sig.L)
	w.WriteScalar(sig.R)
	return w.Bytes(), nil
}

func (sig *Schnorr) UnmarshalBinary(data []byte) error {
	r := NewReader(data)
	var err error
	if sig.L, err = r.ReadScalar(); err != nil {
		return err
	}
	if sig.R, err = r.ReadScalar(); err != nil {
		return err
	}
	return nil
}
