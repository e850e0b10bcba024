package ringcrypto

// BorromeanSignature is an OR-proof ring signature with a linkable key
// image, grounded on the teacher's MLSAG loop (mlsag.go's signRing)
// stripped down to the single (L,R) pair per ring member spec §4.5
// describes — CLSAG (clsag.go) is where the second, commitment-bound
// pair reappears.
type BorromeanSignature struct {
	C []*Scalar // one per ring member; c[i] for i != signer is random, c[signer] closes the ring
	R []*Scalar // responses, one per ring member
	I *Point    // key image
}

// borromeanPrepared carries the prover's in-progress state between
// prepare and complete.
type borromeanPrepared struct {
	ring  PointVector
	index int
	alpha *Scalar
	c     []*Scalar
	r     []*Scalar
}

// BorromeanPrepare begins signing ring (with duplicate keys rejected)
// for the member at index, drawing the random per-member challenges
// and the real signer's nonce.
func BorromeanPrepare(digest []byte, ring PointVector, index int) (*borromeanPrepared, *Point, error) {
	if ring.HasDuplicates() {
		return nil, nil, newErr(KindInvalidArgument, "borromean: duplicate public keys in ring")
	}
	if index < 0 || index >= len(ring) {
		return nil, nil, newErr(KindInvalidArgument, "borromean: index %d out of range for ring of %d", index, len(ring))
	}

	n := len(ring)
	c := make([]*Scalar, n)
	r := make([]*Scalar, n)
	for i := 0; i < n; i++ {
		if i == index {
			continue
		}
		c[i] = RandomScalar()
		r[i] = RandomScalar()
	}
	alpha := RandomScalar()

	return &borromeanPrepared{ring: ring, index: index, alpha: alpha, c: c, r: r}, nil, nil
}

// BorromeanGenerate is the all-in-one prove operation: given the
// signer's private key x at ring position index with key image
// I = x*Hp(P_index), it runs prepare and complete together.
func BorromeanGenerate(digest []byte, ring PointVector, index int, x *Scalar) (*BorromeanSignature, error) {
	prepared, _, err := BorromeanPrepare(digest, ring, index)
	if err != nil {
		return nil, err
	}

	P := ring[index]
	I := KeyImageCLSAG(x, P).Point

	n := len(ring)
	L := make(PointVector, n)
	R := make(PointVector, n)
	for i := 0; i < n; i++ {
		if i == prepared.index {
			L[i] = ScalarMulBase(prepared.alpha)
			R[i] = Hp(ring[i]).ScalarMul(prepared.alpha)
			continue
		}
		L[i] = DblMult(prepared.c[i], ring[i], prepared.r[i], BasePoint())
		R[i] = Hp(ring[i]).ScalarMul(prepared.r[i]).Add(I.ScalarMul(prepared.c[i]))
	}

	t := NewTranscript(borromeanDomainTag)
	t.Update(digest)
	for i := 0; i < n; i++ {
		t.UpdatePoint(L[i])
		t.UpdatePoint(R[i])
	}
	c := t.Challenge()

	sumOthers := ZeroScalar()
	for i := 0; i < n; i++ {
		if i == prepared.index {
			continue
		}
		sumOthers = sumOthers.Add(prepared.c[i])
	}
	cIndex := c.Sub(sumOthers)
	prepared.c[prepared.index] = cIndex
	prepared.r[prepared.index] = prepared.alpha.Sub(cIndex.Mul(x))

	return &BorromeanSignature{C: prepared.c, R: prepared.r, I: I}, nil
}

// BorromeanComplete produces a signature over prepared's ring and index
// given the signing scalar, mirroring the SchnorrPrepare/SchnorrComplete
// call shape. It runs BorromeanGenerate afresh: the challenges,
// responses and nonce drawn by BorromeanPrepare are not reused.
func BorromeanComplete(digest []byte, x *Scalar, prepared *borromeanPrepared) (*BorromeanSignature, error) {
	return BorromeanGenerate(digest, prepared.ring, prepared.index, x)
}

// Check verifies the signature against ring and digest: recomputes
// every (L_i, R_i) from the stored (c_i, r_i) and checks that the
// challenge closes (c - sum(c_i) == 0). Duplicate public keys are
// rejected, and the key image's subgroup membership is re-checked.
func (sig *BorromeanSignature) Check(digest []byte, ring PointVector) bool {
	n := len(ring)
	if len(sig.C) != n || len(sig.R) != n {
		return false
	}
	if ring.HasDuplicates() {
		return false
	}
	if !sig.I.CheckSubgroup() {
		return false
	}

	L := make(PointVector, n)
	R := make(PointVector, n)
	for i := 0; i < n; i++ {
		L[i] = DblMult(sig.C[i], ring[i], sig.R[i], BasePoint())
		R[i] = Hp(ring[i]).ScalarMul(sig.R[i]).Add(sig.I.ScalarMul(sig.C[i]))
	}

	t := NewTranscript(borromeanDomainTag)
	t.Update(digest)
	for i := 0; i < n; i++ {
		t.UpdatePoint(L[i])
		t.UpdatePoint(R[i])
	}
	c := t.Challenge()

	sumC := ZeroScalar()
	for _, ci := range sig.C {
		sumC = sumC.Add(ci)
	}
	return c.Sub(sumC).IsZero()
}

func (sig *BorromeanSignature) MarshalBinary() ([]byte, error) {
	w := NewWriter()
	w.WriteScalarVector(sig.C)
	w.WriteScalarVector(sig.R)
	w.WritePoint(sig.I)
	return w.Bytes(), nil
}

func (sig *BorromeanSignature) UnmarshalBinary(data []byte) error {
	r := NewReader(data)
	var err error
	if sig.C, err = r.ReadScalarVector(); err != nil {
		return err
	}
	if sig.R, err = r.ReadScalarVector(); err != nil {
		return err
	}
	if sig.I, err = r.ReadPoint(); err != nil {
		return err
	}
	return nil
}
