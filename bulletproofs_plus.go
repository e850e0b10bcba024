package ringcrypto

import (
	"encoding/binary"

	"github.com/gtank/merlin"
	"golang.org/x/crypto/sha3"
)

// Bulletproofs+, per spec §4.8: the same aggregated-range claim as
// bulletproofs.go, proved with a weighted inner-product argument (WIP)
// instead of the two-commitment (T1, T2) polynomial round. Folding a
// y-weight directly into the inner-product argument removes the
// S-blinding vector and the separate T1/T2 commitments bulletproofs.go
// needs, which is where BP+'s shorter proof size comes from. This file
// is new — nothing in the pack implements Bulletproofs+ — so it is
// grounded on bulletproofs.go's own generator/transcript machinery
// (same caches, same merlin transcript idiom) with the inner-product
// fold rewritten for the weighted variant; see DESIGN.md "Bulletproofs+"
// for the one deliberate simplification against the published protocol.

const bpPlusGeneratorDomain = "ringcrypto_bulletproof_plus_generators"

// bpPlusGCache/bpPlusHCache share bulletproofGenerators' mutex
// (bpGenMu, in bulletproofs.go) rather than a second lock, since both
// caches are populated by the same short, non-reentrant critical
// section and a dedicated Bulletproofs+ mutex would add nothing.
var (
	bpPlusGCache = map[int]PointVector{}
	bpPlusHCache = map[int]PointVector{}
)

func bulletproofPlusGenerators(total int) (PointVector, PointVector) {
	bpGenMu.Lock()
	defer bpGenMu.Unlock()
	g, gok := bpPlusGCache[total]
	h, hok := bpPlusHCache[total]
	if gok && hok {
		return g, h
	}
	g = make(PointVector, total)
	h = make(PointVector, total)
	for i := 0; i < total; i++ {
		g[i] = bpPlusGeneratorPoint('G', i)
		h[i] = bpPlusGeneratorPoint('H', i)
	}
	bpPlusGCache[total] = g
	bpPlusHCache[total] = h
	return g, h
}

func bpPlusGeneratorPoint(label byte, index int) *Point {
	shake := sha3.NewShake256()
	shake.Write([]byte(bpPlusGeneratorDomain))
	shake.Write([]byte{label})
	var idx4 [4]byte
	binary.LittleEndian.PutUint32(idx4[:], uint32(index))
	shake.Write(idx4[:])
	var buf [64]byte
	shake.Read(buf[:])
	return Reduce(buf)
}

// WeightedIPProof is the logarithmic-size argument produced by the
// weighted inner-product fold: each round halves the operand size and
// contributes one (L,R) pair, same proof shape as bulletproofs.go's
// InnerProductProof, but the fold weights every term by the round's
// running power of 1/y instead of applying a one-time HFactors vector,
// since BP+ folds the weight continuously rather than pre-baking it
// once into the starting generators.
type WeightedIPProof struct {
	L, R PointVector
	A, B *Scalar
}

// RangeProofPlus is the Bulletproofs+ aggregated range proof: one bit
// commitment (A), the weighted inner-product argument over the
// z-offset bit vectors, and the revealed opening of A's blinding
// factor — the same eBlinding-revealing pattern bulletproofs.go uses
// for its combined A/S blinding, simplified here to a single term
// since this construction has no S vector to combine it with.
type RangeProofPlus struct {
	A         *Point
	EBlinding *Scalar
	IPP       *WeightedIPProof
}

// ProveAggregatedRangePlus mirrors ProveAggregatedRange's contract
// (same validation, same bit-decomposition, same aggregation rules)
// but produces the shorter Bulletproofs+ proof shape.
func ProveAggregatedRangePlus(values []uint64, blindings ScalarVector, nBits int) (*RangeProofPlus, PointVector, error) {
	m := len(values)
	if len(blindings) != m {
		return nil, nil, newErr(KindInvalidArgument, "bulletproofs+: %d values but %d blindings", m, len(blindings))
	}
	if m == 0 || m&(m-1) != 0 {
		return nil, nil, newErr(KindInvalidArgument, "bulletproofs+: aggregation count %d must be a power of two", m)
	}
	switch nBits {
	case 8, 16, 32, 64:
	default:
		return nil, nil, newErr(KindInvalidArgument, "bulletproofs+: invalid bit size %d", nBits)
	}

	n := nBits
	total := n * m
	G, H := bulletproofPlusGenerators(total)

	V := make(PointVector, m)
	for j := 0; j < m; j++ {
		V[j] = commitScalar(NewScalarFromUint64(values[j]), blindings[j])
	}

	tr := newBPTranscript(bpPlusDomainTag)
	rangeproofDomainSep(int64(n), int64(m), tr)
	for j := 0; j < m; j++ {
		appendBPPoint("V", V[j], tr)
	}

	aL := make(ScalarVector, total)
	aR := make(ScalarVector, total)
	one := OneScalar()
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			bit := (values[j] >> uint(i)) & 1
			aL[j*n+i] = NewScalarFromUint64(bit)
			aR[j*n+i] = aL[j*n+i].Sub(one)
		}
	}

	alpha := RandomScalar()
	A := bpB().ScalarMul(alpha)
	for i := 0; i < total; i++ {
		A = A.Add(G[i].ScalarMul(aL[i])).Add(H[i].ScalarMul(aR[i]))
	}
	appendBPPoint("A", A, tr)

	y := bpChallengeScalar("y", tr)
	z := bpChallengeScalar("z", tr)
	zz := z.Squared()

	zPows := ScalarVector(z.PowExpand(m, false, true))
	yPows := ScalarVector(y.PowExpand(total, false, true))
	twoPows := ScalarVector(NewScalarFromUint64(2).PowExpand(n, false, true))

	// l = aL - z*1, r = y^i*(aR + z*1) + z^(j+2)*2^i, folded directly
	// into the weighted inner-product argument; there is no
	// Fiat-Shamir challenge x and no T1/T2 commitment in this
	// construction, since the z-offset vectors are already the final
	// operands the weighted fold consumes.
	l := make(ScalarVector, total)
	r := make(ScalarVector, total)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			idx := j*n + i
			l[idx] = aL[idx].Sub(z)
			r[idx] = yPows[idx].Mul(aR[idx].Add(z)).Add(zz.Mul(zPows[j]).Mul(twoPows[i]))
		}
	}

	ipp := createWeightedIPProof(tr, y, G, H, l, r)

	return &RangeProofPlus{A: A, EBlinding: alpha, IPP: ipp}, V, nil
}

// createWeightedIPProof folds (l, r) with G, H under a running weight
// of 1/y per round, accumulating each round's cross term into the
// shared bpB() generator instead of a separate per-round Q point,
// since there is exactly one such generator in this construction.
func createWeightedIPProof(t *merlin.Transcript, y *Scalar, gVec, hVec PointVector, aVec, bVec ScalarVector) *WeightedIPProof {
	n := len(gVec)
	a := append(ScalarVector{}, aVec...)
	b := append(ScalarVector{}, bVec...)
	G := append(PointVector{}, gVec...)
	H := append(PointVector{}, hVec...)
	yInv, _ := y.Invert()
	weight := OneScalar()

	var L, R PointVector
	for n > 1 {
		n /= 2
		aL, aR := a[:n], a[n:]
		bL, bR := b[:n], b[n:]
		gL, gR := G[:n], G[n:]
		hL, hR := H[:n], H[n:]

		cL, _ := aL.InnerProduct(bR)
		cR, _ := aR.InnerProduct(bL)

		Lg, _ := ScalarPointInnerProduct(aL, gR)
		Lh, _ := ScalarPointInnerProduct(bR, hL)
		Lpoint := Lg.Add(Lh).Add(bpB().ScalarMul(cL.Mul(weight)))
		L = append(L, Lpoint)

		Rg, _ := ScalarPointInnerProduct(aR, gL)
		Rh, _ := ScalarPointInnerProduct(bL, hR)
		Rpoint := Rg.Add(Rh).Add(bpB().ScalarMul(cR.Mul(weight)))
		R = append(R, Rpoint)

		appendBPPoint("L", Lpoint, t)
		appendBPPoint("R", Rpoint, t)
		u := bpChallengeScalar("u", t)
		uInv, _ := u.Invert()

		for i := 0; i < n; i++ {
			aL[i] = aL[i].Mul(u).Add(aR[i].Mul(uInv))
			bL[i] = bL[i].Mul(uInv).Add(bR[i].Mul(u))
			gL[i] = DblMult(uInv, gL[i], u, gR[i])
			hL[i] = DblMult(u, hL[i], uInv, hR[i])
		}

		a, b, G, H = aL, bL, gL, hL
		weight = weight.Mul(yInv)
	}

	return &WeightedIPProof{L: L, R: R, A: a[0], B: b[0]}
}

// Check verifies proof against the per-value commitments, replaying
// every challenge and generator fold the same way
// verifyInnerProductProof does for the plain Bulletproofs construction.
func (proof *RangeProofPlus) Check(commitments PointVector, nBits int) bool {
	m := len(commitments)
	if m == 0 || m&(m-1) != 0 {
		return false
	}
	switch nBits {
	case 8, 16, 32, 64:
	default:
		return false
	}
	n := nBits
	total := n * m
	if len(proof.IPP.L) == 0 || 1<<uint(len(proof.IPP.L)) != total {
		return false
	}

	G, H := bulletproofPlusGenerators(total)

	tr := newBPTranscript(bpPlusDomainTag)
	rangeproofDomainSep(int64(n), int64(m), tr)
	for j := 0; j < m; j++ {
		appendBPPoint("V", commitments[j], tr)
	}
	appendBPPoint("A", proof.A, tr)
	y := bpChallengeScalar("y", tr)
	z := bpChallengeScalar("z", tr)
	zz := z.Squared()

	zPows := ScalarVector(z.PowExpand(m, false, true))
	yPows := ScalarVector(y.PowExpand(total, false, true))
	twoPows := ScalarVector(NewScalarFromUint64(2).PowExpand(n, false, true))

	// P = A - eBlinding*B - z*sum(G) + sum_i (z*y^i + z^(j+2)*2^i)*H_i
	// + sum_j z^(j+2)*V_j, the same commitment-opening shape
	// bulletproofs.go's P uses, minus the x*S term since this
	// construction has no S vector.
	P := proof.A.Sub(bpB().ScalarMul(proof.EBlinding))
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			idx := j*n + i
			P = P.Sub(G[idx].ScalarMul(z))
			coeff := z.Mul(yPows[idx]).Add(zz.Mul(zPows[j]).Mul(twoPows[i]))
			P = P.Add(H[idx].ScalarMul(coeff))
		}
	}
	for j := 0; j < m; j++ {
		P = P.Add(commitments[j].ScalarMul(zz.Mul(zPows[j])))
	}

	return verifyWeightedIPProof(proof.IPP, tr, y, G, H, P)
}

func verifyWeightedIPProof(proof *WeightedIPProof, t *merlin.Transcript, y *Scalar, gVec, hVec PointVector, P *Point) bool {
	n := len(gVec)
	G := append(PointVector{}, gVec...)
	H := append(PointVector{}, hVec...)
	_, err := y.Invert()
	if err != nil {
		return false
	}
	Pacc := P

	if len(proof.L) != len(proof.R) {
		return false
	}

	round := 0
	for n > 1 {
		if round >= len(proof.L) {
			return false
		}
		n /= 2
		L, R := proof.L[round], proof.R[round]
		appendBPPoint("L", L, t)
		appendBPPoint("R", R, t)
		u := bpChallengeScalar("u", t)
		uInv, err := u.Invert()
		if err != nil {
			return false
		}

		gL, gR := G[:n], G[n:]
		hL, hR := H[:n], H[n:]
		newG := make(PointVector, n)
		newH := make(PointVector, n)
		for i := 0; i < n; i++ {
			newG[i] = DblMult(uInv, gL[i], u, gR[i])
			newH[i] = DblMult(u, hL[i], uInv, hR[i])
		}
		G, H = newG, newH

		Pacc = Pacc.Add(L.ScalarMul(u.Squared())).Add(R.ScalarMul(uInv.Squared()))
		round++
	}

	want := G[0].ScalarMul(proof.A).Add(H[0].ScalarMul(proof.B)).Add(bpB().ScalarMul(proof.A.Mul(proof.B)))
	return Pacc.Equal(want)
}

func (proof *RangeProofPlus) MarshalBinary() ([]byte, error) {
	w := NewWriter()
	w.WritePoint(proof.A)
	w.WriteScalar(proof.EBlinding)
	w.WritePointVector(proof.IPP.L)
	w.WritePointVector(proof.IPP.R)
	w.WriteScalar(proof.IPP.A)
	w.WriteScalar(proof.IPP.B)
	return w.Bytes(), nil
}

func (proof *RangeProofPlus) UnmarshalBinary(data []byte) error {
	r := NewReader(data)
	var err error
	if proof.A, err = r.ReadPoint(); err != nil {
		return err
	}
	if proof.EBlinding, err = r.ReadScalar(); err != nil {
		return err
	}
	ipp := &WeightedIPProof{}
	if ipp.L, err = r.ReadPointVector(); err != nil {
		return err
	}
	if ipp.R, err = r.ReadPointVector(); err != nil {
		return err
	}
	if ipp.A, err = r.ReadScalar(); err != nil {
		return err
	}
	if ipp.B, err = r.ReadScalar(); err != nil {
		return err
	}
	proof.IPP = ipp
	return nil
}
