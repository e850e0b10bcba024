package ringcrypto

import (
	"math/bits"
	"sync"
)

// TriptychSignature is a logarithmic-size one-out-of-many proof, per
// spec §4.7. Grounded on the teacher's MLSAG ring-walk linkage model
// (same key-image-based double-spend tag as borromean.go/clsag.go) but
// the proof itself follows the Groth-Kohlweiss/Sarang-Noether Triptych
// construction: a base-2 Gray-coded bit decomposition of the signer's
// index, rather than a flat per-member challenge chain. Ring size must
// be a power of two of at least 4 (m = log2(n) >= 2).
type TriptychSignature struct {
	KeyImage        *Point
	CommitmentImage *Point
	A, B, C, D      *Point
	X, Y            PointVector
	F               ScalarVector // f[j], j = 0..m-1 (the single free column of an n=2 digit row)
	ZA, ZC, Z       *Scalar
}

var (
	triptychGenMu    sync.Mutex
	triptychGenCache = map[[2]int]*Point{}
)

// triptychGenerator derives the (i,j)-indexed commitment-tensor
// generator, cached like the teacher's generators.go caches its
// Bulletproofs generator chain, since the same indices are reused
// across every proof with the same ring depth.
func triptychGenerator(i, j int) *Point {
	triptychGenMu.Lock()
	defer triptychGenMu.Unlock()
	key := [2]int{i, j}
	if p, ok := triptychGenCache[key]; ok {
		return p
	}
	idx := i*256 + j
	p := deriveDomainPoint(1000 + idx)
	triptychGenCache[key] = p
	return p
}

// triptychCommitmentTensor implements the spec's commitment_tensor
// helper: sum_{i,j} v[i][j] * generator(i,j) + r*H.
func triptychCommitmentTensor(v []ScalarVector, r *Scalar) *Point {
	c := IdentityPoint()
	for i, row := range v {
		for j, s := range row {
			c = c.Add(triptychGenerator(i, j).ScalarMul(s))
		}
	}
	return c.Add(domainH().ScalarMul(r))
}

func base2Exponent(n int) (int, bool) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros(uint(n)), true
}

// base2Digits returns the little-endian (LSB-first) bit decomposition
// of index into m digits.
func base2Digits(index, m int) []int {
	out := make([]int, m)
	for j := 0; j < m; j++ {
		out[j] = (index >> uint(j)) & 1
	}
	return out
}

func kroneckerDelta(a, b int) *Scalar {
	if a == b {
		return OneScalar()
	}
	return ZeroScalar()
}

// convolveDigit multiplies polynomial p (coefficients low-to-high) by
// the degree-1 polynomial (q0 + q1*x), per the teacher's recursive
// digit-by-digit convolution building each ring index's per-step
// coefficient vector.
func convolveDigit(p ScalarVector, q0, q1 *Scalar) ScalarVector {
	out := make(ScalarVector, len(p)+1)
	for i := range out {
		out[i] = ZeroScalar()
		if i < len(p) {
			out[i] = out[i].Add(p[i].Mul(q0))
		}
		if i-1 >= 0 && i-1 < len(p) {
			out[i] = out[i].Add(p[i-1].Mul(q1))
		}
	}
	return out
}

// grayFlip returns the digit that flips going from the Gray code of
// k-1 to the Gray code of k, and its new value. Standard result: that
// digit is the number of trailing zero bits of k.
func grayFlip(k int) (digit, newBit int) {
	digit = bits.TrailingZeros(uint(k))
	gray := k ^ (k >> 1)
	newBit = (gray >> uint(digit)) & 1
	return digit, newBit
}

// TriptychSign proves that pseudoOut commits to the same amount as
// commitments[index], without revealing index, using the one-time key
// at ring[index]. x is the one-time private key, inputBlinding is that
// output's real blinding factor, pseudoOutBlinding/pseudoOut are the
// pseudo-output's blinding factor and commitment.
func TriptychSign(digest []byte, ring PointVector, commitments PointVector, index int, x, inputBlinding, pseudoOutBlinding *Scalar, pseudoOut *Point) (*TriptychSignature, error) {
	n := len(ring)
	if n != len(commitments) {
		return nil, newErr(KindInvalidArgument, "triptych: ring length %d != commitment ring length %d", n, len(commitments))
	}
	m, ok := base2Exponent(n)
	if !ok || m < 2 {
		return nil, newErr(KindInvalidArgument, "triptych: ring size %d must be a power of two >= 4", n)
	}
	if ring.HasDuplicates() {
		return nil, newErr(KindInvalidArgument, "triptych: duplicate public keys in ring")
	}
	if index < 0 || index >= n {
		return nil, newErr(KindInvalidArgument, "triptych: index %d out of range for ring of %d", index, n)
	}

	P := ring[index]
	if !ScalarMulBase(x).Equal(P) {
		return nil, newErr(KindInvalidArgument, "triptych: private key does not match ring position")
	}
	delta := inputBlinding.Sub(pseudoOutBlinding)
	if !ScalarMulBase(delta).Equal(commitments[index].Sub(pseudoOut).Mul8()) {
		return nil, newErr(KindInvalidArgument, "triptych: blinding factors do not match the claimed commitment")
	}

	keyImage, err := KeyImageTriptych(x)
	if err != nil {
		return nil, err
	}
	commitmentImage := keyImage.Point.ScalarMul(delta)

	decompL := base2Digits(index, m)

	rA, rB, rC, rD := RandomScalar(), RandomScalar(), RandomScalar(), RandomScalar()

	a := make([]ScalarVector, m)
	sigma := make([]ScalarVector, m)
	aSigma := make([]ScalarVector, m)
	aSq := make([]ScalarVector, m)
	for j := 0; j < m; j++ {
		a1 := RandomScalar()
		a0 := a1.Neg()
		a[j] = ScalarVector{a0, a1}

		s0 := kroneckerDelta(decompL[j], 0)
		s1 := kroneckerDelta(decompL[j], 1)
		sigma[j] = ScalarVector{s0, s1}

		one := OneScalar()
		two := NewScalarFromUint64(2)
		aSigma[j] = ScalarVector{
			a[j][0].Mul(one.Sub(two.Mul(s0))),
			a[j][1].Mul(one.Sub(two.Mul(s1))),
		}
		aSq[j] = ScalarVector{a[j][0].Squared().Neg(), a[j][1].Squared().Neg()}
	}

	A := triptychCommitmentTensor(a, rA)
	B := triptychCommitmentTensor(sigma, rB)
	C := triptychCommitmentTensor(aSigma, rC)
	D := triptychCommitmentTensor(aSq, rD)

	p := make([]ScalarVector, n)
	for k := 0; k < n; k++ {
		decompK := base2Digits(k, m)
		cur := ScalarVector{a[0][decompK[0]], kroneckerDelta(decompL[0], decompK[0])}
		for j := 1; j < m; j++ {
			cur = convolveDigit(cur, a[j][decompK[j]], kroneckerDelta(decompL[j], decompK[j]))
		}
		p[k] = cur
	}

	t := NewTranscript(triptychDomain0Tag)
	t.Update(digest)
	t.UpdatePoints(ring)
	t.UpdatePoints(commitments)
	t.UpdatePoint(pseudoOut)
	t.UpdatePoint(keyImage.Point)
	t.UpdatePoint(commitmentImage)
	t.UpdatePoint(A)
	t.UpdatePoint(B)
	t.UpdatePoint(C)
	t.UpdatePoint(D)
	mu, err := t.ChallengeNonZero()
	if err != nil {
		return nil, err
	}

	rho := make(ScalarVector, m)
	for j := range rho {
		rho[j] = RandomScalar()
	}

	X := make(PointVector, m)
	Y := make(PointVector, m)
	for j := 0; j < m; j++ {
		Xj := IdentityPoint()
		Yj := IdentityPoint()
		for i := 0; i < n; i++ {
			coeff := p[i][j]
			diff := commitments[i].Sub(pseudoOut).Mul8()
			base := ring[i].Add(diff.ScalarMul(mu))
			Xj = Xj.Add(base.ScalarMul(coeff))
			Yj = Yj.Add(domainU().ScalarMul(coeff))
		}
		Xj = Xj.Add(ScalarMulBase(rho[j]))
		Yj = Yj.Add(keyImage.Point.ScalarMul(rho[j]))
		X[j] = Xj
		Y[j] = Yj
	}

	t.UpdatePoints(X)
	t.UpdatePoints(Y)
	x1, err := t.ChallengeNonZero()
	if err != nil {
		return nil, err
	}

	F := make(ScalarVector, m)
	for j := 0; j < m; j++ {
		F[j] = sigma[j][1].Mul(x1).Add(a[j][1])
	}

	zA := rB.Mul(x1).Add(rA)
	zC := rC.Mul(x1).Add(rD)

	xPows := x1.PowExpand(m+1, false, true) // x^0 .. x^m
	z := mu.Mul(delta).Mul(xPows[m])
	for j := 0; j < m; j++ {
		z = z.Sub(rho[j].Mul(xPows[j]))
	}

	return &TriptychSignature{
		KeyImage: keyImage.Point, CommitmentImage: commitmentImage,
		A: A, B: B, C: C, D: D,
		X: X, Y: Y, F: F,
		ZA: zA, ZC: zC, Z: z,
	}, nil
}

// Check verifies sig against ring, commitments and pseudoOut.
func (sig *TriptychSignature) Check(digest []byte, ring PointVector, commitments PointVector, pseudoOut *Point) bool {
	n := len(ring)
	m, ok := base2Exponent(n)
	if !ok || m < 2 {
		return false
	}
	if n != len(commitments) {
		return false
	}
	if ring.HasDuplicates() {
		return false
	}
	if len(sig.F) != m || len(sig.X) != m || len(sig.Y) != m {
		return false
	}
	if !sig.KeyImage.CheckSubgroup() || !sig.CommitmentImage.CheckSubgroup() {
		return false
	}

	t := NewTranscript(triptychDomain0Tag)
	t.Update(digest)
	t.UpdatePoints(ring)
	t.UpdatePoints(commitments)
	t.UpdatePoint(pseudoOut)
	t.UpdatePoint(sig.KeyImage)
	t.UpdatePoint(sig.CommitmentImage)
	t.UpdatePoint(sig.A)
	t.UpdatePoint(sig.B)
	t.UpdatePoint(sig.C)
	t.UpdatePoint(sig.D)
	mu := t.Challenge()
	if mu.IsZero() {
		return false
	}

	t.UpdatePoints(sig.X)
	t.UpdatePoints(sig.Y)
	x1 := t.Challenge()
	if x1.IsZero() {
		return false
	}

	f := make([]ScalarVector, m)
	for j := 0; j < m; j++ {
		f1 := sig.F[j]
		f0 := x1.Sub(f1)
		f[j] = ScalarVector{f0, f1}
	}

	lhsAB := triptychCommitmentTensor(f, sig.ZA)
	rhsAB := sig.B.ScalarMul(x1).Add(sig.A)
	if !lhsAB.Equal(rhsAB) {
		return false
	}

	fx := make([]ScalarVector, m)
	for j := 0; j < m; j++ {
		fx[j] = ScalarVector{
			f[j][0].Mul(x1.Sub(f[j][0])),
			f[j][1].Mul(x1.Sub(f[j][1])),
		}
	}
	lhsCD := triptychCommitmentTensor(fx, sig.ZC)
	rhsCD := sig.C.ScalarMul(x1).Add(sig.D)
	if !lhsCD.Equal(rhsCD) {
		return false
	}

	tProd := OneScalar()
	for j := 0; j < m; j++ {
		tProd = tProd.Mul(f[j][0])
	}

	RX := IdentityPoint()
	RY := IdentityPoint()
	muCommitImage := sig.CommitmentImage.ScalarMul(mu)
	for k := 0; k < n; k++ {
		if k > 0 {
			digit, newBit := grayFlip(k)
			oldBit := 1 - newBit
			inv, err := f[digit][oldBit].Invert()
			if err != nil {
				return false
			}
			tProd = tProd.Mul(inv).Mul(f[digit][newBit])
		}
		diff := commitments[k].Sub(pseudoOut).Mul8()
		base := ring[k].Add(diff.ScalarMul(mu))
		RX = RX.Add(base.ScalarMul(tProd))
		RY = RY.Add(domainU().Add(muCommitImage).ScalarMul(tProd))
	}

	xPows := x1.PowExpand(m, false, true)
	for j := 0; j < m; j++ {
		RX = RX.Sub(sig.X[j].ScalarMul(xPows[j]))
		RY = RY.Sub(sig.Y[j].ScalarMul(xPows[j]))
	}
	RX = RX.Sub(BasePoint().ScalarMul(sig.Z))
	RY = RY.Sub(sig.KeyImage.ScalarMul(sig.Z))

	return RX.IsIdentity() && RY.IsIdentity()
}

func (sig *TriptychSignature) MarshalBinary() ([]byte, error) {
	w := NewWriter()
	w.WritePoint(sig.KeyImage)
	w.WritePoint(sig.CommitmentImage)
	w.WritePoint(sig.A)
	w.WritePoint(sig.B)
	w.WritePoint(sig.C)
	w.WritePoint(sig.D)
	w.WritePointVector(sig.X)
	w.WritePointVector(sig.Y)
	w.WriteScalarVector(sig.F)
	w.WriteScalar(sig.ZA)
	w.WriteScalar(sig.ZC)
	w.WriteScalar(sig.Z)
	return w.Bytes(), nil
}

func (sig *TriptychSignature) UnmarshalBinary(data []byte) error {
	r := NewReader(data)
	var err error
	if sig.KeyImage, err = r.ReadPoint(); err != nil {
		return err
	}
	if sig.CommitmentImage, err = r.ReadPoint(); err != nil {
		return err
	}
	if sig.A, err = r.ReadPoint(); err != nil {
		return err
	}
	if sig.B, err = r.ReadPoint(); err != nil {
		return err
	}
	if sig.C, err = r.ReadPoint(); err != nil {
		return err
	}
	if sig.D, err = r.ReadPoint(); err != nil {
		return err
	}
	if sig.X, err = r.ReadPointVector(); err != nil {
		return err
	}
	if sig.Y, err = r.ReadPointVector(); err != nil {
		return err
	}
	if sig.F, err = r.ReadScalarVector(); err != nil {
		return err
	}
	if sig.ZA, err = r.ReadScalar(); err != nil {
		return err
	}
	if sig.ZC, err = r.ReadScalar(); err != nil {
		return err
	}
	if sig.Z, err = r.ReadScalar(); err != nil {
		return err
	}
	return nil
}
