package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointRoundTrips(t *testing.T) {
	p := ScalarMulBase(RandomScalar())
	b := p.Bytes()
	assert.Len(t, b, 32)

	p2, err := NewPointFromBytes(b)
	assert.NoError(t, err)
	assert.True(t, p.Equal(p2))

	p3, err := NewPointFromHex(p.Hex())
	assert.NoError(t, err)
	assert.True(t, p.Equal(p3))
}

func TestPointIdentityAndBase(t *testing.T) {
	id := IdentityPoint()
	assert.True(t, id.IsIdentity())
	assert.False(t, id.Valid())

	g := BasePoint()
	assert.False(t, g.IsIdentity())
	assert.True(t, g.Valid())
}

func TestPointArithmetic(t *testing.T) {
	a := RandomScalar()
	b := RandomScalar()

	A := ScalarMulBase(a)
	B := ScalarMulBase(b)

	sum := A.Add(B)
	want := ScalarMulBase(a.Add(b))
	assert.True(t, sum.Equal(want))

	diff := A.Sub(B)
	wantDiff := ScalarMulBase(a.Sub(b))
	assert.True(t, diff.Equal(wantDiff))

	assert.True(t, A.Add(A.Neg()).IsIdentity())
}

func TestPointScalarMul(t *testing.T) {
	s := NewScalarFromUint64(5)
	p := ScalarMulBase(OneScalar())
	assert.True(t, p.ScalarMul(s).Equal(ScalarMulBase(s)))
}

func TestPointMul8(t *testing.T) {
	p := ScalarMulBase(RandomScalar())
	eight := NewScalarFromUint64(8)
	assert.True(t, p.Mul8().Equal(p.ScalarMul(eight)))
}

func TestDblMult(t *testing.T) {
	a := RandomScalar()
	b := RandomScalar()
	A := ScalarMulBase(RandomScalar())
	B := BasePoint()

	got := DblMult(a, A, b, B)
	want := A.ScalarMul(a).Add(ScalarMulBase(b))
	assert.True(t, got.Equal(want))
}

func TestMultiscalarMul(t *testing.T) {
	scalars := []*Scalar{NewScalarFromUint64(2), NewScalarFromUint64(3)}
	points := []*Point{BasePoint(), ScalarMulBase(NewScalarFromUint64(7))}

	got := MultiscalarMul(scalars, points)
	want := BasePoint().ScalarMul(NewScalarFromUint64(2)).Add(points[1].ScalarMul(NewScalarFromUint64(3)))
	assert.True(t, got.Equal(want))

	assert.True(t, got.Equal(VartimeMultiscalarMul(scalars, points)))
}

func TestHpDistinctFromInput(t *testing.T) {
	p := ScalarMulBase(RandomScalar())
	hp := Hp(p)
	assert.False(t, hp.Equal(p))
	assert.True(t, hp.Valid())

	// deterministic
	assert.True(t, hp.Equal(Hp(p)))
}

func TestPointZeroize(t *testing.T) {
	p := ScalarMulBase(RandomScalar())
	p.Zeroize()
	assert.True(t, p.IsIdentity())
}

func TestSpecialPoints(t *testing.T) {
	G, H, U, Z, zpValid := SpecialPoints()
	assert.True(t, G.Equal(BasePoint()))
	assert.False(t, H.Equal(G))
	assert.False(t, U.Equal(H))
	assert.True(t, Z.IsIdentity())
	assert.False(t, zpValid)
}
