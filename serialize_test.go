package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterReaderScalarPointRoundTrip(t *testing.T) {
	s := RandomScalar()
	p := ScalarMulBase(RandomScalar())

	w := NewWriter()
	w.WriteScalar(s)
	w.WritePoint(p)

	r := NewReader(w.Bytes())
	gotS, err := r.ReadScalar()
	assert.NoError(t, err)
	assert.True(t, s.Equal(gotS))

	gotP, err := r.ReadPoint()
	assert.NoError(t, err)
	assert.True(t, p.Equal(gotP))

	assert.Equal(t, 0, r.Remaining())
}

func TestWriterReaderVarintAndBytes(t *testing.T) {
	w := NewWriter()
	w.WriteVarint(300)
	w.WriteBytes([]byte("hello world"))

	r := NewReader(w.Bytes())
	v, err := r.ReadVarint()
	assert.NoError(t, err)
	assert.Equal(t, uint64(300), v)

	b, err := r.ReadBytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello world"), b)
}

func TestWriterReaderScalarVector(t *testing.T) {
	vs := ScalarVector{RandomScalar(), RandomScalar(), RandomScalar()}
	w := NewWriter()
	w.WriteScalarVector(vs)

	r := NewReader(w.Bytes())
	got, err := r.ReadScalarVector()
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	for i := range vs {
		assert.True(t, vs[i].Equal(got[i]))
	}
}

func TestWriterReaderPointVector(t *testing.T) {
	ps := PointVector{ScalarMulBase(RandomScalar()), ScalarMulBase(RandomScalar())}
	w := NewWriter()
	w.WritePointVector(ps)

	r := NewReader(w.Bytes())
	got, err := r.ReadPointVector()
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	for i := range ps {
		assert.True(t, ps[i].Equal(got[i]))
	}
}

func TestWriterReaderScalarMatrix(t *testing.T) {
	rows := []ScalarVector{
		{RandomScalar(), RandomScalar()},
		{RandomScalar()},
	}
	w := NewWriter()
	w.WriteScalarMatrix(rows)

	r := NewReader(w.Bytes())
	got, err := r.ReadScalarMatrix()
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, got[0], 2)
	assert.Len(t, got[1], 1)
	assert.True(t, rows[0][0].Equal(got[0][0]))
}

func TestReaderShortReadErrors(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_, err := r.ReadScalar()
	assert.Error(t, err)
}

func TestReaderMalformedVarintErrors(t *testing.T) {
	r := NewReader([]byte{})
	_, err := r.ReadVarint()
	assert.Error(t, err)
}
