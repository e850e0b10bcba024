package ringcrypto

import (
	"encoding/binary"
)

// Writer accumulates a byte stream using the wire format spec §6
// describes: fixed-size PODs raw little-endian, variable-length byte
// arrays with a varint length prefix, vectors as varint-count followed
// by concatenated elements, matrices as varint-row-count followed by
// varint-length rows.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteScalar(s *Scalar) { w.buf = append(w.buf, s.Bytes()...) }
func (w *Writer) WritePoint(p *Point)   { w.buf = append(w.buf, p.Bytes()...) }

func (w *Writer) WriteVarint(v uint64) { w.buf = append(w.buf, varintBytes(v)...) }

func (w *Writer) WriteBytes(b []byte) {
	w.WriteVarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteScalarVector(vs ScalarVector) {
	w.WriteVarint(uint64(len(vs)))
	for _, s := range vs {
		w.WriteScalar(s)
	}
}

func (w *Writer) WritePointVector(ps PointVector) {
	w.WriteVarint(uint64(len(ps)))
	for _, p := range ps {
		w.WritePoint(p)
	}
}

// WriteScalarMatrix writes a varint row count followed by varint-length
// rows, each a concatenation of raw 32-byte scalars.
func (w *Writer) WriteScalarMatrix(rows []ScalarVector) {
	w.WriteVarint(uint64(len(rows)))
	for _, row := range rows {
		w.WriteVarint(uint64(len(row)))
		for _, s := range row {
			w.WriteScalar(s)
		}
	}
}

// Reader consumes a byte stream produced by Writer. All Read* methods
// return an InvalidArgument error on truncated or malformed input.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, newErr(KindInvalidArgument, "short read: need %d, have %d", n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadScalar() (*Scalar, error) {
	b, err := r.take(32)
	if err != nil {
		return nil, err
	}
	return NewScalarFromBytes(b)
}

func (r *Reader) ReadPoint() (*Point, error) {
	b, err := r.take(32)
	if err != nil {
		return nil, err
	}
	return NewPointFromBytes(b)
}

func (r *Reader) ReadVarint() (uint64, error) {
	v, n := readVarint(r.buf[r.pos:])
	if n == 0 {
		return 0, newErr(KindInvalidArgument, "malformed varint")
	}
	r.pos += n
	return v, nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	return r.take(int(n))
}

func (r *Reader) ReadScalarVector() (ScalarVector, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	out := make(ScalarVector, n)
	for i := range out {
		out[i], err = r.ReadScalar()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) ReadPointVector() (PointVector, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	out := make(PointVector, n)
	for i := range out {
		out[i], err = r.ReadPoint()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) ReadScalarMatrix() ([]ScalarVector, error) {
	rows, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	out := make([]ScalarVector, rows)
	for i := range out {
		cols, err := r.ReadVarint()
		if err != nil {
			return nil, err
		}
		row := make(ScalarVector, cols)
		for j := range row {
			row[j], err = r.ReadScalar()
			if err != nil {
				return nil, err
			}
		}
		out[i] = row
	}
	return out, nil
}

// varintBytes encodes v as a standard LEB128 variable-length integer.
func varintBytes(v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return buf[:n]
}

func readVarint(b []byte) (uint64, int) {
	v, n := binary.Uvarint(b)
	if n <= 0 {
		return 0, 0
	}
	return v, n
}

// Marshaler is implemented by every protocol object so
// deserialize(serialize(x)) == x, the round-trip contract spec §6
// requires.
type Marshaler interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary([]byte) error
}
