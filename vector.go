package ringcrypto

import "sort"

// ScalarVector is an ordered sequence of scalars supporting the
// elementwise operations range proofs and ring signatures need.
type ScalarVector []*Scalar

func (v ScalarVector) Add(o ScalarVector) (ScalarVector, error) {
	if len(v) != len(o) {
		return nil, newErr(KindInvalidArgument, "scalar vector length mismatch %d != %d", len(v), len(o))
	}
	out := make(ScalarVector, len(v))
	for i := range v {
		out[i] = v[i].Add(o[i])
	}
	return out, nil
}

func (v ScalarVector) Sub(o ScalarVector) (ScalarVector, error) {
	if len(v) != len(o) {
		return nil, newErr(KindInvalidArgument, "scalar vector length mismatch %d != %d", len(v), len(o))
	}
	out := make(ScalarVector, len(v))
	for i := range v {
		out[i] = v[i].Sub(o[i])
	}
	return out, nil
}

// Hadamard is the elementwise product of two scalar vectors.
func (v ScalarVector) Hadamard(o ScalarVector) (ScalarVector, error) {
	if len(v) != len(o) {
		return nil, newErr(KindInvalidArgument, "scalar vector length mismatch %d != %d", len(v), len(o))
	}
	out := make(ScalarVector, len(v))
	for i := range v {
		out[i] = v[i].Mul(o[i])
	}
	return out, nil
}

func (v ScalarVector) Slice(from, to int) ScalarVector {
	return v[from:to]
}

func (v ScalarVector) Sum() *Scalar {
	sum := ZeroScalar()
	for _, s := range v {
		sum = sum.Add(s)
	}
	return sum
}

// DedupeSorted returns a copy of v sorted by byte value with duplicate
// elements removed.
func (v ScalarVector) DedupeSorted() ScalarVector {
	cp := make(ScalarVector, len(v))
	copy(cp, v)
	sort.Slice(cp, func(i, j int) bool { return lessBytes(cp[i].Bytes(), cp[j].Bytes()) })
	out := cp[:0]
	for i, s := range cp {
		if i == 0 || !s.Equal(cp[i-1]) {
			out = append(out, s)
		}
	}
	return out
}

// InnerProduct computes sum_i v[i]*o[i] by plain scalar
// multiply-accumulate; no curve operations are involved.
func (v ScalarVector) InnerProduct(o ScalarVector) (*Scalar, error) {
	if len(v) != len(o) {
		return nil, newErr(KindInvalidArgument, "scalar vector length mismatch %d != %d", len(v), len(o))
	}
	sum := ZeroScalar()
	for i := range v {
		sum = sum.Add(v[i].Mul(o[i]))
	}
	return sum, nil
}

// PointVector is an ordered sequence of points.
type PointVector []*Point

func (v PointVector) Slice(from, to int) PointVector {
	return v[from:to]
}

func (v PointVector) Sum() *Point {
	sum := IdentityPoint()
	for _, p := range v {
		sum = sum.Add(p)
	}
	return sum
}

func (v PointVector) DedupeSorted() PointVector {
	cp := make(PointVector, len(v))
	copy(cp, v)
	sort.Slice(cp, func(i, j int) bool { return lessBytes(cp[i].Bytes(), cp[j].Bytes()) })
	out := cp[:0]
	for i, p := range cp {
		if i == 0 || !p.Equal(cp[i-1]) {
			out = append(out, p)
		}
	}
	return out
}

// HasDuplicates reports whether v contains two byte-identical points,
// the check every ring-signature verifier runs against its public-key
// ring before trusting it.
func (v PointVector) HasDuplicates() bool {
	seen := make(map[string]struct{}, len(v))
	for _, p := range v {
		k := string(p.Bytes())
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

// ScalarPointInnerProduct computes sum_i scalars[i]*points[i], combining
// pairs of terms via DblMult (ceil(n/2) calls). DblMult does not fuse
// its two multiplications, so this still performs n scalar
// multiplications; the number of curve operations is not halved.
func ScalarPointInnerProduct(scalars ScalarVector, points PointVector) (*Point, error) {
	if len(scalars) != len(points) {
		return nil, newErr(KindInvalidArgument, "vector length mismatch %d != %d", len(scalars), len(points))
	}
	n := len(scalars)
	if n <= 1 {
		return MultiscalarMul(scalars, points), nil
	}
	acc := IdentityPoint()
	i := 0
	for ; i+1 < n; i += 2 {
		acc = acc.Add(DblMult(scalars[i], points[i], scalars[i+1], points[i+1]))
	}
	if i < n {
		acc = acc.Add(points[i].ScalarMul(scalars[i]))
	}
	return acc, nil
}

func lessBytes(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
