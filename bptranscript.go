package ringcrypto

import (
	"encoding/binary"

	"github.com/gtank/merlin"
)

// Bulletproofs and Bulletproofs+ use a merlin/STROBE transcript instead
// of the package's general SHA3-256 Transcript (transcript.go), exactly
// as the teacher does (transcript.go's original InitialTranscript /
// RangeproofDomainSep) and as the wider Bulletproofs literature does —
// see DESIGN.md "Transcript". Kept as its own file so the two
// mechanisms aren't confused at a glance.

func newBPTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

func rangeproofDomainSep(n, m int64, t *merlin.Transcript) *merlin.Transcript {
	appendBPBytes([]byte("dom-sep"), []byte("rangeproof v1"), t)
	appendBPInt64("n", uint64(n), t)
	appendBPInt64("m", uint64(m), t)
	return t
}

func appendBPBytes(label, data []byte, t *merlin.Transcript) {
	t.AppendMessage(label, data)
}

func appendBPInt64(label string, v uint64, t *merlin.Transcript) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	t.AppendMessage([]byte(label), buf[:])
}

func appendBPPoint(label string, p *Point, t *merlin.Transcript) {
	t.AppendMessage([]byte(label), p.Bytes())
}

func appendBPScalar(label string, s *Scalar, t *merlin.Transcript) {
	t.AppendMessage([]byte(label), s.Bytes())
}

func bpChallengeScalar(label string, t *merlin.Transcript) *Scalar {
	buf := t.ExtractBytes([]byte(label), 64)
	return NewScalarFromWideBytes(buf)
}
