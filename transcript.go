package ringcrypto

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// transcriptBase is TRANSCRIPT_BASE, the fixed domain-separation
// constant every Transcript resets to.
var transcriptBase = sha3.Sum256([]byte(transcriptBaseTag))

// Transcript is the single source of Fiat-Shamir challenges shared by
// Schnorr, RFC 8032, Borromean, CLSAG, Triptych and the audit proof.
// State is a single scalar; update(x) sets
// state := SHA3-256(state ‖ serialize(x)) mod l. Order of updates is
// part of the security contract, so Transcript exposes only sequential
// Update calls, never a way to replay or reorder them.
//
// Bulletproofs and Bulletproofs+ do not use this type: they use the
// teacher's merlin/STROBE transcript instead (bptranscript.go), per
// DESIGN.md.
type Transcript struct {
	state [32]byte
}

// NewTranscript resets to TRANSCRIPT_BASE, additionally folding in a
// protocol label so distinct protocols never share initial state even
// if TRANSCRIPT_BASE were somehow reused incorrectly by a caller.
func NewTranscript(domainTag string) *Transcript {
	t := &Transcript{state: transcriptBase}
	t.Update([]byte(domainTag))
	return t
}

// Reset returns the transcript to TRANSCRIPT_BASE (spec §4.3 contract
// #1), re-applying the same domain tag it was constructed with.
func (t *Transcript) Reset(domainTag string) {
	t.state = transcriptBase
	t.Update([]byte(domainTag))
}

// Update commits x in the exact call order; vectors are length-prefixed
// so that (u,v) and (u‖v) yield different challenges (spec §4.3
// contract #4).
func (t *Transcript) Update(x []byte) {
	h := sha3.New256()
	h.Write(t.state[:])
	h.Write(lengthPrefixed(x))
	reduced := NewScalarFromWideBytes(padTo64(h.Sum(nil)))
	copy(t.state[:], reduced.Bytes())
}

// UpdateScalar and UpdatePoint are convenience wrappers that commit a
// Scalar/Point's canonical 32-byte encoding.
func (t *Transcript) UpdateScalar(s *Scalar) { t.Update(s.Bytes()) }
func (t *Transcript) UpdatePoint(p *Point)   { t.Update(p.Bytes()) }

// UpdateScalars and UpdatePoints commit an ordered vector, length
// prefixed as a whole (not per-element), matching "vectors are
// serialized length-prefixed" in spec §4.3.
func (t *Transcript) UpdateScalars(vs ScalarVector) {
	buf := varintBytes(uint64(len(vs)))
	for _, s := range vs {
		buf = append(buf, s.Bytes()...)
	}
	t.Update(buf)
}

func (t *Transcript) UpdatePoints(ps PointVector) {
	buf := varintBytes(uint64(len(ps)))
	for _, p := range ps {
		buf = append(buf, p.Bytes()...)
	}
	t.Update(buf)
}

// Challenge reads the current state without modifying it (spec §4.3
// contract #2): the state scalar itself is the Fiat-Shamir challenge.
func (t *Transcript) Challenge() *Scalar {
	s, _ := NewScalarFromBytes(t.state[:])
	return s
}

// ChallengeNonZero repeats spec §4.3's "a challenge of zero is rejected
// at the call site": it folds in a disambiguating counter and retries
// until the challenge is non-zero, bounded at 8 attempts per spec §9's
// retry-loop model. The caller decides whether a zero challenge here
// means "retry with fresh randomness" (proving) or "fail" (verification)
// by how it uses the returned error.
func (t *Transcript) ChallengeNonZero() (*Scalar, error) {
	const maxAttempts = 8
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c := t.Challenge()
		if !c.IsZero() {
			return c, nil
		}
		var ctr [8]byte
		binary.LittleEndian.PutUint64(ctr[:], uint64(attempt))
		t.Update(ctr[:])
	}
	return nil, newErr(KindInvalidArgument, "transcript produced zero challenge after %d attempts", maxAttempts)
}

func lengthPrefixed(b []byte) []byte {
	out := varintBytes(uint64(len(b)))
	return append(out, b...)
}

func padTo64(b []byte) []byte {
	out := make([]byte, 64)
	copy(out, b)
	return out
}
