package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBPTranscriptDeterministic(t *testing.T) {
	t1 := newBPTranscript(bpDomainTag)
	rangeproofDomainSep(8, 1, t1)
	appendBPPoint("V", BasePoint(), t1)
	c1 := bpChallengeScalar("y", t1)

	t2 := newBPTranscript(bpDomainTag)
	rangeproofDomainSep(8, 1, t2)
	appendBPPoint("V", BasePoint(), t2)
	c2 := bpChallengeScalar("y", t2)

	assert.True(t, c1.Equal(c2))
}

func TestBPTranscriptDomainSepDistinguishesSizes(t *testing.T) {
	t1 := newBPTranscript(bpDomainTag)
	rangeproofDomainSep(8, 1, t1)
	c1 := bpChallengeScalar("y", t1)

	t2 := newBPTranscript(bpDomainTag)
	rangeproofDomainSep(16, 1, t2)
	c2 := bpChallengeScalar("y", t2)

	assert.False(t, c1.Equal(c2))
}

func TestBPTranscriptAppendInt64AndScalar(t *testing.T) {
	t1 := newBPTranscript(bpDomainTag)
	appendBPInt64("n", 42, t1)
	appendBPScalar("s", NewScalarFromUint64(7), t1)
	c1 := bpChallengeScalar("c", t1)

	t2 := newBPTranscript(bpDomainTag)
	appendBPInt64("n", 42, t2)
	appendBPScalar("s", NewScalarFromUint64(7), t2)
	c2 := bpChallengeScalar("c", t2)

	assert.True(t, c1.Equal(c2))
}
