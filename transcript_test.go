package ringcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptDeterministic(t *testing.T) {
	t1 := NewTranscript("test_domain")
	t2 := NewTranscript("test_domain")
	assert.True(t, t1.Challenge().Equal(t2.Challenge()))

	t1.Update([]byte("hello"))
	t2.Update([]byte("hello"))
	assert.True(t, t1.Challenge().Equal(t2.Challenge()))
}

func TestTranscriptDomainSeparation(t *testing.T) {
	t1 := NewTranscript("domain_a")
	t2 := NewTranscript("domain_b")
	assert.False(t, t1.Challenge().Equal(t2.Challenge()))
}

func TestTranscriptOrderMatters(t *testing.T) {
	t1 := NewTranscript("order")
	t1.Update([]byte("a"))
	t1.Update([]byte("b"))

	t2 := NewTranscript("order")
	t2.Update([]byte("b"))
	t2.Update([]byte("a"))

	assert.False(t, t1.Challenge().Equal(t2.Challenge()))
}

func TestTranscriptVectorLengthPrefixDistinguishesConcat(t *testing.T) {
	t1 := NewTranscript("lp")
	t1.Update([]byte("u"))
	t1.Update([]byte("v"))

	t2 := NewTranscript("lp")
	t2.Update([]byte("uv"))

	assert.False(t, t1.Challenge().Equal(t2.Challenge()))
}

func TestTranscriptChallengeDoesNotMutateState(t *testing.T) {
	tr := NewTranscript("stable")
	c1 := tr.Challenge()
	c2 := tr.Challenge()
	assert.True(t, c1.Equal(c2))
}

func TestTranscriptReset(t *testing.T) {
	tr := NewTranscript("reset_domain")
	tr.Update([]byte("mutate"))
	mutated := tr.Challenge()

	tr.Reset("reset_domain")
	fresh := NewTranscript("reset_domain")
	assert.True(t, tr.Challenge().Equal(fresh.Challenge()))
	assert.False(t, tr.Challenge().Equal(mutated))
}

func TestTranscriptUpdateScalarsAndPoints(t *testing.T) {
	t1 := NewTranscript("vecs")
	t1.UpdateScalars(ScalarVector{NewScalarFromUint64(1), NewScalarFromUint64(2)})

	t2 := NewTranscript("vecs")
	t2.UpdateScalars(ScalarVector{NewScalarFromUint64(1), NewScalarFromUint64(2), NewScalarFromUint64(3)})

	assert.False(t, t1.Challenge().Equal(t2.Challenge()))

	t3 := NewTranscript("pvecs")
	t3.UpdatePoints(PointVector{BasePoint()})
	t4 := NewTranscript("pvecs")
	t4.UpdatePoints(PointVector{BasePoint()})
	assert.True(t, t3.Challenge().Equal(t4.Challenge()))
}

func TestTranscriptChallengeNonZero(t *testing.T) {
	tr := NewTranscript("nonzero")
	c, err := tr.ChallengeNonZero()
	assert.NoError(t, err)
	assert.False(t, c.IsZero())
}
