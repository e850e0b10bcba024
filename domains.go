package ringcrypto

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Domain-separation tags, named in the teacher's DOMAIN_TAG convention
// (transaction_builder.go: BULLETPROOF_DOMAIN_TAG, HASH_TO_POINT_DOMAIN_TAG,
// RING_MLSAG_CHALLENGE_DOMAIN_TAG, ...), one per protocol that derives
// Fiat-Shamir challenges or domain constants, so no two protocols ever
// collide on the same transcript state or generator.
const (
	saltDomainTag        = "ringcrypto_salt_domain"
	transcriptBaseTag    = "ringcrypto_transcript_base"
	sigDomainTag         = "ringcrypto_schnorr_sig_domain"
	rfc8032DomainTag     = "ringcrypto_rfc8032_nonce_domain"
	borromeanDomainTag   = "ringcrypto_borromean_domain"
	clsagDomain0Tag      = "ringcrypto_clsag_domain_0_agg_p"
	clsagDomain1Tag      = "ringcrypto_clsag_domain_1_round"
	clsagDomain2Tag      = "ringcrypto_clsag_domain_2_agg_c"
	triptychDomain0Tag   = "ringcrypto_triptych_domain_0_main"
	triptychDomain1Tag   = "ringcrypto_triptych_domain_1_tensor"
	bpDomainTag          = "ringcrypto_bulletproof_domain"
	bpPlusDomainTag      = "ringcrypto_bulletproof_plus_domain"
	outputProofDomainTag = "ringcrypto_output_proof_domain"
	subaddressDomainTag  = "ringcrypto_subaddress_domain"
	confirmationTag      = "ringcrypto_confirmation_domain"
)

// domain-index reservations: each protocol that needs a derived point
// or scalar gets a distinct index into SHA3(SALT_DOMAIN ‖ index), so
// cross-protocol challenge collisions are structurally impossible.
const (
	domainIndexH = iota + 1
	domainIndexU
)

var (
	cachedH *Point
	cachedU *Point
)

// domainH returns the secondary generator H = Hp(G), used by every
// Pedersen commitment in this module.
func domainH() *Point {
	if cachedH == nil {
		cachedH = Hp(BasePoint())
	}
	return cachedH
}

// domainU returns the tertiary generator used by Triptych key images.
func domainU() *Point {
	if cachedU == nil {
		cachedU = deriveDomainPoint(domainIndexU)
	}
	return cachedU
}

// deriveDomainPoint computes SHA3(SALT_DOMAIN ‖ index), reduced to a
// point via the same Reduce path Hp uses. domainH and domainU compute
// their points on first use and cache them in package variables; the
// cache is not guarded by a lock. index is encoded as a full
// 8-byte big-endian integer, not a single byte: callers like
// triptychGenerator pack two indices into one int and need every bit
// of it to reach the hash, or distinct (i,j) pairs collide whenever
// they share the same low byte.
func deriveDomainPoint(index int) *Point {
	var idxBytes [8]byte
	binary.BigEndian.PutUint64(idxBytes[:], uint64(index))

	var uniform [64]byte
	h1 := sha3.Sum256(append([]byte(saltDomainTag), idxBytes[:]...))
	h2 := sha3.Sum256(append([]byte(saltDomainTag+"_2"), idxBytes[:]...))
	copy(uniform[:32], h1[:])
	copy(uniform[32:], h2[:])
	return Reduce(uniform)
}
