package runtime

import "crypto/sha256"

// MaxBump is the first bump seed tried during address derivation.
const MaxBump = 255

// Address derivation is domain-separated from every other hash in the
// system by this trailing marker.
const derivedMarker = "DerivedAddress"

// DeriveAddress computes the program-derived address for seeds under
// program: SHA-256 over the seeds, a bump byte, the program ID, and the
// domain marker. Derivation here is pure hashing, so the first bump
// candidate is always usable and the returned bump is constant; the bump
// byte participates in the hash and is kept in record layouts for
// compatibility with hosts that search downward from it.
func DeriveAddress(program Pubkey, seeds ...[]byte) (Pubkey, uint8) {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{MaxBump})
	h.Write(program[:])
	h.Write([]byte(derivedMarker))

	var p Pubkey
	copy(p[:], h.Sum(nil))
	return p, MaxBump
}
