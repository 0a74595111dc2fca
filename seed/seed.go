// Package seed derives the client's long-term X25519 identity from a
// 32-byte seed, and produces fresh seeds from the OS CSPRNG.
package seed

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// Size is the required length of a Seed in bytes.
const Size = 32

// Seed is an opaque 32-byte value the user's long-term keypair is derived
// from. It is never mutated after construction.
type Seed [Size]byte

// KeyPair is the client's long-term X25519 identity, deterministic from a
// Seed.
type KeyPair struct {
	Priv [Size]byte
	Pub  [Size]byte
}

// New wraps a caller-supplied 32-byte seed, rejecting any other length.
func New(raw []byte) (Seed, error) {
	var s Seed
	if len(raw) != Size {
		return s, fmt.Errorf("seed: expected %d bytes, got %d", Size, len(raw))
	}
	copy(s[:], raw)
	return s, nil
}

// Generate draws a fresh Seed from a cryptographically secure random source.
func Generate() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return s, fmt.Errorf("seed: failed to read random bytes: %w", err)
	}
	return s, nil
}

// KeyPairFromSeed computes the client's X25519 keypair from a seed. Priv
// holds the seed bytes as-is; curve25519.X25519 clamps the scalar per
// RFC 7748 on every use, and the public key is X25519(Priv, Basepoint).
func KeyPairFromSeed(s Seed) (KeyPair, error) {
	var kp KeyPair
	copy(kp.Priv[:], s[:])

	pub, err := curve25519.X25519(kp.Priv[:], curve25519.Basepoint)
	if err != nil {
		return kp, fmt.Errorf("seed: failed to derive public key: %w", err)
	}
	copy(kp.Pub[:], pub)
	return kp, nil
}
