// Package txkey derives per-transaction AES-SIV keys from the user's
// long-term X25519 private key, a fresh nonce, and the chain's published
// consensus I/O public key.
package txkey

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// Size is the length in bytes of a derived transaction key.
const Size = 32

// HKDFSalt is the fixed 32-byte salt used for every HKDF-SHA256 derivation.
// It MUST be used verbatim; it is not a secret.
var HKDFSalt = [32]byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x02, 0x4b, 0xea, 0xd8, 0xdf, 0x69, 0x99,
	0x08, 0x52, 0xc2, 0x02, 0xdb, 0x0e, 0x00, 0x97,
	0xc1, 0xa1, 0x2e, 0xa6, 0x37, 0xd7, 0xe9, 0x6d,
}

// Derive computes the AES-SIV key for a single transaction:
//
//	ikm = X25519(priv, ioPub) || nonce
//	key = HKDF-SHA256(salt = HKDFSalt, ikm, info = "", L = 32)
func Derive(priv, ioPub, nonce [32]byte) ([Size]byte, error) {
	shared, err := curve25519.X25519(priv[:], ioPub[:])
	if err != nil {
		var zero [Size]byte
		return zero, fmt.Errorf("txkey: ECDH failed: %w", err)
	}
	var sharedArr [32]byte
	copy(sharedArr[:], shared)
	return expand(sharedArr, nonce)
}

// expand runs the HKDF-SHA256 step in isolation, given an already-computed
// ECDH shared secret. Split out from Derive so a fixed HKDF test vector
// (which pins the HKDF step, not the ECDH step) can be tested without going
// through curve25519.X25519's low-order-point check, which correctly
// rejects an all-zero public key.
func expand(shared, nonce [32]byte) ([Size]byte, error) {
	var key [Size]byte

	ikm := make([]byte, 0, len(shared)+len(nonce))
	ikm = append(ikm, shared[:]...)
	ikm = append(ikm, nonce[:]...)

	r := hkdf.New(sha256.New, ikm, HKDFSalt[:], nil)
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return key, fmt.Errorf("txkey: HKDF expansion failed: %w", err)
	}
	return key, nil
}
