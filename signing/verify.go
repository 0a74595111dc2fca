package signing

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Verify checks a 64-byte compact (r || s) signature against a compressed
// secp256k1 public key over SHA-256(signDoc). It uses a distinct
// secp256k1 implementation from the one LocalSigner signs with, the way
// Cosmos SDK's own account keyring does: btcec produces signatures,
// decred's library is what verifies them against a bare public key.
func Verify(pubKey []byte, signDoc SignDoc, signature []byte) (bool, error) {
	if len(signature) != 64 {
		return false, fmt.Errorf("signing: compact signature must be 64 bytes, got %d", len(signature))
	}

	pk, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false, fmt.Errorf("signing: invalid public key: %w", err)
	}

	var r, s secp256k1.ModNScalar
	r.SetByteSlice(signature[:32])
	s.SetByteSlice(signature[32:])
	sig := ecdsa.NewSignature(&r, &s)

	digest := sha256.Sum256(signDoc)
	return sig.Verify(digest[:], pk), nil
}
