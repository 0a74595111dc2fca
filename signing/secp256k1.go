package signing

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// LocalSigner is a Callback-shaped secp256k1 signer holding the private key
// directly. Secret Network accounts are secp256k1.
type LocalSigner struct {
	priv *btcec.PrivateKey
}

// NewLocalSigner constructs a LocalSigner from a 32-byte secp256k1 private
// key.
func NewLocalSigner(priv []byte) (*LocalSigner, error) {
	if len(priv) != 32 {
		return nil, fmt.Errorf("signing: secp256k1 private key must be 32 bytes, got %d", len(priv))
	}
	pk := secp256k1PrivKeyFromBytes(priv)
	return &LocalSigner{priv: pk}, nil
}

func secp256k1PrivKeyFromBytes(b []byte) *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv
}

// PubKey returns the compressed secp256k1 public key (33 bytes).
func (s *LocalSigner) PubKey() []byte {
	return s.priv.PubKey().SerializeCompressed()
}

// Sign computes a 64-byte compact (r || s) ECDSA signature over
// SHA-256(signDoc), the format Cosmos SDK amino signatures use, dropping the
// recovery id that SignCompact prepends.
func (s *LocalSigner) Sign(signDoc SignDoc) ([]byte, error) {
	digest := sha256.Sum256(signDoc)
	compact, err := ecdsa.SignCompact(s.priv, digest[:], false)
	if err != nil {
		return nil, fmt.Errorf("signing: compact signing failed: %w", err)
	}
	if len(compact) != 65 {
		return nil, fmt.Errorf("signing: unexpected compact signature length %d", len(compact))
	}
	return compact[1:], nil
}

// AsCallback adapts this signer to the CallbackFunc shape used by Signer.
func (s *LocalSigner) AsCallback() CallbackFunc {
	return s.Sign
}
