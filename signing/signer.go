// Package signing models a caller-supplied signing strategy: either a
// signing callback or an OfflineSigner. Transaction signing itself is an
// external collaborator — amino sign-bytes construction happens outside
// this package — but callers still need a stable injection point for it.
package signing

import "fmt"

// StdSignature is the amino-encoded signature envelope attached to a StdTx.
type StdSignature struct {
	PubKey    []byte `json:"pub_key"`
	Signature []byte `json:"signature"`
}

// SignDoc is the canonical byte string a signature is computed over. Its
// construction (amino sign-bytes) is external to this package.
type SignDoc []byte

// CallbackFunc signs a pre-built SignDoc and returns the raw signature
// bytes, for callers who hold the private key directly or behind a simple
// signing function (e.g. a hardware wallet SDK's synchronous sign call).
type CallbackFunc func(signDoc SignDoc) ([]byte, error)

// OfflineSigner is satisfied by wallets that build and sign their own doc
// internally (browser-extension or hardware-wallet style signers).
type OfflineSigner interface {
	SignAmino(signerAddress string, signDoc SignDoc) (signed SignDoc, signature StdSignature, err error)
}

// Signer is the injectable variant: exactly one of Callback or Offline must
// be set.
type Signer struct {
	PubKey   []byte
	Callback CallbackFunc
	Offline  OfflineSigner
}

// Sign produces a StdSignature for the given sign-doc and signer address,
// dispatching to whichever concrete strategy was configured.
func (s Signer) Sign(signerAddress string, signDoc SignDoc) (StdSignature, error) {
	switch {
	case s.Callback != nil:
		sig, err := s.Callback(signDoc)
		if err != nil {
			return StdSignature{}, fmt.Errorf("signing: callback failed: %w", err)
		}
		return StdSignature{PubKey: s.PubKey, Signature: sig}, nil
	case s.Offline != nil:
		_, sig, err := s.Offline.SignAmino(signerAddress, signDoc)
		if err != nil {
			return StdSignature{}, fmt.Errorf("signing: offline signer failed: %w", err)
		}
		return sig, nil
	default:
		return StdSignature{}, fmt.Errorf("signing: no signing strategy configured")
	}
}
