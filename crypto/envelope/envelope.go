// Package envelope implements the fixed binary framing that wraps every
// encrypted contract message:
//
//	nonce(32) || senderPub(32) || AES-SIV(key=TxKey, ad=[empty])(codeHashHex || jsonPayload)
//
// Sealing and opening are both keyed by a transaction key derived by the
// sibling txkey package; this package only concerns itself with framing and
// the AES-SIV call itself.
package envelope

import (
	"crypto/rand"
	"fmt"

	"github.com/miscreant/miscreant.go"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
	"github.com/scrt-labs/secret-sdk-go/crypto/txkey"
)

// NonceSize, PubKeySize are the fixed field widths of the envelope header.
const (
	NonceSize  = 32
	PubKeySize = 32
	HeaderSize = NonceSize + PubKeySize
)

// emptyAD is the single, empty associated-data element AES-SIV is always
// invoked with, matching the chain's own encrypted contract wire format
// bit-for-bit.
var emptyAD = []byte{}

// Envelope is a parsed nonce || senderPub || ciphertext frame.
type Envelope struct {
	Nonce     [NonceSize]byte
	SenderPub [PubKeySize]byte
	Cipher    []byte
}

// Bytes serializes the envelope back into wire form.
func (e Envelope) Bytes() []byte {
	out := make([]byte, 0, HeaderSize+len(e.Cipher))
	out = append(out, e.Nonce[:]...)
	out = append(out, e.SenderPub[:]...)
	out = append(out, e.Cipher...)
	return out
}

// Parse splits a wire-format envelope into its three fields. It requires at
// least HeaderSize bytes; a shorter input is an apierrors.CryptoError.
func Parse(raw []byte) (Envelope, error) {
	var e Envelope
	if len(raw) < HeaderSize {
		return e, apierrors.CryptoError{Reason: fmt.Sprintf("envelope too short: %d bytes, need at least %d", len(raw), HeaderSize)}
	}
	copy(e.Nonce[:], raw[0:NonceSize])
	copy(e.SenderPub[:], raw[NonceSize:HeaderSize])
	e.Cipher = raw[HeaderSize:]
	return e, nil
}

// newAESSIV constructs the raw S2V/CMAC-SIV cipher directly rather than
// through miscreant.NewAEAD: the crypto/cipher.AEAD wrapper treats its
// nonce argument as a second associated-data header even when constructed
// with nonceSize 0, authenticating two empty headers instead of the single
// empty header the chain's own AES-SIV construction expects.
func newAESSIV(key [txkey.Size]byte) (*miscreant.Cipher, error) {
	c, err := miscreant.NewAESCMACSIV(key[:])
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to construct AES-SIV cipher: %w", err)
	}
	return c, nil
}

// Seal derives a fresh nonce, computes the transaction key for it, and seals
// plaintext into a complete wire-format envelope. For contract messages the
// caller passes utf8(codeHash || jsonPayload); Seal adds no prefix itself.
//
// It returns the envelope bytes and the nonce separately, since the caller
// (the outbound encryptor) must retain the nonce to decrypt the eventual
// chain response, independent of the envelope's own placement in the
// transaction.
func Seal(priv, senderPub, ioPub [32]byte, plaintext []byte) ([]byte, [NonceSize]byte, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, nonce, fmt.Errorf("envelope: failed to generate nonce: %w", err)
	}

	key, err := txkey.Derive(priv, ioPub, nonce)
	if err != nil {
		return nil, nonce, fmt.Errorf("envelope: failed to derive transaction key: %w", err)
	}

	c, err := newAESSIV(key)
	if err != nil {
		return nil, nonce, err
	}
	ciphertext, err := c.Seal(nil, plaintext, emptyAD)
	if err != nil {
		return nil, nonce, fmt.Errorf("envelope: AES-SIV seal failed: %w", err)
	}

	e := Envelope{Nonce: nonce, SenderPub: senderPub, Cipher: ciphertext}
	return e.Bytes(), nonce, nil
}

// Open decrypts a ciphertext given the nonce that was used to seal it. An
// empty ciphertext always decrypts to an empty plaintext without invoking
// AES-SIV at all.
func Open(priv, ioPub [32]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}

	key, err := txkey.Derive(priv, ioPub, nonce)
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to derive transaction key: %w", err)
	}

	c, err := newAESSIV(key)
	if err != nil {
		return nil, err
	}
	pt, err := c.Open(nil, ciphertext, emptyAD)
	if err != nil {
		return nil, fmt.Errorf("envelope: AES-SIV authentication failed: %w", err)
	}
	return pt, nil
}
