// Package encryptor implements the outbound half of the transparent
// encryption layer: given a plaintext contract payload destined for
// MsgInstantiateContract, MsgExecuteContract, or a smart query, it resolves
// the target's code hash, seals nonce||senderPub||AES-SIV(codeHash||json),
// and places the result in the wire field the destination expects.
package encryptor

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/scrt-labs/secret-sdk-go/crypto/canonicaljson"
	"github.com/scrt-labs/secret-sdk-go/crypto/envelope"
)

// CodeHashResolver is the subset of *codehash.Cache the encryptor needs,
// narrowed so callers can substitute a fake in tests.
type CodeHashResolver interface {
	ByCodeID(ctx context.Context, id uint64) (string, error)
	ByAddress(ctx context.Context, addr string) (string, error)
}

// IOPubKeySource is the subset of *iopubkey.Cache the encryptor needs.
type IOPubKeySource interface {
	Get(ctx context.Context) ([32]byte, error)
}

// Encryptor holds the caller's long-term X25519 identity plus the two
// caches every seal operation consults.
type Encryptor struct {
	Priv [32]byte
	Pub  [32]byte

	CodeHashes CodeHashResolver
	IOPubKey   IOPubKeySource
}

// New constructs an Encryptor from a keypair and the shared caches.
func New(priv, pub [32]byte, codeHashes CodeHashResolver, ioPubKey IOPubKeySource) *Encryptor {
	return &Encryptor{Priv: priv, Pub: pub, CodeHashes: codeHashes, IOPubKey: ioPubKey}
}

// Sealed is the result of encrypting one contract payload: the base64
// envelope ready to place on the wire, and the nonce the caller must retain
// to later decrypt the chain's response.
type Sealed struct {
	EnvelopeBase64 string
	Nonce          [envelope.NonceSize]byte
	CodeHash       string
}

// seal resolves nothing on its own; it wraps the plaintext with the given
// code hash and returns the sealed envelope:
// pt = utf8(code_hash || canonical_json(payload)).
func (e *Encryptor) seal(ctx context.Context, codeHash string, payload json.RawMessage) (Sealed, error) {
	ioPub, err := e.IOPubKey.Get(ctx)
	if err != nil {
		return Sealed{}, fmt.Errorf("encryptor: failed to fetch consensus IO pubkey: %w", err)
	}

	canon, err := canonicaljson.Marshal(payload)
	if err != nil {
		return Sealed{}, fmt.Errorf("encryptor: failed to canonicalize payload: %w", err)
	}

	pt := append([]byte(codeHash), canon...)

	envBytes, nonce, err := envelope.Seal(e.Priv, e.Pub, ioPub, pt)
	if err != nil {
		return Sealed{}, fmt.Errorf("encryptor: failed to seal envelope: %w", err)
	}

	return Sealed{
		EnvelopeBase64: base64.StdEncoding.EncodeToString(envBytes),
		Nonce:          nonce,
		CodeHash:       codeHash,
	}, nil
}

// EncryptInstantiate resolves the code hash for codeID and seals payload for
// placement in MsgInstantiateContract's value.init_msg field.
func (e *Encryptor) EncryptInstantiate(ctx context.Context, codeID uint64, payload json.RawMessage) (Sealed, error) {
	codeHash, err := e.CodeHashes.ByCodeID(ctx, codeID)
	if err != nil {
		return Sealed{}, fmt.Errorf("encryptor: failed to resolve code hash for code id %d: %w", codeID, err)
	}
	return e.seal(ctx, codeHash, payload)
}

// EncryptExecute resolves the code hash for a contract address and seals
// payload for placement in MsgExecuteContract's value.msg field.
func (e *Encryptor) EncryptExecute(ctx context.Context, contractAddr string, payload json.RawMessage) (Sealed, error) {
	codeHash, err := e.CodeHashes.ByAddress(ctx, contractAddr)
	if err != nil {
		return Sealed{}, fmt.Errorf("encryptor: failed to resolve code hash for contract %s: %w", contractAddr, err)
	}
	return e.seal(ctx, codeHash, payload)
}

// EncryptQuery resolves the code hash for a contract address and seals
// payload for a smart query. Smart-query envelopes travel in the URL path
// as hex-of-utf8-of-base64: the envelope is base64-encoded, that ASCII
// string is treated as UTF-8 bytes, and those bytes are hex-encoded.
func (e *Encryptor) EncryptQuery(ctx context.Context, contractAddr string, payload json.RawMessage) (Sealed, string, error) {
	sealed, err := e.EncryptExecute(ctx, contractAddr, payload)
	if err != nil {
		return Sealed{}, "", err
	}
	pathHex := hex.EncodeToString([]byte(sealed.EnvelopeBase64))
	return sealed, pathHex, nil
}
