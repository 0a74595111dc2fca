// Package decryptor implements the inbound half of the transparent
// encryption layer: given the nonce an encryptor.Sealed call produced, it
// decrypts a broadcast response's data/logs/raw_log, restores a historical
// tx's original plaintext message, and decrypts the encrypted error strings
// a smart query or execute can return.
package decryptor

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
	"github.com/scrt-labs/secret-sdk-go/crypto/envelope"
	"github.com/scrt-labs/secret-sdk-go/wiretypes"
)

// IOPubKeySource is the subset of *iopubkey.Cache the decryptor needs.
type IOPubKeySource interface {
	Get(ctx context.Context) ([32]byte, error)
}

// execErrorPattern and queryErrorPattern are the two error-message shapes
// the chain returns for encrypted execute/query failures; matching them
// exactly is required to locate the embedded ciphertext.
var (
	execErrorPattern  = regexp.MustCompile(`contract failed: encrypted: (.+?): failed to execute message; message index: 0`)
	queryErrorPattern = regexp.MustCompile(`contract failed: encrypted: (.+?) \(HTTP 500\)`)
)

// Decryptor holds the caller's long-term X25519 identity and the shared
// consensus IO pubkey cache every open() call needs.
type Decryptor struct {
	Priv [32]byte
	Pub  [32]byte

	IOPubKey IOPubKeySource
}

// New constructs a Decryptor.
func New(priv, pub [32]byte, ioPubKey IOPubKeySource) *Decryptor {
	return &Decryptor{Priv: priv, Pub: pub, IOPubKey: ioPubKey}
}

// open is the shared "decode then AES-SIV open" primitive every entry point
// below reduces to: hex/base64 layers differ per call site, but the
// underlying decrypt call is always envelope.Open keyed by a nonce the
// caller already knows.
func (d *Decryptor) open(ctx context.Context, nonce [32]byte, ciphertext []byte) ([]byte, error) {
	ioPub, err := d.IOPubKey.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("decryptor: failed to fetch consensus IO pubkey: %w", err)
	}
	pt, err := envelope.Open(d.Priv, ioPub, nonce, ciphertext)
	if err != nil {
		return nil, apierrors.CryptoError{Reason: "AES-SIV authentication failed", Err: err}
	}
	return pt, nil
}

// DecryptTxResponse applies the post-send decryption path to a broadcast
// or tx-query response in place, given the nonce the original
// encryptor.Sealed call produced. Data and raw_log failures are fatal;
// per-attribute log failures are swallowed so one undecryptable attribute
// doesn't hide the rest of the response.
func (d *Decryptor) DecryptTxResponse(ctx context.Context, nonce [32]byte, tx *wiretypes.TxResponse) error {
	if tx.Data != "" {
		decoded, err := decryptData(ctx, d, nonce, tx.Data)
		if err != nil {
			return fmt.Errorf("decryptor: failed to decrypt tx data: %w", err)
		}
		tx.Data = string(decoded)
	}

	for li := range tx.Logs {
		for ei := range tx.Logs[li].Events {
			ev := &tx.Logs[li].Events[ei]
			if ev.Type != "wasm" {
				continue
			}
			for ai := range ev.Attributes {
				attr := &ev.Attributes[ai]
				if plain, ok := d.tryDecryptAttribute(ctx, nonce, attr.Key); ok {
					attr.Key = plain
				}
				if plain, ok := d.tryDecryptAttribute(ctx, nonce, attr.Value); ok {
					attr.Value = plain
				}
			}
		}
	}

	if tx.RawLog != "" {
		decrypted, err := d.decryptExecError(ctx, nonce, tx.RawLog)
		if err != nil {
			return fmt.Errorf("decryptor: failed to decrypt raw_log: %w", err)
		}
		tx.RawLog = decrypted
	}

	return nil
}

// decryptData implements the data field's pipeline: hex-decode the wire
// value, AES-SIV open it, then base64-decode the resulting UTF-8 string
// (the chain double-encodes it).
func decryptData(ctx context.Context, d *Decryptor, nonce [32]byte, dataHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(dataHex)
	if err != nil {
		return nil, fmt.Errorf("data field is not valid hex: %w", err)
	}
	pt, err := d.open(ctx, nonce, ciphertext)
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(string(pt))
	if err != nil {
		return nil, fmt.Errorf("decrypted data is not valid base64: %w", err)
	}
	return decoded, nil
}

// tryDecryptAttribute is the best-effort per-attribute case: a failure of
// any kind (bad base64, authentication failure) leaves the caller's value
// untouched.
func (d *Decryptor) tryDecryptAttribute(ctx context.Context, nonce [32]byte, value string) (string, bool) {
	ciphertext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", false
	}
	pt, err := d.open(ctx, nonce, ciphertext)
	if err != nil {
		return "", false
	}
	return string(pt), true
}

// decryptExecError finds the exec-error pattern in rawLog, decrypts its
// capture group, and substitutes the plaintext back in, leaving the
// surrounding message text untouched. A raw_log with no match is returned
// unchanged.
func (d *Decryptor) decryptExecError(ctx context.Context, nonce [32]byte, rawLog string) (string, error) {
	loc := execErrorPattern.FindStringSubmatchIndex(rawLog)
	if loc == nil {
		return rawLog, nil
	}

	captured := rawLog[loc[2]:loc[3]]
	ciphertext, err := base64.StdEncoding.DecodeString(captured)
	if err != nil {
		return "", apierrors.DecryptErrorWrappedError{
			Original:   fmt.Errorf("raw_log: %s", rawLog),
			DecryptErr: fmt.Errorf("captured segment is not valid base64: %w", err),
		}
	}
	pt, err := d.open(ctx, nonce, ciphertext)
	if err != nil {
		return "", apierrors.DecryptErrorWrappedError{
			Original:   fmt.Errorf("raw_log: %s", rawLog),
			DecryptErr: err,
		}
	}

	return rawLog[:loc[2]] + string(pt) + rawLog[loc[3]:], nil
}

// DecryptQueryError inspects a smart-query 500 response body for the
// query-error pattern and, on a match, returns a new error carrying the
// decrypted plaintext message in place of the base64 blob. A non-matching
// body is returned as the unchanged serverErr; a match whose decryption
// fails is returned as an apierrors.DecryptErrorWrappedError carrying both
// serverErr and the decryption error.
func (d *Decryptor) DecryptQueryError(ctx context.Context, nonce [32]byte, serverErr apierrors.ServerError) error {
	loc := queryErrorPattern.FindStringSubmatchIndex(serverErr.Body)
	if loc == nil {
		return serverErr
	}

	captured := serverErr.Body[loc[2]:loc[3]]
	plain, err := d.decryptQueryErrorPipeline(ctx, nonce, captured)
	if err != nil {
		return apierrors.DecryptErrorWrappedError{Original: serverErr, DecryptErr: err}
	}

	serverErr.Body = serverErr.Body[:loc[2]] + plain + serverErr.Body[loc[3]:]
	return serverErr
}

// decryptQueryErrorPipeline implements the smart-query error's
// fromUtf8 ∘ fromBase64 ∘ fromUtf8 ∘ decrypt ∘ fromBase64 pipeline: the
// chain wraps the encrypted error's plaintext in an extra base64 layer
// beyond what the exec-error pattern uses.
func (d *Decryptor) decryptQueryErrorPipeline(ctx context.Context, nonce [32]byte, captured string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(captured)
	if err != nil {
		return "", fmt.Errorf("captured segment is not valid base64: %w", err)
	}
	pt, err := d.open(ctx, nonce, ciphertext)
	if err != nil {
		return "", err
	}
	inner, err := base64.StdEncoding.DecodeString(string(pt))
	if err != nil {
		return "", fmt.Errorf("decrypted query error is not valid base64: %w", err)
	}
	return string(inner), nil
}

// DecryptQueryResult decrypts a successful smart-query response's
// result.smart field, which travels through the same
// fromUtf8 ∘ fromBase64 ∘ fromUtf8 ∘ decrypt ∘ fromBase64 pipeline as the
// query-error path.
func (d *Decryptor) DecryptQueryResult(ctx context.Context, nonce [32]byte, resultSmartBase64 string) ([]byte, error) {
	plain, err := d.decryptQueryErrorPipeline(ctx, nonce, resultSmartBase64)
	if err != nil {
		return nil, fmt.Errorf("decryptor: failed to decrypt smart query result: %w", err)
	}
	return []byte(plain), nil
}
