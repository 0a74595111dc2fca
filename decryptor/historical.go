package decryptor

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/scrt-labs/secret-sdk-go/crypto/envelope"
	"github.com/scrt-labs/secret-sdk-go/wiretypes"
)

// DecryptHistoricalTx inspects a browsed transaction's single wasm message,
// and if its embedded envelope's sender key matches ours, restores the
// plaintext payload and applies the post-send decryption path to
// data/logs/raw_log using the nonce recovered from the envelope.
//
// It reports whether the tx was ours (false means the tx is left completely
// untouched) and any hard failure encountered while decrypting a tx that
// was ours.
func (d *Decryptor) DecryptHistoricalTx(ctx context.Context, tx *wiretypes.TxResponse) (bool, error) {
	if tx.Tx == nil || len(tx.Tx.Msg) != 1 {
		return false, nil
	}

	msg := tx.Tx.Msg[0]
	var envelopeB64 *string
	switch msg.Type {
	case wiretypes.MsgTypeExecuteContract:
		envelopeB64 = &msg.ExecuteContract.Msg
	case wiretypes.MsgTypeInstantiateContract:
		envelopeB64 = &msg.InstantiateContract.InitMsg
	default:
		return false, nil
	}

	raw, err := base64.StdEncoding.DecodeString(*envelopeB64)
	if err != nil {
		return false, nil
	}
	env, err := envelope.Parse(raw)
	if err != nil {
		return false, nil
	}
	if env.SenderPub != d.Pub {
		return false, nil
	}

	pt, err := d.open(ctx, env.Nonce, env.Cipher)
	if err != nil {
		return true, fmt.Errorf("decryptor: failed to decrypt historical tx message: %w", err)
	}
	if len(pt) < 64 {
		return true, fmt.Errorf("decryptor: decrypted historical payload shorter than the 64-byte code-hash prefix")
	}
	plaintextJSON := pt[64:]

	*envelopeB64 = string(plaintextJSON)
	tx.Tx.Msg[0] = msg

	if err := d.DecryptTxResponse(ctx, env.Nonce, tx); err != nil {
		return true, err
	}
	return true, nil
}
