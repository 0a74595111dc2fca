package decryptor

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/miscreant/miscreant.go"
	"github.com/stretchr/testify/require"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
	"github.com/scrt-labs/secret-sdk-go/crypto/envelope"
	"github.com/scrt-labs/secret-sdk-go/crypto/txkey"
	"github.com/scrt-labs/secret-sdk-go/seed"
	"github.com/scrt-labs/secret-sdk-go/wiretypes"
)

type fakeIOPubKey struct {
	key [32]byte
}

func (f fakeIOPubKey) Get(ctx context.Context) ([32]byte, error) {
	return f.key, nil
}

func testFixture(t *testing.T) (*Decryptor, [32]byte, [32]byte) {
	t.Helper()

	userSeed, err := seed.New(fill(1))
	require.NoError(t, err)
	userKP, err := seed.KeyPairFromSeed(userSeed)
	require.NoError(t, err)

	ioSeed, err := seed.New(fill(2))
	require.NoError(t, err)
	ioKP, err := seed.KeyPairFromSeed(ioSeed)
	require.NoError(t, err)

	d := New(userKP.Priv, userKP.Pub, fakeIOPubKey{key: ioKP.Pub})
	return d, userKP.Priv, ioKP.Pub
}

func fill(b byte) []byte {
	out := make([]byte, 32)
	for i := range out {
		out[i] = b
	}
	return out
}

// sealForTest seals plaintext under the fixture's key and returns the
// nonce and raw AES-SIV ciphertext (no envelope framing), mirroring what a
// log attribute or tx data field carries on the wire.
func sealForTest(t *testing.T, priv, ioPub [32]byte, plaintext []byte) ([32]byte, []byte) {
	t.Helper()
	envBytes, nonce, err := envelope.Seal(priv, [32]byte{}, ioPub, plaintext)
	require.NoError(t, err)
	parsed, err := envelope.Parse(envBytes)
	require.NoError(t, err)
	return nonce, parsed.Cipher
}

func TestDecryptTxResponseDecryptsDataAndLogAttributes(t *testing.T) {
	require := require.New(t)
	d, priv, ioPub := testFixture(t)

	nonce, cipherData := sealForTest(t, priv, ioPub, []byte(base64.StdEncoding.EncodeToString([]byte("hello"))))
	_, cipherKey := sealForTestWithNonce(t, priv, ioPub, nonce, []byte("action"))
	_, cipherAttr := sealForTestWithNonce(t, priv, ioPub, nonce, []byte("release"))

	tx := &wiretypes.TxResponse{
		Data: hex.EncodeToString(cipherData),
		Logs: []wiretypes.ABCIMessageLog{
			{
				Events: []wiretypes.StringEvent{
					{
						Type: "wasm",
						Attributes: []wiretypes.Attribute{
							{
								Key:   base64.StdEncoding.EncodeToString(cipherKey),
								Value: base64.StdEncoding.EncodeToString(cipherAttr),
							},
						},
					},
				},
			},
		},
	}

	require.NoError(d.DecryptTxResponse(context.Background(), nonce, tx))
	require.Equal("hello", tx.Data)
	require.Equal("action", tx.Logs[0].Events[0].Attributes[0].Key)
	require.Equal("release", tx.Logs[0].Events[0].Attributes[0].Value)
}

// sealForTestWithNonce derives the same tx key as sealForTest but with an
// explicit nonce, so a log attribute can share the tx-wide nonce.
func sealForTestWithNonce(t *testing.T, priv, ioPub [32]byte, nonce [32]byte, plaintext []byte) ([32]byte, []byte) {
	t.Helper()
	key, err := txkey.Derive(priv, ioPub, nonce)
	require.NoError(t, err)
	c, err := miscreant.NewAESCMACSIV(key[:])
	require.NoError(t, err)
	ciphertext, err := c.Seal(nil, plaintext, []byte{})
	require.NoError(t, err)
	return nonce, ciphertext
}

func TestDecryptTxResponseSwallowsBadAttribute(t *testing.T) {
	require := require.New(t)
	d, priv, ioPub := testFixture(t)

	nonce, goodCipher := sealForTest(t, priv, ioPub, []byte(base64.StdEncoding.EncodeToString([]byte("ok"))))

	tx := &wiretypes.TxResponse{
		Data: hex.EncodeToString(goodCipher),
		Logs: []wiretypes.ABCIMessageLog{
			{
				Events: []wiretypes.StringEvent{
					{
						Type: "wasm",
						Attributes: []wiretypes.Attribute{
							{Key: "garbage", Value: "not-valid-base64!!"},
							{Key: "action", Value: base64.StdEncoding.EncodeToString(mustSameNonceCipher(t, priv, ioPub, nonce, "release"))},
						},
					},
				},
			},
		},
	}

	require.NoError(d.DecryptTxResponse(context.Background(), nonce, tx))
	require.Equal("not-valid-base64!!", tx.Logs[0].Events[0].Attributes[0].Value)
	require.Equal("release", tx.Logs[0].Events[0].Attributes[1].Value)
}

func mustSameNonceCipher(t *testing.T, priv, ioPub, nonce [32]byte, plaintext string) []byte {
	t.Helper()
	_, c := sealForTestWithNonce(t, priv, ioPub, nonce, []byte(plaintext))
	return c
}

func TestDecryptTxResponseDecryptsExecError(t *testing.T) {
	require := require.New(t)
	d, priv, ioPub := testFixture(t)

	nonce, cipher := sealForTest(t, priv, ioPub, []byte("unauthorized"))
	rawLog := "contract failed: encrypted: " + base64.StdEncoding.EncodeToString(cipher) + ": failed to execute message; message index: 0"

	tx := &wiretypes.TxResponse{RawLog: rawLog}
	require.NoError(d.DecryptTxResponse(context.Background(), nonce, tx))
	require.Contains(tx.RawLog, "encrypted: unauthorized: failed to execute")
}

func TestDecryptQueryErrorHTTP500(t *testing.T) {
	require := require.New(t)
	d, priv, ioPub := testFixture(t)

	inner := base64.StdEncoding.EncodeToString([]byte("bad query"))
	nonce, cipher := sealForTest(t, priv, ioPub, []byte(inner))

	serverErr := apierrors.ServerError{
		Status: 500,
		Body:   "contract failed: encrypted: " + base64.StdEncoding.EncodeToString(cipher) + " (HTTP 500)",
	}

	err := d.DecryptQueryError(context.Background(), nonce, serverErr)
	require.Contains(err.Error(), "bad query")
}

func TestDecryptQueryErrorNoMatchPassesThrough(t *testing.T) {
	require := require.New(t)
	d, _, _ := testFixture(t)

	serverErr := apierrors.ServerError{Status: 500, Body: "some other failure"}
	err := d.DecryptQueryError(context.Background(), [32]byte{}, serverErr)
	require.Equal(serverErr, err)
}

func TestDecryptHistoricalTxNotOursIsUntouched(t *testing.T) {
	require := require.New(t)
	d, _, _ := testFixture(t)

	otherPub := [32]byte{9, 9, 9}
	envBytes := append(append(make([]byte, 0, 64), make([]byte, 32)...), otherPub[:]...)
	envBytes = append(envBytes, []byte("ciphertext")...)

	tx := &wiretypes.TxResponse{
		Tx: &wiretypes.TxValue{
			Msg: []wiretypes.Msg{
				{
					Type: wiretypes.MsgTypeExecuteContract,
					ExecuteContract: &wiretypes.MsgExecuteContract{
						Msg: base64.StdEncoding.EncodeToString(envBytes),
					},
				},
			},
		},
	}

	mine, err := d.DecryptHistoricalTx(context.Background(), tx)
	require.NoError(err)
	require.False(mine)
	require.Equal(base64.StdEncoding.EncodeToString(envBytes), tx.Tx.Msg[0].ExecuteContract.Msg)
}

func TestDecryptHistoricalTxOursIsRestored(t *testing.T) {
	require := require.New(t)
	d, priv, ioPub := testFixture(t)

	codeHash := "aa11223344556677889900112233445566778899001122334455667788990011"
	payload := []byte(codeHash + `{"release":{}}`)

	envBytes, nonce, err := envelope.Seal(priv, d.Pub, ioPub, payload)
	require.NoError(err)

	tx := &wiretypes.TxResponse{
		Tx: &wiretypes.TxValue{
			Msg: []wiretypes.Msg{
				{
					Type: wiretypes.MsgTypeExecuteContract,
					ExecuteContract: &wiretypes.MsgExecuteContract{
						Msg: base64.StdEncoding.EncodeToString(envBytes),
					},
				},
			},
		},
	}

	mine, err := d.DecryptHistoricalTx(context.Background(), tx)
	require.NoError(err)
	require.True(mine)
	require.Equal(`{"release":{}}`, tx.Tx.Msg[0].ExecuteContract.Msg)
	_ = nonce
}
