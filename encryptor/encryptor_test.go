package encryptor

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scrt-labs/secret-sdk-go/crypto/envelope"
	"github.com/scrt-labs/secret-sdk-go/seed"
)

type fakeCodeHashes struct {
	byID   map[uint64]string
	byAddr map[string]string
}

func (f fakeCodeHashes) ByCodeID(ctx context.Context, id uint64) (string, error) {
	return f.byID[id], nil
}

func (f fakeCodeHashes) ByAddress(ctx context.Context, addr string) (string, error) {
	return f.byAddr[addr], nil
}

type fakeIOPubKey struct {
	key [32]byte
}

func (f fakeIOPubKey) Get(ctx context.Context) ([32]byte, error) {
	return f.key, nil
}

func newTestEncryptor(t *testing.T) (*Encryptor, [32]byte, [32]byte) {
	t.Helper()
	s, err := seed.New(make([]byte, 32))
	require.NoError(t, err)
	kp, err := seed.KeyPairFromSeed(s)
	require.NoError(t, err)

	ioKP, err := seed.KeyPairFromSeed(mustSeed(t, 7))
	require.NoError(t, err)

	e := New(kp.Priv, kp.Pub,
		fakeCodeHashes{
			byID:   map[uint64]string{42: "aa11223344556677889900112233445566778899001122334455667788990011"},
			byAddr: map[string]string{"secret1contract": "bb11223344556677889900112233445566778899001122334455667788990011"},
		},
		fakeIOPubKey{key: ioKP.Pub},
	)
	return e, kp.Priv, kp.Pub
}

func mustSeed(t *testing.T, fill byte) seed.Seed {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	s, err := seed.New(raw)
	require.NoError(t, err)
	return s
}

func TestEncryptExecuteProducesValidEnvelope(t *testing.T) {
	require := require.New(t)
	e, _, pub := newTestEncryptor(t)

	sealed, err := e.EncryptExecute(context.Background(), "secret1contract", []byte(`{"transfer":{"amount":"1"}}`))
	require.NoError(err)
	require.Len(sealed.CodeHash, 64)

	raw, err := base64.StdEncoding.DecodeString(sealed.EnvelopeBase64)
	require.NoError(err)

	env, err := envelope.Parse(raw)
	require.NoError(err)
	require.Equal(sealed.Nonce, env.Nonce)
	require.Equal(pub, env.SenderPub)
}

func TestEncryptInstantiateResolvesByCodeID(t *testing.T) {
	require := require.New(t)
	e, _, _ := newTestEncryptor(t)

	sealed, err := e.EncryptInstantiate(context.Background(), 42, []byte(`{}`))
	require.NoError(err)
	require.NotEmpty(sealed.CodeHash)
}

func TestEncryptQueryUsesHexPath(t *testing.T) {
	require := require.New(t)
	e, _, _ := newTestEncryptor(t)

	sealed, pathHex, err := e.EncryptQuery(context.Background(), "secret1contract", []byte(`{"balance":{}}`))
	require.NoError(err)

	decoded, err := hex.DecodeString(pathHex)
	require.NoError(err)
	require.Equal(sealed.EnvelopeBase64, string(decoded))

	// The hex string must decode straight to the base64 envelope text, not
	// to the raw envelope bytes underneath it.
	raw, err := base64.StdEncoding.DecodeString(sealed.EnvelopeBase64)
	require.NoError(err)
	require.NotEqual(raw, decoded)
}

func TestEncryptTwoCallsProduceDistinctNonces(t *testing.T) {
	require := require.New(t)
	e, _, _ := newTestEncryptor(t)

	s1, err := e.EncryptExecute(context.Background(), "secret1contract", []byte(`{}`))
	require.NoError(err)
	s2, err := e.EncryptExecute(context.Background(), "secret1contract", []byte(`{}`))
	require.NoError(err)
	require.NotEqual(s1.Nonce, s2.Nonce)
}
