package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scrt-labs/secret-sdk-go/crypto/txkey"
)

func testKeys() (priv, pub, ioPriv, ioPub [32]byte) {
	priv[0], priv[1] = 1, 2
	pub[0], pub[1] = 3, 4
	ioPriv[0], ioPriv[1] = 5, 6
	ioPub[0], ioPub[1] = 7, 8
	return
}

func TestSealOpenRoundTrip(t *testing.T) {
	require := require.New(t)

	priv, pub, _, ioPub := testKeys()
	codeHash := "abababababababababababababababababababababababababababababab01"
	payload := []byte(`{"release":{}}`)
	plaintext := append([]byte(codeHash), payload...)

	raw, nonce, err := Seal(priv, pub, ioPub, plaintext)
	require.NoError(err)

	e, err := Parse(raw)
	require.NoError(err)
	require.Equal(nonce, e.Nonce)
	require.Equal(pub, e.SenderPub)

	opened, err := Open(priv, ioPub, e.Nonce, e.Cipher)
	require.NoError(err)
	require.Equal(plaintext, opened)
}

func TestEnvelopeLayout(t *testing.T) {
	require := require.New(t)

	priv, pub, _, ioPub := testKeys()

	seen := map[[NonceSize]byte]bool{}
	for i := 0; i < 64; i++ {
		raw, nonce, err := Seal(priv, pub, ioPub, []byte("x"))
		require.NoError(err)

		e, err := Parse(raw)
		require.NoError(err)
		require.Equal(pub, e.SenderPub, "out[32..64] must equal sender's public key")
		require.False(seen[nonce], "nonce collided across calls")
		seen[nonce] = true
	}
}

func TestEmptyOpen(t *testing.T) {
	require := require.New(t)

	var priv, ioPub, nonce [32]byte
	pt, err := Open(priv, ioPub, nonce, []byte{})
	require.NoError(err)
	require.Empty(pt)
}

func TestOpenFailsOnTamperedCiphertext(t *testing.T) {
	require := require.New(t)

	priv, pub, _, ioPub := testKeys()
	raw, _, err := Seal(priv, pub, ioPub, []byte("hello"))
	require.NoError(err)

	e, err := Parse(raw)
	require.NoError(err)
	e.Cipher[0] ^= 0xff

	_, err = Open(priv, ioPub, e.Nonce, e.Cipher)
	require.Error(err)
}

func TestParseRejectsShortInput(t *testing.T) {
	require := require.New(t)

	_, err := Parse(make([]byte, HeaderSize-1))
	require.Error(err)
}

func TestCodeHashPrefixing(t *testing.T) {
	require := require.New(t)

	priv, pub, _, ioPub := testKeys()
	codeHash := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	require.Len(codeHash, 64)
	plaintext := append([]byte(codeHash), []byte(`{"foo":1}`)...)

	raw, nonce, err := Seal(priv, pub, ioPub, plaintext)
	require.NoError(err)
	e, err := Parse(raw)
	require.NoError(err)

	opened, err := Open(priv, ioPub, nonce, e.Cipher)
	require.NoError(err)
	require.Equal(codeHash, string(opened[:64]))
}

// sanity check that txkey.Derive, which Seal and Open both call, yields the
// same key for the same inputs.
func TestDeriveUsedConsistently(t *testing.T) {
	require := require.New(t)
	var priv, ioPub, nonce [32]byte
	priv[0] = 9
	ioPub[0] = 9 // the X25519 base point; all-zero is rejected as low-order
	k1, err := txkey.Derive(priv, ioPub, nonce)
	require.NoError(err)
	k2, err := txkey.Derive(priv, ioPub, nonce)
	require.NoError(err)
	require.Equal(k1, k2)
}
