package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamedKeysAreDistinct(t *testing.T) {
	require := require.New(t)

	require.NotEqual(Alice.KeyPair.Pub, Bob.KeyPair.Pub)
	require.NotEqual(Alice.Signer.PubKey(), Bob.Signer.PubKey())
	require.NotEqual(Charlie.KeyPair.Pub, Dave.KeyPair.Pub)
}

func TestNamedKeysAreDeterministic(t *testing.T) {
	require := require.New(t)

	again := newTestKey("alice")
	require.Equal(Alice.KeyPair.Pub, again.KeyPair.Pub)
	require.Equal(Alice.Signer.PubKey(), again.Signer.PubKey())
}

func TestTestAccountsIndexesAllKeys(t *testing.T) {
	require := require.New(t)

	require.Len(TestAccounts, 4)
	require.Equal(Alice.KeyPair.Pub, TestAccounts["alice"].KeyPair.Pub)
}
