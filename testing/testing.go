// Package testing provides a handful of deterministic named test keys for
// Secret Network's single account kind: secp256k1 for transaction signing,
// X25519 for the transparent-encryption identity derived from the same
// seed material.
package testing

import (
	"crypto/sha256"

	"github.com/scrt-labs/secret-sdk-go/seed"
	"github.com/scrt-labs/secret-sdk-go/signing"
)

// TestKey bundles everything a test needs to act as one participant: the
// secp256k1 signer for transactions and the X25519 keypair for sealing and
// opening contract messages.
type TestKey struct {
	Seed    seed.Seed
	KeyPair seed.KeyPair
	Signer  *signing.LocalSigner
}

func newTestKey(label string) TestKey {
	digest := sha256.Sum256([]byte("secret-sdk-go/test-keys: " + label))

	s, err := seed.New(digest[:])
	if err != nil {
		panic(err)
	}
	kp, err := seed.KeyPairFromSeed(s)
	if err != nil {
		panic(err)
	}
	signer, err := signing.NewLocalSigner(digest[:])
	if err != nil {
		panic(err)
	}

	return TestKey{Seed: s, KeyPair: kp, Signer: signer}
}

var (
	// Alice is test key A.
	Alice = newTestKey("alice")
	// Bob is test key B.
	Bob = newTestKey("bob")
	// Charlie is test key C.
	Charlie = newTestKey("charlie")
	// Dave is test key D.
	Dave = newTestKey("dave")

	// TestAccounts contains all named test keys, indexed by label.
	TestAccounts = map[string]TestKey{
		"alice":   Alice,
		"bob":     Bob,
		"charlie": Charlie,
		"dave":    Dave,
	}
)
