package seed

import (
	"crypto/sha256"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// FromMnemonic derives a Seed from a BIP-39 mnemonic and optional passphrase,
// mirroring the convenience constructor the JS client exposes
// (Wallet.fromMnemonic) that the distilled specification does not name but
// original_source retains. The mnemonic is expanded to a 64-byte seed via
// PBKDF2 (bip39.NewSeedWithErrorChecking) and folded down to 32 bytes with
// SHA-256, since the X25519 identity requires exactly 32 bytes of entropy.
func FromMnemonic(mnemonic, passphrase string) (Seed, error) {
	var s Seed
	if !bip39.IsMnemonicValid(mnemonic) {
		return s, fmt.Errorf("seed: invalid mnemonic")
	}
	expanded, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return s, fmt.Errorf("seed: failed to expand mnemonic: %w", err)
	}
	digest := sha256.Sum256(expanded)
	return New(digest[:])
}

// GenerateMnemonic produces a fresh BIP-39 mnemonic with 256 bits of entropy.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("seed: failed to generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}
