package wallet

import (
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for generated 24-word mnemonics.
const MnemonicEntropyBits = 256

// SeedSize is the length of a BIP-39 derived seed in bytes.
const SeedSize = 64

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// GenerateMnemonic creates a new 24-word BIP-39 recovery phrase.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic reports whether mnemonic is valid per BIP-39: allowed word
// count, every word on the wordlist, correct checksum. Malformed input is
// simply false, never an error.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte seed from a recovery phrase using
// BIP-39 PBKDF2-SHA512. The passphrase is fixed to the empty string: the node
// and every other Ember client derive seeds the same way, so accounts would
// silently diverge if a passphrase were introduced here.
//
// The returned buffer is secret. The caller must Zero it as soon as the
// master key has been derived from it.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return seed, nil
}
