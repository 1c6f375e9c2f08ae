package wallet

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants. Full path: m/44'/60'/0'/0/index.
//
// Coin type 60 is Ethereum's registered number, not Ember's. It is kept on
// purpose: every existing Ember account was derived with it, and the node's
// verifier only cares that client and chain agree. Changing it would orphan
// all previously derived accounts.
const (
	purposeBIP44   = bip32.FirstHardenedChild + 44
	coinTypeEmber  = bip32.FirstHardenedChild + 60
	accountDefault = bip32.FirstHardenedChild + 0
	changeExternal = 0
)

// MaxAccountIndex is the highest valid account index. Indices at or above the
// hardened boundary would change the meaning of the final path segment.
const MaxAccountIndex = bip32.FirstHardenedChild - 1

var ErrInvalidIndex = errors.New("account index out of range")

// Account is a single derived keypair with its address. Derivation is pure:
// the same mnemonic and index always produce the same Account.
//
// PrivateKey is live signing material. Whoever holds the Account must call
// Wipe as soon as the key has served its purpose.
type Account struct {
	Index      uint32
	Address    string
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// Wipe zeroes the account's private key. Safe to call more than once.
func (a *Account) Wipe() {
	Zero(a.PrivateKey)
}

// HDKey wraps a BIP-32 extended key.
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey builds the BIP-32 master key from a 64-byte seed. The seed is
// only read; zeroing it afterwards is the caller's job.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveAccount derives the ed25519 account at m/44'/60'/0'/0/index.
//
// The 32-byte BIP-32 child scalar is used as the ed25519 keypair seed. That
// two-step construction (secp256k1 path derivation feeding ed25519 keygen)
// is what the node's verifier expects; neither half can change independently.
func (k *HDKey) DeriveAccount(index uint32) (*Account, error) {
	if index > MaxAccountIndex {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidIndex, index, uint32(MaxAccountIndex))
	}

	child, err := k.derivePath(purposeBIP44, coinTypeEmber, accountDefault, changeExternal, index)
	if err != nil {
		return nil, fmt.Errorf("derive index %d: %w", index, err)
	}
	defer zeroKey(child)

	scalar := privateKeyBytes(child)
	defer Zero(scalar)
	if len(scalar) != ed25519.SeedSize {
		return nil, fmt.Errorf("derive index %d: child key is %d bytes, want %d", index, len(scalar), ed25519.SeedSize)
	}

	priv := ed25519.NewKeyFromSeed(scalar)
	pub := priv.Public().(ed25519.PublicKey)

	addr, err := AddressOf(pub)
	if err != nil {
		Zero(priv)
		return nil, err
	}

	return &Account{
		Index:      index,
		Address:    addr,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// Wipe zeroes the extended key material.
func (k *HDKey) Wipe() {
	zeroKey(k.key)
}

// derivePath walks the given indices, zeroing each intermediate key once its
// child exists. The receiver's own key is left intact.
func (k *HDKey) derivePath(indices ...uint32) (*bip32.Key, error) {
	current := k.key
	for depth, idx := range indices {
		child, err := current.NewChildKey(idx)
		if current != k.key {
			zeroKey(current)
		}
		if err != nil {
			return nil, fmt.Errorf("depth %d: %w", depth, err)
		}
		current = child
	}
	return current, nil
}

// privateKeyBytes returns a copy of the raw 32-byte private scalar.
// bip32 stores private keys as 32 bytes, or 33 with a leading zero.
func privateKeyBytes(k *bip32.Key) []byte {
	raw := k.Key
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

func zeroKey(k *bip32.Key) {
	Zero(k.Key)
	Zero(k.ChainCode)
}
