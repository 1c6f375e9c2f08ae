package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/yolodolo42/emberwallet/internal/tx"
)

var ErrAddressMismatch = errors.New("derived address does not match transaction sender")

// Manager orchestrates derivation, signing and account discovery. It holds no
// state and performs no caching; concurrent calls are safe because every call
// works on its own buffers.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// DeriveAccount validates the mnemonic and derives the account at the given
// index. The seed and master key are wiped before returning; the Account's
// private key is handed to the caller, who must Wipe it after use.
func (m *Manager) DeriveAccount(mnemonic string, index uint32) (*Account, error) {
	master, err := m.masterKey(mnemonic)
	if err != nil {
		return nil, err
	}
	defer master.Wipe()
	return master.DeriveAccount(index)
}

// SignTransaction derives the account at index, checks it against f.From,
// builds the canonical digest and signs it. The private key and digest are
// wiped before returning on every path.
//
// The From check is deliberate: signing with the wrong account would either
// move funds from an unintended address or be rejected on chain, so a
// mismatch is a hard stop rather than a warning.
func (m *Manager) SignTransaction(mnemonic string, index uint32, f tx.Fields) (*tx.Signed, error) {
	acct, err := m.DeriveAccount(mnemonic, index)
	if err != nil {
		return nil, err
	}
	return m.signWithAccount(acct, f)
}

// signWithAccount consumes the account: its private key is wiped before
// returning, success or not.
func (m *Manager) signWithAccount(acct *Account, f tx.Fields) (*tx.Signed, error) {
	defer acct.Wipe()

	if acct.Address != f.From {
		return nil, fmt.Errorf("%w: derived %s, transaction from %s", ErrAddressMismatch, acct.Address, f.From)
	}

	digest := tx.BuildDigest(f)
	defer Zero(digest[:])

	sig, pub, err := Sign(acct.PrivateKey, digest[:])
	if err != nil {
		return nil, err
	}

	return &tx.Signed{
		Fields:       f,
		SignatureHex: hexutil.Encode(sig),
		PublicKeyHex: hexutil.Encode(pub),
	}, nil
}

// Discovered is an account found during discovery. No key material: callers
// re-derive by index when they need to sign.
type Discovered struct {
	Index   uint32 `json:"index"`
	Address string `json:"address"`
}

// ExistsFunc reports whether an address has on-chain history. Typically a
// thin wrapper over the node's account lookup.
type ExistsFunc func(ctx context.Context, address string) (bool, error)

// DiscoverAccounts scans indices 0..maxScan-1 in order, calling exists for
// each derived address, and stops early after maxEmptyStreak consecutive
// misses. The scan is strictly sequential because the early-stop decision
// depends on the order of results.
//
// This is a heuristic, not a guarantee: an account used beyond the empty
// streak cutoff is silently omitted. An exists error aborts the scan and is
// returned wrapped with the failing index, along with whatever was found
// before it; retrying is the caller's concern.
func (m *Manager) DiscoverAccounts(ctx context.Context, mnemonic string, exists ExistsFunc, maxScan, maxEmptyStreak int) ([]Discovered, error) {
	master, err := m.masterKey(mnemonic)
	if err != nil {
		return nil, err
	}
	defer master.Wipe()

	var found []Discovered
	streak := 0
	for i := 0; i < maxScan; i++ {
		if maxEmptyStreak > 0 && streak >= maxEmptyStreak {
			break
		}
		if err := ctx.Err(); err != nil {
			return found, err
		}

		acct, err := master.DeriveAccount(uint32(i))
		if err != nil {
			return found, fmt.Errorf("derive index %d: %w", i, err)
		}
		addr := acct.Address
		acct.Wipe()

		ok, err := exists(ctx, addr)
		if err != nil {
			return found, fmt.Errorf("index %d: %w", i, err)
		}
		if ok {
			found = append(found, Discovered{Index: uint32(i), Address: addr})
			streak = 0
		} else {
			streak++
		}
	}
	return found, nil
}

// masterKey validates the mnemonic and builds the master key, wiping the
// intermediate seed on every path.
func (m *Manager) masterKey(mnemonic string) (*HDKey, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := SeedFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	defer Zero(seed)
	return NewMasterKey(seed)
}
