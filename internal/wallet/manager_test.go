package wallet

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yolodolo42/emberwallet/internal/tx"
)

// Pinned signing scenario: test vector mnemonic, index 0, the fields below.
// The signature is deterministic, so it can be compared byte for byte.
const (
	vectorToAddress    = "0x0000000000000000000000000000000000000000"
	vectorSignatureHex = "0x7939b36cbeeb684a3488f2cea29bba41ca1ea24736c8a0243547e5156808210b74e6e2bfaf2bc1dc247dd97ae10bcc0a46dcbcfb1ba4693a211ff6afda9de20d"
)

func vectorFields() tx.Fields {
	return tx.Fields{
		From:      vectorAddress0,
		To:        vectorToAddress,
		Amount:    100,
		Nonce:     0,
		Timestamp: 1700000000,
		GasPrice:  2,
		GasLimit:  21000,
	}
}

func TestManagerDeriveAccount(t *testing.T) {
	manager := NewManager()

	t.Run("matches the pinned vector", func(t *testing.T) {
		acct, err := manager.DeriveAccount(testVectorMnemonic, 0)
		require.NoError(t, err)
		defer acct.Wipe()
		assert.Equal(t, vectorAddress0, acct.Address)
	})

	t.Run("repeated calls yield identical accounts", func(t *testing.T) {
		a, err := manager.DeriveAccount(testVectorMnemonic, 2)
		require.NoError(t, err)
		defer a.Wipe()
		b, err := manager.DeriveAccount(testVectorMnemonic, 2)
		require.NoError(t, err)
		defer b.Wipe()

		assert.Equal(t, a.Address, b.Address)
		assert.Equal(t, a.PublicKey, b.PublicKey)
	})

	t.Run("rejects invalid mnemonic before any derivation", func(t *testing.T) {
		_, err := manager.DeriveAccount("definitely not twelve valid words", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidMnemonic)
	})

	t.Run("rejects out-of-range index", func(t *testing.T) {
		_, err := manager.DeriveAccount(testVectorMnemonic, uint32(MaxAccountIndex)+1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndex)
	})
}

func TestManagerSignTransaction(t *testing.T) {
	manager := NewManager()

	t.Run("produces the pinned signature", func(t *testing.T) {
		signed, err := manager.SignTransaction(testVectorMnemonic, 0, vectorFields())
		require.NoError(t, err)

		assert.Equal(t, vectorSignatureHex, signed.SignatureHex)
		assert.Equal(t, "0x"+vectorPubKey0, signed.PublicKeyHex)
		assert.Equal(t, vectorFields(), signed.Fields)
	})

	t.Run("signature verifies against the digest", func(t *testing.T) {
		signed, err := manager.SignTransaction(testVectorMnemonic, 0, vectorFields())
		require.NoError(t, err)

		sig, err := hexutil.Decode(signed.SignatureHex)
		require.NoError(t, err)
		pub, err := hexutil.Decode(signed.PublicKeyHex)
		require.NoError(t, err)

		digest := tx.BuildDigest(vectorFields())
		ok, err := Verify(pub, digest[:], sig)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("changing any field changes the signature", func(t *testing.T) {
		base, err := manager.SignTransaction(testVectorMnemonic, 0, vectorFields())
		require.NoError(t, err)

		bumped := vectorFields()
		bumped.Nonce = 1
		other, err := manager.SignTransaction(testVectorMnemonic, 0, bumped)
		require.NoError(t, err)

		assert.NotEqual(t, base.SignatureHex, other.SignatureHex)
	})

	t.Run("mismatched sender is a hard stop", func(t *testing.T) {
		fields := vectorFields()
		fields.From = vectorAddress1 // index 1's address, but signing with index 0

		_, err := manager.SignTransaction(testVectorMnemonic, 0, fields)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAddressMismatch)
	})

	t.Run("wipes the private key on success", func(t *testing.T) {
		acct, err := manager.DeriveAccount(testVectorMnemonic, 0)
		require.NoError(t, err)
		priv := acct.PrivateKey

		_, err = manager.signWithAccount(acct, vectorFields())
		require.NoError(t, err)

		for i, b := range priv {
			require.Zero(t, b, "private key byte %d not wiped", i)
		}
	})

	t.Run("wipes the private key on mismatch error too", func(t *testing.T) {
		acct, err := manager.DeriveAccount(testVectorMnemonic, 0)
		require.NoError(t, err)
		priv := acct.PrivateKey

		fields := vectorFields()
		fields.From = vectorAddress1
		_, err = manager.signWithAccount(acct, fields)
		require.Error(t, err)

		for i, b := range priv {
			require.Zero(t, b, "private key byte %d not wiped", i)
		}
	})
}

func TestManagerDiscoverAccounts(t *testing.T) {
	manager := NewManager()

	// usedAddresses maps the vector mnemonic's addresses at indices 0, 2
	// and 5 to simulate on-chain history.
	usedAddresses := func(t *testing.T) map[string]bool {
		t.Helper()
		used := make(map[string]bool)
		for _, i := range []uint32{0, 2, 5} {
			acct, err := manager.DeriveAccount(testVectorMnemonic, i)
			require.NoError(t, err)
			acct.Wipe()
			used[acct.Address] = true
		}
		return used
	}

	t.Run("finds used accounts and stops after the empty streak", func(t *testing.T) {
		used := usedAddresses(t)
		var queried int
		exists := func(ctx context.Context, address string) (bool, error) {
			queried++
			return used[address], nil
		}

		found, err := manager.DiscoverAccounts(context.Background(), testVectorMnemonic, exists, 50, 3)
		require.NoError(t, err)

		require.Len(t, found, 3)
		assert.Equal(t, uint32(0), found[0].Index)
		assert.Equal(t, uint32(2), found[1].Index)
		assert.Equal(t, uint32(5), found[2].Index)

		// Last hit at 5, streak of 3 misses at 6,7,8, then stop.
		assert.Equal(t, 9, queried)
	})

	t.Run("honors maxScan", func(t *testing.T) {
		used := usedAddresses(t)
		var queried int
		exists := func(ctx context.Context, address string) (bool, error) {
			queried++
			return used[address], nil
		}

		found, err := manager.DiscoverAccounts(context.Background(), testVectorMnemonic, exists, 2, 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, 2, queried)
	})

	t.Run("returns no key material", func(t *testing.T) {
		used := usedAddresses(t)
		exists := func(ctx context.Context, address string) (bool, error) {
			return used[address], nil
		}

		found, err := manager.DiscoverAccounts(context.Background(), testVectorMnemonic, exists, 10, 3)
		require.NoError(t, err)
		for _, d := range found {
			assert.NotEmpty(t, d.Address)
		}
	})

	t.Run("surfaces existsFn errors with the failing index", func(t *testing.T) {
		used := usedAddresses(t)
		calls := 0
		exists := func(ctx context.Context, address string) (bool, error) {
			if calls++; calls == 5 { // fails at index 4
				return false, assert.AnError
			}
			return used[address], nil
		}

		found, err := manager.DiscoverAccounts(context.Background(), testVectorMnemonic, exists, 50, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "index 4")
		// Indices 0 and 2 were already found before the failure.
		assert.Len(t, found, 2)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		exists := func(ctx context.Context, address string) (bool, error) {
			cancel() // cancel during the first lookup
			return false, nil
		}

		_, err := manager.DiscoverAccounts(ctx, testVectorMnemonic, exists, 50, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects invalid mnemonic", func(t *testing.T) {
		exists := func(ctx context.Context, address string) (bool, error) {
			t.Fatal("existsFn must not be called for an invalid mnemonic")
			return false, nil
		}
		_, err := manager.DiscoverAccounts(context.Background(), "bad phrase", exists, 10, 3)
		assert.ErrorIs(t, err, ErrInvalidMnemonic)
	})
}
