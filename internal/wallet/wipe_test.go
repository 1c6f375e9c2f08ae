package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZero(t *testing.T) {
	t.Run("zeroes every byte", func(t *testing.T) {
		b := []byte{0xFF, 0x01, 0x80, 0x7F}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0}, b)
	})

	t.Run("handles nil and empty", func(t *testing.T) {
		Zero(nil)
		Zero([]byte{})
	})
}

func TestAccountWipe(t *testing.T) {
	t.Run("zeroes the private key", func(t *testing.T) {
		master := testMasterKey(t)
		acct, err := master.DeriveAccount(0)
		require.NoError(t, err)

		acct.Wipe()
		for i, b := range acct.PrivateKey {
			require.Zero(t, b, "private key byte %d not wiped", i)
		}
	})

	t.Run("can be called multiple times", func(t *testing.T) {
		master := testMasterKey(t)
		acct, err := master.DeriveAccount(0)
		require.NoError(t, err)

		acct.Wipe()
		acct.Wipe()
		acct.Wipe()
	})
}
