package tx

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pinned digest for the fields below. Recomputed independently from the
// canonical layout; if this test breaks, signatures no longer verify on chain.
const (
	vectorDigestHex       = "d012c20b3b5d0f808eaaf22e121100c573a680943081ec84ff47e76e01454cc0"
	vectorDigestNonce1Hex = "5a962d9bdd973b951f7bbe428e9fc3dd12a56710decf2d3df710812a19ed867c"
)

func vectorFields() Fields {
	return Fields{
		From:      "0x05d115d3d33f5cd1110a69c55748776a8b626910",
		To:        "0x0000000000000000000000000000000000000000",
		Amount:    100,
		Nonce:     0,
		Timestamp: 1700000000,
		GasPrice:  2,
		GasLimit:  21000,
	}
}

func TestBuildDigest(t *testing.T) {
	t.Run("matches the pinned vector", func(t *testing.T) {
		digest := BuildDigest(vectorFields())
		assert.Equal(t, vectorDigestHex, hex.EncodeToString(digest[:]))
	})

	t.Run("nonce bump matches its pinned vector", func(t *testing.T) {
		f := vectorFields()
		f.Nonce = 1
		digest := BuildDigest(f)
		assert.Equal(t, vectorDigestNonce1Hex, hex.EncodeToString(digest[:]))
	})

	t.Run("is stable across calls", func(t *testing.T) {
		a := BuildDigest(vectorFields())
		b := BuildDigest(vectorFields())
		assert.Equal(t, a, b)
	})

	t.Run("every field is covered", func(t *testing.T) {
		base := BuildDigest(vectorFields())

		mutations := map[string]func(*Fields){
			"from":      func(f *Fields) { f.From = "0xffd115d3d33f5cd1110a69c55748776a8b626910" },
			"to":        func(f *Fields) { f.To = "0x0000000000000000000000000000000000000001" },
			"amount":    func(f *Fields) { f.Amount++ },
			"nonce":     func(f *Fields) { f.Nonce++ },
			"timestamp": func(f *Fields) { f.Timestamp++ },
			"gasPrice":  func(f *Fields) { f.GasPrice++ },
			"gasLimit":  func(f *Fields) { f.GasLimit++ },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				f := vectorFields()
				mutate(&f)
				assert.NotEqual(t, base, BuildDigest(f), "mutating %s must change the digest", name)
			})
		}
	})

	t.Run("from and to are order sensitive", func(t *testing.T) {
		f := vectorFields()
		swapped := f
		swapped.From, swapped.To = f.To, f.From
		assert.NotEqual(t, BuildDigest(f), BuildDigest(swapped))
	})

	t.Run("zero-value fields still digest", func(t *testing.T) {
		// Empty addresses plus five zero integers: 40 zero bytes in.
		zeros := make([]byte, 40)
		want := sha256.Sum256(zeros)

		digest := BuildDigest(Fields{})
		require.Len(t, digest[:], DigestSize)
		assert.Equal(t, want, digest)
	})
}
