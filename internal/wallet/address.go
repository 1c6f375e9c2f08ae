package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressLength is the raw byte length of an Ember address.
const AddressLength = 20

// AddressOf maps an ed25519 public key to its Ember address: "0x" plus the
// lowercase hex of the first 20 bytes of SHA-256(pubkey). The node derives
// addresses identically, so this transform is a wire contract.
func AddressOf(pub []byte) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidInput, ed25519.PublicKeySize, len(pub))
	}
	sum := sha256.Sum256(pub)
	return hexutil.Encode(sum[:AddressLength]), nil
}
