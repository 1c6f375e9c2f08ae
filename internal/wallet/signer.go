package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

// Sign produces a detached ed25519 signature over a 32-byte digest and
// returns it together with the signing public key. Signatures are
// deterministic: the same key and digest always yield the same bytes.
//
// Sign expects the digest from tx.BuildDigest, never raw transaction fields.
func Sign(priv ed25519.PrivateKey, digest []byte) (sig []byte, pub ed25519.PublicKey, err error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidInput, ed25519.PrivateKeySize, len(priv))
	}
	if len(digest) != sha256.Size {
		return nil, nil, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidInput, sha256.Size, len(digest))
	}
	sig = ed25519.Sign(priv, digest)
	pub = priv.Public().(ed25519.PublicKey)
	return sig, pub, nil
}

// Verify reports whether sig is a valid signature by pub over digest.
// Malformed lengths are a hard error; a signature that merely does not match
// is (false, nil). Used by tests and tooling, never by signing paths.
func Verify(pub ed25519.PublicKey, digest, sig []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidInput, ed25519.PublicKeySize, len(pub))
	}
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidInput, ed25519.SignatureSize, len(sig))
	}
	return ed25519.Verify(pub, digest, sig), nil
}
