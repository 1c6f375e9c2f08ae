// Package tx defines Ember transaction fields and their canonical signing
// digest.
package tx

import (
	"crypto/sha256"
	"encoding/binary"
)

// DigestSize is the byte length of a signing digest.
const DigestSize = sha256.Size

// Fields are the transaction fields covered by the signature. Amounts are
// whole EMB units; the chain has no sub-unit precision.
type Fields struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	Nonce     uint64 `json:"nonce"`
	Timestamp uint64 `json:"timestamp"`
	GasPrice  uint64 `json:"gasPrice"`
	GasLimit  uint64 `json:"gasLimit"`
}

// Signed is a transaction plus its detached signature, ready for submission.
// Values are immutable once produced; submission and confirmation tracking
// belong to the chain client.
type Signed struct {
	Fields
	SignatureHex string `json:"signature"`
	PublicKeyHex string `json:"publicKey"`
}

// BuildDigest serializes the fields into the canonical byte layout and hashes
// it with SHA-256. Layout: UTF-8 bytes of From, UTF-8 bytes of To, then
// amount, timestamp, nonce, gasPrice, gasLimit as 8-byte little-endian
// unsigned integers, in exactly that order.
//
// The node's signature verifier reproduces this layout byte for byte. Any
// change to field order, integer width, or endianness invalidates every
// signature this wallet produces.
func BuildDigest(f Fields) [DigestSize]byte {
	buf := make([]byte, 0, len(f.From)+len(f.To)+5*8)
	buf = append(buf, f.From...)
	buf = append(buf, f.To...)
	buf = binary.LittleEndian.AppendUint64(buf, f.Amount)
	buf = binary.LittleEndian.AppendUint64(buf, f.Timestamp)
	buf = binary.LittleEndian.AppendUint64(buf, f.Nonce)
	buf = binary.LittleEndian.AppendUint64(buf, f.GasPrice)
	buf = binary.LittleEndian.AppendUint64(buf, f.GasLimit)

	digest := sha256.Sum256(buf)

	// The buffer carries no key material, but it is part of the signing
	// input; wipe it along with everything else on the signing path.
	for i := range buf {
		buf[i] = 0
	}
	return digest
}
