// Package wallet implements deterministic account derivation and transaction
// signing for the Ember chain. All operations are stateless: every call takes
// the mnemonic (or a key derived from it) explicitly and retains nothing.
//
// Buffer wiping here is best effort. Buffers holding key material are zeroed
// on every exit path, but Go gives no guarantee against copies made by the
// garbage collector or the OS swapping pages to disk. Callers must not keep
// private keys alive beyond the call that produced them.
package wallet

// Zero overwrites every byte of b with zero.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
