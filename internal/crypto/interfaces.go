package crypto

// Sealer encrypts small values for storage at rest. Sealed values are
// printable strings and carry their own nonce.
type Sealer interface {
	// Seal encrypts plaintext and returns its sealed form.
	Seal(plaintext []byte) (string, error)

	// Open reverses [Sealer.Seal]. It fails with [ErrNotSealed] for a
	// value Seal did not produce and with [ErrOpenFailed] when the value
	// was sealed with another key or was modified.
	Open(sealed string) ([]byte, error)
}
