package crypto

// SecretService handles the symmetric cryptography for secrets embedded in
// settings files (currently database passwords). It knows nothing about the
// settings tree itself.
//
// Scheme:
//
//	blob = salt(16) ‖ nonce(12) ‖ AES-256-GCM(plaintext)
//	key  = Argon2id(passphrase, salt)
//
// The blob is stored base64-encoded in the settings file; the passphrase
// lives in a root-readable key file on the deployed host.
type SecretService interface {
	// Encrypt seals plaintext under the service passphrase and returns the
	// base64-encoded blob. Used by operator tooling that writes settings
	// files, and by tests.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a base64-encoded blob produced by Encrypt and returns
	// the plaintext. Fails if the blob is malformed or the passphrase does
	// not match (authentication-tag mismatch).
	Decrypt(ciphertext string) (string, error)
}
