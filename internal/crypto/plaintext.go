package crypto

// plaintextService is a pass-through [SecretService] for deployments that
// keep secrets unencrypted in the settings file (development boxes without
// a key file).
type plaintextService struct{}

// Plaintext returns a [SecretService] whose Encrypt and Decrypt both return
// their input unchanged.
func Plaintext() SecretService {
	return plaintextService{}
}

func (plaintextService) Encrypt(plaintext string) (string, error) {
	return plaintext, nil
}

func (plaintextService) Decrypt(ciphertext string) (string, error) {
	return ciphertext, nil
}
