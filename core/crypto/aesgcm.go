package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AESGCM seals payloads with AES in Galois/Counter Mode.
// The room key bytes are used directly as the AES key.
type AESGCM struct{}

// Name returns the algorithm label.
func (AESGCM) Name() string {
	return AlgorithmAESGCM
}

// Encrypt seals plaintext and returns the ciphertext (with appended tag) and IV.
func (c AESGCM) Encrypt(key string, plaintext []byte) ([]byte, []byte, error) {
	gcm, err := c.aead(key)
	if err != nil {
		return nil, nil, err
	}

	iv, err := newIV()
	if err != nil {
		return nil, nil, err
	}

	return gcm.Seal(nil, iv, plaintext, nil), iv, nil
}

// Decrypt opens ciphertext. It returns ErrAuthentication on any mismatch.
func (c AESGCM) Decrypt(iv, ciphertext []byte, key string) ([]byte, error) {
	gcm, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != gcm.NonceSize() {
		return nil, ErrAuthentication
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func (AESGCM) aead(key string) (cipher.AEAD, error) {
	raw, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, err
	}
	return gcm, nil
}
