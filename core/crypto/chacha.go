package crypto

import (
	"crypto/cipher"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// hkdfInfo binds derived subkeys to this codec.
const hkdfInfo = "scene-sync-chacha20poly1305-v1"

// ChaCha20Poly1305 seals payloads with ChaCha20-Poly1305.
// A 256-bit subkey is derived from the room key with HKDF-SHA256.
type ChaCha20Poly1305 struct{}

// Name returns the algorithm label.
func (ChaCha20Poly1305) Name() string {
	return AlgorithmChaCha20Poly1305
}

// Encrypt seals plaintext and returns the ciphertext (with appended tag) and nonce.
func (c ChaCha20Poly1305) Encrypt(key string, plaintext []byte) ([]byte, []byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, nil, err
	}

	iv, err := newIV()
	if err != nil {
		return nil, nil, err
	}

	return aead.Seal(nil, iv, plaintext, nil), iv, nil
}

// Decrypt opens ciphertext. It returns ErrAuthentication on any mismatch.
func (c ChaCha20Poly1305) Decrypt(iv, ciphertext []byte, key string) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != aead.NonceSize() {
		return nil, ErrAuthentication
	}

	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func (ChaCha20Poly1305) aead(key string) (cipher.AEAD, error) {
	raw, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}

	subkey := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, raw, nil, []byte(hkdfInfo)), subkey); err != nil {
		return nil, err
	}

	return chacha20poly1305.New(subkey)
}
