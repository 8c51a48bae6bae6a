package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// AlgorithmAESGCM is the Excalidraw compatible AES-GCM codec.
	AlgorithmAESGCM = "AES-GCM"
	// AlgorithmChaCha20Poly1305 is the ChaCha20-Poly1305 codec.
	AlgorithmChaCha20Poly1305 = "ChaCha20-Poly1305"

	// IVSize is the nonce length used by every codec.
	IVSize = 12
)

var (
	// ErrAuthentication is returned when a ciphertext cannot be authenticated
	// under the given key and IV.
	ErrAuthentication = errors.New("authentication failed: wrong key or tampered ciphertext")
	// ErrInvalidKey is returned when a room key cannot be decoded into key material.
	ErrInvalidKey = errors.New("invalid room key")
	// ErrUnknownAlgorithm is returned by Lookup for unsupported codec names.
	ErrUnknownAlgorithm = errors.New("unknown encryption algorithm")
)

// Codec encrypts and decrypts byte payloads with a room key.
type Codec interface {
	// Name returns the algorithm label stored next to encrypted data.
	Name() string
	// Encrypt seals plaintext under key with a freshly generated IV.
	Encrypt(key string, plaintext []byte) (ciphertext, iv []byte, err error)
	// Decrypt opens ciphertext sealed under key and iv.
	Decrypt(iv, ciphertext []byte, key string) ([]byte, error)
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	switch name {
	case AlgorithmAESGCM, "":
		return AESGCM{}, nil
	case AlgorithmChaCha20Poly1305:
		return ChaCha20Poly1305{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
}

// newIV reads a fresh random nonce. IVs are never derived from counters or
// caller input, so reuse under one key cannot happen by construction.
func newIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	return iv, nil
}
