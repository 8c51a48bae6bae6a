package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultKeyBits matches the key length Excalidraw generates for rooms.
const DefaultKeyBits = 128

// GenerateKey returns a new random room key encoded as unpadded base64url.
func GenerateKey(bits int) (string, error) {
	switch bits {
	case 128, 192, 256:
	default:
		return "", fmt.Errorf("%w: unsupported key size %d", ErrInvalidKey, bits)
	}

	raw := make([]byte, bits/8)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeKey parses a base64url room key (padding optional) into raw key bytes.
// Keys must decode to 16, 24 or 32 bytes.
func DecodeKey(key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(key, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64url encoding", ErrInvalidKey)
	}

	switch len(raw) {
	case 16, 24, 32:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: must be 16, 24 or 32 bytes, got %d", ErrInvalidKey, len(raw))
	}
}
