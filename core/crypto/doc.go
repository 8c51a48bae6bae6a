// Package crypto provides authenticated symmetric encryption for room payloads.
//
// Every persisted scene snapshot and every uploaded file is sealed with an AEAD
// cipher keyed by the room key. The room key is supplied by the caller on each
// call and is never stored by this package.
//
// # Codecs
//
//   - AES-GCM: the default, compatible with keys produced by Excalidraw clients
//     (base64url, 128 bits).
//   - ChaCha20-Poly1305: derives a 256-bit subkey from the room key with HKDF-SHA256.
//
// Codecs are looked up by the name recorded alongside encrypted data, so a reader
// can always pick the codec that produced a payload.
//
// # Errors
//
// Decrypt never returns unauthenticated bytes. A wrong key, a tampered ciphertext
// or a malformed IV all produce ErrAuthentication. A key that cannot be parsed
// produces ErrInvalidKey.
//
// # Usage
//
//	codec, _ := crypto.Lookup(crypto.AlgorithmAESGCM)
//	ciphertext, iv, err := codec.Encrypt(roomKey, plaintext)
//	plaintext, err := codec.Decrypt(iv, ciphertext, roomKey)
package crypto
