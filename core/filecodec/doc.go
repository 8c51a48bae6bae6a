// Package filecodec encodes and decodes the binary envelope used for files
// stored in object storage.
//
// The envelope is a sequence of length-prefixed chunks:
//
//	uint32 BE format version (1)
//	uint32 BE length | encoding metadata JSON {version, compression, encryption}
//	uint32 BE length | iv
//	uint32 BE length | ciphertext
//
// The ciphertext decrypts to a (possibly compressed) payload which is itself a
// chunk sequence of the file metadata JSON followed by the file bytes.
//
// Supported compressions are "pako@1" (zlib) and "snappy". The encryption label
// selects the AEAD codec from package crypto.
package filecodec
