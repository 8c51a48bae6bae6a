package filecodec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"scene-sync/core/crypto"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
)

const (
	// CompressionPako is zlib deflate, as produced by pako in browsers.
	CompressionPako = "pako@1"
	// CompressionSnappy is snappy block compression.
	CompressionSnappy = "snappy"
	// CompressionNone stores the payload uncompressed.
	CompressionNone = ""

	// encodingVersion is the version written in the encoding metadata.
	encodingVersion = 2

	// MaxDecodedSize bounds the decompressed payload of a single file.
	MaxDecodedSize = 64 << 20
)

// ErrUnsupportedCompression is returned for unknown compression labels.
var ErrUnsupportedCompression = errors.New("unsupported compression")

// EncodingMetadata describes how an envelope was produced.
type EncodingMetadata struct {
	Version     int    `json:"version"`
	Compression string `json:"compression"`
	Encryption  string `json:"encryption"`
}

// Metadata is the file metadata embedded inside the encrypted payload.
// Timestamps are milliseconds since the epoch.
type Metadata struct {
	ID            string `json:"id,omitempty"`
	MimeType      string `json:"mimeType,omitempty"`
	Created       int64  `json:"created,omitempty"`
	LastRetrieved int64  `json:"lastRetrieved,omitempty"`
}

// Encode compresses and encrypts data together with its metadata.
// A nil metadata is stored as JSON null.
func Encode(codec crypto.Codec, key string, data []byte, metadata *Metadata, compression string) ([]byte, error) {
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	payload, err := compress(ConcatBuffers(metaJSON, data), compression)
	if err != nil {
		return nil, err
	}

	ciphertext, iv, err := codec.Encrypt(key, payload)
	if err != nil {
		return nil, err
	}

	encoding, err := json.Marshal(EncodingMetadata{
		Version:     encodingVersion,
		Compression: compression,
		Encryption:  codec.Name(),
	})
	if err != nil {
		return nil, err
	}

	return ConcatBuffers(encoding, iv, ciphertext), nil
}

// Decode decrypts and decompresses an envelope. It returns the file bytes and
// the embedded metadata, which is nil when none was stored.
func Decode(key string, raw []byte) ([]byte, *Metadata, error) {
	chunks, err := SplitBuffers(raw)
	if err != nil {
		return nil, nil, err
	}
	if len(chunks) != 3 {
		return nil, nil, fmt.Errorf("%w: expected 3 chunks, got %d", ErrMalformed, len(chunks))
	}

	var encoding EncodingMetadata
	if err := json.Unmarshal(chunks[0], &encoding); err != nil {
		return nil, nil, fmt.Errorf("%w: encoding metadata: %v", ErrMalformed, err)
	}

	codec, err := crypto.Lookup(encoding.Encryption)
	if err != nil {
		return nil, nil, err
	}

	payload, err := codec.Decrypt(chunks[1], chunks[2], key)
	if err != nil {
		return nil, nil, err
	}

	plain, err := decompress(payload, encoding.Compression)
	if err != nil {
		return nil, nil, err
	}

	contents, err := SplitBuffers(plain)
	if err != nil {
		return nil, nil, err
	}
	if len(contents) != 2 {
		return nil, nil, fmt.Errorf("%w: expected metadata and data chunks, got %d", ErrMalformed, len(contents))
	}

	var metadata *Metadata
	if err := json.Unmarshal(contents[0], &metadata); err != nil {
		return nil, nil, fmt.Errorf("%w: file metadata: %v", ErrMalformed, err)
	}

	return contents[1], metadata, nil
}

func compress(data []byte, compression string) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionSnappy:
		return snappy.Encode(nil, data), nil
	case CompressionPako:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, compression)
	}
}

func decompress(data []byte, compression string) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionSnappy:
		n, err := snappy.DecodedLen(data)
		if err != nil {
			return nil, fmt.Errorf("%w: snappy: %v", ErrMalformed, err)
		}
		if n > MaxDecodedSize {
			return nil, fmt.Errorf("%w: decoded size %d exceeds limit", ErrMalformed, n)
		}
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("%w: snappy: %v", ErrMalformed, err)
		}
		return out, nil
	case CompressionPako:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrMalformed, err)
		}
		defer r.Close()

		out, err := io.ReadAll(io.LimitReader(r, MaxDecodedSize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrMalformed, err)
		}
		if len(out) > MaxDecodedSize {
			return nil, fmt.Errorf("%w: decoded size exceeds limit", ErrMalformed)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, compression)
	}
}
