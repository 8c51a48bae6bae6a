package filecodec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// concatBuffersVersion is the only chunk sequence version.
	concatBuffersVersion = 1

	versionBytes   = 4
	chunkSizeBytes = 4
)

// ErrMalformed is returned when an envelope cannot be parsed.
var ErrMalformed = errors.New("malformed file envelope")

// ConcatBuffers joins chunks into a versioned, length-prefixed sequence.
func ConcatBuffers(chunks ...[]byte) []byte {
	size := versionBytes
	for _, c := range chunks {
		size += chunkSizeBytes + len(c)
	}

	out := make([]byte, versionBytes, size)
	binary.BigEndian.PutUint32(out, concatBuffersVersion)
	for _, c := range chunks {
		out = binary.BigEndian.AppendUint32(out, uint32(len(c)))
		out = append(out, c...)
	}
	return out
}

// SplitBuffers reverses ConcatBuffers.
func SplitBuffers(data []byte) ([][]byte, error) {
	if len(data) < versionBytes {
		return nil, fmt.Errorf("%w: missing version header", ErrMalformed)
	}

	version := binary.BigEndian.Uint32(data)
	if version > concatBuffersVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, version)
	}

	var chunks [][]byte
	rest := data[versionBytes:]
	for len(rest) > 0 {
		if len(rest) < chunkSizeBytes {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrMalformed)
		}
		n := binary.BigEndian.Uint32(rest)
		rest = rest[chunkSizeBytes:]
		if uint64(n) > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: chunk of %d bytes exceeds remaining %d", ErrMalformed, n, len(rest))
		}
		chunks = append(chunks, rest[:n])
		rest = rest[n:]
	}
	return chunks, nil
}
