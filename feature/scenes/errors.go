package scenes

import (
	"errors"
	"fmt"
)

var (
	// ErrSceneNotFound is returned by LoadScene for a room without a snapshot.
	ErrSceneNotFound = errors.New("scene not found")
	// ErrCorruptSnapshot is returned when a stored snapshot cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// StorageError reports a backing store failure. The cause stays reachable
// through errors.Is and errors.As.
type StorageError struct {
	Op     string
	RoomID string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("scene %s failed for room %q: %v", e.Op, e.RoomID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
