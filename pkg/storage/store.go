package storage

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/orgdot/pkg/errors"
)

// ErrNotFound is returned by Load when the key does not exist.
var ErrNotFound = stderrors.New("not found")

// Store is a byte-oriented key/value store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores data under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the value under key, or an error wrapping ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key holds a value.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases connections and files held by the store.
	Close() error
}

// ValidateKey checks that key is usable by every backend.
func ValidateKey(key string) error {
	return errors.ValidateKey(key)
}

// IsNotFound reports whether err means a missing key.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}
