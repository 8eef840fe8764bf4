package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ScopedStore prefixes every key of an inner store.
// Useful for multi-tenant isolation:
//
//	tenant := storage.Scoped(shared, "tenant/acme/")
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a store that prepends prefix to every key.
func Scoped(inner Store, prefix string) *ScopedStore {
	return &ScopedStore{inner: inner, prefix: prefix}
}

func (s *ScopedStore) Save(ctx context.Context, key string, data []byte) error {
	return s.inner.Save(ctx, s.prefix+key, data)
}

func (s *ScopedStore) Load(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Load(ctx, s.prefix+key)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *ScopedStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.inner.Exists(ctx, s.prefix+key)
}

// Close closes the inner store.
func (s *ScopedStore) Close() error { return s.inner.Close() }

var _ Store = (*ScopedStore)(nil)

// Keyer builds the keys the pipeline stores values under.
type Keyer interface {
	// DocumentKey is the key of a published DOT source.
	DocumentKey(name string) string
	// ArtifactKey is the key of a rendered image of the DOT source with
	// the given hash.
	ArtifactKey(dotHash, format string) string
}

// DefaultKeyer lays keys out as documents/<name> and
// artifacts/<hash[:2]>/<hash>.<format>.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DocumentKey(name string) string {
	return "documents/" + strings.TrimPrefix(name, "/")
}

func (DefaultKeyer) ArtifactKey(dotHash, format string) string {
	if len(dotHash) < 2 {
		return "artifacts/" + dotHash + "." + format
	}
	return "artifacts/" + dotHash[:2] + "/" + dotHash + "." + format
}

// ScopedKeyer prefixes every key of an inner keyer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DocumentKey(name string) string {
	return k.prefix + k.inner.DocumentKey(name)
}

func (k *ScopedKeyer) ArtifactKey(dotHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, format)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
