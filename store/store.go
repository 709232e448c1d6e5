// Package store defines the content-addressed blob storage used by
// seriate.Archive: serialized object graphs keyed by the digest of their
// bytes.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Put for a digest: no
// prepended/appended metadata, no re-encoding, no mutation. Because blobs
// are addressed by content, a digest collision never overwrites different
// bytes; Put for an existing digest may be dropped or rewritten freely.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is a minimal byte store keyed by content digest.
// Must be safe for concurrent use.
type Store interface {
	// Get returns (blob, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, digest string) ([]byte, bool, error)

	// Put stores blob under digest with the given TTL. May ignore cost if
	// unsupported. Returns ok=false when the store rejected the write under
	// pressure.
	Put(ctx context.Context, digest string, blob []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Close releases resources.
	Close(ctx context.Context) error
}

// Digest returns the content address for blob: hex SHA-256.
func Digest(blob []byte) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}
