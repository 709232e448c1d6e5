package seriate

import (
	"context"
	"fmt"
	"time"

	"github.com/unkn0wn-root/seriate/store"
)

// ArchiveOptions tune an Archive. Registry and Store are required.
type ArchiveOptions struct {
	Registry *Registry
	Store    store.Store

	Logger Logger        // if nil, NopLogger is used
	TTL    time.Duration // blob TTL; 0 => no expiry (store permitting)
}

// Archive stores serialized object graphs in a content-addressed blob
// store: Put marshals a value and writes the bytes under their digest, Get
// reads the bytes back by digest and unmarshals them. Because the address
// is the content digest, identical graphs deduplicate and a blob can never
// be read back as something other than what was written.
type Archive struct {
	reg   *Registry
	store store.Store
	log   Logger
	ttl   time.Duration
}

func NewArchive(opts ArchiveOptions) (*Archive, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("seriate: archive registry is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("seriate: archive store is required")
	}
	return &Archive{
		reg:   opts.Registry,
		store: opts.Store,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		ttl:   opts.TTL,
	}, nil
}

// Put serializes v and stores the blob under its digest, returning the
// digest. A store that rejects the write under pressure is logged but not
// an error: the digest is still valid, the blob is just not cached.
func (a *Archive) Put(ctx context.Context, v any) (string, error) {
	blob, err := a.reg.Marshal(v)
	if err != nil {
		return "", err
	}
	digest := store.Digest(blob)
	ok, err := a.store.Put(ctx, digest, blob, int64(len(blob)), a.ttl)
	if err != nil {
		return "", err
	}
	if !ok {
		a.log.Debug("archive Put rejected by store (pressure)", Fields{"digest": digest, "bytes": len(blob)})
	}
	return digest, nil
}

// Get loads and deserializes the blob stored under digest. A blob whose
// bytes no longer match the digest is treated as a miss and deleted from
// consideration by the caller; the store itself is not modified.
func (a *Archive) Get(ctx context.Context, digest string) (any, bool, error) {
	blob, ok, err := a.store.Get(ctx, digest)
	if err != nil || !ok {
		return nil, false, err
	}
	if store.Digest(blob) != digest {
		a.log.Warn("archive blob does not match its digest", Fields{"digest": digest})
		return nil, false, nil
	}
	v, err := a.reg.Unmarshal(blob)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Close closes the underlying store.
func (a *Archive) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}
