// Package cache stores rendered artifacts keyed by content hashes.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything.
//   - [FileCache] keeps entries as JSON files, for CLI usage.
//   - [RedisCache] shares entries between server instances.
//
// Keys are produced by a [Keyer]. A [ScopedKeyer] prefixes every key so
// several graphs or tenants can share one backend without collisions.
//
// [GetOrCompute] wraps the usual read-through pattern and reports hits,
// misses and writes through observability.Cache().
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/nodeshift/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey identifies a rendered preview of a graph.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts lists everything besides the graph that affects a render.
type RenderKeyOpts struct {
	Format        string  `json:"format"`
	Detailed      bool    `json:"detailed,omitempty"`
	ExpandID      string  `json:"expand_id,omitempty"`
	ExpandHeight  float64 `json:"expand_height,omitempty"`
	MinSeparation float64 `json:"min_separation,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey returns "render:<sha256(graphHash, opts)>".
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return digestKey("render", graphHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}

// GetOrCompute returns the cached value for key, or calls compute and stores
// its result with ttl. keyType labels the observability events. A failing
// Set is ignored; the computed value is still returned.
func GetOrCompute(ctx context.Context, c Cache, key, keyType string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()

	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	if ok {
		hooks.OnCacheHit(ctx, keyType)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, keyType)

	data, err = compute()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, false, nil
}
