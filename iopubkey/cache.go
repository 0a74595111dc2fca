// Package iopubkey fetches and caches the chain's 32-byte X25519 consensus
// I/O public key. The cache is write-once, read-many: concurrent
// callers racing the first fetch must not issue more than one outstanding
// request, so the fetch itself is memoized with a singleflight.Group.
package iopubkey

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
	"github.com/scrt-labs/secret-sdk-go/transport"
)

const path = "/reg/consensus-io-exch-pubkey"

// Cache holds the chain's consensus I/O public key once retrieved.
type Cache struct {
	client transport.Client

	group singleflight.Group

	mu     sync.RWMutex
	cached *[32]byte

	fetchCount atomic.Int64
}

// New constructs an empty, unpopulated Cache.
func New(client transport.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached key, or fetches it exactly once even if many
// goroutines call Get concurrently before the first fetch completes.
func (c *Cache) Get(ctx context.Context) ([32]byte, error) {
	c.mu.RLock()
	if c.cached != nil {
		defer c.mu.RUnlock()
		return *c.cached, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("io-pubkey", func() (interface{}, error) {
		// Re-check under the group: another caller may have populated the
		// cache between our RUnlock above and entering the singleflight
		// critical section.
		c.mu.RLock()
		if c.cached != nil {
			key := *c.cached
			c.mu.RUnlock()
			return key, nil
		}
		c.mu.RUnlock()

		key, err := c.fetch(ctx)
		if err != nil {
			return [32]byte{}, err
		}

		c.mu.Lock()
		c.cached = &key
		c.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return [32]byte{}, err
	}
	return v.([32]byte), nil
}

// FetchCount reports how many network requests this cache has issued, for
// test assertions on the single-flight/no-duplicate-request property.
func (c *Cache) FetchCount() int64 {
	return c.fetchCount.Load()
}

type pubkeyResult struct {
	Result struct {
		IoExchPubkey string `json:"ioExchPubkey"`
	} `json:"result"`
}

func (c *Cache) fetch(ctx context.Context) ([32]byte, error) {
	c.fetchCount.Add(1)

	var key [32]byte
	raw, err := c.client.Get(ctx, path)
	if err != nil {
		return key, fmt.Errorf("iopubkey: fetch failed: %w", err)
	}

	var r pubkeyResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return key, apierrors.SchemaError{Reason: fmt.Sprintf("consensus IO pubkey response: %v", err)}
	}

	decoded, err := base64.StdEncoding.DecodeString(r.Result.IoExchPubkey)
	if err != nil {
		return key, apierrors.SchemaError{Reason: fmt.Sprintf("consensus IO pubkey is not valid base64: %v", err)}
	}
	if len(decoded) != 32 {
		return key, apierrors.SchemaError{Reason: fmt.Sprintf("consensus IO pubkey has length %d, want 32", len(decoded))}
	}
	copy(key[:], decoded)
	return key, nil
}
