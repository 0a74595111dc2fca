// Package codehash caches the 64-character lowercase-hex code hash of every
// contract the client has needed, keyed separately by numeric code id and by
// contract address. Every plaintext contract message must be prefixed by its
// target's code hash before encryption, so this cache sits on the hot path
// of every outbound message.
//
// Entries are insert-only: code hashes are immutable once a contract's WASM
// is uploaded, so there is never a reason to evict or invalidate one.
package codehash

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
	"github.com/scrt-labs/secret-sdk-go/transport"
)

// Fetcher retrieves code hashes from the chain. transport.Client satisfies
// this narrower interface directly.
type Fetcher interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Cache is a client-lifetime, insert-only map from code id and contract
// address to lowercase-hex code hash. The two namespaces are backed by
// distinct maps so a numeric id can never collide with an address string.
type Cache struct {
	fetcher Fetcher

	mu        sync.RWMutex
	byCodeID  map[uint64]string
	byAddress map[string]string
}

// New constructs an empty cache backed by the given transport.
func New(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher:   fetcher,
		byCodeID:  make(map[uint64]string),
		byAddress: make(map[string]string),
	}
}

// ByCodeID returns the code hash for the given code id, fetching and
// caching it on first use.
func (c *Cache) ByCodeID(ctx context.Context, id uint64) (string, error) {
	c.mu.RLock()
	if h, ok := c.byCodeID[id]; ok {
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	raw, err := c.fetcher.Get(ctx, fmt.Sprintf("/wasm/code/%d/hash", id))
	if err != nil {
		return "", fmt.Errorf("codehash: fetch by code id %d: %w", id, err)
	}
	h, err := decodeHashResult(raw)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.byCodeID[id] = h
	c.mu.Unlock()
	return h, nil
}

// ByAddress returns the code hash for the given contract address, fetching
// and caching it on first use.
func (c *Cache) ByAddress(ctx context.Context, addr string) (string, error) {
	c.mu.RLock()
	if h, ok := c.byAddress[addr]; ok {
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	raw, err := c.fetcher.Get(ctx, fmt.Sprintf("/wasm/contract/%s/code-hash", addr))
	if err != nil {
		if isContractNotFound(err) {
			return "", apierrors.ContractNotFound{Address: addr}
		}
		return "", fmt.Errorf("codehash: fetch by address %s: %w", addr, err)
	}
	h, err := decodeHashResult(raw)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.byAddress[addr] = h
	c.mu.Unlock()
	return h, nil
}

func isContractNotFound(err error) bool {
	var se apierrors.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return strings.HasPrefix(se.Body, "not found: contract") || se.Body == "null"
}

type hashResult struct {
	Result string `json:"result"`
}

// decodeHashResult normalizes the REST response into a 64-character
// lowercase-hex string, verifying it is well-formed sha256 hex.
func decodeHashResult(raw []byte) (string, error) {
	h, err := transport.UnmarshalStringField(raw, "result")
	if err != nil {
		return "", apierrors.SchemaError{Reason: fmt.Sprintf("code hash response: %v", err)}
	}
	h = strings.ToLower(strings.TrimSpace(h))
	if len(h) != 64 {
		return "", apierrors.SchemaError{Reason: fmt.Sprintf("code hash has length %d, want 64", len(h))}
	}
	if _, err := hex.DecodeString(h); err != nil {
		return "", apierrors.SchemaError{Reason: fmt.Sprintf("code hash is not hex: %v", err)}
	}
	return h, nil
}
