package codehash

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
)

type fakeFetcher struct {
	calls   atomic.Int64
	hash    string
	notFind bool
}

func (f *fakeFetcher) Get(ctx context.Context, path string) ([]byte, error) {
	f.calls.Add(1)
	if f.notFind {
		return nil, apierrors.ServerError{Status: 404, Body: "not found: contract"}
	}
	return json.Marshal(map[string]string{"result": f.hash})
}

func TestByCodeIDCachesAfterFirstFetch(t *testing.T) {
	require := require.New(t)

	ff := &fakeFetcher{hash: "AAAABBBBCCCCDDDDEEEEFFFF00001111222233334444555566667777888899AA"}
	require.Len(ff.hash, 64)
	c := New(ff)

	h1, err := c.ByCodeID(context.Background(), 42)
	require.NoError(err)
	require.Len(h1, 64)

	h2, err := c.ByCodeID(context.Background(), 42)
	require.NoError(err)
	require.Equal(h1, h2)

	require.EqualValues(1, ff.calls.Load())
}

func TestByCodeIDLowercases(t *testing.T) {
	require := require.New(t)

	ff := &fakeFetcher{hash: "ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789"}
	c := New(ff)

	h, err := c.ByCodeID(context.Background(), 1)
	require.NoError(err)
	require.Equal("abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789", h)
}

func TestNamespacesDoNotCollide(t *testing.T) {
	require := require.New(t)

	ff := &fakeFetcher{hash: "1111111111111111111111111111111111111111111111111111111111111111"[:64]}
	c := New(ff)

	_, err := c.ByCodeID(context.Background(), 7)
	require.NoError(err)
	_, err = c.ByAddress(context.Background(), "secret1abc")
	require.NoError(err)

	c.mu.RLock()
	_, inCodeMap := c.byCodeID[7]
	_, inAddrMap := c.byAddress["secret1abc"]
	c.mu.RUnlock()
	require.True(inCodeMap)
	require.True(inAddrMap)
	require.EqualValues(2, ff.calls.Load())
}

func TestByAddressRejectsBadHashLength(t *testing.T) {
	require := require.New(t)

	ff := &fakeFetcher{hash: "tooshort"}
	c := New(ff)

	_, err := c.ByAddress(context.Background(), "secret1xyz")
	require.Error(err)
}

func TestByAddressTranslatesNotFound(t *testing.T) {
	require := require.New(t)

	ff := &fakeFetcher{notFind: true}
	c := New(ff)

	_, err := c.ByAddress(context.Background(), "secret1missing")
	require.Error(err)
	var cnf apierrors.ContractNotFound
	require.ErrorAs(err, &cnf)
	require.Equal("secret1missing", cnf.Address)
}
