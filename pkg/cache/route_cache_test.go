package cache

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c := NewRouteCache(openTestDB(t), "testnet")

	entry := RouteEntry{
		MCDist:   1234.5,
		MCFound:  true,
		MC2Dist:  1500.25,
		MC2Found: true,
		MC2Path:  []int32{0, 7, 3, 9},
	}
	require.NoError(t, c.Put(10, 20, 5, entry))

	got, err := c.Get(10, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestRouteCacheMiss(t *testing.T) {
	c := NewRouteCache(openTestDB(t), "testnet")

	_, err := c.Get(1, 2, 3)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouteCacheNetworkTagIsolation(t *testing.T) {
	db := openTestDB(t)
	a := NewRouteCache(db, "net-a")
	b := NewRouteCache(db, "net-b")

	require.NoError(t, a.Put(1, 2, 3, RouteEntry{MCDist: 5, MCFound: true}))

	_, err := b.Get(1, 2, 3)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}
