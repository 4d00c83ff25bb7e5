package cache

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrRouteNotFound = errors.New("route not found")
)

// RouteEntry is the memoised result of one (origin, dest, checkpoint)
// routing computation. Sentinel lengths are carried as found flags, never as
// zeros.
type RouteEntry struct {
	MCDist   float64
	MCFound  bool
	MC2Dist  float64
	MC2Found bool
	MC2Path  []int32
}

// RouteCache memoises routing results in badger so re-runs over the same
// network skip the Dijkstra work. Keys are scoped by a network tag: a cache
// built for one graph must never serve another.
type RouteCache struct {
	db         *badger.DB
	networkTag string
}

func NewRouteCache(db *badger.DB, networkTag string) *RouteCache {
	return &RouteCache{db: db, networkTag: networkTag}
}

func (c *RouteCache) key(origin, dest, checkpoint int32) []byte {
	return []byte(fmt.Sprintf("route/%s/%d/%d/%d", c.networkTag, origin, dest, checkpoint))
}

func (c *RouteCache) Get(origin, dest, checkpoint int32) (RouteEntry, error) {
	var entry RouteEntry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key(origin, dest, checkpoint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRouteNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			bb, err := decompress(val)
			if err != nil {
				return err
			}
			entry, err = decodeEntry(bb)
			return err
		})
	})
	return entry, err
}

func (c *RouteCache) Put(origin, dest, checkpoint int32, entry RouteEntry) error {
	bb, err := compress(encodeEntry(entry))
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(c.key(origin, dest, checkpoint), bb)
	})
}

func (c *RouteCache) Close() error {
	return c.db.Close()
}
