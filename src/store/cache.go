package store

import (
	"github.com/dgraph-io/ristretto"
)

// idCache maps record ids to Drive file ids so Get/Put/Delete can skip the
// by-name lookup round trip. It is a lookup shortcut only, never a
// correctness mechanism: a miss just costs an extra files.list call.
type idCache struct {
	c *ristretto.Cache
}

func newIDCache() (*idCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &idCache{c: c}, nil
}

func (ic *idCache) Get(id string) (string, bool) {
	v, ok := ic.c.Get(id)
	if !ok {
		return "", false
	}
	fileID, ok := v.(string)
	return fileID, ok
}

func (ic *idCache) Set(id, fileID string) {
	ic.c.Set(id, fileID, 1)
}

func (ic *idCache) Del(id string) {
	ic.c.Del(id)
}
