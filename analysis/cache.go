package analysis

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache keeps model answers for a limited time so repeated requests on an
// unchanged entry do not hit the API again.
type Cache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func NewCache(maxCost int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, ttl: ttl}, nil
}

func (c *Cache) Get(key string) (string, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores val and waits until it is visible to Get.
func (c *Cache) Set(key, val string) {
	c.c.SetWithTTL(key, val, int64(len(val)), c.ttl)
	c.c.Wait()
}

func (c *Cache) Close() { c.c.Close() }
