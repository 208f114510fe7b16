package coset

import (
	"math/big"
	"sync"
	"time"
)

// Cache holds live platform info refreshed by the background jobs: currently
// the CST exchange rate read from the on-chain price oracle. Authorization
// building never reads this cache (the fee must be live); it only serves the
// public info endpoint.
type Cache struct {
	cstPrice     *big.Int
	cstUpdatedAt int64
	lock         sync.RWMutex
}

func NewInfoCache() *Cache {
	return &Cache{}
}

func (c *Cache) GetCstPrice() (*big.Int, int64) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.cstPrice == nil {
		return nil, 0
	}
	return new(big.Int).Set(c.cstPrice), c.cstUpdatedAt
}

func (c *Cache) UpdateCstPrice(price *big.Int) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cstPrice = new(big.Int).Set(price)
	c.cstUpdatedAt = time.Now().Unix()
}
