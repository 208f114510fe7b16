package coset

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoCache(t *testing.T) {
	c := NewInfoCache()

	price, updatedAt := c.GetCstPrice()
	assert.Nil(t, price)
	assert.Equal(t, int64(0), updatedAt)

	c.UpdateCstPrice(big.NewInt(4_000_000))
	price, updatedAt = c.GetCstPrice()
	assert.Equal(t, big.NewInt(4_000_000), price)
	assert.Greater(t, updatedAt, int64(0))

	// the returned value is a copy
	price.SetInt64(1)
	price, _ = c.GetCstPrice()
	assert.Equal(t, big.NewInt(4_000_000), price)
}
