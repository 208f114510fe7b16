package coset

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

func (c *Coset) runJobs() {
	c.scheduler.Every(1).Minute().SingletonMode().Do(c.updateCstPrice)

	c.scheduler.StartAsync()
}

// updateCstPrice refreshes the cached CST exchange rate from the default
// network's price oracle. The cache only feeds the public info endpoint;
// authorization building always reads the rate live.
func (c *Coset) updateCstPrice() {
	network, ok := c.registry.Get(c.defaultNetwork)
	if !ok {
		return
	}
	chain, err := c.chain(network.Key)
	if err != nil {
		log.Warn("chain(network.Key)", "err", err, "network", network.Key)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	priceOracle, err := chain.PriceOracle(ctx, network.Factory)
	if err != nil {
		log.Warn("chain.PriceOracle(ctx, network.Factory)", "err", err, "network", network.Key)
		return
	}
	if priceOracle == (common.Address{}) {
		return
	}
	raw, err := chain.OracleData(ctx, priceOracle)
	if err != nil {
		log.Warn("chain.OracleData(ctx, priceOracle)", "err", err, "network", network.Key)
		return
	}

	price := new(big.Int).SetBytes(raw)
	c.cache.UpdateCstPrice(price)
	units, _ := new(big.Float).SetInt(price).Float64()
	metricCstPrice(units)
}
