package coset

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coset-dev/coset-server/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestClaimFaucet(t *testing.T) {
	c, chain := newTestCoset(t)
	chain.transferHash = common.HexToHash("0x" + strings.Repeat("ee", 32))

	resp, err := c.ClaimFaucet(context.Background(), testWallet, "mantle-testnet", config.TokenLabelUsdc)
	assert.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, "50000000", resp.Amount)
	assert.Equal(t, config.TokenLabelUsdc, resp.Token)

	// second claim inside the window hits the cooldown
	_, err = c.ClaimFaucet(context.Background(), testWallet, "mantle-testnet", config.TokenLabelUsdc)
	assert.ErrorIs(t, err, ErrFaucetCooldown)

	cooldown := &FaucetCooldownError{}
	assert.True(t, errors.As(err, &cooldown))
	assert.Equal(t, config.TokenLabelUsdc, cooldown.Token)
	assert.Greater(t, cooldown.Remaining, 23*time.Hour)

	// a different token has its own window
	resp, err = c.ClaimFaucet(context.Background(), testWallet, "mantle-testnet", config.TokenLabelCst)
	assert.NoError(t, err)
	assert.Equal(t, "20000000", resp.Amount)
}

func TestClaimFaucetBadRefs(t *testing.T) {
	c, _ := newTestCoset(t)

	_, err := c.ClaimFaucet(context.Background(), testWallet, "arbitrum", config.TokenLabelUsdc)
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	_, err = c.ClaimFaucet(context.Background(), testWallet, "mantle-testnet", "DAI")
	assert.ErrorIs(t, err, ErrUnsupportedToken)
}

// The claim row is written before the transfer is submitted, so a failed
// transfer still starts the cooldown instead of allowing immediate retries.
func TestClaimFaucetRecordedBeforeTransfer(t *testing.T) {
	c, chain := newTestCoset(t)
	chain.transferErr = errors.New("rpc down")

	_, err := c.ClaimFaucet(context.Background(), testWallet, "mantle-testnet", config.TokenLabelUsdc)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFaucetCooldown)

	last, err := c.wdb.LastFaucetClaim(testWallet, config.TokenLabelUsdc)
	assert.NoError(t, err)
	assert.Equal(t, "50000000", last.Amount)
}
