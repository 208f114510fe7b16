package coset

import (
	"context"
	"math/big"
	"time"

	"github.com/coset-dev/coset-server/config"
	"github.com/coset-dev/coset-server/schema"
	"github.com/ethereum/go-ethereum/common"
)

const faucetCooldown = 24 * time.Hour

// faucet grant per claim, smallest token unit (both tokens use 6 decimals)
var faucetAmounts = map[string]int64{
	config.TokenLabelUsdc: 50_000_000,
	config.TokenLabelCst:  20_000_000,
}

// FaucetCooldownError carries the retry window for the 429 response.
type FaucetCooldownError struct {
	Token       string
	NextClaimAt time.Time
	Remaining   time.Duration
}

func (e *FaucetCooldownError) Error() string {
	return ErrFaucetCooldown.Error()
}

func (e *FaucetCooldownError) Unwrap() error {
	return ErrFaucetCooldown
}

// ClaimFaucet grants testnet funds once per wallet, token and cooldown
// window. The claim is recorded before the transfer is submitted so a crash
// cannot mint double grants.
func (c *Coset) ClaimFaucet(ctx context.Context, wallet, networkKey, tokenLabel string) (*schema.RespFaucet, error) {
	network, ok := c.registry.Get(networkKey)
	if !ok {
		return nil, ErrUnknownNetwork
	}
	token, ok := network.Token(tokenLabel)
	if !ok {
		return nil, ErrUnsupportedToken
	}
	amount, ok := faucetAmounts[tokenLabel]
	if !ok {
		return nil, ErrUnsupportedToken
	}

	now := time.Now()
	last, err := c.wdb.LastFaucetClaim(wallet, tokenLabel)
	if err == nil && now.Sub(last.CreatedAt) < faucetCooldown {
		next := last.CreatedAt.Add(faucetCooldown)
		return nil, &FaucetCooldownError{
			Token:       tokenLabel,
			NextClaimAt: next,
			Remaining:   next.Sub(now),
		}
	}

	claim := &schema.FaucetClaim{
		Wallet:  wallet,
		Network: networkKey,
		Token:   tokenLabel,
		Amount:  big.NewInt(amount).String(),
	}
	if err := c.wdb.InsertFaucetClaim(claim); err != nil {
		return nil, err
	}

	chain, err := c.chain(networkKey)
	if err != nil {
		return nil, err
	}
	if _, err := chain.Transfer(ctx, c.signer, token.Address, common.HexToAddress(wallet), big.NewInt(amount)); err != nil {
		log.Error("chain.Transfer(faucet)", "err", err, "wallet", wallet, "token", tokenLabel)
		return nil, err
	}

	return &schema.RespFaucet{
		Ok:          true,
		Token:       tokenLabel,
		Amount:      claim.Amount,
		ClaimedAt:   claim.CreatedAt.UTC().Format(time.RFC3339),
		NextClaimAt: claim.CreatedAt.Add(faucetCooldown).UTC().Format(time.RFC3339),
	}, nil
}
