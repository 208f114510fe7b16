package coset

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/coset-dev/coset-server/config"
	"github.com/coset-dev/coset-server/schema"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	primaryTypeTransferAuth = "TransferWithAuthorization"
	authValidWindow         = 3600 // seconds a signed authorization stays usable
	usdcUnit                = 1e6
)

var transferAuthTypes = map[string][]schema.TypedDataField{
	primaryTypeTransferAuth: {
		{Name: "from", Type: "address"},
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "validAfter", Type: "uint256"},
		{Name: "validBefore", Type: "uint256"},
		{Name: "nonce", Type: "bytes32"},
	},
}

// BuildAuthorization assembles the typed payment authorization the owner
// wallet signs before deployment. Nothing is persisted: each call draws a
// fresh random nonce, so a later call simply supersedes any unsigned payload
// the caller still holds. Token name, version and the deployment fee are read
// live from chain since the CST fee floats against the on-chain price oracle.
func (c *Coset) BuildAuthorization(ctx context.Context, owner, oracleId, networkKey, tokenLabel string) (*schema.RespAuthorization, error) {
	oracle, err := c.wdb.GetOracle(owner, oracleId)
	if err != nil {
		return nil, err
	}
	if err := requireVerified(oracle); err != nil {
		return nil, err
	}

	network, ok := c.registry.Get(networkKey)
	if !ok {
		return nil, ErrUnknownNetwork
	}
	token, ok := network.Token(tokenLabel)
	if !ok {
		return nil, ErrUnsupportedToken
	}
	chain, err := c.chain(networkKey)
	if err != nil {
		return nil, err
	}

	name, version, err := chain.TokenMeta(ctx, token.Address)
	if err != nil {
		return nil, err
	}
	fee, err := chain.DeployFee(ctx, network.Factory)
	if err != nil {
		return nil, err
	}

	// base fee is denominated in USDC units; CST payments convert through
	// the factory's price oracle
	if token.Symbol == config.SymbolCst {
		fee, err = c.convertFeeToCst(ctx, chain, network, fee)
		if err != nil {
			return nil, err
		}
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}
	now := time.Now().Unix()

	return &schema.RespAuthorization{
		Domain: schema.TypedDataDomain{
			Name:              name,
			Version:           version,
			ChainId:           network.ChainId,
			VerifyingContract: token.Address.Hex(),
		},
		Types:       transferAuthTypes,
		PrimaryType: primaryTypeTransferAuth,
		Nonce:       nonce,
		Message: schema.AuthMessage{
			From:        owner,
			To:          c.signer.Address.Hex(),
			Value:       fee.String(),
			ValidAfter:  0,
			ValidBefore: now + authValidWindow,
			Nonce:       nonce,
		},
	}, nil
}

func (c *Coset) convertFeeToCst(ctx context.Context, chain Chain, network config.Network, fee *big.Int) (*big.Int, error) {
	priceOracle, err := chain.PriceOracle(ctx, network.Factory)
	if err != nil {
		return nil, err
	}
	if priceOracle == (common.Address{}) {
		return nil, ErrPriceOracleMissing
	}
	raw, err := chain.OracleData(ctx, priceOracle)
	if err != nil {
		return nil, err
	}
	oneUsdcInCst := new(big.Int).SetBytes(raw)
	converted := new(big.Int).Mul(fee, oneUsdcInCst)
	return converted.Div(converted, big.NewInt(usdcUnit)), nil
}

func newNonce() (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return hexutil.Encode(nonce), nil
}
