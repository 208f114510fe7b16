package coset

import (
	"context"
	"math/big"

	"github.com/coset-dev/coset-server/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/everFinance/goether"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
)

const transferGasLimit uint64 = 100_000

var (
	funcName             = w3.MustNewFunc("name()", "string")
	funcVersion          = w3.MustNewFunc("version()", "string")
	funcConfig           = w3.MustNewFunc("config()", "uint256")
	funcCstPriceOracle   = w3.MustNewFunc("cstPriceOracle()", "address")
	funcDataWithoutCheck = w3.MustNewFunc("getDataWithoutCheck()", "bytes")
	funcTransfer         = w3.MustNewFunc("transfer(address,uint256)", "bool")

	funcDeployOracle = w3.MustNewFunc(
		"deployOracle(address,uint256,uint256,bytes,uint256,uint256,bytes32,uint8,bytes32,bytes32)",
		"address",
	)
	eventOracleDeployed = w3.MustNewEvent(
		"OracleDeployed(address indexed oracle, address indexed owner)",
	)
)

// Chain is the per-network RPC surface the pipeline needs. Implemented by
// ChainClient; tests substitute stubs.
type Chain interface {
	ChainId() int64
	TokenMeta(ctx context.Context, token common.Address) (name, version string, err error)
	DeployFee(ctx context.Context, factory common.Address) (*big.Int, error)
	PriceOracle(ctx context.Context, factory common.Address) (common.Address, error)
	OracleData(ctx context.Context, oracleAddr common.Address) ([]byte, error)
	TxReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Transfer(ctx context.Context, signer *goether.Signer, token, to common.Address, amount *big.Int) (common.Hash, error)
	Close() error
}

type ChainClient struct {
	network  config.Network
	client   *w3.Client
	gasPrice *big.Int
}

func NewChainClient(network config.Network, gasPrice *big.Int) (*ChainClient, error) {
	client, err := w3.Dial(network.Rpc)
	if err != nil {
		return nil, err
	}
	return &ChainClient{
		network:  network,
		client:   client,
		gasPrice: gasPrice,
	}, nil
}

func (c *ChainClient) ChainId() int64 {
	return c.network.ChainId
}

func (c *ChainClient) Close() error {
	return c.client.Close()
}

func (c *ChainClient) TokenMeta(ctx context.Context, token common.Address) (string, string, error) {
	var name, version string
	err := c.client.CallCtx(ctx,
		eth.CallFunc(token, funcName).Returns(&name),
		eth.CallFunc(token, funcVersion).Returns(&version),
	)
	if err != nil {
		return "", "", err
	}
	return name, version, nil
}

func (c *ChainClient) DeployFee(ctx context.Context, factory common.Address) (*big.Int, error) {
	fee := new(big.Int)
	if err := c.client.CallCtx(ctx, eth.CallFunc(factory, funcConfig).Returns(fee)); err != nil {
		return nil, err
	}
	return fee, nil
}

func (c *ChainClient) PriceOracle(ctx context.Context, factory common.Address) (common.Address, error) {
	var addr common.Address
	if err := c.client.CallCtx(ctx, eth.CallFunc(factory, funcCstPriceOracle).Returns(&addr)); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

func (c *ChainClient) OracleData(ctx context.Context, oracleAddr common.Address) ([]byte, error) {
	var data []byte
	if err := c.client.CallCtx(ctx, eth.CallFunc(oracleAddr, funcDataWithoutCheck).Returns(&data)); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *ChainClient) TxReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt types.Receipt
	if err := c.client.CallCtx(ctx, eth.TxReceipt(txHash).Returns(&receipt)); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Transfer submits an ERC20 transfer signed by the platform wallet. Only the
// faucet uses this path; oracle deployments are always submitted by the owner
// wallet, never by the server.
func (c *ChainClient) Transfer(ctx context.Context, signer *goether.Signer, token, to common.Address, amount *big.Int) (common.Hash, error) {
	var nonce uint64
	if err := c.client.CallCtx(ctx, eth.Nonce(signer.Address, nil).Returns(&nonce)); err != nil {
		return common.Hash{}, err
	}

	signedTx, err := buildTransferTx(signer, nonce, token, to, amount, c.gasPrice, big.NewInt(c.network.ChainId))
	if err != nil {
		return common.Hash{}, err
	}
	if err := c.client.CallCtx(ctx, eth.SendTx(signedTx).Returns(nil)); err != nil {
		return common.Hash{}, err
	}
	return signedTx.Hash(), nil
}

// buildTransferTx signs a legacy gas-priced ERC20 transfer.
func buildTransferTx(signer *goether.Signer, nonce uint64, token, to common.Address, amount, gasPrice, chainId *big.Int) (*types.Transaction, error) {
	data, err := funcTransfer.EncodeArgs(to, amount)
	if err != nil {
		return nil, err
	}
	return signer.SignLegacyTx(int(nonce), token, big.NewInt(0), int(transferGasLimit), gasPrice, data, chainId)
}
