package coset

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// FinalizeDeployment reconciles a client-submitted deployment transaction
// back into the oracle record. It is the only path that sets the contract
// address; everything before it is read or compute only.
func (c *Coset) FinalizeDeployment(ctx context.Context, owner, oracleId, networkKey, tokenLabel, txHash string) (string, error) {
	oracle, err := c.wdb.GetOracle(owner, oracleId)
	if err != nil {
		return "", err
	}
	if err := requireVerified(oracle); err != nil {
		return "", err
	}

	network, ok := c.registry.Get(networkKey)
	if !ok {
		return "", ErrUnknownNetwork
	}
	if _, ok := network.Token(tokenLabel); !ok {
		return "", ErrUnsupportedToken
	}

	hash, err := decodeTxHash(txHash)
	if err != nil {
		return "", err
	}
	chain, err := c.chain(networkKey)
	if err != nil {
		return "", err
	}

	receipt, err := chain.TxReceipt(ctx, hash)
	if err != nil || receipt == nil {
		return "", ErrTxNotFound
	}
	if receipt.Status == types.ReceiptStatusFailed || len(receipt.Logs) == 0 {
		return "", ErrTxFailed
	}

	contractAddress, ok := deployedAddress(receipt)
	if !ok {
		return "", ErrNoDeployEvent
	}

	return c.markDeployed(oracle, networkKey, txHash, contractAddress.Hex())
}

// deployedAddress scans the receipt for the factory's OracleDeployed event.
// Logs that fail to decode belong to other contracts touched by the same
// transaction and are skipped; the first match wins.
func deployedAddress(receipt *types.Receipt) (common.Address, bool) {
	for _, lg := range receipt.Logs {
		var oracleAddr, ownerAddr common.Address
		if err := eventOracleDeployed.DecodeArgs(lg, &oracleAddr, &ownerAddr); err == nil {
			return oracleAddr, true
		}
	}
	return common.Address{}, false
}

func decodeTxHash(txHash string) (common.Hash, error) {
	raw, err := hexutil.Decode(txHash)
	if err != nil || len(raw) != common.HashLength {
		return common.Hash{}, ErrInvalidTxHash
	}
	return common.BytesToHash(raw), nil
}
