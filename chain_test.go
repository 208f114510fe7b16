package coset

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/everFinance/goether"
	"github.com/stretchr/testify/assert"
)

func TestBuildTransferTx(t *testing.T) {
	signer, err := goether.NewSigner(testSignerKey)
	assert.NoError(t, err)

	token := common.HexToAddress("0x05856b07544044873616d390Cc50c785fe8a8885")
	to := common.HexToAddress(testWallet)
	gasPrice := big.NewInt(20_000_000)
	chainId := big.NewInt(5003)

	tx, err := buildTransferTx(signer, 7, token, to, big.NewInt(50_000_000), gasPrice, chainId)
	assert.NoError(t, err)

	// gas-priced legacy tx, not a dynamic fee tx
	assert.Equal(t, uint8(types.LegacyTxType), tx.Type())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, token, *tx.To())
	assert.Equal(t, uint64(0), tx.Value().Uint64())
	assert.Equal(t, transferGasLimit, tx.Gas())
	assert.Equal(t, gasPrice, tx.GasPrice())
	assert.Equal(t, chainId, tx.ChainId())

	// calldata carries transfer(to, amount)
	sel, err := funcTransfer.EncodeArgs(to, big.NewInt(50_000_000))
	assert.NoError(t, err)
	assert.Equal(t, sel, tx.Data())

	sender, err := types.Sender(types.NewEIP155Signer(chainId), tx)
	assert.NoError(t, err)
	assert.Equal(t, signer.Address, sender)
}
