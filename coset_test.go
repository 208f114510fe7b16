package coset

import (
	"context"
	"math/big"
	"testing"

	"github.com/coset-dev/coset-server/cache"
	"github.com/coset-dev/coset-server/config"
	"github.com/coset-dev/coset-server/schema"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/everFinance/goether"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const (
	testWallet    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testSignerKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testFactory   = "0x4200000000000000000000000000000000000042"
)

type stubChain struct {
	chainId      int64
	tokenName    string
	tokenVersion string
	fee          *big.Int
	priceOracle  common.Address
	oracleData   []byte
	receipt      *types.Receipt
	receiptErr   error
	transferHash common.Hash
	transferErr  error
}

func (s *stubChain) ChainId() int64 { return s.chainId }

func (s *stubChain) TokenMeta(ctx context.Context, token common.Address) (string, string, error) {
	return s.tokenName, s.tokenVersion, nil
}

func (s *stubChain) DeployFee(ctx context.Context, factory common.Address) (*big.Int, error) {
	return new(big.Int).Set(s.fee), nil
}

func (s *stubChain) PriceOracle(ctx context.Context, factory common.Address) (common.Address, error) {
	return s.priceOracle, nil
}

func (s *stubChain) OracleData(ctx context.Context, oracleAddr common.Address) ([]byte, error) {
	return s.oracleData, nil
}

func (s *stubChain) TxReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return s.receipt, s.receiptErr
}

func (s *stubChain) Transfer(ctx context.Context, signer *goether.Signer, token, to common.Address, amount *big.Int) (common.Hash, error) {
	return s.transferHash, s.transferErr
}

func (s *stubChain) Close() error { return nil }

func newTestCoset(t *testing.T) (*Coset, *stubChain) {
	t.Helper()

	store, err := NewBoltStore(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	wdb := NewSqliteDb(t.TempDir())
	assert.NoError(t, wdb.Migrate())
	t.Cleanup(wdb.Close)

	signer, err := goether.NewSigner(testSignerKey)
	assert.NoError(t, err)

	localCache, err := cache.NewLocalCache(authTokenCacheExp)
	assert.NoError(t, err)

	registry := config.DefaultRegistry(testFactory)
	chain := &stubChain{
		chainId:      5003,
		tokenName:    "Testnet USDC",
		tokenVersion: "2",
		fee:          big.NewInt(10_000_000), // 10 USDC
	}

	c := &Coset{
		wdb:            wdb,
		store:          store,
		registry:       registry,
		defaultNetwork: "mantle-testnet",
		chains: map[string]Chain{
			"mantle":         chain,
			"mantle-testnet": chain,
		},
		signer:     signer,
		probe:      NewProbe(),
		cache:      NewInfoCache(),
		localCache: localCache,
	}
	return c, chain
}

func insertTestOracle(t *testing.T, c *Coset, verified bool, url string) *schema.Oracle {
	t.Helper()
	oracle := &schema.Oracle{
		ID:             uuid.NewString(),
		Owner:          testWallet,
		Name:           "weather-station",
		RequestPrice:   0.05,
		UpdateInterval: 600,
		Protocol:       schema.ProtocolHttps,
		Url:            url,
	}
	if verified {
		oracle.ApiVerified = true
		oracle.AccessToken = "test-credential"
	}
	assert.NoError(t, c.wdb.CreateOracle(oracle))
	return oracle
}

func insertTestKey(t *testing.T, c *Coset, name, secret string) *schema.ApiKey {
	t.Helper()
	key := &schema.ApiKey{
		ID:     uuid.NewString(),
		Wallet: testWallet,
		Name:   name,
		Secret: secret,
	}
	assert.NoError(t, c.wdb.InsertApiKey(key))
	return key
}
