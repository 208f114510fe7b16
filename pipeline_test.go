package coset

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/coset-dev/coset-server/config"
	"github.com/coset-dev/coset-server/schema"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
)

// Walks the whole pipeline the way a client would: draft, probe, signed
// authorization, encoded call, receipt reconciliation.
func TestDeploymentPipeline(t *testing.T) {
	srv := newEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-a" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"temp":72}`))
	})

	c, chain := newTestCoset(t)
	insertTestKey(t, c, "prod-key", "secret-a")

	// creation only accepts encrypted endpoints, so the plain-http probe
	// target is rejected here and the draft is seeded directly
	_, err := c.CreateOracle(testWallet, schema.ReqCreateOracle{
		Name:     "weather-station",
		Endpoint: srv.URL,
		Price:    0.05,
		Interval: 600,
	})
	assert.Error(t, err)

	oracle := insertTestOracle(t, c, false, srv.URL)
	assert.Equal(t, schema.StageDraft, oracle.Stage())

	// draft cannot reach any deployment operation yet
	_, err = c.BuildAuthorization(context.Background(), testWallet, oracle.ID, "mantle-testnet", config.TokenLabelUsdc)
	assert.ErrorIs(t, err, ErrEndpointNotVerified)

	payload, err := c.VerifyEndpoint(testWallet, oracle.ID, "prod-key")
	assert.NoError(t, err)
	assert.Equal(t, `{"temp":72}`, string(payload))

	oracle, err = c.wdb.GetOracle(testWallet, oracle.ID)
	assert.NoError(t, err)
	assert.Equal(t, schema.StageVerified, oracle.Stage())

	auth, err := c.BuildAuthorization(context.Background(), testWallet, oracle.ID, "mantle-testnet", config.TokenLabelUsdc)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), auth.Message.ValidAfter)
	assert.Greater(t, auth.Message.ValidBefore, time.Now().Unix())

	req := testSigRequest()
	req.ValidAfter = auth.Message.ValidAfter
	req.ValidBefore = auth.Message.ValidBefore
	req.Nonce = auth.Nonce
	call, err := c.AcceptSignature(context.Background(), testWallet, oracle.ID, "mantle-testnet", config.TokenLabelUsdc, req)
	assert.NoError(t, err)
	assert.NotEqual(t, "", call)

	deployed := common.HexToAddress("0x1111111111111111111111111111111111111111")
	chain.receipt = &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs:   []*types.Log{deployLog(deployed, common.HexToAddress(testWallet))},
	}
	addr, err := c.FinalizeDeployment(context.Background(), testWallet, oracle.ID, "mantle-testnet", config.TokenLabelUsdc, testTxHash)
	assert.NoError(t, err)
	assert.Equal(t, deployed.Hex(), addr)

	oracle, err = c.wdb.GetOracle(testWallet, oracle.ID)
	assert.NoError(t, err)
	assert.Equal(t, schema.StageDeployed, oracle.Stage())
	assert.Equal(t, "mantle-testnet", oracle.Network)
	assert.True(t, oracle.ApiVerified)
}
