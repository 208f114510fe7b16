package coset

import (
	"errors"
	"net/http"
	"time"

	"github.com/coset-dev/coset-server/common"
	"github.com/coset-dev/coset-server/schema"
	"github.com/gin-gonic/gin"
)

func (c *Coset) runAPI(port string) {
	r := c.engine
	r.Use(common.CORSMiddleware())

	r.GET("/info/cst-price", c.getCstPrice)

	v1 := r.Group("/", c.AuthMiddleware())
	{
		v1.POST("/oracle", c.createOracle)
		v1.GET("/oracle/list", c.listOracles)
		v1.GET("/oracle/:id", c.getOracle)
		v1.POST("/oracle/:id/edit", c.editOracle)
		v1.GET("/oracle/:id/probes", c.getProbeHistory)

		// deployment pipeline
		v1.POST("/oracle/:id/verify", c.verifyOracle)
		v1.GET("/oracle/:id/deploy/authorization", c.buildAuthorization)
		v1.POST("/oracle/:id/deploy/signature", c.acceptSignature)
		v1.POST("/oracle/:id/deploy", c.finalizeDeploy)

		v1.POST("/keys", c.createKey)
		v1.GET("/keys", c.listKeys)
		v1.DELETE("/keys/:id", c.deleteKey)

		v1.POST("/faucet", common.LimiterMiddleware(10, "H", nil), c.claimFaucet)
	}

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (c *Coset) createOracle(ctx *gin.Context) {
	req := schema.ReqCreateOracle{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	oracle, err := c.CreateOracle(callerWallet(ctx), req)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schema.RespCreateOracle{Id: oracle.ID, Oracle: *oracle})
}

func (c *Coset) getOracle(ctx *gin.Context) {
	oracle, err := c.wdb.GetOracle(callerWallet(ctx), ctx.Param("id"))
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, oracle)
}

func (c *Coset) listOracles(ctx *gin.Context) {
	oracles, err := c.wdb.GetOraclesByOwner(callerWallet(ctx))
	if err != nil {
		internalErrorResponse(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"total":   len(oracles),
		"oracles": oracles,
	})
}

func (c *Coset) editOracle(ctx *gin.Context) {
	req := schema.ReqEditOracle{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	oracle, err := c.EditOracle(callerWallet(ctx), ctx.Param("id"), req)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, oracle)
}

func (c *Coset) getProbeHistory(ctx *gin.Context) {
	// scope check before touching the KV store
	oracle, err := c.wdb.GetOracle(callerWallet(ctx), ctx.Param("id"))
	if err != nil {
		failResponse(ctx, err)
		return
	}
	records, err := c.store.LoadProbeRecords(oracle.ID, 50)
	if err != nil {
		internalErrorResponse(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"total":   len(records),
		"records": records,
	})
}

func (c *Coset) verifyOracle(ctx *gin.Context) {
	req := schema.ReqVerify{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	if req.KeyName == "" {
		errorResponse(ctx, "keyName can not be null")
		return
	}
	payload, err := c.VerifyEndpoint(callerWallet(ctx), ctx.Param("id"), req.KeyName)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schema.RespVerify{Data: payload})
}

func (c *Coset) buildAuthorization(ctx *gin.Context) {
	resp, err := c.BuildAuthorization(
		ctx.Request.Context(),
		callerWallet(ctx), ctx.Param("id"),
		ctx.Query("network"), ctx.Query("token"),
	)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *Coset) acceptSignature(ctx *gin.Context) {
	req := schema.ReqSignature{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	call, err := c.AcceptSignature(
		ctx.Request.Context(),
		callerWallet(ctx), ctx.Param("id"),
		ctx.Query("network"), ctx.Query("token"),
		req,
	)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schema.RespSignature{Call: call})
}

func (c *Coset) finalizeDeploy(ctx *gin.Context) {
	req := schema.ReqDeploy{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	if req.Tx == "" {
		errorResponse(ctx, "tx can not be null")
		return
	}
	addr, err := c.FinalizeDeployment(
		ctx.Request.Context(),
		callerWallet(ctx), ctx.Param("id"),
		ctx.Query("network"), ctx.Query("token"),
		req.Tx,
	)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schema.RespDeploy{Id: ctx.Param("id"), ContractAddress: addr})
}

func (c *Coset) createKey(ctx *gin.Context) {
	req := schema.ReqCreateKey{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	secret, key, err := c.CreateApiKey(callerWallet(ctx), req.Name)
	if err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schema.RespNewKey{Secret: secret, Summary: serializeKey(key)})
}

func (c *Coset) listKeys(ctx *gin.Context) {
	keys, err := c.ListApiKeys(callerWallet(ctx))
	if err != nil {
		internalErrorResponse(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"keys": keys})
}

func (c *Coset) deleteKey(ctx *gin.Context) {
	if err := c.DeleteApiKey(callerWallet(ctx), ctx.Param("id")); err != nil {
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (c *Coset) claimFaucet(ctx *gin.Context) {
	req := schema.ReqFaucet{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorResponse(ctx, err.Error())
		return
	}
	resp, err := c.ClaimFaucet(ctx.Request.Context(), callerWallet(ctx), req.Network, req.Token)
	if err != nil {
		cooldown := &FaucetCooldownError{}
		if errors.As(err, &cooldown) {
			ctx.JSON(http.StatusTooManyRequests, schema.RespFaucetCooldown{
				Err:         ErrFaucetCooldown.Error(),
				Token:       cooldown.Token,
				NextClaimAt: cooldown.NextClaimAt.UTC().Format(time.RFC3339),
				RemainingMs: cooldown.Remaining.Milliseconds(),
			})
			return
		}
		failResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *Coset) getCstPrice(ctx *gin.Context) {
	price, updatedAt := c.cache.GetCstPrice()
	if price == nil {
		errorResponse(ctx, "cst price not available")
		return
	}
	ctx.JSON(http.StatusOK, schema.RespCstPrice{Price: price.String(), UpdatedAt: updatedAt})
}

// failResponse maps the error taxonomy onto http statuses. Ownership misses
// and unknown references surface as 404 so record existence never leaks.
func failResponse(ctx *gin.Context, err error) {
	ctx.JSON(statusForErr(err), schema.RespErr{Err: err.Error()})
}

func statusForErr(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, schema.ErrNotFound), errors.Is(err, schema.ErrNotExist),
		errors.Is(err, ErrUnknownNetwork):
		return http.StatusNotFound
	case errors.Is(err, ErrEndpointUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrFaucetCooldown):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
