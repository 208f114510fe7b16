package coset

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coset-dev/coset-server/schema"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
)

const (
	walletTokenHeader = "x-wallet-token"
	walletCtxKey      = "wallet"
)

// AuthMiddleware resolves the caller wallet from a signed login token:
// "<expiresAtUnix>.<0x65ByteSig>" where the signature covers the standard
// personal-message hash of walletTokenMessage(expiresAt). Recovered wallets
// are memoized in the local cache until the token expires.
func (c *Coset) AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		wallet, err := c.resolveWallet(ctx.GetHeader(walletTokenHeader))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, schema.RespErr{Err: ErrUnauthenticated.Error()})
			return
		}
		ctx.Set(walletCtxKey, wallet)
		ctx.Next()
	}
}

func callerWallet(ctx *gin.Context) string {
	return ctx.GetString(walletCtxKey)
}

func (c *Coset) resolveWallet(token string) (string, error) {
	return c.resolveWalletAt(token, time.Now().Unix())
}

func (c *Coset) resolveWalletAt(token string, now int64) (string, error) {
	// the expiry check must run before the cache lookup: a memoized token
	// still dies at its embedded expiresAt, not at the cache TTL
	expiresAt, err := tokenExpiry(token)
	if err != nil || expiresAt < now {
		return "", ErrUnauthenticated
	}
	if c.localCache != nil {
		if v, err := c.localCache.Cache.Get(token); err == nil && len(v) > 0 {
			return string(v), nil
		}
	}

	wallet, err := recoverWalletToken(token, now)
	if err != nil {
		return "", err
	}
	if c.localCache != nil {
		if err := c.localCache.Cache.Set(token, []byte(wallet)); err != nil {
			log.Warn("localCache.Cache.Set(token)", "err", err)
		}
	}
	return wallet, nil
}

func tokenExpiry(token string) (int64, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return 0, ErrUnauthenticated
	}
	expiresAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return expiresAt, nil
}

func recoverWalletToken(token string, now int64) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", ErrUnauthenticated
	}
	expiresAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || expiresAt < now {
		return "", ErrUnauthenticated
	}
	sig, err := hexutil.Decode(parts[1])
	if err != nil || len(sig) != 65 {
		return "", ErrUnauthenticated
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	hash := accounts.TextHash([]byte(walletTokenMessage(expiresAt)))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return "", ErrUnauthenticated
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

func walletTokenMessage(expiresAt int64) string {
	return fmt.Sprintf("coset-login-%d", expiresAt)
}
