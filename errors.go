package coset

import (
	"errors"
)

var (
	ErrUnauthenticated = errors.New("wallet_not_connected")

	ErrEndpointNotVerified  = errors.New("endpoint_not_verified")
	ErrEndpointUnreachable  = errors.New("endpoint_unreachable")
	ErrEndpointUnauthorized = errors.New("endpoint_unauthorized")
	ErrEndpointNotOk        = errors.New("endpoint_not_ok")
	ErrEndpointFetch        = errors.New("endpoint_fetch_failed")

	ErrUnknownNetwork     = errors.New("unknown_network")
	ErrUnsupportedToken   = errors.New("unsupported_token")
	ErrPriceOracleMissing = errors.New("price_oracle_missing")

	ErrInvalidTxHash = errors.New("invalid_tx_hash")
	ErrTxNotFound    = errors.New("tx_not_found")
	ErrTxFailed      = errors.New("tx_failed")
	ErrNoDeployEvent = errors.New("no_deploy_event")

	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidNonce     = errors.New("invalid_nonce")

	ErrKeyExist       = errors.New("key_name_exist")
	ErrKeyInUse       = errors.New("key_in_use")
	ErrFaucetCooldown = errors.New("faucet_cooldown")
)
