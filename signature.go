package coset

import (
	"context"
	"math/big"

	"github.com/coset-dev/coset-server/schema"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// AcceptSignature turns a signed authorization into the encoded deployOracle
// call the owner wallet submits. The endpoint is fetched again here, not read
// from the probe capture, because the deployed contract's initial state must
// reflect current data. Nothing is written to the record; only the receipt
// reconciliation advances the stage.
func (c *Coset) AcceptSignature(ctx context.Context, owner, oracleId, networkKey, tokenLabel string, req schema.ReqSignature) (string, error) {
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
	token, ok := network.Token(tokenLabel)
	if !ok {
		return "", ErrUnsupportedToken
	}

	payload, err := c.probe.Fetch(oracle.Url, oracle.AccessToken)
	if err != nil {
		return "", ErrEndpointFetch
	}

	v, r, s, err := signatureParts(req)
	if err != nil {
		return "", err
	}
	nonce, err := decodeNonce(req.Nonce)
	if err != nil {
		return "", err
	}

	price := priceToUnits(oracle.RequestPrice, token.Decimals)
	call, err := funcDeployOracle.EncodeArgs(
		token.Address,
		big.NewInt(oracle.UpdateInterval),
		price,
		payload,
		big.NewInt(req.ValidAfter),
		big.NewInt(req.ValidBefore),
		nonce,
		v, r, s,
	)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(call), nil
}

// priceToUnits converts a declared request price into the token's smallest
// unit using its configured decimal precision.
func priceToUnits(price float64, decimals int32) *big.Int {
	return decimal.NewFromFloat(price).Mul(decimal.New(1, decimals)).Round(0).BigInt()
}

// signatureParts accepts either the pre-split {v,r,s} or a full 65 byte blob
// and yields the components the chain's verification convention expects.
func signatureParts(req schema.ReqSignature) (uint8, [32]byte, [32]byte, error) {
	var r, s [32]byte
	if req.Signature != "" {
		return splitSignature(req.Signature)
	}

	rb, err := hexutil.Decode(req.Sig.R)
	if err != nil || len(rb) != 32 {
		return 0, r, s, ErrInvalidSignature
	}
	sb, err := hexutil.Decode(req.Sig.S)
	if err != nil || len(sb) != 32 {
		return 0, r, s, ErrInvalidSignature
	}
	copy(r[:], rb)
	copy(s[:], sb)
	return normalizeV(req.Sig.V), r, s, nil
}

func splitSignature(sig string) (uint8, [32]byte, [32]byte, error) {
	var r, s [32]byte
	raw, err := hexutil.Decode(sig)
	if err != nil || len(raw) != 65 {
		return 0, r, s, ErrInvalidSignature
	}
	copy(r[:], raw[:32])
	copy(s[:], raw[32:64])
	return normalizeV(raw[64]), r, s, nil
}

func normalizeV(v uint8) uint8 {
	if v < 27 {
		return v + 27
	}
	return v
}

func decodeNonce(nonce string) ([32]byte, error) {
	var out [32]byte
	raw, err := hexutil.Decode(nonce)
	if err != nil || len(raw) != 32 {
		return out, ErrInvalidNonce
	}
	copy(out[:], raw)
	return out, nil
}
