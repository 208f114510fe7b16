package schema

import (
	"encoding/json"
)

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}

type ReqCreateOracle struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Endpoint    string  `json:"endpoint"`
	Price       float64 `json:"price"`
	Interval    int64   `json:"interval"` // seconds, optional
}

type RespCreateOracle struct {
	Id     string `json:"id"`
	Oracle Oracle `json:"oracle"`
}

type ReqEditOracle struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ReqVerify struct {
	KeyName string `json:"keyName"`
}

type RespVerify struct {
	Data json.RawMessage `json:"data"`
}

// TypedDataDomain binds the authorization message to one token contract on
// one chain so the signature cannot be replayed elsewhere.
type TypedDataDomain struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	ChainId           int64  `json:"chainId"`
	VerifyingContract string `json:"verifyingContract"`
}

type TypedDataField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type AuthMessage struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"` // smallest token unit, decimal string
	ValidAfter  int64  `json:"validAfter"`
	ValidBefore int64  `json:"validBefore"`
	Nonce       string `json:"nonce"` // 0x-prefixed 32 byte hex
}

type RespAuthorization struct {
	Domain      TypedDataDomain             `json:"domain"`
	Types       map[string][]TypedDataField `json:"types"`
	PrimaryType string                      `json:"primaryType"`
	Nonce       string                      `json:"nonce"`
	Message     AuthMessage                 `json:"message"`
}

type SigParts struct {
	V uint8  `json:"v"`
	R string `json:"r"` // 0x-prefixed 32 byte hex
	S string `json:"s"` // 0x-prefixed 32 byte hex
}

type ReqSignature struct {
	ValidAfter  int64    `json:"validAfter"`
	ValidBefore int64    `json:"validBefore"`
	Nonce       string   `json:"nonce"`
	Sig         SigParts `json:"sig"`
	// Signature optionally carries the full 65 byte blob instead of Sig.
	Signature string `json:"signature,omitempty"`
}

type RespSignature struct {
	Call string `json:"call"` // 0x-prefixed abi-encoded deployOracle call
}

type ReqDeploy struct {
	Tx string `json:"tx"`
}

type RespDeploy struct {
	Id              string `json:"id"`
	ContractAddress string `json:"contractAddress"`
}

type RespKey struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Key       string `json:"key"` // masked
	CreatedAt string `json:"createdAt"`
}

type ReqCreateKey struct {
	Name string `json:"name"`
}

type RespNewKey struct {
	Secret  string  `json:"secret"`
	Summary RespKey `json:"summary"`
}

type ReqFaucet struct {
	Network string `json:"network"`
	Token   string `json:"token"`
}

type RespFaucet struct {
	Ok          bool   `json:"ok"`
	Token       string `json:"token"`
	Amount      string `json:"amount"`
	ClaimedAt   string `json:"claimedAt"`
	NextClaimAt string `json:"nextClaimAt"`
}

type RespFaucetCooldown struct {
	Err         string `json:"error"`
	Token       string `json:"token"`
	NextClaimAt string `json:"nextClaimAt"`
	RemainingMs int64  `json:"remainingMs"`
}

type RespCstPrice struct {
	Price     string `json:"price"` // one USDC in CST smallest units
	UpdatedAt int64  `json:"updatedAt"`
}
