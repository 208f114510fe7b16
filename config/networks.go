package config

import (
	"github.com/ethereum/go-ethereum/common"
)

// Token is one accepted payment token on a network. Label is the value
// callers pass in requests; Name and Version are read live from chain when
// building authorizations, the static copies here are informational only.
type Token struct {
	Label    string
	Symbol   string
	Name     string
	Version  string
	Decimals int32
	Address  common.Address
}

type Network struct {
	Key     string
	ChainId int64
	Name    string
	Testnet bool
	Native  string
	Rpc     string
	Factory common.Address
	Tokens  []Token
}

func (n *Network) Token(label string) (Token, bool) {
	for _, t := range n.Tokens {
		if t.Label == label {
			return t, true
		}
	}
	return Token{}, false
}

// Registry is the process-wide network table. Built once at start and never
// mutated afterwards; injected into every component that needs it.
type Registry struct {
	networks map[string]Network
	keys     []string
}

func NewRegistry(networks ...Network) *Registry {
	r := &Registry{networks: make(map[string]Network, len(networks))}
	for _, n := range networks {
		r.networks[n.Key] = n
		r.keys = append(r.keys, n.Key)
	}
	return r
}

func (r *Registry) Get(key string) (Network, bool) {
	n, ok := r.networks[key]
	return n, ok
}

func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

const (
	TokenLabelUsdc = "USDC"
	TokenLabelCst  = "CST"

	SymbolCst = "CST"
)

// DefaultRegistry returns the supported mantle networks. factoryAddr is the
// deployed oracle factory, shared across networks.
func DefaultRegistry(factoryAddr string) *Registry {
	factory := common.HexToAddress(factoryAddr)
	return NewRegistry(
		Network{
			Key:     "mantle",
			ChainId: 5000,
			Name:    "Mantle",
			Native:  "MNT",
			Rpc:     "https://rpc.mantle.xyz",
			Factory: factory,
			Tokens: []Token{
				{
					Label:    TokenLabelUsdc,
					Symbol:   "USDC",
					Name:     "USD Coin",
					Version:  "2",
					Decimals: 6,
					Address:  common.HexToAddress("0x09bc4e0d864854c6afb6eb9a9cdf58ac190d0df9"),
				},
				{
					Label:    TokenLabelCst,
					Symbol:   SymbolCst,
					Name:     "Coset",
					Version:  "1",
					Decimals: 6,
					Address:  common.HexToAddress("0x77A90090C9bcc45940E18657fB82Fb70A2D494fd"),
				},
			},
		},
		Network{
			Key:     "mantle-testnet",
			ChainId: 5003,
			Name:    "Mantle Testnet",
			Testnet: true,
			Native:  "MNT",
			Rpc:     "https://rpc.sepolia.mantle.xyz",
			Factory: factory,
			Tokens: []Token{
				{
					Label:    TokenLabelUsdc,
					Symbol:   "TUSDC",
					Name:     "Testnet USDC",
					Version:  "2",
					Decimals: 6,
					Address:  common.HexToAddress("0x05856b07544044873616d390Cc50c785fe8a8885"),
				},
				{
					Label:    TokenLabelCst,
					Symbol:   SymbolCst,
					Name:     "Coset",
					Version:  "1",
					Decimals: 6,
					Address:  common.HexToAddress("0x77A90090C9bcc45940E18657fB82Fb70A2D494fd"),
				},
			},
		},
	)
}
