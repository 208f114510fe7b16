package schema

import (
	"time"
)

// Oracle deployment stages. Stages only move forward: a draft becomes
// endpoint-verified once a probe succeeds, and verified becomes deployed
// once a deployment receipt is reconciled. No field marking an earlier
// stage is ever cleared.
const (
	StageDraft    = "draft"
	StageVerified = "verified"
	StageDeployed = "deployed"
)

const ProtocolHttps = "https"

type Oracle struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner       string `gorm:"index:idx_oracle_owner" json:"owner"` // owner wallet address
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestPrice   float64 `json:"requestPrice"`   // declared price per request, in payment token units
	UpdateInterval int64   `json:"updateInterval"` // recommended update interval in seconds, 0 means unset

	Protocol    string `json:"protocol"` // only "https" accepted at creation
	Url         string `json:"url"`
	AccessToken string `json:"-"` // credential frozen by the first successful verification

	ApiVerified     bool   `json:"apiVerified"`
	DeployTxHash    string `json:"deployTxHash"`
	Network         string `json:"network"`
	ContractAddress string `gorm:"index:idx_oracle_addr" json:"contractAddress"`
}

func (o *Oracle) Stage() string {
	switch {
	case o.ContractAddress != "":
		return StageDeployed
	case o.ApiVerified:
		return StageVerified
	default:
		return StageDraft
	}
}
