package schema

import (
	"time"
)

type ApiKey struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Wallet string `gorm:"index:idx_key_wallet;index:idx_key_owner_name,unique" json:"wallet"`
	Name   string `gorm:"index:idx_key_owner_name,unique" json:"name"`
	Secret string `gorm:"index:idx_key_secret,unique" json:"-"`
}

type FaucetClaim struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Wallet  string `gorm:"index:idx_claim_wallet" json:"wallet"`
	Network string `json:"network"`
	Token   string `json:"token"`  // token label, e.g. "USDC"
	Amount  string `json:"amount"` // smallest token unit
}
