package models

import "time"

// ContractInstance is the host's record of an instantiated contract. One row
// per deployed token or minter instance.
type ContractInstance struct {
	Address    string       `gorm:"primaryKey;type:varchar(42)" json:"address"`
	CodeID     uint64       `gorm:"not null" json:"code_id"`
	Kind       TemplateKind `gorm:"not null" json:"kind"`
	InitParams JSON         `gorm:"type:text" json:"init_params"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Token is one minted token held by a token-standard contract instance.
// The (contract, token id) pair is unique for the lifetime of the contract;
// ids are never reused.
type Token struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ContractAddress string    `gorm:"uniqueIndex:idx_contract_token;not null;type:varchar(42)" json:"contract_address"`
	TokenID         uint64    `gorm:"uniqueIndex:idx_contract_token;not null" json:"token_id"`
	Owner           string    `gorm:"index;not null;type:varchar(42)" json:"owner"`
	TokenURI        string    `gorm:"not null" json:"token_uri"`
	CreatedAt       time.Time `json:"created_at"`
}

// MintEvent is emitted once per successful mint for external indexing.
type MintEvent struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CollectionAddress string    `gorm:"index;not null;type:varchar(42)" json:"collection_address"`
	TokenID           uint64    `gorm:"not null" json:"token_id"`
	Minter            string    `gorm:"not null;type:varchar(42)" json:"minter"`
	Price             uint64    `gorm:"not null" json:"price"`
	RoyaltyAmount     uint64    `gorm:"not null" json:"royalty_amount"`
	CreatedAt         time.Time `json:"created_at"`
}

// Balance is the settlement ledger credited when a mint payment is routed.
type Balance struct {
	Address   string    `gorm:"primaryKey;type:varchar(42)" json:"address"`
	Amount    uint64    `gorm:"not null;default:0" json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}
