package models

import "time"

// MaxSupplyLimit caps max_supply for any collection. Collections larger than
// this are rejected at creation.
const MaxSupplyLimit = 10000

// Collection is the canonical configuration and mint progress of one deployed
// minter+token contract pair. Rows are created by the factory, mutated only
// through admin-gated updates, and never deleted. MintedCount never exceeds
// MaxSupply.
type Collection struct {
	Address              string `gorm:"primaryKey;type:varchar(42)" json:"address"`
	TokenContractAddress string `gorm:"not null;type:varchar(42)" json:"token_contract_address"`

	Name    string `gorm:"not null" json:"name"`
	Symbol  string `gorm:"not null" json:"symbol"`
	BaseURI string `gorm:"not null" json:"base_uri"`

	MaxSupply   uint64 `gorm:"not null" json:"max_supply"`
	MintedCount uint64 `gorm:"not null;default:0" json:"minted_count"`

	// UnitPrice is denominated in the smallest currency unit
	UnitPrice        uint64 `gorm:"not null" json:"unit_price"`
	RoyaltyPercent   uint64 `gorm:"not null" json:"royalty_percent"`
	RoyaltyRecipient string `gorm:"not null;type:varchar(42)" json:"royalty_recipient"`
	OwnerRecipient   string `gorm:"not null;type:varchar(42)" json:"owner_recipient"`

	SaleStart *time.Time `json:"sale_start,omitempty"`
	SaleEnd   *time.Time `json:"sale_end,omitempty"`

	Admin string `gorm:"not null;type:varchar(42)" json:"admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionConfig carries the creator-supplied parameters for a new
// collection. It is validated before any deployment step runs.
type CollectionConfig struct {
	Name             string     `json:"name" validate:"required"`
	Symbol           string     `json:"symbol" validate:"required"`
	BaseURI          string     `json:"base_uri" validate:"required"`
	MaxSupply        uint64     `json:"max_supply" validate:"required"`
	UnitPrice        uint64     `json:"unit_price"`
	RoyaltyPercent   uint64     `json:"royalty_percent"`
	RoyaltyRecipient string     `json:"royalty_recipient" validate:"required"`
	OwnerRecipient   string     `json:"owner_recipient" validate:"required"`
	SaleStart        *time.Time `json:"sale_start,omitempty"`
	SaleEnd          *time.Time `json:"sale_end,omitempty"`
	Admin            string     `json:"admin" validate:"required"`
}

// ConfigPatch is an all-or-nothing update to the mutable collection fields.
// A nil pointer leaves the field unchanged; the Clear flags remove an
// existing sale window bound. MaxSupply, RoyaltyPercent and RoyaltyRecipient
// are immutable after creation.
type ConfigPatch struct {
	BaseURI        *string    `json:"base_uri,omitempty"`
	UnitPrice      *uint64    `json:"unit_price,omitempty"`
	SaleStart      *time.Time `json:"sale_start,omitempty"`
	SaleEnd        *time.Time `json:"sale_end,omitempty"`
	ClearSaleStart bool       `json:"clear_sale_start,omitempty"`
	ClearSaleEnd   bool       `json:"clear_sale_end,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p ConfigPatch) IsEmpty() bool {
	return p.BaseURI == nil && p.UnitPrice == nil &&
		p.SaleStart == nil && p.SaleEnd == nil &&
		!p.ClearSaleStart && !p.ClearSaleEnd
}
