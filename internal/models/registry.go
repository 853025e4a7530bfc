package models

import "time"

// DeploymentStage tracks how far a CreateCollection attempt progressed.
// Stages only advance; each transition is guarded by the success of the
// prior deployment step.
type DeploymentStage string

const (
	DeploymentStageRequested      DeploymentStage = "requested"
	DeploymentStageTokenDeployed  DeploymentStage = "token_deployed"
	DeploymentStageMinterDeployed DeploymentStage = "minter_deployed"
	DeploymentStageRegistered     DeploymentStage = "registered"
)

type DeploymentStatus string

const (
	DeploymentStatusPending    DeploymentStatus = "pending"
	DeploymentStatusRegistered DeploymentStatus = "registered"
	DeploymentStatusFailed     DeploymentStatus = "failed"
)

// RegistryEntry records one successfully deployed collection. Entries are
// append-only and immutable; Seq is the creation order used for pagination.
type RegistryEntry struct {
	Seq                  uint64    `gorm:"primaryKey;autoIncrement" json:"seq"`
	CollectionAddress    string    `gorm:"uniqueIndex;not null;type:varchar(42)" json:"collection_address"`
	TokenContractAddress string    `gorm:"not null;type:varchar(42)" json:"token_contract_address"`
	Creator              string    `gorm:"index;not null;type:varchar(42)" json:"creator"`
	MinterCodeID         uint64    `gorm:"not null" json:"minter_code_id"`
	TokenCodeID          uint64    `gorm:"not null" json:"cw_token_code_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// DeploymentSession is the audit trail of one CreateCollection attempt. It
// is observability only: registry and collection state never depend on it,
// and a failed attempt leaves the session behind while everything else is
// rolled back.
type DeploymentSession struct {
	ID                   string           `gorm:"primaryKey" json:"id"`
	Creator              string           `gorm:"index;not null;type:varchar(42)" json:"creator"`
	Stage                DeploymentStage  `gorm:"default:requested" json:"stage"`
	Status               DeploymentStatus `gorm:"default:pending" json:"status"`
	CollectionAddress    string           `json:"collection_address,omitempty"`
	TokenContractAddress string           `json:"token_contract_address,omitempty"`
	Error                string           `json:"error,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}
