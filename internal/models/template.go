package models

import "time"

type TemplateKind string

const (
	TemplateKindMinter TemplateKind = "minter"
	TemplateKindToken  TemplateKind = "token"
)

// CodeTemplate is a pre-approved code blueprint stored on the host. The
// factory only instantiates contracts from code ids present here; how code
// gets vetted and uploaded is outside this module.
type CodeTemplate struct {
	CodeID      uint64       `gorm:"primaryKey;autoIncrement:false" json:"code_id"`
	Kind        TemplateKind `gorm:"not null" json:"kind"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
}
