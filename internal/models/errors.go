package models

import "errors"

// Error kinds surfaced by the launchpad core. Every failing operation aborts
// as a whole and reverts any tentative state; callers branch on these with
// errors.Is. Errors are terminal; availability is checked through the read
// operations, never by catching one of these.
var (
	// Validation errors
	ErrInvalidConfig  = errors.New("invalid config")
	ErrImmutableField = errors.New("immutable field")

	// State errors
	ErrSupplyExhausted = errors.New("supply exhausted")
	ErrSaleNotStarted  = errors.New("sale not started")
	ErrSaleEnded       = errors.New("sale ended")

	// Payment errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Deployment errors
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateDeployFailure = errors.New("template deploy failure")

	// The downstream token contract rejected a call
	ErrExternalCallFailure = errors.New("external call failure")

	ErrNotFound = errors.New("not found")
)
