package services

import (
	"errors"
	"fmt"

	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"gorm.io/gorm"
)

// TokenContract is the token-standard surface the mint engine consumes. It
// is the only point where control leaves the core, so both calls can fail
// and must never be assumed infallible.
type TokenContract interface {
	Mint(owner string, tokenID uint64, tokenURI string) error
	OwnerOf(tokenID uint64) (string, error)
}

// TokenService resolves deployed token contract instances.
type TokenService interface {
	WithTx(tx *gorm.DB) TokenService
	Contract(address string) TokenContract
}

type tokenService struct {
	db *gorm.DB
}

// NewTokenService creates a new TokenService
func NewTokenService(db *gorm.DB) TokenService {
	return &tokenService{db: db}
}

func (s *tokenService) WithTx(tx *gorm.DB) TokenService {
	return &tokenService{db: tx}
}

func (s *tokenService) Contract(address string) TokenContract {
	return &tokenContract{db: s.db, address: address}
}

type tokenContract struct {
	db      *gorm.DB
	address string
}

// Mint assigns tokenID to owner. The call is rejected when the contract
// instance does not exist or the id was already assigned; ids are never
// reused.
func (c *tokenContract) Mint(owner string, tokenID uint64, tokenURI string) error {
	var instance models.ContractInstance
	err := c.db.First(&instance, "address = ? AND kind = ?", c.address, models.TemplateKindToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: no token contract at %s", models.ErrExternalCallFailure, c.address)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrExternalCallFailure, err)
	}

	token := models.Token{
		ContractAddress: c.address,
		TokenID:         tokenID,
		Owner:           owner,
		TokenURI:        tokenURI,
	}
	if err := c.db.Create(&token).Error; err != nil {
		// Uniqueness violation on (contract, token id) surfaces here
		return fmt.Errorf("%w: mint token %d: %v", models.ErrExternalCallFailure, tokenID, err)
	}
	return nil
}

func (c *tokenContract) OwnerOf(tokenID uint64) (string, error) {
	var token models.Token
	err := c.db.First(&token, "contract_address = ? AND token_id = ?", c.address, tokenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: token %d", models.ErrNotFound, tokenID)
	}
	if err != nil {
		return "", err
	}
	return token.Owner, nil
}
