package services

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"gorm.io/gorm"
)

// ChainService is the host side of the ledger: it knows which code
// templates are approved, instantiates contracts from them, and keeps the
// settlement balances credited during mint routing.
type ChainService interface {
	// WithTx returns a ChainService bound to tx so host mutations join the
	// caller's unit of work and roll back with it.
	WithTx(tx *gorm.DB) ChainService

	GetCodeTemplate(codeID uint64) (*models.CodeTemplate, error)
	// InstantiateContract deploys a new contract instance from an approved
	// code id and returns its address.
	InstantiateContract(codeID uint64, kind models.TemplateKind, initParams models.JSON) (string, error)

	CreditBalance(address string, amount uint64) error
	GetBalance(address string) (uint64, error)
}

type chainService struct {
	db *gorm.DB
}

// NewChainService creates a new ChainService
func NewChainService(db *gorm.DB) ChainService {
	return &chainService{db: db}
}

func (s *chainService) WithTx(tx *gorm.DB) ChainService {
	return &chainService{db: tx}
}

// GetCodeTemplate returns the approved template for codeID, or
// ErrTemplateNotFound if the host does not know the code id.
func (s *chainService) GetCodeTemplate(codeID uint64) (*models.CodeTemplate, error) {
	var template models.CodeTemplate
	err := s.db.First(&template, "code_id = ?", codeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: code id %d", models.ErrTemplateNotFound, codeID)
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *chainService) InstantiateContract(codeID uint64, kind models.TemplateKind, initParams models.JSON) (string, error) {
	template, err := s.GetCodeTemplate(codeID)
	if err != nil {
		return "", err
	}
	if template.Kind != kind {
		return "", fmt.Errorf("%w: code id %d is a %s template, wanted %s",
			models.ErrTemplateDeployFailure, codeID, template.Kind, kind)
	}

	address := newContractAddress()
	instance := models.ContractInstance{
		Address:    address,
		CodeID:     codeID,
		Kind:       kind,
		InitParams: initParams,
	}
	if err := s.db.Create(&instance).Error; err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrTemplateDeployFailure, err)
	}
	return address, nil
}

// CreditBalance adds amount to the balance of address, creating the row on
// first credit.
func (s *chainService) CreditBalance(address string, amount uint64) error {
	var balance models.Balance
	err := s.db.First(&balance, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.Balance{Address: address, Amount: amount}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&models.Balance{}).
		Where("address = ?", address).
		Update("amount", balance.Amount+amount).Error
}

func (s *chainService) GetBalance(address string) (uint64, error) {
	var balance models.Balance
	err := s.db.First(&balance, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

// newContractAddress derives a fresh 20-byte address from a random nonce,
// the same shape wallets expect from the host.
func newContractAddress() string {
	nonce := uuid.New()
	hash := crypto.Keccak256(nonce[:])
	return common.BytesToAddress(hash[12:]).Hex()
}
