package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/utils"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// CollectionFilter selects a page of registry entries. PageToken is the
// opaque token returned by the previous page; empty starts from the
// beginning.
type CollectionFilter struct {
	Creator   string
	PageToken string
	PageSize  int
}

// FactoryService deploys new collections from the pinned code templates and
// tracks them in an append-only registry. A collection either comes up
// whole (token contract, minter contract, registry entry) or not at all.
type FactoryService interface {
	CreateCollection(config models.CollectionConfig, creator string) (*models.RegistryEntry, error)
	GetRegistryEntry(collectionAddress string) (*models.RegistryEntry, error)
	// ListCollections returns one page of entries in creation order along
	// with the token for the next page ("" when exhausted).
	ListCollections(filter CollectionFilter) ([]models.RegistryEntry, string, error)
	GetDeploymentSession(id string) (*models.DeploymentSession, error)
}

type factoryService struct {
	db           *gorm.DB
	chain        ChainService
	minterCodeID uint64
	tokenCodeID  uint64
}

// NewFactoryService creates a FactoryService pinned to a minter and token
// code id. Both ids must already be approved on the host; they cannot be
// changed for the lifetime of the factory.
func NewFactoryService(db *gorm.DB, chain ChainService, minterCodeID, tokenCodeID uint64) (FactoryService, error) {
	for _, check := range []struct {
		codeID uint64
		kind   models.TemplateKind
	}{
		{minterCodeID, models.TemplateKindMinter},
		{tokenCodeID, models.TemplateKindToken},
	} {
		template, err := chain.GetCodeTemplate(check.codeID)
		if err != nil {
			return nil, err
		}
		if template.Kind != check.kind {
			return nil, fmt.Errorf("%w: code id %d is a %s template, wanted %s",
				models.ErrTemplateNotFound, check.codeID, template.Kind, check.kind)
		}
	}

	return &factoryService{
		db:           db,
		chain:        chain,
		minterCodeID: minterCodeID,
		tokenCodeID:  tokenCodeID,
	}, nil
}

func (s *factoryService) CreateCollection(config models.CollectionConfig, creator string) (*models.RegistryEntry, error) {
	if !utils.IsValidAddress(creator) {
		return nil, fmt.Errorf("%w: creator is not a valid address: %q", models.ErrInvalidConfig, creator)
	}
	// Fail fast before anything is deployed or recorded
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	// The audit session lives outside the unit of work so a failed attempt
	// still leaves a trail; registry state never depends on it.
	session := models.DeploymentSession{
		ID:      uuid.NewString(),
		Creator: creator,
		Stage:   models.DeploymentStageRequested,
		Status:  models.DeploymentStatusPending,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	var entry models.RegistryEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		chain := s.chain.WithTx(tx)

		tokenAddress, err := chain.InstantiateContract(s.tokenCodeID, models.TemplateKindToken, models.JSON{
			"name":   config.Name,
			"symbol": config.Symbol,
		})
		if err != nil {
			return err
		}
		session.Stage = models.DeploymentStageTokenDeployed
		session.TokenContractAddress = tokenAddress

		minterAddress, err := chain.InstantiateContract(s.minterCodeID, models.TemplateKindMinter, models.JSON{
			"token_contract_address": tokenAddress,
			"base_uri":               config.BaseURI,
			"max_supply":             config.MaxSupply,
		})
		if err != nil {
			return err
		}
		session.Stage = models.DeploymentStageMinterDeployed
		session.CollectionAddress = minterAddress

		collection := models.Collection{
			Address:              minterAddress,
			TokenContractAddress: tokenAddress,
			Name:                 config.Name,
			Symbol:               config.Symbol,
			BaseURI:              config.BaseURI,
			MaxSupply:            config.MaxSupply,
			UnitPrice:            config.UnitPrice,
			RoyaltyPercent:       config.RoyaltyPercent,
			RoyaltyRecipient:     config.RoyaltyRecipient,
			OwnerRecipient:       config.OwnerRecipient,
			SaleStart:            config.SaleStart,
			SaleEnd:              config.SaleEnd,
			Admin:                config.Admin,
		}
		if err := tx.Create(&collection).Error; err != nil {
			return err
		}

		entry = models.RegistryEntry{
			CollectionAddress:    minterAddress,
			TokenContractAddress: tokenAddress,
			Creator:              creator,
			MinterCodeID:         s.minterCodeID,
			TokenCodeID:          s.tokenCodeID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		session.Stage = models.DeploymentStageRegistered
		return nil
	})

	if err != nil {
		session.Status = models.DeploymentStatusFailed
		session.Error = err.Error()
		if saveErr := s.db.Save(&session).Error; saveErr != nil {
			log.Printf("failed to record deployment session %s failure: %v", session.ID, saveErr)
		}
		return nil, err
	}

	session.Status = models.DeploymentStatusRegistered
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *factoryService) GetRegistryEntry(collectionAddress string) (*models.RegistryEntry, error) {
	var entry models.RegistryEntry
	err := s.db.First(&entry, "collection_address = ?", collectionAddress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: collection %s", models.ErrNotFound, collectionAddress)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *factoryService) ListCollections(filter CollectionFilter) ([]models.RegistryEntry, string, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := s.db.Model(&models.RegistryEntry{}).Order("seq asc").Limit(pageSize)
	if filter.Creator != "" {
		query = query.Where("creator = ?", filter.Creator)
	}
	if filter.PageToken != "" {
		afterSeq, err := strconv.ParseUint(filter.PageToken, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("%w: bad page token %q", models.ErrInvalidConfig, filter.PageToken)
		}
		query = query.Where("seq > ?", afterSeq)
	}

	var entries []models.RegistryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(entries) == pageSize {
		nextToken = strconv.FormatUint(entries[len(entries)-1].Seq, 10)
	}
	return entries, nextToken, nil
}

func (s *factoryService) GetDeploymentSession(id string) (*models.DeploymentSession, error) {
	var session models.DeploymentSession
	err := s.db.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
