package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/utils"
	"gorm.io/gorm"
)

// CollectionService reads collection state and applies admin-gated config
// updates.
type CollectionService interface {
	GetCollection(address string) (*models.Collection, error)
	GetMintedCount(address string) (uint64, error)
	// UpdateConfig applies patch to the mutable config fields. Only the
	// collection admin may call it; the patch applies in full or not at all.
	UpdateConfig(caller, address string, patch models.ConfigPatch) (*models.Collection, error)
}

type collectionService struct {
	db *gorm.DB
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(db *gorm.DB) CollectionService {
	return &collectionService{db: db}
}

// ValidateConfig checks a creator-supplied config before anything is
// deployed. All violations surface as ErrInvalidConfig.
func ValidateConfig(config models.CollectionConfig) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}
	if config.MaxSupply == 0 || config.MaxSupply > models.MaxSupplyLimit {
		return fmt.Errorf("%w: max_supply must be in [1,%d], got %d",
			models.ErrInvalidConfig, models.MaxSupplyLimit, config.MaxSupply)
	}
	if config.RoyaltyPercent > 100 {
		return fmt.Errorf("%w: royalty_percent must be at most 100, got %d",
			models.ErrInvalidConfig, config.RoyaltyPercent)
	}
	for name, addr := range map[string]string{
		"royalty_recipient": config.RoyaltyRecipient,
		"owner_recipient":   config.OwnerRecipient,
		"admin":             config.Admin,
	} {
		if !utils.IsValidAddress(addr) {
			return fmt.Errorf("%w: %s is not a valid address: %q", models.ErrInvalidConfig, name, addr)
		}
	}
	if err := utils.ValidateBaseURI(config.BaseURI); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}
	if config.SaleStart != nil && config.SaleEnd != nil && !config.SaleStart.Before(*config.SaleEnd) {
		return fmt.Errorf("%w: sale_start must be before sale_end", models.ErrInvalidConfig)
	}
	return nil
}

func (s *collectionService) GetCollection(address string) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.First(&collection, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: collection %s", models.ErrNotFound, address)
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (s *collectionService) GetMintedCount(address string) (uint64, error) {
	collection, err := s.GetCollection(address)
	if err != nil {
		return 0, err
	}
	return collection.MintedCount, nil
}

func (s *collectionService) UpdateConfig(caller, address string, patch models.ConfigPatch) (*models.Collection, error) {
	var updated models.Collection
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var collection models.Collection
		err := tx.First(&collection, "address = ?", address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: collection %s", models.ErrNotFound, address)
		}
		if err != nil {
			return err
		}

		if caller != collection.Admin {
			return fmt.Errorf("%w: only the admin may update the config", models.ErrUnauthorized)
		}

		if patch.BaseURI != nil {
			if err := utils.ValidateBaseURI(*patch.BaseURI); err != nil {
				return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
			}
			collection.BaseURI = *patch.BaseURI
		}
		if patch.UnitPrice != nil {
			collection.UnitPrice = *patch.UnitPrice
		}
		if patch.SaleStart != nil {
			collection.SaleStart = patch.SaleStart
		}
		if patch.SaleEnd != nil {
			collection.SaleEnd = patch.SaleEnd
		}
		if patch.ClearSaleStart {
			collection.SaleStart = nil
		}
		if patch.ClearSaleEnd {
			collection.SaleEnd = nil
		}

		// The window must still be ordered after the patch
		if collection.SaleStart != nil && collection.SaleEnd != nil &&
			!collection.SaleStart.Before(*collection.SaleEnd) {
			return fmt.Errorf("%w: sale_start must be before sale_end", models.ErrInvalidConfig)
		}

		if err := tx.Save(&collection).Error; err != nil {
			return err
		}
		updated = collection
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
