package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/utils"
	"gorm.io/gorm"
)

// MaxTokensPerBatchMint caps how many tokens one batch mint may assign.
const MaxTokensPerBatchMint = 200

// MintService executes mint requests against a collection and its token
// contract. Each request is one unit of work: every check runs against a
// single snapshot, and a failure at any step (including the external token
// call) reverts everything.
type MintService interface {
	// Mint assigns the next token id to caller. The attached payment must
	// cover the unit price; any excess is captured and routed through the
	// royalty split rather than refunded.
	Mint(caller, collectionAddress string, payment uint64) (*models.MintEvent, error)
	// MintTo is Mint with the token owned by recipient instead of caller.
	MintTo(caller, recipient, collectionAddress string, payment uint64) (*models.MintEvent, error)
	// BatchMint assigns count sequential token ids to recipient without
	// payment. Admin only; all tokens mint or none do.
	BatchMint(caller, recipient, collectionAddress string, count uint64) ([]models.MintEvent, error)
	// RoyaltyQuote previews the royalty split for a hypothetical sale price.
	RoyaltyQuote(collectionAddress string, salePrice uint64) (recipient string, royalty uint64, err error)
}

type mintService struct {
	db     *gorm.DB
	tokens TokenService
	chain  ChainService
	now    func() time.Time
}

// NewMintService creates a new MintService
func NewMintService(db *gorm.DB, tokens TokenService, chain ChainService) MintService {
	return &mintService{
		db:     db,
		tokens: tokens,
		chain:  chain,
		now:    time.Now,
	}
}

func (s *mintService) Mint(caller, collectionAddress string, payment uint64) (*models.MintEvent, error) {
	return s.MintTo(caller, caller, collectionAddress, payment)
}

func (s *mintService) MintTo(caller, recipient, collectionAddress string, payment uint64) (*models.MintEvent, error) {
	if !utils.IsValidAddress(recipient) {
		return nil, fmt.Errorf("%w: recipient is not a valid address: %q", models.ErrInvalidConfig, recipient)
	}

	var event models.MintEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		collection, err := loadCollection(tx, collectionAddress)
		if err != nil {
			return err
		}

		if err := s.checkSaleWindow(collection); err != nil {
			return err
		}
		if collection.MintedCount >= collection.MaxSupply {
			return fmt.Errorf("%w: all %d tokens minted", models.ErrSupplyExhausted, collection.MaxSupply)
		}
		if payment < collection.UnitPrice {
			return fmt.Errorf("%w: payment %d below unit price %d",
				models.ErrInsufficientFunds, payment, collection.UnitPrice)
		}

		tokenID := collection.MintedCount + 1
		tokenURI := utils.TokenURI(collection.BaseURI, tokenID)

		// External interaction before any local commit; its failure aborts
		// the whole transaction
		contract := s.tokens.WithTx(tx).Contract(collection.TokenContractAddress)
		if err := contract.Mint(recipient, tokenID, tokenURI); err != nil {
			return err
		}

		royalty, remainder := utils.SplitRoyalty(payment, collection.RoyaltyPercent)
		if err := s.commitMint(tx, collection, tokenID, royalty, remainder); err != nil {
			return err
		}

		event = models.MintEvent{
			CollectionAddress: collection.Address,
			TokenID:           tokenID,
			Minter:            caller,
			Price:             payment,
			RoyaltyAmount:     royalty,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *mintService) BatchMint(caller, recipient, collectionAddress string, count uint64) ([]models.MintEvent, error) {
	if count == 0 || count > MaxTokensPerBatchMint {
		return nil, fmt.Errorf("%w: batch size must be in [1,%d], got %d",
			models.ErrInvalidConfig, MaxTokensPerBatchMint, count)
	}
	if !utils.IsValidAddress(recipient) {
		return nil, fmt.Errorf("%w: recipient is not a valid address: %q", models.ErrInvalidConfig, recipient)
	}

	var events []models.MintEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		collection, err := loadCollection(tx, collectionAddress)
		if err != nil {
			return err
		}

		if caller != collection.Admin {
			return fmt.Errorf("%w: only the admin may batch mint", models.ErrUnauthorized)
		}
		if collection.MaxSupply-collection.MintedCount < count {
			return fmt.Errorf("%w: %d of %d tokens minted, cannot mint %d more",
				models.ErrSupplyExhausted, collection.MintedCount, collection.MaxSupply, count)
		}

		contract := s.tokens.WithTx(tx).Contract(collection.TokenContractAddress)
		for i := uint64(1); i <= count; i++ {
			tokenID := collection.MintedCount + i
			if err := contract.Mint(recipient, tokenID, utils.TokenURI(collection.BaseURI, tokenID)); err != nil {
				return err
			}
			events = append(events, models.MintEvent{
				CollectionAddress: collection.Address,
				TokenID:           tokenID,
				Minter:            caller,
			})
		}

		result := tx.Model(&models.Collection{}).
			Where("address = ? AND minted_count = ?", collection.Address, collection.MintedCount).
			Update("minted_count", collection.MintedCount+count)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: minted count moved during batch mint", models.ErrExternalCallFailure)
		}
		return tx.Create(&events).Error
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *mintService) RoyaltyQuote(collectionAddress string, salePrice uint64) (string, uint64, error) {
	collection, err := loadCollection(s.db, collectionAddress)
	if err != nil {
		return "", 0, err
	}
	royalty, _ := utils.SplitRoyalty(salePrice, collection.RoyaltyPercent)
	return collection.RoyaltyRecipient, royalty, nil
}

// checkSaleWindow enforces the sale bounds when configured.
func (s *mintService) checkSaleWindow(collection *models.Collection) error {
	now := s.now()
	if collection.SaleStart != nil && now.Before(*collection.SaleStart) {
		return fmt.Errorf("%w: sale opens at %s", models.ErrSaleNotStarted, collection.SaleStart.UTC())
	}
	if collection.SaleEnd != nil && now.After(*collection.SaleEnd) {
		return fmt.Errorf("%w: sale closed at %s", models.ErrSaleEnded, collection.SaleEnd.UTC())
	}
	return nil
}

// commitMint applies the local effects of one successful external mint:
// increments the counter against the snapshot it was computed from and
// routes the payment split.
func (s *mintService) commitMint(tx *gorm.DB, collection *models.Collection, tokenID, royalty, remainder uint64) error {
	result := tx.Model(&models.Collection{}).
		Where("address = ? AND minted_count = ?", collection.Address, collection.MintedCount).
		Update("minted_count", tokenID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: minted count moved during mint", models.ErrExternalCallFailure)
	}

	chain := s.chain.WithTx(tx)
	if err := chain.CreditBalance(collection.RoyaltyRecipient, royalty); err != nil {
		return err
	}
	return chain.CreditBalance(collection.OwnerRecipient, remainder)
}

func loadCollection(db *gorm.DB, address string) (*models.Collection, error) {
	var collection models.Collection
	err := db.First(&collection, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: collection %s", models.ErrNotFound, address)
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}
