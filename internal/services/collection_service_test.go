package services

import (
	"testing"
	"time"

	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CollectionConfig)
		wantErr bool
	}{
		{"valid", func(c *models.CollectionConfig) {}, false},
		{"zero supply", func(c *models.CollectionConfig) { c.MaxSupply = 0 }, true},
		{"supply above limit", func(c *models.CollectionConfig) { c.MaxSupply = models.MaxSupplyLimit + 1 }, true},
		{"supply at limit", func(c *models.CollectionConfig) { c.MaxSupply = models.MaxSupplyLimit }, false},
		{"royalty above 100", func(c *models.CollectionConfig) { c.RoyaltyPercent = 101 }, true},
		{"royalty at 100", func(c *models.CollectionConfig) { c.RoyaltyPercent = 100 }, false},
		{"royalty at 0", func(c *models.CollectionConfig) { c.RoyaltyPercent = 0 }, false},
		{"bad royalty recipient", func(c *models.CollectionConfig) { c.RoyaltyRecipient = "xyz" }, true},
		{"bad owner recipient", func(c *models.CollectionConfig) { c.OwnerRecipient = "" }, true},
		{"bad admin", func(c *models.CollectionConfig) { c.Admin = "0x12" }, true},
		{"non-ipfs base uri", func(c *models.CollectionConfig) { c.BaseURI = "https://example.com" }, true},
		{"missing name", func(c *models.CollectionConfig) { c.Name = "" }, true},
		{"missing symbol", func(c *models.CollectionConfig) { c.Symbol = "" }, true},
		{
			"window inverted",
			func(c *models.CollectionConfig) {
				start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				end := start.Add(-time.Hour)
				c.SaleStart = &start
				c.SaleEnd = &end
			},
			true,
		},
		{
			"window equal bounds",
			func(c *models.CollectionConfig) {
				start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				c.SaleStart = &start
				c.SaleEnd = &start
			},
			true,
		},
		{
			"only start set",
			func(c *models.CollectionConfig) {
				start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				c.SaleStart = &start
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			tt.mutate(&config)
			err := ValidateConfig(config)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateConfig(t *testing.T) {
	newBaseURI := "ipfs://QmNewHashNewHashNewHashNewHashNewHashNew"
	newPrice := uint64(250)

	t.Run("admin updates mutable fields", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)
		entry := createTestCollection(t, factory, validTestConfig())
		service := NewCollectionService(db)

		start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(7 * 24 * time.Hour)
		updated, err := service.UpdateConfig(testAdmin, entry.CollectionAddress, models.ConfigPatch{
			BaseURI:   &newBaseURI,
			UnitPrice: &newPrice,
			SaleStart: &start,
			SaleEnd:   &end,
		})
		require.NoError(t, err)

		assert.Equal(t, newBaseURI, updated.BaseURI)
		assert.Equal(t, newPrice, updated.UnitPrice)
		require.NotNil(t, updated.SaleStart)
		require.NotNil(t, updated.SaleEnd)
		assert.True(t, updated.SaleStart.Equal(start))
		assert.True(t, updated.SaleEnd.Equal(end))

		// Immutable fields untouched
		assert.Equal(t, uint64(3), updated.MaxSupply)
		assert.Equal(t, uint64(10), updated.RoyaltyPercent)
		assert.Equal(t, testRoyaltyRecipient, updated.RoyaltyRecipient)
	})

	t.Run("non-admin leaves config byte-identical", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)
		entry := createTestCollection(t, factory, validTestConfig())
		service := NewCollectionService(db)

		before, err := service.GetCollection(entry.CollectionAddress)
		require.NoError(t, err)

		_, err = service.UpdateConfig(testBuyer, entry.CollectionAddress, models.ConfigPatch{
			BaseURI:   &newBaseURI,
			UnitPrice: &newPrice,
		})
		assert.ErrorIs(t, err, models.ErrUnauthorized)

		after, err := service.GetCollection(entry.CollectionAddress)
		require.NoError(t, err)
		assert.Equal(t, *before, *after)
	})

	t.Run("patch producing inverted window applies nothing", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		config := validTestConfig()
		config.SaleStart = &start
		config.SaleEnd = &end
		entry := createTestCollection(t, factory, config)
		service := NewCollectionService(db)

		badStart := end.Add(time.Hour)
		_, err := service.UpdateConfig(testAdmin, entry.CollectionAddress, models.ConfigPatch{
			SaleStart: &badStart,
			UnitPrice: &newPrice,
		})
		assert.ErrorIs(t, err, models.ErrInvalidConfig)

		after, err := service.GetCollection(entry.CollectionAddress)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), after.UnitPrice, "all-or-nothing: price not applied either")
		assert.True(t, after.SaleStart.Equal(start))
	})

	t.Run("clearing the window", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		config := validTestConfig()
		config.SaleStart = &start
		config.SaleEnd = &end
		entry := createTestCollection(t, factory, config)
		service := NewCollectionService(db)

		updated, err := service.UpdateConfig(testAdmin, entry.CollectionAddress, models.ConfigPatch{
			ClearSaleStart: true,
			ClearSaleEnd:   true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.SaleStart)
		assert.Nil(t, updated.SaleEnd)
	})

	t.Run("non-ipfs base uri rejected", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)
		entry := createTestCollection(t, factory, validTestConfig())
		service := NewCollectionService(db)

		bad := "https://example.com/meta"
		_, err := service.UpdateConfig(testAdmin, entry.CollectionAddress, models.ConfigPatch{BaseURI: &bad})
		assert.ErrorIs(t, err, models.ErrInvalidConfig)
	})

	t.Run("unknown collection", func(t *testing.T) {
		db := setupTestDB(t)
		seedCodeTemplates(t, db)
		service := NewCollectionService(db)

		_, err := service.UpdateConfig(testAdmin, "0x0000000000000000000000000000000000000abc", models.ConfigPatch{})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestGetMintedCount(t *testing.T) {
	db := setupTestDB(t)
	factory, chain := newTestFactory(t, db)
	entry := createTestCollection(t, factory, validTestConfig())
	service := NewCollectionService(db)
	minter := newTestMinter(t, db, chain)

	count, err := service.GetMintedCount(entry.CollectionAddress)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = minter.Mint(testBuyer, entry.CollectionAddress, 100)
	require.NoError(t, err)

	count, err = service.GetMintedCount(entry.CollectionAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
