package services

import (
	"fmt"
	"testing"

	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactoryService(t *testing.T) {
	t.Run("rejects unknown code ids", func(t *testing.T) {
		db := setupTestDB(t)
		chain := NewChainService(db)

		_, err := NewFactoryService(db, chain, 99, 100)
		assert.ErrorIs(t, err, models.ErrTemplateNotFound)
	})

	t.Run("rejects swapped template kinds", func(t *testing.T) {
		db := setupTestDB(t)
		seedCodeTemplates(t, db)
		chain := NewChainService(db)

		_, err := NewFactoryService(db, chain, testTokenCodeID, testMinterCodeID)
		assert.ErrorIs(t, err, models.ErrTemplateNotFound)
	})
}

func TestCreateCollection(t *testing.T) {
	t.Run("deploys both contracts and records one entry", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		entry, err := factory.CreateCollection(validTestConfig(), testCreator)
		require.NoError(t, err)

		assert.NotEmpty(t, entry.CollectionAddress)
		assert.NotEmpty(t, entry.TokenContractAddress)
		assert.NotEqual(t, entry.CollectionAddress, entry.TokenContractAddress)
		assert.Equal(t, testCreator, entry.Creator)
		assert.Equal(t, testMinterCodeID, entry.MinterCodeID)
		assert.Equal(t, testTokenCodeID, entry.TokenCodeID)

		var instances []models.ContractInstance
		require.NoError(t, db.Find(&instances).Error)
		assert.Len(t, instances, 2)

		var collection models.Collection
		require.NoError(t, db.First(&collection, "address = ?", entry.CollectionAddress).Error)
		assert.Equal(t, uint64(0), collection.MintedCount)
		assert.Equal(t, uint64(3), collection.MaxSupply)
		assert.Equal(t, entry.TokenContractAddress, collection.TokenContractAddress)
	})

	t.Run("invalid config touches no state", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		config := validTestConfig()
		config.MaxSupply = 0

		_, err := factory.CreateCollection(config, testCreator)
		assert.ErrorIs(t, err, models.ErrInvalidConfig)

		var entryCount, instanceCount, sessionCount int64
		db.Model(&models.RegistryEntry{}).Count(&entryCount)
		db.Model(&models.ContractInstance{}).Count(&instanceCount)
		db.Model(&models.DeploymentSession{}).Count(&sessionCount)
		assert.Zero(t, entryCount)
		assert.Zero(t, instanceCount)
		// Validation fails before a session is even opened
		assert.Zero(t, sessionCount)
	})

	t.Run("mid-flight deploy failure rolls everything back", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		// Revoke the minter template after factory construction so the
		// second deployment step fails while the first succeeds
		require.NoError(t, db.Delete(&models.CodeTemplate{}, "code_id = ?", testMinterCodeID).Error)

		_, err := factory.CreateCollection(validTestConfig(), testCreator)
		assert.ErrorIs(t, err, models.ErrTemplateNotFound)

		var entryCount, instanceCount, collectionCount int64
		db.Model(&models.RegistryEntry{}).Count(&entryCount)
		db.Model(&models.ContractInstance{}).Count(&instanceCount)
		db.Model(&models.Collection{}).Count(&collectionCount)
		assert.Zero(t, entryCount, "no registry entry on failure")
		assert.Zero(t, instanceCount, "no orphaned contract on failure")
		assert.Zero(t, collectionCount)

		// The audit session survives with the stage the attempt reached
		var session models.DeploymentSession
		require.NoError(t, db.First(&session).Error)
		assert.Equal(t, models.DeploymentStageTokenDeployed, session.Stage)
		assert.Equal(t, models.DeploymentStatusFailed, session.Status)
		assert.NotEmpty(t, session.Error)
	})

	t.Run("successful deployment registers the session", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		entry := createTestCollection(t, factory, validTestConfig())

		var session models.DeploymentSession
		require.NoError(t, db.First(&session).Error)
		assert.Equal(t, models.DeploymentStageRegistered, session.Stage)
		assert.Equal(t, models.DeploymentStatusRegistered, session.Status)
		assert.Equal(t, entry.CollectionAddress, session.CollectionAddress)
		assert.Equal(t, entry.TokenContractAddress, session.TokenContractAddress)
	})

	t.Run("rejects malformed creator", func(t *testing.T) {
		db := setupTestDB(t)
		factory, _ := newTestFactory(t, db)

		_, err := factory.CreateCollection(validTestConfig(), "not-an-address")
		assert.ErrorIs(t, err, models.ErrInvalidConfig)
	})
}

func TestListCollections(t *testing.T) {
	db := setupTestDB(t)
	factory, _ := newTestFactory(t, db)

	var created []string
	for i := 0; i < 5; i++ {
		config := validTestConfig()
		config.Name = fmt.Sprintf("Collection %d", i)
		entry, err := factory.CreateCollection(config, testCreator)
		require.NoError(t, err)
		created = append(created, entry.CollectionAddress)
	}
	otherCreator := "0x9999999999999999999999999999999999999999"
	_, err := factory.CreateCollection(validTestConfig(), otherCreator)
	require.NoError(t, err)

	t.Run("pages in creation order and restarts from the token", func(t *testing.T) {
		page1, token, err := factory.ListCollections(CollectionFilter{PageSize: 2})
		require.NoError(t, err)
		require.Len(t, page1, 2)
		require.NotEmpty(t, token)
		assert.Equal(t, created[0], page1[0].CollectionAddress)
		assert.Equal(t, created[1], page1[1].CollectionAddress)

		page2, token2, err := factory.ListCollections(CollectionFilter{PageSize: 2, PageToken: token})
		require.NoError(t, err)
		require.Len(t, page2, 2)
		assert.Equal(t, created[2], page2[0].CollectionAddress)
		assert.Equal(t, created[3], page2[1].CollectionAddress)
		assert.NotEqual(t, token, token2)
	})

	t.Run("filters by creator", func(t *testing.T) {
		entries, _, err := factory.ListCollections(CollectionFilter{Creator: otherCreator})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, otherCreator, entries[0].Creator)
	})

	t.Run("rejects malformed page token", func(t *testing.T) {
		_, _, err := factory.ListCollections(CollectionFilter{PageToken: "garbage"})
		assert.ErrorIs(t, err, models.ErrInvalidConfig)
	})

	t.Run("last page returns no token", func(t *testing.T) {
		entries, token, err := factory.ListCollections(CollectionFilter{PageSize: 100})
		require.NoError(t, err)
		assert.Len(t, entries, 6)
		assert.Empty(t, token)
	})
}
