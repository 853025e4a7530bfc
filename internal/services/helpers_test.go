package services

import (
	"testing"

	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdmin            = "0x1111111111111111111111111111111111111111"
	testCreator          = "0x2222222222222222222222222222222222222222"
	testRoyaltyRecipient = "0x3333333333333333333333333333333333333333"
	testOwnerRecipient   = "0x4444444444444444444444444444444444444444"
	testBuyer            = "0x5555555555555555555555555555555555555555"

	testMinterCodeID = uint64(1)
	testTokenCodeID  = uint64(2)
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.CodeTemplate{},
		&models.ContractInstance{},
		&models.Collection{},
		&models.RegistryEntry{},
		&models.DeploymentSession{},
		&models.Token{},
		&models.MintEvent{},
		&models.Balance{},
	)
	require.NoError(t, err)

	return db
}

func seedCodeTemplates(t *testing.T, db *gorm.DB) {
	t.Helper()

	templates := []models.CodeTemplate{
		{CodeID: testMinterCodeID, Kind: models.TemplateKindMinter, Description: "collection minter"},
		{CodeID: testTokenCodeID, Kind: models.TemplateKindToken, Description: "token standard"},
	}
	require.NoError(t, db.Create(&templates).Error)
}

func validTestConfig() models.CollectionConfig {
	return models.CollectionConfig{
		Name:             "Test Collection",
		Symbol:           "TEST",
		BaseURI:          "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		MaxSupply:        3,
		UnitPrice:        100,
		RoyaltyPercent:   10,
		RoyaltyRecipient: testRoyaltyRecipient,
		OwnerRecipient:   testOwnerRecipient,
		Admin:            testAdmin,
	}
}

// newTestFactory wires a factory against a fresh database with both code
// templates approved.
func newTestFactory(t *testing.T, db *gorm.DB) (FactoryService, ChainService) {
	t.Helper()

	seedCodeTemplates(t, db)
	chain := NewChainService(db)
	factory, err := NewFactoryService(db, chain, testMinterCodeID, testTokenCodeID)
	require.NoError(t, err)
	return factory, chain
}

// createTestCollection deploys one collection and returns its registry entry.
func createTestCollection(t *testing.T, factory FactoryService, config models.CollectionConfig) *models.RegistryEntry {
	t.Helper()

	entry, err := factory.CreateCollection(config, testCreator)
	require.NoError(t, err)
	return entry
}
