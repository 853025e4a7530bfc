package tools

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
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
	testBaseURI          = "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

type testEnv struct {
	db          *gorm.DB
	chain       services.ChainService
	factory     services.FactoryService
	collections services.CollectionService
	minter      services.MintService
}

func setupTestEnv(t *testing.T) *testEnv {
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

	templates := []models.CodeTemplate{
		{CodeID: 1, Kind: models.TemplateKindMinter},
		{CodeID: 2, Kind: models.TemplateKindToken},
	}
	require.NoError(t, db.Create(&templates).Error)

	chain := services.NewChainService(db)
	factory, err := services.NewFactoryService(db, chain, 1, 2)
	require.NoError(t, err)

	return &testEnv{
		db:          db,
		chain:       chain,
		factory:     factory,
		collections: services.NewCollectionService(db),
		minter:      services.NewMintService(db, services.NewTokenService(db), chain),
	}
}

func (e *testEnv) createCollection(t *testing.T) *models.RegistryEntry {
	t.Helper()

	entry, err := e.factory.CreateCollection(models.CollectionConfig{
		Name:             "Test Collection",
		Symbol:           "TEST",
		BaseURI:          testBaseURI,
		MaxSupply:        3,
		UnitPrice:        100,
		RoyaltyPercent:   10,
		RoyaltyRecipient: testRoyaltyRecipient,
		OwnerRecipient:   testOwnerRecipient,
		Admin:            testAdmin,
	}, testCreator)
	require.NoError(t, err)
	return entry
}

func newCallToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}
