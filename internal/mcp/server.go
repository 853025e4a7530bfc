package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
	"github.com/rxtech-lab/nft-launchpad/internal/tools"
)

type MCPServer struct {
	server *server.MCPServer
}

func NewMCPServer(factory services.FactoryService, collections services.CollectionService, minter services.MintService) *MCPServer {
	srv := server.NewMCPServer(
		"NFT Launchpad MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv.AddPrompt(mcp.NewPrompt("nft-launchpad-usage",
		mcp.WithPromptDescription("Instructions and guidance for using NFT launchpad MCP tools"),
		mcp.WithArgument("tool_category",
			mcp.ArgumentDescription("Category of tools to get instructions for (deployment, minting, query, or all)"),
			mcp.RequiredArgument(),
		),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := request.Params.Arguments["tool_category"]
		if category == "" {
			return nil, fmt.Errorf("tool_category is required")
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("NFT Launchpad MCP Tools - %s", category),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(getToolInstructions(category)),
				),
			},
		), nil
	})

	// Deployment Tools
	createCollection := tools.NewCreateCollectionTool(factory)
	srv.AddTool(createCollection.GetTool(), createCollection.GetHandler())

	updateCollection := tools.NewUpdateCollectionTool(collections)
	srv.AddTool(updateCollection.GetTool(), updateCollection.GetHandler())

	// Minting Tools
	mintToken := tools.NewMintTokenTool(minter)
	srv.AddTool(mintToken.GetTool(), mintToken.GetHandler())

	batchMint := tools.NewBatchMintTool(minter)
	srv.AddTool(batchMint.GetTool(), batchMint.GetHandler())

	// Read-only Query Tools
	getCollection := tools.NewGetCollectionTool(collections)
	srv.AddTool(getCollection.GetTool(), getCollection.GetHandler())

	listCollections := tools.NewListCollectionsTool(factory)
	srv.AddTool(listCollections.GetTool(), listCollections.GetHandler())

	royaltyQuote := tools.NewRoyaltyQuoteTool(minter)
	srv.AddTool(royaltyQuote.GetTool(), royaltyQuote.GetHandler())

	return &MCPServer{server: srv}
}

func getToolInstructions(category string) string {
	switch category {
	case "deployment":
		return `Deployment Tools:

1. create_collection - Deploy a new NFT collection
   Usage: Deploys a token contract and a minter contract bound to it, then
   records the pair in the registry. Fails atomically: a rejected config or a
   mid-deployment error leaves no collection behind.

2. update_collection - Update the mutable config of a collection
   Usage: Admin only. Changes base_uri, unit_price or the sale window.
   max_supply, royalty_percent and royalty_recipient are immutable.`

	case "minting":
		return `Minting Tools:

1. mint_token - Mint the next token of a collection
   Usage: Pays unit_price (or more; excess is captured, not refunded) and
   mints the next sequential token id to the caller or an explicit recipient.

2. batch_mint - Airdrop sequential tokens without payment
   Usage: Admin only. Mints up to 200 tokens to one recipient in a single
   all-or-nothing batch.`

	case "query":
		return `Read-only Query Tools:

1. get_collection - Full config and mint progress of a collection
   Usage: Check minted_count against max_supply before minting.

2. list_collections - Page through registered collections
   Usage: Returns collections in creation order with a next_page_token;
   optionally filtered by creator.

3. royalty_quote - Preview the royalty split for a sale price
   Usage: The royalty share rounds down; the remainder goes to the owner side.`

	case "all":
		return `NFT Launchpad MCP Tools Overview:

This MCP server provides 7 tools for deploying and operating NFT collections:

DEPLOYMENT (2 tools):
- create_collection: Deploy token + minter contracts and register the pair
- update_collection: Change mutable config (admin only)

MINTING (2 tools):
- mint_token: Paid sequential mint to caller or recipient
- batch_mint: Free admin airdrop, all-or-nothing

QUERY (3 tools):
- get_collection: Config and mint progress
- list_collections: Paginated registry listing
- royalty_quote: Royalty split preview

Every mint payment is split between the royalty recipient and the owner
recipient; the royalty share rounds down and the owner side absorbs the
remainder, so no unit of payment is ever lost.`

	default:
		return `Invalid category. Available categories: deployment, minting, query, all`
	}
}

func (s *MCPServer) Start() error {
	return server.ServeStdio(s.server)
}
