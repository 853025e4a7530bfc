package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

type getCollectionTool struct {
	collections services.CollectionService
}

type GetCollectionArguments struct {
	CollectionAddress string `json:"collection_address" validate:"required"`
}

func NewGetCollectionTool(collections services.CollectionService) *getCollectionTool {
	return &getCollectionTool{collections: collections}
}

func (g *getCollectionTool) GetTool() mcp.Tool {
	return mcp.NewTool("get_collection",
		mcp.WithDescription("Get the full config and mint progress of a collection, including minted_count and max_supply. Use this to check availability before minting."),
		mcp.WithString("collection_address",
			mcp.Required(),
			mcp.Description("Address of the collection"),
		),
	)
}

func (g *getCollectionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetCollectionArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}
		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		collection, err := g.collections.GetCollection(args.CollectionAddress)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Lookup failed: %v", err)), nil
		}

		result, err := json.Marshal(collection)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Collection: %s", string(result))), nil
	}
}
