package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

type createCollectionTool struct {
	factory services.FactoryService
}

type CreateCollectionArguments struct {
	// Required fields
	Creator          string `json:"creator" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Symbol           string `json:"symbol" validate:"required"`
	BaseURI          string `json:"base_uri" validate:"required"`
	MaxSupply        uint64 `json:"max_supply" validate:"required"`
	RoyaltyRecipient string `json:"royalty_recipient" validate:"required"`
	OwnerRecipient   string `json:"owner_recipient" validate:"required"`
	Admin            string `json:"admin" validate:"required"`

	// Optional fields
	UnitPrice      uint64 `json:"unit_price,omitempty"`
	RoyaltyPercent uint64 `json:"royalty_percent,omitempty"`
	SaleStart      string `json:"sale_start,omitempty"`
	SaleEnd        string `json:"sale_end,omitempty"`
}

func NewCreateCollectionTool(factory services.FactoryService) *createCollectionTool {
	return &createCollectionTool{factory: factory}
}

func (c *createCollectionTool) GetTool() mcp.Tool {
	return mcp.NewTool("create_collection",
		mcp.WithDescription("Deploy a new NFT collection: a token contract plus a minter contract bound to it, recorded in the registry. The whole deployment either completes or leaves no state behind."),
		mcp.WithString("creator",
			mcp.Required(),
			mcp.Description("Address of the collection creator"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Collection name (e.g. 'Moon Apes')"),
		),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Collection symbol (e.g. 'MAPE')"),
		),
		mcp.WithString("base_uri",
			mcp.Required(),
			mcp.Description("Metadata base URI; must use the ipfs scheme. Token URIs are base_uri + '/' + token_id"),
		),
		mcp.WithNumber("max_supply",
			mcp.Required(),
			mcp.Description("Maximum number of tokens (1 to 10000); immutable after creation"),
		),
		mcp.WithNumber("unit_price",
			mcp.Description("Mint price in the smallest currency unit (default 0)"),
		),
		mcp.WithNumber("royalty_percent",
			mcp.Description("Royalty share of every mint payment, 0 to 100 (default 0); immutable after creation"),
		),
		mcp.WithString("royalty_recipient",
			mcp.Required(),
			mcp.Description("Address receiving the royalty share; immutable after creation"),
		),
		mcp.WithString("owner_recipient",
			mcp.Required(),
			mcp.Description("Address receiving the remainder of every mint payment"),
		),
		mcp.WithString("admin",
			mcp.Required(),
			mcp.Description("Address allowed to update the mutable config fields"),
		),
		mcp.WithString("sale_start",
			mcp.Description("Optional sale window start, RFC3339 (e.g. 2025-09-01T00:00:00Z)"),
		),
		mcp.WithString("sale_end",
			mcp.Description("Optional sale window end, RFC3339; must be after sale_start"),
		),
	)
}

func (c *createCollectionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CreateCollectionArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}
		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		config := models.CollectionConfig{
			Name:             args.Name,
			Symbol:           args.Symbol,
			BaseURI:          args.BaseURI,
			MaxSupply:        args.MaxSupply,
			UnitPrice:        args.UnitPrice,
			RoyaltyPercent:   args.RoyaltyPercent,
			RoyaltyRecipient: args.RoyaltyRecipient,
			OwnerRecipient:   args.OwnerRecipient,
			Admin:            args.Admin,
		}

		if args.SaleStart != "" {
			start, err := time.Parse(time.RFC3339, args.SaleStart)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid sale_start: %v", err)), nil
			}
			config.SaleStart = &start
		}
		if args.SaleEnd != "" {
			end, err := time.Parse(time.RFC3339, args.SaleEnd)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid sale_end: %v", err)), nil
			}
			config.SaleEnd = &end
		}

		entry, err := c.factory.CreateCollection(config, args.Creator)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Collection creation failed: %v", err)), nil
		}

		result, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Collection created: %s", string(result))), nil
	}
}
