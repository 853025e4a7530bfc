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

type royaltyQuoteTool struct {
	minter services.MintService
}

type RoyaltyQuoteArguments struct {
	CollectionAddress string `json:"collection_address" validate:"required"`
	SalePrice         uint64 `json:"sale_price"`
}

func NewRoyaltyQuoteTool(minter services.MintService) *royaltyQuoteTool {
	return &royaltyQuoteTool{minter: minter}
}

func (r *royaltyQuoteTool) GetTool() mcp.Tool {
	return mcp.NewTool("royalty_quote",
		mcp.WithDescription("Preview the royalty split for a hypothetical sale price of a collection. The royalty rounds down; the remainder always goes to the owner side."),
		mcp.WithString("collection_address",
			mcp.Required(),
			mcp.Description("Address of the collection"),
		),
		mcp.WithNumber("sale_price",
			mcp.Description("Sale price in the smallest currency unit"),
		),
	)
}

func (r *royaltyQuoteTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args RoyaltyQuoteArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}
		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		recipient, royalty, err := r.minter.RoyaltyQuote(args.CollectionAddress, args.SalePrice)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Quote failed: %v", err)), nil
		}

		result, err := json.Marshal(map[string]any{
			"royalty_recipient": recipient,
			"royalty_amount":    royalty,
			"remainder":         args.SalePrice - royalty,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Royalty quote: %s", string(result))), nil
	}
}
