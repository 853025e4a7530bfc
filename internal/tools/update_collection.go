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

type updateCollectionTool struct {
	collections services.CollectionService
}

type UpdateCollectionArguments struct {
	// Required fields
	Caller            string `json:"caller" validate:"required"`
	CollectionAddress string `json:"collection_address" validate:"required"`

	// Optional mutable fields; absent means unchanged
	BaseURI        *string `json:"base_uri,omitempty"`
	UnitPrice      *uint64 `json:"unit_price,omitempty"`
	SaleStart      string  `json:"sale_start,omitempty"`
	SaleEnd        string  `json:"sale_end,omitempty"`
	ClearSaleStart bool    `json:"clear_sale_start,omitempty"`
	ClearSaleEnd   bool    `json:"clear_sale_end,omitempty"`
}

// immutableConfigFields are rejected outright when present in an update
// request. Buyers rely on these never moving after creation.
var immutableConfigFields = []string{"max_supply", "royalty_percent", "royalty_recipient"}

func NewUpdateCollectionTool(collections services.CollectionService) *updateCollectionTool {
	return &updateCollectionTool{collections: collections}
}

func (u *updateCollectionTool) GetTool() mcp.Tool {
	return mcp.NewTool("update_collection",
		mcp.WithDescription("Update the mutable config of a collection (base_uri, unit_price, sale window). Admin only; the patch applies in full or not at all. max_supply, royalty_percent and royalty_recipient are immutable."),
		mcp.WithString("caller",
			mcp.Required(),
			mcp.Description("Address requesting the update; must be the collection admin"),
		),
		mcp.WithString("collection_address",
			mcp.Required(),
			mcp.Description("Address of the collection to update"),
		),
		mcp.WithString("base_uri",
			mcp.Description("New metadata base URI; must use the ipfs scheme"),
		),
		mcp.WithNumber("unit_price",
			mcp.Description("New mint price in the smallest currency unit"),
		),
		mcp.WithString("sale_start",
			mcp.Description("New sale window start, RFC3339"),
		),
		mcp.WithString("sale_end",
			mcp.Description("New sale window end, RFC3339"),
		),
		mcp.WithBoolean("clear_sale_start",
			mcp.Description("Remove the sale window start"),
		),
		mcp.WithBoolean("clear_sale_end",
			mcp.Description("Remove the sale window end"),
		),
	)
}

func (u *updateCollectionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Attempts to touch immutable fields fail before anything else
		rawArgs := request.GetArguments()
		for _, field := range immutableConfigFields {
			if _, present := rawArgs[field]; present {
				return mcp.NewToolResultError(
					fmt.Sprintf("Update failed: %v: %s cannot change after creation", models.ErrImmutableField, field)), nil
			}
		}

		var args UpdateCollectionArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}
		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		patch := models.ConfigPatch{
			BaseURI:        args.BaseURI,
			UnitPrice:      args.UnitPrice,
			ClearSaleStart: args.ClearSaleStart,
			ClearSaleEnd:   args.ClearSaleEnd,
		}
		if args.SaleStart != "" {
			start, err := time.Parse(time.RFC3339, args.SaleStart)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid sale_start: %v", err)), nil
			}
			patch.SaleStart = &start
		}
		if args.SaleEnd != "" {
			end, err := time.Parse(time.RFC3339, args.SaleEnd)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid sale_end: %v", err)), nil
			}
			patch.SaleEnd = &end
		}

		if patch.IsEmpty() {
			return mcp.NewToolResultError("Update failed: patch is empty"), nil
		}

		updated, err := u.collections.UpdateConfig(args.Caller, args.CollectionAddress, patch)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Update failed: %v", err)), nil
		}

		result, err := json.Marshal(updated)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Collection updated: %s", string(result))), nil
	}
}
