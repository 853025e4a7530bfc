package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

type mintTokenTool struct {
	minter services.MintService
}

type MintTokenArguments struct {
	// Required fields
	Caller            string `json:"caller" validate:"required"`
	CollectionAddress string `json:"collection_address" validate:"required"`

	// Optional fields
	Payment   uint64 `json:"payment,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

func NewMintTokenTool(minter services.MintService) *mintTokenTool {
	return &mintTokenTool{minter: minter}
}

func (m *mintTokenTool) GetTool() mcp.Tool {
	return mcp.NewTool("mint_token",
		mcp.WithDescription("Mint the next token of a collection. The payment must cover the unit price; any excess is captured and routed through the royalty split, not refunded. Check get_collection for availability first; a failed mint is terminal, not a probe."),
		mcp.WithString("caller",
			mcp.Required(),
			mcp.Description("Address paying for and requesting the mint"),
		),
		mcp.WithString("collection_address",
			mcp.Required(),
			mcp.Description("Address of the collection to mint from"),
		),
		mcp.WithNumber("payment",
			mcp.Description("Attached payment in the smallest currency unit"),
		),
		mcp.WithString("recipient",
			mcp.Description("Optional owner of the minted token; defaults to the caller"),
		),
	)
}

func (m *mintTokenTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args MintTokenArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}
		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		var (
			event *models.MintEvent
			err   error
		)
		if args.Recipient != "" {
			event, err = m.minter.MintTo(args.Caller, args.Recipient, args.CollectionAddress, args.Payment)
		} else {
			event, err = m.minter.Mint(args.Caller, args.CollectionAddress, args.Payment)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Mint failed: %v", err)), nil
		}

		result, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Token minted: %s", string(result))), nil
	}
}
