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

type batchMintTool struct {
	minter services.MintService
}

type BatchMintArguments struct {
	Caller            string `json:"caller" validate:"required"`
	CollectionAddress string `json:"collection_address" validate:"required"`
	Recipient         string `json:"recipient" validate:"required"`
	Count             uint64 `json:"count" validate:"required"`
}

func NewBatchMintTool(minter services.MintService) *batchMintTool {
	return &batchMintTool{minter: minter}
}

func (b *batchMintTool) GetTool() mcp.Tool {
	return mcp.NewTool("batch_mint",
		mcp.WithDescription("Mint several sequential tokens to one recipient without payment (airdrop). Restricted to the collection admin; the whole batch mints or none of it does."),
		mcp.WithString("caller",
			mcp.Required(),
			mcp.Description("Address requesting the batch; must be the collection admin"),
		),
		mcp.WithString("collection_address",
			mcp.Required(),
			mcp.Description("Address of the collection to mint from"),
		),
		mcp.WithString("recipient",
			mcp.Required(),
			mcp.Description("Address receiving every token in the batch"),
		),
		mcp.WithNumber("count",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Number of tokens to mint (1 to %d)", services.MaxTokensPerBatchMint)),
		),
	)
}

func (b *batchMintTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args BatchMintArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}
		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		events, err := b.minter.BatchMint(args.Caller, args.Recipient, args.CollectionAddress, args.Count)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Batch mint failed: %v", err)), nil
		}

		tokenIDs := make([]uint64, len(events))
		for i, event := range events {
			tokenIDs[i] = event.TokenID
		}
		result, err := json.Marshal(map[string]any{
			"collection_address": args.CollectionAddress,
			"recipient":          args.Recipient,
			"token_ids":          tokenIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Batch minted: %s", string(result))), nil
	}
}
