package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

type listCollectionsTool struct {
	factory services.FactoryService
}

type ListCollectionsArguments struct {
	Creator   string `json:"creator,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
}

func NewListCollectionsTool(factory services.FactoryService) *listCollectionsTool {
	return &listCollectionsTool{factory: factory}
}

func (l *listCollectionsTool) GetTool() mcp.Tool {
	return mcp.NewTool("list_collections",
		mcp.WithDescription("List registered collections in creation order, one page at a time. Pass the returned next_page_token to continue where the previous page stopped."),
		mcp.WithString("creator",
			mcp.Description("Only return collections created by this address"),
		),
		mcp.WithString("page_token",
			mcp.Description("Token returned by the previous page; empty starts from the beginning"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Maximum number of entries to return (default 50)"),
		),
	)
}

func (l *listCollectionsTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListCollectionsArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		entries, nextToken, err := l.factory.ListCollections(services.CollectionFilter{
			Creator:   args.Creator,
			PageToken: args.PageToken,
			PageSize:  args.PageSize,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Listing failed: %v", err)), nil
		}

		response := map[string]any{
			"collections":     entries,
			"count":           len(entries),
			"next_page_token": nextToken,
		}
		if len(entries) == 0 {
			response["message"] = "No collections found matching the criteria"
		}

		result, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Collections listed: %s", string(result))), nil
	}
}
