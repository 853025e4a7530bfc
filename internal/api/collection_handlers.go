package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

// handleListCollections lists registry entries in creation order.
// Supports ?creator=, ?page_token= and ?page_size= query parameters.
func (s *APIServer) handleListCollections(c *fiber.Ctx) error {
	pageSize := 0
	if raw := c.Query("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(400).JSON(map[string]string{"error": "Invalid page_size"})
		}
		pageSize = parsed
	}

	entries, nextToken, err := s.factory.ListCollections(services.CollectionFilter{
		Creator:   c.Query("creator"),
		PageToken: c.Query("page_token"),
		PageSize:  pageSize,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(map[string]interface{}{
		"collections":     entries,
		"count":           len(entries),
		"next_page_token": nextToken,
	})
}

func (s *APIServer) handleGetCollection(c *fiber.Ctx) error {
	collection, err := s.collections.GetCollection(c.Params("address"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(collection)
}

func (s *APIServer) handleMintedCount(c *fiber.Ctx) error {
	address := c.Params("address")

	collection, err := s.collections.GetCollection(address)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(map[string]interface{}{
		"collection_address": address,
		"minted_count":       collection.MintedCount,
		"max_supply":         collection.MaxSupply,
		"remaining":          collection.MaxSupply - collection.MintedCount,
	})
}

// handleTokenOwner resolves the owner of a token id through the
// collection's token contract.
func (s *APIServer) handleTokenOwner(c *fiber.Ctx) error {
	tokenID, err := strconv.ParseUint(c.Params("token_id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(map[string]string{"error": "Invalid token id"})
	}

	collection, err := s.collections.GetCollection(c.Params("address"))
	if err != nil {
		return errorResponse(c, err)
	}

	owner, err := s.tokens.Contract(collection.TokenContractAddress).OwnerOf(tokenID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(map[string]interface{}{
		"collection_address": collection.Address,
		"token_id":           tokenID,
		"owner":              owner,
	})
}

// handleRoyaltyQuote previews the royalty split for ?sale_price=.
func (s *APIServer) handleRoyaltyQuote(c *fiber.Ctx) error {
	salePrice, err := strconv.ParseUint(c.Query("sale_price", "0"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(map[string]string{"error": "Invalid sale_price"})
	}

	recipient, royalty, err := s.minter.RoyaltyQuote(c.Params("address"), salePrice)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(map[string]interface{}{
		"royalty_recipient": recipient,
		"royalty_amount":    royalty,
		"remainder":         salePrice - royalty,
	})
}

func (s *APIServer) handleDeploymentSession(c *fiber.Ctx) error {
	session, err := s.factory.GetDeploymentSession(c.Params("session_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(session)
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(404).JSON(map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidConfig):
		return c.Status(400).JSON(map[string]string{"error": err.Error()})
	default:
		return c.Status(500).JSON(map[string]string{"error": err.Error()})
	}
}
