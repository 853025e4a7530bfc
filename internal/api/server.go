package api

import (
	"fmt"
	"log"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

// APIServer exposes the launchpad state over a read-only HTTP surface.
// Mutations go through the MCP tools only.
type APIServer struct {
	app         *fiber.App
	factory     services.FactoryService
	collections services.CollectionService
	tokens      services.TokenService
	minter      services.MintService
	port        int
}

func NewAPIServer(factory services.FactoryService, collections services.CollectionService, tokens services.TokenService, minter services.MintService) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server := &APIServer{
		app:         app,
		factory:     factory,
		collections: collections,
		tokens:      tokens,
		minter:      minter,
	}
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	s.app.Get("/api/collections", s.handleListCollections)
	s.app.Get("/api/collections/:address", s.handleGetCollection)
	s.app.Get("/api/collections/:address/minted", s.handleMintedCount)
	s.app.Get("/api/collections/:address/tokens/:token_id/owner", s.handleTokenOwner)
	s.app.Get("/api/collections/:address/royalty", s.handleRoyaltyQuote)

	// Deployment audit trail
	s.app.Get("/api/sessions/:session_id", s.handleDeploymentSession)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// Start starts the server on a random available port
func (s *APIServer) Start() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	s.port = port

	// Close the listener so Fiber can use it
	listener.Close()

	go func() {
		if err := s.app.Listen(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("Error starting API server: %v\n", err)
		}
	}()

	return port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}
