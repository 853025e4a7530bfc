package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/nft-launchpad/internal/api"
	"github.com/rxtech-lab/nft-launchpad/internal/database"
	"github.com/rxtech-lab/nft-launchpad/internal/mcp"
	"github.com/rxtech-lab/nft-launchpad/internal/models"
	"github.com/rxtech-lab/nft-launchpad/internal/services"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	// Command line flags
	var showVersion = flag.Bool("version", false, "Show version information")
	var showHelp = flag.Bool("help", false, "Show help information")
	var enableLog = flag.Bool("log", false, "Enable logging output")
	flag.Parse()

	// Disable logging by default; stdout belongs to the MCP transport
	if !*enableLog {
		log.SetOutput(io.Discard)
	}

	// Version and help write to stdout directly; the log sink may be discarded
	if *showVersion {
		fmt.Print(versionText())
		return
	}

	if *showHelp {
		fmt.Print(helpText(os.Args[0]))
		return
	}

	// Optional .env overrides
	godotenv.Load()

	db, err := openDatabase()
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	minterCodeID := envUint("MINTER_CODE_ID", 1)
	tokenCodeID := envUint("TOKEN_CODE_ID", 2)
	if err := seedCodeTemplates(db, minterCodeID, tokenCodeID); err != nil {
		log.Fatal("Failed to seed code templates:", err)
	}

	// Initialize services
	chainService := services.NewChainService(db.DB)
	tokenService := services.NewTokenService(db.DB)
	collectionService := services.NewCollectionService(db.DB)
	mintService := services.NewMintService(db.DB, tokenService, chainService)
	factoryService, err := services.NewFactoryService(db.DB, chainService, minterCodeID, tokenCodeID)
	if err != nil {
		log.Fatal("Failed to initialize factory:", err)
	}

	// Start read-only API server
	apiServer := api.NewAPIServer(factoryService, collectionService, tokenService, mintService)
	port, err := apiServer.Start()
	if err != nil {
		log.Fatal("Failed to start API server:", err)
	}
	log.Printf("API server started on port %d\n", port)

	// Start MCP server on stdio
	mcpServer := mcp.NewMCPServer(factoryService, collectionService, mintService)
	go func() {
		if err := mcpServer.Start(); err != nil {
			log.SetOutput(os.Stderr)
			log.SetFlags(0)
			log.Fatal("Failed to start MCP server:", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("\nShutting down servers...")

	if err := apiServer.Shutdown(); err != nil {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
		log.Printf("Error shutting down API server: %v", err)
	}

	log.Println("Servers shut down successfully")
}

func versionText() string {
	return fmt.Sprintf(`NFT Launchpad MCP Server
Version: %s
Commit: %s
Built: %s
`, Version, CommitHash, BuildTime)
}

func helpText(program string) string {
	return fmt.Sprintf(`NFT Launchpad MCP Server

Usage: %s [options]

Options:
  --version    Show version information
  --help       Show this help message
  --log        Enable logging output

Description:
  NFT collection launchpad: deploys token + minter contract pairs,
  tracks them in a registry and mints sequential tokens with royalty
  splits. Provides 7 MCP tools plus a read-only HTTP API.

Environment:
  DATABASE_PATH   SQLite path (default ~/nft-launchpad.db)
  POSTGRES_URL    Use Postgres instead of SQLite
  MINTER_CODE_ID  Approved minter template id (default 1)
  TOKEN_CODE_ID   Approved token template id (default 2)
`, program)
}

func openDatabase() (*database.Database, error) {
	if dsn := os.Getenv("POSTGRES_URL"); dsn != "" {
		return database.NewPostgresDatabase(dsn)
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		homePath, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = homePath + "/nft-launchpad.db"
	}
	return database.NewSqliteDatabase(dbPath)
}

// seedCodeTemplates registers the approved minter and token templates if
// they are not present yet.
func seedCodeTemplates(db *database.Database, minterCodeID, tokenCodeID uint64) error {
	templates := []models.CodeTemplate{
		{CodeID: minterCodeID, Kind: models.TemplateKindMinter, Description: "Sequential minter with royalty split"},
		{CodeID: tokenCodeID, Kind: models.TemplateKindToken, Description: "Non-fungible token contract"},
	}
	for i := range templates {
		err := db.DB.Where("code_id = ?", templates[i].CodeID).FirstOrCreate(&templates[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func envUint(key string, fallback uint64) uint64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		log.Printf("Invalid %s %q, using default %d", key, raw, fallback)
		return fallback
	}
	return parsed
}
