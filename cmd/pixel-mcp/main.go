package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/pixel-filter-mcp/internal/config"
	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
	"github.com/ironsheep/pixel-filter-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixel-filter-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("pixel-filter-mcp - MCP server for pixel filters")
			fmt.Println()
			fmt.Println("Usage: pixel-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PIXEL_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  PIXEL_MCP_WORKERS=n          Goroutines per blur pass (-1 = all CPUs)")
			fmt.Println("  PIXEL_MCP_OUTPUT_DIR=dir     Base directory for relative output_path")
			fmt.Println("  PIXEL_MCP_CONFIG=file.json   JSON file with the settings above")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Pixel Filter MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("workers=%d output_dir=%q", cfg.Workers, cfg.OutputDir)
		filter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
