// Package main provides the entry point for ctxtier-service.
//
// ctxtier-service classifies planned applications into complexity tiers and
// returns the context modules an AI coding session should load. It provides:
// - REST API for programmatic access
// - MCP server for AI assistant integration (HTTP and stdio)
// - Optional TOML catalog overrides with hot reload
//
// Usage:
//
//	ctxtier-service                 Start the service (default)
//	ctxtier-service serve           Start the service
//	ctxtier-service version         Show version
//	ctxtier-service status          Show service status
//	ctxtier-service stop            Stop the running service
//	ctxtier-service mcp             Start MCP server (stdio mode)
package main

import (
	"fmt"
	"os"

	"github.com/ctxtier/ctxtier/internal/api"
	"github.com/ctxtier/ctxtier/internal/config"
	"github.com/ctxtier/ctxtier/internal/logger"
	"github.com/ctxtier/ctxtier/internal/mcp"
	"github.com/ctxtier/ctxtier/internal/service"
	"github.com/ctxtier/ctxtier/pkg/catalog"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	// Set version in API package
	api.SetVersion(version)

	if len(os.Args) < 2 {
		// Default: start service
		if err := cmdServe(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch os.Args[1] {
	case "serve", "start":
		err = cmdServe()
	case "version", "-v", "--version":
		cmdVersion()
	case "status":
		err = cmdStatus()
	case "stop":
		err = cmdStop()
	case "mcp", "mcp-server":
		err = cmdMCP()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ctxtier-service - Complexity tier classification service

Usage:
  ctxtier-service [command]

Commands:
  serve         Start the service (default)
  version       Show version information
  status        Show service status
  stop          Stop the running service
  mcp           Start MCP server (stdio mode for AI assistant integration)
  help          Show this help

Configuration:
  Config file: ~/.ctxtier/config.yaml (or $APPDATA/ctxtier on Windows)
  Catalog overrides: ~/.ctxtier/catalog.toml (optional)

Examples:
  ctxtier-service                            Start the service
  ctxtier-service mcp                        Start MCP server
  curl localhost:8436/health                 Check service health
  curl -X POST localhost:8436/classify \
    -d '{"entity_count":6,"integration_count":3,"scale":"MEDIUM"}'`)
}

func cmdVersion() {
	fmt.Printf("ctxtier-service version %s\n", version)
}

// buildCatalog loads the module catalog with any configured override file.
func buildCatalog(cfg *config.Config) *catalog.Catalog {
	log := logger.GetLogger()
	cat := catalog.Default()

	path := cfg.CatalogPath()
	if _, err := os.Stat(path); err == nil {
		if err := cat.LoadFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Ignoring invalid catalog override")
		} else {
			log.Info().Str("path", path).Msg("Loaded catalog override")
		}
	}

	return cat
}

func cmdServe() error {
	// Load configuration
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Check if already running
	if running, pid := service.IsRunning(cfg); running {
		return fmt.Errorf("service already running (PID %d)", pid)
	}

	log := logger.SetupLogger(cfg)
	defer logger.Stop()

	// Build catalog, with hot reload if configured
	cat := buildCatalog(cfg)
	if cfg.Catalog.Watch {
		watcher, err := catalog.NewWatcher(cat, cfg.CatalogPath())
		if err != nil {
			log.Warn().Err(err).Msg("Catalog watcher unavailable")
		} else {
			watcher.OnReload = func(err error) {
				if err != nil {
					log.Warn().Err(err).Msg("Catalog reload failed, keeping previous table")
					return
				}
				log.Info().Msg("Catalog reloaded")
			}
			if err := watcher.Start(); err != nil {
				log.Warn().Err(err).Msg("Catalog watcher failed to start")
			} else {
				defer watcher.Stop()
			}
		}
	}

	// Create API server with the MCP handler mounted under /mcp
	mcpHandler := mcp.NewHandler(cat, version)
	apiServer := api.NewServer(cfg, cat, mcpHandler)

	// Create daemon
	daemon := service.NewDaemon(cfg)

	// Start service
	if err := daemon.Start(apiServer.Handler()); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	fmt.Printf("ctxtier-service v%s started on %s\n", version, cfg.Address())
	fmt.Printf("API: http://%s/classify\n", cfg.Address())
	fmt.Printf("MCP: http://%s/mcp\n", cfg.Address())

	// Wait for shutdown signal
	daemon.Wait()

	return nil
}

func cmdStatus() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	running, pid := service.IsRunning(cfg)
	if running {
		fmt.Printf("ctxtier-service: running (PID %d)\n", pid)
		fmt.Printf("Address: %s\n", cfg.Address())
	} else {
		fmt.Println("ctxtier-service: stopped")
	}

	return nil
}

func cmdStop() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	running, pid := service.IsRunning(cfg)
	if !running {
		fmt.Println("ctxtier-service is not running")
		return nil
	}

	fmt.Printf("Stopping ctxtier-service (PID %d)...\n", pid)
	if err := service.StopRunning(cfg); err != nil {
		return err
	}

	fmt.Println("ctxtier-service stopped")
	return nil
}

func cmdMCP() error {
	// Load config
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		cfg = config.DefaultConfig()
	}

	cat := buildCatalog(cfg)

	mcpServer := mcp.NewServer(mcp.NewHandler(cat, version), version)
	return mcpServer.ServeStdio()
}
