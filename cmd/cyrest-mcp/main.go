package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cytoscape/cyrest-go/internal/metrics"
	"github.com/cytoscape/cyrest-go/internal/server"
	"github.com/cytoscape/cyrest-go/pkg/cytoscape"
	"go.uber.org/zap"
)

var (
	baseURL     = flag.String("base-url", "", "CyREST base URL (default: http://127.0.0.1:1234/v1)")
	timeout     = flag.Duration("timeout", 0, "HTTP timeout for CyREST requests")
	transport   = flag.String("transport", "stdio", "Transport to use: stdio or sse")
	addr        = flag.String("addr", ":8080", "Address to listen on when using SSE transport")
	sseEndpoint = flag.String("sse-endpoint", "/sse", "SSE endpoint path when using SSE transport")
	debug       = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, closing server...")
		cancel()
	}()

	logger, err := buildLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Environment first, flags override.
	config, err := cytoscape.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}
	config.Logger = logger
	if *baseURL != "" {
		config.BaseURL = *baseURL
	}
	if *timeout > 0 {
		config.Timeout = *timeout
	}

	// Initialize metrics (noop if disabled)
	metrics.InitFromEnv()

	cy, err := cytoscape.New(config)
	if err != nil {
		log.Fatalf("Failed to create Cytoscape client: %v", err)
	}

	// Probe the instance once up front so misconfiguration surfaces
	// before a client connects. Tool calls still work if Cytoscape
	// comes up later.
	probeCtx, probeCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := cy.Ping(probeCtx); err != nil {
		logger.Warn("Cytoscape not reachable yet", zap.String("base_url", cy.BaseURL()), zap.Error(err))
	}
	probeCancel()

	mcpServer := server.NewMCPServer(cy)

	log.Println("Starting CyREST MCP server...")
	switch *transport {
	case "stdio":
		go func() {
			if err := mcpServer.Run(ctx); err != nil {
				log.Printf("Server error: %v", err)
			}
		}()
	case "sse":
		go func() {
			if err := mcpServer.RunSSE(ctx, *addr, *sseEndpoint); err != nil {
				log.Printf("SSE server error: %v", err)
			}
		}()
	default:
		log.Fatalf("unknown transport: %s (expected: stdio or sse)", *transport)
	}

	<-ctx.Done()

	log.Println("Server stopped")
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
