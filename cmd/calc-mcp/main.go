package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"go-chi-calculator/internal/mcptools"
	"go-chi-calculator/internal/observability"
)

const (
	serverName    = "calculator"
	serverVersion = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// zap's production logger writes to stderr, leaving stdout to the protocol.
	if err := observability.InitLogger(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer observability.SyncLogger()

	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))
	mcptools.NewCalculator(observability.Logger).Register(s)

	observability.Logger.Info("mcp server started", zap.String("transport", "stdio"))

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
