package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/internal/account"
	"github.com/brandon/mcp-mailstore/internal/config"
	"github.com/brandon/mcp-mailstore/internal/mailstore"
	"github.com/brandon/mcp-mailstore/internal/mcp"
	"github.com/brandon/mcp-mailstore/internal/storage"
	"github.com/brandon/mcp-mailstore/internal/tools"
)

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mcp-mailstore version %s\n", version)
		os.Exit(0)
	}
	// Set up logging. stdout carries the MCP protocol, so logs go to stderr.
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting MCP mail store server")

	accounts, err := account.NewManager(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load accounts")
	}

	factory := storage.NewMessageStoreFactory(cfg.StoragePath, logger)
	stores := mailstore.NewManager(accounts, mailstore.NewStorageFactory(factory), logger)
	defer func() {
		if err := stores.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close message stores")
		}
	}()

	server := mcp.NewServer(tools.NewRegistry(accounts, stores, logger), version, logger)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Error("Server error")
		}
		cancel()
	}

	logger.Info("Shutting down MCP mail store server")
}
