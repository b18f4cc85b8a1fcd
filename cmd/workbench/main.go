package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/rflorenc/cloud-resource-workbench/internal/api"
	"github.com/rflorenc/cloud-resource-workbench/internal/config"
	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("workbench %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		}
	}

	cfg := config.MustParse()

	logger, err := logging.NewLogger(
		logging.WithLogLevel(cfg.LogLevel),
		logging.WithDevelopment(cfg.Dev),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	server := api.NewServer(logger)

	// Load pre-configured secrets from config file
	for _, sc := range cfg.Secrets {
		if err := loadSecret(server, sc); err != nil {
			logger.Fatal("invalid secret in config", zap.String("name", sc.Name), zap.Error(err))
		}
	}

	logger.Info("cloud resource workbench starting",
		zap.String("version", version),
		zap.String("listen", cfg.Listen),
		zap.Int("secrets", len(cfg.Secrets)),
	)
	if err := http.ListenAndServe(cfg.Listen, api.NewRouter(server)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func loadSecret(server *api.Server, sc config.SecretConfig) error {
	resources := make(map[enumor.ResourceType]int, len(sc.Resources))
	for k, n := range sc.Resources {
		resources[enumor.ResourceType(k)] = n
	}
	sec, err := api.NewSecret(sc.Name, enumor.Vendor(sc.Vendor), sc.CloudSecretID, sc.CloudSecretKey, resources)
	if err != nil {
		return err
	}
	sec.ID = sc.ID
	server.Secrets.Create(sec)
	server.Logger.Info("loaded secret",
		zap.String("id", sec.ID),
		zap.String("name", sec.Name),
		zap.String("vendor", string(sec.Vendor)),
	)
	return nil
}
