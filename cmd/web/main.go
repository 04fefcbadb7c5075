package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/erptools/odoo-insight/pkg/server"
	"github.com/erptools/odoo-insight/pkg/services/accounting"
	"github.com/erptools/odoo-insight/pkg/services/config"
	"github.com/erptools/odoo-insight/pkg/services/hr"
	"github.com/erptools/odoo-insight/pkg/services/inventory"
	"github.com/erptools/odoo-insight/pkg/services/purchase"
	"github.com/erptools/odoo-insight/pkg/services/sales"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the Odoo Insight HTTP API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// Optional; settings can come entirely from the config file.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	client := odoo.NewClient(odoo.ClientConfig{
		URL:      cfg.Odoo.URL,
		Database: cfg.Odoo.Database,
		Username: cfg.Odoo.Username,
		APIKey:   cfg.Odoo.APIKey,
	})
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("failed to authenticate against %s: %w", cfg.Odoo.URL, err)
	}
	logger.Info().Str("url", cfg.Odoo.URL).Str("database", cfg.Odoo.Database).Msg("authenticated")

	gateway := odoo.NewFetcher(client)

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Dependencies: server.Dependencies{
			Sales:      sales.NewService(gateway),
			Purchase:   purchase.NewService(gateway),
			Inventory:  inventory.NewService(gateway),
			Accounting: accounting.NewService(gateway),
			HR:         hr.NewService(gateway),
			Logger:     logger,
		},
	})

	return api.Start()
}
