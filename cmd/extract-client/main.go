// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the extract-client CLI.
// It selects PDF files, submits them one at a time to the conversion
// service, and saves each returned workbook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/extract-client/internal/logging"
	"github.com/pdiddy/extract-client/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log.* settings before any subcommand runs.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "extract-client",
	Short: "Convert PDF files to spreadsheets through a remote conversion service",
	Long: `extract-client uploads PDF files to a conversion service one at a time and
saves the workbook returned for each. A failing file stops the batch; files
converted before it are kept.

Settings come from flags, EXTRACT_CLIENT_* environment variables, and
extract-client.yaml in the working directory or ~/.config/extract-client/.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("secrets_dir")
		token, err := secrets.Lookup(dir, secrets.ConvertAPIToken)
		if err != nil {
			return err
		}
		if token != "" && viper.GetString("service.api_token") == "" {
			viper.Set("service.api_token", token)
			fmt.Fprintf(os.Stderr, "Loaded secret: %s\n", secrets.ConvertAPIToken)
		}

		l, err := logging.New(loggingConfig())
		if err != nil {
			return fmt.Errorf("configuring logging: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./extract-client.yaml or ~/.config/extract-client/config.yaml)")
	pf.String("server", "", "conversion service base URL (default "+defaultBaseURL+")")
	pf.Duration("timeout", 0, "HTTP request timeout (default 2m)")
	pf.String("log-level", "", "diagnostic log level: debug, info, warn, error")
	pf.String("secrets-dir", "", "directory holding credential files (default .secrets/)")

	bindFlag("service.base_url", pf.Lookup("server"))
	bindFlag("service.timeout", pf.Lookup("timeout"))
	bindFlag("log.level", pf.Lookup("log-level"))
	bindFlag("secrets_dir", pf.Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("extract-client")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "extract-client"))
		}
	}

	viper.SetEnvPrefix("EXTRACT_CLIENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
