// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/extract-client/internal/intake"
	"github.com/pdiddy/extract-client/internal/service"
	"github.com/pdiddy/extract-client/pkg/types"
)

const (
	defaultBaseURL         = service.DefaultBaseURL
	defaultTimeout         = 2 * time.Minute
	defaultUserAgent       = "extract-client/0.1"
	defaultHealthRetries   = 3
	defaultPacingDelay     = 500 * time.Millisecond
	defaultDoneResetDelay  = 2 * time.Second
	defaultErrorResetDelay = 3 * time.Second
	defaultMaxResults      = 20
)

func setDefaults() {
	viper.SetDefault("secrets_dir", ".secrets/")

	viper.SetDefault("service.base_url", defaultBaseURL)
	viper.SetDefault("service.timeout", defaultTimeout)
	viper.SetDefault("service.user_agent", defaultUserAgent)
	viper.SetDefault("service.health_retries", defaultHealthRetries)

	viper.SetDefault("session.format", string(types.FormatAuto))
	viper.SetDefault("session.output_dir", ".")
	viper.SetDefault("session.pacing_delay", defaultPacingDelay)
	viper.SetDefault("session.done_reset_delay", defaultDoneResetDelay)
	viper.SetDefault("session.error_reset_delay", defaultErrorResetDelay)

	viper.SetDefault("intake.pattern", intake.DefaultPattern)
	viper.SetDefault("intake.require_pdf", true)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.state_dir", defaultStateDir())
	viper.SetDefault("history.max_results", defaultMaxResults)

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output_path", "stderr")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// bindFlag ties a flag to a config key. Only flags set on the command line
// override the file and environment.
func bindFlag(key string, f *pflag.Flag) {
	cobra.CheckErr(viper.BindPFlag(key, f))
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".extract-client")
	}
	return filepath.Join(home, ".local", "state", "extract-client")
}

func serviceConfig() types.ServiceConfig {
	return types.ServiceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("service.timeout"),
			UserAgent: viper.GetString("service.user_agent"),
		},
		BaseURL:       viper.GetString("service.base_url"),
		APIToken:      viper.GetString("service.api_token"),
		HealthRetries: viper.GetInt("service.health_retries"),
	}
}

func sessionConfig() (types.SessionConfig, error) {
	format, err := types.ParseFormat(viper.GetString("session.format"))
	if err != nil {
		return types.SessionConfig{}, err
	}
	return types.SessionConfig{
		Format:          format,
		OutputDir:       viper.GetString("session.output_dir"),
		PacingDelay:     viper.GetDuration("session.pacing_delay"),
		DoneResetDelay:  viper.GetDuration("session.done_reset_delay"),
		ErrorResetDelay: viper.GetDuration("session.error_reset_delay"),
	}, nil
}

func intakeConfig() types.IntakeConfig {
	return types.IntakeConfig{
		Pattern:    viper.GetString("intake.pattern"),
		RequirePDF: viper.GetBool("intake.require_pdf"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Enabled:    viper.GetBool("history.enabled"),
		StateDir:   viper.GetString("history.state_dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func loggingConfig() types.LoggingConfig {
	return types.LoggingConfig{
		Level:      viper.GetString("log.level"),
		Format:     viper.GetString("log.format"),
		OutputPath: viper.GetString("log.output_path"),
	}
}

// loadConfig assembles every component configuration from viper.
func loadConfig() (types.ClientConfig, error) {
	sess, err := sessionConfig()
	if err != nil {
		return types.ClientConfig{}, err
	}
	return types.ClientConfig{
		Service: serviceConfig(),
		Session: sess,
		Intake:  intakeConfig(),
		History: historyConfig(),
		Log:     loggingConfig(),
	}, nil
}
