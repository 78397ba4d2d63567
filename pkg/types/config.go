// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "extract-client/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServiceConfig holds settings for the remote conversion service.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the service root; /api/convert and /api/health are
	// resolved against it (default http://localhost:5000).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIToken is an optional bearer token sent with every request.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// HealthRetries is the number of retries of the health probe on
	// 429/503 responses (default 3).
	HealthRetries int `json:"health_retries" yaml:"health_retries"`
}

// SessionConfig holds settings for one upload session.
type SessionConfig struct {
	// Format is the output format submitted with every file of a batch.
	Format Format `json:"format" yaml:"format"`

	// OutputDir is where converted artifacts are saved (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// PacingDelay is the wait after a successful save before the next
	// file is submitted (default 500ms).
	PacingDelay time.Duration `json:"pacing_delay" yaml:"pacing_delay"`

	// DoneResetDelay is how long the success message stays up before the
	// session resets (default 2s).
	DoneResetDelay time.Duration `json:"done_reset_delay" yaml:"done_reset_delay"`

	// ErrorResetDelay is how long the error message stays up before the
	// session resets (default 3s).
	ErrorResetDelay time.Duration `json:"error_reset_delay" yaml:"error_reset_delay"`
}

// IntakeConfig holds settings for turning paths into a selection.
type IntakeConfig struct {
	// Pattern filters directory entries (default "*.pdf").
	Pattern string `json:"pattern" yaml:"pattern"`

	// RequirePDF rejects files whose sniffed content is not a PDF.
	RequirePDF bool `json:"require_pdf" yaml:"require_pdf"`
}

// HistoryConfig holds settings for the local conversion history.
type HistoryConfig struct {
	// Enabled turns history recording on (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// StateDir contains history.db (default ~/.local/state/extract-client).
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// MaxResults is the default number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format"`

	// OutputPath is stderr, stdout, or a file path (default stderr).
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// ClientConfig groups all component configurations.
type ClientConfig struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	Session SessionConfig `json:"session" yaml:"session"`
	Intake  IntakeConfig  `json:"intake" yaml:"intake"`
	History HistoryConfig `json:"history" yaml:"history"`
	Log     LoggingConfig `json:"log" yaml:"log"`
}
