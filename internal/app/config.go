package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenePath   string // scene snapshot JSON file
	ProfilePath string // check profile file or directory (hcl/yaml), optional

	OutputFormat string // "json" or "text"
	LogFormat    string
	LogLevel     string
	WorkerCount  int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenePath == "" {
		return nil, errors.New("ScenePath is a required configuration field and cannot be empty")
	}

	// Future validations for other fields can be added here.

	return &cfg, nil
}
