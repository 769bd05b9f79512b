package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the configuration from the environment. Field names come
// from the `env` and `envPrefix` tags of [StructuredConfig].
//
// List values are comma separated; blanks around items are dropped, so
// "png, jpg" and "png,jpg" mean the same.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	exts := cfg.Storage.Files.AllowedExtensions[:0]
	for _, ext := range cfg.Storage.Files.AllowedExtensions {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		exts = nil
	}
	cfg.Storage.Files.AllowedExtensions = exts

	return &cfg, nil
}
