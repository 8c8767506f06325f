// Package config loads runtime configuration for both the CLI and the
// LSP server, following the same viper-backed, default-then-override
// pattern the rest of this codebase's tooling uses.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the runtime configuration shared by the compile command and
// the LSP server.
type Config struct {
	Output         OutputConfig `mapstructure:"output"`
	SemanticTokens SemanticTokensConfig `mapstructure:"semantic_tokens"`
}

// OutputConfig controls how the compile command writes its result.
type OutputConfig struct {
	Indent string `mapstructure:"indent"`
}

// SemanticTokensConfig controls whether the LSP server advertises the
// semantic-tokens capability.
type SemanticTokensConfig struct {
	Disabled bool `mapstructure:"disabled"`
}

// disableSemanticTokenEnv is the environment variable documented as part
// of the external interface: setting it to "true" suppresses the
// semantic-tokens capability regardless of any config file setting.
const disableSemanticTokenEnv = "OPENFGA_DISABLE_SEMANTIC_TOKEN"

// Load builds a Config from openfga.yml/openfga.yaml if present, then
// applies the OPENFGA_DISABLE_SEMANTIC_TOKEN environment variable on top
// (the environment variable always wins — it exists specifically so an
// editor integration can flip the capability off without touching a
// project's config file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("output.indent", "  ")
	v.SetDefault("semantic_tokens.disabled", false)
	v.SetConfigName("openfga")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv(disableSemanticTokenEnv) == "true" {
		cfg.SemanticTokens.Disabled = true
	}
	if cfg.Output.Indent == "" {
		cfg.Output.Indent = "  "
	}
	return &cfg, nil
}
