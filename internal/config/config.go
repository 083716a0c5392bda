// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for vgc-repeaters with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables (a .env file in the working directory is loaded first)
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .vgc-repeaters.yaml (current directory)
//   - .vgc-repeaters.yml (current directory)
//   - ~/.vgc-repeaters/config.yaml
//   - ~/.vgc-repeaters/config.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		home, _ := os.UserHomeDir()
		defaultPaths := []string{
			".vgc-repeaters.yaml",
			".vgc-repeaters.yml",
			filepath.Join(home, ".vgc-repeaters", "config.yaml"),
			filepath.Join(home, ".vgc-repeaters", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Output.Dir = expandPath(cfg.Output.Dir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides loads .env and decodes VGC_* variables over cfg.
// Unset variables leave the current value alone.
func applyEnvOverrides(cfg *Config) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("env.Parse: %w", err)
	}
	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// Validate checks that every option is within its supported range. It
// should be called after flags have been applied.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), vgcerrors.ErrInvalidConfig)
	}

	if c.Directory.BaseURL == "" {
		return invalid("directory base URL cannot be empty")
	}
	if c.Directory.Timeout <= 0 {
		return invalid("directory timeout must be positive, got: %s", c.Directory.Timeout)
	}
	switch c.Directory.Scope {
	case ScopeCell, ScopeNationwide:
	default:
		return invalid("unknown scope %q", c.Directory.Scope)
	}

	if c.Filter.ModeCode == "" {
		return invalid("filter mode code cannot be empty")
	}
	if len(c.Filter.Types) == 0 || len(c.Filter.Bands) == 0 {
		return invalid("filter types and bands cannot be empty")
	}
	if c.Filter.Status == "" {
		return invalid("filter status cannot be empty")
	}
	switch c.Filter.LocatorPolicy {
	case LocatorSkip, LocatorAbort:
	default:
		return invalid("unknown locator failure policy %q", c.Filter.LocatorPolicy)
	}

	switch c.Channel.FrequencyMapping {
	case MappingDirect, MappingEndUser:
	default:
		return invalid("unknown frequency mapping %q", c.Channel.FrequencyMapping)
	}
	if c.Channel.FrequencyDecimals < 0 || c.Channel.FrequencyDecimals > 9 {
		return invalid("frequency decimals must be between 0 and 9, got: %d", c.Channel.FrequencyDecimals)
	}
	switch c.Channel.WidthPolicy {
	case WidthTruncate, WidthReject:
	default:
		return invalid("unknown frequency width policy %q", c.Channel.WidthPolicy)
	}
	if c.Channel.TitleMaxLength < 0 {
		return invalid("title max length cannot be negative, got: %d", c.Channel.TitleMaxLength)
	}
	if c.Channel.IncludeAPRS && c.Channel.APRSFrequency == "" {
		return invalid("APRS frequency cannot be empty when the APRS channel is enabled")
	}

	switch c.Output.PageSize {
	case PageSize16, PageSize32:
	default:
		return invalid("page size must be 16 or 32, got: %d", c.Output.PageSize)
	}
	if c.Output.MaxFiles < 0 {
		return invalid("max files cannot be negative, got: %d", c.Output.MaxFiles)
	}
	if c.Output.Dir == "" {
		return invalid("output directory cannot be empty")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log format must be text or json, got: %q", c.Log.Format)
	}

	return nil
}
