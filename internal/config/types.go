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

// Package config types define the configuration structures used throughout
// vgc-repeaters. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for vgc-repeaters.
// It collapses every variant of the export (single square or nationwide,
// direct or swapped frequencies, one file or many) into one set of
// enumerated options.
type Config struct {
	Directory DirectoryConfig `yaml:"directory"`
	Filter    FilterConfig    `yaml:"filter"`
	Channel   ChannelConfig   `yaml:"channel"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// DirectoryConfig points the client at the repeater directory service.
type DirectoryConfig struct {
	BaseURL string        `yaml:"base_url" env:"VGC_API_BASE_URL"`
	Scope   Scope         `yaml:"scope" env:"VGC_SCOPE"`
	Timeout time.Duration `yaml:"timeout" env:"VGC_TIMEOUT"`
}

// FilterConfig holds the accepted codes for the record filter.
type FilterConfig struct {
	ModeCode      string        `yaml:"mode_code" env:"VGC_MODE_CODE"`
	Types         []string      `yaml:"types" env:"VGC_TYPES" envSeparator:","`
	Bands         []string      `yaml:"bands" env:"VGC_BANDS" envSeparator:","`
	Status        string        `yaml:"status" env:"VGC_STATUS"`
	LocatorPolicy LocatorPolicy `yaml:"locator_failure" env:"VGC_LOCATOR_FAILURE"`
}

// ChannelConfig controls how a repeater record becomes a channel row.
type ChannelConfig struct {
	FrequencyMapping  FrequencyMapping `yaml:"frequency_mapping" env:"VGC_FREQUENCY_MAPPING"`
	FrequencyDecimals int              `yaml:"frequency_decimals" env:"VGC_FREQUENCY_DECIMALS"`
	WidthPolicy       WidthPolicy      `yaml:"frequency_width_policy" env:"VGC_FREQUENCY_WIDTH_POLICY"`
	PowerThresholdDBW float64          `yaml:"power_threshold_dbw" env:"VGC_POWER_THRESHOLD_DBW"`
	Scan              bool             `yaml:"scan" env:"VGC_SCAN"`
	TitleMaxLength    int              `yaml:"title_max_length" env:"VGC_TITLE_MAX_LENGTH"`
	IncludeAPRS       bool             `yaml:"include_aprs" env:"VGC_APRS"`
	APRSFrequency     string           `yaml:"aprs_frequency" env:"VGC_APRS_FREQUENCY"`
}

// OutputConfig controls paging and where CSV files land.
type OutputConfig struct {
	Dir       string   `yaml:"dir" env:"VGC_OUTPUT_DIR"`
	PageSize  PageSize `yaml:"page_size" env:"VGC_PAGE_SIZE"`
	MultiFile bool     `yaml:"multi_file_output" env:"VGC_MULTI_FILE"`
	MaxFiles  int      `yaml:"max_files" env:"VGC_MAX_FILES"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"VGC_LOG_LEVEL"`
	Format string `yaml:"format" env:"VGC_LOG_FORMAT"`
}

// DefaultConfig returns a Config matching the RSGB directory and a VGC
// radio with 32 channel memories per zone.
func DefaultConfig() *Config {
	return &Config{
		Directory: DirectoryConfig{
			BaseURL: "https://api-beta.rsgb.online",
			Scope:   ScopeCell,
			Timeout: 30 * time.Second,
		},
		Filter: FilterConfig{
			ModeCode:      "A",
			Types:         []string{"AV", "DV"},
			Bands:         []string{"2M", "70CM"},
			Status:        "OPERATIONAL",
			LocatorPolicy: LocatorSkip,
		},
		Channel: ChannelConfig{
			FrequencyMapping:  MappingEndUser,
			FrequencyDecimals: 6,
			WidthPolicy:       WidthReject,
			PowerThresholdDBW: 5,
			APRSFrequency:     "144.800",
		},
		Output: OutputConfig{
			Dir:       ".",
			PageSize:  PageSize32,
			MultiFile: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
