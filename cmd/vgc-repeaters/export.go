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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/geo"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/logx"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/metadata"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/pipeline"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/prompt"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// stdinIsTerminal decides whether missing settings are asked for.
var stdinIsTerminal = logx.IsTerminal

// exportFlags holds flag values. Only flags the user set override the
// loaded configuration.
type exportFlags struct {
	configPath string
	reportPath string
	apiURL     string
	scope      config.Scope
	timeout    time.Duration
	mapping    config.FrequencyMapping
	aprs       bool
	scan       bool
	pageSize   config.PageSize
	multiFile  bool
	outputDir  string
	logLevel   string
	logFormat  string
}

func newExportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [LOCATOR]",
		Short: "Write nearby repeaters as VGC channel files",
		Long: `Fetch repeaters from the RSGB directory and write the nearest analogue
voice repeaters as VGC channel import files.

LOCATOR is your Maidenhead grid locator, for example IO83 or IO83qk. When it
is left out and stdin is a terminal you are asked for it, along with the APRS
channel and the number of channels per file.

Files are named "Repeaters - <LOCATOR>.csv", or
"Repeaters - <LOCATOR> - Part <n>.csv" when the export is split.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			locator := ""
			if len(args) == 1 {
				locator = args[0]
			}
			return runExport(ctx, cmd, locator, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file path (default: .vgc-repeaters.yaml or ~/.vgc-repeaters/config.yaml)")
	cmd.Flags().StringVar(&flags.reportPath, "report", "", "Write a JSON run report to this path")

	// Directory
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "Repeater directory base URL")
	cmd.Flags().Var(&flags.scope, "scope", "Repeaters to fetch: cell (your grid square) or nationwide")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Directory request timeout (default 30s)")

	// Channels
	cmd.Flags().Var(&flags.mapping, "mapping", "Frequency mapping: end-user (listen on the repeater output) or direct")
	cmd.Flags().BoolVar(&flags.aprs, "aprs", false, "Add the APRS channel to the top of each file")
	cmd.Flags().BoolVar(&flags.scan, "scan", false, "Mark exported channels for scanning")

	// Output
	cmd.Flags().Var(&flags.pageSize, "page-size", "Channels per file: 16 or 32")
	cmd.Flags().BoolVar(&flags.multiFile, "multi-file", true, "Split into part files when repeaters do not fit one file")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory for the channel files (default: current directory)")

	// Logging
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	return cmd
}

// runExport loads the configuration, fills gaps interactively and runs the
// export pipeline.
func runExport(ctx context.Context, cmd *cobra.Command, locator string, flags *exportFlags) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), flags, cfg)

	if stdinIsTerminal(cmd.InOrStdin()) {
		locator, err = askMissing(cmd, locator, cfg)
		if err != nil {
			return err
		}
	}
	if locator == "" {
		return fmt.Errorf("no grid locator given, pass it as the first argument: %w", vgcerrors.ErrInvalidLocator)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: %w", err, vgcerrors.ErrInvalidConfig)
	}
	logger := logx.New(cmd.ErrOrStderr(), level, cfg.Log.Format)

	client := rsgb.NewHTTPClient(cfg.Directory.BaseURL,
		rsgb.WithLogger(logger),
		rsgb.WithUserAgent("vgc-repeaters/"+version),
		rsgb.WithTimeout(cfg.Directory.Timeout),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Directory.Timeout)
	defer cancel()

	tracker := metadata.New()
	p := pipeline.New(client, cfg,
		pipeline.WithLogger(logger),
		pipeline.WithTracker(tracker),
	)

	result, err := p.Run(ctx, locator)
	if err != nil {
		return err
	}

	report := tracker.GenerateReport(version, runParams(cfg, locator))
	logger.Info("export complete", slog.Any("report", report))

	if flags.reportPath != "" {
		if err := metadata.SaveReport(report, flags.reportPath); err != nil {
			return fmt.Errorf("failed to save run report: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if len(result.Files) == 0 {
		fmt.Fprintf(out, "No repeaters to export near %s\n", geo.Normalize(locator))
		return nil
	}
	for _, f := range result.Files {
		fmt.Fprintln(out, f)
	}
	return nil
}

// applyFlags copies the flags the user set onto cfg.
func applyFlags(fs *pflag.FlagSet, flags *exportFlags, cfg *config.Config) {
	if fs.Changed("api-url") {
		cfg.Directory.BaseURL = flags.apiURL
	}
	if fs.Changed("scope") {
		cfg.Directory.Scope = flags.scope
	}
	if fs.Changed("timeout") {
		cfg.Directory.Timeout = flags.timeout
	}
	if fs.Changed("mapping") {
		cfg.Channel.FrequencyMapping = flags.mapping
	}
	if fs.Changed("aprs") {
		cfg.Channel.IncludeAPRS = flags.aprs
	}
	if fs.Changed("scan") {
		cfg.Channel.Scan = flags.scan
	}
	if fs.Changed("page-size") {
		cfg.Output.PageSize = flags.pageSize
	}
	if fs.Changed("multi-file") {
		cfg.Output.MultiFile = flags.multiFile
	}
	if fs.Changed("output-dir") {
		cfg.Output.Dir = flags.outputDir
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
}

// askMissing prompts for the locator, APRS channel and page size when they
// were not given on the command line. Configured values are the defaults.
func askMissing(cmd *cobra.Command, locator string, cfg *config.Config) (string, error) {
	p := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())

	var err error
	if locator == "" {
		if locator, err = p.Locator(); err != nil {
			return "", promptError(err)
		}
	}
	if !cmd.Flags().Changed("aprs") {
		if cfg.Channel.IncludeAPRS, err = p.YesNo("Add the APRS channel?", cfg.Channel.IncludeAPRS); err != nil {
			return "", promptError(err)
		}
	}
	if !cmd.Flags().Changed("page-size") {
		if cfg.Output.PageSize, err = p.PageSize(cfg.Output.PageSize); err != nil {
			return "", promptError(err)
		}
	}
	return locator, nil
}

func promptError(err error) error {
	if errors.Is(err, vgcerrors.ErrInvalidLocator) {
		return err
	}
	return fmt.Errorf("failed to read answer: %w", err)
}

func runParams(cfg *config.Config, locator string) metadata.RunParams {
	return metadata.RunParams{
		Locator:           geo.Normalize(locator),
		Scope:             cfg.Directory.Scope.String(),
		FrequencyMapping:  cfg.Channel.FrequencyMapping.String(),
		FrequencyDecimals: cfg.Channel.FrequencyDecimals,
		PageSize:          int(cfg.Output.PageSize),
		MultiFile:         cfg.Output.MultiFile,
		MaxFiles:          cfg.Output.MaxFiles,
		IncludeAPRS:       cfg.Channel.IncludeAPRS,
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, vgcerrors.ErrInvalidLocator) {
		return 2 // The user's grid locator could not be decoded
	}

	if errors.Is(err, vgcerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	if errors.Is(err, vgcerrors.ErrMalformedResponse) {
		return 4 // Directory answered with something other than repeater data
	}

	return 1 // General error
}
