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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/channel"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/geo"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/logx"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/metadata"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/output"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// PageSink writes finished pages. output.PageWriter is the production
// implementation.
type PageSink interface {
	WritePages(locator string, pages [][]channel.Row) ([]string, error)
}

// Result summarises a successful run.
type Result struct {
	// Files are the paths written, in page order.
	Files []string
	// Overflow is set when some rows did not fit the allowed pages.
	Overflow *Overflow
}

// Pipeline wires the export stages together.
type Pipeline struct {
	client   rsgb.Client
	resolver geo.Resolver
	sink     PageSink
	cfg      *config.Config
	logger   *slog.Logger
	tracker  *metadata.Tracker
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResolver replaces the Maidenhead resolver.
func WithResolver(r geo.Resolver) Option {
	return func(p *Pipeline) { p.resolver = r }
}

// WithSink replaces the file writer.
func WithSink(s PageSink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithLogger sets the logger for pipeline events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTracker sets the tracker that collects run statistics.
func WithTracker(t *metadata.Tracker) Option {
	return func(p *Pipeline) { p.tracker = t }
}

// New creates a pipeline reading from client with settings from cfg.
func New(client rsgb.Client, cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:   client,
		resolver: geo.MaidenheadResolver{},
		cfg:      cfg,
		logger:   logx.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tracker == nil {
		p.tracker = metadata.New()
	}
	if p.sink == nil {
		p.sink = output.NewPageWriter(cfg.Output.Dir, p.logger)
	}
	return p
}

// Tracker returns the tracker holding this pipeline's statistics.
func (p *Pipeline) Tracker() *metadata.Tracker {
	return p.tracker
}

// Run exports the repeaters near locator. Nothing is written unless every
// stage before the writer succeeds.
func (p *Pipeline) Run(ctx context.Context, locator string) (*Result, error) {
	locator = geo.Normalize(locator)
	log := p.logger.With(slog.String(logx.FieldRunID, p.tracker.RunID()))

	origin, err := p.resolver.Resolve(locator)
	if err != nil {
		return nil, fmt.Errorf("your grid locator %q: %w", locator, err)
	}

	records, err := p.client.FetchRepeaters(ctx, p.cfg.Directory.Scope, locator)
	if err != nil {
		return nil, err
	}
	p.tracker.RecordFetched(len(records))
	log.Debug("fetched repeaters",
		slog.String(logx.FieldScope, p.cfg.Directory.Scope.String()),
		slog.Int(logx.FieldCount, len(records)),
	)
	if len(records) > 0 {
		first := records[0]
		log.Debug("first fetched record",
			slog.String(logx.FieldRepeater, first.Name),
			slog.String(logx.FieldLocator, first.Locator),
			slog.String(logx.FieldBand, first.Band),
		)
	}

	eligible := Filter(records, CriteriaFromConfig(p.cfg.Filter))
	p.tracker.RecordEligible(len(eligible))
	log.Info("filtered repeaters",
		slog.Int(logx.FieldCount, len(eligible)),
		slog.Int(logx.FieldDropped, len(records)-len(eligible)),
	)

	ranker := NewRanker(p.resolver, p.cfg.Filter.LocatorPolicy, log)
	ranker.OnSkip = func(rsgb.Repeater, error) {
		p.tracker.RecordSkip(metadata.ReasonInvalidLocator)
	}
	ranked, err := ranker.Rank(ctx, eligible, origin)
	if err != nil {
		return nil, err
	}
	p.tracker.RecordRanked(len(ranked))
	if len(ranked) > 0 {
		log.Debug("nearest repeater",
			slog.String(logx.FieldRepeater, ranked[0].Repeater.Name),
			slog.Float64(logx.FieldDistanceKm, ranked[0].DistanceKm),
		)
	}

	encoder := channel.NewEncoder(p.cfg.Channel)
	rows, err := p.encode(encoder, ranked, log)
	if err != nil {
		return nil, err
	}
	p.tracker.RecordEncoded(len(rows))

	if len(rows) == 0 {
		p.tracker.RecordPages(0, 0)
		log.Warn("no repeaters to export", slog.String(logx.FieldLocator, locator))
		return &Result{}, nil
	}

	paged := Paginate(rows, PageOptions{
		Size:      int(p.cfg.Output.PageSize),
		MultiFile: p.cfg.Output.MultiFile,
		MaxPages:  p.cfg.Output.MaxFiles,
	})

	overflowRecords := 0
	if paged.Overflow != nil {
		overflowRecords = paged.Overflow.Records
		log.Warn("more repeaters than fit the allowed files; the furthest are left out",
			slog.Int(logx.FieldDropped, paged.Overflow.Records),
			slog.Int(logx.FieldPages, paged.Overflow.Pages),
		)
	}
	if len(paged.Pages) > 1 {
		log.Info("splitting export into part files",
			slog.Int(logx.FieldFiles, len(paged.Pages)),
			slog.Int(logx.FieldCount, len(paged.Pages)-1),
		)
	}
	p.tracker.RecordPages(len(paged.Pages), overflowRecords)

	pages, err := p.withAPRS(encoder, paged.Pages)
	if err != nil {
		return nil, err
	}

	files, err := p.sink.WritePages(locator, pages)
	if err != nil {
		return nil, fmt.Errorf("failed to write channel files: %w", err)
	}
	for _, f := range files {
		p.tracker.RecordFile(f)
	}

	return &Result{Files: files, Overflow: paged.Overflow}, nil
}

// encode converts ranked records to rows, skipping records that are
// missing fields or whose frequencies do not fit the configured width.
func (p *Pipeline) encode(encoder *channel.Encoder, ranked []Ranked, log *slog.Logger) ([]channel.Row, error) {
	rows := make([]channel.Row, 0, len(ranked))

	for _, rk := range ranked {
		err := rsgb.ValidateRepeater(rk.Repeater)
		var row channel.Row
		if err == nil {
			row, err = encoder.Encode(rk.Repeater)
		}

		switch {
		case err == nil:
			rows = append(rows, row)
		case errors.Is(err, vgcerrors.ErrMissingField):
			p.tracker.RecordSkip(metadata.ReasonMissingField)
			log.Warn("skipping repeater with missing fields",
				slog.String(logx.FieldRepeater, rk.Repeater.Name),
				logx.Error(err),
			)
		case errors.Is(err, vgcerrors.ErrFrequencyWidth):
			p.tracker.RecordSkip(metadata.ReasonFrequencyWidth)
			log.Warn("skipping repeater with frequency wider than configured",
				slog.String(logx.FieldRepeater, rk.Repeater.Name),
				slog.String(logx.FieldReason, "frequency_width_policy is reject"),
				logx.Error(err),
			)
		default:
			return nil, err
		}
	}

	return rows, nil
}

// withAPRS prepends the APRS row to every page when it is enabled. The row
// does not count against the page size.
func (p *Pipeline) withAPRS(encoder *channel.Encoder, pages [][]channel.Row) ([][]channel.Row, error) {
	if !p.cfg.Channel.IncludeAPRS {
		return pages, nil
	}

	aprs, err := encoder.APRS()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, vgcerrors.ErrInvalidConfig)
	}

	out := make([][]channel.Row, len(pages))
	for i, page := range pages {
		rows := make([]channel.Row, 0, len(page)+1)
		rows = append(rows, aprs)
		out[i] = append(rows, page...)
	}
	return out, nil
}
