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
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/channel"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/metadata"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/test/testutil"
)

type harness struct {
	cfg    *config.Config
	client *rsgb.MockClient
	logs   *bytes.Buffer
	dir    string
}

func newHarness(t *testing.T, repeaters []rsgb.Repeater) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.Dir = t.TempDir()
	return &harness{
		cfg:    cfg,
		client: rsgb.NewMockClientWithOptions(rsgb.WithRepeaters(repeaters)),
		logs:   &bytes.Buffer{},
		dir:    cfg.Output.Dir,
	}
}

func (h *harness) pipeline(opts ...Option) *Pipeline {
	logger := slog.New(slog.NewJSONHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(h.client, h.cfg, append([]Option{WithLogger(logger)}, opts...)...)
}

func TestRun_FortyRecordsTwoFiles(t *testing.T) {
	rq := require.New(t)

	h := newHarness(t, testutil.EligibleRepeaters(40))
	h.cfg.Output.PageSize = config.PageSize32
	h.cfg.Output.MultiFile = true
	h.cfg.Channel.IncludeAPRS = true

	p := h.pipeline()
	result, err := p.Run(context.Background(), "IO83")
	rq.NoError(err)
	rq.Nil(result.Overflow)

	rq.Equal([]string{
		"Repeaters - IO83 - Part 1.csv",
		"Repeaters - IO83 - Part 2.csv",
	}, testutil.ListCSVFiles(t, h.dir))
	rq.Equal([]string{
		filepath.Join(h.dir, "Repeaters - IO83 - Part 1.csv"),
		filepath.Join(h.dir, "Repeaters - IO83 - Part 2.csv"),
	}, result.Files)

	first := testutil.AssertChannelFile(t, result.Files[0], 33, true)
	second := testutil.AssertChannelFile(t, result.Files[1], 9, true)

	// Data rows across both files reproduce the ranking.
	var titles []string
	for _, row := range append(first[1:], second[1:]...) {
		titles = append(titles, row[0])
	}
	want := make([]string, 0, 40)
	for _, r := range testutil.EligibleRepeaters(40) {
		want = append(want, r.Name)
	}
	rq.Equal(want, titles)

	testutil.AssertNoLogEvent(t, h.logs, "more repeaters than fit the allowed files; the furthest are left out")
	event := testutil.AssertLogEvent(t, h.logs, "splitting export into part files")
	rq.Equal("INFO", event["level"])
	rq.Equal(float64(1), event["count"])

	report := p.Tracker().GenerateReport("test", metadata.RunParams{})
	rq.Equal(40, report.Results.Fetched)
	rq.Equal(40, report.Results.Encoded)
	rq.Equal(2, report.Results.Pages)
	rq.Len(report.Results.Files, 2)
}

func TestRun_OverflowSingleFile(t *testing.T) {
	rq := require.New(t)

	h := newHarness(t, testutil.EligibleRepeaters(40))
	h.cfg.Output.PageSize = config.PageSize16
	h.cfg.Output.MultiFile = false
	h.cfg.Channel.IncludeAPRS = true

	p := h.pipeline()
	result, err := p.Run(context.Background(), "IO83")
	rq.NoError(err)

	rq.Equal(&Overflow{Records: 24, Pages: 2}, result.Overflow)
	rq.Equal([]string{"Repeaters - IO83.csv"}, testutil.ListCSVFiles(t, h.dir))
	rows := testutil.AssertChannelFile(t, result.Files[0], 17, true)
	rq.Equal("GB3T001", rows[1][0])
	rq.Equal("GB3T016", rows[16][0])

	event := testutil.AssertLogEvent(t, h.logs, "more repeaters than fit the allowed files; the furthest are left out")
	rq.Equal("WARN", event["level"])
	rq.Equal(float64(24), event["dropped"])
	rq.Equal(float64(2), event["pages"])

	rq.Equal(24, p.Tracker().GenerateReport("test", metadata.RunParams{}).Results.OverflowRecords)
}

func TestRun_WithoutAPRS(t *testing.T) {
	h := newHarness(t, testutil.EligibleRepeaters(3))
	h.cfg.Channel.IncludeAPRS = false

	result, err := h.pipeline().Run(context.Background(), "IO83")
	require.NoError(t, err)
	rows := testutil.AssertChannelFile(t, result.Files[0], 3, false)
	require.Equal(t, "GB3T001", rows[0][0])
}

func TestRun_FiltersAndSkips(t *testing.T) {
	rq := require.New(t)

	repeaters := []rsgb.Repeater{
		testutil.NewRepeaterBuilder("GB3OK").Build(),
		testutil.NewRepeaterBuilder("GB3DOWN").WithStatus("NOT OPERATIONAL").Build(),
		testutil.NewRepeaterBuilder("GB3NOTONE").WithTone(nil).Build(),
		testutil.NewRepeaterBuilder("GB3WIDE").WithFrequencies("145.737512", "145.1375").Build(),
		testutil.NewRepeaterBuilder("GB3NOWHERE").WithLocator("??").Build(),
	}

	h := newHarness(t, repeaters)
	h.cfg.Channel.FrequencyDecimals = 4

	p := h.pipeline()
	result, err := p.Run(context.Background(), "io83")
	rq.NoError(err)

	rq.Equal([]string{filepath.Join(h.dir, "Repeaters - IO83.csv")}, result.Files)
	rows := testutil.AssertChannelFile(t, result.Files[0], 1, false)
	rq.Equal("GB3OK", rows[0][0])
	rq.Equal("1451375", rows[0][1])

	tracker := p.Tracker()
	rq.Equal(1, tracker.Skipped(metadata.ReasonMissingField))
	rq.Equal(1, tracker.Skipped(metadata.ReasonFrequencyWidth))
	rq.Equal(1, tracker.Skipped(metadata.ReasonInvalidLocator))

	testutil.AssertLogEvent(t, h.logs, "skipping repeater with missing fields")
	testutil.AssertLogEvent(t, h.logs, "skipping repeater with frequency wider than configured")
	testutil.AssertLogEvent(t, h.logs, "fetched repeaters")
	testutil.AssertLogEvent(t, h.logs, "first fetched record")
}

func TestRun_TruncatePolicyKeepsWideFrequency(t *testing.T) {
	h := newHarness(t, []rsgb.Repeater{
		testutil.NewRepeaterBuilder("GB3WIDE").WithFrequencies("145.737512", "145.137512").Build(),
	})
	h.cfg.Channel.FrequencyDecimals = 4
	h.cfg.Channel.WidthPolicy = config.WidthTruncate

	result, err := h.pipeline().Run(context.Background(), "IO83")
	require.NoError(t, err)
	rows := testutil.AssertChannelFile(t, result.Files[0], 1, false)
	require.Equal(t, "1451375", rows[0][1])
	require.Equal(t, "1457375", rows[0][2])
}

func TestRun_InvalidUserLocator(t *testing.T) {
	h := newHarness(t, testutil.EligibleRepeaters(3))

	_, err := h.pipeline().Run(context.Background(), "XX99zz")
	if !errors.Is(err, vgcerrors.ErrInvalidLocator) {
		t.Fatalf("Run() error = %v, want ErrInvalidLocator", err)
	}
	if h.client.CallCount != 0 {
		t.Error("directory should not be queried for an invalid locator")
	}
	if files := testutil.ListCSVFiles(t, h.dir); len(files) != 0 {
		t.Errorf("no files should be written, got %v", files)
	}
}

func TestRun_FetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		client  *rsgb.MockClient
		wantErr error
	}{
		{"network", rsgb.NewMockClientWithOptions(rsgb.WithNetworkFailure()), vgcerrors.ErrNetworkFailure},
		{"malformed", &rsgb.MockClient{ShouldFailMalformed: true}, vgcerrors.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.client = tt.client

			_, err := h.pipeline().Run(context.Background(), "IO83")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if files := testutil.ListCSVFiles(t, h.dir); len(files) != 0 {
				t.Errorf("no files should be written, got %v", files)
			}
		})
	}
}

func TestRun_ScopeAndLocatorPassedToClient(t *testing.T) {
	h := newHarness(t, testutil.EligibleRepeaters(1))
	h.cfg.Directory.Scope = config.ScopeNationwide

	_, err := h.pipeline().Run(context.Background(), "io83qk")
	require.NoError(t, err)
	require.Equal(t, config.ScopeNationwide, h.client.LastScope)
	require.Equal(t, "IO83qk", h.client.LastLocator)
	require.Equal(t, []string{"Repeaters - IO83qk.csv"}, testutil.ListCSVFiles(t, h.dir))
}

func TestRun_NothingEligible(t *testing.T) {
	h := newHarness(t, []rsgb.Repeater{
		testutil.NewRepeaterBuilder("GB3DOWN").WithStatus("NOT OPERATIONAL").Build(),
	})
	h.cfg.Channel.IncludeAPRS = true

	result, err := h.pipeline().Run(context.Background(), "IO83")
	require.NoError(t, err)
	require.Empty(t, result.Files)
	require.Empty(t, testutil.ListCSVFiles(t, h.dir))
	testutil.AssertLogEvent(t, h.logs, "no repeaters to export")
}

func TestRun_AbortPolicy(t *testing.T) {
	h := newHarness(t, []rsgb.Repeater{
		testutil.NewRepeaterBuilder("GB3OK").Build(),
		testutil.NewRepeaterBuilder("GB3BAD").WithLocator("bad!").Build(),
	})
	h.cfg.Filter.LocatorPolicy = config.LocatorAbort

	_, err := h.pipeline().Run(context.Background(), "IO83")
	require.ErrorIs(t, err, vgcerrors.ErrInvalidLocator)
	require.Empty(t, testutil.ListCSVFiles(t, h.dir))
}

func TestRun_BadAPRSFrequency(t *testing.T) {
	h := newHarness(t, testutil.EligibleRepeaters(2))
	h.cfg.Channel.IncludeAPRS = true
	h.cfg.Channel.FrequencyDecimals = 4
	h.cfg.Channel.APRSFrequency = "144.80005"

	_, err := h.pipeline().Run(context.Background(), "IO83")
	require.ErrorIs(t, err, vgcerrors.ErrInvalidConfig)
	require.Empty(t, testutil.ListCSVFiles(t, h.dir))
}

type failingSink struct{ pages [][]channel.Row }

func (s *failingSink) WritePages(_ string, pages [][]channel.Row) ([]string, error) {
	s.pages = pages
	return nil, errors.New("disk full")
}

func TestRun_SinkFailure(t *testing.T) {
	h := newHarness(t, testutil.EligibleRepeaters(5))
	sink := &failingSink{}

	_, err := h.pipeline(WithSink(sink)).Run(context.Background(), "IO83")
	testutil.AssertErrorContains(t, err, "disk full")
	require.Len(t, sink.pages, 1)
	require.Len(t, sink.pages[0], 5)
}
