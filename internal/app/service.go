// Package app wires the pipeline stages together: generate, analyze,
// report, export, query, chart, and flush run metrics.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gcheema/passrush/internal/chart"
	"github.com/gcheema/passrush/internal/domain/gen"
	"github.com/gcheema/passrush/internal/domain/model"
	"github.com/gcheema/passrush/internal/domain/stats"
	"github.com/gcheema/passrush/internal/export"
	"github.com/gcheema/passrush/internal/report"
	"github.com/gcheema/passrush/internal/store"
	"github.com/gcheema/passrush/pkg/logger"
	"github.com/gcheema/passrush/pkg/metrics"
)

// Default run settings, overridable via options.
const (
	defaultPlays    = 2500
	defaultSeed     = 42
	defaultMinGroup = 10
)

// Service runs the one-shot analysis pipeline.
type Service struct {
	params   gen.Params
	plays    int
	seed     uint64
	minGroup int
	runID    string

	outputDir   string
	csvFile     string
	chartFile   string
	metricsFile string

	stdout  io.Writer
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithParams sets the generator's distributional parameters.
func WithParams(params gen.Params) Option {
	return func(s *Service) {
		s.params = params
	}
}

// WithPlayCount sets how many plays to generate.
func WithPlayCount(n int) Option {
	return func(s *Service) {
		s.plays = n
	}
}

// WithSeed sets the random seed for the run.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithMinGroupSize sets the sample floor for the high-value breakdown.
func WithMinGroupSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minGroup = n
		}
	}
}

// WithRunID tags the run in the report header and logs.
func WithRunID(id string) Option {
	return func(s *Service) {
		s.runID = id
	}
}

// WithOutputDir sets the artifact directory.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithArtifactNames sets the CSV, chart and metrics file names.
func WithArtifactNames(csvFile, chartFile, metricsFile string) Option {
	return func(s *Service) {
		if csvFile != "" {
			s.csvFile = csvFile
		}
		if chartFile != "" {
			s.chartFile = chartFile
		}
		if metricsFile != "" {
			s.metricsFile = metricsFile
		}
	}
}

// WithStdout redirects the console report.
func WithStdout(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.stdout = w
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets a custom metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a Service with defaults applied.
func New(opts ...Option) *Service {
	s := &Service{
		params:      gen.DefaultParams(),
		plays:       defaultPlays,
		seed:        defaultSeed,
		minGroup:    defaultMinGroup,
		outputDir:   ".",
		csvFile:     "qb_pressure_data.csv",
		chartFile:   "qb_pressure_visualizations.png",
		metricsFile: "qb_pressure_run.prom",
		stdout:      os.Stdout,
		metrics:     metrics.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run executes the whole pipeline. Any stage error aborts the run; the
// artifacts written so far are complete files, never partial ones.
func (s *Service) Run(ctx context.Context) error {
	started := time.Now()
	s.logger.Info(ctx, "starting analysis run",
		logger.String("run_id", s.runID),
		logger.Int("plays", s.plays),
		logger.Any("seed", s.seed))

	table, err := s.generate(ctx)
	if err != nil {
		return err
	}

	results := s.analyze(ctx, table)
	s.render(table, results)

	if err := s.exportCSV(ctx, table); err != nil {
		return err
	}
	if err := s.runSQLReports(ctx, table); err != nil {
		return err
	}
	if err := s.renderChart(ctx, table, results); err != nil {
		return err
	}
	if err := s.flushMetrics(ctx); err != nil {
		return err
	}

	s.metrics.RecordStageDuration("total", time.Since(started))
	s.logger.Info(ctx, "analysis run complete",
		logger.String("run_id", s.runID),
		logger.Duration("elapsed", time.Since(started)))
	return nil
}

func (s *Service) generate(ctx context.Context) (model.Table, error) {
	begin := time.Now()
	g, err := gen.New(s.params, s.seed)
	if err != nil {
		return nil, err
	}
	table, err := g.Generate(ctx, s.plays)
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("generated table failed validation: %w", err)
	}

	s.metrics.RecordPlaysGenerated(len(table), len(table.Pressured()))
	s.metrics.RecordStageDuration("generate", time.Since(begin))
	s.logger.Info(ctx, "table generated",
		logger.Int("plays", len(table)),
		logger.Int("pressured", len(table.Pressured())))
	return table, nil
}

// results bundles every in-memory aggregate the report and chart consume.
type results struct {
	pressureImpact *stats.Summary
	releaseTime    *stats.Summary
	alignment      *stats.Summary
	timing         *stats.Summary
	downDistance   *stats.Summary
	rushers        *stats.Summary
	highValue      *stats.Summary
	yardsTest      stats.TTest
}

func (s *Service) analyze(ctx context.Context, table model.Table) results {
	begin := time.Now()
	r := results{
		pressureImpact: stats.PressureImpact(table),
		releaseTime:    stats.ReleaseTimeCrossTab(table),
		alignment:      stats.AlignmentEffectiveness(table),
		timing:         stats.PressureTimingEffectiveness(table),
		downDistance:   stats.DownDistanceBreakdown(table),
		rushers:        stats.RushersBreakdown(table),
		highValue:      stats.HighValueSituations(table, s.minGroup),
		yardsTest:      stats.Welch(table.Unpressured().YardsGained(), table.Pressured().YardsGained()),
	}
	for i := 0; i < 7; i++ {
		s.metrics.RecordSummaryComputed()
	}
	s.metrics.RecordStageDuration("analyze", time.Since(begin))
	s.logger.Debug(ctx, "in-memory summaries computed")
	return r
}

func (s *Service) render(table model.Table, r results) {
	w := report.New(s.stdout)
	w.Banner(
		"QB PRESSURE ANALYSIS",
		"Quarterback Performance Under Defensive Pressure",
		fmt.Sprintf("Run %s | %d plays | seed %d", s.runID, len(table), s.seed),
	)

	for _, summary := range []*stats.Summary{
		r.pressureImpact, r.releaseTime, r.alignment,
		r.timing, r.downDistance, r.rushers, r.highValue,
	} {
		w.Summary(summary)
	}
	w.Significance(r.yardsTest)

	noPressure, _ := r.pressureImpact.Value("No Pressure", stats.MetricCompletionPct)
	pressure, _ := r.pressureImpact.Value("Pressure", stats.MetricCompletionPct)
	bestAlignment := ""
	if len(r.alignment.Rows) > 0 {
		bestAlignment = r.alignment.Rows[0].Group
	}
	bestTiming := ""
	if top := r.timing.SortByDesc(stats.MetricSuccessPct); len(top.Rows) > 0 {
		bestTiming = top.Rows[0].Group
	}
	w.Findings(noPressure-pressure, stats.YardsPerAttemptGap(table), bestAlignment, bestTiming)
}

func (s *Service) exportCSV(ctx context.Context, table model.Table) error {
	begin := time.Now()
	path := filepath.Join(s.outputDir, s.csvFile)
	if err := export.WriteCSV(path, table); err != nil {
		return err
	}
	s.metrics.RecordRowsExported(len(table))
	s.metrics.RecordStageDuration("export", time.Since(begin))
	s.logger.Info(ctx, "table exported", logger.String("path", path))
	return nil
}

func (s *Service) runSQLReports(ctx context.Context, table model.Table) error {
	begin := time.Now()
	st, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.InsertPlays(ctx, table); err != nil {
		return err
	}
	reports, err := st.Reports(ctx)
	if err != nil {
		return err
	}

	w := report.New(s.stdout)
	for _, rs := range reports {
		w.ResultSet(rs)
		s.metrics.RecordSQLReport()
	}
	s.metrics.RecordStageDuration("sql_reports", time.Since(begin))
	s.logger.Info(ctx, "sql reports complete", logger.Int("reports", len(reports)))
	return nil
}

func (s *Service) renderChart(ctx context.Context, table model.Table, r results) error {
	begin := time.Now()
	path := filepath.Join(s.outputDir, s.chartFile)
	if err := chart.Render(path, s.chartData(table, r)); err != nil {
		return err
	}
	s.metrics.RecordChartPanels(chart.Panels)
	s.metrics.RecordStageDuration("chart", time.Since(begin))
	s.logger.Info(ctx, "figure rendered", logger.String("path", path))
	return nil
}

// chartData maps the in-memory aggregates onto the figure's panels.
func (s *Service) chartData(table model.Table, r results) chart.Data {
	d := chart.Data{
		ThrowTimesNoPressure: table.Unpressured().TimesToThrow(),
		ThrowTimesPressure:   table.Pressured().TimesToThrow(),
	}
	d.CompletionPct[0], _ = r.pressureImpact.Value("No Pressure", stats.MetricCompletionPct)
	d.CompletionPct[1], _ = r.pressureImpact.Value("Pressure", stats.MetricCompletionPct)
	d.YardsPerAttempt[0], _ = r.pressureImpact.Value("No Pressure", stats.MetricYardsPerAttempt)
	d.YardsPerAttempt[1], _ = r.pressureImpact.Value("Pressure", stats.MetricYardsPerAttempt)

	for _, b := range stats.ThrowTimeScale {
		d.CompletionByRelease.Labels = append(d.CompletionByRelease.Labels, b.Label)
		noPressure, _ := r.releaseTime.Value(b.Label+" / No Pressure", stats.MetricCompletionPct)
		pressure, _ := r.releaseTime.Value(b.Label+" / Pressure", stats.MetricCompletionPct)
		d.CompletionByRelease.NoPressure = append(d.CompletionByRelease.NoPressure, noPressure)
		d.CompletionByRelease.Pressure = append(d.CompletionByRelease.Pressure, pressure)
	}

	for _, row := range r.alignment.Rows {
		d.SuccessByAlignment.Labels = append(d.SuccessByAlignment.Labels, row.Group)
		v, _ := r.alignment.Value(row.Group, stats.MetricSuccessPct)
		d.SuccessByAlignment.Values = append(d.SuccessByAlignment.Values, v)
	}
	for _, row := range r.timing.Rows {
		d.SuccessByTiming.Labels = append(d.SuccessByTiming.Labels, row.Group)
		v, _ := r.timing.Value(row.Group, stats.MetricSuccessPct)
		d.SuccessByTiming.Values = append(d.SuccessByTiming.Values, v)
	}
	return d
}

func (s *Service) flushMetrics(ctx context.Context) error {
	path := filepath.Join(s.outputDir, s.metricsFile)
	if err := s.metrics.WriteTextfile(path); err != nil {
		return err
	}
	s.logger.Info(ctx, "run metrics written", logger.String("path", path))
	return nil
}
