package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/extract"
	"github.com/hr-insights/etl-backend-go/internal/kpi"
	"github.com/hr-insights/etl-backend-go/internal/pkg/retry"
	"github.com/hr-insights/etl-backend-go/internal/quality"
	"github.com/hr-insights/etl-backend-go/internal/transform"
)

// Extractor produces the raw tables a run starts from.
type Extractor interface {
	Employees(ctx context.Context) (extract.Table, error)
	Timesheets(ctx context.Context) (extract.Table, error)
}

// BronzeStore lands normalizer output verbatim.
type BronzeStore interface {
	ReplaceEmployees(ctx context.Context, t extract.Table) (int64, error)
	ReplaceTimesheets(ctx context.Context, t extract.Table) (int64, error)
}

// KPIEngine materializes the gold catalogue best-effort.
type KPIEngine interface {
	GenerateAll(ctx context.Context) ([]kpi.Result, error)
}

// QualityGate runs the post-silver-load checks.
type QualityGate interface {
	Check(ctx context.Context) (quality.Report, error)
}

// Summary describes one finished run.
type Summary struct {
	RunID                string
	StartedAt            time.Time
	Duration             time.Duration
	ExtractedEmployees   int
	ExtractedTimesheets  int
	DroppedDupEmployees  int
	DroppedDupTimesheets int
	SilverEmployees      int64
	SilverTimesheets     int64
	Quality              quality.Report
	KPIs                 []kpi.Result
}

// FailedKPIs lists the gold tables that could not be materialized.
func (s *Summary) FailedKPIs() []string {
	var failed []string
	for _, r := range s.KPIs {
		if r.Err != nil {
			failed = append(failed, r.Table)
		}
	}
	return failed
}

// Pipeline is one sequential run: extract → bronze load → transform →
// silver load → quality check → KPI generation. Each stage owns its output
// tables exclusively; there is no support for concurrent overlapping runs
// against the same store.
type Pipeline struct {
	extractor Extractor
	bronze    BronzeStore
	silverEmp employee.Store
	silverTS  timesheet.Store
	gate      QualityGate
	engine    KPIEngine

	maxRetries int
	retryDelay time.Duration
	now        func() time.Time
	log        *slog.Logger
}

type Option func(*Pipeline)

// WithClock overrides the run-time clock used for tenure derivation.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(
	extractor Extractor,
	bronze BronzeStore,
	silverEmp employee.Store,
	silverTS timesheet.Store,
	gate QualityGate,
	engine KPIEngine,
	maxRetries int,
	retryDelay time.Duration,
	log *slog.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		extractor:  extractor,
		bronze:     bronze,
		silverEmp:  silverEmp,
		silverTS:   silverTS,
		gate:       gate,
		engine:     engine,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full sequential chain. Extract and load steps are
// retried on transient failure; a persistent failure terminates the run
// and may leave partial bronze/silver state behind. Re-triggering rebuilds
// everything from scratch. Per-KPI failures never fail the run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: p.now(),
	}
	log := p.log.With("run_id", summary.RunID)
	log.Info("starting etl pipeline")

	// 1. Extract. A missing roster fails here, before any store mutation.
	empTable, err := p.extractor.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract employees: %w", err)
	}
	tsTable, err := p.extractor.Timesheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract timesheets: %w", err)
	}
	summary.ExtractedEmployees = len(empTable.Rows)
	summary.ExtractedTimesheets = len(tsTable.Rows)

	// 2. Bronze load: raw rows verbatim, duplicates included.
	err = retry.Do(ctx, log, "load bronze", p.maxRetries, p.retryDelay, func(ctx context.Context) error {
		if _, err := p.bronze.ReplaceEmployees(ctx, empTable); err != nil {
			return err
		}
		_, err := p.bronze.ReplaceTimesheets(ctx, tsTable)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load bronze: %w", err)
	}
	log.Info("loaded bronze layer", "employees", len(empTable.Rows), "timesheets", len(tsTable.Rows))

	// 3. Transform. Data-shape issues are absorbed here, never raised.
	empDS, empDropped := transform.Employees(empTable, p.now())
	tsDS, tsDropped := transform.Timesheets(tsTable)
	summary.DroppedDupEmployees = empDropped
	summary.DroppedDupTimesheets = tsDropped
	log.Info("transformed to silver shape",
		"employees", len(empDS.Records), "dropped_dup_employees", empDropped,
		"timesheets", len(tsDS.Records), "dropped_dup_timesheets", tsDropped,
	)

	// 4. Silver load.
	err = retry.Do(ctx, log, "load silver", p.maxRetries, p.retryDelay, func(ctx context.Context) error {
		n, err := p.silverEmp.Replace(ctx, empDS)
		if err != nil {
			return err
		}
		summary.SilverEmployees = n

		n, err = p.silverTS.Replace(ctx, tsDS)
		if err != nil {
			return err
		}
		summary.SilverTimesheets = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load silver: %w", err)
	}
	log.Info("loaded silver layer", "employees", summary.SilverEmployees, "timesheets", summary.SilverTimesheets)

	// 5. Quality gate: warnings only, never blocks gold generation.
	report, err := p.gate.Check(ctx)
	if err != nil {
		log.Warn("quality gate could not run", "error", err)
	} else {
		summary.Quality = report
	}

	// 6. KPI generation: best-effort batch, one result per table.
	results, err := p.engine.GenerateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate kpis: %w", err)
	}
	summary.KPIs = results

	summary.Duration = p.now().Sub(summary.StartedAt)
	if failed := summary.FailedKPIs(); len(failed) > 0 {
		log.Warn("etl pipeline finished with failed kpi tables", "failed", failed, "duration", summary.Duration)
	} else {
		log.Info("etl pipeline completed", "duration", summary.Duration)
	}
	return summary, nil
}
