package quality

import (
	"context"
	"fmt"
	"log/slog"
)

// Stats are the post-load invariant counts over the silver tables.
type Stats struct {
	EmployeeRows     int64
	TimesheetRows    int64
	NullEmployeeIDs  int64
	NullHireDates    int64
	NullPunchDates   int64
	NullTimesheetIDs int64
}

// Report is the gate outcome carried in the run summary. Warnings are
// observability events: they never block gold generation.
type Report struct {
	Stats    Stats
	Warnings []string
}

// StatsSource is implemented by the silver store.
type StatsSource interface {
	QualityStats(ctx context.Context) (Stats, error)
}

// Gate runs the post-silver-load checks.
type Gate struct {
	src StatsSource
	log *slog.Logger
}

func NewGate(src StatsSource, log *slog.Logger) *Gate {
	return &Gate{src: src, log: log}
}

// Check computes row counts and null-critical-field counts, logging a
// warning for each violated expectation.
func (g *Gate) Check(ctx context.Context) (Report, error) {
	stats, err := g.src.QualityStats(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("quality stats: %w", err)
	}

	report := Report{Stats: stats}
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		report.Warnings = append(report.Warnings, msg)
		g.log.Warn("data quality issue", "issue", msg)
	}

	if stats.NullEmployeeIDs > 0 {
		warn("%d silver_employees rows have a null client_employee_id", stats.NullEmployeeIDs)
	}
	if stats.NullTimesheetIDs > 0 {
		warn("%d silver_timesheets rows have a null client_employee_id", stats.NullTimesheetIDs)
	}
	if stats.NullHireDates > 0 {
		warn("%d silver_employees rows have a null hire_date", stats.NullHireDates)
	}
	if stats.NullPunchDates > 0 {
		warn("%d silver_timesheets rows have a null punch_apply_date", stats.NullPunchDates)
	}

	g.log.Info("data quality validation finished",
		"employees", stats.EmployeeRows,
		"timesheets", stats.TimesheetRows,
		"warnings", len(report.Warnings),
	)
	return report, nil
}
