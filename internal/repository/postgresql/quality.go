package postgresql

import (
	"context"
	"fmt"

	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/hr-insights/etl-backend-go/internal/quality"
)

type qualityStatsImpl struct {
	db *database.DB
}

func NewQualityStats(db *database.DB) quality.StatsSource {
	return &qualityStatsImpl{db: db}
}

// QualityStats counts rows and null critical fields across the silver
// tables. Empty-string identifiers count as null: the transformer keeps
// missing cells as '' in passthrough columns.
func (s *qualityStatsImpl) QualityStats(ctx context.Context) (quality.Stats, error) {
	var stats quality.Stats

	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE client_employee_id IS NULL OR client_employee_id = ''),
			COUNT(*) FILTER (WHERE hire_date IS NULL)
		FROM silver_employees
	`).Scan(&stats.EmployeeRows, &stats.NullEmployeeIDs, &stats.NullHireDates)
	if err != nil {
		return quality.Stats{}, fmt.Errorf("employee quality stats: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE client_employee_id IS NULL OR client_employee_id = ''),
			COUNT(*) FILTER (WHERE punch_apply_date IS NULL)
		FROM silver_timesheets
	`).Scan(&stats.TimesheetRows, &stats.NullTimesheetIDs, &stats.NullPunchDates)
	if err != nil {
		return quality.Stats{}, fmt.Errorf("timesheet quality stats: %w", err)
	}

	return stats, nil
}
