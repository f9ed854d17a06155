package analytics

import (
	"context"

	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
)

// KPIReader is the generic read surface over the gold tables.
type KPIReader interface {
	Rows(ctx context.Context, table string) ([]map[string]any, error)
}

type AnalyticsService interface {
	ListTimesheets(ctx context.Context, filter timesheet.Filter) ([]timesheet.ListItem, error)
	KPITable(ctx context.Context, table string) ([]map[string]any, error)
}

type analyticsServiceImpl struct {
	timesheets timesheet.ReadRepository
	kpis       KPIReader
}

func NewAnalyticsService(timesheets timesheet.ReadRepository, kpis KPIReader) AnalyticsService {
	return &analyticsServiceImpl{timesheets: timesheets, kpis: kpis}
}

// ListTimesheets implements AnalyticsService.
func (s *analyticsServiceImpl) ListTimesheets(ctx context.Context, filter timesheet.Filter) ([]timesheet.ListItem, error) {
	return s.timesheets.List(ctx, filter)
}

// KPITable implements AnalyticsService.
func (s *analyticsServiceImpl) KPITable(ctx context.Context, table string) ([]map[string]any, error) {
	return s.kpis.Rows(ctx, table)
}
