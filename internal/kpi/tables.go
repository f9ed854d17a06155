package kpi

import (
	"context"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
)

// Fixed gold table names. Consumers key on these; never rename.
const (
	TableActiveHeadcount = "kpi_active_headcount"
	TableTurnoverTrend   = "kpi_turnover_trend"
	TableAvgTenure       = "kpi_avg_tenure"
	TableAvgWorkingHours = "kpi_avg_working_hours"
	TableLateArrivals    = "kpi_late_arrivals"
	TableEarlyDepartures = "kpi_early_departures"
	TableOvertime        = "kpi_overtime"
	TableRollingAvg      = "kpi_rolling_avg"
	TableEarlyAttrition  = "kpi_early_attrition"
)

// TableNames lists every gold table in catalogue order.
var TableNames = []string{
	TableActiveHeadcount,
	TableTurnoverTrend,
	TableAvgTenure,
	TableAvgWorkingHours,
	TableLateArrivals,
	TableEarlyDepartures,
	TableOvertime,
	TableRollingAvg,
	TableEarlyAttrition,
}

// EarlyAttritionDays splits terminations into early vs other attrition.
const EarlyAttritionDays = 90

// TopN caps the per-employee ranking tables.
const TopN = 20

// RollingWindowRows is the trailing window size for the rolling average:
// the current row plus the 29 preceding rows of the same employee.
const RollingWindowRows = 30

type Column struct {
	Name string
	Type string // postgres column type
}

// Table is one materialized gold table: a fixed name, typed columns, and
// fully computed rows. Nil cell values persist as SQL NULL.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Result is the per-KPI outcome of a best-effort batch run.
type Result struct {
	Table string
	Rows  int
	Err   error
}

// SilverSource provides the cleaned rows every KPI is computed from. The
// silver store is the only production implementation.
type SilverSource interface {
	Employees(ctx context.Context) ([]employee.Silver, error)
	Timesheets(ctx context.Context) ([]timesheet.Silver, error)
}

// GoldStore materializes a computed table under its fixed name, replacing
// any previous version atomically for readers.
type GoldStore interface {
	Replace(ctx context.Context, table Table) error
}
