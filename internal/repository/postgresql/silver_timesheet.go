package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const silverTimesheetsTable = "silver_timesheets"

var timesheetDerivedColumns = []struct{ name, typ string }{
	{"is_normal_work", "BOOLEAN"},
	{"minutes_late", "DOUBLE PRECISION"},
	{"minutes_early", "DOUBLE PRECISION"},
	{"is_late", "BOOLEAN"},
	{"is_early", "BOOLEAN"},
	{"is_overtime", "BOOLEAN"},
}

type silverTimesheetStoreImpl struct {
	db *database.DB
}

func NewSilverTimesheetStore(db *database.DB) timesheet.Store {
	return &silverTimesheetStoreImpl{db: db}
}

// Replace rewrites silver_timesheets with the cleaned dataset: every source
// column preserved in order (timestamps and hours typed, everything else
// TEXT) plus the derived behavioral columns. Atomic swap for readers.
func (s *silverTimesheetStoreImpl) Replace(ctx context.Context, ds timesheet.Dataset) (int64, error) {
	defs := make([]string, 0, len(ds.Columns)+len(timesheetDerivedColumns))
	names := make([]string, 0, cap(defs))
	for _, c := range ds.Columns {
		defs = append(defs, pgx.Identifier{c}.Sanitize()+" "+timesheetColumnType(c))
		names = append(names, c)
	}
	for _, dc := range timesheetDerivedColumns {
		defs = append(defs, pgx.Identifier{dc.name}.Sanitize()+" "+dc.typ)
		names = append(names, dc.name)
	}

	rows := make([][]any, len(ds.Records))
	for i, rec := range ds.Records {
		vals := make([]any, 0, len(names))
		for _, c := range ds.Columns {
			vals = append(vals, timesheetColumnValue(rec, c))
		}
		vals = append(vals,
			rec.IsNormalWork,
			rec.MinutesLate,
			rec.MinutesEarly,
			rec.IsLate,
			rec.IsEarly,
			rec.IsOvertime,
		)
		rows[i] = vals
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	n, err := replaceWithSwap(ctx, tx, silverTimesheetsTable, defs, names, rows)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit(ctx)
}

func timesheetColumnType(column string) string {
	switch column {
	case timesheet.ColumnPunchApplyDate:
		return "DATE"
	case timesheet.ColumnPunchInDatetime, timesheet.ColumnPunchOutDatetime,
		timesheet.ColumnScheduledStartDatetime, timesheet.ColumnScheduledEndDatetime:
		return "TIMESTAMP"
	case timesheet.ColumnHoursWorked:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func timesheetColumnValue(rec timesheet.Silver, column string) any {
	switch column {
	case timesheet.ColumnPunchApplyDate:
		return timeOrNil(rec.PunchApplyDate)
	case timesheet.ColumnPunchInDatetime:
		return timeOrNil(rec.PunchIn)
	case timesheet.ColumnPunchOutDatetime:
		return timeOrNil(rec.PunchOut)
	case timesheet.ColumnScheduledStartDatetime:
		return timeOrNil(rec.ScheduledStart)
	case timesheet.ColumnScheduledEndDatetime:
		return timeOrNil(rec.ScheduledEnd)
	case timesheet.ColumnHoursWorked:
		if rec.HoursWorked == nil {
			return nil
		}
		return *rec.HoursWorked
	default:
		return rec.Raw[column]
	}
}

// All reads back the fields the KPI engine computes from.
func (s *silverTimesheetStoreImpl) All(ctx context.Context) ([]timesheet.Silver, error) {
	query := `
		SELECT client_employee_id, pay_code, punch_apply_date,
			punch_in_datetime, punch_out_datetime,
			scheduled_start_datetime, scheduled_end_datetime,
			hours_worked, minutes_late, minutes_early,
			is_late, is_early, is_overtime, is_normal_work
		FROM silver_timesheets
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query silver_timesheets: %w", err)
	}
	defer rows.Close()

	var records []timesheet.Silver
	for rows.Next() {
		var (
			rec         timesheet.Silver
			id, payCode *string
		)
		if err := rows.Scan(
			&id, &payCode, &rec.PunchApplyDate,
			&rec.PunchIn, &rec.PunchOut,
			&rec.ScheduledStart, &rec.ScheduledEnd,
			&rec.HoursWorked, &rec.MinutesLate, &rec.MinutesEarly,
			&rec.IsLate, &rec.IsEarly, &rec.IsOvertime, &rec.IsNormalWork,
		); err != nil {
			return nil, err
		}
		if id != nil {
			rec.ClientEmployeeID = *id
		}
		if payCode != nil {
			rec.PayCode = *payCode
		}
		normalizeTimes(&rec)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// normalizeTimes pins read-back timestamps to UTC so derivations behave
// the same as on freshly transformed rows.
func normalizeTimes(rec *timesheet.Silver) {
	for _, t := range []**time.Time{&rec.PunchApplyDate, &rec.PunchIn, &rec.PunchOut, &rec.ScheduledStart, &rec.ScheduledEnd} {
		if *t != nil {
			utc := (**t).UTC()
			*t = &utc
		}
	}
}
