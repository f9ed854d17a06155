package postgresql

import (
	"context"
	"fmt"

	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
)

// Hard cap on the read-only listing, matching the consumer contract.
const timesheetListLimit = 1000

type timesheetReadImpl struct {
	db *database.DB
}

func NewTimesheetReadRepository(db *database.DB) timesheet.ReadRepository {
	return &timesheetReadImpl{db: db}
}

// List implements timesheet.ReadRepository. Filters grow the WHERE clause
// with positional parameters only.
func (r *timesheetReadImpl) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.ListItem, error) {
	query := `
		SELECT COALESCE(client_employee_id, ''), punch_apply_date, hours_worked,
			is_late, is_early, is_overtime
		FROM silver_timesheets
	`
	where := []string{}
	args := []interface{}{}

	if filter.ClientEmployeeID != nil {
		args = append(args, *filter.ClientEmployeeID)
		where = append(where, fmt.Sprintf("client_employee_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where = append(where, fmt.Sprintf("punch_apply_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where = append(where, fmt.Sprintf("punch_apply_date <= $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	query += fmt.Sprintf(" ORDER BY punch_apply_date DESC NULLS LAST LIMIT %d", timesheetListLimit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	defer rows.Close()

	var items []timesheet.ListItem
	for rows.Next() {
		var item timesheet.ListItem
		if err := rows.Scan(
			&item.ClientEmployeeID, &item.PunchApplyDate, &item.HoursWorked,
			&item.IsLate, &item.IsEarly, &item.IsOvertime,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
