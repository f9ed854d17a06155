package postgresql

import (
	"context"
	"fmt"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const silverEmployeesTable = "silver_employees"

// Derived columns appended after the source columns, in this order.
var employeeDerivedColumns = []struct{ name, typ string }{
	{"is_active", "BOOLEAN"},
	{"tenure_days", "BIGINT"},
}

type silverEmployeeStoreImpl struct {
	db *database.DB
}

func NewSilverEmployeeStore(db *database.DB) employee.Store {
	return &silverEmployeeStoreImpl{db: db}
}

// Replace rewrites silver_employees with the cleaned dataset: every source
// column preserved in order (dates typed, everything else TEXT) plus the
// derived columns. The swap is atomic for concurrent readers.
func (s *silverEmployeeStoreImpl) Replace(ctx context.Context, ds employee.Dataset) (int64, error) {
	defs := make([]string, 0, len(ds.Columns)+len(employeeDerivedColumns))
	names := make([]string, 0, cap(defs))
	for _, c := range ds.Columns {
		defs = append(defs, pgx.Identifier{c}.Sanitize()+" "+employeeColumnType(c))
		names = append(names, c)
	}
	for _, dc := range employeeDerivedColumns {
		defs = append(defs, pgx.Identifier{dc.name}.Sanitize()+" "+dc.typ)
		names = append(names, dc.name)
	}

	rows := make([][]any, len(ds.Records))
	for i, rec := range ds.Records {
		vals := make([]any, 0, len(names))
		for _, c := range ds.Columns {
			vals = append(vals, employeeColumnValue(rec, c))
		}
		vals = append(vals, rec.IsActive, intOrNil(rec.TenureDays))
		rows[i] = vals
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	n, err := replaceWithSwap(ctx, tx, silverEmployeesTable, defs, names, rows)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit(ctx)
}

func employeeColumnType(column string) string {
	switch column {
	case employee.ColumnHireDate, employee.ColumnTermDate, employee.ColumnDOB, employee.ColumnJobStartDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

func employeeColumnValue(rec employee.Silver, column string) any {
	switch column {
	case employee.ColumnHireDate:
		return timeOrNil(rec.HireDate)
	case employee.ColumnTermDate:
		return timeOrNil(rec.TermDate)
	case employee.ColumnDOB:
		return timeOrNil(rec.DOB)
	case employee.ColumnJobStartDate:
		return timeOrNil(rec.JobStartDate)
	default:
		return rec.Raw[column]
	}
}

// All reads back the fields the KPI engine computes from.
func (s *silverEmployeeStoreImpl) All(ctx context.Context) ([]employee.Silver, error) {
	query := `
		SELECT client_employee_id, department_name, hire_date, term_date, is_active, tenure_days
		FROM silver_employees
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query silver_employees: %w", err)
	}
	defer rows.Close()

	var records []employee.Silver
	for rows.Next() {
		var (
			rec        employee.Silver
			id, dept   *string
			isActive   *bool
			tenureDays *int
		)
		if err := rows.Scan(&id, &dept, &rec.HireDate, &rec.TermDate, &isActive, &tenureDays); err != nil {
			return nil, err
		}
		if id != nil {
			rec.ClientEmployeeID = *id
		}
		if dept != nil {
			rec.DepartmentName = *dept
		}
		if isActive != nil {
			rec.IsActive = *isActive
		}
		rec.TenureDays = tenureDays
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
