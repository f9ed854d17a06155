package transform

import (
	"time"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/extract"
)

// Employees converts bronze roster rows into the silver shape: duplicates
// by client_employee_id dropped (first occurrence wins), date columns
// parsed leniently, null statuses backfilled, activity fields derived.
//
// now is the effective end date for employees without a term_date, so
// tenure of still-active employees drifts between runs. Accepted.
// Returns the dataset and the number of duplicate rows dropped.
func Employees(t extract.Table, now time.Time) (employee.Dataset, int) {
	ds := employee.Dataset{Columns: t.Columns}
	seen := make(map[string]struct{}, len(t.Rows))
	dropped := 0

	idIdx := t.ColumnIndex(employee.ColumnClientEmployeeID)

	for _, row := range t.Rows {
		id := ""
		if idIdx >= 0 {
			id = row[idIdx]
		}
		if _, dup := seen[id]; dup {
			dropped++
			continue
		}
		seen[id] = struct{}{}

		raw := make(map[string]string, len(t.Columns))
		for i, c := range t.Columns {
			raw[c] = row[i]
		}

		// Null cleanup carried over from the source system's rules.
		if v, ok := raw[employee.ColumnActiveStatus]; ok && v == "" {
			raw[employee.ColumnActiveStatus] = "1"
		}
		if v, ok := raw[employee.ColumnFTEStatus]; ok && v == "" {
			raw[employee.ColumnFTEStatus] = "Unknown"
		}

		rec := employee.Silver{
			ClientEmployeeID: id,
			DepartmentName:   raw[employee.ColumnDepartmentName],
			Raw:              raw,
			HireDate:         parseTemporal(raw[employee.ColumnHireDate]),
			TermDate:         parseTemporal(raw[employee.ColumnTermDate]),
			DOB:              parseTemporal(raw[employee.ColumnDOB]),
			JobStartDate:     parseTemporal(raw[employee.ColumnJobStartDate]),
		}

		rec.IsActive = rec.TermDate == nil
		rec.TenureDays = tenureDays(rec.HireDate, rec.TermDate, now)

		ds.Records = append(ds.Records, rec)
	}

	return ds, dropped
}

// tenureDays is whole days between hire and termination, falling back to
// now for active employees. A hire date after the termination date yields
// a negative value; that is tolerated, not corrected.
func tenureDays(hire, term *time.Time, now time.Time) *int {
	if hire == nil {
		return nil
	}
	end := now
	if term != nil {
		end = *term
	}
	days := int(dateOf(end).Sub(dateOf(*hire)).Hours() / 24)
	return &days
}
