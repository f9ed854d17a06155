package employee

import (
	"time"
)

// Column names the cleaned roster is guaranteed to carry. Anything else in
// the source file is passed through untouched.
const (
	ColumnClientEmployeeID = "client_employee_id"
	ColumnDepartmentName   = "department_name"
	ColumnHireDate         = "hire_date"
	ColumnTermDate         = "term_date"
	ColumnDOB              = "dob"
	ColumnJobStartDate     = "job_start_date"
	ColumnActiveStatus     = "active_status"
	ColumnFTEStatus        = "fte_status"
)

// Silver is one cleaned roster row: every source cell preserved in Raw,
// date columns parsed, plus the derived activity fields.
type Silver struct {
	ClientEmployeeID string
	DepartmentName   string
	Raw              map[string]string
	HireDate         *time.Time
	TermDate         *time.Time
	DOB              *time.Time
	JobStartDate     *time.Time

	// Derived
	IsActive   bool
	TenureDays *int // nil when hire_date is missing; may be negative
}

// Dataset carries the cleaned rows together with the source column order,
// so stores can persist every input column without reordering.
type Dataset struct {
	Columns []string
	Records []Silver
}
