package transform

import (
	"testing"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeColumns = []string{
	"client_employee_id", "first_name", "last_name", "department_name",
	"hire_date", "term_date", "active_status", "fte_status",
}

func employeeTable(rows ...[]string) extract.Table {
	return extract.Table{Columns: employeeColumns, Rows: rows}
}

func TestEmployeesDedupFirstWins(t *testing.T) {
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "2023-01-01", "", "1", "FT"},
		[]string{"E001", "Bob", "Jones", "Sales", "2022-05-01", "", "1", "FT"},
		[]string{"E002", "Cara", "Miles", "Sales", "2021-03-15", "", "1", "FT"},
		[]string{"E001", "Dax", "Reed", "Finance", "2020-01-01", "", "1", "FT"},
	)

	ds, dropped := Employees(table, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, dropped)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "E001", ds.Records[0].ClientEmployeeID)
	assert.Equal(t, "Alice", ds.Records[0].Raw["first_name"])
	assert.Equal(t, "E002", ds.Records[1].ClientEmployeeID)
}

func TestEmployeesTenureForActiveEmployee(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "2023-01-01", "", "1", "FT"},
	)

	ds, _ := Employees(table, now)

	rec := ds.Records[0]
	assert.True(t, rec.IsActive)
	require.NotNil(t, rec.TenureDays)
	assert.Equal(t, 365, *rec.TenureDays)
}

func TestEmployeesTenureForTerminatedEmployee(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "2023-01-01", "2023-12-31", "0", "FT"},
	)

	ds, _ := Employees(table, now)

	rec := ds.Records[0]
	assert.False(t, rec.IsActive)
	require.NotNil(t, rec.TenureDays)
	assert.Equal(t, 364, *rec.TenureDays)
}

func TestEmployeesNegativeTenureTolerated(t *testing.T) {
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "2023-05-01", "2023-01-01", "0", "FT"},
	)

	ds, _ := Employees(table, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	rec := ds.Records[0]
	require.NotNil(t, rec.TenureDays)
	assert.Negative(t, *rec.TenureDays)
}

func TestEmployeesUnparsableDatesBecomeMissing(t *testing.T) {
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "not-a-date", "soon", "1", "FT"},
	)

	ds, _ := Employees(table, time.Now().UTC())

	rec := ds.Records[0]
	assert.Nil(t, rec.HireDate)
	assert.Nil(t, rec.TermDate)
	assert.Nil(t, rec.TenureDays)
	// A missing term_date still means active.
	assert.True(t, rec.IsActive)
}

func TestEmployeesBackfillsStatusColumns(t *testing.T) {
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "2023-01-01", "", "", ""},
	)

	ds, _ := Employees(table, time.Now().UTC())

	rec := ds.Records[0]
	assert.Equal(t, "1", rec.Raw["active_status"])
	assert.Equal(t, "Unknown", rec.Raw["fte_status"])
}

func TestEmployeesPreservesColumnOrder(t *testing.T) {
	table := employeeTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "2023-01-01", "", "1", "FT"},
	)

	ds, _ := Employees(table, time.Now().UTC())

	assert.Equal(t, employeeColumns, ds.Columns)
	assert.Equal(t, "Smith", ds.Records[0].Raw["last_name"])
}
