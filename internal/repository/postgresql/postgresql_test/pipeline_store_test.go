package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/extract"
	"github.com/hr-insights/etl-backend-go/internal/kpi"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/hr-insights/etl-backend-go/internal/repository/postgresql"
	"github.com/hr-insights/etl-backend-go/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// requireDB connects once per test binary and skips when no test database is
// configured, so the suite stays runnable without infrastructure.
func requireDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
	}
	return testDB
}

var rosterColumns = []string{
	"client_employee_id", "first_name", "last_name", "department_name",
	"job_title", "hire_date", "term_date", "scheduled_weekly_hour",
	"active_status", "fte_status",
}

func rosterTable(rows ...[]string) extract.Table {
	return extract.Table{Columns: rosterColumns, Rows: rows}
}

var punchColumns = []string{
	"client_employee_id", "punch_apply_date", "punch_in_datetime", "punch_out_datetime",
	"scheduled_start_datetime", "scheduled_end_datetime", "hours_worked", "pay_code",
}

func punchTable(rows ...[]string) extract.Table {
	return extract.Table{Columns: punchColumns, Rows: rows}
}

func loadSilverFixture(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	emps, _ := transform.Employees(rosterTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "Engineer", "2023-01-01", "", "40", "1", "FT"},
		[]string{"E002", "Bob", "Jones", "Sales", "Rep", "2023-02-01", "2023-03-15", "40", "0", "FT"},
		[]string{"E003", "Cara", "Miles", "Sales", "Rep", "", "", "40", "1", "FT"},
	), now)
	_, err := postgresql.NewSilverEmployeeStore(db).Replace(ctx, emps)
	require.NoError(t, err)

	ts, _ := transform.Timesheets(punchTable(
		[]string{"E001", "2023-06-01", "2023-06-01 09:10:00", "2023-06-01 18:00:00", "2023-06-01 09:00:00", "2023-06-01 17:00:00", "9.0", "Normal_Worked_Hours"},
		[]string{"E001", "2023-06-02", "2023-06-02 09:00:00", "2023-06-02 17:00:00", "2023-06-02 09:00:00", "2023-06-02 17:00:00", "8.0", "Normal_Worked_Hours"},
		[]string{"E002", "", "2023-06-01 09:00:00", "2023-06-01 17:00:00", "2023-06-01 09:00:00", "2023-06-01 17:00:00", "8.0", "Holiday"},
	))
	_, err = postgresql.NewSilverTimesheetStore(db).Replace(ctx, ts)
	require.NoError(t, err)
}

func TestBronzeReplace(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	bronze := postgresql.NewBronzeStore(db)

	table := rosterTable(
		[]string{"E001", "Alice", "Smith", "Engineering", "Engineer", "2023-01-01", "", "40", "1", "FT"},
		[]string{"E001", "Alice", "Smith", "Engineering", "Engineer", "2023-01-01", "", "40", "1", "FT"},
	)

	n, err := bronze.ReplaceEmployees(ctx, table)
	require.NoError(t, err)
	// Bronze keeps duplicates.
	assert.Equal(t, int64(2), n)

	// A second load fully replaces the first.
	n, err = bronze.ReplaceEmployees(ctx, rosterTable(
		[]string{"E002", "Bob", "Jones", "Sales", "Rep", "2023-02-01", "", "40", "1", "FT"},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var count int64
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM bronze_employees").Scan(&count))
	assert.Equal(t, int64(1), count)
}

func TestSilverRoundTrip(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	loadSilverFixture(t, db)

	emps, err := postgresql.NewSilverEmployeeStore(db).All(ctx)
	require.NoError(t, err)
	require.Len(t, emps, 3)

	byID := make(map[string]employee.Silver)
	for _, e := range emps {
		byID[e.ClientEmployeeID] = e
	}

	alice := byID["E001"]
	assert.True(t, alice.IsActive)
	require.NotNil(t, alice.TenureDays)
	assert.Equal(t, 365, *alice.TenureDays)

	bob := byID["E002"]
	assert.False(t, bob.IsActive)
	require.NotNil(t, bob.TermDate)

	cara := byID["E003"]
	assert.Nil(t, cara.HireDate)
	assert.Nil(t, cara.TenureDays)

	ts, err := postgresql.NewSilverTimesheetStore(db).All(ctx)
	require.NoError(t, err)
	require.Len(t, ts, 3)
}

func TestSilverReplaceIsRepeatable(t *testing.T) {
	db := requireDB(t)
	loadSilverFixture(t, db)
	loadSilverFixture(t, db)

	emps, err := postgresql.NewSilverEmployeeStore(db).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, emps, 3)
}

func TestQualityStats(t *testing.T) {
	db := requireDB(t)
	loadSilverFixture(t, db)

	stats, err := postgresql.NewQualityStats(db).QualityStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.EmployeeRows)
	assert.Equal(t, int64(3), stats.TimesheetRows)
	assert.Equal(t, int64(0), stats.NullEmployeeIDs)
	assert.Equal(t, int64(1), stats.NullHireDates)
	assert.Equal(t, int64(1), stats.NullPunchDates)
}

func TestGoldReplaceAndRead(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	gold := postgresql.NewGoldStore(db)

	table := kpi.Table{
		Name: kpi.TableActiveHeadcount,
		Columns: []kpi.Column{
			{Name: "month", Type: "date"},
			{Name: "active_headcount", Type: "bigint"},
		},
		Rows: [][]any{
			{time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), int64(42)},
		},
	}

	require.NoError(t, gold.Replace(ctx, table))
	// Replacing again must not fail or leave staging tables behind.
	require.NoError(t, gold.Replace(ctx, table))

	rows, err := postgresql.NewKPIReadRepository(db).Rows(ctx, kpi.TableActiveHeadcount)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 42, rows[0]["active_headcount"])
}

func TestKPIReadRejectsUnknownTable(t *testing.T) {
	db := requireDB(t)

	_, err := postgresql.NewKPIReadRepository(db).Rows(context.Background(), "pg_catalog.pg_tables")
	require.ErrorIs(t, err, kpi.ErrUnknownTable)
}

func TestEmployeeCRUD(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	loadSilverFixture(t, db)
	repo := postgresql.NewEmployeeCRUDRepository(db)

	created, err := repo.Create(ctx, employee.CreateEmployeeRequest{
		ClientEmployeeID: "E100",
		FirstName:        "Dana",
		LastName:         "Reed",
		DepartmentName:   "Finance",
		JobTitle:         "Analyst",
		HireDate:         time.Now().UTC().AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = repo.Create(ctx, employee.CreateEmployeeRequest{
		ClientEmployeeID: "E100",
		FirstName:        "Dana",
		LastName:         "Reed",
		HireDate:         time.Now().UTC(),
	})
	require.ErrorIs(t, err, employee.ErrEmployeeExists)

	dept := "Engineering"
	require.NoError(t, repo.Update(ctx, "E100", employee.UpdateEmployeeRequest{DepartmentName: &dept}))

	got, err := repo.GetByID(ctx, "E100")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.DepartmentName)

	require.ErrorIs(t, repo.Update(ctx, "E100", employee.UpdateEmployeeRequest{}), employee.ErrNoFieldsToUpdate)
	require.ErrorIs(t, repo.Update(ctx, "E999", employee.UpdateEmployeeRequest{DepartmentName: &dept}), employee.ErrEmployeeNotFound)

	require.NoError(t, repo.SoftDelete(ctx, "E100"))
	got, err = repo.GetByID(ctx, "E100")
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	listed, err := repo.List(ctx, &dept)
	require.NoError(t, err)
	assert.NotEmpty(t, listed)

	_, err = repo.GetByID(ctx, "E999")
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTimesheetListFilters(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	loadSilverFixture(t, db)
	repo := postgresql.NewTimesheetReadRepository(db)

	id := "E001"
	items, err := repo.List(ctx, timesheet.Filter{ClientEmployeeID: &id})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsLate || items[1].IsLate)

	start := time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC)
	items, err = repo.List(ctx, timesheet.Filter{ClientEmployeeID: &id, StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
