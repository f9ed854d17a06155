package postgresql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
)

// employeeCRUDImpl is the narrowly-scoped API surface over
// silver_employees. Every query is parameterized.
type employeeCRUDImpl struct {
	db *database.DB
}

func NewEmployeeCRUDRepository(db *database.DB) employee.CRUDRepository {
	return &employeeCRUDImpl{db: db}
}

const employeeSelectColumns = `
	client_employee_id, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(department_name, ''), COALESCE(job_title, ''),
	hire_date, term_date, is_active, tenure_days
`

// Create implements employee.CRUDRepository.
func (r *employeeCRUDImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Response, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM silver_employees WHERE client_employee_id = $1)`,
		req.ClientEmployeeID,
	).Scan(&exists)
	if err != nil {
		return employee.Response{}, fmt.Errorf("check employee exists: %w", err)
	}
	if exists {
		return employee.Response{}, employee.ErrEmployeeExists
	}

	tenureDays := int(time.Since(req.HireDate).Hours() / 24)

	query := `
		INSERT INTO silver_employees (
			client_employee_id, first_name, last_name, department_name,
			job_title, hire_date, scheduled_weekly_hour, active_status,
			is_active, tenure_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, '1', TRUE, $8)
		RETURNING ` + employeeSelectColumns

	var created employee.Response
	err = r.db.QueryRow(ctx, query,
		req.ClientEmployeeID, req.FirstName, req.LastName, req.DepartmentName,
		req.JobTitle, req.HireDate, strconv.Itoa(req.ScheduledWeeklyHour), tenureDays,
	).Scan(
		&created.ClientEmployeeID, &created.FirstName, &created.LastName,
		&created.DepartmentName, &created.JobTitle,
		&created.HireDate, &created.TermDate, &created.IsActive, &created.TenureDays,
	)
	if err != nil {
		return employee.Response{}, fmt.Errorf("insert employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.CRUDRepository.
func (r *employeeCRUDImpl) GetByID(ctx context.Context, clientEmployeeID string) (employee.Response, error) {
	query := `SELECT ` + employeeSelectColumns + ` FROM silver_employees WHERE client_employee_id = $1`

	var resp employee.Response
	err := r.db.QueryRow(ctx, query, clientEmployeeID).Scan(
		&resp.ClientEmployeeID, &resp.FirstName, &resp.LastName,
		&resp.DepartmentName, &resp.JobTitle,
		&resp.HireDate, &resp.TermDate, &resp.IsActive, &resp.TenureDays,
	)
	if err != nil {
		if isNoRows(err) {
			return employee.Response{}, employee.ErrEmployeeNotFound
		}
		return employee.Response{}, fmt.Errorf("get employee %s: %w", clientEmployeeID, err)
	}
	return resp, nil
}

// List implements employee.CRUDRepository.
func (r *employeeCRUDImpl) List(ctx context.Context, department *string) ([]employee.Response, error) {
	query := `SELECT ` + employeeSelectColumns + ` FROM silver_employees`
	args := []interface{}{}
	if department != nil {
		query += ` WHERE department_name = $1`
		args = append(args, *department)
	}
	query += ` ORDER BY client_employee_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Response
	for rows.Next() {
		var resp employee.Response
		if err := rows.Scan(
			&resp.ClientEmployeeID, &resp.FirstName, &resp.LastName,
			&resp.DepartmentName, &resp.JobTitle,
			&resp.HireDate, &resp.TermDate, &resp.IsActive, &resp.TenureDays,
		); err != nil {
			return nil, err
		}
		employees = append(employees, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// Update implements employee.CRUDRepository. Only the provided fields are
// touched; the SET list grows with positional parameters, never with
// interpolated values.
func (r *employeeCRUDImpl) Update(ctx context.Context, clientEmployeeID string, req employee.UpdateEmployeeRequest) error {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("first_name", req.FirstName)
	add("last_name", req.LastName)
	add("department_name", req.DepartmentName)
	add("job_title", req.JobTitle)

	if len(set) == 0 {
		return employee.ErrNoFieldsToUpdate
	}

	args = append(args, clientEmployeeID)
	query := fmt.Sprintf(
		"UPDATE silver_employees SET %s WHERE client_employee_id = $%d",
		joinSet(set), len(args),
	)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update employee %s: %w", clientEmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SoftDelete implements employee.CRUDRepository: the row stays, flagged
// inactive, exactly as a roster termination would leave it.
func (r *employeeCRUDImpl) SoftDelete(ctx context.Context, clientEmployeeID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE silver_employees SET active_status = '0', is_active = FALSE WHERE client_employee_id = $1`,
		clientEmployeeID,
	)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", clientEmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
