package employee

import (
	"context"
	"strings"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
)

type EmployeeService interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Response, error)
	Get(ctx context.Context, clientEmployeeID string) (employee.Response, error)
	List(ctx context.Context, department *string) ([]employee.Response, error)
	Update(ctx context.Context, clientEmployeeID string, req employee.UpdateEmployeeRequest) error
	Delete(ctx context.Context, clientEmployeeID string) error
}

type employeeServiceImpl struct {
	repo employee.CRUDRepository
}

func NewEmployeeService(repo employee.CRUDRepository) EmployeeService {
	return &employeeServiceImpl{repo: repo}
}

// Create implements EmployeeService.
func (s *employeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Response, error) {
	req.ClientEmployeeID = strings.TrimSpace(req.ClientEmployeeID)
	if details := validateCreate(req); len(details) > 0 {
		return employee.Response{}, employee.NewValidationError(details)
	}
	return s.repo.Create(ctx, req)
}

// Get implements EmployeeService.
func (s *employeeServiceImpl) Get(ctx context.Context, clientEmployeeID string) (employee.Response, error) {
	return s.repo.GetByID(ctx, clientEmployeeID)
}

// List implements EmployeeService.
func (s *employeeServiceImpl) List(ctx context.Context, department *string) ([]employee.Response, error) {
	return s.repo.List(ctx, department)
}

// Update implements EmployeeService.
func (s *employeeServiceImpl) Update(ctx context.Context, clientEmployeeID string, req employee.UpdateEmployeeRequest) error {
	return s.repo.Update(ctx, clientEmployeeID, req)
}

// Delete implements EmployeeService. Soft delete: the row survives as an
// inactive employee, the way a roster termination would leave it.
func (s *employeeServiceImpl) Delete(ctx context.Context, clientEmployeeID string) error {
	return s.repo.SoftDelete(ctx, clientEmployeeID)
}

func validateCreate(req employee.CreateEmployeeRequest) map[string]string {
	details := map[string]string{}
	if req.ClientEmployeeID == "" {
		details["client_employee_id"] = "required"
	}
	if req.FirstName == "" {
		details["first_name"] = "required"
	}
	if req.LastName == "" {
		details["last_name"] = "required"
	}
	if req.HireDate.IsZero() {
		details["hire_date"] = "required"
	}
	return details
}
