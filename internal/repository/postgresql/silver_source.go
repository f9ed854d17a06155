package postgresql

import (
	"context"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/kpi"
)

// silverSourceImpl joins the two silver stores into the single read
// surface the KPI engine computes from.
type silverSourceImpl struct {
	employees  employee.Store
	timesheets timesheet.Store
}

func NewSilverSource(employees employee.Store, timesheets timesheet.Store) kpi.SilverSource {
	return &silverSourceImpl{employees: employees, timesheets: timesheets}
}

func (s *silverSourceImpl) Employees(ctx context.Context) ([]employee.Silver, error) {
	return s.employees.All(ctx)
}

func (s *silverSourceImpl) Timesheets(ctx context.Context) ([]timesheet.Silver, error) {
	return s.timesheets.All(ctx)
}
