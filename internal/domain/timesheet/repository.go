package timesheet

import (
	"context"
	"time"
)

// Store is the silver_timesheets table as the pipeline sees it.
type Store interface {
	Replace(ctx context.Context, ds Dataset) (int64, error)
	All(ctx context.Context) ([]Silver, error)
}

// Filter narrows the read-only timesheet listing exposed by the API.
type Filter struct {
	ClientEmployeeID *string
	StartDate        *time.Time
	EndDate          *time.Time
}

type ListItem struct {
	ClientEmployeeID string     `json:"client_employee_id"`
	PunchApplyDate   *time.Time `json:"punch_apply_date"`
	HoursWorked      *float64   `json:"hours_worked"`
	IsLate           bool       `json:"is_late"`
	IsEarly          bool       `json:"is_early"`
	IsOvertime       bool       `json:"is_overtime"`
}

// ReadRepository is the read-only query surface for API consumers.
type ReadRepository interface {
	List(ctx context.Context, filter Filter) ([]ListItem, error)
}
