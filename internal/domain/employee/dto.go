package employee

import "time"

type CreateEmployeeRequest struct {
	ClientEmployeeID    string    `json:"client_employee_id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	DepartmentName      string    `json:"department_name"`
	JobTitle            string    `json:"job_title"`
	HireDate            time.Time `json:"hire_date"`
	ScheduledWeeklyHour int       `json:"scheduled_weekly_hour"`
}

type UpdateEmployeeRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	DepartmentName *string `json:"department_name"`
	JobTitle       *string `json:"job_title"`
}

type Response struct {
	ClientEmployeeID string     `json:"client_employee_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	DepartmentName   string     `json:"department_name"`
	JobTitle         string     `json:"job_title"`
	HireDate         *time.Time `json:"hire_date"`
	TermDate         *time.Time `json:"term_date"`
	IsActive         bool       `json:"is_active"`
	TenureDays       *int       `json:"tenure_days"`
}
