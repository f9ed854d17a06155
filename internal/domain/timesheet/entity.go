package timesheet

import (
	"time"
)

// Behavioral policy constants. Fixed for every department.
const (
	// GraceMinutes is the tolerance before a punch deviation counts as
	// late or early. The boundary itself is inside the grace window.
	GraceMinutes = 5.0
	// OvertimeThresholdHours marks a worked day as overtime when exceeded.
	OvertimeThresholdHours = 8.5
	// OvertimeBaselineHours is subtracted from hours_worked when summing
	// extra hours for the overtime KPI.
	OvertimeBaselineHours = 8.0
	// NormalWorkPayCode flags productive rows: a row is normal work when
	// its pay_code contains this label (case-insensitive).
	NormalWorkPayCode = "normal_worked"
)

// Column names the cleaned timesheet is guaranteed to carry.
const (
	ColumnClientEmployeeID       = "client_employee_id"
	ColumnPunchApplyDate         = "punch_apply_date"
	ColumnPunchInDatetime        = "punch_in_datetime"
	ColumnPunchOutDatetime       = "punch_out_datetime"
	ColumnScheduledStartDatetime = "scheduled_start_datetime"
	ColumnScheduledEndDatetime   = "scheduled_end_datetime"
	ColumnHoursWorked            = "hours_worked"
	ColumnPayCode                = "pay_code"
)

// Silver is one cleaned punch row: every source cell preserved in Raw,
// timestamps parsed, plus the derived behavioral flags.
type Silver struct {
	ClientEmployeeID string
	PayCode          string
	Raw              map[string]string

	PunchApplyDate *time.Time
	PunchIn        *time.Time
	PunchOut       *time.Time
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	HoursWorked    *float64

	// Derived
	MinutesLate  float64 // 0 when punch-in or scheduled start is missing
	MinutesEarly float64 // 0 when punch-out or scheduled end is missing
	IsLate       bool
	IsEarly      bool
	IsOvertime   bool
	IsNormalWork bool
}

// Dataset carries the cleaned rows together with the source column order.
type Dataset struct {
	Columns []string
	Records []Silver
}
