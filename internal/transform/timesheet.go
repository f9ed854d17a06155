package transform

import (
	"strconv"
	"strings"

	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/extract"
)

// Timesheets converts bronze punch rows into the silver shape: duplicates
// by (client_employee_id, punch_in_datetime) dropped (first occurrence
// wins, keyed on the raw strings before any parsing), timestamps parsed
// leniently, behavioral flags derived.
// Returns the dataset and the number of duplicate rows dropped.
func Timesheets(t extract.Table) (timesheet.Dataset, int) {
	ds := timesheet.Dataset{Columns: t.Columns}
	type key struct{ id, punchIn string }
	seen := make(map[key]struct{}, len(t.Rows))
	dropped := 0

	idIdx := t.ColumnIndex(timesheet.ColumnClientEmployeeID)
	punchInIdx := t.ColumnIndex(timesheet.ColumnPunchInDatetime)

	for _, row := range t.Rows {
		k := key{}
		if idIdx >= 0 {
			k.id = row[idIdx]
		}
		if punchInIdx >= 0 {
			k.punchIn = row[punchInIdx]
		}
		if _, dup := seen[k]; dup {
			dropped++
			continue
		}
		seen[k] = struct{}{}

		raw := make(map[string]string, len(t.Columns))
		for i, c := range t.Columns {
			raw[c] = row[i]
		}

		rec := timesheet.Silver{
			ClientEmployeeID: k.id,
			PayCode:          raw[timesheet.ColumnPayCode],
			Raw:              raw,
			PunchApplyDate:   parseTemporal(raw[timesheet.ColumnPunchApplyDate]),
			PunchIn:          parseTemporal(raw[timesheet.ColumnPunchInDatetime]),
			PunchOut:         parseTemporal(raw[timesheet.ColumnPunchOutDatetime]),
			ScheduledStart:   parseTemporal(raw[timesheet.ColumnScheduledStartDatetime]),
			ScheduledEnd:     parseTemporal(raw[timesheet.ColumnScheduledEndDatetime]),
			HoursWorked:      parseFloat(raw[timesheet.ColumnHoursWorked]),
		}

		deriveFlags(&rec)
		ds.Records = append(ds.Records, rec)
	}

	return ds, dropped
}

// deriveFlags computes the row-level behavioral fields. Missing timestamps
// clamp the minute deviations to 0 rather than propagating.
func deriveFlags(rec *timesheet.Silver) {
	if rec.PunchIn != nil && rec.ScheduledStart != nil {
		rec.MinutesLate = rec.PunchIn.Sub(*rec.ScheduledStart).Minutes()
	}
	if rec.PunchOut != nil && rec.ScheduledEnd != nil {
		rec.MinutesEarly = rec.ScheduledEnd.Sub(*rec.PunchOut).Minutes()
	}

	rec.IsLate = rec.MinutesLate > timesheet.GraceMinutes
	rec.IsEarly = rec.MinutesEarly > timesheet.GraceMinutes
	rec.IsOvertime = rec.HoursWorked != nil && *rec.HoursWorked > timesheet.OvertimeThresholdHours
	rec.IsNormalWork = strings.Contains(strings.ToLower(rec.PayCode), timesheet.NormalWorkPayCode)
}

func parseFloat(value string) *float64 {
	v := strings.TrimSpace(value)
	if _, missing := missingMarkers[strings.ToLower(v)]; missing {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
