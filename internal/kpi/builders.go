package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
)

// A builder computes one gold table from the silver rows. Builders are
// independent of each other and order-insensitive.
type builder struct {
	name  string
	build func(emps []employee.Silver, ts []timesheet.Silver) Table
}

var builders = []builder{
	{TableActiveHeadcount, buildActiveHeadcount},
	{TableTurnoverTrend, buildTurnoverTrend},
	{TableAvgTenure, buildAvgTenure},
	{TableAvgWorkingHours, buildAvgWorkingHours},
	{TableLateArrivals, buildLateArrivals},
	{TableEarlyDepartures, buildEarlyDepartures},
	{TableOvertime, buildOvertime},
	{TableRollingAvg, buildRollingAvg},
	{TableEarlyAttrition, buildEarlyAttrition},
}

// buildActiveHeadcount counts, for every calendar month present in the
// timesheet data, the employees active as of that month's last day:
// hired on or before it and not terminated on or before it.
func buildActiveHeadcount(emps []employee.Silver, ts []timesheet.Silver) Table {
	monthSet := make(map[time.Time]struct{})
	for _, row := range ts {
		if row.PunchApplyDate != nil {
			monthSet[monthOf(*row.PunchApplyDate)] = struct{}{}
		}
	}
	months := sortedTimesDesc(monthSet)

	t := Table{
		Name: TableActiveHeadcount,
		Columns: []Column{
			{"month", "date"},
			{"active_headcount", "bigint"},
		},
	}
	for _, month := range months {
		endOfMonth := month.AddDate(0, 1, -1)
		count := int64(0)
		for _, emp := range emps {
			if emp.HireDate == nil || dateOf(*emp.HireDate).After(endOfMonth) {
				continue
			}
			if emp.TermDate != nil && !dateOf(*emp.TermDate).After(endOfMonth) {
				continue
			}
			count++
		}
		t.Rows = append(t.Rows, []any{month, count})
	}
	return t
}

// buildTurnoverTrend counts terminations per calendar month of term_date.
func buildTurnoverTrend(emps []employee.Silver, _ []timesheet.Silver) Table {
	counts := make(map[time.Time]int64)
	for _, emp := range emps {
		if emp.TermDate != nil {
			counts[monthOf(*emp.TermDate)]++
		}
	}

	t := Table{
		Name: TableTurnoverTrend,
		Columns: []Column{
			{"month", "date"},
			{"terminations", "bigint"},
		},
	}
	for _, month := range sortedTimesDesc(keysOf(counts)) {
		t.Rows = append(t.Rows, []any{month, counts[month]})
	}
	return t
}

// buildAvgTenure averages tenure_days per department, expressed in years.
// Employees without a department are excluded; employees without a tenure
// value still count toward the department headcount.
func buildAvgTenure(emps []employee.Silver, _ []timesheet.Silver) Table {
	type agg struct {
		sum   float64
		n     int64
		total int64
	}
	byDept := make(map[string]*agg)
	for _, emp := range emps {
		if emp.DepartmentName == "" {
			continue
		}
		a := byDept[emp.DepartmentName]
		if a == nil {
			a = &agg{}
			byDept[emp.DepartmentName] = a
		}
		a.total++
		if emp.TenureDays != nil {
			a.sum += float64(*emp.TenureDays)
			a.n++
		}
	}

	type row struct {
		dept  string
		avg   *float64
		total int64
	}
	rows := make([]row, 0, len(byDept))
	for dept, a := range byDept {
		r := row{dept: dept, total: a.total}
		if a.n > 0 {
			avg := round2(a.sum / float64(a.n) / 365.25)
			r.avg = &avg
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		iv, jv := math.Inf(-1), math.Inf(-1)
		if rows[i].avg != nil {
			iv = *rows[i].avg
		}
		if rows[j].avg != nil {
			jv = *rows[j].avg
		}
		if iv != jv {
			return iv > jv
		}
		return rows[i].dept < rows[j].dept
	})

	t := Table{
		Name: TableAvgTenure,
		Columns: []Column{
			{"department_name", "text"},
			{"avg_tenure_years", "double precision"},
			{"employee_count", "bigint"},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.dept, floatOrNil(r.avg), r.total})
	}
	return t
}

// buildAvgWorkingHours averages hours_worked per (employee, calendar week)
// over normal-work rows. Weeks start on Monday.
func buildAvgWorkingHours(_ []employee.Silver, ts []timesheet.Silver) Table {
	type key struct {
		emp  string
		week time.Time
	}
	type agg struct {
		sum  float64
		n    int64
		days int64
	}
	byWeek := make(map[key]*agg)
	for _, row := range ts {
		if !row.IsNormalWork || row.PunchApplyDate == nil {
			continue
		}
		k := key{row.ClientEmployeeID, weekOf(*row.PunchApplyDate)}
		a := byWeek[k]
		if a == nil {
			a = &agg{}
			byWeek[k] = a
		}
		a.days++
		if row.HoursWorked != nil {
			a.sum += *row.HoursWorked
			a.n++
		}
	}

	type out struct {
		key
		avg  *float64
		days int64
	}
	rows := make([]out, 0, len(byWeek))
	for k, a := range byWeek {
		o := out{key: k, days: a.days}
		if a.n > 0 {
			avg := round2(a.sum / float64(a.n))
			o.avg = &avg
		}
		rows = append(rows, o)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].week.Equal(rows[j].week) {
			return rows[i].week.After(rows[j].week)
		}
		iv, jv := math.Inf(-1), math.Inf(-1)
		if rows[i].avg != nil {
			iv = *rows[i].avg
		}
		if rows[j].avg != nil {
			jv = *rows[j].avg
		}
		if iv != jv {
			return iv > jv
		}
		return rows[i].emp < rows[j].emp
	})

	t := Table{
		Name: TableAvgWorkingHours,
		Columns: []Column{
			{"client_employee_id", "text"},
			{"week", "date"},
			{"avg_hours", "double precision"},
			{"days_worked", "bigint"},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.emp, r.week, floatOrNil(r.avg), r.days})
	}
	return t
}

func buildLateArrivals(_ []employee.Silver, ts []timesheet.Silver) Table {
	return buildDeviationRanking(
		TableLateArrivals,
		"late_arrival_count", "avg_minutes_late",
		ts,
		func(row timesheet.Silver) (bool, float64) { return row.IsLate, row.MinutesLate },
	)
}

func buildEarlyDepartures(_ []employee.Silver, ts []timesheet.Silver) Table {
	return buildDeviationRanking(
		TableEarlyDepartures,
		"early_departure_count", "avg_minutes_early",
		ts,
		func(row timesheet.Silver) (bool, float64) { return row.IsEarly, row.MinutesEarly },
	)
}

// buildDeviationRanking ranks employees by how often a punch deviation flag
// fires on their normal-work rows, with the mean deviation in minutes.
// Capped to the top TopN employees.
func buildDeviationRanking(name, countCol, avgCol string, ts []timesheet.Silver, pick func(timesheet.Silver) (bool, float64)) Table {
	type agg struct {
		count int64
		sum   float64
	}
	byEmp := make(map[string]*agg)
	for _, row := range ts {
		flagged, minutes := pick(row)
		if !row.IsNormalWork || !flagged {
			continue
		}
		a := byEmp[row.ClientEmployeeID]
		if a == nil {
			a = &agg{}
			byEmp[row.ClientEmployeeID] = a
		}
		a.count++
		a.sum += minutes
	}

	emps := rankByCount(byEmp, func(a *agg) int64 { return a.count })

	t := Table{
		Name: name,
		Columns: []Column{
			{"client_employee_id", "text"},
			{countCol, "bigint"},
			{avgCol, "double precision"},
		},
	}
	for _, emp := range emps {
		a := byEmp[emp]
		t.Rows = append(t.Rows, []any{emp, a.count, round2(a.sum / float64(a.count))})
	}
	return t
}

// buildOvertime ranks employees by overtime days on normal-work rows, with
// the total hours worked beyond the baseline. Capped to the top TopN.
func buildOvertime(_ []employee.Silver, ts []timesheet.Silver) Table {
	type agg struct {
		days  int64
		extra float64
	}
	byEmp := make(map[string]*agg)
	for _, row := range ts {
		if !row.IsNormalWork || !row.IsOvertime {
			continue
		}
		a := byEmp[row.ClientEmployeeID]
		if a == nil {
			a = &agg{}
			byEmp[row.ClientEmployeeID] = a
		}
		a.days++
		a.extra += *row.HoursWorked - timesheet.OvertimeBaselineHours
	}

	emps := rankByCount(byEmp, func(a *agg) int64 { return a.days })

	t := Table{
		Name: TableOvertime,
		Columns: []Column{
			{"client_employee_id", "text"},
			{"overtime_days", "bigint"},
			{"total_extra_hours", "double precision"},
		},
	}
	for _, emp := range emps {
		a := byEmp[emp]
		t.Rows = append(t.Rows, []any{emp, a.days, round2(a.extra)})
	}
	return t
}

// buildRollingAvg computes, per employee ordered by punch date, the
// trailing mean of hours_worked over the current row plus the 29 preceding
// ones. Normal-work rows only; rows without a punch date cannot be placed
// in the stream and are excluded.
func buildRollingAvg(_ []employee.Silver, ts []timesheet.Silver) Table {
	perEmp := make(map[string][]timesheet.Silver)
	var empOrder []string
	for _, row := range ts {
		if !row.IsNormalWork || row.PunchApplyDate == nil {
			continue
		}
		if _, ok := perEmp[row.ClientEmployeeID]; !ok {
			empOrder = append(empOrder, row.ClientEmployeeID)
		}
		perEmp[row.ClientEmployeeID] = append(perEmp[row.ClientEmployeeID], row)
	}

	type out struct {
		emp  string
		date time.Time
		avg  *float64
	}
	var rows []out
	for _, emp := range empOrder {
		stream := perEmp[emp]
		// Stable: rows sharing a punch date keep their input order.
		sort.SliceStable(stream, func(i, j int) bool {
			return stream[i].PunchApplyDate.Before(*stream[j].PunchApplyDate)
		})

		window := make([]*float64, 0, RollingWindowRows)
		for _, row := range stream {
			window = append(window, row.HoursWorked)
			if len(window) > RollingWindowRows {
				window = window[1:]
			}
			sum, n := 0.0, 0
			for _, v := range window {
				if v != nil {
					sum += *v
					n++
				}
			}
			o := out{emp: emp, date: dateOf(*row.PunchApplyDate)}
			if n > 0 {
				avg := round2(sum / float64(n))
				o.avg = &avg
			}
			rows = append(rows, o)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].date.Equal(rows[j].date) {
			return rows[i].date.After(rows[j].date)
		}
		return rows[i].emp < rows[j].emp
	})

	t := Table{
		Name: TableRollingAvg,
		Columns: []Column{
			{"client_employee_id", "text"},
			{"punch_apply_date", "date"},
			{"rolling_30day_avg", "double precision"},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.emp, r.date, floatOrNil(r.avg)})
	}
	return t
}

// buildEarlyAttrition buckets terminated employees by whether they left
// before EarlyAttritionDays of tenure. Terminations without a hire date
// cannot be bucketed and are excluded.
func buildEarlyAttrition(emps []employee.Silver, _ []timesheet.Silver) Table {
	var early, other int64
	for _, emp := range emps {
		if emp.TermDate == nil || emp.HireDate == nil {
			continue
		}
		days := dateOf(*emp.TermDate).Sub(dateOf(*emp.HireDate)).Hours() / 24
		if days < EarlyAttritionDays {
			early++
		} else {
			other++
		}
	}

	return Table{
		Name: TableEarlyAttrition,
		Columns: []Column{
			{"attrition_type", "text"},
			{"count", "bigint"},
		},
		Rows: [][]any{
			{"Early Attrition (<90 days)", early},
			{"Other Attrition (>=90 days)", other},
		},
	}
}

// ---- shared helpers ----

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// weekOf truncates to the Monday starting the ISO week.
func weekOf(t time.Time) time.Time {
	d := dateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func keysOf[K comparable, V any](m map[K]V) map[K]struct{} {
	out := make(map[K]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func sortedTimesDesc(set map[time.Time]struct{}) []time.Time {
	out := make([]time.Time, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

// rankByCount orders group keys by count desc (key asc on ties) and keeps
// the top TopN.
func rankByCount[V any](groups map[string]*V, count func(*V) int64) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := count(groups[keys[i]]), count(groups[keys[j]])
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})
	if len(keys) > TopN {
		keys = keys[:TopN]
	}
	return keys
}
