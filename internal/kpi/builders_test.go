package kpi

import (
	"fmt"
	"testing"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func silverEmployee(id, dept string, hire, term *time.Time, tenure *int) employee.Silver {
	return employee.Silver{
		ClientEmployeeID: id,
		DepartmentName:   dept,
		HireDate:         hire,
		TermDate:         term,
		IsActive:         term == nil,
		TenureDays:       tenure,
	}
}

func normalWorkRow(id string, punchDate time.Time, hours float64) timesheet.Silver {
	return timesheet.Silver{
		ClientEmployeeID: id,
		PunchApplyDate:   datePtr(punchDate),
		HoursWorked:      floatPtr(hours),
		IsNormalWork:     true,
		IsOvertime:       hours > timesheet.OvertimeThresholdHours,
	}
}

func TestActiveHeadcountExcludesMonthOfTermination(t *testing.T) {
	emps := []employee.Silver{
		silverEmployee("E001", "Ops", datePtr(day(2023, 1, 1)), datePtr(day(2023, 6, 15)), intPtr(165)),
	}
	var ts []timesheet.Silver
	for m := time.January; m <= time.August; m++ {
		ts = append(ts, normalWorkRow("E001", day(2023, m, 10), 8.0))
	}

	table := buildActiveHeadcount(emps, ts)
	require.Len(t, table.Rows, 8)

	counts := make(map[time.Time]int64)
	for _, row := range table.Rows {
		counts[row[0].(time.Time)] = row[1].(int64)
	}
	for m := time.January; m <= time.May; m++ {
		assert.Equal(t, int64(1), counts[day(2023, m, 1)], "month %s", m)
	}
	// Terminated mid-June: gone from June onward.
	for m := time.June; m <= time.August; m++ {
		assert.Equal(t, int64(0), counts[day(2023, m, 1)], "month %s", m)
	}

	// Months ordered newest first.
	assert.Equal(t, day(2023, 8, 1), table.Rows[0][0])
	assert.Equal(t, day(2023, 1, 1), table.Rows[7][0])
}

func TestActiveHeadcountHiredAfterMonthEnd(t *testing.T) {
	emps := []employee.Silver{
		silverEmployee("E001", "Ops", datePtr(day(2023, 3, 1)), nil, nil),
		silverEmployee("E002", "Ops", nil, nil, nil), // no hire date, never counted
	}
	ts := []timesheet.Silver{normalWorkRow("E001", day(2023, 2, 10), 8.0)}

	table := buildActiveHeadcount(emps, ts)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, int64(0), table.Rows[0][1])
}

func TestTurnoverTrend(t *testing.T) {
	emps := []employee.Silver{
		silverEmployee("E001", "Ops", datePtr(day(2022, 1, 1)), datePtr(day(2023, 3, 10)), intPtr(433)),
		silverEmployee("E002", "Ops", datePtr(day(2022, 1, 1)), datePtr(day(2023, 3, 28)), intPtr(451)),
		silverEmployee("E003", "Ops", datePtr(day(2022, 1, 1)), datePtr(day(2023, 5, 2)), intPtr(486)),
		silverEmployee("E004", "Ops", datePtr(day(2022, 1, 1)), nil, intPtr(500)),
	}

	table := buildTurnoverTrend(emps, nil)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{day(2023, 5, 1), int64(1)}, table.Rows[0])
	assert.Equal(t, []any{day(2023, 3, 1), int64(2)}, table.Rows[1])
}

func TestAvgTenurePerDepartment(t *testing.T) {
	emps := []employee.Silver{
		silverEmployee("E001", "Engineering", nil, nil, intPtr(365)),
		silverEmployee("E002", "Engineering", nil, nil, intPtr(366)),
		silverEmployee("E003", "Engineering", nil, nil, nil), // counted, not averaged
		silverEmployee("E004", "Sales", nil, nil, intPtr(731)),
		silverEmployee("E005", "", nil, nil, intPtr(100)), // no department, excluded
	}

	table := buildAvgTenure(emps, nil)
	require.Len(t, table.Rows, 2)

	// Sales has the longer average tenure, so it ranks first.
	assert.Equal(t, "Sales", table.Rows[0][0])
	assert.Equal(t, 2.0, table.Rows[0][1])
	assert.Equal(t, int64(1), table.Rows[0][2])

	assert.Equal(t, "Engineering", table.Rows[1][0])
	assert.Equal(t, 1.0, table.Rows[1][1])
	assert.Equal(t, int64(3), table.Rows[1][2])
}

func TestAvgTenureNilAverageSortsLast(t *testing.T) {
	emps := []employee.Silver{
		silverEmployee("E001", "Mystery", nil, nil, nil),
		silverEmployee("E002", "Sales", nil, nil, intPtr(10)),
	}

	table := buildAvgTenure(emps, nil)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Sales", table.Rows[0][0])
	assert.Equal(t, "Mystery", table.Rows[1][0])
	assert.Nil(t, table.Rows[1][1])
}

func TestAvgWorkingHoursGroupsByMondayWeek(t *testing.T) {
	// 2023-01-04 is a Wednesday, 2023-01-05 a Thursday; both belong to the
	// week starting Monday 2023-01-02. 2023-01-09 starts the next week.
	ts := []timesheet.Silver{
		normalWorkRow("E001", day(2023, 1, 4), 8.0),
		normalWorkRow("E001", day(2023, 1, 5), 6.0),
		normalWorkRow("E001", day(2023, 1, 9), 9.0),
		{ClientEmployeeID: "E001", PunchApplyDate: datePtr(day(2023, 1, 4)), HoursWorked: floatPtr(4.0)}, // not normal work
	}

	table := buildAvgWorkingHours(nil, ts)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, []any{"E001", day(2023, 1, 9), 9.0, int64(1)}, table.Rows[0])
	assert.Equal(t, []any{"E001", day(2023, 1, 2), 7.0, int64(2)}, table.Rows[1])
}

func TestLateArrivalsRanking(t *testing.T) {
	lateRow := func(id string, minutes float64) timesheet.Silver {
		return timesheet.Silver{
			ClientEmployeeID: id,
			IsNormalWork:     true,
			IsLate:           true,
			MinutesLate:      minutes,
		}
	}
	ts := []timesheet.Silver{
		lateRow("E002", 10),
		lateRow("E002", 20),
		lateRow("E001", 7),
		{ClientEmployeeID: "E003", IsLate: true, MinutesLate: 30}, // not normal work
		{ClientEmployeeID: "E001", IsNormalWork: true, MinutesLate: 2},
	}

	table := buildLateArrivals(nil, ts)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{"E002", int64(2), 15.0}, table.Rows[0])
	assert.Equal(t, []any{"E001", int64(1), 7.0}, table.Rows[1])
}

func TestDeviationRankingCapsAtTopTwenty(t *testing.T) {
	var ts []timesheet.Silver
	for i := 0; i < 25; i++ {
		ts = append(ts, timesheet.Silver{
			ClientEmployeeID: fmt.Sprintf("E%03d", i),
			IsNormalWork:     true,
			IsEarly:          true,
			MinutesEarly:     10,
		})
	}

	table := buildEarlyDepartures(nil, ts)
	require.Len(t, table.Rows, TopN)
	// Equal counts tie-break on employee id ascending.
	assert.Equal(t, "E000", table.Rows[0][0])
	assert.Equal(t, "E019", table.Rows[19][0])
}

func TestOvertimeTotals(t *testing.T) {
	ts := []timesheet.Silver{
		normalWorkRow("E001", day(2023, 6, 1), 9.5),
		normalWorkRow("E001", day(2023, 6, 2), 10.0),
		normalWorkRow("E001", day(2023, 6, 3), 8.0), // not overtime
		normalWorkRow("E002", day(2023, 6, 1), 8.75),
	}

	table := buildOvertime(nil, ts)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{"E001", int64(2), 3.5}, table.Rows[0])
	assert.Equal(t, []any{"E002", int64(1), 0.75}, table.Rows[1])
}

func TestRollingAvgTrailingWindow(t *testing.T) {
	// 35 consecutive days with hours 1..35.
	var ts []timesheet.Silver
	start := day(2023, 1, 1)
	for i := 0; i < 35; i++ {
		ts = append(ts, normalWorkRow("E001", start.AddDate(0, 0, i), float64(i+1)))
	}

	table := buildRollingAvg(nil, ts)
	require.Len(t, table.Rows, 35)

	avgFor := make(map[time.Time]any)
	for _, row := range table.Rows {
		avgFor[row[1].(time.Time)] = row[2]
	}

	// Day 5: only the first five rows exist, mean(1..5).
	assert.Equal(t, 3.0, avgFor[start.AddDate(0, 0, 4)])
	// Day 30: the window is exactly full, mean(1..30).
	assert.Equal(t, 15.5, avgFor[start.AddDate(0, 0, 29)])
	// Day 31: the first row has dropped out, mean(2..31).
	assert.Equal(t, 16.5, avgFor[start.AddDate(0, 0, 30)])
	// Day 35: mean(6..35).
	assert.Equal(t, 20.5, avgFor[start.AddDate(0, 0, 34)])

	// Output ordered newest first.
	assert.Equal(t, start.AddDate(0, 0, 34), table.Rows[0][1])
}

func TestRollingAvgSkipsMissingHours(t *testing.T) {
	ts := []timesheet.Silver{
		normalWorkRow("E001", day(2023, 1, 2), 6.0),
		{ClientEmployeeID: "E001", PunchApplyDate: datePtr(day(2023, 1, 3)), IsNormalWork: true},
		normalWorkRow("E001", day(2023, 1, 4), 10.0),
	}

	table := buildRollingAvg(nil, ts)
	require.Len(t, table.Rows, 3)

	// Newest first: day 4 window holds {6, nil, 10}, nil skipped.
	assert.Equal(t, 8.0, table.Rows[0][2])
	// Day 3 window holds {6, nil}.
	assert.Equal(t, 6.0, table.Rows[1][2])
}

func TestEarlyAttritionBuckets(t *testing.T) {
	emps := []employee.Silver{
		// 89 days of tenure: early.
		silverEmployee("E001", "Ops", datePtr(day(2023, 1, 2)), datePtr(day(2023, 4, 1)), intPtr(89)),
		// Exactly 90 days: not early.
		silverEmployee("E002", "Ops", datePtr(day(2023, 1, 1)), datePtr(day(2023, 4, 1)), intPtr(90)),
		silverEmployee("E003", "Ops", datePtr(day(2020, 1, 1)), datePtr(day(2023, 4, 1)), intPtr(1186)),
		// Still active or unknown hire date: excluded.
		silverEmployee("E004", "Ops", datePtr(day(2023, 1, 1)), nil, nil),
		silverEmployee("E005", "Ops", nil, datePtr(day(2023, 4, 1)), nil),
	}

	table := buildEarlyAttrition(emps, nil)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{"Early Attrition (<90 days)", int64(1)}, table.Rows[0])
	assert.Equal(t, []any{"Other Attrition (>=90 days)", int64(2)}, table.Rows[1])
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
	assert.Equal(t, 15.5, round2(15.5))
}
