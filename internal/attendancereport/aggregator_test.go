package attendancereport

import (
	"testing"
	"time"

	"go-hrms/internal/shared/optional"

	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func punchAt(employee, name string, clockIn time.Time, hours *float64, start, end *string) PunchRow {
	return PunchRow{
		EmployeeID:   employee,
		EmployeeName: name,
		Date:         clockIn.Truncate(24 * time.Hour),
		ClockIn:      timePtr(clockIn),
		TotalHours:   optional.FromPtr(hours),
		Status:       "PRESENT",
		WorkStart:    start,
		WorkEnd:      end,
	}
}

func TestAggregate_LateArrivalBeyondGrace(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 16, 0, 0, time.UTC)
	rows := []PunchRow{
		punchAt("emp-1", "Ani", clockIn, nil, strPtr("09:00:00"), nil),
	}

	totals, _ := Aggregate(rows, DefaultGraceMinutes)
	assert.Len(t, totals, 1)
	assert.Equal(t, 1, totals[0].LateArrivals)
	assert.Equal(t, 16, totals[0].TotalLateMinutes)
}

func TestAggregate_WithinGraceNotLate(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 1, 0, 0, time.UTC)
	rows := []PunchRow{
		punchAt("emp-1", "Ani", clockIn, nil, strPtr("09:00:00"), nil),
	}

	totals, summary := Aggregate(rows, DefaultGraceMinutes)
	assert.Equal(t, 0, totals[0].LateArrivals)
	assert.Equal(t, 0, totals[0].TotalLateMinutes)
	assert.Equal(t, 0, summary.AvgLateMinutes)
}

func TestAggregate_Overtime(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	hours := 10.5
	rows := []PunchRow{
		punchAt("emp-1", "Ani", clockIn, &hours, strPtr("09:00:00"), strPtr("18:00:00")),
	}

	totals, summary := Aggregate(rows, DefaultGraceMinutes)
	assert.InDelta(t, 1.5, totals[0].TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 1.5, summary.TotalOvertimeHours, 1e-9)
}

func TestAggregate_NoWindowCountsDaysAndHoursOnly(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	hours := 12.0
	rows := []PunchRow{
		punchAt("emp-1", "Ani", clockIn, &hours, nil, nil),
	}

	totals, _ := Aggregate(rows, DefaultGraceMinutes)
	assert.Equal(t, 1, totals[0].TotalDays)
	assert.InDelta(t, 12.0, totals[0].TotalHours, 1e-9)
	assert.Equal(t, 0, totals[0].LateArrivals)
	assert.Zero(t, totals[0].TotalOvertimeHours)
}

func TestAggregate_NilClockInAndHoursDefaultToZero(t *testing.T) {
	rows := []PunchRow{
		{
			EmployeeID:   "emp-1",
			EmployeeName: "Ani",
			Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:       "ABSENT",
			WorkStart:    strPtr("09:00:00"),
			WorkEnd:      strPtr("18:00:00"),
		},
	}

	totals, summary := Aggregate(rows, DefaultGraceMinutes)
	assert.Equal(t, 1, totals[0].TotalDays)
	assert.Zero(t, totals[0].TotalHours)
	assert.Equal(t, 0, totals[0].LateArrivals)
	assert.Equal(t, 0, summary.AvgLateMinutes)
}

func TestAggregate_SortByLateThenOvertime(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	start := strPtr("09:00:00")
	end := strPtr("18:00:00")
	hours10 := 10.0
	hours11 := 11.0

	var rows []PunchRow
	// emp-a: 3 kali telat
	for i := 0; i < 3; i++ {
		rows = append(rows, punchAt("emp-a", "Agus", day.AddDate(0, 0, i).Add(9*time.Hour+30*time.Minute), nil, start, end))
	}
	// emp-b: 5 kali telat
	for i := 0; i < 5; i++ {
		rows = append(rows, punchAt("emp-b", "Budi", day.AddDate(0, 0, i).Add(9*time.Hour+10*time.Minute), nil, start, end))
	}
	// emp-c dan emp-d: sama-sama telat sekali, lembur beda
	rows = append(rows, punchAt("emp-c", "Citra", day.Add(9*time.Hour+20*time.Minute), &hours10, start, end))
	rows = append(rows, punchAt("emp-d", "Dewi", day.Add(9*time.Hour+20*time.Minute), &hours11, start, end))

	totals, _ := Aggregate(rows, DefaultGraceMinutes)
	assert.Equal(t, "emp-b", totals[0].EmployeeID)
	assert.Equal(t, "emp-a", totals[1].EmployeeID)
	// tie di late arrivals: lembur lebih besar dulu
	assert.Equal(t, "emp-d", totals[2].EmployeeID)
	assert.Equal(t, "emp-c", totals[3].EmployeeID)
}

func TestAggregate_Summary(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	start := strPtr("09:00:00")
	end := strPtr("17:00:00")
	hours := 8.123

	rows := []PunchRow{
		punchAt("emp-a", "Agus", day.Add(9*time.Hour+10*time.Minute), &hours, start, end),
		punchAt("emp-b", "Budi", day.Add(9*time.Hour+20*time.Minute), &hours, start, end),
		punchAt("emp-b", "Budi", day.AddDate(0, 0, 1).Add(8*time.Hour+50*time.Minute), &hours, start, end),
	}

	totals, summary := Aggregate(rows, DefaultGraceMinutes)
	assert.Len(t, totals, 2)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 2, summary.TotalLateArrivals)
	// (10 + 20) / 2 = 15
	assert.Equal(t, 15, summary.AvgLateMinutes)
	// lembur 0.123/hari x 3 baris, dibulatkan 2 desimal hanya di summary
	assert.InDelta(t, 0.37, summary.TotalOvertimeHours, 1e-9)
}

func TestAggregate_AvgLateZeroWhenNoLateArrivals(t *testing.T) {
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := []PunchRow{
		punchAt("emp-a", "Agus", day, nil, strPtr("09:00:00"), nil),
	}

	_, summary := Aggregate(rows, DefaultGraceMinutes)
	assert.Equal(t, 0, summary.TotalLateArrivals)
	assert.Equal(t, 0, summary.AvgLateMinutes)
}

func TestAggregate_EmptyInput(t *testing.T) {
	totals, summary := Aggregate(nil, DefaultGraceMinutes)
	assert.Empty(t, totals)
	assert.Equal(t, 0, summary.TotalEmployees)
	assert.Equal(t, 0, summary.AvgLateMinutes)
}

func TestAggregate_ConfigurableGrace(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 4, 0, 0, time.UTC)
	rows := []PunchRow{
		punchAt("emp-1", "Ani", clockIn, nil, strPtr("09:00:00"), nil),
	}

	totals, _ := Aggregate(rows, 5)
	assert.Equal(t, 0, totals[0].LateArrivals)

	totals, _ = Aggregate(rows, 1)
	assert.Equal(t, 1, totals[0].LateArrivals)
}
