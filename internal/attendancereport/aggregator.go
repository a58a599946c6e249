package attendancereport

import (
	"math"
	"sort"
	"time"

	"go-hrms/internal/shared/optional"
)

// DefaultGraceMinutes menyerap clock skew di bawah satu menit.
const DefaultGraceMinutes = 1

// PunchRow adalah satu baris absensi yang sudah di-join dengan jendela
// jam kerja karyawan. Field opsional yang kosong dibaca sebagai nol.
type PunchRow struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	ClockIn      *time.Time
	TotalHours   optional.Float64
	Status       string
	WorkStart    *string // HH:MM:SS, nil jika tidak dikonfigurasi
	WorkEnd      *string
}

// EmployeeTotals adalah agregat per karyawan untuk satu periode laporan.
type EmployeeTotals struct {
	EmployeeID         string
	EmployeeName       string
	TotalDays          int
	TotalHours         float64
	LateArrivals       int
	TotalLateMinutes   int
	TotalOvertimeHours float64
}

type Summary struct {
	TotalEmployees     int
	TotalLateArrivals  int
	AvgLateMinutes     int
	TotalOvertimeHours float64
}

// Aggregate melipat baris absensi menjadi satu EmployeeTotals per karyawan.
// Baris tanpa jendela jam kerja tetap dihitung untuk hari dan jam, tapi
// tidak pernah menyumbang keterlambatan atau lembur. Pembulatan hanya
// dilakukan di tahap summary agar error pembulatan tidak menumpuk.
func Aggregate(rows []PunchRow, graceMinutes int) ([]EmployeeTotals, Summary) {
	if graceMinutes < 0 {
		graceMinutes = DefaultGraceMinutes
	}

	byEmployee := make(map[string]*EmployeeTotals)
	order := make([]string, 0)

	for _, row := range rows {
		totals, ok := byEmployee[row.EmployeeID]
		if !ok {
			totals = &EmployeeTotals{
				EmployeeID:   row.EmployeeID,
				EmployeeName: row.EmployeeName,
			}
			byEmployee[row.EmployeeID] = totals
			order = append(order, row.EmployeeID)
		}

		totals.TotalDays++
		totals.TotalHours += row.TotalHours.OrZero()

		if lateMinutes, late := lateBy(row, graceMinutes); late {
			totals.LateArrivals++
			totals.TotalLateMinutes += lateMinutes
		}

		if excess, ok := overtimeExcess(row); ok {
			totals.TotalOvertimeHours += excess
		}
	}

	result := make([]EmployeeTotals, 0, len(order))
	for _, id := range order {
		result = append(result, *byEmployee[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].LateArrivals != result[j].LateArrivals {
			return result[i].LateArrivals > result[j].LateArrivals
		}
		if result[i].TotalOvertimeHours != result[j].TotalOvertimeHours {
			return result[i].TotalOvertimeHours > result[j].TotalOvertimeHours
		}
		return result[i].EmployeeName < result[j].EmployeeName
	})

	return result, summarize(result)
}

// lateBy menghitung menit keterlambatan terhadap jadwal mulai pada hari
// kalender yang sama dengan clock-in. Grace period menyerap selisih kecil.
func lateBy(row PunchRow, graceMinutes int) (int, bool) {
	if row.ClockIn == nil || row.WorkStart == nil {
		return 0, false
	}

	scheduled, ok := atTimeOfDay(*row.ClockIn, *row.WorkStart)
	if !ok {
		return 0, false
	}

	diff := row.ClockIn.Sub(scheduled)
	if diff <= time.Duration(graceMinutes)*time.Minute {
		return 0, false
	}
	return int(diff.Minutes()), true
}

// overtimeExcess membandingkan jam tercatat dengan panjang jendela kerja.
// Lembur tidak dibatasi dan tidak memakai grace period.
func overtimeExcess(row PunchRow) (float64, bool) {
	if !row.TotalHours.IsSet() || row.WorkStart == nil || row.WorkEnd == nil {
		return 0, false
	}

	startMin, okStart := minutesOfDay(*row.WorkStart)
	endMin, okEnd := minutesOfDay(*row.WorkEnd)
	if !okStart || !okEnd || endMin <= startMin {
		return 0, false
	}

	expectedHours := float64(endMin-startMin) / 60.0
	if row.TotalHours.OrZero() <= expectedHours {
		return 0, false
	}
	return row.TotalHours.OrZero() - expectedHours, true
}

func summarize(totals []EmployeeTotals) Summary {
	s := Summary{TotalEmployees: len(totals)}

	totalLateMinutes := 0
	for _, t := range totals {
		s.TotalLateArrivals += t.LateArrivals
		totalLateMinutes += t.TotalLateMinutes
		s.TotalOvertimeHours += t.TotalOvertimeHours
	}

	if s.TotalLateArrivals > 0 {
		s.AvgLateMinutes = int(math.Round(float64(totalLateMinutes) / float64(s.TotalLateArrivals)))
	}
	s.TotalOvertimeHours = math.Round(s.TotalOvertimeHours*100) / 100

	return s
}

func atTimeOfDay(day time.Time, hhmmss string) (time.Time, bool) {
	parsed, ok := parseTimeOfDay(hhmmss)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		day.Location(),
	), true
}

func minutesOfDay(hhmmss string) (int, bool) {
	parsed, ok := parseTimeOfDay(hhmmss)
	if !ok {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

func parseTimeOfDay(v string) (time.Time, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
