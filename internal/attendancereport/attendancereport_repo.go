package attendancereport

import (
	"context"
	"time"

	"go-hrms/internal/shared/optional"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// punchJoinRow adalah bentuk mentah hasil join attendances + employees.
// Dipisahkan dari PunchRow supaya batas deserialisasi eksplisit: baris
// yang bentuknya rusak ditolak di sini, bukan menyebar sebagai nil.
type punchJoinRow struct {
	EmployeeID        string     `gorm:"column:employee_id"`
	FullName          string     `gorm:"column:full_name"`
	AttendanceDate    time.Time  `gorm:"column:attendance_date"`
	ClockIn           *time.Time `gorm:"column:clock_in"`
	TotalHours        *float64   `gorm:"column:total_hours"`
	Status            string     `gorm:"column:status"`
	WorkingHoursStart *string    `gorm:"column:working_hours_start"`
	WorkingHoursEnd   *string    `gorm:"column:working_hours_end"`
}

//go:generate mockgen -source=attendancereport_repo.go -destination=mock/attendancereport_repo_mock.go -package=mock
type Repository interface {
	FindPunchesForPeriod(ctx context.Context, companyID string, start, end time.Time) ([]PunchRow, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, logger: zap.L().Named("attendancereport.repo")}
}

func (r *repository) FindPunchesForPeriod(ctx context.Context, companyID string, start, end time.Time) ([]PunchRow, error) {
	var rows []punchJoinRow
	err := r.db.WithContext(ctx).
		Table("attendances a").
		Select(`a.employee_id::text AS employee_id,
			e.full_name,
			a.attendance_date,
			a.clock_in,
			a.total_hours,
			a.status,
			e.working_hours_start,
			e.working_hours_end`).
		Joins("JOIN employees e ON e.id = a.employee_id").
		Where("a.company_id = ?", companyID).
		Where("a.attendance_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Where("a.deleted_at IS NULL").
		Order("a.attendance_date ASC, a.clock_in ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	punches := make([]PunchRow, 0, len(rows))
	for _, row := range rows {
		if _, parseErr := uuid.Parse(row.EmployeeID); parseErr != nil {
			r.logger.Warn("skipping malformed attendance row",
				zap.String("employee_id", row.EmployeeID),
				zap.Error(parseErr),
			)
			continue
		}
		punches = append(punches, PunchRow{
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.FullName,
			Date:         row.AttendanceDate,
			ClockIn:      row.ClockIn,
			TotalHours:   optional.FromPtr(row.TotalHours),
			Status:       row.Status,
			WorkStart:    row.WorkingHoursStart,
			WorkEnd:      row.WorkingHoursEnd,
		})
	}
	return punches, nil
}
