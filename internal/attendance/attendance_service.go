package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultGraceMinutes menyerap clock skew di bawah satu menit saat
// menentukan status LATE. Nilai yang sama dipakai agregator laporan.
const defaultGraceMinutes = 1

// WorkWindow adalah jendela jam kerja seorang karyawan. Field nil berarti
// tidak dikonfigurasi; status keterlambatan tidak dihitung tanpa Start.
type WorkWindow struct {
	Start *string // HH:MM:SS
	End   *string
}

// WindowProvider membaca jendela jam kerja karyawan. Diimplementasikan
// oleh repository employee.
type WindowProvider interface {
	WorkingHours(ctx context.Context, companyID, employeeID string) (WorkWindow, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]AttendanceResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	windows      WindowProvider
	graceMinutes int
	now          func() time.Time
	logger       *zap.Logger
}

type Option func(*service)

func WithGraceMinutes(minutes int) Option {
	return func(s *service) { s.graceMinutes = minutes }
}

// WithClock mengganti sumber waktu, dipakai di test.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(db *sql.DB, repo Repository, windows WindowProvider, opts ...Option) Service {
	s := &service{
		db:           db,
		repo:         repo,
		windows:      windows,
		graceMinutes: defaultGraceMinutes,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       zap.L().Named("attendance.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("company_id")
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	window, err := s.windows.WorkingHours(ctx, companyID, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	status := StatusPresent
	if minutes, late := lateMinutes(now, window.Start, s.graceMinutes); late {
		status = StatusLate
		s.logger.Debug("late clock in",
			zap.String("employee_id", employeeID),
			zap.Int("late_minutes", minutes),
		)
	}

	source := req.Source
	if source == "" {
		source = "MANUAL"
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: today,
		ClockIn:        &now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if row.ClockIn != nil {
		total := round2(now.Sub(*row.ClockIn).Hours())
		if total < 0 {
			total = 0
		}
		row.TotalHours = &total
	}
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	window, err := s.windows.WorkingHours(ctx, companyID, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if row.TotalHours != nil && row.Status == StatusPresent {
		if expected, ok := expectedHours(window); ok && *row.TotalHours < expected/2 {
			row.Status = StatusHalfDay
		}
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindAllByCompanyAndEmployee(ctx, companyID, actorID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// lateMinutes membandingkan waktu clock-in dengan jadwal mulai pada hari
// kalender yang sama. Tanpa jadwal, tidak pernah dianggap telat.
func lateMinutes(clockIn time.Time, workStart *string, graceMinutes int) (int, bool) {
	if workStart == nil {
		return 0, false
	}
	parsed, ok := parseTimeOfDay(*workStart)
	if !ok {
		return 0, false
	}
	scheduled := time.Date(
		clockIn.Year(), clockIn.Month(), clockIn.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		clockIn.Location(),
	)
	diff := clockIn.Sub(scheduled)
	if diff <= time.Duration(graceMinutes)*time.Minute {
		return 0, false
	}
	return int(diff.Minutes()), true
}

func expectedHours(window WorkWindow) (float64, bool) {
	if window.Start == nil || window.End == nil {
		return 0, false
	}
	start, okStart := parseTimeOfDay(*window.Start)
	end, okEnd := parseTimeOfDay(*window.End)
	if !okStart || !okEnd {
		return 0, false
	}
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endMin <= startMin {
		return 0, false
	}
	return float64(endMin-startMin) / 60.0, true
}

func parseTimeOfDay(v string) (time.Time, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		TotalHours:     a.TotalHours,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		ExternalRef:    a.ExternalRef,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
