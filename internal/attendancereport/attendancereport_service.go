package attendancereport

import (
	"context"
	"fmt"
	"math"
	"time"

	reporterrors "go-hrms/internal/attendancereport/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendancereport_service.go -destination=mock/attendancereport_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID string, req GetReportRequest) (ReportResponse, error)
	ExportPDF(ctx context.Context, companyID string, req GetReportRequest) ([]byte, error)
}

type service struct {
	repo Repository
	// GraceMinutes dan kebijakan lembur adalah pilihan bisnis yang belum
	// didokumentasikan; dibuat konfigurable alih-alih konstanta.
	graceMinutes int
	logger       *zap.Logger
}

type Option func(*service)

func WithGraceMinutes(minutes int) Option {
	return func(s *service) { s.graceMinutes = minutes }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:         repo,
		graceMinutes: DefaultGraceMinutes,
		logger:       zap.L().Named("attendancereport.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Generate(ctx context.Context, companyID string, req GetReportRequest) (ReportResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidCompanyID
	}
	if req.Month < 1 || req.Month > 12 {
		return ReportResponse{}, reporterrors.ErrInvalidPeriod
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	rows, err := s.repo.FindPunchesForPeriod(ctx, companyID, start, end)
	if err != nil {
		s.logger.Error("fetch report punches failed",
			zap.String("company_id", companyID),
			zap.Int("month", req.Month),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return ReportResponse{}, err
	}

	totals, summary := Aggregate(rows, s.graceMinutes)

	s.logger.Debug("attendance report generated",
		zap.String("company_id", companyID),
		zap.Int("employees", summary.TotalEmployees),
		zap.Int("late_arrivals", summary.TotalLateArrivals),
	)

	return ReportResponse{
		Month:   req.Month,
		Year:    req.Year,
		Records: mapRecords(totals),
		Summary: ReportSummaryResponse{
			TotalEmployees:     summary.TotalEmployees,
			TotalLateArrivals:  summary.TotalLateArrivals,
			AvgLateMinutes:     summary.AvgLateMinutes,
			TotalOvertimeHours: summary.TotalOvertimeHours,
		},
	}, nil
}

func (s *service) ExportPDF(ctx context.Context, companyID string, req GetReportRequest) ([]byte, error) {
	report, err := s.Generate(ctx, companyID, req)
	if err != nil {
		return nil, err
	}

	lines := []string{
		fmt.Sprintf("Attendance Report %02d/%d", report.Month, report.Year),
		fmt.Sprintf("Employees: %d  Late arrivals: %d  Avg late: %d min  Overtime: %.2f h",
			report.Summary.TotalEmployees,
			report.Summary.TotalLateArrivals,
			report.Summary.AvgLateMinutes,
			report.Summary.TotalOvertimeHours,
		),
		"",
	}
	for _, rec := range report.Records {
		lines = append(lines, fmt.Sprintf("%-30s days=%d hours=%.2f late=%d (%d min) overtime=%.2f",
			rec.EmployeeName,
			rec.TotalDays,
			rec.TotalHours,
			rec.LateArrivals,
			rec.TotalLateMinutes,
			rec.TotalOvertimeHours,
		))
	}

	return buildSimpleReportPDF(lines)
}

func mapRecords(totals []EmployeeTotals) []ReportRecordResponse {
	records := make([]ReportRecordResponse, len(totals))
	for i, t := range totals {
		records[i] = ReportRecordResponse{
			EmployeeID:         t.EmployeeID,
			EmployeeName:       t.EmployeeName,
			TotalDays:          t.TotalDays,
			TotalHours:         round2(t.TotalHours),
			LateArrivals:       t.LateArrivals,
			TotalLateMinutes:   t.TotalLateMinutes,
			TotalOvertimeHours: round2(t.TotalOvertimeHours),
		}
	}
	return records
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
