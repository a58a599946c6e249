package attendancereport

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	reporterrors "go-hrms/internal/attendancereport/errors"
	"go-hrms/internal/shared/optional"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReportRepo struct {
	rows []PunchRow
	err  error

	gotCompanyID string
	gotStart     time.Time
	gotEnd       time.Time
}

func (f *fakeReportRepo) FindPunchesForPeriod(ctx context.Context, companyID string, start, end time.Time) ([]PunchRow, error) {
	f.gotCompanyID = companyID
	f.gotStart = start
	f.gotEnd = end
	return f.rows, f.err
}

func TestGenerate_Success(t *testing.T) {
	companyID := uuid.NewString()
	clockIn := time.Date(2025, 3, 10, 9, 16, 0, 0, time.UTC)
	start := "09:00:00"
	repo := &fakeReportRepo{
		rows: []PunchRow{
			{
				EmployeeID:   "emp-1",
				EmployeeName: "Ani",
				Date:         clockIn.Truncate(24 * time.Hour),
				ClockIn:      &clockIn,
				TotalHours:   optional.Some(8.0),
				Status:       "LATE",
				WorkStart:    &start,
			},
		},
	}
	svc := NewService(repo)

	resp, err := svc.Generate(context.Background(), companyID, GetReportRequest{Month: 3, Year: 2025})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, 2025, resp.Year)
	assert.Len(t, resp.Records, 1)
	assert.Equal(t, 1, resp.Records[0].LateArrivals)
	assert.Equal(t, 16, resp.Records[0].TotalLateMinutes)
	assert.Equal(t, 16, resp.Summary.AvgLateMinutes)

	assert.Equal(t, companyID, repo.gotCompanyID)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), repo.gotStart)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), repo.gotEnd)
}

func TestGenerate_InvalidCompanyID(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	_, err := svc.Generate(context.Background(), "not-a-uuid", GetReportRequest{Month: 3, Year: 2025})

	assert.ErrorIs(t, err, reporterrors.ErrInvalidCompanyID)
}

func TestGenerate_InvalidMonth(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	_, err := svc.Generate(context.Background(), uuid.NewString(), GetReportRequest{Month: 13, Year: 2025})

	assert.ErrorIs(t, err, reporterrors.ErrInvalidPeriod)
}

func TestGenerate_RepoError(t *testing.T) {
	repoErr := errors.New("db down")
	svc := NewService(&fakeReportRepo{err: repoErr})

	_, err := svc.Generate(context.Background(), uuid.NewString(), GetReportRequest{Month: 3, Year: 2025})

	assert.ErrorIs(t, err, repoErr)
}

func TestGenerate_CustomGrace(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 4, 0, 0, time.UTC)
	start := "09:00:00"
	repo := &fakeReportRepo{
		rows: []PunchRow{
			{
				EmployeeID:   "emp-1",
				EmployeeName: "Ani",
				Date:         clockIn.Truncate(24 * time.Hour),
				ClockIn:      &clockIn,
				Status:       "PRESENT",
				WorkStart:    &start,
			},
		},
	}
	svc := NewService(repo, WithGraceMinutes(5))

	resp, err := svc.Generate(context.Background(), uuid.NewString(), GetReportRequest{Month: 3, Year: 2025})

	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Records[0].LateArrivals)
}

func TestExportPDF_Success(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{
		rows: []PunchRow{
			{
				EmployeeID:   "emp-1",
				EmployeeName: "Ani",
				Date:         clockIn.Truncate(24 * time.Hour),
				ClockIn:      &clockIn,
				TotalHours:   optional.Some(8.0),
				Status:       "PRESENT",
			},
		},
	}
	svc := NewService(repo)

	pdf, err := svc.ExportPDF(context.Background(), uuid.NewString(), GetReportRequest{Month: 3, Year: 2025})

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
	assert.Contains(t, string(pdf), "Attendance Report 03/2025")
}

func TestExportPDF_PropagatesError(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	_, err := svc.ExportPDF(context.Background(), uuid.NewString(), GetReportRequest{Month: 0, Year: 2025})

	assert.ErrorIs(t, err, reporterrors.ErrInvalidPeriod)
}
