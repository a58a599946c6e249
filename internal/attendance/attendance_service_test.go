package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                      func(tx *sql.Tx) Repository
	createFn                      func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn       func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findAllByCompanyFn            func(ctx context.Context, companyID string) ([]Attendance, error)
	findAllByCompanyAndEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]Attendance, error)
	updateFn                      func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository            { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
	return f.findAllByCompanyAndEmployeeFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }

type fakeWindows struct {
	window WorkWindow
	err    error
}

func (f *fakeWindows) WorkingHours(ctx context.Context, companyID, employeeID string) (WorkWindow, error) {
	return f.window, f.err
}

func windowStrPtr(v string) *string { return &v }

func newInMemoryRepo() *fakeRepo {
	var saved *Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { clone := *a; saved = &clone; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { clone := *a; saved = &clone; return nil }
	repo.findAllByCompanyFn = func(ctx context.Context, companyID string) ([]Attendance, error) { return nil, nil }
	repo.findAllByCompanyAndEmployeeFn = func(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
		return nil, nil
	}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		if saved == nil {
			return nil, gorm.ErrRecordNotFound
		}
		return saved, nil
	}
	return repo
}

func TestService_ClockInAndClockOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	repo := newInMemoryRepo()
	windows := &fakeWindows{window: WorkWindow{Start: windowStrPtr("09:00:00"), End: windowStrPtr("18:00:00")}}

	clockInAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := clockInAt
	svc := NewService(db, repo, windows, WithClock(func() time.Time { return now }))

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, companyID, employeeID, ClockInRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)
	assert.Equal(t, StatusPresent, inResp.Status)

	now = clockInAt.Add(9 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, outResp.ClockOut)
	assert.NotNil(t, outResp.TotalHours)
	assert.InDelta(t, 9.0, *outResp.TotalHours, 1e-9)
	assert.Equal(t, StatusPresent, outResp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_LateBeyondGrace(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newInMemoryRepo()
	windows := &fakeWindows{window: WorkWindow{Start: windowStrPtr("09:00:00")}}

	now := time.Date(2025, 3, 10, 9, 16, 0, 0, time.UTC)
	svc := NewService(db, repo, windows, WithClock(func() time.Time { return now }))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
}

func TestService_ClockIn_WithinGraceIsPresent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newInMemoryRepo()
	windows := &fakeWindows{window: WorkWindow{Start: windowStrPtr("09:00:00")}}

	now := time.Date(2025, 3, 10, 9, 1, 0, 0, time.UTC)
	svc := NewService(db, repo, windows, WithClock(func() time.Time { return now }))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
}

func TestService_ClockIn_NoWindowNeverLate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newInMemoryRepo()
	windows := &fakeWindows{err: gorm.ErrRecordNotFound}

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := NewService(db, repo, windows, WithClock(func() time.Time { return now }))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
}

func TestService_ClockIn_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo, &fakeWindows{})
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_WithoutClockIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newInMemoryRepo()
	svc := NewService(db, repo, &fakeWindows{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockOut(context.Background(), uuid.NewString(), uuid.NewString(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
}

func TestService_ClockOut_Twice(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	out := time.Now().UTC()
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New(), ClockOut: &out}, nil
	}

	svc := NewService(db, repo, &fakeWindows{})
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockOut(context.Background(), uuid.NewString(), uuid.NewString(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
}

func TestService_ClockOut_ShortDayBecomesHalfDay(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	repo := newInMemoryRepo()
	windows := &fakeWindows{window: WorkWindow{Start: windowStrPtr("09:00:00"), End: windowStrPtr("18:00:00")}}

	clockInAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := clockInAt
	svc := NewService(db, repo, windows, WithClock(func() time.Time { return now }))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.ClockIn(context.Background(), companyID, employeeID, ClockInRequest{})
	assert.NoError(t, err)

	// pulang setelah 3 jam, di bawah setengah jendela 9 jam
	now = clockInAt.Add(3 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockOut(context.Background(), companyID, employeeID, ClockOutRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusHalfDay, resp.Status)
}

func TestService_GetAll_ScopedToActorWithoutReadAll(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	var gotEmployeeID string

	repo := newInMemoryRepo()
	repo.findAllByCompanyAndEmployeeFn = func(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
		gotEmployeeID = employeeID
		return []Attendance{{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), EmployeeID: uuid.MustParse(employeeID), AttendanceDate: time.Now(), Status: StatusPresent, Source: "MANUAL"}}, nil
	}

	svc := NewService(db, repo, &fakeWindows{})
	rows, err := svc.GetAll(context.Background(), companyID, actorID, false)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, actorID, gotEmployeeID)
}
