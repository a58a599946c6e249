package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	leaves   map[string]*Leave
	overlaps bool
	belongs  bool
	sums     []TypeDays
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leaves: make(map[string]*Leave), belongs: true}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, l *Leave) error {
	clone := *l
	f.leaves[l.ID.String()] = &clone
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error) {
	out := make([]Leave, 0, len(f.leaves))
	for _, l := range f.leaves {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *l
	return &clone, nil
}

func (f *fakeRepo) Update(ctx context.Context, l *Leave) error {
	clone := *l
	f.leaves[l.ID.String()] = &clone
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.leaves, id)
	return nil
}

func (f *fakeRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return f.belongs, nil
}

func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	return f.overlaps, nil
}

func (f *fakeRepo) SumApprovedDaysByType(ctx context.Context, companyID, employeeID string, year int) ([]TypeDays, error) {
	return f.sums, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error             { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func validLeaveRequest(employeeID string) CreateLeaveRequest {
	return CreateLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "ANNUAL",
		StartDate:  "2025-06-02",
		EndDate:    "2025-06-04",
		Reason:     "family event",
	}
}

func TestCreateLeave_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	employeeID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validLeaveRequest(employeeID))

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLeave_Overlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.overlaps = true
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validLeaveRequest(uuid.NewString()))

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
}

func TestCreateLeave_EmployeeNotInCompany(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.belongs = false
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validLeaveRequest(uuid.NewString()))

	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
}

func TestCreateLeave_InvalidDateRange(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())

	req := validLeaveRequest(uuid.NewString())
	req.StartDate = "2025-06-10"
	req.EndDate = "2025-06-02"
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), req)

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestApprove_RequiresSubmittedStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validLeaveRequest(uuid.NewString()))
	assert.NoError(t, err)

	// PENDING langsung ke APPROVED tidak diizinkan
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
}

func TestSubmitThenApprove_QueuesOutboxEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, outbox)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validLeaveRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	submitted, err := svc.Submit(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	assert.Empty(t, outbox.events)

	mock.ExpectBegin()
	mock.ExpectCommit()
	approved, err := svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, actorID, *approved.ApprovedBy)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "leave_approved", outbox.events[0].EventType)
	assert.Equal(t, created.ID, outbox.events[0].AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, outbox.events[0].Status)
}

func TestReject_RequiresReason(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validLeaveRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Submit(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Reject(context.Background(), companyID, actorID, created.ID, "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
}

func TestBalance_TalliesApprovedDaysPerType(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.sums = []TypeDays{
		{LeaveType: "ANNUAL", Days: 5},
		{LeaveType: "SICK", Days: 2},
	}
	svc := NewService(db, repo)

	resp, err := svc.Balance(context.Background(), uuid.NewString(), uuid.NewString(), 2025)

	assert.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)

	byType := make(map[string]LeaveBalanceEntry)
	for _, b := range resp.Balances {
		byType[b.LeaveType] = b
	}
	assert.Equal(t, 5, byType["ANNUAL"].UsedDays)
	assert.Equal(t, 7, byType["ANNUAL"].Remaining)
	assert.Equal(t, 2, byType["SICK"].UsedDays)
	assert.Equal(t, 10, byType["SICK"].Remaining)
	assert.Equal(t, 0, byType["UNPAID"].Remaining)
}

func TestBalance_InvalidYear(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())

	_, err := svc.Balance(context.Background(), uuid.NewString(), uuid.NewString(), 1900)

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidYear)
}
