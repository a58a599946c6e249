package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepo struct {
	payrolls map[string]*Payroll
	belongs  bool
	overlaps bool
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: make(map[string]*Payroll), belongs: true}
}

func (f *fakePayrollRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakePayrollRepo) Create(ctx context.Context, payroll *Payroll) error {
	clone := *payroll
	f.payrolls[payroll.ID.String()] = &clone
	return nil
}

func (f *fakePayrollRepo) FindAllByCompany(ctx context.Context, companyID string, filter GetPayrollsFilterRequest) ([]Payroll, error) {
	var out []Payroll
	for _, p := range f.payrolls {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.EmployeeID != "" && p.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePayrollRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error) {
	p, ok := f.payrolls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, payroll *Payroll) error {
	clone := *payroll
	f.payrolls[payroll.ID.String()] = &clone
	return nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, companyID string, id string) error {
	delete(f.payrolls, id)
	return nil
}

func (f *fakePayrollRepo) EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	return f.belongs, nil
}

func (f *fakePayrollRepo) HasOverlappingPeriod(ctx context.Context, companyID string, employeeID string, periodStart time.Time, periodEnd time.Time, excludePayrollID *string) (bool, error) {
	return f.overlaps, nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	f.next++
	return f.next, nil
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
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func validPayrollRequest(employeeID string) CreatePayrollRequest {
	return CreatePayrollRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2025-05-01",
		PeriodEnd:   "2025-05-31",
		BaseSalary:  8000000,
		Allowance:   1500000,
		Deduction:   500000,
	}
}

func TestCreatePayroll_CalculatesNetAndNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validPayrollRequest(uuid.NewString()))

	assert.NoError(t, err)
	assert.Equal(t, int64(9000000), resp.NetSalary)
	assert.Equal(t, "PAY-000001", resp.PayrollNumber)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayroll_NumberIncrements(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	req := validPayrollRequest(uuid.NewString())
	req.PeriodStart = "2025-06-01"
	req.PeriodEnd = "2025-06-30"
	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.Create(context.Background(), companyID, actorID, req)
	assert.NoError(t, err)

	assert.Equal(t, "PAY-000001", first.PayrollNumber)
	assert.Equal(t, "PAY-000002", second.PayrollNumber)
}

func TestCreatePayroll_Overlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	repo.overlaps = true
	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validPayrollRequest(uuid.NewString()))

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollOverlap)
}

func TestCreatePayroll_EmployeeNotInCompany(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	repo.belongs = false
	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validPayrollRequest(uuid.NewString()))

	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotInCompany)
}

func TestCreatePayroll_NegativeMoney(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakePayrollRepo(), &fakeCounter{})

	req := validPayrollRequest(uuid.NewString())
	req.Deduction = -100
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), req)

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMoneyValue)
}

func TestApprove_DraftBecomesProcessed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	approved, err := svc.Approve(context.Background(), companyID, actorID, created.ID)

	assert.NoError(t, err)
	assert.Equal(t, StatusProcessed, approved.Status)
	assert.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, actorID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestApprove_RejectsNonDraft(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
}

func TestMarkAsPaid_RequiresProcessed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	// DRAFT langsung PAID tidak diizinkan
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.MarkAsPaid(context.Background(), companyID, actorID, created.ID)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	paid, err := svc.MarkAsPaid(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
}

func TestDelete_OnlyDraft(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = svc.Delete(context.Background(), companyID, created.ID)
	assert.ErrorIs(t, err, payrollerrors.ErrDeleteOnlyDraft)
}

func TestRequestPayslip_QueuesOutboxEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox, nil)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.RequestPayslip(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "payroll_payslip_requested", outbox.events[0].EventType)
	assert.Equal(t, created.ID, outbox.events[0].AggregateID)
}

func TestRequestPayslip_RejectedForDraft(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox, nil)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.RequestPayslip(context.Background(), companyID, actorID, created.ID)

	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotAvailable)
	assert.Empty(t, outbox.events)
}

func TestDownloadPayslip_BuildsPDF(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	pdf, err := svc.DownloadPayslip(context.Background(), companyID, created.ID)

	assert.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF-1.4", string(pdf[:8]))
	assert.Contains(t, string(pdf), "PAY-000001")
}

func TestUpdate_PaidRequiresPaidAt(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakePayrollRepo()
	svc := NewService(db, repo, &fakeCounter{})

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	employeeID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validPayrollRequest(employeeID))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Update(context.Background(), companyID, actorID, created.ID, UpdatePayrollRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2025-05-01",
		PeriodEnd:   "2025-05-31",
		BaseSalary:  8000000,
		Allowance:   1500000,
		Deduction:   500000,
		Status:      StatusPaid,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrPaidAtRequired)
}
