package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

const payrollCounterType = "payroll"

func payslipCacheKey(payrollID string) string {
	return "payslip:" + payrollID
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	RequestPayslip(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	GeneratePayslip(ctx context.Context, companyID, id string) (PayrollResponse, error)
	DownloadPayslip(ctx context.Context, companyID, id string) ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counters counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, counters: counters, logger: l}
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, counters: counters, outbox: outboxRepo, rdb: rdb, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayrollRequest,
) (PayrollResponse, error) {
	companyUUID, employeeUUID, createdByUUID, periodStart, periodEnd, err := validateCreateRequest(companyID, actorID, req)
	if err != nil {
		return PayrollResponse{}, err
	}
	if req.BaseSalary < 0 || req.Allowance < 0 || req.Deduction < 0 {
		return PayrollResponse{}, payrollerrors.ErrInvalidMoneyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !belongs {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, periodStart, periodEnd, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPayrollOverlap
	}

	seq, err := s.counters.GetNextValue(ctx, companyID, payrollCounterType)
	if err != nil {
		return PayrollResponse{}, err
	}

	payroll := &Payroll{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		PayrollNumber: fmt.Sprintf("PAY-%06d", seq),
		EmployeeID:    employeeUUID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		BaseSalary:    req.BaseSalary,
		Allowance:     req.Allowance,
		Deduction:     req.Deduction,
		NetSalary:     req.BaseSalary + req.Allowance - req.Deduction,
		Status:        StatusDraft,
		CreatedBy:     createdByUUID,
	}

	if err := qtx.Create(ctx, payroll); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*payroll), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetPayrollsFilterRequest,
) ([]PayrollResponse, error) {
	if filter.Status != "" && !isKnownStatus(filter.Status) {
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	payrolls, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	payroll, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapNotFound(err)
	}

	return mapToResponse(*payroll), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, actorID, id string,
	req UpdatePayrollRequest,
) (PayrollResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return PayrollResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return PayrollResponse{}, payrollerrors.ErrInvalidDateRange
	}
	if req.BaseSalary < 0 || req.Allowance < 0 || req.Deduction < 0 {
		return PayrollResponse{}, payrollerrors.ErrInvalidMoneyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapNotFound(err)
	}

	if req.Status != payroll.Status && !isValidTransition(payroll.Status, req.Status) {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !belongs {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, periodStart, periodEnd, &id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPayrollOverlap
	}

	payroll.EmployeeID = employeeID
	payroll.PeriodStart = periodStart
	payroll.PeriodEnd = periodEnd
	payroll.BaseSalary = req.BaseSalary
	payroll.Allowance = req.Allowance
	payroll.Deduction = req.Deduction
	payroll.NetSalary = req.BaseSalary + req.Allowance - req.Deduction
	payroll.Status = req.Status

	if req.PaidAt != nil && *req.PaidAt != "" {
		paidAt, err := parseDateTime(*req.PaidAt)
		if err != nil {
			return PayrollResponse{}, err
		}
		payroll.PaidAt = &paidAt
	}

	if payroll.Status == StatusPaid && payroll.PaidAt == nil {
		return PayrollResponse{}, payrollerrors.ErrPaidAtRequired
	}

	if err := qtx.Update(ctx, payroll); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*payroll), nil
}

func (s *service) Approve(
	ctx context.Context,
	companyID, actorID, id string,
) (PayrollResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapNotFound(err)
	}

	if payroll.Status != StatusDraft {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	payroll.Status = StatusProcessed
	payroll.ApprovedBy = &actorUUID
	payroll.ApprovedAt = &now

	if err := qtx.Update(ctx, payroll); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*payroll), nil
}

func (s *service) MarkAsPaid(
	ctx context.Context,
	companyID, actorID, id string,
) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapNotFound(err)
	}

	if payroll.Status != StatusProcessed {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	payroll.Status = StatusPaid
	payroll.PaidAt = &now

	if err := qtx.Update(ctx, payroll); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*payroll), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapNotFound(err)
	}
	if payroll.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

// RequestPayslip menulis event ke outbox, pembuatan PDF dilakukan
// oleh worker lewat topik payslip-requested.
func (s *service) RequestPayslip(
	ctx context.Context,
	companyID, actorID, id string,
) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapNotFound(err)
	}

	if payroll.Status != StatusProcessed && payroll.Status != StatusPaid {
		return PayrollResponse{}, payrollerrors.ErrPayslipNotAvailable
	}

	if s.outbox != nil {
		event := events.PayrollPayslipRequestedEvent{
			EventType:   "payroll_payslip_requested",
			PayrollID:   payroll.ID.String(),
			CompanyID:   companyID,
			RequestedBy: actorID,
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollResponse{}, err
		}

		rid := contextutil.GetRequestID(ctx)
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   payroll.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollPayslipRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("queue payslip requested event failed",
				zap.String("payroll_id", payroll.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*payroll), nil
}

func (s *service) GeneratePayslip(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapNotFound(err)
	}

	if payroll.Status != StatusProcessed && payroll.Status != StatusPaid {
		return PayrollResponse{}, payrollerrors.ErrPayslipNotAvailable
	}

	pdf, err := buildPayslipPDF(*payroll)
	if err != nil {
		return PayrollResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, payslipCacheKey(payroll.ID.String()), pdf, 24*time.Hour).Err(); err != nil {
			s.logger.Warn("cache payslip pdf failed",
				zap.String("payroll_id", payroll.ID.String()),
				zap.Error(err),
			)
		}
	}

	now := time.Now().UTC()
	payroll.PayslipGeneratedAt = &now

	if err := qtx.Update(ctx, payroll); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*payroll), nil
}

func (s *service) DownloadPayslip(
	ctx context.Context,
	companyID, id string,
) ([]byte, error) {
	payroll, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if payroll.Status != StatusProcessed && payroll.Status != StatusPaid {
		return nil, payrollerrors.ErrPayslipNotAvailable
	}

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, payslipCacheKey(payroll.ID.String())).Bytes()
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn("read payslip cache failed",
				zap.String("payroll_id", payroll.ID.String()),
				zap.Error(err),
			)
		}
	}

	pdf, err := buildPayslipPDF(*payroll)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, payslipCacheKey(payroll.ID.String()), pdf, 24*time.Hour).Err(); err != nil {
			s.logger.Warn("cache payslip pdf failed",
				zap.String("payroll_id", payroll.ID.String()),
				zap.Error(err),
			)
		}
	}

	return pdf, nil
}

func isKnownStatus(status string) bool {
	switch status {
	case StatusDraft, StatusProcessed, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusProcessed || to == StatusCancelled
	case StatusProcessed:
		return to == StatusPaid || to == StatusCancelled
	default:
		return false
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	return err
}

func validateCreateRequest(
	companyID, actorID string,
	req CreatePayrollRequest,
) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, payrollerrors.ErrInvalidCompanyID
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, payrollerrors.ErrInvalidEmployeeID
	}

	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, payrollerrors.ErrInvalidActorID
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}

	if periodStart.After(periodEnd) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange
	}

	return companyUUID, employeeUUID, createdByUUID, periodStart, periodEnd, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseDateTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(payroll Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:            payroll.ID.String(),
		CompanyID:     payroll.CompanyID.String(),
		PayrollNumber: payroll.PayrollNumber,
		EmployeeID:    payroll.EmployeeID.String(),
		PeriodStart:   payroll.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     payroll.PeriodEnd.Format("2006-01-02"),
		BaseSalary:    payroll.BaseSalary,
		Allowance:     payroll.Allowance,
		Deduction:     payroll.Deduction,
		NetSalary:     payroll.NetSalary,
		Status:        payroll.Status,
		CreatedBy:     payroll.CreatedBy.String(),
	}

	if payroll.ApprovedBy != nil {
		v := payroll.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if payroll.ApprovedAt != nil {
		v := payroll.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if payroll.PaidAt != nil {
		v := payroll.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if payroll.PayslipGeneratedAt != nil {
		v := payroll.PayslipGeneratedAt.Format(time.RFC3339)
		resp.PayslipGeneratedAt = &v
	}

	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, payroll := range payrolls {
		resp[i] = mapToResponse(payroll)
	}
	return resp
}
