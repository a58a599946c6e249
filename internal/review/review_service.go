package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	reviewerrors "go-hrms/internal/review/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
)

//go:generate mockgen -source=review_service.go -destination=mock/review_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, reviewerID string, req CreateReviewRequest) (ReviewResponse, error)
	GetAll(ctx context.Context, companyID, employeeID string) ([]ReviewResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ReviewResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateReviewRequest) (ReviewResponse, error)
	Submit(ctx context.Context, companyID, actorID, id string) (ReviewResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID, reviewerID string,
	req CreateReviewRequest,
) (ReviewResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidCompanyID
	}
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewerID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	if _, err := time.Parse("2006-01", req.Period); err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidPeriod
	}
	if req.Rating < 1 || req.Rating > 5 {
		return ReviewResponse{}, reviewerrors.ErrInvalidRating
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, err
	}
	if !belongs {
		return ReviewResponse{}, reviewerrors.ErrEmployeeNotInCompany
	}

	review := &Review{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		ReviewerID:  reviewerUUID,
		Period:      req.Period,
		Rating:      req.Rating,
		Strengths:   req.Strengths,
		Improvement: req.Improvement,
		Comments:    req.Comments,
		Status:      StatusDraft,
	}

	if err := qtx.Create(ctx, review); err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*review), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID, employeeID string,
) ([]ReviewResponse, error) {
	var (
		reviews []Review
		err     error
	)
	if employeeID != "" {
		if _, parseErr := uuid.Parse(employeeID); parseErr != nil {
			return nil, reviewerrors.ErrInvalidEmployeeID
		}
		reviews, err = s.repo.FindAllByCompanyAndEmployee(ctx, companyID, employeeID)
	} else {
		reviews, err = s.repo.FindAllByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, err
	}

	return mapToListResponse(reviews), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (ReviewResponse, error) {
	review, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*review), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateReviewRequest,
) (ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return ReviewResponse{}, reviewerrors.ErrInvalidRating
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	review, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if review.Status != StatusDraft {
		return ReviewResponse{}, reviewerrors.ErrReviewImmutable
	}

	review.Rating = req.Rating
	review.Strengths = req.Strengths
	review.Improvement = req.Improvement
	review.Comments = req.Comments

	if err := qtx.Update(ctx, review); err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ReviewResponse{}, err
	}

	return mapToResponse(*review), nil
}

func (s *service) Submit(
	ctx context.Context,
	companyID, actorID, id string,
) (ReviewResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	review, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if review.Status == StatusSubmitted {
		return ReviewResponse{}, reviewerrors.ErrReviewAlreadySubmitted
	}

	now := time.Now().UTC()
	review.Status = StatusSubmitted
	review.SubmittedAt = &now

	if err := qtx.Update(ctx, review); err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	// Event antre di transaksi yang sama dengan perubahan status.
	if err := s.queueSubmittedEvent(ctx, tx, review); err != nil {
		return ReviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReviewResponse{}, err
	}

	return mapToResponse(*review), nil
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

	review, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if review.Status != StatusDraft {
		return reviewerrors.ErrReviewImmutable
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) queueSubmittedEvent(ctx context.Context, tx *sql.Tx, review *Review) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.ReviewSubmittedEvent{
		EventType:  "review_submitted",
		RequestID:  rid,
		ReviewID:   review.ID.String(),
		CompanyID:  review.CompanyID.String(),
		EmployeeID: review.EmployeeID.String(),
		ReviewerID: review.ReviewerID.String(),
		Period:     review.Period,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "review",
		AggregateID:   review.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ReviewSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue review submitted event failed",
			zap.String("review_id", review.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reviewerrors.ErrReviewNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_reviews_employee_period" {
			return reviewerrors.ErrReviewAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_reviews_employee_period") {
		return reviewerrors.ErrReviewAlreadyExists
	}

	return err
}

func mapToResponse(review Review) ReviewResponse {
	resp := ReviewResponse{
		ID:          review.ID.String(),
		CompanyID:   review.CompanyID.String(),
		EmployeeID:  review.EmployeeID.String(),
		ReviewerID:  review.ReviewerID.String(),
		Period:      review.Period,
		Rating:      review.Rating,
		Strengths:   review.Strengths,
		Improvement: review.Improvement,
		Comments:    review.Comments,
		Status:      review.Status,
	}
	if review.Employee != nil {
		resp.EmployeeName = review.Employee.FullName
	}
	if review.SubmittedAt != nil {
		v := review.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	return resp
}

func mapToListResponse(reviews []Review) []ReviewResponse {
	resp := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp[i] = mapToResponse(review)
	}
	return resp
}
