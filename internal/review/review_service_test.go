package review

import (
	"context"
	"database/sql"
	"testing"

	"go-hrms/internal/messaging/kafka"
	reviewerrors "go-hrms/internal/review/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeReviewRepo struct {
	reviews map[string]*Review
	belongs bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*Review), belongs: true}
}

func (f *fakeReviewRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeReviewRepo) Create(ctx context.Context, review *Review) error {
	for _, r := range f.reviews {
		if r.EmployeeID == review.EmployeeID && r.Period == review.Period {
			return reviewerrors.ErrReviewAlreadyExists
		}
	}
	clone := *review
	f.reviews[review.ID.String()] = &clone
	return nil
}

func (f *fakeReviewRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Review, error) {
	out := make([]Review, 0, len(f.reviews))
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviewRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Review, error) {
	var out []Review
	for _, r := range f.reviews {
		if r.EmployeeID.String() == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *Review) error {
	clone := *review
	f.reviews[review.ID.String()] = &clone
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, companyID string, id string) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	return f.belongs, nil
}

type fakeReviewOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeReviewOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeReviewOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeReviewOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeReviewOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeReviewOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func validReviewRequest(employeeID string) CreateReviewRequest {
	return CreateReviewRequest{
		EmployeeID: employeeID,
		Period:     "2025-06",
		Rating:     4,
		Strengths:  "consistent delivery",
	}
}

func TestCreateReview_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeReviewRepo()
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), validReviewRequest(uuid.NewString()))

	assert.NoError(t, err)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, 4, resp.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_DuplicatePeriod(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeReviewRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	reviewerID := uuid.NewString()
	req := validReviewRequest(uuid.NewString())

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(context.Background(), companyID, reviewerID, req)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Create(context.Background(), companyID, reviewerID, req)
	assert.ErrorIs(t, err, reviewerrors.ErrReviewAlreadyExists)
}

func TestCreateReview_InvalidPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeReviewRepo())

	req := validReviewRequest(uuid.NewString())
	req.Period = "June 2025"
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), req)

	assert.ErrorIs(t, err, reviewerrors.ErrInvalidPeriod)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeReviewRepo())

	req := validReviewRequest(uuid.NewString())
	req.Rating = 6
	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), req)

	assert.ErrorIs(t, err, reviewerrors.ErrInvalidRating)
}

func TestSubmit_QueuesOutboxEventOnce(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeReviewRepo()
	outbox := &fakeReviewOutbox{}
	svc := NewServiceWithOutbox(db, repo, outbox)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validReviewRequest(uuid.NewString()))
	assert.NoError(t, err)
	assert.Empty(t, outbox.events)

	mock.ExpectBegin()
	mock.ExpectCommit()
	submitted, err := svc.Submit(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "review_submitted", outbox.events[0].EventType)
	assert.Equal(t, created.ID, outbox.events[0].AggregateID)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Submit(context.Background(), companyID, actorID, created.ID)
	assert.ErrorIs(t, err, reviewerrors.ErrReviewAlreadySubmitted)
	assert.Len(t, outbox.events, 1)
}

func TestUpdate_SubmittedIsImmutable(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeReviewRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validReviewRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Submit(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Update(context.Background(), companyID, created.ID, UpdateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, reviewerrors.ErrReviewImmutable)
}

func TestDelete_SubmittedIsRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeReviewRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	actorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, actorID, validReviewRequest(uuid.NewString()))
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Submit(context.Background(), companyID, actorID, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = svc.Delete(context.Background(), companyID, created.ID)
	assert.ErrorIs(t, err, reviewerrors.ErrReviewImmutable)
}
