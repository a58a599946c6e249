package goal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goalerrors "go-hrms/internal/goal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

//go:generate mockgen -source=goal_service.go -destination=mock/goal_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateGoalRequest) (GoalResponse, error)
	GetAll(ctx context.Context, companyID, employeeID string) ([]GoalResponse, error)
	GetByID(ctx context.Context, companyID, id string) (GoalResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateGoalRequest) (GoalResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateGoalRequest,
) (GoalResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidEmployeeID
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidDueDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GoalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return GoalResponse{}, err
	}
	if !belongs {
		return GoalResponse{}, goalerrors.ErrEmployeeNotInCompany
	}

	goal := &Goal{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Progress:    0,
		Status:      StatusActive,
		CreatedBy:   actorUUID,
	}

	if err := qtx.Create(ctx, goal); err != nil {
		return GoalResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return GoalResponse{}, err
	}

	return mapToResponse(*goal), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID, employeeID string,
) ([]GoalResponse, error) {
	var (
		goals []Goal
		err   error
	)
	if employeeID != "" {
		if _, parseErr := uuid.Parse(employeeID); parseErr != nil {
			return nil, goalerrors.ErrInvalidEmployeeID
		}
		goals, err = s.repo.FindAllByCompanyAndEmployee(ctx, companyID, employeeID)
	} else {
		goals, err = s.repo.FindAllByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, err
	}

	return mapToListResponse(goals), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (GoalResponse, error) {
	goal, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return GoalResponse{}, mapNotFound(err)
	}

	return mapToResponse(*goal), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateGoalRequest,
) (GoalResponse, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidDueDate
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		return GoalResponse{}, goalerrors.ErrInvalidProgress
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GoalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	goal, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return GoalResponse{}, mapNotFound(err)
	}

	// COMPLETED dan CANCELLED bersifat final.
	if req.Status != goal.Status && goal.Status != StatusActive {
		return GoalResponse{}, goalerrors.ErrGoalNotActive
	}

	goal.Title = req.Title
	goal.Description = req.Description
	goal.DueDate = dueDate
	goal.Status = req.Status
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if goal.Status == StatusCompleted {
		goal.Progress = 100
	}

	if err := qtx.Update(ctx, goal); err != nil {
		return GoalResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return GoalResponse{}, err
	}

	return mapToResponse(*goal), nil
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

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapNotFound(err)
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return goalerrors.ErrGoalNotFound
	}
	return err
}

func mapToResponse(goal Goal) GoalResponse {
	resp := GoalResponse{
		ID:          goal.ID.String(),
		CompanyID:   goal.CompanyID.String(),
		EmployeeID:  goal.EmployeeID.String(),
		Title:       goal.Title,
		Description: goal.Description,
		DueDate:     goal.DueDate.Format("2006-01-02"),
		Progress:    goal.Progress,
		Status:      goal.Status,
		CreatedBy:   goal.CreatedBy.String(),
	}
	if goal.Employee != nil {
		resp.EmployeeName = goal.Employee.FullName
	}
	return resp
}

func mapToListResponse(goals []Goal) []GoalResponse {
	resp := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		resp[i] = mapToResponse(goal)
	}
	return resp
}
