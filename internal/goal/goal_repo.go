package goal

import (
	"context"
	"database/sql"
	"go-hrms/internal/tenant"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=goal_repo.go -destination=mock/goal_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, goal *Goal) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Goal, error)
	FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Goal, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Goal, error)
	FindActiveDueWithin(ctx context.Context, from, to time.Time) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, companyID string, id string) error
	EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, goal *Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Order("due_date ASC").
		Find(&goals).Error
	return goals, err
}

func (r *repository) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Preload("Employee").
		Order("due_date ASC").
		Find(&goals).Error
	return goals, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Goal, error) {
	var goal Goal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		First(&goal, "id = ?", id).Error
	return &goal, err
}

// FindActiveDueWithin dipakai worker, jadi lintas company.
func (r *repository) FindActiveDueWithin(ctx context.Context, from, to time.Time) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("due_date BETWEEN ? AND ?", from, to).
		Order("due_date ASC").
		Find(&goals).Error
	return goals, err
}

func (r *repository) Update(ctx context.Context, goal *Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Goal{}, "id = ?", id).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
