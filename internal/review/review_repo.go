package review

import (
	"context"
	"database/sql"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=review_repo.go -destination=mock/review_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, review *Review) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Review, error)
	FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Review, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Review, error)
	Update(ctx context.Context, review *Review) error
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

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Order("period DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Preload("Employee").
		Order("period DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		First(&review, "id = ?", id).Error
	return &review, err
}

func (r *repository) Update(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Review{}, "id = ?", id).Error
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
