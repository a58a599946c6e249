package asset

import (
	"context"
	"database/sql"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=asset_repo.go -destination=mock/asset_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, asset *Asset) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Asset, error)
	FindAllByHolder(ctx context.Context, companyID, employeeID string) ([]Asset, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Asset, error)
	Update(ctx context.Context, asset *Asset) error
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

func (r *repository) Create(ctx context.Context, asset *Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Asset, error) {
	var assets []Asset
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Holder").
		Order("asset_code ASC").
		Find(&assets).Error
	return assets, err
}

func (r *repository) FindAllByHolder(ctx context.Context, companyID, employeeID string) ([]Asset, error) {
	var assets []Asset
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("holder_id = ?", employeeID).
		Preload("Holder").
		Order("asset_code ASC").
		Find(&assets).Error
	return assets, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Asset, error) {
	var asset Asset
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Holder").
		First(&asset, "id = ?", id).Error
	return &asset, err
}

func (r *repository) Update(ctx context.Context, asset *Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Asset{}, "id = ?", id).Error
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
