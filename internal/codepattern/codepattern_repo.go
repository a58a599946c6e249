package codepattern

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=codepattern_repo.go -destination=mock/codepattern_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByCompany(ctx context.Context, companyID string) (*CodePattern, error)
	Upsert(ctx context.Context, pattern *CodePattern) error
	ListEmployeeCodes(ctx context.Context, companyID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*CodePattern, error) {
	var p CodePattern
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&p).Error
	return &p, err
}

func (r *repository) Upsert(ctx context.Context, pattern *CodePattern) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"prefix", "separator", "min_digits", "updated_at"}),
		}).
		Create(pattern).Error
}

func (r *repository) ListEmployeeCodes(ctx context.Context, companyID string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Where("employee_code <> ''").
		Pluck("employee_code", &codes).Error
	return codes, err
}
