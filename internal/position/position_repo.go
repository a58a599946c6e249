package position

import (
	"context"
	"database/sql"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, post *Position) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Position, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error)
	Update(ctx context.Context, post *Position) error
	Delete(ctx context.Context, companyID string, id string) error
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

func (r *repository) Create(ctx context.Context, post *Position) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Position, error) {
	var posts []Position
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&posts).Error
	return posts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error) {
	var post Position
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		First(&post, "id = ?", id).Error
	return &post, err
}

func (r *repository) Update(ctx context.Context, post *Position) error {
	// Jangan ikut menyimpan relasi Department hasil preload.
	return r.db.WithContext(ctx).Omit("Department").Save(post).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Position{}, "id = ?", id).Error
}
