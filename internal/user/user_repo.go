package user

import (
	"context"
	"time"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

// UserWithRolesRow adalah hasil join users + employees + roles.
// RolesRaw berisi daftar nama role yang digabung dengan koma.
type UserWithRolesRow struct {
	ID             string
	EmployeeID     string
	EmployeeNumber string
	Email          string
	FullName       string
	IsActive       bool
	RolesRaw       string
	CreatedAt      time.Time
}

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, companyID string, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]User, error)
	FindAllByCompanyWithRoles(ctx context.Context, companyID string) ([]UserWithRolesRow, error)
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, companyID string, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		First(&u, "id = ?", id).Error

	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]User, error) {
	var users []User

	err := r.db.WithContext(ctx).
		Joins("Employee").
		Scopes(tenant.Scope(companyID)).
		Find(&users).Error

	return users, err
}

func (r *repository) FindAllByCompanyWithRoles(ctx context.Context, companyID string) ([]UserWithRolesRow, error) {
	var rows []UserWithRolesRow

	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id,
			users.employee_id,
			users.email,
			users.is_active,
			users.created_at,
			employees.employee_number,
			employees.full_name,
			COALESCE(string_agg(roles.name, ','), '') AS roles_raw`).
		Joins("JOIN employees ON employees.id = users.employee_id").
		Joins("LEFT JOIN employee_roles ON employee_roles.employee_id = users.employee_id").
		Joins("LEFT JOIN roles ON roles.id = employee_roles.role_id AND roles.company_id = users.company_id").
		Where("users.company_id = ?", companyID).
		Where("users.deleted_at IS NULL").
		Group("users.id, users.employee_id, users.email, users.is_active, users.created_at, employees.employee_number, employees.full_name").
		Order("employees.full_name ASC").
		Scan(&rows).Error

	return rows, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
