package notification

import (
	"context"
	"database/sql"
	"go-hrms/internal/tenant"
	"time"

	"gorm.io/gorm"
)

// EmployeeContact dipakai mailer untuk alamat tujuan.
type EmployeeContact struct {
	FullName string
	Email    string
}

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, notification *Notification) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Notification, error)
	FindByIDAndEmployee(ctx context.Context, companyID, employeeID, id string) (*Notification, error)
	CountUnread(ctx context.Context, companyID, employeeID string) (int64, error)
	Update(ctx context.Context, notification *Notification) error
	MarkAllRead(ctx context.Context, companyID, employeeID string, readAt time.Time) error
	FindEmployeeContact(ctx context.Context, companyID, employeeID string) (*EmployeeContact, error)
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

func (r *repository) Create(ctx context.Context, notification *Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Notification, error) {
	var notifications []Notification
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) FindByIDAndEmployee(ctx context.Context, companyID, employeeID, id string) (*Notification, error) {
	var notification Notification
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		First(&notification, "id = ?", id).Error
	return &notification, err
}

func (r *repository) CountUnread(ctx context.Context, companyID, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("read_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, notification *Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *repository) MarkAllRead(ctx context.Context, companyID, employeeID string, readAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("read_at IS NULL").
		Update("read_at", readAt).Error
}

func (r *repository) FindEmployeeContact(ctx context.Context, companyID, employeeID string) (*EmployeeContact, error) {
	var contact EmployeeContact
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("full_name, email").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
