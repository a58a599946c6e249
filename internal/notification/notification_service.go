package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	notificationerrors "go-hrms/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Notify(ctx context.Context, companyID, employeeID, notifType, title, body string) (NotificationResponse, error)
	GetAll(ctx context.Context, companyID, employeeID string) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, companyID, employeeID string) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, companyID, employeeID, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, companyID, employeeID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	mailer Mailer
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func NewServiceWithMailer(db *sql.DB, repo Repository, mailer Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, mailer: mailer, logger: l}
}

// Notify menyimpan notifikasi lalu mengirim email best-effort.
// Kegagalan SMTP hanya dicatat, baris notifikasi tetap tersimpan.
func (s *service) Notify(
	ctx context.Context,
	companyID, employeeID, notifType, title, body string,
) (NotificationResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidEmployeeID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	notification := &Notification{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Type:       notifType,
		Title:      title,
		Body:       body,
	}

	if err := qtx.Create(ctx, notification); err != nil {
		return NotificationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return NotificationResponse{}, err
	}

	s.sendEmail(ctx, companyID, employeeID, title, body)

	return mapToResponse(*notification), nil
}

func (s *service) sendEmail(ctx context.Context, companyID, employeeID, subject, body string) {
	if s.mailer == nil {
		return
	}

	contact, err := s.repo.FindEmployeeContact(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Warn("lookup employee contact failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return
	}
	if contact.Email == "" {
		return
	}

	if err := s.mailer.Send(contact.Email, subject, body); err != nil {
		s.logger.Warn("send notification email failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func (s *service) GetAll(
	ctx context.Context,
	companyID, employeeID string,
) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, notificationerrors.ErrInvalidEmployeeID
	}

	notifications, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(notifications), nil
}

func (s *service) UnreadCount(
	ctx context.Context,
	companyID, employeeID string,
) (UnreadCountResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return UnreadCountResponse{}, notificationerrors.ErrInvalidEmployeeID
	}

	count, err := s.repo.CountUnread(ctx, companyID, employeeID)
	if err != nil {
		return UnreadCountResponse{}, err
	}

	return UnreadCountResponse{UnreadCount: count}, nil
}

func (s *service) MarkRead(
	ctx context.Context,
	companyID, employeeID, id string,
) (NotificationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	notification, err := qtx.FindByIDAndEmployee(ctx, companyID, employeeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if notification.ReadAt == nil {
		now := time.Now().UTC()
		notification.ReadAt = &now
		if err := qtx.Update(ctx, notification); err != nil {
			return NotificationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return NotificationResponse{}, err
	}

	return mapToResponse(*notification), nil
}

func (s *service) MarkAllRead(
	ctx context.Context,
	companyID, employeeID string,
) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return notificationerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.MarkAllRead(ctx, companyID, employeeID, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(notification Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         notification.ID.String(),
		EmployeeID: notification.EmployeeID.String(),
		Type:       notification.Type,
		Title:      notification.Title,
		Body:       notification.Body,
		CreatedAt:  notification.CreatedAt.Format(time.RFC3339),
	}
	if notification.ReadAt != nil {
		v := notification.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}

func mapToListResponse(notifications []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp[i] = mapToResponse(notification)
	}
	return resp
}
