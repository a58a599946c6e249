package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_employee,priority:1"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_employee,priority:2"`
	Type       string     `gorm:"type:varchar(50);not null"`
	Title      string     `gorm:"type:varchar(200);not null"`
	Body       string     `gorm:"type:text"`
	ReadAt     *time.Time `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
