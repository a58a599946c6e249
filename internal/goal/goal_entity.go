package goal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Goal struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_goals_company_status,priority:1"`
	EmployeeID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Employee    *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	Title       string       `gorm:"type:varchar(200);not null"`
	Description string       `gorm:"type:text"`
	DueDate     time.Time    `gorm:"type:date;not null;index"`
	Progress    int          `gorm:"not null;default:0"`
	Status      string       `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_goals_company_status,priority:2"`
	CreatedBy   uuid.UUID    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Goal) TableName() string {
	return "goals"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
