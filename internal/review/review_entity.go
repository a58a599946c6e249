package review

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_reviews_employee_period,priority:1"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	ReviewerID uuid.UUID    `gorm:"type:uuid;not null"`

	// Periode review dalam format YYYY-MM.
	Period string `gorm:"type:varchar(7);not null;uniqueIndex:uq_reviews_employee_period,priority:2"`

	Rating      int    `gorm:"not null"`
	Strengths   string `gorm:"type:text"`
	Improvement string `gorm:"type:text"`
	Comments    string `gorm:"type:text"`

	Status      string `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SubmittedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Review) TableName() string {
	return "performance_reviews"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
